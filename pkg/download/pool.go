package download

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// fetchJob is one date's worth of archive-download work, run concurrently
// by concurrentFetchDates with a bounded worker count and a shared rate
// limiter so a large --dates-from-file batch doesn't hammer the archive
// server with simultaneous directory-listing and file-download requests.
type fetchJob struct {
	index int
	date  dateArg
}

type dateArg struct {
	year, month, day int
}

type fetchOutcome struct {
	index int
	path  string
	err   error
}

// concurrentFetchDates runs one FetchDate call per date, at most
// maxWorkers at a time, sharing limiter across all of them, and returns
// results in the same order as dates.
func concurrentFetchDates(ctx context.Context, f *Fetcher, fam Family, dates []dateArg, maxWorkers int) []fetchOutcome {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	jobs := make(chan fetchJob)
	outcomes := make([]fetchOutcome, len(dates))

	var wg sync.WaitGroup
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				path, err := f.FetchDate(ctx, fam, job.date.year, job.date.month, job.date.day)
				outcomes[job.index] = fetchOutcome{index: job.index, path: path, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, d := range dates {
			select {
			case jobs <- fetchJob{index: i, date: d}:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	return outcomes
}

// newLimiter builds a token-bucket limiter with a burst equal to its
// steady rate, rounded up to at least 1.
func newLimiter(requestsPerSecond float64) *rate.Limiter {
	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}
