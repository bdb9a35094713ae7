package download

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"net/textproto"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Error is the sentinel error type for this package.
type Error string

func (e Error) Error() string { return string(e) }

// ErrNoArchiveFound is returned when no RIB file could be located in the
// expected FTP directory (or its immediate predecessor month).
const ErrNoArchiveFound Error = "download: no archive found"

const routeViewsServer = "archive.routeviews.org:21"

// Family selects which RouteViews collector tree to search.
type Family int

const (
	IPv4 Family = iota
	IPv6
	Dual
)

func archiveRoot(f Family) string {
	switch f {
	case IPv6:
		return "route-views6/bgpdata"
	case Dual:
		return "route-views4/bgpdata"
	default:
		return "bgpdata"
	}
}

// ftpConn is a minimal RFC 959 control-channel client built on
// net/textproto (no FTP client library appears anywhere in the retrieval
// pack, so this follows the same bufio/textproto line-oriented pattern
// the teacher's HTTP fetcher uses for its own protocol, applied to FTP's
// control channel instead).
type ftpConn struct {
	conn *textproto.Conn
	raw  net.Conn
}

func dialFTP(server string) (*ftpConn, error) {
	raw, err := net.Dial("tcp", server)
	if err != nil {
		return nil, fmt.Errorf("download: dial %s: %w", server, err)
	}
	conn := textproto.NewConn(raw)
	if _, _, err := conn.ReadResponse(220); err != nil {
		raw.Close()
		return nil, fmt.Errorf("download: ftp greeting: %w", err)
	}
	return &ftpConn{conn: conn, raw: raw}, nil
}

func (f *ftpConn) cmd(expectCode int, format string, args ...any) (string, error) {
	id, err := f.conn.Cmd(format, args...)
	if err != nil {
		return "", err
	}
	f.conn.StartResponse(id)
	defer f.conn.EndResponse(id)
	_, msg, err := f.conn.ReadResponse(expectCode)
	return msg, err
}

func (f *ftpConn) login() error {
	if _, err := f.cmd(331, "USER anonymous"); err != nil {
		// Some servers accept anonymous login in one step (230 directly).
		return nil
	}
	_, err := f.cmd(230, "PASS anonymous@")
	return err
}

func (f *ftpConn) cwd(dir string) error {
	_, err := f.cmd(250, "CWD %s", dir)
	return err
}

// nlst opens a passive-mode data connection and returns the plain name
// listing for the current (or given) directory.
func (f *ftpConn) nlst(dir string) ([]string, error) {
	pasvAddr, err := f.pasv()
	if err != nil {
		return nil, err
	}
	data, err := net.Dial("tcp", pasvAddr)
	if err != nil {
		return nil, fmt.Errorf("download: ftp data connection: %w", err)
	}
	defer data.Close()

	cmd := "NLST"
	if dir != "" {
		cmd = "NLST " + dir
	}
	id, err := f.conn.Cmd(cmd)
	if err != nil {
		return nil, err
	}
	f.conn.StartResponse(id)
	if _, _, err := f.conn.ReadResponse(150); err != nil {
		f.conn.EndResponse(id)
		return nil, fmt.Errorf("download: NLST: %w", err)
	}
	f.conn.EndResponse(id)

	body, err := io.ReadAll(data)
	if err != nil {
		return nil, fmt.Errorf("download: read listing: %w", err)
	}
	if _, _, err := f.conn.ReadResponse(226); err != nil {
		return nil, fmt.Errorf("download: NLST completion: %w", err)
	}

	var names []string
	for _, line := range strings.Split(string(body), "\r\n") {
		if strings.TrimSpace(line) != "" {
			names = append(names, strings.TrimSpace(line))
		}
	}
	return names, nil
}

// pasv issues PASV and parses the resulting "h1,h2,h3,h4,p1,p2" tuple
// into a dialable "host:port" string.
func (f *ftpConn) pasv() (string, error) {
	msg, err := f.cmd(227, "PASV")
	if err != nil {
		return "", fmt.Errorf("download: PASV: %w", err)
	}
	open, close := strings.IndexByte(msg, '('), strings.IndexByte(msg, ')')
	if open < 0 || close < 0 || close < open {
		return "", fmt.Errorf("download: unparseable PASV reply %q", msg)
	}
	parts := strings.Split(msg[open+1:close], ",")
	if len(parts) != 6 {
		return "", fmt.Errorf("download: unparseable PASV tuple %q", msg)
	}
	p1, err1 := strconv.Atoi(parts[4])
	p2, err2 := strconv.Atoi(parts[5])
	if err1 != nil || err2 != nil {
		return "", fmt.Errorf("download: unparseable PASV port in %q", msg)
	}
	port := p1*256 + p2
	host := strings.Join(parts[:4], ".")
	return fmt.Sprintf("%s:%d", host, port), nil
}

func (f *ftpConn) retrieve(remoteDir, filename, localPath string) error {
	if err := f.cwd(remoteDir); err != nil {
		return err
	}
	pasvAddr, err := f.pasv()
	if err != nil {
		return err
	}
	data, err := net.Dial("tcp", pasvAddr)
	if err != nil {
		return fmt.Errorf("download: ftp data connection: %w", err)
	}
	defer data.Close()

	id, err := f.conn.Cmd("RETR %s", filename)
	if err != nil {
		return err
	}
	f.conn.StartResponse(id)
	if _, _, err := f.conn.ReadResponse(150); err != nil {
		f.conn.EndResponse(id)
		return fmt.Errorf("download: RETR %s: %w", filename, err)
	}
	f.conn.EndResponse(id)

	out, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("download: create %s: %w", localPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(bufio.NewWriter(out), data); err != nil {
		return fmt.Errorf("download: retrieve %s: %w", filename, err)
	}
	_, _, err = f.conn.ReadResponse(226)
	return err
}

func (f *ftpConn) close() { f.raw.Close() }

// FindLatestRouteViews locates the most recent RIB archive for fam under
// archive.routeviews.org, trying the current month's directory and
// falling back one month if it's empty (ground: find_latest_in_ftp /
// find_latest_routeviews in pyasn_util_download.py).
func FindLatestRouteViews(fam Family) (dir, filename string, err error) {
	conn, err := dialFTP(routeViewsServer)
	if err != nil {
		return "", "", err
	}
	defer conn.close()

	if err := conn.login(); err != nil {
		return "", "", fmt.Errorf("download: ftp login: %w", err)
	}

	root := archiveRoot(fam)
	months, err := conn.nlst(root)
	if err != nil {
		return "", "", err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	if len(months) == 0 {
		return "", "", ErrNoArchiveFound
	}

	for i := 0; i < len(months) && i < 2; i++ {
		path := months[i] + "/RIBS"
		names, err := conn.nlst(path)
		if err == nil && len(names) > 0 {
			sort.Strings(names)
			return path, names[len(names)-1], nil
		}
	}
	return "", "", ErrNoArchiveFound
}

// FetchLatestRouteViews downloads the newest archive for fam into destDir,
// returning the local file path.
func FetchLatestRouteViews(fam Family, destDir string) (string, error) {
	dir, filename, err := FindLatestRouteViews(fam)
	if err != nil {
		return "", err
	}

	conn, err := dialFTP(routeViewsServer)
	if err != nil {
		return "", err
	}
	defer conn.close()
	if err := conn.login(); err != nil {
		return "", fmt.Errorf("download: ftp login: %w", err)
	}

	localPath := destDir + "/" + filename
	if err := conn.retrieve(dir, filename, localPath); err != nil {
		return "", err
	}
	return localPath, nil
}
