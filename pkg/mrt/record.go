package mrt

import "github.com/ribasn/ribasn/pkg/radix"

// Prefix is the (family, bytes, len) triple decoded from a record; an
// alias of radix.Prefix since MRT records and the lookup tree share one
// canonical representation.
type Prefix = radix.Prefix

// Record is one decoded MRT record: the 12-byte common header plus a
// type-specific Detail. Detail is a closed sum type — TDv1Record,
// PeerIndexRecord, or RIBRecord — never an open interface meant for
// external implementations (spec.md §9 "no open-inheritance polymorphism").
type Record struct {
	TS      uint32
	Type    uint16
	SubType uint16
	DataLen uint32
	Detail  any
}

// TDv1Record is a TABLE_DUMP (type 12) record: one prefix, one peer, one
// attribute set, per RFC 6396 §4.2.
type TDv1Record struct {
	AFI      uint16 // T1AFIIPv4 or T1AFIIPv6
	View     uint16
	Seq      uint16
	Prefix   Prefix
	Status   uint8
	OrigTS   uint32
	PeerAS   uint16
	AttrLen  uint16
	rawAttrs []byte
	attrs    []Attribute
}

// PeerIndexRecord is a TABLE_DUMP_V2 PEER_INDEX_TABLE (sub-type 1) record.
// The peer list itself is not needed for origin extraction and is not
// retained (§4.4 "peer list not required, may skip").
type PeerIndexRecord struct {
	CollectorBGPID uint32
	ViewName       string
	PeerCount      uint16
}

// RIBRecord is a TABLE_DUMP_V2 RIB_IPV4_UNICAST/RIB_IPV6_UNICAST (sub-type
// 2/4) record: one prefix, possibly many peer entries.
type RIBRecord struct {
	AFI     uint16 // T2RIBIPv4 or T2RIBIPv6
	Seq     uint32
	Prefix  Prefix
	Entries []RIBEntry
}

// RIBEntry is one per-peer table entry within a RIBRecord.
type RIBEntry struct {
	PeerIndex uint16
	OrigTS    uint32
	AttrLen   uint16
	rawAttrs  []byte
	attrs     []Attribute
}
