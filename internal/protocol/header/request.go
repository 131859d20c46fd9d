package header

import "github.com/danmuck/ledgerwire/internal/protocol"

// RequestConfig lists every settable field of a fresh request header.
type RequestConfig struct {
	Cluster       protocol.Uint128
	Release       uint32
	Client        protocol.Uint128
	Session       uint64
	RequestNumber uint32
	Operation     protocol.Operation
	Parent        protocol.Uint128
}

// NewRequest builds a header-only request with zeroed checksums. Packet.Pack
// fills in size and checksums once the body is known.
func NewRequest(cfg RequestConfig) *Request {
	return &Request{
		Header: Header{
			Cluster: cfg.Cluster,
			Size:    Size,
			Release: cfg.Release,
			Command: protocol.CommandRequest,
		},
		Parent:        cfg.Parent,
		Client:        cfg.Client,
		Session:       cfg.Session,
		RequestNumber: cfg.RequestNumber,
		Operation:     cfg.Operation,
	}
}

// Release encodes a semantic version triple as the header release field.
func Release(major, minor, patch uint8) uint32 {
	return uint32(patch) | uint32(minor)<<8 | uint32(major)<<16
}
