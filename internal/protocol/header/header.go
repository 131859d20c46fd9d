// Package header encodes the fixed 256-byte message header and its variants.
//
// Every header shares the prefix in bytes [0,128). The command byte selects
// how bytes [128,256) are interpreted: requests carry the client session
// chain, replies carry the context the next request must echo as parent.
package header

import (
	"encoding/binary"
	"fmt"

	"github.com/danmuck/ledgerwire/internal/protocol"
	"github.com/rs/zerolog"
)

// Size is the length of every header on the wire.
const Size = protocol.HeaderSize

// Prefix offsets.
const (
	OffsetChecksum            = 0
	OffsetChecksumPadding     = 16
	OffsetChecksumBody        = 32
	OffsetChecksumBodyPadding = 48
	OffsetNonceReserved       = 64
	OffsetCluster             = 80
	OffsetSize                = 96
	OffsetEpoch               = 100
	OffsetView                = 104
	OffsetRelease             = 108
	OffsetProtocol            = 112
	OffsetCommand             = 114
	OffsetReplica             = 115
	OffsetReservedFrame       = 116
	OffsetVariant             = 128
)

// Request offsets.
const (
	OffsetParent        = 128
	OffsetParentPadding = 144
	OffsetClient        = 160
	OffsetSession       = 176
	OffsetTimestamp     = 184
	OffsetRequest       = 192
	OffsetOperation     = 196
)

// Reply offsets.
const (
	OffsetRequestChecksum        = 128
	OffsetRequestChecksumPadding = 144
	OffsetContext                = 160
	OffsetCommit                 = 216
)

// Message is one of *Header, *Request or *Reply.
type Message interface {
	// Prefix returns the shared header fields.
	Prefix() *Header
	// Pack writes the header into b[0:Size].
	Pack(b []byte) error
	zerolog.LogObjectMarshaler
	variant()
}

// Header is the shared prefix. It is also the full header for commands that
// have no dedicated variant.
type Header struct {
	Checksum     protocol.Uint128
	ChecksumBody protocol.Uint128
	Cluster      protocol.Uint128
	Size         uint32
	Epoch        uint32
	View         uint32
	Release      uint32
	Protocol     uint16
	Command      protocol.Command
	Replica      uint8
}

func (h *Header) Prefix() *Header { return h }

func (*Header) variant() {}

func (h *Header) Pack(b []byte) error {
	if len(b) < Size {
		return fmt.Errorf("%w: header needs %d bytes, have %d", protocol.ErrShortBuffer, Size, len(b))
	}
	packPrefix(b, h)
	return nil
}

func (h *Header) MarshalZerologObject(e *zerolog.Event) {
	e.Str("command", h.Command.String()).
		Uint32("size", h.Size).
		Str("cluster", h.Cluster.String()).
		Uint32("view", h.View).
		Uint8("replica", h.Replica)
}

// Request is the client->cluster header.
type Request struct {
	Header
	Parent        protocol.Uint128
	Client        protocol.Uint128
	Session       uint64
	RequestNumber uint32
	Operation     protocol.Operation
}

func (r *Request) Pack(b []byte) error {
	if err := r.Header.Pack(b); err != nil {
		return err
	}
	protocol.PutUint128(b[OffsetParent:], r.Parent)
	clear(b[OffsetParentPadding:OffsetClient])
	protocol.PutUint128(b[OffsetClient:], r.Client)
	binary.LittleEndian.PutUint64(b[OffsetSession:], r.Session)
	binary.LittleEndian.PutUint64(b[OffsetTimestamp:], 0)
	binary.LittleEndian.PutUint32(b[OffsetRequest:], r.RequestNumber)
	b[OffsetOperation] = byte(r.Operation)
	return nil
}

func (r *Request) MarshalZerologObject(e *zerolog.Event) {
	r.Header.MarshalZerologObject(e)
	e.Str("operation", r.Operation.String()).
		Uint32("request", r.RequestNumber).
		Uint64("session", r.Session).
		Str("parent", r.Parent.String())
}

// Reply is the cluster->client header.
type Reply struct {
	Header
	RequestChecksum protocol.Uint128
	Context         protocol.Uint128
	Commit          uint64
}

// Session is the commit number echoed on a registration reply.
func (r *Reply) Session() uint64 { return r.Commit }

func (r *Reply) Pack(b []byte) error {
	if err := r.Header.Pack(b); err != nil {
		return err
	}
	protocol.PutUint128(b[OffsetRequestChecksum:], r.RequestChecksum)
	clear(b[OffsetRequestChecksumPadding:OffsetContext])
	protocol.PutUint128(b[OffsetContext:], r.Context)
	binary.LittleEndian.PutUint64(b[OffsetCommit:], r.Commit)
	return nil
}

func (r *Reply) MarshalZerologObject(e *zerolog.Event) {
	r.Header.MarshalZerologObject(e)
	e.Str("request_checksum", r.RequestChecksum.String()).
		Str("context", r.Context.String()).
		Uint64("commit", r.Commit)
}

// Unpack parses b[0:Size], selecting the variant from the command byte.
// Checksums and size are not validated.
func Unpack(b []byte) (Message, error) {
	if len(b) < Size {
		return nil, fmt.Errorf("%w: header needs %d bytes, have %d", protocol.ErrShortBuffer, Size, len(b))
	}
	prefix := unpackPrefix(b)
	switch prefix.Command {
	case protocol.CommandRequest:
		return &Request{
			Header:        prefix,
			Parent:        protocol.GetUint128(b[OffsetParent:]),
			Client:        protocol.GetUint128(b[OffsetClient:]),
			Session:       binary.LittleEndian.Uint64(b[OffsetSession:]),
			RequestNumber: binary.LittleEndian.Uint32(b[OffsetRequest:]),
			Operation:     protocol.Operation(b[OffsetOperation]),
		}, nil
	case protocol.CommandReply:
		return &Reply{
			Header:          prefix,
			RequestChecksum: protocol.GetUint128(b[OffsetRequestChecksum:]),
			Context:         protocol.GetUint128(b[OffsetContext:]),
			Commit:          binary.LittleEndian.Uint64(b[OffsetCommit:]),
		}, nil
	default:
		return &prefix, nil
	}
}

// PeekSize reads the size field without parsing the rest of the header.
func PeekSize(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b[OffsetSize:])
}

// PeekCommand reads the command byte without parsing the rest of the header.
func PeekCommand(b []byte) protocol.Command {
	return protocol.Command(b[OffsetCommand])
}

func packPrefix(b []byte, h *Header) {
	protocol.PutUint128(b[OffsetChecksum:], h.Checksum)
	clear(b[OffsetChecksumPadding:OffsetChecksumBody])
	protocol.PutUint128(b[OffsetChecksumBody:], h.ChecksumBody)
	clear(b[OffsetChecksumBodyPadding:OffsetCluster])
	protocol.PutUint128(b[OffsetCluster:], h.Cluster)
	binary.LittleEndian.PutUint32(b[OffsetSize:], h.Size)
	binary.LittleEndian.PutUint32(b[OffsetEpoch:], h.Epoch)
	binary.LittleEndian.PutUint32(b[OffsetView:], h.View)
	binary.LittleEndian.PutUint32(b[OffsetRelease:], h.Release)
	binary.LittleEndian.PutUint16(b[OffsetProtocol:], h.Protocol)
	b[OffsetCommand] = byte(h.Command)
	b[OffsetReplica] = h.Replica
	clear(b[OffsetReservedFrame:OffsetVariant])
}

func unpackPrefix(b []byte) Header {
	return Header{
		Checksum:     protocol.GetUint128(b[OffsetChecksum:]),
		ChecksumBody: protocol.GetUint128(b[OffsetChecksumBody:]),
		Cluster:      protocol.GetUint128(b[OffsetCluster:]),
		Size:         binary.LittleEndian.Uint32(b[OffsetSize:]),
		Epoch:        binary.LittleEndian.Uint32(b[OffsetEpoch:]),
		View:         binary.LittleEndian.Uint32(b[OffsetView:]),
		Release:      binary.LittleEndian.Uint32(b[OffsetRelease:]),
		Protocol:     binary.LittleEndian.Uint16(b[OffsetProtocol:]),
		Command:      protocol.Command(b[OffsetCommand]),
		Replica:      b[OffsetReplica],
	}
}
