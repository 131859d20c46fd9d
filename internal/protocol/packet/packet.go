// Package packet assembles a header and body into one checksummed message.
//
// A Packet owns (or views) a byte buffer whose first 256 bytes are the header
// and whose body runs to the size field. Pack encodes the body, writes size,
// then computes checksum_body followed by checksum; the header checksum covers
// the freshly written body digest, so the order is fixed.
//
// A Packet is single-use and not safe for concurrent use.
package packet

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/danmuck/ledgerwire/internal/protocol"
	"github.com/danmuck/ledgerwire/internal/protocol/checksum"
	"github.com/danmuck/ledgerwire/internal/protocol/header"
	"github.com/danmuck/ledgerwire/internal/protocol/multibatch"
	"github.com/danmuck/ledgerwire/internal/protocol/records"
)

var (
	ErrNoHeader         = errors.New("packet: header not set")
	ErrMessageTooLarge  = errors.New("packet: message too large")
	ErrSizeOutOfRange   = errors.New("packet: size field out of range")
	ErrMixedRecordSize  = errors.New("packet: records differ in size")
	ErrBodyNotAligned   = errors.New("packet: body is not a multiple of element size")
	ErrChecksumMismatch = errors.New("packet: checksum mismatch")
	ErrBodyChecksum     = errors.New("packet: body checksum mismatch")
)

// Packet is one wire message.
type Packet struct {
	buf    []byte
	header header.Message
	sum    checksum.Provider
}

type Option func(*Packet)

// WithChecksum overrides the checksum provider.
func WithChecksum(p checksum.Provider) Option {
	return func(pk *Packet) {
		if p != nil {
			pk.sum = p
		}
	}
}

// New returns an empty packet with a zeroed header-sized buffer.
func New(opts ...Option) *Packet {
	p := &Packet{sum: checksum.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.buf == nil {
		p.buf = make([]byte, protocol.HeaderSize)
	}
	return p
}

// FromBuffer wraps b, which must hold one message, without copying.
func FromBuffer(b []byte, msg header.Message, opts ...Option) *Packet {
	p := &Packet{buf: b, header: msg, sum: checksum.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Packet) Header() header.Message {
	return p.header
}

// SetHeader records msg and writes it into the header region. The region is
// cleared first so bytes left by a previous variant do not reach the checksum.
func (p *Packet) SetHeader(msg header.Message) error {
	if len(p.buf) >= protocol.HeaderSize {
		clear(p.buf[:protocol.HeaderSize])
	}
	if err := msg.Pack(p.buf); err != nil {
		return err
	}
	p.header = msg
	return nil
}

// PackOption adjusts a single Pack call.
type PackOption func(*packConfig)

type packConfig struct {
	bodySize    int
	hasBodySize bool
	elementSize int
	operation   protocol.Operation
	hasOp       bool
}

// WithBodySize fixes the body length, for callers that filled the body
// themselves through Reserve.
func WithBodySize(n int) PackOption {
	return func(c *packConfig) {
		c.bodySize = n
		c.hasBodySize = true
	}
}

// WithElementSize overrides the per-record size used for layout.
func WithElementSize(n int) PackOption {
	return func(c *packConfig) { c.elementSize = n }
}

// WithOperation selects body encoding for headers that carry no operation,
// such as replies.
func WithOperation(op protocol.Operation) PackOption {
	return func(c *packConfig) {
		c.operation = op
		c.hasOp = true
	}
}

// Pack encodes recs as the body, then writes size and checksums. It returns
// the total message size.
func (p *Packet) Pack(recs []records.Record, opts ...PackOption) (int, error) {
	if p.header == nil {
		return 0, ErrNoHeader
	}
	var cfg packConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.hasOp {
		if req, ok := p.header.(*header.Request); ok {
			cfg.operation = req.Operation
		}
	}

	offset := protocol.HeaderSize
	if len(recs) > 0 {
		elementSize := cfg.elementSize
		if elementSize == 0 {
			elementSize = recs[0].Size()
		}
		for i, rec := range recs {
			if rec.Size() != elementSize {
				return 0, fmt.Errorf("%w: record %d is %d bytes, expected %d", ErrMixedRecordSize, i, rec.Size(), elementSize)
			}
		}

		if cfg.operation.MultiBatch() {
			required := offset + multibatch.EncodedSize(len(recs), elementSize)
			if err := p.reserve(required); err != nil {
				return 0, err
			}
			n, err := multibatch.Encode(p.buf[offset:], recs, elementSize)
			if err != nil {
				return 0, err
			}
			offset += n
		} else {
			required := offset + len(recs)*elementSize
			if err := p.reserve(required); err != nil {
				return 0, err
			}
			for _, rec := range recs {
				offset += rec.Pack(p.buf[offset:])
			}
		}
	}

	if cfg.hasBodySize {
		offset = protocol.HeaderSize + cfg.bodySize
		if err := p.reserve(offset); err != nil {
			return 0, err
		}
	}

	if err := p.UpdateSize(offset); err != nil {
		return 0, err
	}
	p.UpdateChecksums()
	return offset, nil
}

// Reserve returns the region for an n-byte body, growing the buffer as
// needed. Pair with WithBodySize(n).
func (p *Packet) Reserve(n int) ([]byte, error) {
	end := protocol.HeaderSize + n
	if err := p.reserve(end); err != nil {
		return nil, err
	}
	return p.buf[protocol.HeaderSize:end], nil
}

// UpdateSize writes the size field.
func (p *Packet) UpdateSize(size int) error {
	if size < protocol.HeaderSize || size > len(p.buf) {
		return fmt.Errorf("%w: %d", ErrSizeOutOfRange, size)
	}
	binary.LittleEndian.PutUint32(p.buf[header.OffsetSize:], uint32(size))
	if p.header != nil {
		p.header.Prefix().Size = uint32(size)
	}
	return nil
}

// UpdateChecksums computes checksum_body over the body, then checksum over
// header bytes [16,256).
func (p *Packet) UpdateChecksums() {
	size := p.Size()
	body := p.sum.Sum(p.buf[protocol.HeaderSize:size])
	copy(p.buf[header.OffsetChecksumBody:], body[:])

	sum := p.sum.Sum(p.buf[header.OffsetChecksumPadding:protocol.HeaderSize])
	copy(p.buf[header.OffsetChecksum:], sum[:])

	if p.header != nil {
		prefix := p.header.Prefix()
		prefix.ChecksumBody = protocol.GetUint128(body[:])
		prefix.Checksum = protocol.GetUint128(sum[:])
	}
}

// VerifyChecksums recomputes both checksums and compares them with the
// values stored in the header.
func (p *Packet) VerifyChecksums() error {
	size := p.Size()
	if size < protocol.HeaderSize || size > len(p.buf) {
		return fmt.Errorf("%w: %d", ErrSizeOutOfRange, size)
	}
	sum := p.sum.Sum(p.buf[header.OffsetChecksumPadding:protocol.HeaderSize])
	if protocol.GetUint128(sum[:]) != protocol.GetUint128(p.buf[header.OffsetChecksum:]) {
		return ErrChecksumMismatch
	}
	body := p.sum.Sum(p.buf[protocol.HeaderSize:size])
	if protocol.GetUint128(body[:]) != protocol.GetUint128(p.buf[header.OffsetChecksumBody:]) {
		return ErrBodyChecksum
	}
	return nil
}

// Size reads the size field.
func (p *Packet) Size() int {
	return int(binary.LittleEndian.Uint32(p.buf[header.OffsetSize:]))
}

// Data is the exact message, never the whole backing buffer.
func (p *Packet) Data() []byte {
	return p.buf[:p.Size()]
}

// Body is the message body as declared by the size field.
func (p *Packet) Body() []byte {
	return p.buf[protocol.HeaderSize:p.Size()]
}

// Checksum returns the header checksum currently stored in the buffer.
func (p *Packet) Checksum() protocol.Uint128 {
	return protocol.GetUint128(p.buf[header.OffsetChecksum:])
}

func (p *Packet) reserve(required int) error {
	if required > protocol.MessageSizeMax {
		return fmt.Errorf("%w: %d > %d", ErrMessageTooLarge, required, protocol.MessageSizeMax)
	}
	if required <= len(p.buf) {
		return nil
	}
	grown := make([]byte, PageAlign(required))
	copy(grown, p.buf)
	p.buf = grown
	return nil
}

// PageAlign rounds size up to the next memory page boundary.
func PageAlign(size int) int {
	page := os.Getpagesize()
	return (size + page - 1) / page * page
}

// DecodeBody unpacks the records of a body produced for op.
func DecodeBody[T any](body []byte, op protocol.Operation, elementSize int, unpack func([]byte) T) ([]T, error) {
	if op.MultiBatch() {
		return multibatch.Decode(body, elementSize, unpack)
	}
	if elementSize < 1 || len(body)%elementSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes, element %d", ErrBodyNotAligned, len(body), elementSize)
	}
	out := make([]T, 0, len(body)/elementSize)
	for off := 0; off < len(body); off += elementSize {
		out = append(out, unpack(body[off:off+elementSize]))
	}
	return out, nil
}
