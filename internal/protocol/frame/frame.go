// Package frame moves whole messages across a byte stream. Every message is
// self-delimiting: a 256-byte header whose size field covers header and body.
package frame

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/danmuck/ledgerwire/internal/logging"
	"github.com/danmuck/ledgerwire/internal/observability"
	"github.com/danmuck/ledgerwire/internal/protocol"
	"github.com/danmuck/ledgerwire/internal/protocol/checksum"
	"github.com/danmuck/ledgerwire/internal/protocol/header"
	"github.com/danmuck/ledgerwire/internal/protocol/packet"
	"github.com/rs/zerolog"
)

var (
	ErrShortHeader     = errors.New("frame: short header")
	ErrShortBody       = errors.New("frame: short body")
	ErrSizeTooSmall    = errors.New("frame: size smaller than header")
	ErrMessageTooLarge = errors.New("frame: message too large")
	ErrCorruptFrame    = errors.New("frame: checksum mismatch")
	ErrClosed          = errors.New("frame: connection closed")
)

// Limits constrains inbound message handling.
type Limits struct {
	MaxMessageSize  int
	VerifyChecksums bool
}

func DefaultLimits() Limits {
	return Limits{
		MaxMessageSize:  protocol.MessageSizeMax,
		VerifyChecksums: true,
	}
}

// Conn reads and writes messages on one stream. It is not safe for
// concurrent use, except that Close may be called while a Read or Write is
// blocked. A packet returned by Read aliases the connection buffer until the
// next Read.
type Conn struct {
	rw     io.ReadWriter
	limits Limits
	sum    checksum.Provider
	logger zerolog.Logger
	buf    []byte

	closeOnce sync.Once
	closed    atomic.Bool
	closeErr  error
}

type Option func(*Conn)

func WithLimits(l Limits) Option {
	return func(c *Conn) {
		if l.MaxMessageSize <= 0 || l.MaxMessageSize > protocol.MessageSizeMax {
			l.MaxMessageSize = protocol.MessageSizeMax
		}
		c.limits = l
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Conn) { c.logger = l }
}

func WithChecksum(p checksum.Provider) Option {
	return func(c *Conn) {
		if p != nil {
			c.sum = p
		}
	}
}

func NewConn(rw io.ReadWriter, opts ...Option) *Conn {
	c := &Conn{
		rw:     rw,
		limits: DefaultLimits(),
		sum:    checksum.Default(),
		logger: logging.Component("frame"),
		buf:    make([]byte, protocol.HeaderSize),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Conn) Limits() Limits {
	return c.limits
}

// Read blocks for the next complete message.
func (c *Conn) Read() (*packet.Packet, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	if _, err := io.ReadFull(c.rw, c.buf[:protocol.HeaderSize]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShortHeader, err)
	}

	size := int(header.PeekSize(c.buf))
	command := header.PeekCommand(c.buf)
	if size < protocol.HeaderSize {
		observability.RecordFrameRejected("size_too_small")
		c.logger.Warn().Int("size", size).Stringer("command", command).Msg("frame size below header size")
		return nil, fmt.Errorf("%w: %d", ErrSizeTooSmall, size)
	}
	if size > c.limits.MaxMessageSize {
		observability.RecordFrameRejected("too_large")
		c.logger.Warn().Int("size", size).Int("max", c.limits.MaxMessageSize).Msg("frame exceeds limit")
		return nil, fmt.Errorf("%w: %d > %d", ErrMessageTooLarge, size, c.limits.MaxMessageSize)
	}

	if size > len(c.buf) {
		grown := make([]byte, packet.PageAlign(size))
		copy(grown, c.buf[:protocol.HeaderSize])
		c.buf = grown
	}
	if size > protocol.HeaderSize {
		if _, err := io.ReadFull(c.rw, c.buf[protocol.HeaderSize:size]); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrShortBody, err)
		}
	}

	data := c.buf[:size]
	if c.limits.VerifyChecksums {
		if err := packet.FromBuffer(data, nil, packet.WithChecksum(c.sum)).VerifyChecksums(); err != nil {
			observability.RecordFrameRejected("checksum")
			c.logger.Error().Err(err).Int("size", size).Stringer("command", command).Msg("corrupt frame")
			return nil, fmt.Errorf("%w: %w", ErrCorruptFrame, err)
		}
	}

	msg, err := header.Unpack(data)
	if err != nil {
		return nil, err
	}
	observability.RecordFrame(observability.DirectionRead, command.String(), size)
	c.logger.Trace().Int("size", size).Object("header", msg).Msg("frame read")
	return packet.FromBuffer(data, msg, packet.WithChecksum(c.sum)), nil
}

// Write sends exactly the packet's size bytes.
func (c *Conn) Write(p *packet.Packet) error {
	if c.closed.Load() {
		return ErrClosed
	}
	data := p.Data()
	if len(data) > c.limits.MaxMessageSize {
		return fmt.Errorf("%w: %d > %d", ErrMessageTooLarge, len(data), c.limits.MaxMessageSize)
	}
	if _, err := c.rw.Write(data); err != nil {
		return err
	}
	command := header.PeekCommand(data)
	observability.RecordFrame(observability.DirectionWrite, command.String(), len(data))
	c.logger.Trace().Int("size", len(data)).Stringer("command", command).Msg("frame written")
	return nil
}

// Close closes the underlying stream when it is an io.Closer. Repeated calls
// return the first result.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		if closer, ok := c.rw.(io.Closer); ok {
			c.closeErr = closer.Close()
		}
	})
	return c.closeErr
}
