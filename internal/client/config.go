package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/danmuck/ledgerwire/internal/protocol"
	"github.com/danmuck/ledgerwire/internal/protocol/frame"
)

// Config defines connection and session defaults for one client.
type Config struct {
	Address        string
	Cluster        protocol.Uint128
	Release        uint32
	ClientID       protocol.Uint128
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
	Limits         frame.Limits
}

func DefaultConfig() Config {
	return Config{
		Address:        "127.0.0.1:3000",
		ConnectTimeout: 5 * time.Second,
		RequestTimeout: 15 * time.Second,
		Limits:         frame.DefaultLimits(),
	}
}

func (c Config) Validate() error {
	if c.ConnectTimeout < 0 {
		return fmt.Errorf("%w: negative connect_timeout", ErrInvalidConfig)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request_timeout", ErrInvalidConfig)
	}
	if c.Limits.MaxMessageSize < 0 || c.Limits.MaxMessageSize > protocol.MessageSizeMax {
		return fmt.Errorf("%w: max_message_size %d outside [0,%d]", ErrInvalidConfig, c.Limits.MaxMessageSize, protocol.MessageSizeMax)
	}
	return nil
}

func (c Config) validateDial() error {
	if strings.TrimSpace(c.Address) == "" {
		return fmt.Errorf("%w: missing address", ErrInvalidConfig)
	}
	return c.Validate()
}
