package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danmuck/ledgerwire/internal/protocol"
	"github.com/danmuck/ledgerwire/internal/protocol/header"
)

// ParseID reads a decimal or 0x-prefixed 128-bit id. Empty is zero.
func ParseID(key, s string) (protocol.Uint128, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return protocol.Uint128{}, nil
	}
	v, err := protocol.ParseUint128(s)
	if err != nil {
		return protocol.Uint128{}, fmt.Errorf("%w: %s: %w", ErrInvalid, key, err)
	}
	return v, nil
}

// ParseRelease reads "major.minor.patch". Empty is release zero.
func ParseRelease(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: release %q is not major.minor.patch", ErrInvalid, s)
	}
	var v [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: release %q: %w", ErrInvalid, s, err)
		}
		v[i] = uint8(n)
	}
	return header.Release(v[0], v[1], v[2]), nil
}

// ParseDuration reads a non-negative Go duration. Empty is zero.
func ParseDuration(key, s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalid, key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s is negative", ErrInvalid, key)
	}
	return d, nil
}
