package protocol

import "errors"

var (
	ErrShortBuffer    = errors.New("protocol: buffer too short")
	ErrUint128Range   = errors.New("protocol: value out of u128 range")
	ErrInvalidUint128 = errors.New("protocol: invalid u128 literal")
)
