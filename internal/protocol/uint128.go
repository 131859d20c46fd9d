package protocol

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"math/bits"
	"strings"
)

// Uint128 is an unsigned 128-bit integer stored as two 64-bit words.
// On the wire it is the low word followed by the high word, both little-endian.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// MaxUint128 is 2^128 - 1.
var MaxUint128 = Uint128{Lo: ^uint64(0), Hi: ^uint64(0)}

// U128 widens v.
func U128(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// PutUint128 writes v into b[0:16] and returns the number of bytes written.
func PutUint128(b []byte, v Uint128) int {
	_ = b[15]
	binary.LittleEndian.PutUint64(b[0:8], v.Lo)
	binary.LittleEndian.PutUint64(b[8:16], v.Hi)
	return 16
}

// GetUint128 reads a value from b[0:16].
func GetUint128(b []byte) Uint128 {
	_ = b[15]
	return Uint128{
		Lo: binary.LittleEndian.Uint64(b[0:8]),
		Hi: binary.LittleEndian.Uint64(b[8:16]),
	}
}

func (u Uint128) IsZero() bool {
	return u.Lo == 0 && u.Hi == 0
}

// Cmp returns -1, 0 or +1 as u is less than, equal to or greater than v.
func (u Uint128) Cmp(v Uint128) int {
	switch {
	case u.Hi < v.Hi:
		return -1
	case u.Hi > v.Hi:
		return 1
	case u.Lo < v.Lo:
		return -1
	case u.Lo > v.Lo:
		return 1
	}
	return 0
}

// Add returns u+v and whether the sum wrapped past 2^128.
func (u Uint128) Add(v Uint128) (Uint128, bool) {
	lo, carry := bits.Add64(u.Lo, v.Lo, 0)
	hi, carry := bits.Add64(u.Hi, v.Hi, carry)
	return Uint128{Lo: lo, Hi: hi}, carry != 0
}

// Bytes returns the 16-byte wire encoding of u.
func (u Uint128) Bytes() [16]byte {
	var out [16]byte
	PutUint128(out[:], u)
	return out
}

func (u Uint128) Big() *big.Int {
	v := new(big.Int).SetUint64(u.Hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(u.Lo))
}

func (u Uint128) String() string {
	if u.Hi == 0 {
		return fmt.Sprintf("%d", u.Lo)
	}
	return u.Big().String()
}

// Uint128FromBig converts v, rejecting negatives and values >= 2^128.
func Uint128FromBig(v *big.Int) (Uint128, error) {
	if v == nil {
		return Uint128{}, nil
	}
	if v.Sign() < 0 || v.BitLen() > 128 {
		return Uint128{}, fmt.Errorf("%w: %s", ErrUint128Range, v.String())
	}
	lo := new(big.Int).And(v, new(big.Int).SetUint64(^uint64(0))).Uint64()
	hi := new(big.Int).Rsh(v, 64).Uint64()
	return Uint128{Lo: lo, Hi: hi}, nil
}

// ParseUint128 accepts decimal or 0x-prefixed hexadecimal.
func ParseUint128(s string) (Uint128, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		s = s[2:]
	}
	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		return Uint128{}, fmt.Errorf("%w: %q", ErrInvalidUint128, s)
	}
	return Uint128FromBig(v)
}
