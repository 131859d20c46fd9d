// Package records holds the fixed-size ledger structures carried in message
// bodies. Every type packs little-endian at fixed offsets; u128 fields are the
// low word followed by the high word.
//
// Records are plain values: build them with struct literals, pack them into
// a packet, or unpack them from a reply body.
package records

import (
	"encoding/binary"

	"github.com/danmuck/ledgerwire/internal/protocol"
)

// Record is a fixed-size structure that can be written into a message body.
type Record interface {
	// Size is the encoded length in bytes.
	Size() int
	// Pack writes the record into b[0:Size()] and returns Size().
	Pack(b []byte) int
}

// ID is a 128-bit lookup key for LOOKUP_ACCOUNTS and LOOKUP_TRANSFERS.
type ID protocol.Uint128

const IDSize = 16

func (ID) Size() int { return IDSize }

func (id ID) Pack(b []byte) int {
	return protocol.PutUint128(b, protocol.Uint128(id))
}

func UnpackID(b []byte) ID {
	return ID(protocol.GetUint128(b))
}

// IDs converts values into lookup records.
func IDs(values ...protocol.Uint128) []Record {
	out := make([]Record, len(values))
	for i, v := range values {
		out[i] = ID(v)
	}
	return out
}

// As widens a typed slice to []Record for packing.
func As[T Record](in []T) []Record {
	out := make([]Record, len(in))
	for i := range in {
		out[i] = in[i]
	}
	return out
}

var le = binary.LittleEndian
