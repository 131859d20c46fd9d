// Package multibatch encodes record batches with a trailing batch directory.
//
// Body layout:
//
//	[payload: N*element_size][0xFF padding][count(batch k-1)]...[count(batch 0)][batch_count]
//
// Counts and batch_count are little-endian u16. The trailer (padding, counts
// and postamble) is rounded up to a multiple of element_size so that the body
// stays element-aligned. Encode always emits a single batch.
package multibatch

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/danmuck/ledgerwire/internal/protocol/records"
)

const (
	postambleSize = 2
	countSize     = 2
	paddingByte   = 0xFF
)

var (
	ErrElementSize      = errors.New("multibatch: invalid element size")
	ErrTooManyElements  = errors.New("multibatch: element count exceeds u16")
	ErrShortBuffer      = errors.New("multibatch: buffer too short")
	ErrMalformedTrailer = errors.New("multibatch: malformed trailer")
)

// TrailerSize returns the trailer length for batchCount batches, padded to a
// multiple of elementSize. An elementSize of zero disables padding.
func TrailerSize(batchCount, elementSize int) int {
	unpadded := batchCount*countSize + postambleSize
	if elementSize == 0 {
		return unpadded
	}
	return (unpadded + elementSize - 1) / elementSize * elementSize
}

// EncodedSize is the body length Encode produces for n elements.
func EncodedSize(n, elementSize int) int {
	return n*elementSize + TrailerSize(1, elementSize)
}

// Encode packs recs contiguously into b followed by a one-batch trailer and
// returns the number of bytes written.
func Encode(b []byte, recs []records.Record, elementSize int) (int, error) {
	if elementSize < 1 {
		return 0, fmt.Errorf("%w: %d", ErrElementSize, elementSize)
	}
	if len(recs) > math.MaxUint16 {
		return 0, fmt.Errorf("%w: %d", ErrTooManyElements, len(recs))
	}
	total := EncodedSize(len(recs), elementSize)
	if len(b) < total {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, total, len(b))
	}

	offset := 0
	for i, rec := range recs {
		if rec.Size() != elementSize {
			return 0, fmt.Errorf("%w: record %d is %d bytes, batch element is %d", ErrElementSize, i, rec.Size(), elementSize)
		}
		rec.Pack(b[offset:])
		offset += elementSize
	}

	trailer := b[offset:total]
	padding := len(trailer) - countSize - postambleSize
	for i := 0; i < padding; i++ {
		trailer[i] = paddingByte
	}
	binary.LittleEndian.PutUint16(trailer[padding:], uint16(len(recs)))
	binary.LittleEndian.PutUint16(trailer[padding+countSize:], 1)
	return total, nil
}

// Counts returns the per-batch element counts stored in the trailer of body,
// most recent batch first.
func Counts(body []byte) ([]uint16, error) {
	if len(body) < postambleSize {
		return nil, nil
	}
	postamble := len(body) - postambleSize
	batchCount := int(binary.LittleEndian.Uint16(body[postamble:]))
	start := postamble - batchCount*countSize
	if start < 0 {
		return nil, fmt.Errorf("%w: %d batches in %d bytes", ErrMalformedTrailer, batchCount, len(body))
	}
	counts := make([]uint16, batchCount)
	for i := range counts {
		counts[i] = binary.LittleEndian.Uint16(body[start+i*countSize:])
	}
	return counts, nil
}

// Decode unpacks every element of every batch in body.
func Decode[T any](body []byte, elementSize int, unpack func([]byte) T) ([]T, error) {
	if elementSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrElementSize, elementSize)
	}
	counts, err := Counts(body)
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return []T{}, nil
	}

	trailer := TrailerSize(len(counts), elementSize)
	if trailer > len(body) {
		return nil, fmt.Errorf("%w: trailer %d exceeds body %d", ErrMalformedTrailer, trailer, len(body))
	}
	total := 0
	for _, c := range counts {
		total += int(c)
	}

	payload := total * elementSize
	if elementSize == 1 && payload+trailer != len(body) {
		// Single-byte elements may be followed by alignment padding the
		// counts do not describe.
		payload = len(body) - trailer
	}
	if total*elementSize > payload || payload+trailer > len(body) {
		return nil, fmt.Errorf("%w: %d elements of %d bytes in %d byte body", ErrMalformedTrailer, total, elementSize, len(body))
	}

	out := make([]T, 0, total)
	for i := 0; i < total; i++ {
		off := i * elementSize
		out = append(out, unpack(body[off:off+elementSize]))
	}
	return out, nil
}
