package multibatch

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/danmuck/ledgerwire/internal/protocol"
	"github.com/danmuck/ledgerwire/internal/protocol/records"
	"github.com/stretchr/testify/require"
)

// byteRecord is a one-byte element used to exercise odd element sizes.
type byteRecord uint8

func (byteRecord) Size() int           { return 1 }
func (r byteRecord) Pack(b []byte) int { b[0] = byte(r); return 1 }

type tripleRecord [3]byte

func (tripleRecord) Size() int           { return 3 }
func (r tripleRecord) Pack(b []byte) int { return copy(b, r[:]) }

func TestTrailerSize(t *testing.T) {
	require.Equal(t, 128, TrailerSize(1, 128))
	require.Equal(t, 8, TrailerSize(1, 8))
	require.Equal(t, 4, TrailerSize(1, 1))
	require.Equal(t, 6, TrailerSize(1, 3))
	require.Equal(t, 16, TrailerSize(7, 16))
	require.Equal(t, 32, TrailerSize(8, 16))
	for _, n := range []int{0, 1, 2, 10} {
		require.Equal(t, n*2+2, TrailerSize(n, 0))
	}
}

func TestAccountsRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 300} {
		accounts := make([]records.Account, n)
		for i := range accounts {
			accounts[i] = records.Account{
				ID:     protocol.Uint128{Lo: uint64(i + 1), Hi: uint64(i)},
				Ledger: 700,
				Code:   10,
			}
		}
		buf := make([]byte, EncodedSize(n, records.AccountSize))
		written, err := Encode(buf, records.As(accounts), records.AccountSize)
		require.NoError(t, err)
		require.Equal(t, n*records.AccountSize+records.AccountSize, written)

		got, err := Decode(buf[:written], records.AccountSize, records.UnpackAccount)
		require.NoError(t, err)
		require.Equal(t, accounts, got, "n=%d", n)
	}
}

func TestTrailerLayout(t *testing.T) {
	recs := []records.Record{
		records.CreateAccountsResult{Index: 1, Result: records.AccountResultExists},
		records.CreateAccountsResult{Index: 4, Result: records.AccountResultLedgerMustNotBeZero},
	}
	buf := make([]byte, EncodedSize(len(recs), records.ResultSize))
	written, err := Encode(buf, recs, records.ResultSize)
	require.NoError(t, err)
	require.Equal(t, 24, written)

	trailer := buf[16:24]
	require.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, trailer[:4])
	require.Equal(t, uint16(2), binary.LittleEndian.Uint16(trailer[4:]))
	require.Equal(t, uint16(1), binary.LittleEndian.Uint16(trailer[6:]))

	counts, err := Counts(buf[:written])
	require.NoError(t, err)
	require.Equal(t, []uint16{2}, counts)
}

func TestOddElementSizes(t *testing.T) {
	bytesIn := []records.Record{byteRecord(1), byteRecord(2), byteRecord(3)}
	buf := make([]byte, EncodedSize(len(bytesIn), 1))
	n, err := Encode(buf, bytesIn, 1)
	require.NoError(t, err)
	got, err := Decode(buf[:n], 1, func(b []byte) byte { return b[0] })
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, got)

	triples := []records.Record{tripleRecord{1, 2, 3}, tripleRecord{4, 5, 6}}
	buf = make([]byte, EncodedSize(len(triples), 3))
	n, err = Encode(buf, triples, 3)
	require.NoError(t, err)
	require.Equal(t, 12, n)
	gotTriples, err := Decode(buf[:n], 3, func(b []byte) [3]byte { return [3]byte(b) })
	require.NoError(t, err)
	require.Equal(t, [][3]byte{{1, 2, 3}, {4, 5, 6}}, gotTriples)
}

func TestDecodeSingleBytePayloadPadding(t *testing.T) {
	// Three one-byte elements followed by one byte of alignment padding.
	body := []byte{7, 8, 9, 0, 0xFF, 0xFF, 3, 0, 1, 0}
	got, err := Decode(body, 1, func(b []byte) byte { return b[0] })
	require.NoError(t, err)
	require.Equal(t, []byte{7, 8, 9}, got)
}

func TestDecodeSumsMultipleBatches(t *testing.T) {
	// Two batches of 8-byte results: 1 element then 2 elements.
	body := make([]byte, 3*8+TrailerSize(2, 8))
	for i := 0; i < 3; i++ {
		records.CreateTransfersResult{Index: uint32(i), Result: records.TransferResultExists}.Pack(body[i*8:])
	}
	trailer := body[24:]
	for i := range trailer {
		trailer[i] = 0xFF
	}
	end := len(body)
	binary.LittleEndian.PutUint16(body[end-6:], 2)
	binary.LittleEndian.PutUint16(body[end-4:], 1)
	binary.LittleEndian.PutUint16(body[end-2:], 2)

	got, err := Decode(body, 8, records.UnpackCreateTransfersResult)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, uint32(2), got[2].Index)
}

func TestDecodeEmptyBodies(t *testing.T) {
	got, err := Decode(nil, 128, records.UnpackAccount)
	require.NoError(t, err)
	require.Empty(t, got)

	zeroBatches := make([]byte, 128)
	got, err = Decode(zeroBatches, 128, records.UnpackAccount)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestDecodeRejectsMalformedTrailer(t *testing.T) {
	body := make([]byte, 8)
	binary.LittleEndian.PutUint16(body[4:], 500)
	binary.LittleEndian.PutUint16(body[6:], 1)
	_, err := Decode(body, 8, records.UnpackCreateAccountsResult)
	require.True(t, errors.Is(err, ErrMalformedTrailer), "got %v", err)

	tooManyBatches := []byte{0, 0, 0x10, 0}
	_, err = Decode(tooManyBatches, 8, records.UnpackCreateAccountsResult)
	require.ErrorIs(t, err, ErrMalformedTrailer)
}

func TestEncodeRejectsBadInput(t *testing.T) {
	_, err := Encode(make([]byte, 256), []records.Record{records.Account{}}, 0)
	require.ErrorIs(t, err, ErrElementSize)

	_, err = Encode(make([]byte, 256), []records.Record{records.CreateAccountsResult{}}, 128)
	require.ErrorIs(t, err, ErrElementSize)

	_, err = Encode(make([]byte, 10), []records.Record{records.Account{}}, 128)
	require.ErrorIs(t, err, ErrShortBuffer)
}
