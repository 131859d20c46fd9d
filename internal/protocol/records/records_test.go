package records

import (
	"bytes"
	"testing"

	"github.com/danmuck/ledgerwire/internal/protocol"
	"github.com/stretchr/testify/require"
)

var big128 = protocol.Uint128{Lo: 0xDEADBEEF, Hi: 0xCAFEBABE}

func TestAccountPackUnpack(t *testing.T) {
	in := Account{
		ID:             big128,
		DebitsPending:  protocol.U128(1),
		DebitsPosted:   protocol.U128(2),
		CreditsPending: protocol.U128(3),
		CreditsPosted:  protocol.Uint128{Hi: 1},
		UserData128:    protocol.MaxUint128,
		UserData64:     64,
		UserData32:     32,
		Ledger:         700,
		Code:           10,
		Flags:          AccountLinked | AccountHistory,
		Timestamp:      1719043200000000000,
	}
	buf := make([]byte, AccountSize)
	require.Equal(t, AccountSize, in.Pack(buf))
	require.Equal(t, in, UnpackAccount(buf))

	require.Equal(t, uint32(700), le.Uint32(buf[112:]))
	require.Equal(t, uint16(10), le.Uint16(buf[116:]))
	require.True(t, UnpackAccount(buf).Flags.Has(AccountHistory))
}

func TestTransferPackUnpack(t *testing.T) {
	in := Transfer{
		ID:              protocol.U128(99),
		DebitAccountID:  protocol.U128(1),
		CreditAccountID: protocol.U128(2),
		Amount:          protocol.Uint128{Lo: ^uint64(0)},
		PendingID:       big128,
		UserData128:     protocol.U128(5),
		UserData64:      6,
		UserData32:      7,
		Timeout:         8,
		Ledger:          700,
		Code:            10,
		Flags:           TransferPending | TransferImported,
		Timestamp:       9,
	}
	buf := make([]byte, TransferSize)
	require.Equal(t, TransferSize, in.Pack(buf))
	require.Equal(t, in, UnpackTransfer(buf))
	require.Equal(t, uint32(8), le.Uint32(buf[108:]))
}

func TestAccountBalanceReadsOnlyDefinedFields(t *testing.T) {
	in := AccountBalance{
		DebitsPending:  protocol.U128(1),
		DebitsPosted:   protocol.U128(2),
		CreditsPending: protocol.U128(3),
		CreditsPosted:  big128,
		Timestamp:      42,
	}
	buf := bytes.Repeat([]byte{0xEE}, AccountBalanceSize)
	in.Pack(buf)
	require.Equal(t, make([]byte, 56), buf[64:120])
	require.Equal(t, in, UnpackAccountBalance(buf))
}

func TestResultRecords(t *testing.T) {
	buf := make([]byte, ResultSize)
	CreateAccountsResult{Index: 3, Result: AccountResultExists}.Pack(buf)
	got := UnpackCreateAccountsResult(buf)
	require.Equal(t, uint32(3), got.Index)
	require.Equal(t, AccountResultExists, got.Result)
	require.Equal(t, "exists", got.Result.String())

	CreateTransfersResult{Index: 1, Result: TransferResultExceedsCredits}.Pack(buf)
	tr := UnpackCreateTransfersResult(buf)
	require.Equal(t, TransferResultExceedsCredits, tr.Result)
	require.Equal(t, "exceeds_credits", tr.Result.String())
	require.Equal(t, "createTransferResult(999)", CreateTransferResult(999).String())
}

func TestRegisterRequestZeroesReserved(t *testing.T) {
	buf := bytes.Repeat([]byte{0xFF}, RegisterRequestSize)
	n := RegisterRequest{BatchSizeLimit: 8190}.Pack(buf)
	require.Equal(t, RegisterRequestSize, n)
	require.Equal(t, make([]byte, RegisterRequestSize-4), buf[4:])
	require.Equal(t, uint32(8190), UnpackRegisterRequest(buf).BatchSizeLimit)
}

func TestFiltersPackUnpack(t *testing.T) {
	af := AccountFilter{
		AccountID:    big128,
		UserData128:  protocol.U128(1),
		UserData64:   2,
		UserData32:   3,
		Code:         4,
		TimestampMin: 5,
		TimestampMax: 6,
		Limit:        7,
		Flags:        AccountFilterDebits | AccountFilterCredits,
	}
	abuf := bytes.Repeat([]byte{0xAB}, AccountFilterSize)
	require.Equal(t, AccountFilterSize, af.Pack(abuf))
	require.Equal(t, make([]byte, 58), abuf[46:104])
	require.Equal(t, af, UnpackAccountFilter(abuf))

	qf := QueryFilter{
		UserData128:  protocol.U128(9),
		Ledger:       700,
		Code:         10,
		TimestampMax: 11,
		Limit:        12,
		Flags:        QueryFilterReversed,
	}
	qbuf := bytes.Repeat([]byte{0xAB}, QueryFilterSize)
	require.Equal(t, QueryFilterSize, qf.Pack(qbuf))
	require.Equal(t, make([]byte, 6), qbuf[34:40])
	require.Equal(t, qf, UnpackQueryFilter(qbuf))
}

func TestIDs(t *testing.T) {
	recs := IDs(protocol.U128(1), big128)
	require.Len(t, recs, 2)
	buf := make([]byte, IDSize)
	require.Equal(t, IDSize, recs[1].Pack(buf))
	require.Equal(t, ID(big128), UnpackID(buf))
}

func TestAsWidensTypedSlices(t *testing.T) {
	accounts := []Account{{ID: protocol.U128(1)}, {ID: protocol.U128(2)}}
	recs := As(accounts)
	require.Len(t, recs, 2)
	require.Equal(t, AccountSize, recs[0].Size())
}
