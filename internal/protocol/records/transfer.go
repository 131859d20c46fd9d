package records

import "github.com/danmuck/ledgerwire/internal/protocol"

const TransferSize = 128

// Transfer moves Amount from the debit account to the credit account.
type Transfer struct {
	ID              protocol.Uint128
	DebitAccountID  protocol.Uint128
	CreditAccountID protocol.Uint128
	Amount          protocol.Uint128
	PendingID       protocol.Uint128
	UserData128     protocol.Uint128
	UserData64      uint64
	UserData32      uint32
	Timeout         uint32
	Ledger          uint32
	Code            uint16
	Flags           TransferFlags
	Timestamp       uint64
}

func (Transfer) Size() int { return TransferSize }

func (t Transfer) Pack(b []byte) int {
	_ = b[TransferSize-1]
	protocol.PutUint128(b[0:], t.ID)
	protocol.PutUint128(b[16:], t.DebitAccountID)
	protocol.PutUint128(b[32:], t.CreditAccountID)
	protocol.PutUint128(b[48:], t.Amount)
	protocol.PutUint128(b[64:], t.PendingID)
	protocol.PutUint128(b[80:], t.UserData128)
	le.PutUint64(b[96:], t.UserData64)
	le.PutUint32(b[104:], t.UserData32)
	le.PutUint32(b[108:], t.Timeout)
	le.PutUint32(b[112:], t.Ledger)
	le.PutUint16(b[116:], t.Code)
	le.PutUint16(b[118:], uint16(t.Flags))
	le.PutUint64(b[120:], t.Timestamp)
	return TransferSize
}

func UnpackTransfer(b []byte) Transfer {
	_ = b[TransferSize-1]
	return Transfer{
		ID:              protocol.GetUint128(b[0:]),
		DebitAccountID:  protocol.GetUint128(b[16:]),
		CreditAccountID: protocol.GetUint128(b[32:]),
		Amount:          protocol.GetUint128(b[48:]),
		PendingID:       protocol.GetUint128(b[64:]),
		UserData128:     protocol.GetUint128(b[80:]),
		UserData64:      le.Uint64(b[96:]),
		UserData32:      le.Uint32(b[104:]),
		Timeout:         le.Uint32(b[108:]),
		Ledger:          le.Uint32(b[112:]),
		Code:            le.Uint16(b[116:]),
		Flags:           TransferFlags(le.Uint16(b[118:])),
		Timestamp:       le.Uint64(b[120:]),
	}
}
