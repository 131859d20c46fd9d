package records

import "github.com/danmuck/ledgerwire/internal/protocol"

const AccountSize = 128

// Account holds debit and credit balances on one ledger.
type Account struct {
	ID             protocol.Uint128
	DebitsPending  protocol.Uint128
	DebitsPosted   protocol.Uint128
	CreditsPending protocol.Uint128
	CreditsPosted  protocol.Uint128
	UserData128    protocol.Uint128
	UserData64     uint64
	UserData32     uint32
	Reserved       uint32
	Ledger         uint32
	Code           uint16
	Flags          AccountFlags
	Timestamp      uint64
}

func (Account) Size() int { return AccountSize }

func (a Account) Pack(b []byte) int {
	_ = b[AccountSize-1]
	protocol.PutUint128(b[0:], a.ID)
	protocol.PutUint128(b[16:], a.DebitsPending)
	protocol.PutUint128(b[32:], a.DebitsPosted)
	protocol.PutUint128(b[48:], a.CreditsPending)
	protocol.PutUint128(b[64:], a.CreditsPosted)
	protocol.PutUint128(b[80:], a.UserData128)
	le.PutUint64(b[96:], a.UserData64)
	le.PutUint32(b[104:], a.UserData32)
	le.PutUint32(b[108:], a.Reserved)
	le.PutUint32(b[112:], a.Ledger)
	le.PutUint16(b[116:], a.Code)
	le.PutUint16(b[118:], uint16(a.Flags))
	le.PutUint64(b[120:], a.Timestamp)
	return AccountSize
}

func UnpackAccount(b []byte) Account {
	_ = b[AccountSize-1]
	return Account{
		ID:             protocol.GetUint128(b[0:]),
		DebitsPending:  protocol.GetUint128(b[16:]),
		DebitsPosted:   protocol.GetUint128(b[32:]),
		CreditsPending: protocol.GetUint128(b[48:]),
		CreditsPosted:  protocol.GetUint128(b[64:]),
		UserData128:    protocol.GetUint128(b[80:]),
		UserData64:     le.Uint64(b[96:]),
		UserData32:     le.Uint32(b[104:]),
		Reserved:       le.Uint32(b[108:]),
		Ledger:         le.Uint32(b[112:]),
		Code:           le.Uint16(b[116:]),
		Flags:          AccountFlags(le.Uint16(b[118:])),
		Timestamp:      le.Uint64(b[120:]),
	}
}
