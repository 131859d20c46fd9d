package records

import "github.com/danmuck/ledgerwire/internal/protocol"

const AccountBalanceSize = 128

// AccountBalance is one historical balance snapshot from GET_ACCOUNT_BALANCES.
// Bytes [64,120) are reserved.
type AccountBalance struct {
	DebitsPending  protocol.Uint128
	DebitsPosted   protocol.Uint128
	CreditsPending protocol.Uint128
	CreditsPosted  protocol.Uint128
	Timestamp      uint64
}

func (AccountBalance) Size() int { return AccountBalanceSize }

func (a AccountBalance) Pack(b []byte) int {
	_ = b[AccountBalanceSize-1]
	protocol.PutUint128(b[0:], a.DebitsPending)
	protocol.PutUint128(b[16:], a.DebitsPosted)
	protocol.PutUint128(b[32:], a.CreditsPending)
	protocol.PutUint128(b[48:], a.CreditsPosted)
	clear(b[64:120])
	le.PutUint64(b[120:], a.Timestamp)
	return AccountBalanceSize
}

func UnpackAccountBalance(b []byte) AccountBalance {
	_ = b[AccountBalanceSize-1]
	return AccountBalance{
		DebitsPending:  protocol.GetUint128(b[0:]),
		DebitsPosted:   protocol.GetUint128(b[16:]),
		CreditsPending: protocol.GetUint128(b[32:]),
		CreditsPosted:  protocol.GetUint128(b[48:]),
		Timestamp:      le.Uint64(b[120:]),
	}
}
