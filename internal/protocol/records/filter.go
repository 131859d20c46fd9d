package records

import "github.com/danmuck/ledgerwire/internal/protocol"

const (
	AccountFilterSize = 128
	QueryFilterSize   = 64
)

// AccountFilter selects transfers or balances of one account.
type AccountFilter struct {
	AccountID    protocol.Uint128
	UserData128  protocol.Uint128
	UserData64   uint64
	UserData32   uint32
	Code         uint16
	TimestampMin uint64
	TimestampMax uint64
	Limit        uint32
	Flags        AccountFilterFlags
}

func (AccountFilter) Size() int { return AccountFilterSize }

func (f AccountFilter) Pack(b []byte) int {
	_ = b[AccountFilterSize-1]
	protocol.PutUint128(b[0:], f.AccountID)
	protocol.PutUint128(b[16:], f.UserData128)
	le.PutUint64(b[32:], f.UserData64)
	le.PutUint32(b[40:], f.UserData32)
	le.PutUint16(b[44:], f.Code)
	clear(b[46:104])
	le.PutUint64(b[104:], f.TimestampMin)
	le.PutUint64(b[112:], f.TimestampMax)
	le.PutUint32(b[120:], f.Limit)
	le.PutUint32(b[124:], uint32(f.Flags))
	return AccountFilterSize
}

func UnpackAccountFilter(b []byte) AccountFilter {
	_ = b[AccountFilterSize-1]
	return AccountFilter{
		AccountID:    protocol.GetUint128(b[0:]),
		UserData128:  protocol.GetUint128(b[16:]),
		UserData64:   le.Uint64(b[32:]),
		UserData32:   le.Uint32(b[40:]),
		Code:         le.Uint16(b[44:]),
		TimestampMin: le.Uint64(b[104:]),
		TimestampMax: le.Uint64(b[112:]),
		Limit:        le.Uint32(b[120:]),
		Flags:        AccountFilterFlags(le.Uint32(b[124:])),
	}
}

// QueryFilter selects accounts or transfers by their indexed fields.
type QueryFilter struct {
	UserData128  protocol.Uint128
	UserData64   uint64
	UserData32   uint32
	Ledger       uint32
	Code         uint16
	TimestampMin uint64
	TimestampMax uint64
	Limit        uint32
	Flags        QueryFilterFlags
}

func (QueryFilter) Size() int { return QueryFilterSize }

func (f QueryFilter) Pack(b []byte) int {
	_ = b[QueryFilterSize-1]
	protocol.PutUint128(b[0:], f.UserData128)
	le.PutUint64(b[16:], f.UserData64)
	le.PutUint32(b[24:], f.UserData32)
	le.PutUint32(b[28:], f.Ledger)
	le.PutUint16(b[32:], f.Code)
	clear(b[34:40])
	le.PutUint64(b[40:], f.TimestampMin)
	le.PutUint64(b[48:], f.TimestampMax)
	le.PutUint32(b[56:], f.Limit)
	le.PutUint32(b[60:], uint32(f.Flags))
	return QueryFilterSize
}

func UnpackQueryFilter(b []byte) QueryFilter {
	_ = b[QueryFilterSize-1]
	return QueryFilter{
		UserData128:  protocol.GetUint128(b[0:]),
		UserData64:   le.Uint64(b[16:]),
		UserData32:   le.Uint32(b[24:]),
		Ledger:       le.Uint32(b[28:]),
		Code:         le.Uint16(b[32:]),
		TimestampMin: le.Uint64(b[40:]),
		TimestampMax: le.Uint64(b[48:]),
		Limit:        le.Uint32(b[56:]),
		Flags:        QueryFilterFlags(le.Uint32(b[60:])),
	}
}
