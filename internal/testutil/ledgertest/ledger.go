package ledgertest

import (
	"slices"
	"sync"

	"github.com/danmuck/ledgerwire/internal/protocol"
	"github.com/danmuck/ledgerwire/internal/protocol/records"
)

// maxResults keeps any single reply inside one message.
const maxResults = protocol.BodySizeMax/records.AccountSize - 1

type snapshot struct {
	balance  records.AccountBalance
	transfer records.Transfer
}

// ledger is a single-node, in-memory account store with the validation rules
// a client is most likely to trip. Linked chains and imported events are not
// modelled.
type ledger struct {
	mu        sync.Mutex
	clock     uint64
	accounts  map[protocol.Uint128]records.Account
	aorder    []protocol.Uint128
	transfers map[protocol.Uint128]records.Transfer
	torder    []protocol.Uint128
	resolved  map[protocol.Uint128]records.TransferFlags
	history   map[protocol.Uint128][]snapshot
}

func newLedger() *ledger {
	return &ledger{
		accounts:  make(map[protocol.Uint128]records.Account),
		transfers: make(map[protocol.Uint128]records.Transfer),
		resolved:  make(map[protocol.Uint128]records.TransferFlags),
		history:   make(map[protocol.Uint128][]snapshot),
	}
}

func (l *ledger) tick() uint64 {
	l.clock++
	return l.clock
}

func (l *ledger) createAccounts(in []records.Account) []records.CreateAccountsResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []records.CreateAccountsResult
	for i, a := range in {
		if code := l.createAccount(a); code != records.AccountResultOK {
			out = append(out, records.CreateAccountsResult{Index: uint32(i), Result: code})
		}
	}
	return out
}

func (l *ledger) createAccount(a records.Account) records.CreateAccountResult {
	switch {
	case a.Timestamp != 0:
		return records.AccountResultTimestampMustBeZero
	case a.Reserved != 0:
		return records.AccountResultReservedField
	case a.ID.IsZero():
		return records.AccountResultIDMustNotBeZero
	case a.ID == protocol.MaxUint128:
		return records.AccountResultIDMustNotBeIntMax
	case a.Flags.Has(records.AccountDebitsMustNotExceedCredits | records.AccountCreditsMustNotExceedDebits):
		return records.AccountResultFlagsAreMutuallyExclusive
	case !a.DebitsPending.IsZero():
		return records.AccountResultDebitsPendingMustBeZero
	case !a.DebitsPosted.IsZero():
		return records.AccountResultDebitsPostedMustBeZero
	case !a.CreditsPending.IsZero():
		return records.AccountResultCreditsPendingMustBeZero
	case !a.CreditsPosted.IsZero():
		return records.AccountResultCreditsPostedMustBeZero
	case a.Ledger == 0:
		return records.AccountResultLedgerMustNotBeZero
	case a.Code == 0:
		return records.AccountResultCodeMustNotBeZero
	}

	if existing, ok := l.accounts[a.ID]; ok {
		switch {
		case existing.Flags != a.Flags:
			return records.AccountResultExistsWithDifferentFlags
		case existing.UserData128 != a.UserData128:
			return records.AccountResultExistsWithDifferentUserData128
		case existing.UserData64 != a.UserData64:
			return records.AccountResultExistsWithDifferentUserData64
		case existing.UserData32 != a.UserData32:
			return records.AccountResultExistsWithDifferentUserData32
		case existing.Ledger != a.Ledger:
			return records.AccountResultExistsWithDifferentLedger
		case existing.Code != a.Code:
			return records.AccountResultExistsWithDifferentCode
		}
		return records.AccountResultExists
	}

	a.Timestamp = l.tick()
	l.accounts[a.ID] = a
	l.aorder = append(l.aorder, a.ID)
	return records.AccountResultOK
}

func (l *ledger) createTransfers(in []records.Transfer) []records.CreateTransfersResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []records.CreateTransfersResult
	for i, t := range in {
		if code := l.createTransfer(t); code != records.TransferResultOK {
			out = append(out, records.CreateTransfersResult{Index: uint32(i), Result: code})
		}
	}
	return out
}

func (l *ledger) createTransfer(t records.Transfer) records.CreateTransferResult {
	resolving := t.Flags.Has(records.TransferPostPendingTransfer) || t.Flags.Has(records.TransferVoidPendingTransfer)
	switch {
	case t.Timestamp != 0:
		return records.TransferResultTimestampMustBeZero
	case t.ID.IsZero():
		return records.TransferResultIDMustNotBeZero
	case t.ID == protocol.MaxUint128:
		return records.TransferResultIDMustNotBeIntMax
	case t.Flags.Has(records.TransferPostPendingTransfer | records.TransferVoidPendingTransfer),
		t.Flags.Has(records.TransferPending) && resolving:
		return records.TransferResultFlagsAreMutuallyExclusive
	}
	if existing, ok := l.transfers[t.ID]; ok {
		switch {
		case existing.Flags != t.Flags:
			return records.TransferResultExistsWithDifferentFlags
		case existing.DebitAccountID != t.DebitAccountID:
			return records.TransferResultExistsWithDifferentDebitAccountID
		case existing.CreditAccountID != t.CreditAccountID:
			return records.TransferResultExistsWithDifferentCreditAccountID
		case existing.Amount != t.Amount:
			return records.TransferResultExistsWithDifferentAmount
		case existing.Ledger != t.Ledger:
			return records.TransferResultExistsWithDifferentLedger
		case existing.Code != t.Code:
			return records.TransferResultExistsWithDifferentCode
		}
		return records.TransferResultExists
	}
	if resolving {
		return l.resolvePending(t)
	}

	switch {
	case t.DebitAccountID.IsZero():
		return records.TransferResultDebitAccountIDMustNotBeZero
	case t.CreditAccountID.IsZero():
		return records.TransferResultCreditAccountIDMustNotBeZero
	case t.DebitAccountID == t.CreditAccountID:
		return records.TransferResultAccountsMustBeDifferent
	case !t.PendingID.IsZero():
		return records.TransferResultPendingIDMustBeZero
	case t.Timeout != 0 && !t.Flags.Has(records.TransferPending):
		return records.TransferResultTimeoutReservedForPendingTransfer
	case t.Ledger == 0:
		return records.TransferResultLedgerMustNotBeZero
	case t.Code == 0:
		return records.TransferResultCodeMustNotBeZero
	}

	dr, ok := l.accounts[t.DebitAccountID]
	if !ok {
		return records.TransferResultDebitAccountNotFound
	}
	cr, ok := l.accounts[t.CreditAccountID]
	if !ok {
		return records.TransferResultCreditAccountNotFound
	}
	switch {
	case dr.Ledger != cr.Ledger:
		return records.TransferResultAccountsMustHaveTheSameLedger
	case t.Ledger != dr.Ledger:
		return records.TransferResultTransferMustHaveTheSameLedgerAsAccounts
	case dr.Flags.Has(records.AccountClosed):
		return records.TransferResultDebitAccountAlreadyClosed
	case cr.Flags.Has(records.AccountClosed):
		return records.TransferResultCreditAccountAlreadyClosed
	}

	pending := t.Flags.Has(records.TransferPending)
	if code := apply(&dr, &cr, t.Amount, pending); code != records.TransferResultOK {
		return code
	}
	t.Timestamp = l.tick()
	l.commit(t, dr, cr)
	return records.TransferResultOK
}

func (l *ledger) resolvePending(t records.Transfer) records.CreateTransferResult {
	if t.PendingID.IsZero() {
		return records.TransferResultPendingIDMustNotBeZero
	}
	if t.PendingID == t.ID {
		return records.TransferResultPendingIDMustBeDifferent
	}
	p, ok := l.transfers[t.PendingID]
	if !ok {
		return records.TransferResultPendingTransferNotFound
	}
	if !p.Flags.Has(records.TransferPending) {
		return records.TransferResultPendingTransferNotPending
	}
	switch l.resolved[p.ID] {
	case records.TransferPostPendingTransfer:
		return records.TransferResultPendingTransferAlreadyPosted
	case records.TransferVoidPendingTransfer:
		return records.TransferResultPendingTransferAlreadyVoided
	}

	amount := t.Amount
	if amount.IsZero() {
		amount = p.Amount
	}
	if amount.Cmp(p.Amount) > 0 {
		return records.TransferResultExceedsPendingTransferAmount
	}

	dr := l.accounts[p.DebitAccountID]
	cr := l.accounts[p.CreditAccountID]
	dr.DebitsPending = sub(dr.DebitsPending, p.Amount)
	cr.CreditsPending = sub(cr.CreditsPending, p.Amount)

	flag := records.TransferVoidPendingTransfer
	if t.Flags.Has(records.TransferPostPendingTransfer) {
		flag = records.TransferPostPendingTransfer
		if code := apply(&dr, &cr, amount, false); code != records.TransferResultOK {
			return code
		}
	}

	t.DebitAccountID = p.DebitAccountID
	t.CreditAccountID = p.CreditAccountID
	t.Ledger = p.Ledger
	t.Code = p.Code
	t.Amount = amount
	t.Timestamp = l.tick()
	l.resolved[p.ID] = flag
	l.commit(t, dr, cr)
	return records.TransferResultOK
}

func apply(dr, cr *records.Account, amount protocol.Uint128, pending bool) records.CreateTransferResult {
	if dr.Flags.Has(records.AccountDebitsMustNotExceedCredits) {
		debits, o1 := dr.DebitsPending.Add(dr.DebitsPosted)
		debits, o2 := debits.Add(amount)
		if o1 || o2 || debits.Cmp(dr.CreditsPosted) > 0 {
			return records.TransferResultExceedsCredits
		}
	}
	if cr.Flags.Has(records.AccountCreditsMustNotExceedDebits) {
		credits, o1 := cr.CreditsPending.Add(cr.CreditsPosted)
		credits, o2 := credits.Add(amount)
		if o1 || o2 || credits.Cmp(cr.DebitsPosted) > 0 {
			return records.TransferResultExceedsDebits
		}
	}

	if pending {
		debits, overflow := dr.DebitsPending.Add(amount)
		if overflow {
			return records.TransferResultOverflowsDebitsPending
		}
		credits, overflow := cr.CreditsPending.Add(amount)
		if overflow {
			return records.TransferResultOverflowsCreditsPending
		}
		dr.DebitsPending, cr.CreditsPending = debits, credits
		return records.TransferResultOK
	}

	debits, overflow := dr.DebitsPosted.Add(amount)
	if overflow {
		return records.TransferResultOverflowsDebitsPosted
	}
	credits, overflow := cr.CreditsPosted.Add(amount)
	if overflow {
		return records.TransferResultOverflowsCreditsPosted
	}
	dr.DebitsPosted, cr.CreditsPosted = debits, credits
	return records.TransferResultOK
}

// sub assumes a >= b.
func sub(a, b protocol.Uint128) protocol.Uint128 {
	lo := a.Lo - b.Lo
	hi := a.Hi - b.Hi
	if a.Lo < b.Lo {
		hi--
	}
	return protocol.Uint128{Lo: lo, Hi: hi}
}

func (l *ledger) commit(t records.Transfer, dr, cr records.Account) {
	l.transfers[t.ID] = t
	l.torder = append(l.torder, t.ID)
	l.accounts[dr.ID] = dr
	l.accounts[cr.ID] = cr
	for _, a := range []records.Account{dr, cr} {
		if !a.Flags.Has(records.AccountHistory) {
			continue
		}
		l.history[a.ID] = append(l.history[a.ID], snapshot{
			balance: records.AccountBalance{
				DebitsPending:  a.DebitsPending,
				DebitsPosted:   a.DebitsPosted,
				CreditsPending: a.CreditsPending,
				CreditsPosted:  a.CreditsPosted,
				Timestamp:      t.Timestamp,
			},
			transfer: t,
		})
	}
}

func (l *ledger) lookupAccounts(ids []records.ID) []records.Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []records.Account
	for _, id := range ids {
		if a, ok := l.accounts[protocol.Uint128(id)]; ok {
			out = append(out, a)
		}
	}
	return out
}

func (l *ledger) lookupTransfers(ids []records.ID) []records.Transfer {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []records.Transfer
	for _, id := range ids {
		if t, ok := l.transfers[protocol.Uint128(id)]; ok {
			out = append(out, t)
		}
	}
	return out
}

func (l *ledger) accountTransfers(f records.AccountFilter) []records.Transfer {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []records.Transfer
	for _, id := range l.torder {
		if t := l.transfers[id]; matchAccountFilter(f, t) {
			out = append(out, t)
		}
	}
	return window(out, f.Limit, f.Flags&records.AccountFilterReversed != 0)
}

func (l *ledger) accountBalances(f records.AccountFilter) []records.AccountBalance {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []records.AccountBalance
	for _, s := range l.history[f.AccountID] {
		if matchAccountFilter(f, s.transfer) {
			out = append(out, s.balance)
		}
	}
	return window(out, f.Limit, f.Flags&records.AccountFilterReversed != 0)
}

func (l *ledger) queryAccounts(f records.QueryFilter) []records.Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []records.Account
	for _, id := range l.aorder {
		a := l.accounts[id]
		if matchQuery(f, a.UserData128, a.UserData64, a.UserData32, a.Ledger, a.Code, a.Timestamp) {
			out = append(out, a)
		}
	}
	return window(out, f.Limit, f.Flags&records.QueryFilterReversed != 0)
}

func (l *ledger) queryTransfers(f records.QueryFilter) []records.Transfer {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []records.Transfer
	for _, id := range l.torder {
		t := l.transfers[id]
		if matchQuery(f, t.UserData128, t.UserData64, t.UserData32, t.Ledger, t.Code, t.Timestamp) {
			out = append(out, t)
		}
	}
	return window(out, f.Limit, f.Flags&records.QueryFilterReversed != 0)
}

func matchAccountFilter(f records.AccountFilter, t records.Transfer) bool {
	side := (f.Flags&records.AccountFilterDebits != 0 && t.DebitAccountID == f.AccountID) ||
		(f.Flags&records.AccountFilterCredits != 0 && t.CreditAccountID == f.AccountID)
	if !side {
		return false
	}
	return matchFields(f.UserData128, f.UserData64, f.UserData32, f.Code, t.UserData128, t.UserData64, t.UserData32, t.Code) &&
		inRange(t.Timestamp, f.TimestampMin, f.TimestampMax)
}

func matchQuery(f records.QueryFilter, ud128 protocol.Uint128, ud64 uint64, ud32, ledger uint32, code uint16, ts uint64) bool {
	if f.Ledger != 0 && f.Ledger != ledger {
		return false
	}
	return matchFields(f.UserData128, f.UserData64, f.UserData32, f.Code, ud128, ud64, ud32, code) &&
		inRange(ts, f.TimestampMin, f.TimestampMax)
}

// Zero filter fields match anything.
func matchFields(f128 protocol.Uint128, f64 uint64, f32 uint32, fcode uint16, v128 protocol.Uint128, v64 uint64, v32 uint32, vcode uint16) bool {
	return (f128.IsZero() || f128 == v128) &&
		(f64 == 0 || f64 == v64) &&
		(f32 == 0 || f32 == v32) &&
		(fcode == 0 || fcode == vcode)
}

func inRange(ts, lo, hi uint64) bool {
	return (lo == 0 || ts >= lo) && (hi == 0 || ts <= hi)
}

func window[T any](in []T, limit uint32, reversed bool) []T {
	if reversed {
		slices.Reverse(in)
	}
	n := min(int(limit), maxResults, len(in))
	return in[:n]
}
