package ledgertest

import (
	"testing"

	"github.com/danmuck/ledgerwire/internal/protocol"
	"github.com/danmuck/ledgerwire/internal/protocol/records"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, l *ledger) {
	t.Helper()
	res := l.createAccounts([]records.Account{
		{ID: protocol.U128(1), Ledger: 1, Code: 1, Flags: records.AccountHistory},
		{ID: protocol.U128(2), Ledger: 1, Code: 1, Flags: records.AccountCreditsMustNotExceedDebits},
		{ID: protocol.U128(3), Ledger: 2, Code: 1, UserData32: 77},
	})
	require.Empty(t, res)
}

func TestCreateAccountsValidation(t *testing.T) {
	l := newLedger()
	seed(t, l)

	res := l.createAccounts([]records.Account{
		{ID: protocol.U128(10), Ledger: 1, Code: 1},
		{ID: protocol.U128(1), Ledger: 1, Code: 1, Flags: records.AccountHistory},
		{Ledger: 1, Code: 1},
		{ID: protocol.U128(11), Code: 1},
		{ID: protocol.U128(12), Ledger: 1, Code: 1, Timestamp: 5},
		{ID: protocol.U128(1), Ledger: 1, Code: 1},
	})
	require.Equal(t, []records.CreateAccountsResult{
		{Index: 1, Result: records.AccountResultExists},
		{Index: 2, Result: records.AccountResultIDMustNotBeZero},
		{Index: 3, Result: records.AccountResultLedgerMustNotBeZero},
		{Index: 4, Result: records.AccountResultTimestampMustBeZero},
		{Index: 5, Result: records.AccountResultExistsWithDifferentFlags},
	}, res)
}

func TestCreateTransfersPostsBalances(t *testing.T) {
	l := newLedger()
	seed(t, l)

	res := l.createTransfers([]records.Transfer{
		{ID: protocol.U128(101), DebitAccountID: protocol.U128(2), CreditAccountID: protocol.U128(1), Amount: protocol.U128(70), Ledger: 1, Code: 1},
		{ID: protocol.U128(100), DebitAccountID: protocol.U128(1), CreditAccountID: protocol.U128(2), Amount: protocol.U128(50), Ledger: 1, Code: 1},
		{ID: protocol.U128(102), DebitAccountID: protocol.U128(1), CreditAccountID: protocol.U128(3), Amount: protocol.U128(1), Ledger: 1, Code: 1},
		{ID: protocol.U128(103), DebitAccountID: protocol.U128(1), CreditAccountID: protocol.U128(9), Amount: protocol.U128(1), Ledger: 1, Code: 1},
		{ID: protocol.U128(104), DebitAccountID: protocol.U128(1), CreditAccountID: protocol.U128(1), Amount: protocol.U128(1), Ledger: 1, Code: 1},
	})
	require.Equal(t, []records.CreateTransfersResult{
		{Index: 2, Result: records.TransferResultAccountsMustHaveTheSameLedger},
		{Index: 3, Result: records.TransferResultCreditAccountNotFound},
		{Index: 4, Result: records.TransferResultAccountsMustBeDifferent},
	}, res)

	accounts := l.lookupAccounts([]records.ID{records.ID(protocol.U128(1)), records.ID(protocol.U128(2))})
	require.Len(t, accounts, 2)
	require.Equal(t, protocol.U128(50), accounts[0].DebitsPosted)
	require.Equal(t, protocol.U128(70), accounts[1].DebitsPosted)
	require.Equal(t, protocol.U128(50), accounts[1].CreditsPosted)

	res = l.createTransfers([]records.Transfer{
		{ID: protocol.U128(105), DebitAccountID: protocol.U128(1), CreditAccountID: protocol.U128(2), Amount: protocol.U128(21), Ledger: 1, Code: 1},
	})
	require.Equal(t, []records.CreateTransfersResult{{Index: 0, Result: records.TransferResultExceedsDebits}}, res)
}

func TestPendingTransfersResolve(t *testing.T) {
	l := newLedger()
	seed(t, l)

	require.Empty(t, l.createTransfers([]records.Transfer{
		{ID: protocol.U128(199), DebitAccountID: protocol.U128(2), CreditAccountID: protocol.U128(1), Amount: protocol.U128(100), Ledger: 1, Code: 1},
	}))
	pending := records.Transfer{
		ID: protocol.U128(200), DebitAccountID: protocol.U128(1), CreditAccountID: protocol.U128(2),
		Amount: protocol.U128(10), Ledger: 1, Code: 1, Flags: records.TransferPending,
	}
	require.Empty(t, l.createTransfers([]records.Transfer{pending}))

	a := l.lookupAccounts([]records.ID{records.ID(protocol.U128(1))})[0]
	require.Equal(t, protocol.U128(10), a.DebitsPending)

	post := records.Transfer{ID: protocol.U128(201), PendingID: protocol.U128(200), Flags: records.TransferPostPendingTransfer}
	require.Empty(t, l.createTransfers([]records.Transfer{post}))
	again := records.Transfer{ID: protocol.U128(202), PendingID: protocol.U128(200), Flags: records.TransferVoidPendingTransfer}
	require.Equal(t, []records.CreateTransfersResult{{Index: 0, Result: records.TransferResultPendingTransferAlreadyPosted}},
		l.createTransfers([]records.Transfer{again}))

	a = l.lookupAccounts([]records.ID{records.ID(protocol.U128(1))})[0]
	require.True(t, a.DebitsPending.IsZero())
	require.Equal(t, protocol.U128(10), a.DebitsPosted)
}

func TestFiltersAndHistory(t *testing.T) {
	l := newLedger()
	seed(t, l)
	l.createTransfers([]records.Transfer{
		{ID: protocol.U128(300), DebitAccountID: protocol.U128(2), CreditAccountID: protocol.U128(1), Amount: protocol.U128(5), Ledger: 1, Code: 1, UserData64: 9},
		{ID: protocol.U128(301), DebitAccountID: protocol.U128(1), CreditAccountID: protocol.U128(2), Amount: protocol.U128(2), Ledger: 1, Code: 2},
		{ID: protocol.U128(302), DebitAccountID: protocol.U128(2), CreditAccountID: protocol.U128(1), Amount: protocol.U128(1), Ledger: 1, Code: 1, UserData64: 9},
	})

	both := records.AccountFilter{AccountID: protocol.U128(1), Limit: 10, Flags: records.AccountFilterDebits | records.AccountFilterCredits}
	require.Len(t, l.accountTransfers(both), 3)

	debits := both
	debits.Flags = records.AccountFilterDebits
	got := l.accountTransfers(debits)
	require.Len(t, got, 1)
	require.Equal(t, protocol.U128(301), got[0].ID)

	reversed := both
	reversed.Flags |= records.AccountFilterReversed
	reversed.Limit = 1
	got = l.accountTransfers(reversed)
	require.Len(t, got, 1)
	require.Equal(t, protocol.U128(302), got[0].ID)

	balances := l.accountBalances(both)
	require.Len(t, balances, 3)
	require.Equal(t, protocol.U128(6), balances[2].CreditsPosted)
	require.Empty(t, l.accountBalances(records.AccountFilter{AccountID: protocol.U128(2), Limit: 10, Flags: records.AccountFilterDebits}))

	tagged := l.queryTransfers(records.QueryFilter{UserData64: 9, Limit: 10})
	require.Len(t, tagged, 2)
	require.Len(t, l.queryAccounts(records.QueryFilter{Ledger: 2, Limit: 10}), 1)
	require.Empty(t, l.queryAccounts(records.QueryFilter{Limit: 0}))
}
