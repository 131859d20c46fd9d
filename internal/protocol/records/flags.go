package records

type AccountFlags uint16

const (
	AccountLinked                     AccountFlags = 1 << 0
	AccountDebitsMustNotExceedCredits AccountFlags = 1 << 1
	AccountCreditsMustNotExceedDebits AccountFlags = 1 << 2
	AccountHistory                    AccountFlags = 1 << 3
	AccountImported                   AccountFlags = 1 << 4
	AccountClosed                     AccountFlags = 1 << 5
)

func (f AccountFlags) Has(flag AccountFlags) bool { return f&flag == flag }

type TransferFlags uint16

const (
	TransferLinked              TransferFlags = 1 << 0
	TransferPending             TransferFlags = 1 << 1
	TransferPostPendingTransfer TransferFlags = 1 << 2
	TransferVoidPendingTransfer TransferFlags = 1 << 3
	TransferBalancingDebit      TransferFlags = 1 << 4
	TransferBalancingCredit     TransferFlags = 1 << 5
	TransferClosingDebit        TransferFlags = 1 << 6
	TransferClosingCredit       TransferFlags = 1 << 7
	TransferImported            TransferFlags = 1 << 8
)

func (f TransferFlags) Has(flag TransferFlags) bool { return f&flag == flag }

type AccountFilterFlags uint32

const (
	AccountFilterDebits   AccountFilterFlags = 1 << 0
	AccountFilterCredits  AccountFilterFlags = 1 << 1
	AccountFilterReversed AccountFilterFlags = 1 << 2
)

type QueryFilterFlags uint32

const (
	QueryFilterReversed QueryFilterFlags = 1 << 0
)
