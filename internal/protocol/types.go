package protocol

import "fmt"

const (
	// HeaderSize is the fixed size of every message header.
	HeaderSize = 256
	// MessageSizeMax bounds header+body for any frame on the wire.
	MessageSizeMax = 1 << 20
	// BodySizeMax is the largest body a single message can carry.
	BodySizeMax = MessageSizeMax - HeaderSize
)

// Command selects the header variant of a message.
type Command uint8

const (
	CommandReserved Command = 0
	CommandRequest  Command = 5
	CommandReply    Command = 8
)

func (c Command) String() string {
	switch c {
	case CommandReserved:
		return "reserved"
	case CommandRequest:
		return "request"
	case CommandReply:
		return "reply"
	default:
		return fmt.Sprintf("command(%d)", uint8(c))
	}
}

// Operation identifies what a request asks the cluster to do.
type Operation uint8

const (
	OperationReserved    Operation = 0
	OperationRoot        Operation = 1
	OperationRegister    Operation = 2
	OperationReconfigure Operation = 3
	OperationPulse       Operation = 4
	OperationUpgrade     Operation = 5

	// State machine operations start at 128.
	OperationCreateAccounts      Operation = 128 + 10
	OperationCreateTransfers     Operation = 128 + 11
	OperationLookupAccounts      Operation = 128 + 12
	OperationLookupTransfers     Operation = 128 + 13
	OperationGetAccountTransfers Operation = 128 + 14
	OperationGetAccountBalances  Operation = 128 + 15
	OperationQueryAccounts       Operation = 128 + 16
	OperationQueryTransfers      Operation = 128 + 17
)

var operationNames = map[Operation]string{
	OperationReserved:            "reserved",
	OperationRoot:                "root",
	OperationRegister:            "register",
	OperationReconfigure:         "reconfigure",
	OperationPulse:               "pulse",
	OperationUpgrade:             "upgrade",
	OperationCreateAccounts:      "create_accounts",
	OperationCreateTransfers:     "create_transfers",
	OperationLookupAccounts:      "lookup_accounts",
	OperationLookupTransfers:     "lookup_transfers",
	OperationGetAccountTransfers: "get_account_transfers",
	OperationGetAccountBalances:  "get_account_balances",
	OperationQueryAccounts:       "query_accounts",
	OperationQueryTransfers:      "query_transfers",
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("operation(%d)", uint8(o))
}

// MultiBatch reports whether bodies for o carry a multi-batch trailer.
func (o Operation) MultiBatch() bool {
	switch o {
	case OperationCreateAccounts,
		OperationCreateTransfers,
		OperationLookupAccounts,
		OperationLookupTransfers,
		OperationGetAccountTransfers,
		OperationGetAccountBalances,
		OperationQueryAccounts,
		OperationQueryTransfers:
		return true
	default:
		return false
	}
}
