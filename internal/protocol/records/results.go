package records

const ResultSize = 8

// CreateAccountsResult reports a failed account at Index of the request batch.
// Accounts that succeeded have no entry.
type CreateAccountsResult struct {
	Index  uint32
	Result CreateAccountResult
}

func (CreateAccountsResult) Size() int { return ResultSize }

func (r CreateAccountsResult) Pack(b []byte) int {
	_ = b[ResultSize-1]
	le.PutUint32(b[0:], r.Index)
	le.PutUint32(b[4:], uint32(r.Result))
	return ResultSize
}

func UnpackCreateAccountsResult(b []byte) CreateAccountsResult {
	_ = b[ResultSize-1]
	return CreateAccountsResult{
		Index:  le.Uint32(b[0:]),
		Result: CreateAccountResult(le.Uint32(b[4:])),
	}
}

// CreateTransfersResult reports a failed transfer at Index of the request batch.
type CreateTransfersResult struct {
	Index  uint32
	Result CreateTransferResult
}

func (CreateTransfersResult) Size() int { return ResultSize }

func (r CreateTransfersResult) Pack(b []byte) int {
	_ = b[ResultSize-1]
	le.PutUint32(b[0:], r.Index)
	le.PutUint32(b[4:], uint32(r.Result))
	return ResultSize
}

func UnpackCreateTransfersResult(b []byte) CreateTransfersResult {
	_ = b[ResultSize-1]
	return CreateTransfersResult{
		Index:  le.Uint32(b[0:]),
		Result: CreateTransferResult(le.Uint32(b[4:])),
	}
}
