package records

const RegisterRequestSize = 256

// RegisterRequest is the body of a REGISTER request. A zero BatchSizeLimit
// asks the cluster for its default.
type RegisterRequest struct {
	BatchSizeLimit uint32
}

func (RegisterRequest) Size() int { return RegisterRequestSize }

func (r RegisterRequest) Pack(b []byte) int {
	_ = b[RegisterRequestSize-1]
	le.PutUint32(b[0:], r.BatchSizeLimit)
	clear(b[4:RegisterRequestSize])
	return RegisterRequestSize
}

func UnpackRegisterRequest(b []byte) RegisterRequest {
	return RegisterRequest{BatchSizeLimit: le.Uint32(b[0:])}
}
