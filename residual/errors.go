package residual

// Error describes a failed decoding operation. The wrapped error is
// normally arith.ErrBitStream.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return "residual: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error { return e.Err }
