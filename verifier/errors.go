package verifier

import "github.com/pkg/errors"

var (
	ErrConnection           = errors.New("rpc connection failed")
	ErrInvalidAddress       = errors.New("invalid ethereum address")
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")
	ErrFetchCode            = errors.New("failed to fetch bytecode")
)
