package lobby

import "errors"

// Sentinel errors returned by this package.
var (
	// ErrInvalidTailLines is returned when the tail length is not positive.
	ErrInvalidTailLines = errors.New("tail lines must be positive")

	// ErrPathRequired is returned when no log file path is given.
	ErrPathRequired = errors.New("log file path required")
)
