package cycle

import "errors"

var (
	// ErrInvalidRecord marks a record dropped during normalization.
	ErrInvalidRecord = errors.New("invalid cycle record discarded")
	// ErrInsufficientHistory is reported when fewer than two records exist.
	ErrInsufficientHistory = errors.New("insufficient cycle history")
	// ErrReferenceBeforeHistory is reported when the reference day precedes
	// the latest period start.
	ErrReferenceBeforeHistory = errors.New("reference date precedes latest period start")
)
