package epochs

import "errors"

// Sentinel kinds for epoch loading errors.
var (
	ErrParse          = errors.New("malformed epoch document")
	ErrDuplicateEpoch = errors.New("duplicate epoch number")
	ErrDuplicateRank  = errors.New("duplicate rank")
	ErrInvalidLand    = errors.New("invalid land")
	ErrNoData         = errors.New("no epoch data")
)
