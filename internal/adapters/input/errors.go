package input

import "errors"

// Sentinel kinds for input errors.
var (
	ErrInvalidSelection = errors.New("invalid selection")
	ErrTooManyAttempts  = errors.New("too many invalid answers")
	ErrInputClosed      = errors.New("input closed")
)
