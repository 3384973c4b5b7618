package types

import "errors"

// Sentinel kinds for enumeration parsing.
var (
	ErrUnknownFilterParameter = errors.New("unknown filter parameter")
	ErrUnknownSortAttribute   = errors.New("unknown sort attribute")
	ErrUnknownSortDirection   = errors.New("unknown sort direction")
)
