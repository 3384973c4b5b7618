package filter

import "errors"

// Sentinel kinds for pipeline errors.
var (
	// ErrInvalidQuery is returned when the filter parameter needs a query and none was supplied.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidCriteria is returned for enumeration values the pipeline has no handler for.
	ErrInvalidCriteria = errors.New("invalid criteria")
)
