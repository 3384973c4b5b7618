package filter

import "github.com/okian/landrank/internal/domain/types"

// Criteria holds the selection the pipeline applies to the parsed epochs.
type Criteria struct {
	Parameter types.FilterParameter
	// Query is interpreted according to Parameter. nil means no query was supplied.
	Query     *string
	Sort      types.SortAttribute
	Direction types.SortDirection
	// Limit caps the result size; 0 means unlimited.
	Limit  int
	Epochs types.Range
	Ranks  types.Range
}

// Query returns a pointer to q, for building Criteria literals.
func Query(q string) *string {
	return &q
}

// QueryText returns the query or "" when none was supplied.
func (c Criteria) QueryText() string {
	if c.Query == nil {
		return ""
	}
	return *c.Query
}
