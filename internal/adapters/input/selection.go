// Package input collects and validates the user's filter selection.
package input

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/landrank/internal/domain/filter"
	"github.com/okian/landrank/internal/domain/types"
)

// Reader supplies a validated Selection.
type Reader interface {
	Read(ctx context.Context) (Selection, error)
}

// Selection is everything the user chose for one run.
type Selection struct {
	Parameter types.FilterParameter
	Query     *string // nil when no query was given
	Sort      types.SortAttribute
	Direction types.SortDirection
	Limit     int // 0 means unlimited
	Epochs    types.Range
	Ranks     types.Range
}

// Defaults are the values used for questions the user leaves unanswered.
type Defaults struct {
	Parameter types.FilterParameter
	Sort      types.SortAttribute
	Direction types.SortDirection
	Limit     int
}

// Validate rejects selections the pipeline would be handed in bad shape.
func (s Selection) Validate() error {
	if s.Limit < 0 {
		return fmt.Errorf("%w: limit %d must not be negative", ErrInvalidSelection, s.Limit)
	}
	if s.Epochs.Start > s.Epochs.End {
		return fmt.Errorf("%w: epoch range %d-%d is inverted", ErrInvalidSelection, s.Epochs.Start, s.Epochs.End)
	}
	if s.Ranks.Start > s.Ranks.End {
		return fmt.Errorf("%w: rank range %d-%d is inverted", ErrInvalidSelection, s.Ranks.Start, s.Ranks.End)
	}
	return nil
}

// Criteria converts the selection into pipeline criteria.
func (s Selection) Criteria() filter.Criteria {
	return filter.Criteria{
		Parameter: s.Parameter,
		Query:     s.Query,
		Sort:      s.Sort,
		Direction: s.Direction,
		Limit:     s.Limit,
		Epochs:    s.Epochs,
		Ranks:     s.Ranks,
	}
}

// ParseRange reads an inclusive range: "" or "all" for everything, "N" for a
// single value, "A-B", "A-" (from A) or "-B" (up to B). Bounds may be
// negative: "-5--2", "-5-" and "--2". A lone "-5" reads as "up to 5".
func ParseRange(s string) (types.Range, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return types.FullRange, nil
	}

	lo, hi, found := splitRange(s)
	if !found {
		n, err := parseBound(s)
		if err != nil {
			return types.Range{}, err
		}
		return types.Range{Start: n, End: n}, nil
	}

	r := types.FullRange
	var err error
	if strings.TrimSpace(lo) != "" {
		if r.Start, err = parseBound(lo); err != nil {
			return types.Range{}, err
		}
	}
	if strings.TrimSpace(hi) != "" {
		if r.End, err = parseBound(hi); err != nil {
			return types.Range{}, err
		}
	}
	if r.Start > r.End {
		return types.Range{}, fmt.Errorf("%w: range %q is inverted", ErrInvalidSelection, s)
	}
	return r, nil
}

// splitRange cuts s at the range separator: the first '-' that follows a
// digit, or a leading '-' when no such dash exists.
func splitRange(s string) (lo, hi string, found bool) {
	for i := 1; i < len(s); i++ {
		if s[i] != '-' {
			continue
		}
		if prev := strings.TrimRight(s[:i], " "); prev != "" && isDigit(prev[len(prev)-1]) {
			return s[:i], s[i+1:], true
		}
	}
	if strings.HasPrefix(s, "-") {
		return "", s[1:], true
	}
	return s, "", false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// FormatRange is the inverse of ParseRange.
func FormatRange(r types.Range) string {
	switch {
	case r.IsFull():
		return "all"
	case r.Start == r.End && r.Start >= 0:
		return strconv.Itoa(r.Start)
	case r.Start == math.MinInt:
		return "-" + strconv.Itoa(r.End)
	case r.End == math.MaxInt:
		return strconv.Itoa(r.Start) + "-"
	default:
		return strconv.Itoa(r.Start) + "-" + strconv.Itoa(r.End)
	}
}

func parseBound(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidSelection, strings.TrimSpace(s))
	}
	return n, nil
}

func parseLimit(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: limit %q is not a number", ErrInvalidSelection, strings.TrimSpace(s))
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: limit %d must not be negative", ErrInvalidSelection, n)
	}
	return n, nil
}
