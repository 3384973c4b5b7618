// Package filter selects, orders and truncates ranked lands across epochs.
package filter

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/okian/landrank/internal/domain/types"
)

// Stage names reported to a StageObserver, in execution order.
const (
	StageEpochs    = "epochs"
	StageRanks     = "ranks"
	StageAttribute = "attribute"
	StageLimit     = "limit"
)

// StageObserver is told how many entries survive each stage.
type StageObserver func(stage string, entries int)

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithStageObserver registers a callback invoked after every stage.
func WithStageObserver(fn StageObserver) Option {
	return func(p *Pipeline) {
		if fn != nil {
			p.observe = fn
		}
	}
}

// Pipeline runs the fixed epoch → rank → attribute → sort → limit sequence.
// It holds no state between calls.
type Pipeline struct {
	observe StageObserver
}

// New creates a Pipeline with configuration options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		observe: func(string, int) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Apply runs the default pipeline.
func Apply(epochs []types.Epoch, c Criteria) ([]types.RankedLand, error) {
	return New().Apply(epochs, c)
}

// Apply filters, sorts and limits the lands of epochs according to c.
// The input is never modified. Empty results are not an error.
func (p *Pipeline) Apply(epochs []types.Epoch, c Criteria) ([]types.RankedLand, error) {
	compile, ok := matchers[c.Parameter]
	if !ok {
		return nil, fmt.Errorf("%w: filter parameter %s", ErrInvalidCriteria, c.Parameter)
	}
	less, ok := comparators[c.Sort]
	if !ok {
		return nil, fmt.Errorf("%w: sort attribute %s", ErrInvalidCriteria, c.Sort)
	}
	match, err := compile(c.Query)
	if err != nil {
		return nil, fmt.Errorf("%s filter: %w", c.Parameter, err)
	}

	selected := make([]types.Epoch, 0, len(epochs))
	for _, e := range epochs {
		if c.Epochs.Contains(e.Number) {
			selected = append(selected, e)
		}
	}
	p.observe(StageEpochs, countLands(selected))

	var lands []types.RankedLand
	for _, e := range selected {
		for _, l := range e.Lands {
			if c.Ranks.Contains(l.Rank) {
				lands = append(lands, l)
			}
		}
	}
	p.observe(StageRanks, len(lands))

	matched := make([]types.RankedLand, 0, len(lands))
	for _, l := range lands {
		if match(l) {
			matched = append(matched, l)
		}
	}
	p.observe(StageAttribute, len(matched))

	if c.Direction == types.Descending {
		slices.SortStableFunc(matched, func(a, b types.RankedLand) int { return less(b, a) })
	} else {
		slices.SortStableFunc(matched, less)
	}

	if c.Limit > 0 && len(matched) > c.Limit {
		matched = matched[:c.Limit]
	}
	p.observe(StageLimit, len(matched))

	return matched, nil
}

// comparators is the dispatch table from sort attribute to ascending comparison.
var comparators = map[types.SortAttribute]func(a, b types.RankedLand) int{
	types.SortPrestige: func(a, b types.RankedLand) int { return cmp.Compare(a.Prestige, b.Prestige) },
	types.SortArea:     func(a, b types.RankedLand) int { return cmp.Compare(a.Area, b.Area) },
}

func countLands(epochs []types.Epoch) int {
	n := 0
	for _, e := range epochs {
		n += len(e.Lands)
	}
	return n
}
