package input

import (
	"context"
	"fmt"

	"github.com/okian/landrank/internal/domain/types"
	"github.com/spf13/cobra"
)

// Flag names registered by NewFlagReader.
const (
	FlagBy     = "by"
	FlagQuery  = "query"
	FlagSort   = "sort"
	FlagOrder  = "order"
	FlagLimit  = "limit"
	FlagEpochs = "epochs"
	FlagRanks  = "ranks"
)

// FlagReader reads the selection from a cobra command's flags.
type FlagReader struct {
	cmd    *cobra.Command
	by     string
	query  string
	sort   string
	order  string
	limit  int
	epochs string
	ranks  string
}

// NewFlagReader registers the selection flags on cmd.
func NewFlagReader(cmd *cobra.Command, d Defaults) *FlagReader {
	r := &FlagReader{cmd: cmd}
	fs := cmd.Flags()
	fs.StringVar(&r.by, FlagBy, d.Parameter.String(), "attribute to filter on: player, alliance, state-system, land-number")
	fs.StringVarP(&r.query, FlagQuery, "q", "", "value to match; a blank alliance query matches lands without alliance")
	fs.StringVar(&r.sort, FlagSort, d.Sort.String(), "sort attribute: prestige or area")
	fs.StringVar(&r.order, FlagOrder, d.Direction.String(), "sort direction: asc or desc")
	fs.IntVarP(&r.limit, FlagLimit, "n", d.Limit, "maximum number of results, 0 for all")
	fs.StringVar(&r.epochs, FlagEpochs, "all", "epoch range, e.g. 3, 2-5, 4- or -6")
	fs.StringVar(&r.ranks, FlagRanks, "all", "rank range, e.g. 1-10")
	return r
}

// Read validates the parsed flag values. It must be called after cobra has parsed the command line.
func (r *FlagReader) Read(_ context.Context) (Selection, error) {
	var (
		sel Selection
		err error
	)
	if sel.Parameter, err = types.ParseFilterParameter(r.by); err != nil {
		return Selection{}, fmt.Errorf("%w: --%s: %v", ErrInvalidSelection, FlagBy, err)
	}
	if r.cmd.Flags().Changed(FlagQuery) {
		q := r.query
		sel.Query = &q
	}
	if sel.Sort, err = types.ParseSortAttribute(r.sort); err != nil {
		return Selection{}, fmt.Errorf("%w: --%s: %v", ErrInvalidSelection, FlagSort, err)
	}
	if sel.Direction, err = types.ParseSortDirection(r.order); err != nil {
		return Selection{}, fmt.Errorf("%w: --%s: %v", ErrInvalidSelection, FlagOrder, err)
	}
	sel.Limit = r.limit
	if sel.Epochs, err = ParseRange(r.epochs); err != nil {
		return Selection{}, fmt.Errorf("--%s: %w", FlagEpochs, err)
	}
	if sel.Ranks, err = ParseRange(r.ranks); err != nil {
		return Selection{}, fmt.Errorf("--%s: %w", FlagRanks, err)
	}
	if err := sel.Validate(); err != nil {
		return Selection{}, err
	}
	return sel, nil
}
