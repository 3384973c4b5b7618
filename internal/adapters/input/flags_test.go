package input_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/okian/landrank/internal/adapters/input"
	"github.com/okian/landrank/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/cobra"
)

// parse runs a throwaway command with args and returns what the reader saw.
func parse(args ...string) (input.Selection, error) {
	var (
		sel     input.Selection
		readErr error
	)
	cmd := &cobra.Command{Use: "test", SilenceUsage: true, SilenceErrors: true}
	r := input.NewFlagReader(cmd, input.Defaults{
		Parameter: types.FilterPlayer,
		Sort:      types.SortPrestige,
		Direction: types.Descending,
		Limit:     10,
	})
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		sel, readErr = r.Read(cmd.Context())
		return nil
	}
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		return input.Selection{}, err
	}
	return sel, readErr
}

func TestFlagReader(t *testing.T) {
	Convey("Given no flags", t, func() {
		sel, err := parse()

		Convey("Then the defaults apply and there is no query", func() {
			So(err, ShouldBeNil)
			So(sel.Parameter, ShouldEqual, types.FilterPlayer)
			So(sel.Query, ShouldBeNil)
			So(sel.Sort, ShouldEqual, types.SortPrestige)
			So(sel.Direction, ShouldEqual, types.Descending)
			So(sel.Limit, ShouldEqual, 10)
			So(sel.Epochs, ShouldResemble, types.FullRange)
			So(sel.Ranks, ShouldResemble, types.FullRange)
		})
	})

	Convey("Given every flag", t, func() {
		sel, err := parse("--by", "STATE_SYSTEM", "-q", "Helios", "--sort", "area", "--order", "asc",
			"-n", "0", "--epochs", "2-4", "--ranks=-10")

		Convey("Then each value is parsed", func() {
			So(err, ShouldBeNil)
			So(sel.Parameter, ShouldEqual, types.FilterStateSystem)
			So(*sel.Query, ShouldEqual, "Helios")
			So(sel.Sort, ShouldEqual, types.SortArea)
			So(sel.Direction, ShouldEqual, types.Ascending)
			So(sel.Limit, ShouldEqual, 0)
			So(sel.Epochs, ShouldResemble, types.Range{Start: 2, End: 4})
			So(sel.Ranks.End, ShouldEqual, 10)
		})
	})

	Convey("Given an explicitly empty query", t, func() {
		sel, err := parse("--by", "alliance", "--query", "")

		Convey("Then the query is present and blank", func() {
			So(err, ShouldBeNil)
			So(sel.Query, ShouldNotBeNil)
			So(*sel.Query, ShouldEqual, "")
		})
	})

	Convey("Given invalid flag values", t, func() {
		for _, args := range [][]string{
			{"--by", "castle"},
			{"--sort", "gold"},
			{"--order", "up"},
			{"--limit", "-3"},
			{"--epochs", "5-1"},
			{"--ranks", "x"},
		} {
			_, err := parse(args...)
			So(errors.Is(err, input.ErrInvalidSelection), ShouldBeTrue)
		}
	})
}
