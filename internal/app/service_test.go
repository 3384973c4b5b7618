package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/okian/landrank/internal/adapters/epochs"
	"github.com/okian/landrank/internal/adapters/input"
	service "github.com/okian/landrank/internal/app"
	"github.com/okian/landrank/internal/domain/filter"
	"github.com/okian/landrank/internal/domain/types"
	"github.com/okian/landrank/internal/report"
	"github.com/okian/landrank/pkg/logger"
	"github.com/okian/landrank/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type failingSource struct{ err error }

func (f failingSource) Epochs(context.Context) ([]types.Epoch, error) { return nil, f.err }

func sample() epochs.StaticSource {
	return epochs.StaticSource{
		{Number: 1, Lands: []types.RankedLand{
			{Player: "Ana", StateSystem: "X", LandNumber: 0, Prestige: 10, Area: 5, Rank: 1, Epoch: 1},
			{Player: "Bo", Alliance: "North", StateSystem: "X", LandNumber: 4, Prestige: 30, Area: 9, Rank: 2, Epoch: 1},
		}},
		{Number: 2, Lands: []types.RankedLand{
			{Player: "ana", Alliance: "North", StateSystem: "Y", LandNumber: 2, Prestige: 25, Area: 12, Rank: 1, Epoch: 2},
		}},
	}
}

func selection(p types.FilterParameter, q *string) input.Selection {
	return input.Selection{
		Parameter: p,
		Query:     q,
		Sort:      types.SortPrestige,
		Direction: types.Descending,
		Epochs:    types.FullRange,
		Ranks:     types.FullRange,
	}
}

func TestService_Run(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service over two epochs", t, func() {
		var out bytes.Buffer
		m := metrics.NewManager()
		svc := service.New(
			service.WithSource(sample()),
			service.WithOutput(&out),
			service.WithMetrics(m),
			service.WithFormatter(report.New()),
			service.WithLogger(logger.Get()),
		)

		Convey("When filtering by player", func() {
			res, err := svc.Run(ctx, selection(types.FilterPlayer, filter.Query("ANA")))

			Convey("Then matching lands are reported by prestige descending", func() {
				So(err, ShouldBeNil)
				So(res.Epochs, ShouldEqual, 2)
				So(res.Lands, ShouldHaveLength, 2)
				So(res.Lands[0].Epoch, ShouldEqual, 2)
				So(res.Lands[1].Epoch, ShouldEqual, 1)

				lines := strings.Split(strings.TrimSpace(out.String()), "\n")
				So(lines, ShouldHaveLength, 4)
				So(lines[0], ShouldEqual, `Results for Player "ANA"`)
			})

			Convey("Then the run is identified and measured", func() {
				_, parseErr := uuid.Parse(res.RunID)
				So(parseErr, ShouldBeNil)
				So(res.Duration, ShouldBeGreaterThan, 0)
				n, gatherErr := testutil.GatherAndCount(m.Registry(), "landrank_pipeline_runs_total")
				So(gatherErr, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("When the selection matches nothing", func() {
			sel := selection(types.FilterPlayer, filter.Query("ana"))
			sel.Ranks = types.Range{Start: 5, End: 10}
			res, err := svc.Run(ctx, sel)

			Convey("Then only the header and the no results line are written", func() {
				So(err, ShouldBeNil)
				So(res.Lands, ShouldBeEmpty)
				So(out.String(), ShouldEqual, "Results for Player \"ana\"\nNo results found.\n")
			})
		})

		Convey("When the player query is missing", func() {
			_, err := svc.Run(ctx, selection(types.FilterPlayer, nil))

			Convey("Then an invalid query error is returned and nothing is written", func() {
				So(errors.Is(err, filter.ErrInvalidQuery), ShouldBeTrue)
				So(out.Len(), ShouldEqual, 0)
			})
		})

		Convey("When filtering by a non-numeric land number", func() {
			res, err := svc.Run(ctx, selection(types.FilterLandNumber, filter.Query("abc")))

			Convey("Then land number 0 matches", func() {
				So(err, ShouldBeNil)
				So(res.Lands, ShouldHaveLength, 1)
				So(res.Lands[0].Player, ShouldEqual, "Ana")
			})
		})

		Convey("When the limit is one", func() {
			sel := selection(types.FilterAlliance, filter.Query("north"))
			sel.Limit = 1
			res, err := svc.Run(ctx, sel)

			Convey("Then only the best land is reported", func() {
				So(err, ShouldBeNil)
				So(res.Lands, ShouldHaveLength, 1)
				So(res.Lands[0].Player, ShouldEqual, "Bo")
			})
		})
	})

	Convey("Given a service whose source fails", t, func() {
		var out bytes.Buffer
		svc := service.New(
			service.WithSource(failingSource{err: epochs.ErrParse}),
			service.WithOutput(&out),
		)

		Convey("When running", func() {
			_, err := svc.Run(ctx, selection(types.FilterPlayer, filter.Query("ana")))

			Convey("Then the load error is returned", func() {
				So(errors.Is(err, epochs.ErrParse), ShouldBeTrue)
				So(out.Len(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a service without a source", t, func() {
		_, err := service.New().Run(ctx, selection(types.FilterPlayer, filter.Query("ana")))

		Convey("Then it refuses to run", func() {
			So(errors.Is(err, service.ErrNoSource), ShouldBeTrue)
		})
	})
}
