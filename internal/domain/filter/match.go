package filter

import (
	"strconv"
	"strings"

	"github.com/okian/landrank/internal/domain/types"
	"golang.org/x/text/cases"
)

// predicate reports whether a land matches the compiled query.
type predicate func(types.RankedLand) bool

// compiler turns a raw query into a predicate for one filter parameter.
type compiler func(query *string) (predicate, error)

// matchers is the dispatch table from filter parameter to query compiler.
var matchers = map[types.FilterParameter]compiler{
	types.FilterPlayer:      compilePlayer,
	types.FilterAlliance:    compileAlliance,
	types.FilterStateSystem: compileStateSystem,
	types.FilterLandNumber:  compileLandNumber,
}

// Supports reports whether p has a matcher.
func Supports(p types.FilterParameter) bool {
	_, ok := matchers[p]
	return ok
}

func compilePlayer(query *string) (predicate, error) {
	if query == nil {
		return nil, ErrInvalidQuery
	}
	want := fold(*query)
	return func(l types.RankedLand) bool {
		return fold(l.Player) == want
	}, nil
}

func compileAlliance(query *string) (predicate, error) {
	if query == nil || strings.TrimSpace(*query) == "" {
		return func(l types.RankedLand) bool {
			return !l.HasAlliance()
		}, nil
	}
	want := fold(strings.TrimSpace(*query))
	return func(l types.RankedLand) bool {
		return l.HasAlliance() && fold(l.Alliance) == want
	}, nil
}

func compileStateSystem(query *string) (predicate, error) {
	if query == nil {
		return nil, ErrInvalidQuery
	}
	want := fold(*query)
	return func(l types.RankedLand) bool {
		return fold(l.StateSystem) == want
	}, nil
}

// compileLandNumber treats a missing or non-numeric query as land number 0.
func compileLandNumber(query *string) (predicate, error) {
	want := 0
	if query != nil {
		if n, err := strconv.Atoi(strings.TrimSpace(*query)); err == nil {
			want = n
		}
	}
	return func(l types.RankedLand) bool {
		return l.LandNumber == want
	}, nil
}

// fold applies full Unicode case folding, so "STRASSE" and "straße" compare equal.
func fold(s string) string {
	return cases.Fold().String(s)
}
