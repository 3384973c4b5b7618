package report

import (
	"strconv"

	"github.com/okian/landrank/internal/domain/types"
)

// column is one fixed-width field of the result table. Text columns are
// clipped to their width; number columns widen instead so no digit, unit or
// rank marker is lost.
type column struct {
	title string
	width int
	right bool
	clip  bool
	value func(f *Formatter, row int, l types.RankedLand) string
}

var (
	colIndex = column{title: "#", width: 4, right: true, value: func(_ *Formatter, row int, _ types.RankedLand) string {
		return strconv.Itoa(row)
	}}
	colPlayer = column{title: "Player", width: 20, clip: true, value: func(_ *Formatter, _ int, l types.RankedLand) string {
		return l.Player
	}}
	colPrestige = column{title: "Prestige", width: 10, right: true, value: func(_ *Formatter, _ int, l types.RankedLand) string {
		return formatNumber(l.Prestige)
	}}
	colArea = column{title: "Area", width: 14, right: true, value: func(f *Formatter, _ int, l types.RankedLand) string {
		return formatNumber(l.Area) + f.areaUnit
	}}
	colStateSystem = column{title: "State system", width: 16, clip: true, value: func(_ *Formatter, _ int, l types.RankedLand) string {
		return l.StateSystem
	}}
	colAlliance = column{title: "Alliance", width: 16, clip: true, value: func(f *Formatter, _ int, l types.RankedLand) string {
		if !l.HasAlliance() {
			return f.noAlliance
		}
		return l.Alliance
	}}
	colEpoch = column{title: "Epoch", width: 5, right: true, value: func(_ *Formatter, _ int, l types.RankedLand) string {
		return strconv.Itoa(l.Epoch)
	}}
	colRank = column{title: "Rank", width: 6, right: true, value: func(_ *Formatter, _ int, l types.RankedLand) string {
		return strconv.Itoa(l.Rank) + "."
	}}
)

// layouts omits the filtered-on attribute, which is the same on every row.
var layouts = map[types.FilterParameter][]column{
	types.FilterPlayer:      {colIndex, colPrestige, colArea, colStateSystem, colAlliance, colEpoch, colRank},
	types.FilterAlliance:    {colIndex, colPlayer, colPrestige, colArea, colStateSystem, colEpoch, colRank},
	types.FilterStateSystem: {colIndex, colPlayer, colPrestige, colArea, colAlliance, colEpoch, colRank},
	types.FilterLandNumber:  {colIndex, colPlayer, colPrestige, colArea, colStateSystem, colAlliance, colEpoch, colRank},
}

// Columns returns the column titles used for filter parameter p.
func Columns(p types.FilterParameter) []string {
	cols := layouts[p]
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.title
	}
	return titles
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
