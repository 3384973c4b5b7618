// Package types contains the epoch and ranked land types shared across the application
package types

import "math"

// Epoch is one ranking period with its lands ordered by rank.
type Epoch struct {
	Number int          `json:"epoch" yaml:"epoch"`
	Lands  []RankedLand `json:"lands" yaml:"lands"`
}

// RankedLand is a single land holding in one epoch's ranking.
type RankedLand struct {
	Player      string  `json:"player"`
	Alliance    string  `json:"alliance,omitempty"` // empty when the land has no alliance
	StateSystem string  `json:"state_system"`
	LandNumber  int     `json:"land_number"`
	Prestige    float64 `json:"prestige"`
	Area        float64 `json:"area"` // km²
	Rank        int     `json:"rank"`
	Epoch       int     `json:"epoch"` // number of the owning epoch, display only
}

// HasAlliance reports whether the land belongs to an alliance.
func (l RankedLand) HasAlliance() bool {
	return l.Alliance != ""
}

// Range is an inclusive integer interval.
type Range struct {
	Start int
	End   int
}

// FullRange contains every epoch number and rank.
var FullRange = Range{Start: math.MinInt, End: math.MaxInt}

// Contains reports whether n lies in [Start, End].
func (r Range) Contains(n int) bool {
	return n >= r.Start && n <= r.End
}

// IsFull reports whether the range is unbounded on both sides.
func (r Range) IsFull() bool {
	return r == FullRange
}
