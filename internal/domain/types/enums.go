package types

import (
	"fmt"
	"strings"
)

// FilterParameter selects the attribute lands are filtered on.
type FilterParameter int

const (
	FilterPlayer FilterParameter = iota
	FilterAlliance
	FilterStateSystem
	FilterLandNumber
)

// FilterParameters lists every filter parameter in display order.
var FilterParameters = []FilterParameter{FilterPlayer, FilterAlliance, FilterStateSystem, FilterLandNumber}

func (p FilterParameter) String() string {
	switch p {
	case FilterPlayer:
		return "player"
	case FilterAlliance:
		return "alliance"
	case FilterStateSystem:
		return "state-system"
	case FilterLandNumber:
		return "land-number"
	default:
		return fmt.Sprintf("FilterParameter(%d)", int(p))
	}
}

// Label is the human readable name used in reports.
func (p FilterParameter) Label() string {
	switch p {
	case FilterPlayer:
		return "Player"
	case FilterAlliance:
		return "Alliance"
	case FilterStateSystem:
		return "State system"
	case FilterLandNumber:
		return "Land number"
	default:
		return p.String()
	}
}

// ParseFilterParameter accepts the String form, case-insensitively. Underscores
// and spaces are treated as dashes so "STATE_SYSTEM" and "state system" work too.
func ParseFilterParameter(s string) (FilterParameter, error) {
	switch normalizeEnum(s) {
	case "player":
		return FilterPlayer, nil
	case "alliance":
		return FilterAlliance, nil
	case "state-system", "statesystem", "system":
		return FilterStateSystem, nil
	case "land-number", "landnumber", "land":
		return FilterLandNumber, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFilterParameter, s)
}

// SortAttribute selects the numeric attribute results are ordered by.
type SortAttribute int

const (
	SortPrestige SortAttribute = iota
	SortArea
)

func (a SortAttribute) String() string {
	switch a {
	case SortPrestige:
		return "prestige"
	case SortArea:
		return "area"
	default:
		return fmt.Sprintf("SortAttribute(%d)", int(a))
	}
}

// ParseSortAttribute accepts "prestige" or "area", case-insensitively.
func ParseSortAttribute(s string) (SortAttribute, error) {
	switch normalizeEnum(s) {
	case "prestige":
		return SortPrestige, nil
	case "area":
		return SortArea, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSortAttribute, s)
}

// SortDirection orders results ascending or descending.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

func (d SortDirection) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return fmt.Sprintf("SortDirection(%d)", int(d))
	}
}

// ParseSortDirection accepts asc/ascending or desc/descending.
func ParseSortDirection(s string) (SortDirection, error) {
	switch normalizeEnum(s) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSortDirection, s)
}

func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "-", " ", "-").Replace(s)
}
