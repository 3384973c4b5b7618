package report

import "errors"

// ErrUnknownLayout is returned when no column layout exists for a filter parameter.
var ErrUnknownLayout = errors.New("unknown report layout")
