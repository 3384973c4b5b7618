// Package report renders filtered lands as a fixed-column text table.
package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/okian/landrank/internal/domain/types"
)

// Default rendering constants.
const (
	defaultAreaUnit   = " km²"
	defaultNoAlliance = "-"
	noResultsLine     = "No results found."
	ellipsis          = "…"
)

// Option applies a configuration option to the Formatter.
type Option func(*Formatter)

// WithAreaUnit sets the marker appended to every area value.
func WithAreaUnit(unit string) Option {
	return func(f *Formatter) {
		if unit != "" {
			f.areaUnit = unit
		}
	}
}

// WithNoAllianceMarker sets the text shown for lands without an alliance.
func WithNoAllianceMarker(marker string) Option {
	return func(f *Formatter) {
		if marker != "" {
			f.noAlliance = marker
		}
	}
}

// Formatter writes result tables.
type Formatter struct {
	areaUnit   string
	noAlliance string
}

// New creates a Formatter with configuration options.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		areaUnit:   defaultAreaUnit,
		noAlliance: defaultNoAlliance,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Write renders lands in the order given. The header names the filter
// parameter and the literal query; an empty list yields a single
// "no results" line after it.
func (f *Formatter) Write(w io.Writer, p types.FilterParameter, query string, lands []types.RankedLand) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Results for %s \"%s\"\n", p.Label(), query)

	cols, ok := layouts[p]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLayout, p)
	}

	if len(lands) == 0 {
		b.WriteString(noResultsLine)
		b.WriteByte('\n')
		_, err := io.WriteString(w, b.String())
		return err
	}

	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = c.title
	}
	writeRow(&b, cols, cells)

	for n, l := range lands {
		for i, c := range cols {
			cells[i] = c.value(f, n+1, l)
		}
		writeRow(&b, cols, cells)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, cols []column, cells []string) {
	var line strings.Builder
	for i, c := range cols {
		if i > 0 {
			line.WriteByte(' ')
		}
		cell := cells[i]
		if c.clip {
			cell = truncate(cell, c.width)
		}
		if c.right {
			fmt.Fprintf(&line, "%*s", c.width, cell)
		} else {
			fmt.Fprintf(&line, "%-*s", c.width, cell)
		}
	}
	b.WriteString(strings.TrimRight(line.String(), " "))
	b.WriteByte('\n')
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-1]) + ellipsis
}
