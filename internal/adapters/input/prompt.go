package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/landrank/internal/domain/types"
)

const defaultMaxAttempts = 3

// PromptOption applies a configuration option to the PromptReader.
type PromptOption func(*PromptReader)

// WithMaxAttempts bounds how often one question is asked before giving up.
func WithMaxAttempts(n int) PromptOption {
	return func(p *PromptReader) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithDefaults sets the answers used for empty input.
func WithDefaults(d Defaults) PromptOption {
	return func(p *PromptReader) {
		p.defaults = d
	}
}

// PromptReader asks for each selection value interactively.
type PromptReader struct {
	in          *bufio.Scanner
	out         io.Writer
	maxAttempts int
	defaults    Defaults
}

// NewPromptReader creates a PromptReader that asks on out and reads answers from in.
func NewPromptReader(in io.Reader, out io.Writer, opts ...PromptOption) *PromptReader {
	p := &PromptReader{
		in:          bufio.NewScanner(in),
		out:         out,
		maxAttempts: defaultMaxAttempts,
		defaults: Defaults{
			Parameter: types.FilterPlayer,
			Sort:      types.SortPrestige,
			Direction: types.Descending,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Read asks every question in order. Invalid answers are re-asked.
func (p *PromptReader) Read(ctx context.Context) (Selection, error) {
	var sel Selection

	choices := make([]string, len(types.FilterParameters))
	for i, fp := range types.FilterParameters {
		choices[i] = fp.String()
	}
	err := p.ask(ctx, fmt.Sprintf("Filter by (%s)", strings.Join(choices, ", ")), p.defaults.Parameter.String(), func(a string) (err error) {
		sel.Parameter, err = types.ParseFilterParameter(a)
		return err
	})
	if err != nil {
		return Selection{}, err
	}

	query, err := p.line(ctx, sel.Parameter.Label())
	if err != nil {
		return Selection{}, err
	}
	sel.Query = &query

	steps := []struct {
		question string
		def      string
		set      func(string) error
	}{
		{"Sort by (prestige, area)", p.defaults.Sort.String(), func(a string) (err error) {
			sel.Sort, err = types.ParseSortAttribute(a)
			return err
		}},
		{"Order (asc, desc)", p.defaults.Direction.String(), func(a string) (err error) {
			sel.Direction, err = types.ParseSortDirection(a)
			return err
		}},
		{"Number of results, 0 for all", strconv.Itoa(p.defaults.Limit), func(a string) (err error) {
			sel.Limit, err = parseLimit(a)
			return err
		}},
		{"Epochs (e.g. 2-5)", "all", func(a string) (err error) {
			sel.Epochs, err = ParseRange(a)
			return err
		}},
		{"Ranks (e.g. 1-10)", "all", func(a string) (err error) {
			sel.Ranks, err = ParseRange(a)
			return err
		}},
	}
	for _, s := range steps {
		if err := p.ask(ctx, s.question, s.def, s.set); err != nil {
			return Selection{}, err
		}
	}

	if err := sel.Validate(); err != nil {
		return Selection{}, err
	}
	return sel, nil
}

// ask repeats question until set accepts the answer. An empty answer means def.
func (p *PromptReader) ask(ctx context.Context, question, def string, set func(string) error) error {
	var lastErr error
	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		answer, err := p.line(ctx, fmt.Sprintf("%s [%s]", question, def))
		if err != nil {
			return err
		}
		if strings.TrimSpace(answer) == "" {
			answer = def
		}
		if lastErr = set(answer); lastErr == nil {
			return nil
		}
		fmt.Fprintf(p.out, "  %v\n", lastErr)
	}
	return fmt.Errorf("%w: %s: %w", ErrTooManyAttempts, question, lastErr)
}

// line prints prompt and returns the next input line without its newline.
func (p *PromptReader) line(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(p.out, "%s: ", prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: %v", ErrInputClosed, err)
		}
		return "", ErrInputClosed
	}
	return p.in.Text(), nil
}
