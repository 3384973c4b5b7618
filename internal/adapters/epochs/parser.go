// Package epochs reads epoch rankings from YAML documents.
package epochs

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/okian/landrank/internal/domain/types"
	"gopkg.in/yaml.v3"
)

// landDoc is one ranking row as written in an epoch document.
type landDoc struct {
	Rank        int     `yaml:"rank"`
	Player      string  `yaml:"player"`
	Alliance    string  `yaml:"alliance"`
	StateSystem string  `yaml:"state_system"`
	LandNumber  int     `yaml:"land_number"`
	Prestige    float64 `yaml:"prestige"`
	Area        float64 `yaml:"area"`
}

type epochDoc struct {
	Epoch *int      `yaml:"epoch"`
	Lands []landDoc `yaml:"lands"`
}

// document accepts either a single epoch at the top level or an "epochs" list.
type document struct {
	epochDoc `yaml:",inline"`
	Epochs   []epochDoc `yaml:"epochs"`
}

func (d document) epochs() []epochDoc {
	out := d.Epochs
	if d.Epoch != nil || len(d.Lands) > 0 {
		out = append([]epochDoc{d.epochDoc}, out...)
	}
	return out
}

// Parse reads every YAML document in r ("---" separated) and returns the
// epochs they describe, sorted by number with lands sorted by rank.
func Parse(r io.Reader) ([]types.Epoch, error) {
	docs, err := decode(r)
	if err != nil {
		return nil, err
	}
	return build(docs)
}

func decode(r io.Reader) ([]epochDoc, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var out []epochDoc
	for i := 0; ; i++ {
		var d document
		err := dec.Decode(&d)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: document %d: %v", ErrParse, i+1, err)
		}
		out = append(out, d.epochs()...)
	}
}

// build validates the decoded epochs and converts them into domain values.
func build(docs []epochDoc) ([]types.Epoch, error) {
	seen := make(map[int]bool, len(docs))
	epochs := make([]types.Epoch, 0, len(docs))

	for i, d := range docs {
		if d.Epoch == nil {
			return nil, fmt.Errorf("%w: epoch %d has no number", ErrParse, i+1)
		}
		number := *d.Epoch
		if seen[number] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateEpoch, number)
		}
		seen[number] = true

		lands, err := buildLands(number, d.Lands)
		if err != nil {
			return nil, err
		}
		epochs = append(epochs, types.Epoch{Number: number, Lands: lands})
	}

	slices.SortFunc(epochs, func(a, b types.Epoch) int { return cmp.Compare(a.Number, b.Number) })
	return epochs, nil
}

func buildLands(epoch int, docs []landDoc) ([]types.RankedLand, error) {
	ranks := make(map[int]bool, len(docs))
	lands := make([]types.RankedLand, 0, len(docs))

	for _, d := range docs {
		player := strings.TrimSpace(d.Player)
		switch {
		case d.Rank < 1:
			return nil, fmt.Errorf("%w: epoch %d: rank %d must be at least 1", ErrInvalidLand, epoch, d.Rank)
		case player == "":
			return nil, fmt.Errorf("%w: epoch %d rank %d: missing player", ErrInvalidLand, epoch, d.Rank)
		case d.Prestige < 0:
			return nil, fmt.Errorf("%w: epoch %d rank %d: negative prestige", ErrInvalidLand, epoch, d.Rank)
		case d.Area < 0:
			return nil, fmt.Errorf("%w: epoch %d rank %d: negative area", ErrInvalidLand, epoch, d.Rank)
		case ranks[d.Rank]:
			return nil, fmt.Errorf("%w: epoch %d rank %d", ErrDuplicateRank, epoch, d.Rank)
		}
		ranks[d.Rank] = true

		lands = append(lands, types.RankedLand{
			Player:      player,
			Alliance:    strings.TrimSpace(d.Alliance),
			StateSystem: strings.TrimSpace(d.StateSystem),
			LandNumber:  d.LandNumber,
			Prestige:    d.Prestige,
			Area:        d.Area,
			Rank:        d.Rank,
			Epoch:       epoch,
		})
	}

	slices.SortFunc(lands, func(a, b types.RankedLand) int { return cmp.Compare(a.Rank, b.Rank) })
	return lands, nil
}
