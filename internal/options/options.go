// Package options extracts lettered answer options from raw question
// units through a tiered strategy chain.
package options

import (
	"errors"

	"github.com/Reese-max/police-exam-archive-sub000/internal/normalize"
)

// ErrAmbiguous indicates the whole chain declined: the unit's options
// cannot be extracted with confidence. Callers resolve this by
// tagging the record, never by inventing content.
var ErrAmbiguous = errors.New("option extraction ambiguous")

// Unit is one raw question unit handed to the chain. Text is the
// unit joined into a single string; Lines preserves the page layout
// for the statistical strategy and may be nil when layout is lost.
type Unit struct {
	Text  string
	Lines []string
}

// Extraction is a successful split of a unit into stem and options.
type Extraction struct {
	Stem    string
	Options map[string]string
}

// Strategy attempts one extraction approach. It returns exactly 4
// (optionally 5) options or declines; a declined unit cascades to the
// next strategy.
type Strategy interface {
	Name() string
	Extract(u Unit) (Extraction, bool)
}

// Chain runs strategies in order; the first success wins.
type Chain []Strategy

// Extract runs the chain and reports which strategy succeeded.
func (c Chain) Extract(u Unit) (Extraction, string, bool) {
	for _, s := range c {
		if ex, ok := s.Extract(u); ok {
			return ex, s.Name(), true
		}
	}
	return Extraction{}, "", false
}

// DefaultChain is the production order: explicit markers, markers
// after glyph remapping, statistical line grouping, inline splitting.
func DefaultChain(remapper *normalize.GlyphRemapper) Chain {
	return Chain{
		MarkerScan{},
		RemapScan{Remapper: remapper},
		LineGrouping{},
		InlineSplit{},
	}
}

// letters is the option order strategies fill.
var letters = [5]string{"A", "B", "C", "D", "E"}
