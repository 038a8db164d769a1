package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// GlyphTable maps Private Use Area codepoints to their visible
// replacements. An empty replacement strips the glyph.
type GlyphTable map[rune]string

// puaStart and puaEnd bound the Basic Multilingual Plane Private Use
// Area that scanned-paper fonts encode option markers into.
const (
	puaStart = 0xE000
	puaEnd   = 0xF8FF
)

// DefaultGlyphTable covers the embedded font used by the immigration
// and police exam papers: lettered option markers, circled sub-item
// numbers, and decorative glyphs with no text meaning.
func DefaultGlyphTable() GlyphTable {
	t := GlyphTable{
		0xE18C: "(A)",
		0xE18D: "(B)",
		0xE18E: "(C)",
		0xE18F: "(D)",
		0xE190: "(E)",
	}
	circled := []rune("①②③④⑤⑥⑦⑧⑨⑩⑪⑫")
	for i, r := range circled {
		t[rune(0xE129+i)] = string(r)
	}
	bracketed := []rune{'㈠', '㈡', '㈢', '㈣'}
	for i, r := range bracketed {
		t[rune(0xE1C0+i)] = string(r)
	}
	for cp := rune(0xE0C6); cp <= 0xE0CF; cp++ {
		t[cp] = ""
	}
	return t
}

// ParseGlyphTable reads a vendor profile JSON object whose keys are
// hex codepoints ("E18C") and whose values are replacements.
func ParseGlyphTable(data []byte) (GlyphTable, error) {
	var raw map[string]string
	if err := sonic.ConfigStd.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("glyph table: %w", err)
	}
	t := make(GlyphTable, len(raw))
	for key, rep := range raw {
		cp, err := strconv.ParseUint(strings.TrimPrefix(key, "U+"), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("glyph table key %q: %w", key, err)
		}
		t[rune(cp)] = rep
	}
	return t, nil
}

// GlyphRemapper rewrites PUA codepoints into visible text. Output
// never contains PUA codepoints: unmapped ones are stripped.
type GlyphRemapper struct {
	table GlyphTable
}

// NewGlyphRemapper builds a remapper; a nil table selects the
// defaults.
func NewGlyphRemapper(table GlyphTable) *GlyphRemapper {
	if table == nil {
		table = DefaultGlyphTable()
	}
	return &GlyphRemapper{table: table}
}

// Remap replaces every mapped PUA codepoint and strips the rest.
func (g *GlyphRemapper) Remap(text string) string {
	if !HasPUA(text) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if rep, ok := g.table[r]; ok {
			b.WriteString(rep)
			continue
		}
		if r >= puaStart && r <= puaEnd {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// HasPUA reports whether text contains any Private Use Area
// codepoint.
func HasPUA(text string) bool {
	for _, r := range text {
		if r >= puaStart && r <= puaEnd {
			return true
		}
	}
	return false
}
