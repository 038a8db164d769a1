package options

import (
	"regexp"
	"strings"

	"github.com/Reese-max/police-exam-archive-sub000/internal/normalize"
)

// markerRE matches a lettered option marker in half- or full-width
// parentheses.
var markerRE = regexp.MustCompile(`[(（]([A-Ea-e])[)）]`)

// MarkerScan extracts options from explicit (A)…(D) markers. It is
// the highest-confidence strategy: the markers must appear exactly
// once each, in order, with non-empty text between them.
type MarkerScan struct{}

func (MarkerScan) Name() string { return "marker_scan" }

func (MarkerScan) Extract(u Unit) (Extraction, bool) {
	return ScanText(u.Text)
}

// RemapScan repeats the marker scan after PUA glyph remapping, for
// papers whose embedded font hides the markers in the Private Use
// Area.
type RemapScan struct {
	Remapper *normalize.GlyphRemapper
}

func (RemapScan) Name() string { return "glyph_remap_scan" }

func (s RemapScan) Extract(u Unit) (Extraction, bool) {
	if s.Remapper == nil || !normalize.HasPUA(u.Text) {
		return Extraction{}, false
	}
	return ScanText(s.Remapper.Remap(u.Text))
}

// marker is one located option marker.
type marker struct {
	letter     string
	start, end int
}

// ScanText splits text at its first occurrence of each lettered
// marker. It requires A,B,C,D present in textual order; a trailing E
// is accepted. Everything before (A) is the stem.
func ScanText(text string) (Extraction, bool) {
	locs := markerRE.FindAllStringSubmatchIndex(text, -1)
	if len(locs) < 4 {
		return Extraction{}, false
	}
	first := make(map[string]marker, 5)
	for _, m := range locs {
		letter := strings.ToUpper(text[m[2]:m[3]])
		if _, seen := first[letter]; !seen {
			first[letter] = marker{letter: letter, start: m[0], end: m[1]}
		}
	}

	var used []marker
	for _, letter := range letters[:4] {
		m, ok := first[letter]
		if !ok {
			return Extraction{}, false
		}
		used = append(used, m)
	}
	if e, ok := first["E"]; ok && e.start > used[3].start {
		used = append(used, e)
	}
	for i := 1; i < len(used); i++ {
		if used[i].start <= used[i-1].end {
			return Extraction{}, false
		}
	}

	opts := make(map[string]string, len(used))
	for i, m := range used {
		end := len(text)
		if i+1 < len(used) {
			end = used[i+1].start
		}
		body := strings.TrimSpace(text[m.end:end])
		if body == "" {
			return Extraction{}, false
		}
		opts[m.letter] = body
	}
	stem := strings.TrimSpace(text[:used[0].start])
	return Extraction{Stem: stem, Options: opts}, true
}

// CountMarkers reports how many distinct A–D markers appear in text.
func CountMarkers(text string) int {
	seen := make(map[string]bool, 4)
	for _, m := range markerRE.FindAllStringSubmatch(text, -1) {
		letter := strings.ToUpper(m[1])
		if letter != "E" {
			seen[letter] = true
		}
	}
	return len(seen)
}
