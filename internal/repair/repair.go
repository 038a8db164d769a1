// Package repair finds persisted questions that violate the option
// completeness invariant and recovers their options from a fresh read
// of the source document.
package repair

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Reese-max/police-exam-archive-sub000/internal/classify"
	"github.com/Reese-max/police-exam-archive-sub000/internal/normalize"
	"github.com/Reese-max/police-exam-archive-sub000/internal/options"
	"github.com/Reese-max/police-exam-archive-sub000/internal/question"
	"github.com/Reese-max/police-exam-archive-sub000/internal/segment"
	"github.com/Reese-max/police-exam-archive-sub000/internal/textsource"
)

// minStemRunes is the truncation threshold: a choice stem shorter
// than this with no question mark was cut off mid-sentence.
const minStemRunes = 80

// maxQuestionNumber is the plausibility ceiling for choice numbers.
const maxQuestionNumber = 80

// Config wires a Classifier. Zero-value fields take defaults.
type Config struct {
	Open       textsource.Opener
	Remapper   *normalize.GlyphRemapper
	Normalizer *normalize.Normalizer
	Patterns   *segment.Patterns
	LinePats   *classify.PatternSet
}

// Classifier categorizes invariant-violating records and repairs
// them. All category repairs re-read the source document rather than
// trusting the persisted stem, which may already be mangled.
type Classifier struct {
	open       textsource.Opener
	remapper   *normalize.GlyphRemapper
	normalizer *normalize.Normalizer
	pats       *segment.Patterns
	linePats   *classify.PatternSet
}

// New builds a Classifier from cfg.
func New(cfg Config) *Classifier {
	c := &Classifier{
		open:       cfg.Open,
		remapper:   cfg.Remapper,
		normalizer: cfg.Normalizer,
		pats:       cfg.Patterns,
		linePats:   cfg.LinePats,
	}
	if c.open == nil {
		c.open = textsource.Open
	}
	if c.remapper == nil {
		c.remapper = normalize.NewGlyphRemapper(nil)
	}
	if c.normalizer == nil {
		c.normalizer = normalize.New(nil, nil)
	}
	if c.pats == nil {
		c.pats = segment.DefaultPatterns()
	}
	if c.linePats == nil {
		c.linePats = classify.DefaultPatterns()
	}
	return c
}

// Categorize assigns one violating record its repair category.
func (c *Classifier) Categorize(q *question.Question) Category {
	if n := markerCount(q); n >= 1 && n <= 3 {
		return CategoryPartialMarkers
	}
	if isPassageFragment(q.Stem) {
		return CategoryPassageFragment
	}
	if c.isTruncated(q) {
		return CategoryTruncated
	}
	return CategoryNoMarkers
}

// markerCount counts distinct A-D evidence: persisted option keys
// plus markers still embedded in the stem.
func markerCount(q *question.Question) int {
	seen := make(map[string]bool, 4)
	for _, letter := range question.Letters[:4] {
		if strings.TrimSpace(q.Options[letter]) != "" {
			seen[letter] = true
		}
	}
	n := len(seen)
	if stemMarkers := options.CountMarkers(q.Stem); stemMarkers > n {
		n = stemMarkers
	}
	return n
}

// isPassageFragment reports whether the stem is a slice of an English
// reading passage: mostly ASCII letters and no question mark.
func isPassageFragment(stem string) bool {
	if strings.ContainsAny(stem, "？?") {
		return false
	}
	letters, total := 0, 0
	for _, r := range stem {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters++
		}
	}
	return total > 0 && float64(letters)/float64(total) > 0.5
}

func (c *Classifier) isTruncated(q *question.Question) bool {
	if q.Section != nil && strings.Contains(*q.Section, "申論") {
		return true
	}
	return utf8.RuneCountInString(q.Stem) < minStemRunes &&
		!strings.ContainsAny(q.Stem, "？?")
}

// RepairDocument runs the repair pass over one document. It returns
// the audit records and whether the document was mutated. Complete
// records are never touched, so a second run is a no-op.
func (c *Classifier) RepairDocument(ctx context.Context, doc *question.Document) ([]Record, bool, error) {
	var (
		recs    []Record
		changed bool
		src     textsource.Source
		srcErr  error
		opened  bool
	)
	openSource := func() (textsource.Source, error) {
		if !opened {
			opened = true
			src, srcErr = c.open(ctx, doc.Source)
		}
		return src, srcErr
	}

	for i := range doc.Questions {
		q := &doc.Questions[i]
		if !q.NeedsRepair() {
			continue
		}
		rec := Record{Document: doc.Source, Number: q.Number}
		rec.Category = c.Categorize(q)

		if rec.Category == CategoryPassageFragment {
			q.Subtype = question.SubtypePassageFragment
			q.Options = nil
			rec.Outcome = OutcomeMarkedFragment
			changed = true
			recs = append(recs, rec)
			continue
		}

		source, err := openSource()
		if err != nil {
			rec.Outcome = OutcomeSkipped
			recs = append(recs, rec)
			continue
		}

		outcome, strategy, mutated := c.repairFromSource(source, q, rec.Category)
		rec.Outcome = outcome
		rec.Strategy = strategy
		changed = changed || mutated
		recs = append(recs, rec)
	}
	return recs, changed, nil
}

// repairFromSource dispatches one record's category repair against a
// freshly opened source.
func (c *Classifier) repairFromSource(src textsource.Source, q *question.Question, cat Category) (Outcome, string, bool) {
	rawUnit := c.freshUnitLines(src, q.Number.Int())

	switch cat {
	case CategoryPartialMarkers:
		if len(rawUnit) > 0 {
			text := c.remapper.Remap(strings.Join(rawUnit, " "))
			if ex, ok := options.ScanText(text); ok {
				c.assign(q, ex)
				return OutcomeRepaired, "marker_scan", true
			}
		}
		return c.fallback(q, rawUnit)

	case CategoryTruncated:
		if len(rawUnit) > 0 {
			text := c.remapper.Remap(strings.Join(rawUnit, " "))
			if utf8.RuneCountInString(text) > utf8.RuneCountInString(q.Stem) {
				if ex, ok := options.ScanText(text); ok {
					c.assign(q, ex)
					return OutcomeRepaired, "marker_scan", true
				}
			}
		}
		fallthrough

	default: // CategoryNoMarkers and truncated stems without markers.
		if len(rawUnit) > 0 {
			remapped := make([]string, len(rawUnit))
			for i, line := range rawUnit {
				remapped[i] = c.remapper.Remap(line)
			}
			unit := options.Unit{Text: strings.Join(remapped, " "), Lines: remapped}
			if ex, ok := (options.LineGrouping{}).Extract(unit); ok {
				c.assign(q, ex)
				return OutcomeRepaired, "line_grouping", true
			}
		}
		return c.fallback(q, rawUnit)
	}
}

// fallback runs the last-resort chain over the persisted stem and the
// fresh unit text, then marks the record incomplete.
func (c *Classifier) fallback(q *question.Question, rawUnit []string) (Outcome, string, bool) {
	candidates := []string{q.Stem}
	if len(rawUnit) > 0 {
		candidates = append(candidates, c.remapper.Remap(strings.Join(rawUnit, " ")))
	}
	for _, text := range candidates {
		if ex, ok := options.SplitComboFromStem(text); ok {
			c.assign(q, ex)
			return OutcomeFallbackRepaired, "combo_from_stem", true
		}
		if ex, ok := options.SplitNumberedItems(text); ok {
			c.assign(q, ex)
			return OutcomeFallbackRepaired, "numbered_items", true
		}
		if ex, ok := (options.InlineSplit{}).Extract(options.Unit{Text: text}); ok {
			c.assign(q, ex)
			return OutcomeFallbackRepaired, "inline_split", true
		}
	}
	mutated := q.Subtype != question.SubtypeIncomplete
	q.Subtype = question.SubtypeIncomplete
	return OutcomeMarkedIncomplete, "", mutated
}

// assign writes a successful extraction into the record.
func (c *Classifier) assign(q *question.Question, ex options.Extraction) {
	q.Stem = c.normalizer.Normalize(ex.Stem)
	opts := make(map[string]string, len(ex.Options))
	for letter, text := range ex.Options {
		opts[letter] = c.normalizer.Normalize(text)
	}
	q.Options = opts
	if q.Subtype == question.SubtypeIncomplete {
		q.Subtype = ""
	}
}

// freshUnitLines re-reads the source and returns the raw content
// lines of question num, PUA glyphs intact.
func (c *Classifier) freshUnitLines(src textsource.Source, num int) []string {
	if num <= 0 {
		return nil
	}
	cls := classify.New(c.linePats)
	var content []string
	for _, page := range src.Pages() {
		for _, line := range strings.Split(page, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if cls.Next(trimmed) == classify.Content {
				content = append(content, trimmed)
			}
		}
	}

	startRE := regexp.MustCompile(`^` + strconv.Itoa(num) + `\s*[\.、．)\s]`)
	start := -1
	for i, line := range content {
		if startRE.MatchString(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}
	unit := []string{strings.TrimSpace(startRE.ReplaceAllString(content[start], ""))}
	for i := start + 1; i < len(content); i++ {
		if c.startsOtherUnit(content[i], num) {
			break
		}
		unit = append(unit, content[i])
	}
	return unit
}

// startsOtherUnit reports whether the line opens a different
// question, essay, or section.
func (c *Classifier) startsOtherUnit(line string, current int) bool {
	if c.pats.Section.MatchString(line) || c.pats.Essay.MatchString(line) {
		return true
	}
	if m := c.pats.Choice.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n != current && n <= maxQuestionNumber {
			return true
		}
	}
	return false
}
