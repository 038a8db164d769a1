// Package segment walks classified page lines and emits structured
// question records.
package segment

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Reese-max/police-exam-archive-sub000/internal/classify"
	"github.com/Reese-max/police-exam-archive-sub000/internal/normalize"
	"github.com/Reese-max/police-exam-archive-sub000/internal/options"
	"github.com/Reese-max/police-exam-archive-sub000/internal/question"
	"github.com/Reese-max/police-exam-archive-sub000/internal/textsource"
)

// maxChoiceNumber is the plausibility ceiling for choice question
// numbers. Higher "numbers" are years or codes the OCR mistook for
// question starts.
const maxChoiceNumber = 80

// metadataWindow is how many leading runes of the paper are searched
// for header metadata.
const metadataWindow = 500

// Config wires a Segmenter. Zero-value fields take defaults.
type Config struct {
	LinePatterns *classify.PatternSet
	Remapper     *normalize.GlyphRemapper
	Normalizer   *normalize.Normalizer
	Chain        options.Chain
	Patterns     *Patterns
}

// Segmenter turns a page text source into a question document. It
// holds only immutable configuration, so one Segmenter may serve
// concurrent Segment calls; per-pass classification state is built
// inside each call.
type Segmenter struct {
	linePats   *classify.PatternSet
	remapper   *normalize.GlyphRemapper
	normalizer *normalize.Normalizer
	chain      options.Chain
	pats       *Patterns
}

// New builds a Segmenter from cfg.
func New(cfg Config) *Segmenter {
	s := &Segmenter{
		linePats:   cfg.LinePatterns,
		remapper:   cfg.Remapper,
		normalizer: cfg.Normalizer,
		chain:      cfg.Chain,
		pats:       cfg.Patterns,
	}
	if s.linePats == nil {
		s.linePats = classify.DefaultPatterns()
	}
	if s.remapper == nil {
		s.remapper = normalize.NewGlyphRemapper(nil)
	}
	if s.normalizer == nil {
		s.normalizer = normalize.New(nil, nil)
	}
	if s.chain == nil {
		s.chain = options.DefaultChain(s.remapper)
	}
	if s.pats == nil {
		s.pats = DefaultPatterns()
	}
	return s
}

// Result is one segmentation pass. Mismatches are structural problems
// that were skipped; they never abort the pass.
type Result struct {
	Document   question.Document
	Strategies map[string]int
	Mismatches []error
}

// passageSpan is a shared passage and the question range it covers.
type passageSpan struct {
	from, to int
	text     string
}

// Segment extracts every question from the source.
func (s *Segmenter) Segment(src textsource.Source) (*Result, error) {
	pages := src.Pages()
	remapped := make([]string, len(pages))
	for i, p := range pages {
		remapped[i] = s.remapper.Remap(p)
	}

	res := &Result{Strategies: make(map[string]int)}
	res.Document.Metadata = s.parseMetadata(strings.Join(remapped, "\n"))

	content, notes := s.classifyLines(remapped)
	res.Document.Notes = notes

	s.walk(content, res)

	if len(res.Document.Questions) == 0 {
		res.Document.Questions = s.fallbackEssays(remapped)
	}

	s.applyPassages(res)
	s.annotateCloze(res)
	res.Document.Questions = dropBogus(res.Document.Questions)
	return res, nil
}

// classifyLines flattens pages into content lines, collecting notes
// and discarding headers and footers. The classifier is built fresh
// per pass; its sticky note state must never cross documents.
func (s *Segmenter) classifyLines(pages []string) (content, notes []string) {
	cls := classify.New(s.linePats)
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			switch cls.Next(trimmed) {
			case classify.Note:
				notes = append(notes, normalize.CollapseCJKSpaces(trimmed))
			case classify.Header, classify.Footer:
			default:
				content = append(content, trimmed)
			}
		}
	}
	return content, notes
}

// walk is the segmentation state machine over content lines.
func (s *Segmenter) walk(content []string, res *Result) {
	var (
		section  *string
		passages []passageSpan
	)
	doc := &res.Document

	i := 0
	for i < len(content) {
		line := content[i]

		if m := s.pats.Section.FindStringSubmatch(line); m != nil {
			label := m[1] + "、" + m[2]
			section = &label
			doc.Sections = append(doc.Sections, label)
			i++
			continue
		}

		if m := s.pats.Passage.FindStringSubmatchIndex(line); m != nil {
			span, next := s.collectPassage(content, i, line, m)
			passages = append(passages, span)
			i = next
			continue
		}

		if m := s.pats.Essay.FindStringSubmatch(line); m != nil {
			body, next := s.collectUnit(content, i+1, []string{m[2]})
			doc.Questions = append(doc.Questions, question.Question{
				Number:  question.Chinese(m[1]),
				Type:    question.KindEssay,
				Stem:    s.normalizer.Normalize(strings.Join(body, " ")),
				Section: section,
			})
			i = next
			continue
		}

		if m := s.pats.Choice.FindStringSubmatch(line); m != nil {
			num, err := strconv.Atoi(m[1])
			if err == nil {
				body, next := s.collectUnit(content, i+1, []string{m[2]})
				doc.Questions = append(doc.Questions, s.buildChoice(num, body, section, res))
				i = next
				continue
			}
		}

		i++
	}

	s.attachPassages(doc, passages, res)
}

// collectUnit absorbs continuation lines until the next unit start.
func (s *Segmenter) collectUnit(content []string, from int, body []string) ([]string, int) {
	i := from
	for i < len(content) && !s.startsUnit(content[i]) {
		body = append(body, content[i])
		i++
	}
	return body, i
}

// collectPassage absorbs a shared passage introduced by a range
// header line.
func (s *Segmenter) collectPassage(content []string, at int, line string, m []int) (passageSpan, int) {
	from, _ := strconv.Atoi(line[m[2]:m[3]])
	to, _ := strconv.Atoi(line[m[4]:m[5]])

	var body []string
	if tail := strings.TrimSpace(line[m[1]:]); tail != "" {
		body = append(body, tail)
	}
	body, next := s.collectUnit(content, at+1, body)
	return passageSpan{
		from: from,
		to:   to,
		text: s.normalizer.Normalize(strings.Join(body, "\n")),
	}, next
}

func (s *Segmenter) startsUnit(line string) bool {
	if s.pats.Section.MatchString(line) || s.pats.Essay.MatchString(line) {
		return true
	}
	if s.pats.Passage.MatchString(line) {
		return true
	}
	if m := s.pats.Choice.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n <= maxChoiceNumber {
			return true
		}
	}
	return false
}

// buildChoice runs the option chain over one choice unit.
func (s *Segmenter) buildChoice(num int, body []string, section *string, res *Result) question.Question {
	q := question.Question{
		Number:  question.Arabic(num),
		Type:    question.KindChoice,
		Section: section,
	}
	unit := options.Unit{
		Text:  strings.Join(body, " "),
		Lines: body,
	}
	if ex, strat, ok := s.chain.Extract(unit); ok {
		res.Strategies[strat]++
		q.Stem = s.normalizer.Normalize(ex.Stem)
		q.Options = s.normalizeOptions(ex.Options)
		return q
	}
	// Chain exhausted: keep the whole unit as stem, tagged, never a
	// silent partial record.
	res.Strategies["none"]++
	q.Stem = s.normalizer.Normalize(unit.Text)
	q.Subtype = question.SubtypeIncomplete
	return q
}

func (s *Segmenter) normalizeOptions(opts map[string]string) map[string]string {
	out := make(map[string]string, len(opts))
	for letter, text := range opts {
		out[letter] = s.normalizer.Normalize(text)
	}
	return out
}

// attachPassages links collected passages to their question ranges.
func (s *Segmenter) attachPassages(doc *question.Document, passages []passageSpan, res *Result) {
	for _, span := range passages {
		hit := false
		for i := range doc.Questions {
			q := &doc.Questions[i]
			if !q.Number.IsArabic() {
				continue
			}
			if n := q.Number.Int(); n >= span.from && n <= span.to {
				q.Passage = span.text
				hit = true
			}
		}
		if !hit {
			res.Mismatches = append(res.Mismatches, fmt.Errorf(
				"passage for questions %d-%d matches no question: %w",
				span.from, span.to, ErrStructuralMismatch))
		}
	}
}

// applyPassages tags passage-linked questions.
func (s *Segmenter) applyPassages(res *Result) {
	for i := range res.Document.Questions {
		q := &res.Document.Questions[i]
		if q.Passage != "" && q.Subtype == "" {
			q.Subtype = question.SubtypeReadingComprehension
		}
	}
}

// annotateCloze tags choice questions whose stem lives entirely in
// the shared passage.
func (s *Segmenter) annotateCloze(res *Result) {
	for i := range res.Document.Questions {
		q := &res.Document.Questions[i]
		if q.Type != question.KindChoice || q.Passage == "" {
			continue
		}
		if utf8.RuneCountInString(q.Stem) <= 2 && q.HasCompleteOptions() {
			q.Subtype = question.SubtypeCloze
		}
	}
}

// dropBogus removes optionless "questions" whose number exceeds the
// plausibility ceiling; they are years or codes, not questions.
func dropBogus(qs []question.Question) []question.Question {
	out := qs[:0]
	for _, q := range qs {
		if q.Type == question.KindChoice && len(q.Options) == 0 &&
			q.Number.IsArabic() && q.Number.Int() > maxChoiceNumber {
			continue
		}
		out = append(out, q)
	}
	return out
}

// parseMetadata reads exam header fields out of the paper's opening
// text.
func (s *Segmenter) parseMetadata(text string) question.Metadata {
	// Collapse OCR gaps line by line; collapsing across newlines would
	// merge adjacent header fields into one line.
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = normalize.CollapseCJKSpaces(line)
	}
	head := strings.Join(lines, "\n")
	if runes := []rune(head); len(runes) > metadataWindow {
		head = string(runes[:metadataWindow])
	}
	var meta question.Metadata
	if m := headerFields.yearExam.FindStringSubmatch(head); m != nil {
		meta.Year, _ = strconv.Atoi(m[1])
	}
	if m := headerFields.examName.FindStringSubmatch(head); m != nil {
		meta.ExamName = m[1]
	}
	if m := headerFields.level.FindStringSubmatch(head); m != nil {
		meta.Level = m[1] + "考試"
	}
	if m := headerFields.category.FindStringSubmatch(head); m != nil {
		meta.Category = headerValue(m[1])
	}
	if m := headerFields.subject.FindStringSubmatch(head); m != nil {
		meta.Subject = headerValue(m[1])
	}
	if m := headerFields.code.FindStringSubmatch(head); m != nil {
		meta.Code = m[1]
	}
	return meta
}

// layoutGap matches the column gaps pdftotext leaves between header
// fields sharing one row.
var layoutGap = regexp.MustCompile(`\s{2,}`)

func headerValue(s string) string {
	return strings.TrimSpace(layoutGap.Split(s, 2)[0])
}
