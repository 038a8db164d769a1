// Package classify tags raw exam paper lines as header, footer, note,
// or content before segmentation.
package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/Reese-max/police-exam-archive-sub000/internal/normalize"
)

// Tag is the classification of one raw line.
type Tag int

const (
	Content Tag = iota
	Header
	Footer
	Note
)

func (t Tag) String() string {
	switch t {
	case Header:
		return "header"
	case Footer:
		return "footer"
	case Note:
		return "note"
	default:
		return "content"
	}
}

// Classifier assigns a Tag to each line in document order. A note
// span is sticky: once a note marker is seen, following lines stay
// Note until a question, essay, or section start releases the state.
type Classifier struct {
	pats   *PatternSet
	inNote bool
}

// New builds a Classifier; a nil pattern set selects the defaults.
func New(pats *PatternSet) *Classifier {
	if pats == nil {
		pats = DefaultPatterns()
	}
	return &Classifier{pats: pats}
}

// Reset clears the sticky note state for a new document.
func (c *Classifier) Reset() { c.inNote = false }

// Next classifies one line. Lines must be fed in document order.
func (c *Classifier) Next(line string) Tag {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Header
	}
	// OCR sprinkles spaces inside Chinese phrases, which would defeat
	// keyword matching.
	probe := normalize.CollapseCJKSpaces(trimmed)

	for _, re := range c.pats.Footer {
		if re.MatchString(probe) {
			return Footer
		}
	}
	for _, re := range c.pats.Header {
		if re.MatchString(probe) {
			return Header
		}
	}
	if utf8.RuneCountInString(probe) < 80 {
		for _, kw := range c.pats.HeaderKeywords {
			if strings.Contains(probe, kw) {
				return Header
			}
		}
	}

	if c.pats.NoteStart != nil && c.pats.NoteStart.MatchString(probe) {
		c.inNote = true
		return Note
	}
	if c.inNote {
		if c.startsUnit(probe) {
			c.inNote = false
			return Content
		}
		return Note
	}
	for _, kw := range c.pats.NoteKeywords {
		if strings.Contains(probe, kw) {
			return Note
		}
	}
	return Content
}

// startsUnit reports whether the line opens a question, essay, or
// section, which terminates a note span.
func (c *Classifier) startsUnit(line string) bool {
	if c.pats.SectionStart != nil && c.pats.SectionStart.MatchString(line) {
		return true
	}
	if c.pats.ChoiceStart != nil && c.pats.ChoiceStart.MatchString(line) {
		return true
	}
	if c.pats.EssayStart != nil && c.pats.EssayStart.MatchString(line) {
		return true
	}
	return false
}
