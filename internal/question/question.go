// Package question defines the persisted exam question model and its
// JSON document store.
package question

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind distinguishes the two question families found on exam papers.
type Kind string

const (
	// KindChoice is a numbered multiple-choice question.
	KindChoice Kind = "choice"
	// KindEssay is a Chinese-numeral essay question.
	KindEssay Kind = "essay"
)

// Subtype annotates questions whose content needs special handling.
// The empty string means a plain, fully extracted question.
type Subtype string

const (
	// SubtypePassageFragment marks a record that is really a slice of a
	// reading passage, not a standalone question.
	SubtypePassageFragment Subtype = "passage_fragment"
	// SubtypeIncomplete marks a choice question whose options could not
	// be extracted. Incomplete records are never silently dropped.
	SubtypeIncomplete Subtype = "incomplete"
	// SubtypeReadingComprehension marks a question attached to a shared
	// passage.
	SubtypeReadingComprehension Subtype = "reading_comprehension"
	// SubtypeCloze marks a fill-in-the-blank question whose stem lives
	// in the shared passage.
	SubtypeCloze Subtype = "cloze"
)

// Letters is the canonical option order.
var Letters = [5]string{"A", "B", "C", "D", "E"}

// Ordinal is a question number. Choice questions use Arabic numbers,
// essay questions use Chinese numerals; both serialize as they appear
// on the paper.
type Ordinal struct {
	num  int
	text string
}

// Arabic returns the ordinal for a numbered choice question.
func Arabic(n int) Ordinal { return Ordinal{num: n} }

// Chinese returns the ordinal for a Chinese-numeral essay question.
func Chinese(s string) Ordinal { return Ordinal{text: s} }

// IsArabic reports whether the ordinal is a plain number.
func (o Ordinal) IsArabic() bool { return o.text == "" }

// Int returns the Arabic value, or 0 for Chinese-numeral ordinals.
func (o Ordinal) Int() int { return o.num }

func (o Ordinal) String() string {
	if o.text != "" {
		return o.text
	}
	return strconv.Itoa(o.num)
}

// MarshalJSON writes Arabic ordinals as numbers and Chinese-numeral
// ordinals as strings, matching the archive's on-disk schema.
func (o Ordinal) MarshalJSON() ([]byte, error) {
	if o.text != "" {
		return []byte(strconv.Quote(o.text)), nil
	}
	return []byte(strconv.Itoa(o.num)), nil
}

// UnmarshalJSON accepts either form.
func (o *Ordinal) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*o = Ordinal{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		text, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("question number: %w", err)
		}
		if n, err := strconv.Atoi(text); err == nil {
			*o = Ordinal{num: n}
			return nil
		}
		*o = Ordinal{text: text}
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("question number %q: %w", s, err)
	}
	*o = Ordinal{num: n}
	return nil
}

// Question is one extracted exam question.
type Question struct {
	Number  Ordinal           `json:"number"`
	Type    Kind              `json:"type"`
	Stem    string            `json:"stem"`
	Section *string           `json:"section"`
	Passage string            `json:"passage,omitempty"`
	Subtype Subtype           `json:"subtype,omitempty"`
	Options map[string]string `json:"options,omitempty"`
	Answer  string            `json:"answer,omitempty"`
}

// HasCompleteOptions reports whether the question carries exactly 4
// (or 5) contiguous non-empty lettered options.
func (q *Question) HasCompleteOptions() bool {
	n := len(q.Options)
	if n != 4 && n != 5 {
		return false
	}
	for i := 0; i < n; i++ {
		text, ok := q.Options[Letters[i]]
		if !ok || strings.TrimSpace(text) == "" {
			return false
		}
	}
	return true
}

// NeedsRepair reports whether the question violates the completeness
// invariant and is a candidate for the repair pass. Passage fragments
// are exempt; incomplete-tagged records are retried.
func (q *Question) NeedsRepair() bool {
	return q.Type == KindChoice &&
		q.Subtype != SubtypePassageFragment &&
		!q.HasCompleteOptions()
}

// Metadata is the exam header parsed from the paper's first page.
type Metadata struct {
	Year     int    `json:"year,omitempty"`
	ExamName string `json:"exam_name,omitempty"`
	Level    string `json:"level,omitempty"`
	Category string `json:"category,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Code     string `json:"code,omitempty"`
}

// Document is one exam paper's worth of extracted questions.
type Document struct {
	Source    string     `json:"source,omitempty"`
	Metadata  Metadata   `json:"metadata"`
	Sections  []string   `json:"sections,omitempty"`
	Notes     []string   `json:"notes,omitempty"`
	Questions []Question `json:"questions"`
}

// Violation describes one question that breaks the completeness
// invariant without carrying an explaining subtype.
type Violation struct {
	Number  Ordinal
	Missing []string
}

// Violations lists choice questions with missing options that are not
// annotated as incomplete or passage fragments.
func (d *Document) Violations() []Violation {
	var out []Violation
	for i := range d.Questions {
		q := &d.Questions[i]
		if q.Type != KindChoice || q.HasCompleteOptions() {
			continue
		}
		if q.Subtype == SubtypeIncomplete || q.Subtype == SubtypePassageFragment {
			continue
		}
		var missing []string
		for _, letter := range Letters[:4] {
			if strings.TrimSpace(q.Options[letter]) == "" {
				missing = append(missing, letter)
			}
		}
		out = append(out, Violation{Number: q.Number, Missing: missing})
	}
	return out
}

// Annotated counts questions carrying the given subtype.
func (d *Document) Annotated(s Subtype) int {
	n := 0
	for i := range d.Questions {
		if d.Questions[i].Subtype == s {
			n++
		}
	}
	return n
}
