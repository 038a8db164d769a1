package repair

import "github.com/Reese-max/police-exam-archive-sub000/internal/question"

// Category classifies why a record's options are missing.
type Category string

const (
	// CategoryPassageFragment is a slice of reading passage stored as
	// a question.
	CategoryPassageFragment Category = "A"
	// CategoryPartialMarkers has 1-3 of the 4 expected markers.
	CategoryPartialMarkers Category = "B"
	// CategoryNoMarkers has no markers at all.
	CategoryNoMarkers Category = "C"
	// CategoryTruncated is a cut-off stem.
	CategoryTruncated Category = "D"
)

// Outcome is what the repair pass did with one record.
type Outcome string

const (
	OutcomeRepaired         Outcome = "repaired"
	OutcomeFallbackRepaired Outcome = "fallback_repaired"
	OutcomeMarkedIncomplete Outcome = "marked_incomplete"
	OutcomeMarkedFragment   Outcome = "marked_fragment"
	OutcomeSkipped          Outcome = "skipped"
)

// Record is one audited repair decision.
type Record struct {
	Document string           `json:"document"`
	Number   question.Ordinal `json:"number"`
	Category Category         `json:"category"`
	Outcome  Outcome          `json:"outcome"`
	Strategy string           `json:"strategy,omitempty"`
}

// unresolvedSampleCap bounds the unresolved listing in console
// summaries.
const unresolvedSampleCap = 20

// Report aggregates a repair run.
type Report struct {
	Scanned    int              `json:"scanned"`
	Affected   int              `json:"affected"`
	ByCategory map[Category]int `json:"by_category"`
	ByOutcome  map[Outcome]int  `json:"by_outcome"`
	Records    []Record         `json:"records"`
	Unresolved []Record         `json:"unresolved_sample"`
}

// NewReport builds an empty report.
func NewReport() *Report {
	return &Report{
		ByCategory: make(map[Category]int),
		ByOutcome:  make(map[Outcome]int),
	}
}

// Add folds one record into the report's tallies.
func (r *Report) Add(rec Record) {
	r.Affected++
	r.ByCategory[rec.Category]++
	r.ByOutcome[rec.Outcome]++
	r.Records = append(r.Records, rec)
	if unresolved(rec.Outcome) && len(r.Unresolved) < unresolvedSampleCap {
		r.Unresolved = append(r.Unresolved, rec)
	}
}

func unresolved(o Outcome) bool {
	return o == OutcomeMarkedIncomplete || o == OutcomeSkipped
}
