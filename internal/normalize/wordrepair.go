package normalize

import "regexp"

// WordRule rejoins one class of OCR-split English word.
type WordRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// WordRepairer applies ordered resegmentation rules until the text
// reaches a fixed point. The rule list is ordered; suffix rules run
// before whole-word rules so "informa ti on" converges in one pass.
type WordRepairer struct {
	rules []WordRule
}

// maxRepairPasses bounds the fixed-point iteration. Real inputs
// converge in two passes; the cap guards against pathological rules.
const maxRepairPasses = 8

// NewWordRepairer builds a repairer; a nil rule list selects the
// defaults.
func NewWordRepairer(rules []WordRule) *WordRepairer {
	if rules == nil {
		rules = DefaultWordRules()
	}
	return &WordRepairer{rules: rules}
}

// Repair rejoins OCR-split words. Repair is idempotent: applying it
// to its own output changes nothing.
func (r *WordRepairer) Repair(text string) string {
	for pass := 0; pass < maxRepairPasses; pass++ {
		prev := text
		for _, rule := range r.rules {
			text = rule.Pattern.ReplaceAllString(text, rule.Replacement)
		}
		if text == prev {
			break
		}
	}
	return text
}

// DefaultWordRules covers the split patterns observed across the
// scanned English-subject papers.
func DefaultWordRules() []WordRule {
	rule := func(pat, rep string) WordRule {
		return WordRule{Pattern: regexp.MustCompile(pat), Replacement: rep}
	}
	return []WordRule{
		// Rejoin split suffixes first, then attach orphaned suffixes
		// back to their word. "informa ti on" converges through
		// "informa tion" to "information".
		rule(`ti\s+on\b`, "tion"),
		rule(`si\s+on\b`, "sion"),
		rule(`in\s+g\b`, "ing"),
		rule(`e\s+d\b`, "ed"),
		rule(`me\s+nt\b`, "ment"),
		rule(`ne\s+ss\b`, "ness"),
		rule(`([A-Za-z]{3,})\s+(tion|sion|ness)\b`, "$1$2"),
		// Common whole words split mid-letter.
		rule(`\bth\s+e\b`, "the"),
		rule(`\ba\s+nd\b`, "and"),
		rule(`\ban\s+d\b`, "and"),
		rule(`\bwi\s+th\b`, "with"),
		rule(`\bwh\s+ich\b`, "which"),
		rule(`\bth\s+at\b`, "that"),
		rule(`\bfo\s+r\b`, "for"),
		rule(`\bfr\s+om\b`, "from"),
		rule(`\bha\s+ve\b`, "have"),
		rule(`\bno\s+t\b`, "not"),
		rule(`\bab\s+out\b`, "about"),
		rule(`\bbe\s+cause\b`, "because"),
		rule(`\bpe\s+ople\b`, "people"),
		rule(`\bgovern\s+ment\b`, "government"),
		rule(`\bpo\s+lice\b`, "police"),
		rule(`\bim\s+migration\b`, "immigration"),
	}
}
