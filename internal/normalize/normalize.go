// Package normalize cleans raw OCR text: Unicode normalization,
// control and exam-code stripping, spaced-CJK collapsing, OCR word
// repair, and PUA glyph remapping.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// examCode matches the five-digit paper codes printed in margins that
// OCR folds into the text flow.
var examCode = regexp.MustCompile(`\b\d{5}\b`)

// cjkGap matches whitespace between two CJK characters.
var cjkGap = regexp.MustCompile(`([\x{4e00}-\x{9fff}])\s+([\x{4e00}-\x{9fff}])`)

// Normalizer applies the full cleanup sequence to stems, options, and
// passages at emission time.
type Normalizer struct {
	words    *WordRepairer
	variants map[rune]rune
}

// New builds a Normalizer. Nil arguments select the defaults.
func New(words *WordRepairer, variants map[rune]rune) *Normalizer {
	if words == nil {
		words = NewWordRepairer(nil)
	}
	if variants == nil {
		variants = DefaultVariantTable()
	}
	return &Normalizer{words: words, variants: variants}
}

// Normalize cleans one extracted text field. NFKC also folds
// full-width ASCII and circled digits to their plain forms.
func (n *Normalizer) Normalize(text string) string {
	text = norm.NFKC.String(text)
	text = stripControl(text)
	text = examCode.ReplaceAllString(text, "")
	text = n.words.Repair(text)
	if len(n.variants) > 0 {
		text = strings.Map(func(r rune) rune {
			if t, ok := n.variants[r]; ok {
				return t
			}
			return r
		}, text)
	}
	text = CollapseCJKSpaces(text)
	return strings.TrimSpace(text)
}

// CollapseCJKSpaces removes whitespace between CJK characters,
// repeating until stable so runs of spaced characters fully merge.
func CollapseCJKSpaces(text string) string {
	for {
		next := cjkGap.ReplaceAllString(text, "$1$2")
		if next == text {
			return text
		}
		text = next
	}
}

// stripControl drops NULs, zero-width characters, and C0/C1 controls
// other than newline and tab.
func stripControl(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r < 0x20 || (r >= 0x7F && r <= 0x9F):
			return -1
		case r == 0x200B || r == 0x200C || r == 0x200D || r == 0xFEFF:
			return -1
		}
		return r
	}, text)
}
