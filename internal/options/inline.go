package options

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// InlineSplit is the last-resort strategy for units whose options run
// together on one line with no markers at all. Sub-strategies are
// tried in decreasing confidence; equal-length segmentation runs
// last.
type InlineSplit struct{}

func (InlineSplit) Name() string { return "inline_split" }

func (InlineSplit) Extract(u Unit) (Extraction, bool) {
	text := norm.NFKC.String(u.Text)
	stem, tail, ok := SplitStemTail(text)
	if ok && utf8.RuneCountInString(tail) >= 4 {
		if parseNumberedItems(tail) == nil {
			for _, split := range []func(string) []string{
				splitDoubleSpace,
				splitRepeatedPrefix,
				splitParenBoundary,
			} {
				if parts := split(tail); parts != nil {
					return Extraction{Stem: strings.TrimSpace(stem), Options: letterMap(parts)}, true
				}
			}
		}
	}
	if ex, ok := SplitComboFromStem(text); ok {
		return ex, true
	}
	if ex, ok := SplitNumberedItems(text); ok {
		return ex, true
	}
	if ok && utf8.RuneCountInString(tail) >= 4 {
		if parts := splitShortWords(tail); parts != nil {
			return Extraction{Stem: strings.TrimSpace(stem), Options: letterMap(parts)}, true
		}
		if parts := splitEqualSegments(tail); parts != nil {
			return Extraction{Stem: strings.TrimSpace(stem), Options: letterMap(parts)}, true
		}
	}
	return Extraction{}, false
}

var (
	doubleSpaceRE = regexp.MustCompile(`\s{2,}`)
	// subItemRE locates a numbered sub-item marker: a 1–6 digit at a
	// word start followed by non-digit text.
	subItemRE = regexp.MustCompile(`(?:^|[\s　])([1-6])[^\d\s]`)
	// comboTailRE matches four trailing combination-answer tokens.
	comboTailRE = regexp.MustCompile(`\s((?:[1-6]{1,4}\s+){3}[1-6]{1,4})\s*$`)
	// comboGlueRE strips combination tokens glued after the final
	// sub-item's text.
	comboGlueRE = regexp.MustCompile(`(\s+[1-6]{2,4}){2,}\s*$`)
)

// SplitStemTail splits text at its final stem delimiter: the last
// question mark, or the last colon whose preceding text reads like a
// stem ending. A sentence break early in the tail is folded back into
// the stem.
func SplitStemTail(text string) (stem, tail string, ok bool) {
	cut := strings.LastIndexAny(text, questionMarks)
	if cut < 0 {
		cut = strings.LastIndexAny(text, colonMarks)
		if cut < 0 || !hasStemTail(text[:cut]) {
			return "", "", false
		}
	}
	_, sz := utf8.DecodeRuneInString(text[cut:])
	stem = text[:cut+sz]
	tail = strings.TrimSpace(text[cut+sz:])
	if tail == "" {
		return "", "", false
	}
	if i := strings.Index(tail, "。"); i >= 0 {
		rest := tail[i+len("。"):]
		if utf8.RuneCountInString(rest) >= 4 {
			stem += " " + tail[:i+len("。")]
			tail = strings.TrimSpace(rest)
		}
	}
	return stem, tail, true
}

// parseNumberedItems extracts sub-items numbered 1..n (n in 4..6)
// from text. The digits must appear in ascending order starting at 1.
// Returns nil when the structure is absent.
func parseNumberedItems(text string) []string {
	matches := subItemRE.FindAllStringSubmatchIndex(text, -1)
	if len(matches) < 4 {
		return nil
	}
	type mark struct{ start, end int }
	var found []mark
	expected := byte('1')
	for _, m := range matches {
		if expected > '6' {
			break
		}
		if text[m[2]] == expected {
			found = append(found, mark{start: m[2], end: m[3]})
			expected++
		}
	}
	if len(found) < 4 {
		return nil
	}
	items := make([]string, len(found))
	for i, f := range found {
		end := len(text)
		if i+1 < len(found) {
			end = found[i+1].start
		}
		items[i] = strings.TrimSpace(text[f.end:end])
	}
	return items
}

// SplitComboFromStem handles combination questions whose four answer
// tokens trail the stem: the numbered sub-items stay in the stem and
// the tokens become the options.
func SplitComboFromStem(text string) (Extraction, bool) {
	text = norm.NFKC.String(text)
	m := comboTailRE.FindStringSubmatchIndex(text)
	if m == nil {
		return Extraction{}, false
	}
	head := text[:m[2]]
	tokens := strings.Fields(text[m[2]:m[3]])
	if len(tokens) != 4 {
		return Extraction{}, false
	}
	if len(subItemRE.FindAllString(head, -1)) < 3 {
		return Extraction{}, false
	}
	return Extraction{Stem: strings.TrimSpace(head), Options: letterMap(tokens)}, true
}

// SplitNumberedItems handles papers that number the four options
// 1..4 instead of lettering them: the sub-items themselves become
// options A–D.
func SplitNumberedItems(text string) (Extraction, bool) {
	text = norm.NFKC.String(text)
	stem, tail, ok := SplitStemTail(text)
	if !ok {
		return Extraction{}, false
	}
	items := parseNumberedItems(tail)
	if len(items) != 4 {
		return Extraction{}, false
	}
	items[3] = strings.TrimSpace(comboGlueRE.ReplaceAllString(items[3], ""))
	for _, item := range items {
		if item == "" {
			return Extraction{}, false
		}
	}
	return Extraction{Stem: strings.TrimSpace(stem), Options: letterMap(items)}, true
}

// splitDoubleSpace splits on runs of 2+ spaces, the layout gap
// pdftotext leaves between inline options.
func splitDoubleSpace(tail string) []string {
	parts := nonEmptyTrimmed(doubleSpaceRE.Split(tail, -1))
	if len(parts) != 4 {
		return nil
	}
	return parts
}

// splitRepeatedPrefix splits before each recurrence of the tail's
// opening characters, for options sharing a structural prefix like
// 依法 or 警察. The longer candidate prefix is tried first.
func splitRepeatedPrefix(tail string) []string {
	runes := []rune(tail)
	if len(runes) < 8 {
		return nil
	}
	for _, n := range []int{3, 2} {
		prefix := string(runes[:n])
		if strings.ContainsAny(prefix, " \t　") {
			continue
		}
		cuts := prefixCuts(tail, prefix)
		if len(cuts) != 4 || cuts[0] != 0 {
			continue
		}
		parts := nonEmptyTrimmed([]string{
			tail[cuts[0]:cuts[1]], tail[cuts[1]:cuts[2]], tail[cuts[2]:cuts[3]], tail[cuts[3]:],
		})
		if len(parts) == 4 {
			return parts
		}
	}
	return nil
}

// prefixCuts lists the byte offsets of non-overlapping prefix
// occurrences in tail.
func prefixCuts(tail, prefix string) []int {
	var cuts []int
	for i := 0; i+len(prefix) <= len(tail); {
		if strings.HasPrefix(tail[i:], prefix) {
			cuts = append(cuts, i)
			i += len(prefix)
			continue
		}
		_, sz := utf8.DecodeRuneInString(tail[i:])
		i += sz
	}
	return cuts
}

// splitParenBoundary splits after a closing parenthesis followed by a
// capital letter or CJK character, the shape of bilingual term-list
// options.
func splitParenBoundary(tail string) []string {
	var cuts []int
	prev := rune(0)
	pending := false
	for i, r := range tail {
		if pending && !unicode.IsSpace(r) {
			if unicode.IsUpper(r) || unicode.Is(unicode.Han, r) {
				cuts = append(cuts, i)
			}
			pending = false
		}
		if (prev == ')' || prev == '）') && unicode.IsSpace(r) {
			pending = true
		}
		prev = r
	}
	if len(cuts) != 3 {
		return nil
	}
	parts := []string{
		tail[:cuts[0]], tail[cuts[0]:cuts[1]], tail[cuts[1]:cuts[2]], tail[cuts[2]:],
	}
	parts = nonEmptyTrimmed(parts)
	if len(parts) != 4 {
		return nil
	}
	return parts
}

// splitShortWords treats exactly four short whitespace-separated
// tokens as the options.
func splitShortWords(tail string) []string {
	words := strings.Fields(tail)
	if len(words) != 4 {
		return nil
	}
	for _, w := range words {
		if utf8.RuneCountInString(w) > 10 {
			return nil
		}
	}
	return words
}

// splitEqualSegments partitions the tail's words into four segments
// of minimal length variance. The most aggressive splitter, so it
// runs last and rejects lopsided results.
func splitEqualSegments(tail string) []string {
	words := strings.Fields(tail)
	n := len(words)
	if n < 4 || n > 40 {
		return nil
	}
	cum := make([]int, n+1)
	for i, w := range words {
		cum[i+1] = cum[i] + utf8.RuneCountInString(w) + 1
	}
	total := cum[n]
	target := total / 4

	best := -1
	var bi, bj, bk int
	for i := 1; i < n-2; i++ {
		for j := i + 1; j < n-1; j++ {
			for k := j + 1; k < n; k++ {
				dev := sq(cum[i]-target) + sq(cum[j]-cum[i]-target) +
					sq(cum[k]-cum[j]-target) + sq(total-cum[k]-target)
				if best < 0 || dev < best {
					best, bi, bj, bk = dev, i, j, k
				}
			}
		}
	}
	if best < 0 {
		return nil
	}
	parts := []string{
		strings.Join(words[:bi], " "),
		strings.Join(words[bi:bj], " "),
		strings.Join(words[bj:bk], " "),
		strings.Join(words[bk:], " "),
	}
	min, max := utf8.RuneCountInString(parts[0]), 0
	for _, p := range parts {
		n := utf8.RuneCountInString(p)
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	if min == 0 || max > min*5 {
		return nil
	}
	return parts
}

func sq(x int) int { return x * x }
