package options

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxGroupingLines bounds the partition search. Units with more
// trailing lines than this are out of reach for the O(N³) scan and
// cascade to the next strategy.
const MaxGroupingLines = 12

// stemDelimiters end a question stem.
var (
	questionMarks = "？?"
	colonMarks    = "：:"
	// stemTailWords justify treating a colon as the stem end.
	stemTailWords = []string{"正確", "錯誤", "何者", "下列", "適當", "包括", "依序"}
)

// comboTokenRE matches one combination answer token such as "134".
var comboTokenRE = regexp.MustCompile(`^[1-6]{1,4}$`)

// circledItems are the sub-item markers of combination questions
// before NFKC folding.
const circledItems = "①②③④⑤⑥⑦⑧⑨⑩"

// LineGrouping recovers options from papers that print them on
// separate unmarked lines. It locates the stem end, then searches all
// partitions of the trailing lines into 4 contiguous groups and keeps
// the best-scoring one. The search is deterministic: ties keep the
// earliest split points.
type LineGrouping struct{}

func (LineGrouping) Name() string { return "line_grouping" }

func (LineGrouping) Extract(u Unit) (Extraction, bool) {
	lines := nonEmptyTrimmed(u.Lines)
	if len(lines) < 2 {
		return Extraction{}, false
	}
	stemLines, optLines := splitAtStemEnd(lines)
	if len(optLines) == 0 {
		return Extraction{}, false
	}

	// A trailing combination-answer row turns the sub-item lines into
	// stem content and its four tokens into the options.
	last := norm.NFKC.String(optLines[len(optLines)-1])
	if tokens := ComboTokens(last); tokens != nil {
		if len(tokens) != 4 {
			return Extraction{}, false
		}
		stem := joinLines(append(stemLines, optLines[:len(optLines)-1]...))
		return Extraction{Stem: stem, Options: letterMap(tokens)}, true
	}
	// Circled sub-items without an answer row mean the combination
	// tokens were lost; grouping the sub-items would fabricate options.
	if countCircled(optLines) >= 3 {
		return Extraction{}, false
	}

	groups := Partition(optLines)
	if groups == nil {
		return Extraction{}, false
	}
	opts := make(map[string]string, 4)
	for i, g := range groups {
		opts[letters[i]] = joinLines(g)
	}
	return Extraction{Stem: joinLines(stemLines), Options: opts}, true
}

// splitAtStemEnd splits lines at the last stem delimiter. Text after
// the delimiter on the boundary line moves into the option lines.
func splitAtStemEnd(lines []string) (stem, opts []string) {
	boundary, cut := -1, -1
	for i := len(lines) - 1; i >= 0; i-- {
		if idx := strings.LastIndexAny(lines[i], questionMarks); idx >= 0 {
			boundary, cut = i, idx
			break
		}
		if idx := strings.LastIndexAny(lines[i], colonMarks); idx >= 0 && hasStemTail(lines[i][:idx]) {
			boundary, cut = i, idx
			break
		}
	}
	if boundary < 0 {
		return lines, nil
	}
	_, sz := utf8.DecodeRuneInString(lines[boundary][cut:])
	head := strings.TrimSpace(lines[boundary][:cut+sz])
	tail := strings.TrimSpace(lines[boundary][cut+sz:])

	stem = append(stem, lines[:boundary]...)
	stem = append(stem, head)
	if tail != "" {
		opts = append(opts, tail)
	}
	opts = append(opts, lines[boundary+1:]...)
	return stem, opts
}

func hasStemTail(s string) bool {
	for _, w := range stemTailWords {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Partition searches all splits of 4..MaxGroupingLines lines into 4
// contiguous non-empty groups and returns the best-scoring one, or
// nil when no valid partition exists.
func Partition(lines []string) [][]string {
	n := len(lines)
	if n < 4 || n > MaxGroupingLines {
		return nil
	}
	if n == 4 {
		if _, ok := scorePartition(asGroups(lines, 1, 2, 3), longestLine(lines)); !ok {
			return nil
		}
		return asGroups(lines, 1, 2, 3)
	}

	maxLen := longestLine(lines)
	bestScore := 0
	var best [][]string
	for i := 1; i < n-2; i++ {
		for j := i + 1; j < n-1; j++ {
			for k := j + 1; k < n; k++ {
				groups := asGroups(lines, i, j, k)
				score, ok := scorePartition(groups, maxLen)
				if !ok {
					continue
				}
				if best == nil || score > bestScore {
					best, bestScore = groups, score
				}
			}
		}
	}
	return best
}

// asGroups cuts lines at the three ascending split points.
func asGroups(lines []string, i, j, k int) [][]string {
	return [][]string{lines[:i], lines[i:j], lines[j:k], lines[k:]}
}

// scorePartition rates one candidate partition. A group whose merged
// text is under 2 runes invalidates the partition; under 6 runes
// costs 180 points. Each of the first three groups earns points for
// ending on a line shorter than the unit's longest, since an option
// boundary usually follows a short wrapped line.
func scorePartition(groups [][]string, maxLen int) (int, bool) {
	score := 0
	for gi, g := range groups {
		merged := 0
		for _, line := range g {
			merged += utf8.RuneCountInString(line)
		}
		if merged < 2 {
			return 0, false
		}
		if merged < 6 {
			score -= 180
		}
		if gi < 3 {
			score += maxLen - utf8.RuneCountInString(g[len(g)-1])
		}
	}
	return score, true
}

func longestLine(lines []string) int {
	max := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > max {
			max = n
		}
	}
	return max
}

// ComboTokens parses a combination-answer row such as "134 234 13
// 24" into its tokens, or nil when the line is not one.
func ComboTokens(line string) []string {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil
	}
	for _, f := range fields {
		if !comboTokenRE.MatchString(f) {
			return nil
		}
	}
	return fields
}

func countCircled(lines []string) int {
	n := 0
	for _, line := range lines {
		for _, r := range line {
			if strings.ContainsRune(circledItems, r) {
				n++
			}
		}
	}
	return n
}

func nonEmptyTrimmed(lines []string) []string {
	var out []string
	for _, line := range lines {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func joinLines(lines []string) string {
	return strings.TrimSpace(strings.Join(lines, " "))
}

func letterMap(parts []string) map[string]string {
	m := make(map[string]string, len(parts))
	for i, p := range parts {
		m[letters[i]] = strings.TrimSpace(p)
	}
	return m
}
