package segment

import "regexp"

// Patterns are the unit-boundary regexes for one paper layout.
type Patterns struct {
	Choice  *regexp.Regexp
	Essay   *regexp.Regexp
	Section *regexp.Regexp
	Passage *regexp.Regexp
	Score   *regexp.Regexp
}

// DefaultPatterns matches the national exam paper conventions.
func DefaultPatterns() *Patterns {
	return &Patterns{
		// "12. stem…" with 、．) or plain space as the delimiter.
		Choice: regexp.MustCompile(`^(\d{1,3})\s*[\.、．)\s]\s*(\S.*)$`),
		// "三、stem…"
		Essay: regexp.MustCompile(`^([一二三四五六七八九十]+)\s*[、．.]\s*(\S.*)$`),
		// "甲、申論題"
		Section: regexp.MustCompile(`^([甲乙])\s*[、．.]\s*(申論題|測驗題|選擇題)`),
		// "請依下文回答第 36 題至第 40 題"
		Passage: regexp.MustCompile(`請(?:依下文)?回答(?:下列)?第?\s*(\d+)\s*題?\s*至\s*第?\s*(\d+)\s*題\s*[:：]?`),
		// "（25分）" score markers on essay questions.
		Score: regexp.MustCompile(`[（(]\s*\d+\s*分\s*[）)]`),
	}
}

// headerFields parse exam metadata out of the paper's opening lines.
var headerFields = struct {
	yearExam *regexp.Regexp
	examName *regexp.Regexp
	level    *regexp.Regexp
	category *regexp.Regexp
	subject  *regexp.Regexp
	code     *regexp.Regexp
}{
	yearExam: regexp.MustCompile(`(\d{2,3})\s*年\s*(?:公務人員)?特種考試`),
	examName: regexp.MustCompile(`(一般警察人員考試|警察人員考試|移民行政人員考試|國家安全情報人員考試)`),
	level:    regexp.MustCompile(`([二三四五]等)考試`),
	category: regexp.MustCompile(`類\s*科\s*[：:]\s*([^\n]+)`),
	subject:  regexp.MustCompile(`科\s*目\s*[：:]\s*([^\n]+)`),
	code:     regexp.MustCompile(`代\s*號\s*[：:]\s*(\d{5})`),
}
