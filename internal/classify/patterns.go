package classify

import "regexp"

// PatternSet is the line-classification configuration for one exam
// vendor's layout. The defaults cover the national exam paper format.
type PatternSet struct {
	Header         []*regexp.Regexp
	Footer         []*regexp.Regexp
	HeaderKeywords []string
	NoteStart      *regexp.Regexp
	NoteKeywords   []string

	// Unit starts release the sticky note span.
	ChoiceStart  *regexp.Regexp
	EssayStart   *regexp.Regexp
	SectionStart *regexp.Regexp
}

// DefaultPatterns returns the pattern set for scanned national exam
// papers.
func DefaultPatterns() *PatternSet {
	return &PatternSet{
		Header: []*regexp.Regexp{
			regexp.MustCompile(`^\d{2,3}\s*年\s*(公務|特種)`),
			regexp.MustCompile(`^代號[:：]?`),
			regexp.MustCompile(`^考\s*試\s*(別|時間)`),
			regexp.MustCompile(`^等\s*別`),
			regexp.MustCompile(`^類\s*科`),
			regexp.MustCompile(`^科\s*目`),
			regexp.MustCompile(`^座號`),
			regexp.MustCompile(`^(全一張|全一頁)`),
		},
		Footer: []*regexp.Regexp{
			regexp.MustCompile(`^頁次`),
			regexp.MustCompile(`^-?\s*\d+\s*-?\s*$`),
			regexp.MustCompile(`^\d{5}([-、]\d{5})*\s*$`),
			regexp.MustCompile(`^(請接背面|背面尚有試題|請翻頁)`),
		},
		HeaderKeywords: []string{
			"人員考試", "考試別", "退除役軍人轉任",
		},
		NoteStart: regexp.MustCompile(`^[※＊*]?\s*注意\s*[：:]`),
		NoteKeywords: []string{
			"不必抄題", "不予計分", "禁止使用電子計算器",
			"本試題為單一選擇題", "請選出一個正確或最適當答案",
			"鋼筆或原子筆", "2B鉛筆", "應使用本國文字",
			"可以使用電子計算器",
		},
		ChoiceStart:  regexp.MustCompile(`^\d{1,3}\s*[\.、．)\s]\s*\S`),
		EssayStart:   regexp.MustCompile(`^[一二三四五六七八九十]+\s*[、．.]\s*\S`),
		SectionStart: regexp.MustCompile(`^[甲乙]\s*[、．.]\s*(申論題|測驗題|選擇題)`),
	}
}
