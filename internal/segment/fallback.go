package segment

import (
	"strings"

	"github.com/Reese-max/police-exam-archive-sub000/internal/classify"
	"github.com/Reese-max/police-exam-archive-sub000/internal/question"
)

// cnOrdinals are the essay ordinals the fallback assigns; papers with
// more questions overflow into Arabic numerals.
var cnOrdinals = []string{
	"一", "二", "三", "四", "五", "六", "七", "八",
	"九", "十", "十一", "十二", "十三", "十四", "十五",
}

// fallbackEssays recovers questions from essay-only papers whose
// question starts carry no recognizable ordinals. Paragraphs ending
// in a score marker such as （25分） are treated as one question
// each.
func (s *Segmenter) fallbackEssays(pages []string) []question.Question {
	cls := classify.New(s.linePats)
	var qs []question.Question
	for _, page := range pages {
		for _, para := range splitParagraphs(page) {
			var kept []string
			for _, line := range para {
				if cls.Next(line) == classify.Content {
					kept = append(kept, line)
				}
			}
			if len(kept) == 0 {
				continue
			}
			text := strings.Join(kept, " ")
			if !s.pats.Score.MatchString(text) {
				continue
			}
			qs = append(qs, question.Question{
				Number: fallbackOrdinal(len(qs)),
				Type:   question.KindEssay,
				Stem:   s.normalizer.Normalize(text),
			})
		}
	}
	return qs
}

// splitParagraphs cuts a page into blank-line separated paragraphs of
// trimmed lines.
func splitParagraphs(page string) [][]string {
	var paras [][]string
	var cur []string
	for _, line := range strings.Split(page, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(cur) > 0 {
				paras = append(paras, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, trimmed)
	}
	if len(cur) > 0 {
		paras = append(paras, cur)
	}
	return paras
}

func fallbackOrdinal(idx int) question.Ordinal {
	if idx < len(cnOrdinals) {
		return question.Chinese(cnOrdinals[idx])
	}
	return question.Arabic(idx + 1)
}
