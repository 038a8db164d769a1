// Package answerkey parses companion answer PDFs and merges their
// answers into choice questions.
package answerkey

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Reese-max/police-exam-archive-sub000/internal/question"
	"github.com/Reese-max/police-exam-archive-sub000/internal/textsource"
)

// maxAnswerNumber bounds plausible question numbers in an answer
// sheet; larger matches are codes or years.
const maxAnswerNumber = 80

var (
	// tableHeaderRE opens an answer-table row block: 題號 第1題 第2題 …
	tableHeaderRE = regexp.MustCompile(`^\s*題\s*號`)
	answerRowRE   = regexp.MustCompile(`^\s*答\s*案`)
	numberCellRE  = regexp.MustCompile(`第\s*(\d{1,3})\s*題`)
	letterCellRE  = regexp.MustCompile(`[A-Ea-e#]`)

	// pairRE matches inline "12.A" / "12、(B)" listings.
	pairRE = regexp.MustCompile(`(\d{1,3})\s*[\.、．]\s*[\(（]?([A-Ea-e])[\)）]?`)

	// correctionRE matches amendment notices: 第12題…更正為B.
	correctionRE = regexp.MustCompile(`第\s*(\d{1,3})\s*題[^\n]*?(?:更正為|答案[為是]|修正為)\s*[\(（]?([A-Ea-e])[\)）]?`)
)

// ParseSource extracts a number→letter answer map from an answer
// sheet source.
func ParseSource(src textsource.Source) map[int]string {
	return ParseText(strings.Join(src.Pages(), "\n"))
}

// ParseText extracts answers from raw answer-sheet text. Three
// formats are recognized: the tabular 題號/答案 layout, inline "1.A"
// pairs, and correction notices, which override the other two.
func ParseText(text string) map[int]string {
	answers := parseTables(text)
	if len(answers) == 0 {
		answers = parsePairs(text)
	}
	for _, m := range correctionRE.FindAllStringSubmatch(text, -1) {
		num, err := strconv.Atoi(m[1])
		if err != nil || num > maxAnswerNumber {
			continue
		}
		answers[num] = strings.ToUpper(m[2])
	}
	return answers
}

// parseTables reads the 題號 row + 答案 row table layout. The answer
// row may wrap onto the line after its header row.
func parseTables(text string) map[int]string {
	answers := make(map[int]string)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !tableHeaderRE.MatchString(line) {
			continue
		}
		cells := numberCellRE.FindAllStringSubmatch(line, -1)
		if len(cells) == 0 {
			continue
		}
		nums := make([]int, 0, len(cells))
		for _, c := range cells {
			n, err := strconv.Atoi(c[1])
			if err != nil || n > maxAnswerNumber {
				continue
			}
			nums = append(nums, n)
		}
		for j := i + 1; j < len(lines) && j <= i+2; j++ {
			if !answerRowRE.MatchString(lines[j]) {
				continue
			}
			row := answerRowRE.ReplaceAllString(lines[j], "")
			letters := letterCellRE.FindAllString(row, -1)
			for k, num := range nums {
				if k >= len(letters) {
					break
				}
				// "#" marks an officially voided question.
				if letters[k] == "#" {
					continue
				}
				answers[num] = strings.ToUpper(letters[k])
			}
			break
		}
	}
	return answers
}

// parsePairs reads inline number-letter listings.
func parsePairs(text string) map[int]string {
	answers := make(map[int]string)
	for _, m := range pairRE.FindAllStringSubmatch(text, -1) {
		num, err := strconv.Atoi(m[1])
		if err != nil || num == 0 || num > maxAnswerNumber {
			continue
		}
		if _, seen := answers[num]; seen {
			continue
		}
		answers[num] = strings.ToUpper(m[2])
	}
	return answers
}

// Merge writes answers into matching choice questions that have none
// yet, returning how many were set.
func Merge(doc *question.Document, answers map[int]string) int {
	merged := 0
	for i := range doc.Questions {
		q := &doc.Questions[i]
		if q.Type != question.KindChoice || !q.Number.IsArabic() || q.Answer != "" {
			continue
		}
		if letter, ok := answers[q.Number.Int()]; ok {
			q.Answer = letter
			merged++
		}
	}
	return merged
}
