package classify

import "testing"

func TestNextSingleLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want Tag
	}{
		{name: "code header", line: "代號：50140", want: Header},
		{name: "subject header", line: "科 目：警察法規", want: Header},
		{name: "grade header", line: "等 別：三等考試", want: Header},
		{name: "exam keyword header", line: "113年公務人員特種考試警察人員考試試題", want: Header},
		{name: "page footer", line: "頁次：4-1", want: Footer},
		{name: "bare page number", line: "- 2 -", want: Footer},
		{name: "code footer", line: "50140-50640", want: Footer},
		{name: "turn page footer", line: "請接背面", want: Footer},
		{name: "note marker", line: "※注意：禁止使用電子計算器", want: Note},
		{name: "note keyword", line: "應以2B鉛筆作答", want: Note},
		{name: "question content", line: "下列有關警察勤務之敘述，何者正確？", want: Content},
		{name: "blank", line: "   ", want: Header},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := New(nil)
			if got := c.Next(tt.line); got != tt.want {
				t.Errorf("Next(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestStickyNoteSpan(t *testing.T) {
	t.Parallel()

	c := New(nil)
	lines := []struct {
		text string
		want Tag
	}{
		{"※注意：本試題為單一選擇題，請選出一個正確或最適當答案", Note},
		{"複選作答者，該題不予計分。", Note},
		{"共40題，每題2.5分，須用2B鉛筆在試卡上依題號清楚劃記", Note},
		{"1. 警察法規定之警察任務為何？", Content},
		{"(A)維持公共秩序", Content},
	}
	for i, line := range lines {
		if got := c.Next(line.text); got != line.want {
			t.Errorf("line %d %q = %v, want %v", i, line.text, got, line.want)
		}
	}
}

func TestNoteReleasedBySection(t *testing.T) {
	t.Parallel()

	c := New(nil)
	if got := c.Next("※注意：不必抄題，作答時請將試題題號及答案依照順序寫在試卷上"); got != Note {
		t.Fatalf("note marker = %v, want Note", got)
	}
	if got := c.Next("於本試題上作答者，不予計分。"); got != Note {
		t.Fatalf("note continuation = %v, want Note", got)
	}
	if got := c.Next("甲、申論題部分：（50分）"); got != Content {
		t.Fatalf("section start = %v, want Content", got)
	}
}

func TestSpacedCJKStillMatches(t *testing.T) {
	t.Parallel()

	c := New(nil)
	// OCR splits header keywords with spaces; matching collapses them.
	if got := c.Next("類 科 ：行政警察人員"); got != Header {
		t.Errorf("spaced header = %v, want Header", got)
	}
}

func TestReset(t *testing.T) {
	t.Parallel()

	c := New(nil)
	c.Next("※注意：不必抄題")
	if got := c.Next("任意接續文字"); got != Note {
		t.Fatalf("in-note line = %v, want Note", got)
	}
	c.Reset()
	if got := c.Next("任意接續文字"); got != Content {
		t.Errorf("after Reset = %v, want Content", got)
	}
}
