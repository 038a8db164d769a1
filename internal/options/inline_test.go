package options

import (
	"strings"
	"testing"
)

func TestSplitStemTail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		wantStem string
		wantTail string
		ok       bool
	}{
		{
			name:     "question mark",
			in:       "下列何者正確？甲案 乙案 丙案 丁案",
			wantStem: "下列何者正確？",
			wantTail: "甲案 乙案 丙案 丁案",
			ok:       true,
		},
		{
			name:     "colon after stem keyword",
			in:       "下列敘述正確者為：甲案 乙案 丙案 丁案",
			wantStem: "下列敘述正確者為：",
			wantTail: "甲案 乙案 丙案 丁案",
			ok:       true,
		},
		{name: "plain colon declines", in: "備註：其他文字", ok: false},
		{name: "no delimiter", in: "沒有任何分隔符號的文字", ok: false},
		{name: "empty tail", in: "只有題幹的問題？", ok: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			stem, tail, ok := SplitStemTail(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if stem != tt.wantStem {
				t.Errorf("stem = %q, want %q", stem, tt.wantStem)
			}
			if tail != tt.wantTail {
				t.Errorf("tail = %q, want %q", tail, tt.wantTail)
			}
		})
	}
}

func TestInlineSplitDoubleSpace(t *testing.T) {
	t.Parallel()

	got, ok := (InlineSplit{}).Extract(Unit{
		Text: "警察節是每年的哪一天？六月十五日  七月十五日  八月十五日  九月十五日",
	})
	if !ok {
		t.Fatal("InlineSplit declined")
	}
	assertOptions(t, got.Options, map[string]string{
		"A": "六月十五日", "B": "七月十五日", "C": "八月十五日", "D": "九月十五日",
	})
}

func TestInlineSplitRepeatedPrefix(t *testing.T) {
	t.Parallel()

	got, ok := (InlineSplit{}).Extract(Unit{
		Text: "依法得行使下列何種職權？依法盤查 依法逮捕 依法搜索 依法扣押",
	})
	if !ok {
		t.Fatal("InlineSplit declined")
	}
	assertOptions(t, got.Options, map[string]string{
		"A": "依法盤查", "B": "依法逮捕", "C": "依法搜索", "D": "依法扣押",
	})
}

func TestInlineSplitShortWords(t *testing.T) {
	t.Parallel()

	got, ok := (InlineSplit{}).Extract(Unit{
		Text: "警察勤務方式不包括下列何者？巡邏勤務 臨檢勤務 守望勤務 值班勤務",
	})
	if !ok {
		t.Fatal("InlineSplit declined")
	}
	assertOptions(t, got.Options, map[string]string{
		"A": "巡邏勤務", "B": "臨檢勤務", "C": "守望勤務", "D": "值班勤務",
	})
}

func TestInlineSplitEqualSegments(t *testing.T) {
	t.Parallel()

	got, ok := (InlineSplit{}).Extract(Unit{
		Text: "Which pairing is correct? alpha beta gamma delta epsilon zeta eta theta",
	})
	if !ok {
		t.Fatal("InlineSplit declined")
	}
	assertOptions(t, got.Options, map[string]string{
		"A": "alpha beta",
		"B": "gamma delta",
		"C": "epsilon zeta",
		"D": "eta theta",
	})
}

func TestSplitNumberedItems(t *testing.T) {
	t.Parallel()

	got, ok := SplitNumberedItems("下列有關警察任務之敘述，何者正確？1維持公共秩序 2保護社會安全 3防止一切危害 4促進人民福利")
	if !ok {
		t.Fatal("SplitNumberedItems declined")
	}
	if got.Stem != "下列有關警察任務之敘述，何者正確？" {
		t.Errorf("Stem = %q", got.Stem)
	}
	assertOptions(t, got.Options, map[string]string{
		"A": "維持公共秩序", "B": "保護社會安全", "C": "防止一切危害", "D": "促進人民福利",
	})
}

func TestSplitNumberedItemsDeclines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{name: "no delimiter", in: "1甲 2乙 3丙 4丁"},
		{name: "only three items", in: "何者正確？1甲案 2乙案 3丙案"},
		{name: "digits out of order", in: "何者正確？2乙案 1甲案 4丁案 3丙案"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, ok := SplitNumberedItems(tt.in); ok {
				t.Error("SplitNumberedItems accepted an invalid input")
			}
		})
	}
}

func TestSplitComboFromStem(t *testing.T) {
	t.Parallel()

	in := "關於警察職權之敘述：1身分查證 2資料蒐集 3即時強制 4治安顧慮人口查訪 前述何者屬之？ 123 124 134 1234"
	got, ok := SplitComboFromStem(in)
	if !ok {
		t.Fatal("SplitComboFromStem declined")
	}
	assertOptions(t, got.Options, map[string]string{
		"A": "123", "B": "124", "C": "134", "D": "1234",
	})
	if got.Stem == "" {
		t.Error("Stem empty, want stem with sub-items")
	}
	for _, frag := range []string{"身分查證", "治安顧慮人口查訪"} {
		if !strings.Contains(got.Stem, frag) {
			t.Errorf("Stem %q missing sub-item %q", got.Stem, frag)
		}
	}
}

func TestSplitComboFromStemDeclines(t *testing.T) {
	t.Parallel()

	// Trailing digits without numbered sub-items are not combination
	// answers.
	if _, ok := SplitComboFromStem("民國幾年開始實施？ 111 112 113 114"); ok {
		t.Error("SplitComboFromStem accepted digits without sub-items")
	}
}

func TestInlineSplitDeclines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{name: "no delimiter", text: "完全沒有可分割結構的一段文字"},
		{name: "tail too short", text: "何者正確？甲乙"},
		{name: "empty", text: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, ok := (InlineSplit{}).Extract(Unit{Text: tt.text}); ok {
				t.Error("InlineSplit accepted an unsplittable unit")
			}
		})
	}
}
