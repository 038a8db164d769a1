package options

import (
	"testing"

	"github.com/Reese-max/police-exam-archive-sub000/internal/normalize"
)

func TestScanText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		wantStem string
		wantOpts map[string]string
		ok       bool
	}{
		{
			name:     "four markers",
			in:       "下列何者正確？(A)甲(B)乙(C)丙(D)丁",
			wantStem: "下列何者正確？",
			wantOpts: map[string]string{"A": "甲", "B": "乙", "C": "丙", "D": "丁"},
			ok:       true,
		},
		{
			name:     "five markers",
			in:       "下列何者正確？(A)甲(B)乙(C)丙(D)丁(E)戊",
			wantStem: "下列何者正確？",
			wantOpts: map[string]string{"A": "甲", "B": "乙", "C": "丙", "D": "丁", "E": "戊"},
			ok:       true,
		},
		{
			name:     "fullwidth parens",
			in:       "下列何者正確？（A）甲（B）乙（C）丙（D）丁",
			wantStem: "下列何者正確？",
			wantOpts: map[string]string{"A": "甲", "B": "乙", "C": "丙", "D": "丁"},
			ok:       true,
		},
		{
			name:     "lowercase markers",
			in:       "何者為是？(a)甲(b)乙(c)丙(d)丁",
			wantStem: "何者為是？",
			wantOpts: map[string]string{"A": "甲", "B": "乙", "C": "丙", "D": "丁"},
			ok:       true,
		},
		{
			name:     "empty stem allowed",
			in:       "(A)甲(B)乙(C)丙(D)丁",
			wantStem: "",
			wantOpts: map[string]string{"A": "甲", "B": "乙", "C": "丙", "D": "丁"},
			ok:       true,
		},
		{name: "partial markers", in: "何者正確？(A)甲(B)乙", ok: false},
		{name: "out of order", in: "(B)乙(A)甲(C)丙(D)丁", ok: false},
		{name: "empty option body", in: "(A)(B)乙(C)丙(D)丁", ok: false},
		{name: "no markers", in: "完全沒有選項標記的題目", ok: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ScanText(tt.in)
			if ok != tt.ok {
				t.Fatalf("ScanText ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if got.Stem != tt.wantStem {
				t.Errorf("Stem = %q, want %q", got.Stem, tt.wantStem)
			}
			assertOptions(t, got.Options, tt.wantOpts)
		})
	}
}

func TestMarkerScanRepeatedLetterUsesFirst(t *testing.T) {
	t.Parallel()

	// A later duplicate (A) belongs to option D's text, not a new
	// option boundary.
	got, ok := ScanText("何者正確？(A)甲(B)乙(C)丙(D)如(A)所述")
	if !ok {
		t.Fatal("ScanText declined")
	}
	if got.Options["D"] != "如(A)所述" {
		t.Errorf("option D = %q, want 如(A)所述", got.Options["D"])
	}
}

func TestRemapScan(t *testing.T) {
	t.Parallel()

	s := RemapScan{Remapper: normalize.NewGlyphRemapper(nil)}
	unit := Unit{Text: "下列何者正確？\uE18C甲\uE18D乙\uE18E丙\uE18F丁"}
	got, ok := s.Extract(unit)
	if !ok {
		t.Fatal("RemapScan declined")
	}
	assertOptions(t, got.Options, map[string]string{"A": "甲", "B": "乙", "C": "丙", "D": "丁"})

	if _, ok := s.Extract(Unit{Text: "沒有PUA字元的題目(A)x"}); ok {
		t.Error("RemapScan accepted a unit without PUA codepoints")
	}
}

func TestCountMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"(A)甲(B)乙(C)丙(D)丁", 4},
		{"(A)甲(B)乙", 2},
		{"(A)甲(A)重複", 1},
		{"(E)戊", 0},
		{"無標記", 0},
	}
	for _, tt := range tests {
		tt := tt
		if got := CountMarkers(tt.in); got != tt.want {
			t.Errorf("CountMarkers(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func assertOptions(t *testing.T, got, want map[string]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("options = %v, want %v", got, want)
	}
	for letter, text := range want {
		if got[letter] != text {
			t.Errorf("option %s = %q, want %q", letter, got[letter], text)
		}
	}
}
