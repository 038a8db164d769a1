package normalize

import (
	"strings"
	"testing"
)

func TestWordRepair(t *testing.T) {
	t.Parallel()

	r := NewWordRepairer(nil)
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "split suffix", in: "the situa ti on is clear", want: "the situation is clear"},
		{name: "orphaned suffix", in: "informa tion", want: "information"},
		{name: "double split", in: "informa ti on", want: "information"},
		{name: "split article", in: "th e police", want: "the police"},
		{name: "untouched", in: "normal English text", want: "normal English text"},
		{name: "untouched cjk", in: "警察勤務條例", want: "警察勤務條例"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := r.Repair(tt.in); got != tt.want {
				t.Errorf("Repair(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWordRepairIdempotent(t *testing.T) {
	t.Parallel()

	r := NewWordRepairer(nil)
	inputs := []string{
		"the situa ti on is clear",
		"informa ti on and communica ti on",
		"th e immigra tion office",
		"警察勤務條例 with mixed 內容",
	}
	for _, in := range inputs {
		once := r.Repair(in)
		twice := r.Repair(once)
		if once != twice {
			t.Errorf("Repair not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestGlyphRemap(t *testing.T) {
	t.Parallel()

	g := NewGlyphRemapper(nil)
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "option marker", in: "\uE18C稽查", want: "(A)稽查"},
		{name: "all markers", in: "\uE18C甲\uE18D乙\uE18E丙\uE18F丁", want: "(A)甲(B)乙(C)丙(D)丁"},
		{name: "circled item", in: "\uE129警察", want: "①警察"},
		{name: "decorative strip", in: "前\uE0C6後", want: "前後"},
		{name: "unmapped strip", in: "前\uE999後", want: "前後"},
		{name: "no pua", in: "一般文字", want: "一般文字"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := g.Remap(tt.in)
			if got != tt.want {
				t.Errorf("Remap(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if HasPUA(got) {
				t.Errorf("Remap output %q still contains PUA codepoints", got)
			}
		})
	}
}

func TestParseGlyphTable(t *testing.T) {
	t.Parallel()

	table, err := ParseGlyphTable([]byte(`{"E18C": "(A)", "U+E0C6": ""}`))
	if err != nil {
		t.Fatalf("ParseGlyphTable: %v", err)
	}
	g := NewGlyphRemapper(table)
	if got := g.Remap("\uE18C選項\uE0C6"); got != "(A)選項" {
		t.Errorf("Remap = %q, want (A)選項", got)
	}

	if _, err := ParseGlyphTable([]byte(`{"not-hex": "x"}`)); err == nil {
		t.Error("ParseGlyphTable accepted a bad key")
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	n := New(nil, nil)
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "spaced cjk", in: "警 察 勤 務", want: "警察勤務"},
		{name: "fullwidth folds", in: "（Ａ）選項", want: "(A)選項"},
		{name: "circled digit folds", in: "①甲案", want: "1甲案"},
		{name: "exam code stripped", in: "依據 50140 規定之外的文字", want: "依據規定之外的文字"},
		{name: "variant repaired", in: "国境警察", want: "國境警察"},
		{name: "trimmed", in: "  文字  ", want: "文字"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := n.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeStripsControl(t *testing.T) {
	t.Parallel()

	n := New(nil, nil)
	in := "前\x00中\u200B後"
	if got := n.Normalize(in); got != "前中後" {
		t.Errorf("Normalize(%q) = %q, want 前中後", in, got)
	}
}

func TestCollapseCJKSpacesStable(t *testing.T) {
	t.Parallel()

	in := "這 是 一 段 被 拆 開 的 文 字"
	got := CollapseCJKSpaces(in)
	if got != "這是一段被拆開的文字" {
		t.Fatalf("CollapseCJKSpaces = %q", got)
	}
	if again := CollapseCJKSpaces(got); again != got {
		t.Error("CollapseCJKSpaces not stable")
	}
	if strings.Contains(got, " ") {
		t.Error("collapsed output still contains spaces")
	}
}
