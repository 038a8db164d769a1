package question

import (
	"testing"
)

func TestOrdinalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ord  Ordinal
		want string
	}{
		{name: "arabic", ord: Arabic(12), want: "12"},
		{name: "chinese", ord: Chinese("三"), want: `"三"`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data, err := tt.ord.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("MarshalJSON = %s, want %s", data, tt.want)
			}
			var back Ordinal
			if err := back.UnmarshalJSON(data); err != nil {
				t.Fatalf("UnmarshalJSON: %v", err)
			}
			if back != tt.ord {
				t.Errorf("roundtrip = %v, want %v", back, tt.ord)
			}
		})
	}
}

func TestHasCompleteOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts map[string]string
		want bool
	}{
		{
			name: "four options",
			opts: map[string]string{"A": "甲", "B": "乙", "C": "丙", "D": "丁"},
			want: true,
		},
		{
			name: "five options",
			opts: map[string]string{"A": "甲", "B": "乙", "C": "丙", "D": "丁", "E": "戊"},
			want: true,
		},
		{
			name: "missing letter",
			opts: map[string]string{"A": "甲", "B": "乙", "D": "丁"},
			want: false,
		},
		{
			name: "blank option",
			opts: map[string]string{"A": "甲", "B": "  ", "C": "丙", "D": "丁"},
			want: false,
		},
		{
			name: "wrong letters",
			opts: map[string]string{"A": "甲", "B": "乙", "C": "丙", "E": "戊"},
			want: false,
		},
		{name: "none", opts: nil, want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q := Question{Type: KindChoice, Options: tt.opts}
			if got := q.HasCompleteOptions(); got != tt.want {
				t.Errorf("HasCompleteOptions = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNeedsRepair(t *testing.T) {
	t.Parallel()

	complete := map[string]string{"A": "甲", "B": "乙", "C": "丙", "D": "丁"}
	tests := []struct {
		name string
		q    Question
		want bool
	}{
		{
			name: "complete choice",
			q:    Question{Type: KindChoice, Options: complete},
			want: false,
		},
		{
			name: "incomplete choice",
			q:    Question{Type: KindChoice, Subtype: SubtypeIncomplete},
			want: true,
		},
		{
			name: "optionless choice",
			q:    Question{Type: KindChoice},
			want: true,
		},
		{
			name: "passage fragment exempt",
			q:    Question{Type: KindChoice, Subtype: SubtypePassageFragment},
			want: false,
		},
		{
			name: "essay exempt",
			q:    Question{Type: KindEssay},
			want: false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.q.NeedsRepair(); got != tt.want {
				t.Errorf("NeedsRepair = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocumentViolations(t *testing.T) {
	t.Parallel()

	doc := Document{Questions: []Question{
		{Number: Arabic(1), Type: KindChoice, Options: map[string]string{"A": "a", "B": "b", "C": "c", "D": "d"}},
		{Number: Arabic(2), Type: KindChoice, Options: map[string]string{"A": "a", "C": "c"}},
		{Number: Arabic(3), Type: KindChoice, Subtype: SubtypeIncomplete},
		{Number: Arabic(4), Type: KindChoice, Subtype: SubtypePassageFragment},
		{Number: Chinese("一"), Type: KindEssay},
	}}

	got := doc.Violations()
	if len(got) != 1 {
		t.Fatalf("Violations = %d, want 1", len(got))
	}
	if got[0].Number != Arabic(2) {
		t.Errorf("violating number = %v, want 2", got[0].Number)
	}
	wantMissing := []string{"B", "D"}
	if len(got[0].Missing) != len(wantMissing) {
		t.Fatalf("Missing = %v, want %v", got[0].Missing, wantMissing)
	}
	for i, letter := range wantMissing {
		if got[0].Missing[i] != letter {
			t.Errorf("Missing[%d] = %s, want %s", i, got[0].Missing[i], letter)
		}
	}
}

func TestAnnotated(t *testing.T) {
	t.Parallel()

	doc := Document{Questions: []Question{
		{Subtype: SubtypeIncomplete},
		{Subtype: SubtypeIncomplete},
		{Subtype: SubtypePassageFragment},
		{},
	}}
	if got := doc.Annotated(SubtypeIncomplete); got != 2 {
		t.Errorf("Annotated(incomplete) = %d, want 2", got)
	}
	if got := doc.Annotated(SubtypePassageFragment); got != 1 {
		t.Errorf("Annotated(passage_fragment) = %d, want 1", got)
	}
}
