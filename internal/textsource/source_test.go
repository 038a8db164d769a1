package textsource

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemorySourcePages(t *testing.T) {
	t.Parallel()

	src := NewMemory("page one", "page two")
	pages := src.Pages()
	if len(pages) != 2 || pages[0] != "page one" || pages[1] != "page two" {
		t.Errorf("Pages = %v", pages)
	}
}

func TestHashFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.pdf")
	b := filepath.Join(dir, "b.pdf")
	c := filepath.Join(dir, "c.pdf")
	for path, content := range map[string]string{a: "same", b: "same", c: "different"} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ha, err := HashFile(a)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if len(ha) != 16 {
		t.Errorf("digest length = %d, want 16", len(ha))
	}
	hb, _ := HashFile(b)
	hc, _ := HashFile(c)
	if ha != hb {
		t.Errorf("identical content hashed differently: %s vs %s", ha, hb)
	}
	if ha == hc {
		t.Error("different content hashed identically")
	}
}

func TestHashFileMissing(t *testing.T) {
	t.Parallel()

	if _, err := HashFile(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("HashFile succeeded on a missing file")
	}
}
