package textsource

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// OpenNative extracts page text with the pure-Go ledongthuc/pdf
// reader. It needs no external tools but handles fewer encodings than
// poppler, so it is the fallback backend.
func OpenNative(_ context.Context, path string) (Source, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v: %w", path, err, ErrSourceUnavailable)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			pages = append(pages, "")
			continue
		}
		var b strings.Builder
		for _, row := range rows {
			for _, word := range row.Content {
				b.WriteString(word.S)
			}
			b.WriteByte('\n')
		}
		pages = append(pages, b.String())
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%s: empty document: %w", path, ErrSourceUnavailable)
	}
	return NewMemory(pages...), nil
}

// Open picks poppler when available and falls back to the native
// reader otherwise.
func Open(ctx context.Context, path string) (Source, error) {
	if PopplerAvailable() {
		return OpenPoppler(ctx, path)
	}
	return OpenNative(ctx, path)
}
