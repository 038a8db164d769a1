// Package textsource provides ordered pages of raw text extracted
// from exam paper PDFs.
package textsource

import "context"

// Source yields a document's text one page at a time. Implementations
// preserve line breaks within each page.
type Source interface {
	// Pages returns one UTF-8 text block per page, in document order.
	Pages() []string
}

// Opener opens a document at path and returns its text source.
type Opener func(ctx context.Context, path string) (Source, error)

// MemorySource is an in-memory Source for tests and re-reads.
type MemorySource struct {
	pages []string
}

// NewMemory builds a Source over the given pages.
func NewMemory(pages ...string) *MemorySource {
	return &MemorySource{pages: pages}
}

// Pages implements Source.
func (s *MemorySource) Pages() []string { return s.pages }

var _ Source = (*MemorySource)(nil)
