package textsource

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// popplerBinary is the poppler-utils text extractor.
const popplerBinary = "pdftotext"

// OpenPoppler extracts page text by shelling out to pdftotext with
// layout preservation. Pages are split on the form feeds pdftotext
// emits between them.
func OpenPoppler(ctx context.Context, path string) (Source, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrSourceUnavailable)
	}
	cmd := exec.CommandContext(ctx, popplerBinary, "-layout", "-enc", "UTF-8", path, "-")
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("pdftotext %s: %s: %w", path, msg, ErrSourceUnavailable)
	}
	pages := strings.Split(out.String(), "\f")
	// pdftotext ends the last page with a form feed too.
	if n := len(pages); n > 0 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%s: empty document: %w", path, ErrSourceUnavailable)
	}
	return NewMemory(pages...), nil
}

// PopplerAvailable reports whether pdftotext is on PATH.
func PopplerAvailable() bool {
	_, err := exec.LookPath(popplerBinary)
	return err == nil
}
