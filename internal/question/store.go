package question

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
)

// codec is the std-compatible sonic configuration. Map keys serialize
// sorted, so option sets come out in A,B,C,D,E order.
var codec = sonic.ConfigStd

// Load reads a persisted document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	var doc Document
	if err := codec.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("load document %s: %w", path, err)
	}
	return &doc, nil
}

// Save writes the document to path as indented JSON, creating parent
// directories as needed.
func Save(path string, doc *Document) error {
	data, err := codec.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	data = append(data, '\n')
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save document: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// BackupDir returns a timestamped directory name for a batch of
// pre-mutation backups.
func BackupDir(root string, now time.Time) string {
	return filepath.Join(root, "backups", "repair_"+now.Format("20060102_150405"))
}

// Backup copies the file at path into dir, preserving its position
// relative to root so same-named files from different papers do not
// collide.
func Backup(path, root, dir string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("backup %s: %w", path, err)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == "" {
		rel = filepath.Base(path)
	}
	dst := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("backup %s: %w", path, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("backup %s: %w", path, err)
	}
	return nil
}
