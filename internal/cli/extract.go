package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/Reese-max/police-exam-archive-sub000/internal/answerkey"
	"github.com/Reese-max/police-exam-archive-sub000/internal/normalize"
	"github.com/Reese-max/police-exam-archive-sub000/internal/options"
	"github.com/Reese-max/police-exam-archive-sub000/internal/question"
	"github.com/Reese-max/police-exam-archive-sub000/internal/segment"
	"github.com/Reese-max/police-exam-archive-sub000/internal/textsource"
)

// extractOptions holds the extract command flags.
type extractOptions struct {
	outDir     string
	parallel   int
	engine     engineFlag
	glyphTable string
}

const defaultParallel = 4

// glyphTableEnv names the environment fallback for --glyph-table,
// picked up from .env via the godotenv load at startup.
const glyphTableEnv = "EXAMPARSE_GLYPH_TABLE"

// engineFlag validates the text backend choice at flag-parse time.
type engineFlag string

var _ pflag.Value = (*engineFlag)(nil)

func (e *engineFlag) String() string { return string(*e) }
func (e *engineFlag) Type() string   { return "engine" }

func (e *engineFlag) Set(v string) error {
	switch v {
	case "auto", "poppler", "native":
		*e = engineFlag(v)
		return nil
	}
	return fmt.Errorf("unknown engine %q (want auto, poppler, or native)", v)
}

func newExtractCmd(env *Env) *cobra.Command {
	opts := &extractOptions{}
	cmd := &cobra.Command{
		Use:   "extract <pdf-or-directory>",
		Short: "Extract questions from one paper or a directory of papers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd.Context(), env, opts, args[0])
		},
	}
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "output directory (default: next to each PDF)")
	cmd.Flags().IntVarP(&opts.parallel, "parallel", "p", defaultParallel, "max papers processed concurrently")
	opts.engine = "auto"
	cmd.Flags().Var(&opts.engine, "engine", "text backend: auto, poppler, or native")
	cmd.Flags().StringVar(&opts.glyphTable, "glyph-table", "", "vendor glyph table JSON overriding the built-in PUA map (default $"+glyphTableEnv+")")
	return cmd
}

func runExtract(ctx context.Context, env *Env, opts *extractOptions, input string) error {
	opener := resolveOpener(env, opts.engine)
	glyphPath := opts.glyphTable
	if glyphPath == "" {
		glyphPath = env.Getenv(glyphTableEnv)
	}
	remapper, err := loadGlyphTable(glyphPath)
	if err != nil {
		return err
	}
	seg := segment.New(segment.Config{Remapper: remapper})

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("%s: %w", input, textsource.ErrSourceUnavailable)
	}
	if !info.IsDir() {
		stats := newBatchStats()
		if err := extractOne(ctx, env, opener, seg, input, opts.outDir, stats); err != nil {
			return err
		}
		printStats(env, stats)
		return nil
	}
	return runBatch(ctx, env, opener, seg, opts, input)
}

func resolveOpener(env *Env, engine engineFlag) textsource.Opener {
	switch engine {
	case "poppler":
		return textsource.OpenPoppler
	case "native":
		return textsource.OpenNative
	default:
		return env.Open
	}
}

func loadGlyphTable(path string) (*normalize.GlyphRemapper, error) {
	if path == "" {
		return normalize.NewGlyphRemapper(nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("glyph table: %w", err)
	}
	table, err := normalize.ParseGlyphTable(data)
	if err != nil {
		return nil, err
	}
	return normalize.NewGlyphRemapper(table), nil
}

// batchStats aggregates one extraction run.
type batchStats struct {
	mu         sync.Mutex
	Processed  int            `json:"processed"`
	Duplicates int            `json:"duplicates_skipped"`
	Failed     int            `json:"failed"`
	Questions  int            `json:"questions"`
	Incomplete int            `json:"incomplete"`
	Answered   int            `json:"answers_merged"`
	Mismatches int            `json:"structural_mismatches"`
	Strategies map[string]int `json:"strategies"`
}

func newBatchStats() *batchStats {
	return &batchStats{Strategies: make(map[string]int)}
}

func (s *batchStats) fold(res *segment.Result, answered int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Processed++
	s.Questions += len(res.Document.Questions)
	s.Incomplete += res.Document.Annotated(question.SubtypeIncomplete)
	s.Answered += answered
	s.Mismatches += len(res.Mismatches)
	for name, n := range res.Strategies {
		s.Strategies[name] += n
	}
}

// extractOne processes a single paper PDF into its JSON document.
func extractOne(ctx context.Context, env *Env, opener textsource.Opener, seg *segment.Segmenter, pdfPath, outDir string, stats *batchStats) error {
	src, err := opener(ctx, pdfPath)
	if err != nil {
		return err
	}
	res, err := seg.Segment(src)
	if err != nil {
		return err
	}
	res.Document.Source = pdfPath
	for _, mismatch := range res.Mismatches {
		fmt.Fprintf(env.Stderr, "%s: %v\n", pdfPath, mismatch)
	}
	for i := range res.Document.Questions {
		q := &res.Document.Questions[i]
		if q.Subtype == question.SubtypeIncomplete {
			fmt.Fprintf(env.Stderr, "%s: question %s: %v\n", pdfPath, q.Number, options.ErrAmbiguous)
		}
	}

	answered := mergeAnswerSheets(ctx, opener, &res.Document, pdfPath)

	out := jsonPathFor(pdfPath, outDir)
	if err := question.Save(out, &res.Document); err != nil {
		return err
	}
	stats.fold(res, answered)
	fmt.Fprintf(env.Stdout, "%s: %d questions -> %s\n", filepath.Base(pdfPath), len(res.Document.Questions), out)
	return nil
}

// mergeAnswerSheets looks for companion answer PDFs beside the paper
// and merges any answers they yield. Sheets that fail to open are
// ignored; answers are a bonus, not a requirement.
func mergeAnswerSheets(ctx context.Context, opener textsource.Opener, doc *question.Document, pdfPath string) int {
	dir := filepath.Dir(pdfPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	merged := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isAnswerSheet(name) {
			continue
		}
		src, err := opener(ctx, filepath.Join(dir, name))
		if err != nil {
			continue
		}
		merged += answerkey.Merge(doc, answerkey.ParseSource(src))
	}
	return merged
}

func isAnswerSheet(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf") && strings.Contains(name, "答案")
}

func jsonPathFor(pdfPath, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath)) + ".json"
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(pdfPath), base)
}

// runBatch extracts every paper PDF under root in parallel, skipping
// content-identical duplicates.
func runBatch(ctx context.Context, env *Env, opener textsource.Opener, seg *segment.Segmenter, opts *extractOptions, root string) error {
	pdfs, err := collectPapers(root)
	if err != nil {
		return err
	}
	if len(pdfs) == 0 {
		return fmt.Errorf("%s: %w", root, ErrNoInput)
	}

	stats := newBatchStats()
	seen := make(map[string]bool)
	var unique []string
	for _, path := range pdfs {
		digest, err := textsource.HashFile(path)
		if err != nil {
			fmt.Fprintf(env.Stderr, "%v\n", err)
			stats.Failed++
			continue
		}
		if seen[digest] {
			stats.Duplicates++
			continue
		}
		seen[digest] = true
		unique = append(unique, path)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, opts.parallel))
	for _, path := range unique {
		path := path
		g.Go(func() error {
			if err := extractOne(ctx, env, opener, seg, path, opts.outDir, stats); err != nil {
				// One broken paper does not abort the batch.
				fmt.Fprintf(env.Stderr, "%s: %v\n", path, err)
				stats.mu.Lock()
				stats.Failed++
				stats.mu.Unlock()
			}
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printStats(env, stats)
	statsDir := opts.outDir
	if statsDir == "" {
		statsDir = root
	}
	return saveJSON(filepath.Join(statsDir, "extraction_stats.json"), stats)
}

// collectPapers lists question paper PDFs under root, answer sheets
// excluded, in stable order.
func collectPapers(root string) ([]string, error) {
	var pdfs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "backups" {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if strings.EqualFold(filepath.Ext(name), ".pdf") && !strings.Contains(name, "答案") {
			pdfs = append(pdfs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.Strings(pdfs)
	return pdfs, nil
}

func printStats(env *Env, s *batchStats) {
	fmt.Fprintf(env.Stdout, "processed %d paper(s), %d question(s), %d incomplete, %d duplicate(s) skipped, %d failed\n",
		s.Processed, s.Questions, s.Incomplete, s.Duplicates, s.Failed)
	if s.Answered > 0 {
		fmt.Fprintf(env.Stdout, "merged %d answer(s)\n", s.Answered)
	}
	if len(s.Strategies) > 0 {
		names := make([]string, 0, len(s.Strategies))
		for name := range s.Strategies {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(env.Stdout, "  strategy %-18s %d\n", name, s.Strategies[name])
		}
	}
}
