package cli

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Reese-max/police-exam-archive-sub000/internal/question"
	"github.com/Reese-max/police-exam-archive-sub000/internal/repair"
)

// repairOptions holds the repair command flags.
type repairOptions struct {
	dryRun     bool
	reportPath string
}

func newRepairCmd(env *Env) *cobra.Command {
	opts := &repairOptions{}
	cmd := &cobra.Command{
		Use:   "repair <archive-directory>",
		Short: "Repair persisted questions with missing options",
		Long: "Scans every extracted JSON document under the archive for choice\n" +
			"questions violating the option completeness invariant, re-reads\n" +
			"their source PDFs, and repairs or annotates each one. Affected\n" +
			"files are backed up before any write.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepair(cmd.Context(), env, opts, args[0])
		},
	}
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report what would change without writing")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "audit report path (default <archive>/repair_report.json)")
	return cmd
}

func runRepair(ctx context.Context, env *Env, opts *repairOptions, root string) error {
	paths, err := collectDocuments(root)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("%s: %w", root, ErrNoInput)
	}

	classifier := repair.New(repair.Config{Open: env.Open})
	report := repair.NewReport()
	backupDir := question.BackupDir(root, env.Now())
	backed := 0

	for _, path := range paths {
		doc, err := question.Load(path)
		if err != nil {
			fmt.Fprintf(env.Stderr, "%v\n", err)
			continue
		}
		report.Scanned += len(doc.Questions)

		affected := false
		for i := range doc.Questions {
			if doc.Questions[i].NeedsRepair() {
				affected = true
				break
			}
		}
		if !affected {
			continue
		}

		if !opts.dryRun {
			if err := question.Backup(path, root, backupDir); err != nil {
				fmt.Fprintf(env.Stderr, "%v\n", err)
				continue
			}
			backed++
		}

		recs, changed, err := classifier.RepairDocument(ctx, doc)
		if err != nil {
			fmt.Fprintf(env.Stderr, "%s: %v\n", path, err)
			continue
		}
		for _, rec := range recs {
			if rec.Document == "" {
				rec.Document = path
			}
			report.Add(rec)
		}
		if changed && !opts.dryRun {
			if err := question.Save(path, doc); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	printRepairSummary(env, report, opts.dryRun)
	if opts.dryRun {
		return nil
	}
	if backed > 0 {
		fmt.Fprintf(env.Stdout, "backed up %d file(s) to %s\n", backed, backupDir)
	}
	reportPath := opts.reportPath
	if reportPath == "" {
		reportPath = filepath.Join(root, "repair_report.json")
	}
	return saveJSON(reportPath, report)
}

// collectDocuments lists extracted JSON documents under root,
// excluding reports, stats, and backups.
func collectDocuments(root string) ([]string, error) {
	var paths []string
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
		if !strings.EqualFold(filepath.Ext(name), ".json") {
			return nil
		}
		if name == "repair_report.json" || name == "extraction_stats.json" {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func printRepairSummary(env *Env, report *repair.Report, dryRun bool) {
	verb := "repaired"
	if dryRun {
		verb = "would repair"
	}
	fixed := report.ByOutcome[repair.OutcomeRepaired] + report.ByOutcome[repair.OutcomeFallbackRepaired]
	fmt.Fprintf(env.Stdout, "scanned %d question(s), %d affected, %s %d\n",
		report.Scanned, report.Affected, verb, fixed)
	for _, cat := range []repair.Category{
		repair.CategoryPassageFragment,
		repair.CategoryPartialMarkers,
		repair.CategoryNoMarkers,
		repair.CategoryTruncated,
	} {
		if n := report.ByCategory[cat]; n > 0 {
			fmt.Fprintf(env.Stdout, "  category %s: %d\n", cat, n)
		}
	}
	if len(report.Unresolved) > 0 {
		fmt.Fprintf(env.Stdout, "unresolved sample (%d shown):\n", len(report.Unresolved))
		for _, rec := range report.Unresolved {
			fmt.Fprintf(env.Stdout, "  %s #%s [%s] %s\n",
				rec.Document, rec.Number, rec.Category, rec.Outcome)
		}
	}
}
