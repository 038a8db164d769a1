package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Reese-max/police-exam-archive-sub000/internal/question"
)

func newValidateCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <archive-directory>",
		Short: "Check every extracted document against the completeness invariant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(env, args[0])
		},
	}
}

func runValidate(env *Env, root string) error {
	paths, err := collectDocuments(root)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("%s: %w", root, ErrNoInput)
	}

	total, violations, incomplete, fragments := 0, 0, 0, 0
	for _, path := range paths {
		doc, err := question.Load(path)
		if err != nil {
			fmt.Fprintf(env.Stderr, "%v\n", err)
			violations++
			continue
		}
		total += len(doc.Questions)
		incomplete += doc.Annotated(question.SubtypeIncomplete)
		fragments += doc.Annotated(question.SubtypePassageFragment)
		for _, v := range doc.Violations() {
			violations++
			fmt.Fprintf(env.Stdout, "%s #%s: missing options %s\n",
				path, v.Number, strings.Join(v.Missing, ","))
		}
	}

	fmt.Fprintf(env.Stdout,
		"%d document(s), %d question(s), %d violation(s), %d incomplete, %d passage fragment(s)\n",
		len(paths), total, violations, incomplete, fragments)
	if violations > 0 {
		return fmt.Errorf("%d violation(s): %w", violations, ErrValidationFailed)
	}
	return nil
}
