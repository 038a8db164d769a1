package cli

import "github.com/spf13/cobra"

// NewRootCmd assembles the examparse command tree.
func NewRootCmd(env *Env) *cobra.Command {
	root := &cobra.Command{
		Use:           "examparse",
		Short:         "Extract structured questions from scanned exam paper PDFs",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)
	root.AddCommand(
		newExtractCmd(env),
		newRepairCmd(env),
		newValidateCmd(env),
	)
	return root
}
