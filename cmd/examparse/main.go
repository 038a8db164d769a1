// Command examparse extracts structured questions from scanned exam
// paper PDFs and repairs archives of extracted documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Reese-max/police-exam-archive-sub000/internal/cli"
	"github.com/Reese-max/police-exam-archive-sub000/internal/textsource"
)

// Build metadata, set via -ldflags.
var (
	version = "dev"
	commit  = "none"
)

// Exit codes.
const (
	exitOK        = 0
	exitGeneral   = 1
	exitUsage     = 2
	exitSource    = 3
	exitValidate  = 4
	exitInterrupt = 130
)

func main() {
	// A missing .env is fine; flags and defaults cover everything.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := cli.DefaultEnv()
	root := cli.NewRootCmd(env)
	root.Version = fmt.Sprintf("%s (%s)", version, commit)

	err := root.ExecuteContext(ctx)
	if err == nil {
		os.Exit(exitOK)
	}
	fmt.Fprintf(os.Stderr, "examparse: %v\n", err)
	os.Exit(exitCode(ctx, err))
}

// exitCode maps sentinel error classes to stable process exit values.
func exitCode(ctx context.Context, err error) int {
	switch {
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		return exitInterrupt
	case errors.Is(err, textsource.ErrSourceUnavailable):
		return exitSource
	case errors.Is(err, cli.ErrValidationFailed):
		return exitValidate
	case errors.Is(err, cli.ErrNoInput), isUsageError(err):
		return exitUsage
	default:
		return exitGeneral
	}
}

// cobraUsagePatterns are the substrings cobra uses for argument and
// flag errors, which carry no sentinel type to test for.
var cobraUsagePatterns = []string{
	"unknown command",
	"unknown flag",
	"unknown shorthand flag",
	"invalid argument",
	"accepts 1 arg",
	"requires at least",
	"required flag",
}

func isUsageError(err error) bool {
	msg := err.Error()
	for _, pat := range cobraUsagePatterns {
		if strings.Contains(msg, pat) {
			return true
		}
	}
	return false
}
