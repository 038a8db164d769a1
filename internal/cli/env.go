// Package cli implements the examparse commands.
package cli

import (
	"io"
	"os"
	"time"

	"github.com/Reese-max/police-exam-archive-sub000/internal/textsource"
)

// Env carries the command dependencies so tests can substitute
// writers, clocks, and document openers.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time
	Open   textsource.Opener
}

// EnvOption customizes an Env.
type EnvOption func(*Env)

// WithStdout sets the standard output writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) { e.Stdout = w }
}

// WithStderr sets the standard error writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) { e.Stderr = w }
}

// WithGetenv sets the environment lookup.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) { e.Getenv = fn }
}

// WithNow sets the clock.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) { e.Now = fn }
}

// WithOpen sets the document opener.
func WithOpen(open textsource.Opener) EnvOption {
	return func(e *Env) { e.Open = open }
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Env {
	return NewEnv()
}

// NewEnv builds an Env with defaults overridden by opts.
func NewEnv(opts ...EnvOption) *Env {
	e := &Env{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
		Now:    time.Now,
		Open:   textsource.Open,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
