package cli

import "errors"

// ErrValidationFailed indicates the validate command found records
// violating the completeness invariant.
var ErrValidationFailed = errors.New("archive validation failed")

// ErrNoInput indicates the given path holds nothing to process.
var ErrNoInput = errors.New("no input documents found")
