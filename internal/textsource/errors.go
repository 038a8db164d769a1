package textsource

import "errors"

// ErrSourceUnavailable indicates the backing document is missing or
// unreadable. Callers leave affected records untouched and continue.
var ErrSourceUnavailable = errors.New("document source unavailable")
