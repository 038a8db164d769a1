package segment

import "errors"

// ErrStructuralMismatch indicates the paper's structure contradicts
// itself, such as a passage header referencing question numbers that
// never appear. The affected unit is skipped and the batch continues.
var ErrStructuralMismatch = errors.New("structural mismatch")
