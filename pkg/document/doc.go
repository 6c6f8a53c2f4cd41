// Package document loads template documents from disk or an fs.FS and writes
// rendered documents back out.
//
// Loading and writing report failures as *PathError values whose kind is
// either ErrInputNotFound or ErrOutputWrite, so callers can branch with
// errors.Is and still print the offending path.
package document
