// 14 Mar 2026

// Package common holds the few constants shared by the sequence
// reading code and the command wrappers, plus a helper for writing
// test fixtures.
package common

import (
	"fmt"
	"io"
	"os"
)

// Exit codes handed to os.Exit by the commands.
const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

// GapChar is the gap in an alignment. Ortholog alignments only ever
// use a minus sign.
const GapChar byte = '-'

// WrtTemp writes a string to a temporary file and returns the
// filename. Tests use it for alignment, table and catalog fixtures.
func WrtTemp(s string) (string, error) {
	f_tmp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", fmt.Errorf("tempfile fail")
	}
	if _, err := io.WriteString(f_tmp, s); err != nil {
		return "", fmt.Errorf("writing string to temp file %v", f_tmp.Name())
	}
	name := f_tmp.Name()
	f_tmp.Close()
	return name, nil
}
