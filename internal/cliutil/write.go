// Package cliutil provides output helpers shared by the conjurego commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to w. A failed write is reported on stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}
