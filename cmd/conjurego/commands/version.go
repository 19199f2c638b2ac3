package commands

import (
	"github.com/erraggy/conjurego"
	"github.com/erraggy/conjurego/internal/cliutil"
)

// HandleVersion prints build information. Arguments are ignored.
func HandleVersion(_ []string) {
	cliutil.Writef(stdout, "conjurego %s\n", conjurego.Version())
	cliutil.Writef(stdout, "%s\n", conjurego.BuildInfo())
}
