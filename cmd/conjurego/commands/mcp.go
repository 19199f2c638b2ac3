package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/conjurego/internal/cliutil"
	"github.com/erraggy/conjurego/internal/mcpserver"
)

// runMCP starts the MCP server. Tests replace it.
var runMCP = mcpserver.Run

// HandleMCP executes the mcp command, serving MCP over stdio until ctx is
// cancelled or the client disconnects.
func HandleMCP(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: conjurego mcp\n\n")
		cliutil.Writef(fs.Output(), "Serve the validate, generate and inspect tools over the Model Context Protocol on stdio.\n\n")
		cliutil.Writef(fs.Output(), "Configuration is read from CONJUREGO_* environment variables, for example:\n")
		cliutil.Writef(fs.Output(), "  CONJUREGO_PACKAGE_NAME      Go package name for generated code\n")
		cliutil.Writef(fs.Output(), "  CONJUREGO_EXHAUSTIVE_ENUMS  generated enums reject undeclared values\n")
		cliutil.Writef(fs.Output(), "  CONJUREGO_CACHE_ENABLED     cache loaded definitions per session\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	if err := runMCP(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
