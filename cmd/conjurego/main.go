package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/conjurego/cmd/conjurego/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		commands.HandleVersion(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	case "generate":
		exitOnError(commands.HandleGenerate(os.Args[2:]))
	case "validate":
		exitOnError(commands.HandleValidate(os.Args[2:]))
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err := commands.HandleMCP(ctx, os.Args[2:])
		stop()
		exitOnError(err)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`conjurego - Go bindings for Conjure definitions

Usage:
  conjurego <command> [flags] [args]

Commands:
  generate   Generate Go types and service clients from a Conjure IR file
  validate   Validate a Conjure IR file
  mcp        Serve validate, generate and inspect as MCP tools over stdio
  version    Show version information
  help       Show this help message

Run 'conjurego <command> -h' for command flags.`)
}
