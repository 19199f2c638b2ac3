package commands

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/erraggy/conjurego"
	"github.com/erraggy/conjurego/definition"
	"github.com/erraggy/conjurego/generator"
	"github.com/erraggy/conjurego/internal/cliutil"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output          string
	PackageName     string
	InputFormat     string
	ExhaustiveEnums bool
	Strict          bool
	NoWarnings      bool
	NoReadme        bool
	NoClient        bool
	Verbose         bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Output, "o", "", "output directory for generated files (required)")
	fs.StringVar(&flags.Output, "output", "", "output directory for generated files (required)")
	fs.StringVar(&flags.PackageName, "p", "api", "Go package name for generated code")
	fs.StringVar(&flags.PackageName, "package", "api", "Go package name for generated code")
	fs.StringVar(&flags.InputFormat, "input-format", "json", "format of the IR read from stdin: json or yaml")
	fs.BoolVar(&flags.ExhaustiveEnums, "exhaustive", false, "generated enums reject values they do not declare")
	fs.BoolVar(&flags.Strict, "strict", false, "fail generation on any warnings")
	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress informational messages")
	fs.BoolVar(&flags.NoReadme, "no-readme", false, "do not generate README.md")
	fs.BoolVar(&flags.NoClient, "no-client", false, "generate types only, without service clients")
	fs.BoolVar(&flags.Verbose, "v", false, "log each generated file to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log each generated file to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: conjurego generate [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Generate Go types and service clients from a Conjure IR file.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  conjurego generate -o ./things -p things things.conjure.json\n")
		cliutil.Writef(fs.Output(), "  conjurego generate -o ./api --exhaustive --strict api.conjure.yml\n")
		cliutil.Writef(fs.Output(), "  cat api.conjure.json | conjurego generate -o ./api -\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Generated clients need the github.com/erraggy/conjurego module at runtime\n")
		cliutil.Writef(fs.Output(), "  - Explicit parameters stay in method signatures but are not sent\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	fs, flags := SetupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one IR file path or '-' for stdin")
	}
	if flags.Output == "" {
		fs.Usage()
		return fmt.Errorf("output directory is required (use -o or --output)")
	}

	irPath := fs.Arg(0)
	startTime := time.Now()

	def, sourceSize, err := loadDefinition(irPath, flags.InputFormat)
	if err != nil {
		return fmt.Errorf("loading definition: %w", err)
	}
	loadTime := time.Since(startTime)

	opts := []generator.Option{
		generator.WithDefinition(def),
		generator.WithPackageName(flags.PackageName),
		generator.WithClient(!flags.NoClient),
		generator.WithExhaustiveEnums(flags.ExhaustiveEnums),
		generator.WithStrictMode(flags.Strict),
		generator.WithIncludeInfo(!flags.NoWarnings),
		generator.WithReadme(!flags.NoReadme),
	}
	if flags.Verbose {
		handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, generator.WithLogger(definition.NewSlogAdapter(slog.New(handler))))
	}

	result, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		if result != nil {
			printIssues(result)
		}
		return fmt.Errorf("generating code: %w", err)
	}
	result.SourcePath = irPath
	result.SourceSize = sourceSize
	result.LoadTime = loadTime

	if err := result.WriteFiles(flags.Output); err != nil {
		return fmt.Errorf("writing files: %w", err)
	}
	totalTime := time.Since(startTime)

	cliutil.Writef(stdout, "Conjure Go Generator\n")
	cliutil.Writef(stdout, "====================\n\n")
	cliutil.Writef(stdout, "conjurego version: %s\n", conjurego.Version())
	cliutil.Writef(stdout, "Definition: %s\n", displayPath(irPath))
	cliutil.Writef(stdout, "Source Size: %s\n", humanize.Bytes(uint64(max(result.SourceSize, 0))))
	cliutil.Writef(stdout, "Package: %s\n", result.PackageName)
	cliutil.Writef(stdout, "Output: %s\n", flags.Output)
	cliutil.Writef(stdout, "Types: %d\n", result.GeneratedTypes)
	cliutil.Writef(stdout, "Services: %d\n", result.GeneratedServices)
	cliutil.Writef(stdout, "Endpoints: %d\n", result.GeneratedEndpoints)
	cliutil.Writef(stdout, "Total Time: %v\n\n", totalTime)

	cliutil.Writef(stdout, "Generated Files (%d, %s):\n", len(result.Files), humanize.Bytes(uint64(max(result.TotalSize(), 0))))
	for _, file := range result.Files {
		cliutil.Writef(stdout, "  - %s (%s)\n", filepath.Join(flags.Output, file.Name), humanize.Bytes(uint64(len(file.Content))))
	}
	cliutil.Writef(stdout, "\n")

	printIssues(result)

	if result.Success {
		cliutil.Writef(stdout, "✓ Generation successful\n")
		return nil
	}
	cliutil.Writef(stdout, "✗ Generation completed with %d critical issue(s)\n", result.CriticalCount)
	return fmt.Errorf("generation completed with %d critical issue(s)", result.CriticalCount)
}

// printIssues writes the generation issues of result, if any.
func printIssues(result *generator.GenerateResult) {
	if len(result.Issues) == 0 {
		return
	}
	cliutil.Writef(stdout, "Issues (%d):\n", len(result.Issues))
	for _, issue := range result.Issues {
		cliutil.Writef(stdout, "  %s\n", issue.String())
	}
	cliutil.Writef(stdout, "\n")
}
