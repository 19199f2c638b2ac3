package commands

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/erraggy/conjurego"
	"github.com/erraggy/conjurego/definition"
	"github.com/erraggy/conjurego/generator"
	"github.com/erraggy/conjurego/internal/cliutil"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Strict      bool
	NoWarnings  bool
	Quiet       bool
	Format      string
	InputFormat string
}

// ValidateReport is the structured output of the validate command.
type ValidateReport struct {
	Valid        bool     `json:"valid"                 yaml:"valid"`
	Version      int      `json:"version"               yaml:"version"`
	SourceSize   int64    `json:"sourceSize"            yaml:"sourceSize"`
	Types        int      `json:"types"                 yaml:"types"`
	Services     int      `json:"services"              yaml:"services"`
	Endpoints    int      `json:"endpoints"             yaml:"endpoints"`
	Errors       []string `json:"errors,omitempty"      yaml:"errors,omitempty"`
	Issues       []string `json:"issues,omitempty"      yaml:"issues,omitempty"`
	ErrorCount   int      `json:"errorCount"            yaml:"errorCount"`
	WarningCount int      `json:"warningCount"          yaml:"warningCount"`
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.BoolVar(&flags.Strict, "strict", false, "treat generation warnings as errors")
	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress warning and info messages (only show errors)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the validation result")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the validation result")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.InputFormat, "input-format", "json", "format of the IR read from stdin: json or yaml")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: conjurego validate [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Validate a Conjure IR file and report code generation issues.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  conjurego validate things.conjure.json\n")
		cliutil.Writef(fs.Output(), "  conjurego validate --format json things.conjure.json | jq '.valid'\n")
		cliutil.Writef(fs.Output(), "  cat api.conjure.yml | conjurego validate --input-format yaml -\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Validation successful\n")
		cliutil.Writef(fs.Output(), "  1    Validation failed with errors\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one IR file path or '-' for stdin")
	}

	// Fail fast on a bad format before loading anything.
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	irPath := fs.Arg(0)
	startTime := time.Now()
	def, sourceSize, err := loadDefinition(irPath, flags.InputFormat)
	if err != nil {
		return fmt.Errorf("loading definition: %w", err)
	}

	report, err := buildReport(def, flags)
	if err != nil {
		return err
	}
	report.SourceSize = sourceSize
	totalTime := time.Since(startTime)

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(stdout, report, flags.Format); err != nil {
			return err
		}
	} else {
		if !flags.Quiet {
			cliutil.Writef(stderr, "Conjure IR Validator\n")
			cliutil.Writef(stderr, "====================\n\n")
			cliutil.Writef(stderr, "conjurego version: %s\n", conjurego.Version())
			cliutil.Writef(stderr, "Definition: %s\n", displayPath(irPath))
			cliutil.Writef(stderr, "IR Version: %d\n", report.Version)
			cliutil.Writef(stderr, "Source Size: %s\n", humanize.Bytes(uint64(max(report.SourceSize, 0))))
			cliutil.Writef(stderr, "Types: %d\n", report.Types)
			cliutil.Writef(stderr, "Services: %d\n", report.Services)
			cliutil.Writef(stderr, "Endpoints: %d\n", report.Endpoints)
			cliutil.Writef(stderr, "Total Time: %v\n\n", totalTime)

			if len(report.Errors) > 0 {
				cliutil.Writef(stderr, "Errors (%d):\n", len(report.Errors))
				for _, e := range report.Errors {
					cliutil.Writef(stderr, "  ✗ %s\n", e)
				}
				cliutil.Writef(stderr, "\n")
			}
			if len(report.Issues) > 0 {
				cliutil.Writef(stderr, "Issues (%d):\n", len(report.Issues))
				for _, issue := range report.Issues {
					cliutil.Writef(stderr, "  %s\n", issue)
				}
				cliutil.Writef(stderr, "\n")
			}
		}

		if report.Valid {
			cliutil.Writef(stdout, "✓ Validation passed\n")
		} else {
			cliutil.Writef(stdout, "✗ Validation failed: %d error(s), %d warning(s)\n", report.ErrorCount, report.WarningCount)
		}
	}

	if !report.Valid {
		return fmt.Errorf("validation failed with %d error(s)", report.ErrorCount)
	}
	return nil
}

// buildReport validates def and, when it is structurally sound, runs a
// generation pass to collect the issues code generation would report.
func buildReport(def *definition.ConjureDefinition, flags *ValidateFlags) (*ValidateReport, error) {
	report := &ValidateReport{
		Version:  def.Version,
		Types:    len(def.Types),
		Services: len(def.Services),
	}
	for _, svc := range def.Services {
		report.Endpoints += len(svc.Endpoints)
	}

	if err := definition.Validate(def); err != nil {
		for _, e := range unjoin(err) {
			report.Errors = append(report.Errors, e.Error())
		}
		report.ErrorCount = len(report.Errors)
		return report, nil
	}

	result, err := generator.GenerateWithOptions(
		generator.WithDefinition(def),
		generator.WithReadme(false),
		generator.WithIncludeInfo(!flags.NoWarnings),
	)
	if err != nil {
		return nil, fmt.Errorf("checking code generation: %w", err)
	}
	for _, issue := range result.Issues {
		blocking := issue.Severity.Blocking() || (flags.Strict && issue.Severity == generator.SeverityWarning)
		switch {
		case blocking:
			report.ErrorCount++
		case issue.Severity == generator.SeverityWarning:
			report.WarningCount++
		}
		if flags.NoWarnings && !blocking {
			continue
		}
		report.Issues = append(report.Issues, issue.String())
	}
	report.Valid = report.ErrorCount == 0
	return report, nil
}

// unjoin expands an errors.Join result into its members.
func unjoin(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok { //nolint:errorlint // only the top-level join is expanded
		return joined.Unwrap()
	}
	return []error{err}
}
