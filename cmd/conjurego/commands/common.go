// Package commands provides CLI command handlers for conjurego.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/conjurego/definition"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Standard streams used by the command handlers. Tests replace them.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data in the specified format (json or yaml) to w.
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	_, err = fmt.Fprintln(w, string(bytes))
	return err
}

// parseInputFormat maps the --input-format flag to a definition format.
func parseInputFormat(s string) (definition.Format, error) {
	switch s {
	case "json", "":
		return definition.FormatJSON, nil
	case "yaml", "yml":
		return definition.FormatYAML, nil
	default:
		return 0, fmt.Errorf("invalid input format '%s'. Valid formats: json, yaml", s)
	}
}

// loadDefinition loads the IR document at path, or from stdin when path is
// StdinFilePath. It also returns the size of the source in bytes.
func loadDefinition(path, inputFormat string) (*definition.ConjureDefinition, int64, error) {
	if path != StdinFilePath {
		def, err := definition.Load(path)
		if err != nil {
			return nil, 0, err
		}
		var size int64
		if info, statErr := os.Stat(path); statErr == nil {
			size = info.Size()
		}
		return def, size, nil
	}
	format, err := parseInputFormat(inputFormat)
	if err != nil {
		return nil, 0, err
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, 0, fmt.Errorf("reading stdin: %w", err)
	}
	def, err := definition.LoadBytes(data, format)
	if err != nil {
		return nil, 0, err
	}
	return def, int64(len(data)), nil
}

// displayPath returns how a source path is shown in command output.
func displayPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}
