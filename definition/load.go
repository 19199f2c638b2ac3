package definition

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/conjurego/conjerrors"
	"github.com/erraggy/conjurego/wire"
)

// Format is the syntax of a definition document.
type Format int

const (
	// FormatJSON is JSON, with comments and trailing commas tolerated.
	FormatJSON Format = iota
	// FormatYAML is YAML with the same structure as the JSON IR.
	FormatYAML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the format from a file extension. Anything that is not
// .yml or .yaml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and decodes the definition document at path.
func Load(path string) (*ConjureDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &conjerrors.ParseError{Path: path, Message: "cannot read file", Cause: err}
	}
	def, err := LoadBytes(data, FormatFromPath(path))
	if err != nil {
		var perr *conjerrors.ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return def, nil
}

// LoadBytes decodes a definition document. The document is decoded with the
// strict wire codec, so unknown keys anywhere are errors.
func LoadBytes(data []byte, format Format) (*ConjureDefinition, error) {
	var doc []byte
	switch format {
	case FormatJSON:
		doc = jsonc.ToJSON(data)
	case FormatYAML:
		var err error
		doc, err = yamlToJSON(data)
		if err != nil {
			return nil, err
		}
	default:
		return nil, &conjerrors.ConfigError{Option: "format", Value: format, Message: "unsupported document format"}
	}

	def := &ConjureDefinition{}
	if err := wire.Unmarshal(doc, def); err != nil {
		return nil, &conjerrors.ParseError{Message: fmt.Sprintf("invalid Conjure IR (%s)", format), Cause: err}
	}
	return def, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, &conjerrors.ParseError{Message: "invalid YAML", Cause: err}
	}
	doc, err := wire.Marshal(tree)
	if err != nil {
		return nil, &conjerrors.ParseError{Message: "YAML document cannot be represented as JSON", Cause: err}
	}
	return doc, nil
}
