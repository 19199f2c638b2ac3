package commands

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/conjurego/definition"
)

const thingFixture = "../../../definition/testdata/thing.conjure.json"

const invalidYAML = `version: 1
services:
  - serviceName: {name: Bad, package: com.example}
    endpoints:
      - endpointName: get
        httpMethod: GET
        httpPath: /bad/{missing}
`

// captureOutput redirects the command streams for the duration of a test.
func captureOutput(t *testing.T, in string) (out, errOut *bytes.Buffer) {
	t.Helper()
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	origIn, origOut, origErr := stdin, stdout, stderr
	stdin, stdout, stderr = strings.NewReader(in), out, errOut
	t.Cleanup(func() {
		stdin, stdout, stderr = origIn, origOut, origErr
	})
	return out, errOut
}

func readFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(thingFixture)
	require.NoError(t, err)
	return string(data)
}

func TestValidateOutputFormat(t *testing.T) {
	for _, f := range []string{FormatText, FormatJSON, FormatYAML} {
		assert.NoError(t, ValidateOutputFormat(f))
	}
	err := ValidateOutputFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format 'xml'")
}

func TestOutputStructured(t *testing.T) {
	data := map[string]any{"valid": true, "types": 5}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, OutputStructured(&buf, data, FormatJSON))
		assert.Contains(t, buf.String(), `"valid": true`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, OutputStructured(&buf, data, FormatYAML))
		assert.Contains(t, buf.String(), "types: 5")
	})

	t.Run("text rejected", func(t *testing.T) {
		assert.Error(t, OutputStructured(io.Discard, data, FormatText))
	})
}

func TestParseInputFormat(t *testing.T) {
	tests := []struct {
		in   string
		want definition.Format
	}{
		{"", definition.FormatJSON},
		{"json", definition.FormatJSON},
		{"yaml", definition.FormatYAML},
		{"yml", definition.FormatYAML},
	}
	for _, tt := range tests {
		got, err := parseInputFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := parseInputFormat("toml")
	assert.Error(t, err)
}

func TestLoadDefinition(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		def, size, err := loadDefinition(thingFixture, "")
		require.NoError(t, err)
		assert.Len(t, def.Types, 5)
		assert.Positive(t, size)
	})

	t.Run("stdin", func(t *testing.T) {
		content := readFixture(t)
		captureOutput(t, content)
		def, size, err := loadDefinition(StdinFilePath, "json")
		require.NoError(t, err)
		assert.Len(t, def.Services, 1)
		assert.Equal(t, int64(len(content)), size)
	})

	t.Run("stdin yaml", func(t *testing.T) {
		captureOutput(t, "version: 1\n")
		def, _, err := loadDefinition(StdinFilePath, "yaml")
		require.NoError(t, err)
		assert.Equal(t, 1, def.Version)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := loadDefinition("does-not-exist.conjure.json", "")
		assert.Error(t, err)
	})

	t.Run("bad input format", func(t *testing.T) {
		captureOutput(t, "{}")
		_, _, err := loadDefinition(StdinFilePath, "xml")
		assert.Error(t, err)
	})
}

func TestDisplayPath(t *testing.T) {
	assert.Equal(t, "<stdin>", displayPath(StdinFilePath))
	assert.Equal(t, "api.json", displayPath("api.json"))
}
