package cliutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWritef(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []any
		want   string
	}{
		{"formatted", "Hello, %s!", []any{"World"}, "Hello, World!"},
		{"no args", "Simple message", nil, "Simple message"},
		{"mixed args", "%s: %d types, %v valid", []any{"Definition", 5, true}, "Definition: 5 types, true valid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Writef(&buf, tt.format, tt.args...)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("simulated write error")
}

func TestWritefWriteError(t *testing.T) {
	assert.NotPanics(t, func() { Writef(failingWriter{}, "This will fail") })
}
