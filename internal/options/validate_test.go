package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireOneSource(t *testing.T) {
	tests := []struct {
		name    string
		sources []bool
		wantErr string
	}{
		{"none", []bool{false, false}, "no source"},
		{"no arguments", nil, "no source"},
		{"one", []bool{false, true}, ""},
		{"two", []bool{true, true}, "too many"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireOneSource("no source", "too many", tt.sources...)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
