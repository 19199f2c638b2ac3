package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/conjurego/internal/severity"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name        string
		issue       Issue
		contains    []string
		notContains []string
	}{
		{
			name:        "critical",
			issue:       Issue{Path: "services[0].endpoints[1].args[0]", Message: "explicit parameters are not supported", Severity: severity.SeverityCritical},
			contains:    []string{"✗", "services[0].endpoints[1].args[0]", "explicit parameters"},
			notContains: []string{"Context:"},
		},
		{
			name:     "warning",
			issue:    Issue{Path: "types[2]", Message: "unused type", Severity: severity.SeverityWarning},
			contains: []string{"⚠", "types[2]"},
		},
		{
			name:     "info with context",
			issue:    Issue{Path: "types[0]", Message: "alias emitted as type alias", Severity: severity.SeverityInfo, Context: "ThingId = uuid.UUID"},
			contains: []string{"ℹ", "\n    Context: ThingId = uuid.UUID"},
		},
		{
			name: "with endpoint",
			issue: Issue{
				Path:     "services[0].endpoints[0]",
				Message:  "deprecated",
				Severity: severity.SeverityWarning,
				Endpoint: &EndpointContext{Service: "ThingService", Endpoint: "deleteThing", Method: "DELETE", HTTPPath: "/things/{thingId}"},
			},
			contains: []string{"(ThingService.deleteThing: DELETE /things/{thingId})"},
		},
		{
			name:     "unknown severity",
			issue:    Issue{Path: "x", Message: "y", Severity: severity.Severity(42)},
			contains: []string{"? x: y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.issue.String()
			for _, want := range tt.contains {
				assert.Contains(t, s, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, s, unwanted)
			}
		})
	}
}

func TestEndpointContext(t *testing.T) {
	assert.True(t, EndpointContext{}.IsEmpty())
	assert.Equal(t, "", EndpointContext{}.String())
	assert.Equal(t, "(getThing)", EndpointContext{Endpoint: "getThing"}.String())
	assert.Equal(t, "(S.e)", EndpointContext{Service: "S", Endpoint: "e"}.String())
	assert.Equal(t, "(S.e: GET /x)", EndpointContext{Service: "S", Endpoint: "e", Method: "GET", HTTPPath: "/x"}.String())
}
