// Package issues provides the issue type reported by definition validation
// and code generation.
package issues

import (
	"fmt"

	"github.com/erraggy/conjurego/internal/severity"
)

// Issue represents a single problem or note about a Conjure definition.
type Issue struct {
	// Path locates the element in the IR (e.g., "services[0].endpoints[2].args[1]")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Field is the specific field name that has the issue
	Field string
	// Value is the problematic value (optional)
	Value any
	// Context provides additional information about the issue (optional)
	Context string
	// Endpoint identifies the endpoint the issue belongs to. Nil for type-level issues.
	Endpoint *EndpointContext
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	path := i.Path
	if i.Endpoint != nil && !i.Endpoint.IsEmpty() {
		path = fmt.Sprintf("%s %s", i.Path, i.Endpoint.String())
	}
	result := fmt.Sprintf("%s %s: %s", symbol, path, i.Message)
	if i.Context != "" {
		result += fmt.Sprintf("\n    Context: %s", i.Context)
	}
	return result
}

// EndpointContext names the service endpoint an issue relates to.
type EndpointContext struct {
	// Service is the service name
	Service string
	// Endpoint is the endpoint name
	Endpoint string
	// Method is the HTTP method
	Method string
	// HTTPPath is the path template
	HTTPPath string
}

// String returns "(Service.endpoint: METHOD /path)", omitting parts that are unset.
func (c EndpointContext) String() string {
	if c.IsEmpty() {
		return ""
	}
	name := c.Endpoint
	if c.Service != "" {
		name = c.Service + "." + c.Endpoint
	}
	if c.Method == "" && c.HTTPPath == "" {
		return fmt.Sprintf("(%s)", name)
	}
	return fmt.Sprintf("(%s: %s %s)", name, c.Method, c.HTTPPath)
}

// IsEmpty returns true if the context has no meaningful information.
func (c EndpointContext) IsEmpty() bool {
	return c.Service == "" && c.Endpoint == "" && c.Method == "" && c.HTTPPath == ""
}
