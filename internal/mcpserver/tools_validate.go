package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/conjurego/conjerrors"
	"github.com/erraggy/conjurego/definition"
	"github.com/erraggy/conjurego/generator"
)

type validateInput struct {
	Definition definitionInput `json:"definition"             jsonschema:"The Conjure IR definition to validate"`
	Strict     *bool           `json:"strict,omitempty"       jsonschema:"Report generation warnings as errors"`
	Offset     int             `json:"offset,omitempty"       jsonschema:"Skip the first N errors (for pagination)"`
	Limit      int             `json:"limit,omitempty"        jsonschema:"Maximum number of errors and issues to return (default 100)"`
}

type validateIssue struct {
	Path     string `json:"path,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

type validateOutput struct {
	Valid         bool            `json:"valid"`
	Version       int             `json:"version"`
	TypeCount     int             `json:"type_count"`
	ServiceCount  int             `json:"service_count"`
	EndpointCount int             `json:"endpoint_count"`
	ErrorCount    int             `json:"error_count"`
	IssueCount    int             `json:"issue_count"`
	Returned      int             `json:"returned"`
	Errors        []validateIssue `json:"errors,omitempty"`
	Issues        []validateIssue `json:"issues,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	strict := cfg.Strict
	if input.Strict != nil {
		strict = *input.Strict
	}

	def, err := input.Definition.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	output := validateOutput{
		Version:      def.Version,
		TypeCount:    len(def.Types),
		ServiceCount: len(def.Services),
	}
	for _, svc := range def.Services {
		output.EndpointCount += len(svc.Endpoints)
	}

	errs := flattenErrors(definition.Validate(def))
	output.ErrorCount = len(errs)
	output.Errors = makeSlice[validateIssue](len(errs))
	for _, e := range errs {
		output.Errors = append(output.Errors, describeError(e))
	}

	// Generation issues are only meaningful for a structurally valid definition.
	if len(errs) == 0 {
		result, err := generator.GenerateWithOptions(
			generator.WithDefinition(def),
			generator.WithReadme(false),
			generator.WithExhaustiveEnums(cfg.ExhaustiveEnums),
		)
		if err != nil {
			return errResult(err), validateOutput{}, nil
		}
		output.Issues = makeSlice[validateIssue](len(result.Issues))
		for _, issue := range result.Issues {
			vi := validateIssue{
				Path:     issue.Path,
				Message:  issue.Message,
				Severity: issue.Severity.String(),
			}
			if issue.Endpoint != nil {
				vi.Endpoint = issue.Endpoint.String()
			}
			output.Issues = append(output.Issues, vi)
			if issue.Severity.Blocking() || (strict && issue.Severity == generator.SeverityWarning) {
				output.ErrorCount++
			}
		}
		output.IssueCount = len(output.Issues)
	}
	output.Valid = output.ErrorCount == 0

	output.Errors = paginate(output.Errors, input.Offset, input.Limit)
	output.Issues = paginate(output.Issues, input.Offset, input.Limit)
	output.Returned = len(output.Errors) + len(output.Issues)

	return nil, output, nil
}

// describeError converts one validation failure into a tool issue, keeping
// the location of typed errors separate from their message.
func describeError(err error) validateIssue {
	var verr *conjerrors.ValidationError
	if errors.As(err, &verr) && verr.Path != "" {
		path := verr.Path
		if verr.Field != "" {
			path += "." + verr.Field
		}
		return validateIssue{Path: path, Message: err.Error(), Severity: "error"}
	}
	var rerr *conjerrors.ReferenceError
	if errors.As(err, &rerr) {
		return validateIssue{Path: rerr.Path, Message: err.Error(), Severity: "error"}
	}
	return validateIssue{Message: err.Error(), Severity: "error"}
}
