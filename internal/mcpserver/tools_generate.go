package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/conjurego/generator"
)

type generateInput struct {
	Definition      definitionInput `json:"definition"                 jsonschema:"The Conjure IR definition to generate code from"`
	PackageName     string          `json:"package_name,omitempty"     jsonschema:"Go package name for generated code (default: api)"`
	OutputDir       string          `json:"output_dir"                 jsonschema:"Directory to write generated files to"`
	ExhaustiveEnums *bool           `json:"exhaustive_enums,omitempty" jsonschema:"Generated enums reject values they do not declare"`
	Strict          *bool           `json:"strict,omitempty"           jsonschema:"Fail when generation reports warnings or critical issues"`
	NoClient        bool            `json:"no_client,omitempty"        jsonschema:"Generate types only, without service clients"`
	Readme          bool            `json:"readme,omitempty"           jsonschema:"Also write a README.md describing the package"`
}

type generatedFileInfo struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type generateOutput struct {
	Success            bool                `json:"success"`
	OutputDir          string              `json:"output_dir"`
	PackageName        string              `json:"package_name"`
	FileCount          int                 `json:"file_count"`
	Files              []generatedFileInfo `json:"files"`
	GeneratedTypes     int                 `json:"generated_types"`
	GeneratedServices  int                 `json:"generated_services"`
	GeneratedEndpoints int                 `json:"generated_endpoints"`
	WarningCount       int                 `json:"warning_count"`
	CriticalCount      int                 `json:"critical_count"`
	Issues             []validateIssue     `json:"issues,omitempty"`
}

func handleGenerate(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	if input.OutputDir == "" {
		return errResult(fmt.Errorf("output_dir is required")), generateOutput{}, nil
	}

	def, err := input.Definition.resolve()
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	exhaustive := cfg.ExhaustiveEnums
	if input.ExhaustiveEnums != nil {
		exhaustive = *input.ExhaustiveEnums
	}
	strict := cfg.Strict
	if input.Strict != nil {
		strict = *input.Strict
	}
	pkg := input.PackageName
	if pkg == "" {
		pkg = cfg.PackageName
	}

	opts := []generator.Option{
		generator.WithDefinition(def),
		generator.WithReadme(input.Readme),
		generator.WithClient(!input.NoClient),
		generator.WithExhaustiveEnums(exhaustive),
		generator.WithStrictMode(strict),
		generator.WithIncludeInfo(false),
	}
	if pkg != "" {
		opts = append(opts, generator.WithPackageName(pkg))
	}

	result, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	if err := result.WriteFiles(input.OutputDir); err != nil {
		return errResult(fmt.Errorf("failed to write generated files: %w", err)), generateOutput{}, nil
	}

	output := generateOutput{
		Success:            result.Success,
		OutputDir:          input.OutputDir,
		PackageName:        result.PackageName,
		FileCount:          len(result.Files),
		GeneratedTypes:     result.GeneratedTypes,
		GeneratedServices:  result.GeneratedServices,
		GeneratedEndpoints: result.GeneratedEndpoints,
		WarningCount:       result.WarningCount,
		CriticalCount:      result.CriticalCount,
	}

	output.Files = makeSlice[generatedFileInfo](len(result.Files))
	for _, f := range result.Files {
		output.Files = append(output.Files, generatedFileInfo{
			Name: f.Name,
			Size: len(f.Content),
		})
	}
	output.Issues = makeSlice[validateIssue](len(result.Issues))
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, validateIssue{
			Path:     issue.Path,
			Message:  issue.Message,
			Severity: issue.Severity.String(),
		})
	}

	return nil, output, nil
}
