package generator

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/erraggy/conjurego"
	"github.com/erraggy/conjurego/definition"
)

// ReadmeGenerator generates README.md files for generated code.
type ReadmeGenerator struct{}

// NewReadmeGenerator creates a new ReadmeGenerator.
func NewReadmeGenerator() *ReadmeGenerator {
	return &ReadmeGenerator{}
}

// ReadmeContext contains all information needed to generate a README.
type ReadmeContext struct {
	// Timestamp is when the code was generated.
	Timestamp time.Time

	// GeneratorVersion is the version of conjurego used.
	GeneratorVersion string

	// PackageName is the Go package name.
	PackageName string

	// DefinitionVersion is the IR version of the source definition.
	DefinitionVersion int

	// ExhaustiveEnums reports whether enums reject undeclared values.
	ExhaustiveEnums bool

	// Services summarises each generated client.
	Services []ServiceSummary

	// GeneratedFiles lists the generated Go files.
	GeneratedFiles []GeneratedFileSummary
}

// ServiceSummary describes one generated service client.
type ServiceSummary struct {
	// Name is the Conjure service name.
	Name string
	// Interface is the generated client interface.
	Interface string
	// Endpoints lists "METHOD /path" for each endpoint.
	Endpoints []string
}

// GeneratedFileSummary describes one generated file.
type GeneratedFileSummary struct {
	// FileName is the file name.
	FileName string
	// Description says what the file holds.
	Description string
	// LineCount is the number of lines in the file.
	LineCount int
}

// GenerateReadme generates a README.md file.
func (g *ReadmeGenerator) GenerateReadme(ctx *ReadmeContext) string {
	var buf bytes.Buffer
	buf.WriteString(g.generateHeader(ctx))
	buf.WriteString(g.generateOverview(ctx))
	buf.WriteString(g.generateFilesSection(ctx))
	if len(ctx.Services) > 0 {
		buf.WriteString(g.generateServicesSection(ctx))
		buf.WriteString(g.generateUsageSection(ctx))
	}
	buf.WriteString(g.generateFooter(ctx))
	return buf.String()
}

func (g *ReadmeGenerator) generateHeader(ctx *ReadmeContext) string {
	return fmt.Sprintf("# %s\n\nGo bindings generated from a Conjure definition.\n\n", ctx.PackageName)
}

func (g *ReadmeGenerator) generateOverview(ctx *ReadmeContext) string {
	var buf bytes.Buffer
	buf.WriteString("## Overview\n\n")
	buf.WriteString("| Property | Value |\n")
	buf.WriteString("|----------|-------|\n")
	fmt.Fprintf(&buf, "| Package | `%s` |\n", ctx.PackageName)
	if ctx.DefinitionVersion > 0 {
		fmt.Fprintf(&buf, "| IR Version | %d |\n", ctx.DefinitionVersion)
	}
	enums := "open (undeclared values are kept)"
	if ctx.ExhaustiveEnums {
		enums = "exhaustive (undeclared values are rejected)"
	}
	fmt.Fprintf(&buf, "| Enums | %s |\n", enums)
	if ctx.GeneratorVersion != "" {
		fmt.Fprintf(&buf, "| Generator Version | %s |\n", ctx.GeneratorVersion)
	}
	fmt.Fprintf(&buf, "| Generated | %s |\n\n", ctx.Timestamp.Format(time.RFC3339))
	return buf.String()
}

func (g *ReadmeGenerator) generateFilesSection(ctx *ReadmeContext) string {
	var buf bytes.Buffer
	buf.WriteString("## Generated Files\n\n")
	if len(ctx.GeneratedFiles) == 0 {
		buf.WriteString("No files were generated.\n\n")
		return buf.String()
	}
	buf.WriteString("| File | Description |\n")
	buf.WriteString("|------|-------------|\n")
	for _, f := range ctx.GeneratedFiles {
		desc := f.Description
		if f.LineCount > 0 {
			desc = fmt.Sprintf("%s (%d lines)", desc, f.LineCount)
		}
		fmt.Fprintf(&buf, "| `%s` | %s |\n", f.FileName, desc)
	}
	buf.WriteString("\n")
	return buf.String()
}

func (g *ReadmeGenerator) generateServicesSection(ctx *ReadmeContext) string {
	var buf bytes.Buffer
	buf.WriteString("## Services\n\n")
	for _, svc := range ctx.Services {
		fmt.Fprintf(&buf, "### %s\n\n", svc.Name)
		fmt.Fprintf(&buf, "Client interface: `%s`\n\n", svc.Interface)
		for _, ep := range svc.Endpoints {
			fmt.Fprintf(&buf, "- `%s`\n", ep)
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

func (g *ReadmeGenerator) generateUsageSection(ctx *ReadmeContext) string {
	svc := ctx.Services[0]
	var buf bytes.Buffer
	buf.WriteString("## Usage\n\n")
	buf.WriteString("```go\n")
	buf.WriteString("c, err := client.NewHTTPClient(\"https://api.example.com\")\n")
	buf.WriteString("if err != nil {\n\tlog.Fatal(err)\n}\n")
	fmt.Fprintf(&buf, "svc := %s.New%s(c)\n", ctx.PackageName, svc.Interface)
	buf.WriteString("```\n\n")
	buf.WriteString("Errors from client methods can be classified with `errors.Is`:\n\n")
	buf.WriteString("- `client.ErrTransport`: the request was not sent or no response arrived\n")
	buf.WriteString("- `client.ErrService`: the server answered with a non-2xx status (see `*client.ServiceError`)\n")
	buf.WriteString("- `client.ErrInternal`: a body could not be encoded or decoded\n\n")
	return buf.String()
}

func (g *ReadmeGenerator) generateFooter(ctx *ReadmeContext) string {
	var buf bytes.Buffer
	buf.WriteString("> **Note:** Do not edit generated files directly. Change the Conjure definition and regenerate.\n\n")
	buf.WriteString("---\n\n")
	buf.WriteString("Generated by conjurego")
	if ctx.GeneratorVersion != "" {
		fmt.Fprintf(&buf, " %s", ctx.GeneratorVersion)
	}
	buf.WriteString("\n")
	return buf.String()
}

// generateReadme adds README.md describing the files generated so far.
func (cg *codeGenerator) generateReadme() {
	ctx := &ReadmeContext{
		Timestamp:         time.Now().UTC(),
		GeneratorVersion:  conjurego.Version(),
		PackageName:       cg.result.PackageName,
		DefinitionVersion: cg.def.Version,
		ExhaustiveEnums:   cg.g.ExhaustiveEnums,
	}
	for _, f := range cg.result.Files {
		desc := "Types: objects, enums, unions and aliases"
		if strings.HasSuffix(f.Name, "_client.go") {
			desc = "Service client"
		}
		ctx.GeneratedFiles = append(ctx.GeneratedFiles, GeneratedFileSummary{
			FileName:    f.Name,
			Description: desc,
			LineCount:   bytes.Count(f.Content, []byte("\n")),
		})
	}
	if cg.g.GenerateClient {
		for i, svc := range cg.def.Services {
			ctx.Services = append(ctx.Services, summarizeService(svc, cg.serviceNames[i]))
		}
	}
	cg.addFile("README.md", []byte(NewReadmeGenerator().GenerateReadme(ctx)))
}

func summarizeService(svc definition.ServiceDefinition, iface string) ServiceSummary {
	s := ServiceSummary{
		Name:      svc.ServiceName.Name,
		Interface: iface,
	}
	for _, ep := range svc.Endpoints {
		s.Endpoints = append(s.Endpoints, fmt.Sprintf("%s %s", ep.HTTPMethod, ep.HTTPPath))
	}
	return s
}
