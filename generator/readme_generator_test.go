package generator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReadme(t *testing.T) {
	ctx := &ReadmeContext{
		Timestamp:         time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		GeneratorVersion:  "v1.2.3",
		PackageName:       "things",
		DefinitionVersion: 1,
		Services: []ServiceSummary{{
			Name:      "ThingService",
			Interface: "ThingServiceClient",
			Endpoints: []string{"GET /things/{thingId}"},
		}},
		GeneratedFiles: []GeneratedFileSummary{
			{FileName: "types.go", Description: "Types", LineCount: 10},
		},
	}
	readme := NewReadmeGenerator().GenerateReadme(ctx)

	assert.True(t, strings.HasPrefix(readme, "# things\n"))
	assert.Contains(t, readme, "| Package | `things` |")
	assert.Contains(t, readme, "| IR Version | 1 |")
	assert.Contains(t, readme, "| Enums | open (undeclared values are kept) |")
	assert.Contains(t, readme, "| Generated | 2026-01-02T03:04:05Z |")
	assert.Contains(t, readme, "| `types.go` | Types (10 lines) |")
	assert.Contains(t, readme, "### ThingService")
	assert.Contains(t, readme, "- `GET /things/{thingId}`")
	assert.Contains(t, readme, "svc := things.NewThingServiceClient(c)")
	assert.Contains(t, readme, "client.ErrService")
	assert.True(t, strings.HasSuffix(readme, "Generated by conjurego v1.2.3\n"))
}

func TestGenerateReadmeWithoutServices(t *testing.T) {
	readme := NewReadmeGenerator().GenerateReadme(&ReadmeContext{PackageName: "empty", ExhaustiveEnums: true})

	assert.Contains(t, readme, "exhaustive (undeclared values are rejected)")
	assert.Contains(t, readme, "No files were generated.")
	assert.NotContains(t, readme, "## Services")
	assert.NotContains(t, readme, "## Usage")
	assert.NotContains(t, readme, "IR Version")
}

func TestGenerateReadmeFromFixture(t *testing.T) {
	readme := fileContent(t, generateFixture(t), "README.md")

	assert.Contains(t, readme, "| `types.go` | Types: objects, enums, unions and aliases")
	assert.Contains(t, readme, "| `thing_service_client.go` | Service client")
	assert.Contains(t, readme, "Client interface: `ThingServiceClient`")
	assert.Contains(t, readme, "- `DELETE /things/{thingId}`")
}
