package generator

import (
	"flag"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/conjurego/definition"
)

const thingFixture = "testdata/thing.conjure.json"

var updateGolden = flag.Bool("update-golden", false, "rewrite committed generated code with current output")

func strPtr(s string) *string { return &s }

// generateFixture generates the thing fixture with default options plus opts.
func generateFixture(t *testing.T, opts ...Option) *GenerateResult {
	t.Helper()
	result, err := GenerateWithOptions(append([]Option{WithFilePath(thingFixture), WithPackageName("things")}, opts...)...)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func fileContent(t *testing.T, result *GenerateResult, name string) string {
	t.Helper()
	f := result.GetFile(name)
	require.NotNil(t, f, "missing generated file %s", name)
	return string(f.Content)
}

// assertParses checks that every generated Go file is syntactically valid.
func assertParses(t *testing.T, result *GenerateResult) {
	t.Helper()
	for _, f := range result.Files {
		if !strings.HasSuffix(f.Name, ".go") {
			continue
		}
		_, err := parser.ParseFile(token.NewFileSet(), f.Name, f.Content, parser.AllErrors)
		assert.NoError(t, err, "generated %s does not parse", f.Name)
	}
}

func TestNew(t *testing.T) {
	g := New()
	assert.Equal(t, "api", g.PackageName)
	assert.True(t, g.GenerateClient)
	assert.True(t, g.IncludeInfo)
	assert.True(t, g.GenerateReadme)
	assert.False(t, g.ExhaustiveEnums)
	assert.False(t, g.StrictMode)
}

func TestApplyOptions(t *testing.T) {
	t.Run("no input", func(t *testing.T) {
		_, err := GenerateWithOptions(WithPackageName("things"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must specify an input source")
	})

	t.Run("two inputs", func(t *testing.T) {
		_, err := GenerateWithOptions(WithFilePath(thingFixture), WithDefinition(&definition.ConjureDefinition{Version: 1}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one input source")
	})

	t.Run("nil definition", func(t *testing.T) {
		_, err := GenerateWithOptions(WithDefinition(nil))
		require.Error(t, err)
	})

	tests := []struct {
		name    string
		pkg     string
		wantErr bool
	}{
		{"valid", "things", false},
		{"underscore", "thing_api", false},
		{"empty", "", true},
		{"keyword", "func", true},
		{"dash", "thing-api", true},
		{"leading digit", "1things", true},
	}
	for _, tt := range tests {
		t.Run("package "+tt.name, func(t *testing.T) {
			_, err := applyOptions(WithFilePath(thingFixture), WithPackageName(tt.pkg))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenerateFixture(t *testing.T) {
	result := generateFixture(t)

	assert.True(t, result.Success)
	assert.Equal(t, "things", result.PackageName)
	assert.Equal(t, thingFixture, result.SourcePath)
	assert.Equal(t, definition.FormatJSON, result.SourceFormat)
	assert.Positive(t, result.SourceSize)
	assert.Equal(t, 5, result.GeneratedTypes)
	assert.Equal(t, 1, result.GeneratedServices)
	assert.Equal(t, 7, result.GeneratedEndpoints)
	assert.Zero(t, result.CriticalCount)
	assert.False(t, result.HasCriticalIssues())

	var names []string
	for _, f := range result.Files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"types.go", "thing_service_client.go", "README.md"}, names)
	assert.Positive(t, result.TotalSize())
	assertParses(t, result)

	for _, f := range result.Files {
		if strings.HasSuffix(f.Name, ".go") {
			assert.True(t, strings.HasPrefix(string(f.Content), "// Code generated by conjurego "), f.Name)
			assert.Contains(t, string(f.Content), "DO NOT EDIT.")
			assert.Contains(t, string(f.Content), "package things\n")
		}
	}
}

func TestGenerateFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.conjure.yml")
	doc := `version: 1
types:
  - type: enum
    enum:
      typeName: {name: Mode, package: com.example}
      values:
        - value: FAST
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	result, err := GenerateWithOptions(WithFilePath(path), WithPackageName("tiny"))
	require.NoError(t, err)
	assert.Equal(t, definition.FormatYAML, result.SourceFormat)
	assert.Contains(t, fileContent(t, result, "types.go"), "type Mode string")
}

func TestGenerateOptions(t *testing.T) {
	t.Run("without client", func(t *testing.T) {
		result := generateFixture(t, WithClient(false))
		assert.Nil(t, result.GetFile("thing_service_client.go"))
		assert.Zero(t, result.GeneratedServices)
		assert.NotContains(t, fileContent(t, result, "README.md"), "## Services")
	})

	t.Run("without readme", func(t *testing.T) {
		result := generateFixture(t, WithReadme(false))
		assert.Nil(t, result.GetFile("README.md"))
	})

	t.Run("info issues", func(t *testing.T) {
		result := generateFixture(t)
		assert.Positive(t, result.InfoCount)
		var deprecated bool
		for _, issue := range result.Issues {
			if issue.Severity == SeverityInfo && strings.Contains(issue.Message, "deprecated") {
				deprecated = true
				require.NotNil(t, issue.Endpoint)
				assert.Equal(t, "deleteThing", issue.Endpoint.Endpoint)
				assert.Equal(t, "DELETE", issue.Endpoint.Method)
			}
		}
		assert.True(t, deprecated, "expected an info issue for the deprecated endpoint")
	})

	t.Run("info filtered", func(t *testing.T) {
		result := generateFixture(t, WithIncludeInfo(false))
		assert.Zero(t, result.InfoCount)
		for _, issue := range result.Issues {
			assert.NotEqual(t, SeverityInfo, issue.Severity)
		}
	})
}

func TestGenerateInvalidDefinition(t *testing.T) {
	def := &definition.ConjureDefinition{
		Version: 1,
		Types: []definition.TypeDefinition{
			definition.ObjectDefinition{
				TypeName: definition.TypeName{Name: "Box", Package: "com.example"},
				Fields: []definition.FieldDefinition{
					{FieldName: "missing", Type: definition.Reference("com.example", "Nowhere")},
				},
			},
		},
	}
	_, err := GenerateWithOptions(WithDefinition(def))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid definition")
}

func TestGenerateMissingFile(t *testing.T) {
	_, err := GenerateWithOptions(WithFilePath("testdata/does-not-exist.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load definition")
}

func explicitArgDefinition() *definition.ConjureDefinition {
	return &definition.ConjureDefinition{
		Version: 1,
		Services: []definition.ServiceDefinition{{
			ServiceName: definition.TypeName{Name: "EchoService", Package: "com.example"},
			Endpoints: []definition.EndpointDefinition{
				{
					EndpointName: "ping",
					HTTPMethod:   definition.MethodGet,
					HTTPPath:     "/ping",
				},
				{
					EndpointName: "raw",
					HTTPMethod:   definition.MethodGet,
					HTTPPath:     "/raw",
					Args: []definition.ArgumentDefinition{{
						ArgName:   "request",
						Type:      definition.PrimitiveAny,
						ParamType: definition.ExplicitParameterType{},
					}},
				},
			},
		}},
	}
}

func TestGenerateExplicitArgument(t *testing.T) {
	result, err := GenerateWithOptions(WithDefinition(explicitArgDefinition()), WithPackageName("echo"))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Zero(t, result.CriticalCount)
	assert.Equal(t, 1, result.InfoCount)
	assert.Equal(t, 2, result.GeneratedEndpoints)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, SeverityInfo, result.Issues[0].Severity)
	assert.Equal(t, "services[0].endpoints[1].args[0]", result.Issues[0].Path)
	require.NotNil(t, result.Issues[0].Endpoint)
	assert.Equal(t, "raw", result.Issues[0].Endpoint.Endpoint)

	src := fileContent(t, result, "echo_service_client.go")
	assert.Contains(t, src, "Ping(ctx context.Context) error")
	assert.Contains(t, src, "Raw(ctx context.Context, request any) error")

	body := methodBody(t, src, "echoServiceClient", "Raw")
	assert.NotContains(t, body, "request)")
	assert.Contains(t, body, "body := client.EmptyBody()")
	assertParses(t, result)

	quiet, err := GenerateWithOptions(WithDefinition(explicitArgDefinition()), WithIncludeInfo(false))
	require.NoError(t, err)
	assert.Empty(t, quiet.Issues)
}

func TestGenerateStrictMode(t *testing.T) {
	t.Run("critical issue fails", func(t *testing.T) {
		result, err := GenerateWithOptions(WithDefinition(aliasCycleDefinition()), WithStrictMode(true))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "strict mode")
		require.NotNil(t, result)
		assert.Equal(t, 1, result.CriticalCount)
	})

	t.Run("warning fails", func(t *testing.T) {
		def := &definition.ConjureDefinition{
			Version: 1,
			Types: []definition.TypeDefinition{
				definition.EnumDefinition{TypeName: definition.TypeName{Name: "Status", Package: "com.example.a"}},
				definition.EnumDefinition{TypeName: definition.TypeName{Name: "Status", Package: "com.example.b"}},
			},
		}
		_, err := GenerateWithOptions(WithDefinition(def), WithStrictMode(true))
		require.Error(t, err)

		result, err := GenerateWithOptions(WithDefinition(def))
		require.NoError(t, err)
		assert.True(t, result.HasWarnings())
		src := fileContent(t, result, "types.go")
		assert.Contains(t, src, "type Status string")
		assert.Contains(t, src, "type BStatus string")
	})

	t.Run("clean definition passes", func(t *testing.T) {
		def := &definition.ConjureDefinition{
			Version: 1,
			Types: []definition.TypeDefinition{
				definition.AliasDefinition{
					TypeName: definition.TypeName{Name: "Name", Package: "com.example"},
					Alias:    definition.PrimitiveString,
				},
			},
		}
		result, err := GenerateWithOptions(WithDefinition(def), WithStrictMode(true))
		require.NoError(t, err)
		assert.True(t, result.Success)
	})
}

func aliasCycleDefinition() *definition.ConjureDefinition {
	return &definition.ConjureDefinition{
		Version: 1,
		Types: []definition.TypeDefinition{
			definition.AliasDefinition{
				TypeName: definition.TypeName{Name: "Loop", Package: "com.example"},
				Alias:    definition.Reference("com.example", "Loop"),
			},
			definition.AliasDefinition{
				TypeName: definition.TypeName{Name: "Fine", Package: "com.example"},
				Alias:    definition.PrimitiveInteger,
			},
		},
	}
}

func TestGenerateAliasCycle(t *testing.T) {
	result, err := GenerateWithOptions(WithDefinition(aliasCycleDefinition()))
	require.NoError(t, err)
	assert.Equal(t, 1, result.CriticalCount)
	assert.Equal(t, 1, result.GeneratedTypes)

	src := fileContent(t, result, "types.go")
	assert.Contains(t, src, "type Fine = int")
	assert.NotContains(t, src, "type Loop")
}

func TestGenerateEmptyDefinition(t *testing.T) {
	result, err := GenerateWithOptions(WithDefinition(&definition.ConjureDefinition{Version: 1}), WithPackageName("empty"))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Nil(t, result.GetFile("types.go"))
	assert.NotNil(t, result.GetFile("README.md"))
}

func TestGenerateWithLogger(t *testing.T) {
	log := &recordingLogger{}
	_ = generateFixture(t, WithLogger(log))
	assert.Contains(t, log.messages, "generated file")
}

type recordingLogger struct {
	messages []string
}

func (r *recordingLogger) Debug(msg string, _ ...any)      { r.messages = append(r.messages, msg) }
func (r *recordingLogger) Info(msg string, _ ...any)       { r.messages = append(r.messages, msg) }
func (r *recordingLogger) Warn(msg string, _ ...any)       { r.messages = append(r.messages, msg) }
func (r *recordingLogger) Error(msg string, _ ...any)      { r.messages = append(r.messages, msg) }
func (r *recordingLogger) With(_ ...any) definition.Logger { return r }

func TestWriteFiles(t *testing.T) {
	result := generateFixture(t)
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, result.WriteFiles(dir))

	for _, f := range result.Files {
		data, err := os.ReadFile(filepath.Join(dir, f.Name))
		require.NoError(t, err)
		assert.Equal(t, f.Content, data)
	}

	bad := &GenerateResult{Files: []GeneratedFile{{Name: "../escape.go", Content: []byte("x")}}}
	err := bad.WriteFiles(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path separators")
}

func TestGeneratedFileWriteFile(t *testing.T) {
	f := GeneratedFile{Name: "types.go", Content: []byte("package x\n")}
	path := filepath.Join(t.TempDir(), "nested", "types.go")
	require.NoError(t, f.WriteFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package x\n", string(data))
}

// committedPackage holds the thing fixture generated as package thingsapi.
// Its own tests compile and exercise the generated client.
const committedPackage = "internal/thingsapi"

func TestCommittedPackageMatchesGenerator(t *testing.T) {
	result := generateFixture(t, WithPackageName("thingsapi"), WithReadme(false))
	require.True(t, result.Success)
	require.Len(t, result.Files, 2)

	for _, f := range result.Files {
		path := filepath.Join(committedPackage, f.Name)
		if *updateGolden {
			require.NoError(t, f.WriteFile(path))
			continue
		}
		committed, err := os.ReadFile(path)
		require.NoError(t, err, "run go test -update-golden to regenerate %s", path)
		formatted, err := format.Source(committed)
		require.NoError(t, err)
		assert.Equal(t, string(f.Content), string(formatted),
			"%s is stale; run go test -update-golden to regenerate", path)
	}
}
