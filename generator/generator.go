package generator

import (
	"fmt"
	"os"
	"time"

	"github.com/erraggy/conjurego/definition"
	"github.com/erraggy/conjurego/internal/issues"
	"github.com/erraggy/conjurego/internal/options"
	"github.com/erraggy/conjurego/internal/severity"
)

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about generation choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates constructs that generate but may surprise the caller
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates definition errors
	SeverityError = severity.SeverityError
	// SeverityCritical indicates constructs that cannot be generated
	SeverityCritical = severity.SeverityCritical
)

// GenerateIssue represents a single generation issue or limitation
type GenerateIssue = issues.Issue

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the file name (e.g., "types.go", "thing_service_client.go")
	Name string
	// Content is the generated file content
	Content []byte
}

// GenerateResult contains the results of generating code from a Conjure definition
type GenerateResult struct {
	// Files contains all generated files
	Files []GeneratedFile
	// SourcePath is the IR file the definition was loaded from, if any
	SourcePath string
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat definition.Format
	// PackageName is the Go package name used in generation
	PackageName string
	// Issues contains all generation issues
	Issues []GenerateIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if generation completed without critical issues
	Success bool
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// GenerateTime is the time taken to generate code
	GenerateTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// GeneratedTypes is the count of types generated
	GeneratedTypes int
	// GeneratedServices is the count of service clients generated
	GeneratedServices int
	// GeneratedEndpoints is the count of endpoint methods generated
	GeneratedEndpoints int
}

// HasCriticalIssues returns true if there are any critical issues
func (r *GenerateResult) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// GetFile returns the generated file with the given name, or nil if not found
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// TotalSize returns the combined size of all generated files in bytes.
func (r *GenerateResult) TotalSize() int64 {
	var n int64
	for _, f := range r.Files {
		n += int64(len(f.Content))
	}
	return n
}

// Generator handles code generation from Conjure definitions
type Generator struct {
	// PackageName is the Go package name for generated code
	// If empty, defaults to "api"
	PackageName string

	// GenerateClient enables service client generation.
	// Types are always generated.
	GenerateClient bool

	// ExhaustiveEnums makes generated enums reject values they do not declare.
	// By default unknown values are kept, so older clients accept newer servers.
	ExhaustiveEnums bool

	// StrictMode causes generation to fail on any issues (even warnings)
	StrictMode bool

	// IncludeInfo determines whether to include informational messages
	IncludeInfo bool

	// GenerateReadme enables README.md generation
	GenerateReadme bool

	// Logger receives debug output about generated files.
	// If nil, nothing is logged.
	Logger definition.Logger
}

// New creates a new Generator instance with default settings
func New() *Generator {
	return &Generator{
		PackageName:     "api",
		GenerateClient:  true,
		ExhaustiveEnums: false,
		StrictMode:      false,
		IncludeInfo:     true,
		GenerateReadme:  true,
	}
}

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	// Input source (exactly one must be set)
	filePath   *string
	definition *definition.ConjureDefinition

	packageName     string
	generateClient  bool
	exhaustiveEnums bool
	strictMode      bool
	includeInfo     bool
	generateReadme  bool
	logger          definition.Logger
}

// GenerateWithOptions generates code from a Conjure definition using functional options.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("things.conjure.json"),
//	    generator.WithPackageName("things"),
//	)
func GenerateWithOptions(opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	g := &Generator{
		PackageName:     cfg.packageName,
		GenerateClient:  cfg.generateClient,
		ExhaustiveEnums: cfg.exhaustiveEnums,
		StrictMode:      cfg.strictMode,
		IncludeInfo:     cfg.includeInfo,
		GenerateReadme:  cfg.generateReadme,
		Logger:          cfg.logger,
	}

	if cfg.filePath != nil {
		return g.Generate(*cfg.filePath)
	}
	if cfg.definition != nil {
		return g.GenerateDefinition(cfg.definition)
	}

	// Should never reach here due to validation in applyOptions
	return nil, fmt.Errorf("generator: no input source specified")
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		packageName:    "api",
		generateClient: true,
		includeInfo:    true,
		generateReadme: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.RequireOneSource(
		"generator: must specify an input source (use WithFilePath or WithDefinition)",
		"generator: must specify exactly one input source",
		cfg.filePath != nil, cfg.definition != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a Conjure IR file as the input source
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithDefinition specifies an already-loaded definition as the input source
func WithDefinition(def *definition.ConjureDefinition) Option {
	return func(cfg *generateConfig) error {
		if def == nil {
			return fmt.Errorf("definition cannot be nil")
		}
		cfg.definition = def
		return nil
	}
}

// WithPackageName sets the Go package name for generated code
func WithPackageName(name string) Option {
	return func(cfg *generateConfig) error {
		if name == "" {
			return fmt.Errorf("package name cannot be empty")
		}
		if !isIdentifier(name) {
			return fmt.Errorf("package name %q is not a valid Go identifier", name)
		}
		cfg.packageName = name
		return nil
	}
}

// WithClient enables or disables service client generation
func WithClient(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.generateClient = enabled
		return nil
	}
}

// WithExhaustiveEnums makes generated enums reject undeclared values
func WithExhaustiveEnums(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.exhaustiveEnums = enabled
		return nil
	}
}

// WithStrictMode enables or disables strict mode (fail on any issues)
func WithStrictMode(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}

// WithIncludeInfo enables or disables informational messages
func WithIncludeInfo(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.includeInfo = enabled
		return nil
	}
}

// WithReadme enables or disables README.md generation
func WithReadme(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.generateReadme = enabled
		return nil
	}
}

// WithLogger sets the logger for generation progress
func WithLogger(l definition.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = l
		return nil
	}
}

// Generate loads the IR file at path and generates code from it
func (g *Generator) Generate(path string) (*GenerateResult, error) {
	start := time.Now()
	def, err := definition.Load(path)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to load definition: %w", err)
	}
	loadTime := time.Since(start)

	result, err := g.GenerateDefinition(def)
	if result != nil {
		result.SourcePath = path
		result.SourceFormat = definition.FormatFromPath(path)
		result.LoadTime = loadTime
		if info, statErr := os.Stat(path); statErr == nil {
			result.SourceSize = info.Size()
		}
	}
	return result, err
}

// GenerateDefinition generates code from an already-loaded definition.
// The definition is validated first; an invalid definition is an error.
func (g *Generator) GenerateDefinition(def *definition.ConjureDefinition) (*GenerateResult, error) {
	startTime := time.Now()

	if err := definition.Validate(def); err != nil {
		return nil, fmt.Errorf("generator: invalid definition: %w", err)
	}

	result := &GenerateResult{
		Files:       make([]GeneratedFile, 0),
		PackageName: g.PackageName,
		Issues:      make([]GenerateIssue, 0),
	}
	if result.PackageName == "" {
		result.PackageName = "api"
	}

	cg := newCodeGenerator(g, def, result)
	if err := cg.generateTypes(); err != nil {
		return nil, fmt.Errorf("generator: failed to generate types: %w", err)
	}
	if g.GenerateClient {
		if err := cg.generateClients(); err != nil {
			return nil, fmt.Errorf("generator: failed to generate clients: %w", err)
		}
	}
	if g.GenerateReadme {
		cg.generateReadme()
	}

	result.GenerateTime = time.Since(startTime)
	g.updateCounts(result)
	result.Success = result.CriticalCount == 0

	if g.StrictMode && (result.CriticalCount > 0 || result.WarningCount > 0) {
		return result, fmt.Errorf("generator: generation failed in strict mode: %d critical issue(s), %d warning(s)",
			result.CriticalCount, result.WarningCount)
	}

	if !g.IncludeInfo {
		filtered := make([]GenerateIssue, 0, len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Severity != SeverityInfo {
				filtered = append(filtered, issue)
			}
		}
		result.Issues = filtered
		result.InfoCount = 0
	}

	return result, nil
}

// updateCounts updates the issue counts in the result
func (g *Generator) updateCounts(result *GenerateResult) {
	result.InfoCount = 0
	result.WarningCount = 0
	result.CriticalCount = 0

	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityInfo:
			result.InfoCount++
		case SeverityWarning:
			result.WarningCount++
		case SeverityCritical:
			result.CriticalCount++
		}
	}
}

func (g *Generator) logger() definition.Logger {
	if g.Logger == nil {
		return definition.NopLogger{}
	}
	return g.Logger
}
