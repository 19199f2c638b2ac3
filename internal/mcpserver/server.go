// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes conjurego capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/conjurego"
)

const serverInstructions = `conjurego MCP server. Validates and inspects Conjure IR definitions and generates Go bindings from them.

Configuration: All defaults are configurable via CONJUREGO_* environment variables set in your MCP client config.

Key settings:
- CONJUREGO_PACKAGE_NAME (default: api): Go package name for generated code
- CONJUREGO_EXHAUSTIVE_ENUMS (default: false): generated enums reject undeclared values
- CONJUREGO_STRICT (default: false): treat generation warnings as failures
- CONJUREGO_LIST_LIMIT (default: 100): default result limit for inspect
- CONJUREGO_CACHE_ENABLED (default: true): disable definition caching entirely
- CONJUREGO_CACHE_FILE_TTL (default: 15m): cache TTL for definition files

Caching: Loaded definitions are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		defCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "conjurego", Version: conjurego.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate a Conjure IR definition. Checks required fields, endpoint argument rules, path placeholders, duplicate names and type references, then reports code generation issues such as alias cycles, type name clashes or explicit parameters. Use offset/limit to paginate through errors.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate Go bindings from a Conjure IR definition: types.go with objects, enums, unions and aliases, one client per service, and a README. Requires output_dir. Returns a manifest of generated files. Package name, enum exhaustiveness and strict mode defaults are configurable via CONJUREGO_PACKAGE_NAME, CONJUREGO_EXHAUSTIVE_ENUMS and CONJUREGO_STRICT.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect",
		Description: "List the types and endpoints of a Conjure IR definition. Filter types by kind (object, enum, union, alias) and endpoints by service or HTTP method; name supports * and ? globs. Use group_by (kind, package, service or method) to get distribution counts instead of individual items.",
	}, handleInspect)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// pathPattern matches absolute filesystem paths in error messages.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// flattenErrors expands errors.Join trees into their leaves.
func flattenErrors(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok { //nolint:errorlint // only the top-level join is expanded
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flattenErrors(e)...)
		}
		return out
	}
	return []error{err}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		counts[keyFn(item)]++
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is one of the allowed values.
func validateGroupBy(groupBy string, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
// Call this once before a filter loop so matchGlob never meets an invalid
// pattern.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}

// matchGlob reports whether name matches pattern. Patterns without glob
// characters match case-insensitively as a whole name.
func matchGlob(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return strings.EqualFold(pattern, name)
	}
	ok, _ := filepath.Match(pattern, name)
	return ok
}
