// Package generator provides Go code generation from Conjure definitions.
//
// The generator turns the types and services of a Conjure IR document into Go
// source: data types that use the wire package for the Conjure JSON format, and
// one client per service that sends requests through the client package.
//
// # Quick Start
//
// Generate bindings using functional options:
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("things.conjure.json"),
//		generator.WithPackageName("things"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./things"); err != nil {
//		log.Fatal(err)
//	}
//
// Or use a reusable Generator instance:
//
//	g := generator.New()
//	g.PackageName = "things"
//	g.ExhaustiveEnums = true
//	result, _ := g.Generate("things.conjure.json")
//
// # Type Mapping
//
// Conjure types are mapped to Go types as follows:
//   - STRING, RID → string
//   - INTEGER → int, SAFELONG → int64, DOUBLE → float64, BOOLEAN → bool
//   - DATETIME → time.Time, UUID → uuid.UUID, BEARERTOKEN → client.BearerToken
//   - BINARY → []byte inside values; io.Reader as a request body and
//     io.ReadCloser as a response
//   - ANY → any
//   - optional<T> → *T, list<T> and set<T> → []T, map<K, V> → map[K]V
//
// Aliases become Go type aliases, so an alias keeps the methods and wire
// behaviour of the type it names. Enums are string types with constants and
// are open unless ExhaustiveEnums is set. Unions are structs holding one
// variant, with a constructor per variant and an AcceptFuncs dispatcher.
//
// # Generated Clients
//
// Every endpoint becomes a method taking a context, the auth token when the
// endpoint declares auth, and the endpoint's arguments in order. The method
// sends path, query and header arguments as plain text, repeating iterable
// query and header arguments once per element, and interprets the response
// by return kind: nothing, a JSON value, a binary stream, or an optional
// binary stream. A 204 response yields an empty value for optional, list and
// set returns and no stream for optional binary returns.
//
// # Generated Files
//
// The generator produces the following files:
//   - types.go: objects, enums, unions and aliases
//   - <service>_client.go: one per service (when GenerateClient is true)
//   - README.md: a summary of the package (when GenerateReadme is true)
//
// See the exported GenerateResult and GenerateIssue types for complete details.
package generator
