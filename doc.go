// Package conjurego provides tools for working with Conjure API definitions
// in Go.
//
// Conjure describes HTTP/JSON APIs as a language-neutral intermediate
// representation (IR). conjurego reads that IR, validates it, and generates
// Go types and client bindings that speak the Conjure wire format.
//
// # Overview
//
// The library consists of these packages:
//
//   - definition: the Conjure IR model, loading (JSON, JSONC and YAML) and validation
//   - wire: the Conjure JSON codec, including strict decoding and the union protocol
//   - client: the HTTP runtime used by generated clients
//   - generator: Go code generation for types and service clients
//   - conjerrors: structured error types shared across packages
//
// # Quick Start
//
// Generate bindings for an IR file:
//
//	import "github.com/erraggy/conjurego/generator"
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("api.conjure.json"),
//		generator.WithPackageName("api"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./api"); err != nil {
//		log.Fatal(err)
//	}
//
// Call a service through a generated client:
//
//	c, err := client.NewHTTPClient("https://things.example.com/api")
//	if err != nil {
//		log.Fatal(err)
//	}
//	things := api.NewThingServiceClient(c)
//	thing, err := things.GetThing(ctx, token, id)
//
// # Wire Format
//
// Values decode strictly by default: unknown object fields are rejected, the
// float specials travel as the strings "NaN", "Infinity" and "-Infinity",
// and binary values travel as base64 strings. Unions are objects holding a
// "type" discriminant and one field named after the variant.
//
// # Command-Line Tool
//
// The conjurego command wraps the library:
//
//	conjurego validate api.conjure.json
//	conjurego generate -package api -o ./api api.conjure.json
//	conjurego mcp
package conjurego
