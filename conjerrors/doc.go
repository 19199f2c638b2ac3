// Package conjerrors provides structured error types for conjurego.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between a definition that could
// not be read, a definition that was read but violates the Conjure model, and
// invalid generator configuration.
//
// # Error Categories
//
//   - ParseError: JSON/JSONC/YAML decoding failures of a Conjure IR document
//   - ReferenceError: a type reference that names no defined type
//   - ValidationError: definition model violations, including missing required fields
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.As
//
//	def, err := definition.Load("api.conjure.json")
//	if err != nil {
//	    var perr *conjerrors.ParseError
//	    if errors.As(err, &perr) {
//	        fmt.Println("bad document at line", perr.Line)
//	    }
//	}
//
// Wire-level errors (decode/encode) live in package wire, and the error
// categories surfaced by generated clients (transport, service, internal) live
// in package client.
package conjerrors
