// Package naming converts Conjure identifiers into Go identifiers.
//
// Conjure names are camelCase (fields, arguments, endpoints) or PascalCase
// (types, services), and enum values are UPPER_SNAKE. The functions here split
// any of those into words and rejoin them, keeping common initialisms such as
// ID and UUID upper-case the way Go code spells them.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
