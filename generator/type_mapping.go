// This file implements Conjure type to Go type mapping for code generation.

package generator

import (
	"github.com/erraggy/conjurego/definition"
)

// primitiveGoTypes maps Conjure primitives to Go types and the import they need.
var primitiveGoTypes = map[definition.PrimitiveType]struct {
	goType     string
	importPath string
}{
	definition.PrimitiveString:      {"string", ""},
	definition.PrimitiveDateTime:    {"time.Time", "time"},
	definition.PrimitiveInteger:     {"int", ""},
	definition.PrimitiveDouble:      {"float64", ""},
	definition.PrimitiveSafeLong:    {"int64", ""},
	definition.PrimitiveBinary:      {"[]byte", ""},
	definition.PrimitiveAny:         {"any", ""},
	definition.PrimitiveBoolean:     {"bool", ""},
	definition.PrimitiveUUID:        {"uuid.UUID", importUUID},
	definition.PrimitiveRID:         {"string", ""},
	definition.PrimitiveBearerToken: {"client.BearerToken", importClient},
}

// goType returns the Go type expression for t, recording imports in f.
// Optional values become pointers, except optional<any> which is a nil-able any.
func (cg *codeGenerator) goType(f *goFile, t definition.Type) string {
	switch v := t.(type) {
	case definition.PrimitiveType:
		p, ok := primitiveGoTypes[v]
		if !ok {
			return "any"
		}
		if p.importPath != "" {
			f.use(p.importPath)
		}
		return p.goType
	case definition.OptionalType:
		inner := cg.goType(f, v.ItemType)
		if cg.isAny(v.ItemType) {
			return inner
		}
		return "*" + inner
	case definition.ListType:
		return "[]" + cg.goType(f, v.ItemType)
	case definition.SetType:
		return "[]" + cg.goType(f, v.ItemType)
	case definition.MapType:
		return "map[" + cg.goType(f, v.KeyType) + "]" + cg.goType(f, v.ValueType)
	case definition.ReferenceType:
		return cg.typeName(v.TypeName())
	case definition.ExternalType:
		if v.Fallback == nil {
			return "any"
		}
		return cg.goType(f, v.Fallback)
	default:
		return "any"
	}
}

// isAny reports whether t resolves to the any primitive, which is nil-able
// without a pointer.
func (cg *codeGenerator) isAny(t definition.Type) bool {
	p, ok := cg.idx.Resolve(t).(definition.PrimitiveType)
	return ok && p == definition.PrimitiveAny
}

// omitEmpty reports whether a field of type t is left out of encoded objects
// when empty: optionals and collections.
func (cg *codeGenerator) omitEmpty(t definition.Type) bool {
	if _, ok := cg.idx.IsOptional(t); ok {
		return true
	}
	return cg.idx.IsCollection(t)
}

// returnKind classifies how an endpoint's response is interpreted.
type returnKind int

const (
	// returnVoid discards the body
	returnVoid returnKind = iota
	// returnJSON decodes the body as the return type
	returnJSON
	// returnBinary hands the body stream to the caller
	returnBinary
	// returnOptionalBinary is returnBinary, except a 204 means absent
	returnOptionalBinary
)

func (cg *codeGenerator) classifyReturn(t definition.Type) returnKind {
	switch {
	case t == nil:
		return returnVoid
	case cg.idx.IsBinary(t):
		return returnBinary
	}
	if item, ok := cg.idx.IsOptional(t); ok && cg.idx.IsBinary(item) {
		return returnOptionalBinary
	}
	return returnJSON
}
