package definition

// Index looks up named types and answers questions about types with aliases
// followed.
type Index struct {
	types map[TypeName]TypeDefinition
}

// NewIndex indexes the type definitions of def. Later definitions of a
// duplicate name replace earlier ones; Validate reports duplicates.
func NewIndex(def *ConjureDefinition) *Index {
	idx := &Index{types: make(map[TypeName]TypeDefinition)}
	if def == nil {
		return idx
	}
	for _, td := range def.Types {
		if td != nil {
			idx.types[td.Name()] = td
		}
	}
	return idx
}

// Lookup returns the definition of name.
func (x *Index) Lookup(name TypeName) (TypeDefinition, bool) {
	td, ok := x.types[name]
	return td, ok
}

// Resolve follows aliases and external fallbacks until it reaches a type that
// is not a reference to an alias. References to objects, enums and unions
// are returned as is.
func (x *Index) Resolve(t Type) Type {
	seen := make(map[TypeName]bool)
	for {
		switch v := t.(type) {
		case ReferenceType:
			name := v.TypeName()
			alias, ok := x.types[name].(AliasDefinition)
			if !ok || seen[name] {
				return t
			}
			seen[name] = true
			t = alias.Alias
		case ExternalType:
			if v.Fallback == nil {
				return t
			}
			t = v.Fallback
		default:
			return t
		}
	}
}

// IsBinary reports whether t is a binary type.
func (x *Index) IsBinary(t Type) bool {
	p, ok := x.Resolve(t).(PrimitiveType)
	return ok && p == PrimitiveBinary
}

// IsOptional reports whether t is optional and returns the item type.
func (x *Index) IsOptional(t Type) (Type, bool) {
	o, ok := x.Resolve(t).(OptionalType)
	if !ok {
		return nil, false
	}
	return o.ItemType, true
}

// IsIterable reports whether t holds zero or more values to visit one at a
// time: optional, list and set types.
func (x *Index) IsIterable(t Type) bool {
	switch x.Resolve(t).(type) {
	case OptionalType, ListType, SetType:
		return true
	default:
		return false
	}
}

// IsCollection reports whether t is a list, set or map type. Collections
// decode to an empty value when absent.
func (x *Index) IsCollection(t Type) bool {
	switch x.Resolve(t).(type) {
	case ListType, SetType, MapType:
		return true
	default:
		return false
	}
}

// ItemType returns the element type of a list or set, or the value type of a map.
func (x *Index) ItemType(t Type) (Type, bool) {
	switch v := x.Resolve(t).(type) {
	case ListType:
		return v.ItemType, true
	case SetType:
		return v.ItemType, true
	case OptionalType:
		return v.ItemType, true
	case MapType:
		return v.ValueType, true
	default:
		return nil, false
	}
}
