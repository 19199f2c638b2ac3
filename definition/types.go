package definition

import (
	"fmt"

	"github.com/erraggy/conjurego/wire"
)

// TypeName is the fully qualified name of a named type.
type TypeName struct {
	Name    string `json:"name"`
	Package string `json:"package"`
}

// String returns "package.Name", or just the name when there is no package.
func (n TypeName) String() string {
	if n.Package == "" {
		return n.Name
	}
	return n.Package + "." + n.Name
}

// Type is a reference to a Conjure type. The concrete types are
// PrimitiveType, OptionalType, ListType, SetType, MapType, ReferenceType and
// ExternalType.
type Type interface {
	wire.Marshaler
	isType()
}

// PrimitiveType is a built-in scalar type.
type PrimitiveType string

// Primitive types.
const (
	PrimitiveString      PrimitiveType = "STRING"
	PrimitiveDateTime    PrimitiveType = "DATETIME"
	PrimitiveInteger     PrimitiveType = "INTEGER"
	PrimitiveDouble      PrimitiveType = "DOUBLE"
	PrimitiveSafeLong    PrimitiveType = "SAFELONG"
	PrimitiveBinary      PrimitiveType = "BINARY"
	PrimitiveAny         PrimitiveType = "ANY"
	PrimitiveBoolean     PrimitiveType = "BOOLEAN"
	PrimitiveUUID        PrimitiveType = "UUID"
	PrimitiveRID         PrimitiveType = "RID"
	PrimitiveBearerToken PrimitiveType = "BEARERTOKEN"
)

var primitiveValues = []string{
	string(PrimitiveString), string(PrimitiveDateTime), string(PrimitiveInteger),
	string(PrimitiveDouble), string(PrimitiveSafeLong), string(PrimitiveBinary),
	string(PrimitiveAny), string(PrimitiveBoolean), string(PrimitiveUUID),
	string(PrimitiveRID), string(PrimitiveBearerToken),
}

// OptionalType is a value that may be absent.
type OptionalType struct {
	ItemType Type `json:"itemType"`
}

// ListType is an ordered collection.
type ListType struct {
	ItemType Type `json:"itemType"`
}

// SetType is an unordered collection of distinct values.
type SetType struct {
	ItemType Type `json:"itemType"`
}

// MapType is a keyed collection.
type MapType struct {
	KeyType   Type `json:"keyType"`
	ValueType Type `json:"valueType"`
}

// ReferenceType names a type defined in the same definition.
type ReferenceType TypeName

// TypeName returns the referenced name.
func (r ReferenceType) TypeName() TypeName { return TypeName(r) }

// ExternalType names a type defined outside the definition. Fallback is used
// by generators that cannot see the external type.
type ExternalType struct {
	ExternalReference TypeName `json:"externalReference"`
	Fallback          Type     `json:"fallback"`
}

// Reference returns a ReferenceType for package.name.
func Reference(pkg, name string) ReferenceType {
	return ReferenceType{Name: name, Package: pkg}
}

// Optional returns an OptionalType of item.
func Optional(item Type) OptionalType { return OptionalType{ItemType: item} }

// List returns a ListType of item.
func List(item Type) ListType { return ListType{ItemType: item} }

// Set returns a SetType of item.
func Set(item Type) SetType { return SetType{ItemType: item} }

// Map returns a MapType from key to value.
func Map(key, value Type) MapType { return MapType{KeyType: key, ValueType: value} }

func (PrimitiveType) isType() {}
func (OptionalType) isType()  {}
func (ListType) isType()      {}
func (SetType) isType()       {}
func (MapType) isType()       {}
func (ReferenceType) isType() {}
func (ExternalType) isType()  {}

// MarshalConjure implements wire.Marshaler.
func (p PrimitiveType) MarshalConjure(e *wire.Encoder) error {
	return wire.EncodeUnion(e, "primitive", string(p))
}

// UnmarshalConjure implements wire.Unmarshaler.
func (p *PrimitiveType) UnmarshalConjure(d wire.Decoder) error {
	s, err := wire.DecodeEnum(d, primitiveValues, true)
	if err != nil {
		return err
	}
	*p = PrimitiveType(s)
	return nil
}

// MarshalConjure implements wire.Marshaler.
func (t OptionalType) MarshalConjure(e *wire.Encoder) error {
	return wire.EncodeUnion(e, "optional", struct {
		ItemType Type `json:"itemType"`
	}(t))
}

// MarshalConjure implements wire.Marshaler.
func (t ListType) MarshalConjure(e *wire.Encoder) error {
	return wire.EncodeUnion(e, "list", struct {
		ItemType Type `json:"itemType"`
	}(t))
}

// MarshalConjure implements wire.Marshaler.
func (t SetType) MarshalConjure(e *wire.Encoder) error {
	return wire.EncodeUnion(e, "set", struct {
		ItemType Type `json:"itemType"`
	}(t))
}

// MarshalConjure implements wire.Marshaler.
func (t MapType) MarshalConjure(e *wire.Encoder) error {
	return wire.EncodeUnion(e, "map", struct {
		KeyType   Type `json:"keyType"`
		ValueType Type `json:"valueType"`
	}(t))
}

// MarshalConjure implements wire.Marshaler.
func (r ReferenceType) MarshalConjure(e *wire.Encoder) error {
	return wire.EncodeUnion(e, "reference", TypeName(r))
}

// MarshalConjure implements wire.Marshaler.
func (t ExternalType) MarshalConjure(e *wire.Encoder) error {
	return wire.EncodeUnion(e, "external", struct {
		ExternalReference TypeName `json:"externalReference"`
		Fallback          Type     `json:"fallback"`
	}(t))
}

var typeVariants = map[string]func(wire.Decoder) (Type, error){
	"primitive": variantOf[Type, PrimitiveType](),
	"optional":  variantOf[Type, OptionalType](),
	"list":      variantOf[Type, ListType](),
	"set":       variantOf[Type, SetType](),
	"map":       variantOf[Type, MapType](),
	"reference": variantOf[Type, ReferenceType](),
	"external":  variantOf[Type, ExternalType](),
}

func init() {
	wire.RegisterInterface(func(d wire.Decoder) (Type, error) {
		return decodeVariant(d, "type", typeVariants)
	})
}

// variantTarget collects the payload of an IR union whose variants are
// distinct Go types.
type variantTarget[T any] struct {
	variants map[string]func(wire.Decoder) (T, error)
	value    T
	unknown  string
}

func (v *variantTarget[T]) DecodeVariant(name string, d wire.Decoder) (bool, error) {
	decode, ok := v.variants[name]
	if !ok {
		return false, nil
	}
	value, err := decode(d)
	if err != nil {
		return true, err
	}
	v.value = value
	return true, nil
}

func (v *variantTarget[T]) SetUnknown(name string, _ any) {
	v.unknown = name
}

// decodeVariant decodes one IR union. IR unions are closed: an unrecognised
// variant is an error.
func decodeVariant[T any](d wire.Decoder, union string, variants map[string]func(wire.Decoder) (T, error)) (T, error) {
	var zero T
	target := &variantTarget[T]{variants: variants}
	if err := wire.DecodeUnion(d, target); err != nil {
		return zero, err
	}
	if target.unknown != "" {
		return zero, &wire.DecodeError{
			Kind:    wire.KindUnknownVariant,
			Token:   target.unknown,
			Message: fmt.Sprintf("unknown %s variant `%s`", union, target.unknown),
		}
	}
	return target.value, nil
}

// variantOf returns a decoder for variant V of union T.
func variantOf[T, V any]() func(wire.Decoder) (T, error) {
	return func(d wire.Decoder) (T, error) {
		var v V
		if err := wire.DecodeValue(d, &v); err != nil {
			var zero T
			return zero, err
		}
		return any(v).(T), nil
	}
}
