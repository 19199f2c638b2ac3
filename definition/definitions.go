package definition

import "github.com/erraggy/conjurego/wire"

// ConjureDefinition is a complete Conjure IR document.
type ConjureDefinition struct {
	Version    int                 `json:"version" validate:"min=1"`
	Errors     []any               `json:"errors,omitempty"`
	Types      []TypeDefinition    `json:"types,omitempty"`
	Services   []ServiceDefinition `json:"services,omitempty" validate:"dive"`
	Extensions map[string]any      `json:"extensions,omitempty"`
}

// ServiceDefinition is a named group of endpoints.
type ServiceDefinition struct {
	ServiceName TypeName             `json:"serviceName" validate:"required"`
	Endpoints   []EndpointDefinition `json:"endpoints,omitempty" validate:"dive"`
	Docs        *string              `json:"docs,omitempty"`
}

// EndpointDefinition is one HTTP operation of a service.
type EndpointDefinition struct {
	EndpointName string               `json:"endpointName" validate:"required"`
	HTTPMethod   HTTPMethod           `json:"httpMethod" validate:"required,oneof=GET POST PUT DELETE"`
	HTTPPath     string               `json:"httpPath" validate:"required,startswith=/"`
	Auth         AuthType             `json:"auth,omitempty"`
	Args         []ArgumentDefinition `json:"args,omitempty" validate:"dive"`
	Returns      Type                 `json:"returns,omitempty"`
	Docs         *string              `json:"docs,omitempty"`
	Deprecated   *string              `json:"deprecated,omitempty"`
	Markers      []Type               `json:"markers,omitempty"`
	Tags         []string             `json:"tags,omitempty"`
}

// ArgumentDefinition is one argument of an endpoint.
type ArgumentDefinition struct {
	ArgName   string        `json:"argName" validate:"required"`
	Type      Type          `json:"type" validate:"required"`
	ParamType ParameterType `json:"paramType" validate:"required"`
	Safety    *string       `json:"safety,omitempty"`
	Docs      *string       `json:"docs,omitempty"`
	Markers   []Type        `json:"markers,omitempty"`
	Tags      []string      `json:"tags,omitempty"`
}

// FieldDefinition is a field of an object or a variant of a union.
type FieldDefinition struct {
	FieldName  string  `json:"fieldName"`
	Type       Type    `json:"type"`
	Docs       *string `json:"docs,omitempty"`
	Deprecated *string `json:"deprecated,omitempty"`
	Safety     *string `json:"safety,omitempty"`
}

// EnumValueDefinition is one value of an enum.
type EnumValueDefinition struct {
	Value      string  `json:"value"`
	Docs       *string `json:"docs,omitempty"`
	Deprecated *string `json:"deprecated,omitempty"`
}

// TypeDefinition is a named type. The concrete types are ObjectDefinition,
// EnumDefinition, UnionDefinition and AliasDefinition.
type TypeDefinition interface {
	wire.Marshaler
	// Name returns the defined type's name.
	Name() TypeName
	// Documentation returns the type's docs, or "".
	Documentation() string
}

// ObjectDefinition is a record with a fixed set of fields.
type ObjectDefinition struct {
	TypeName TypeName          `json:"typeName"`
	Fields   []FieldDefinition `json:"fields,omitempty"`
	Docs     *string           `json:"docs,omitempty"`
}

// EnumDefinition is a set of string constants.
type EnumDefinition struct {
	TypeName TypeName              `json:"typeName"`
	Values   []EnumValueDefinition `json:"values,omitempty"`
	Docs     *string               `json:"docs,omitempty"`
}

// UnionDefinition is a tagged union. Each field is a variant.
type UnionDefinition struct {
	TypeName TypeName          `json:"typeName"`
	Union    []FieldDefinition `json:"union,omitempty"`
	Docs     *string           `json:"docs,omitempty"`
}

// AliasDefinition gives another name to a type.
type AliasDefinition struct {
	TypeName TypeName `json:"typeName"`
	Alias    Type     `json:"alias"`
	Docs     *string  `json:"docs,omitempty"`
}

// Name implements TypeDefinition.
func (o ObjectDefinition) Name() TypeName { return o.TypeName }

// Name implements TypeDefinition.
func (e EnumDefinition) Name() TypeName { return e.TypeName }

// Name implements TypeDefinition.
func (u UnionDefinition) Name() TypeName { return u.TypeName }

// Name implements TypeDefinition.
func (a AliasDefinition) Name() TypeName { return a.TypeName }

// Documentation implements TypeDefinition.
func (o ObjectDefinition) Documentation() string { return deref(o.Docs) }

// Documentation implements TypeDefinition.
func (e EnumDefinition) Documentation() string { return deref(e.Docs) }

// Documentation implements TypeDefinition.
func (u UnionDefinition) Documentation() string { return deref(u.Docs) }

// Documentation implements TypeDefinition.
func (a AliasDefinition) Documentation() string { return deref(a.Docs) }

type objectDefinition ObjectDefinition
type enumDefinition EnumDefinition
type unionDefinition UnionDefinition
type aliasDefinition AliasDefinition

// MarshalConjure implements wire.Marshaler.
func (o ObjectDefinition) MarshalConjure(e *wire.Encoder) error {
	return wire.EncodeUnion(e, "object", objectDefinition(o))
}

// MarshalConjure implements wire.Marshaler.
func (en EnumDefinition) MarshalConjure(e *wire.Encoder) error {
	return wire.EncodeUnion(e, "enum", enumDefinition(en))
}

// MarshalConjure implements wire.Marshaler.
func (u UnionDefinition) MarshalConjure(e *wire.Encoder) error {
	return wire.EncodeUnion(e, "union", unionDefinition(u))
}

// MarshalConjure implements wire.Marshaler.
func (a AliasDefinition) MarshalConjure(e *wire.Encoder) error {
	return wire.EncodeUnion(e, "alias", aliasDefinition(a))
}

var typeDefinitionVariants = map[string]func(wire.Decoder) (TypeDefinition, error){
	"object": variantOf[TypeDefinition, ObjectDefinition](),
	"enum":   variantOf[TypeDefinition, EnumDefinition](),
	"union":  variantOf[TypeDefinition, UnionDefinition](),
	"alias":  variantOf[TypeDefinition, AliasDefinition](),
}

func init() {
	wire.RegisterInterface(func(d wire.Decoder) (TypeDefinition, error) {
		return decodeVariant(d, "type definition", typeDefinitionVariants)
	})
}

// DocString returns the documentation of a field, or "".
func (f FieldDefinition) DocString() string { return deref(f.Docs) }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
