package definition

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/conjurego/conjerrors"
	"github.com/erraggy/conjurego/wire"
)

const thingFixture = "testdata/thing.conjure.json"

func loadFixture(t *testing.T) *ConjureDefinition {
	t.Helper()
	def, err := Load(thingFixture)
	require.NoError(t, err)
	return def
}

func findEndpoint(t *testing.T, def *ConjureDefinition, name string) EndpointDefinition {
	t.Helper()
	for _, svc := range def.Services {
		for _, ep := range svc.Endpoints {
			if ep.EndpointName == name {
				return ep
			}
		}
	}
	t.Fatalf("endpoint %s not found", name)
	return EndpointDefinition{}
}

func TestLoadJSON(t *testing.T) {
	def := loadFixture(t)

	assert.Equal(t, 1, def.Version)
	assert.Len(t, def.Types, 5)
	require.Len(t, def.Services, 1)
	assert.Equal(t, "com.example.things.ThingService", def.Services[0].ServiceName.String())
	assert.Len(t, def.Services[0].Endpoints, 7)

	getThing := findEndpoint(t, def, "getThing")
	assert.Equal(t, MethodGet, getThing.HTTPMethod)
	assert.Equal(t, HeaderAuthType{}, getThing.Auth)
	assert.Equal(t, Reference("com.example.things", "Thing"), getThing.Returns)

	createThing := findEndpoint(t, def, "createThing")
	assert.Equal(t, CookieAuthType{CookieName: "SESSION"}, createThing.Auth)
	require.Len(t, createThing.Args, 1)
	assert.Equal(t, BodyParameterType{}, createThing.Args[0].ParamType)
	require.NotNil(t, createThing.Docs)
	assert.Equal(t, "Creates a thing.", *createThing.Docs)

	listThings := findEndpoint(t, def, "listThings")
	require.Len(t, listThings.Args, 3)
	assert.Equal(t, QueryParameterType{ParamID: "tag"}, listThings.Args[1].ParamType)
	assert.Equal(t, HeaderParameterType{ParamID: "X-Trace-Id"}, listThings.Args[2].ParamType)
	assert.Equal(t, List(Reference("com.example.things", "Thing")), listThings.Returns)

	uploadData := findEndpoint(t, def, "uploadData")
	assert.Nil(t, uploadData.Returns)

	thing, ok := NewIndex(def).Lookup(TypeName{Name: "Thing", Package: "com.example.things"})
	require.True(t, ok)
	obj, ok := thing.(ObjectDefinition)
	require.True(t, ok)
	assert.Len(t, obj.Fields, 5)
	assert.Equal(t, "A thing.", obj.Documentation())
	assert.Equal(t, Optional(Reference("com.example.things", "Color")), obj.Fields[2].Type)

	require.NoError(t, Validate(def))
}

const yamlDefinition = `
version: 1
types:
  - type: enum
    enum:
      typeName: {name: Color, package: com.example}
      values:
        - value: RED
        - value: BLUE
services:
  - serviceName: {name: ColorService, package: com.example}
    endpoints:
      - endpointName: getColors
        httpMethod: GET
        httpPath: /colors/{owner}
        args:
          - argName: owner
            type: {type: primitive, primitive: STRING}
            paramType: {type: path, path: {}}
        returns:
          type: set
          set:
            itemType: {type: reference, reference: {name: Color, package: com.example}}
`

const jsonDefinition = `{
  "version": 1,
  "types": [
    {"type": "enum", "enum": {"typeName": {"name": "Color", "package": "com.example"},
      "values": [{"value": "RED"}, {"value": "BLUE"}]}}
  ],
  "services": [
    {"serviceName": {"name": "ColorService", "package": "com.example"},
     "endpoints": [
       {"endpointName": "getColors", "httpMethod": "GET", "httpPath": "/colors/{owner}",
        "args": [{"argName": "owner", "type": {"type": "primitive", "primitive": "STRING"}, "paramType": {"type": "path", "path": {}}}],
        "returns": {"type": "set", "set": {"itemType": {"type": "reference", "reference": {"name": "Color", "package": "com.example"}}}}}
     ]}
  ]
}`

func TestLoadYAMLMatchesJSON(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "colors.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlDefinition), 0o600))

	fromYAML, err := Load(yamlPath)
	require.NoError(t, err)
	fromJSON, err := LoadBytes([]byte(jsonDefinition), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	require.NoError(t, Validate(fromYAML))
}

func TestLoadErrors(t *testing.T) {
	t.Run("unknown key", func(t *testing.T) {
		_, err := LoadBytes([]byte(`{"version": 1, "bogus": true}`), FormatJSON)
		require.Error(t, err)
		assert.ErrorIs(t, err, conjerrors.ErrParse)
		var derr *wire.DecodeError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, wire.KindUnknownField, derr.Kind)
		assert.Equal(t, "bogus", derr.Field)
	})

	t.Run("unknown type variant", func(t *testing.T) {
		doc := `{"version": 1, "types": [{"type": "widget", "widget": {}}]}`
		_, err := LoadBytes([]byte(doc), FormatJSON)
		var derr *wire.DecodeError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, wire.KindUnknownVariant, derr.Kind)
		assert.Equal(t, "types[0]", derr.Field)
	})

	t.Run("unknown primitive", func(t *testing.T) {
		doc := `{"version": 1, "types": [{"type": "alias", "alias": {"typeName": {"name": "A", "package": "p"}, "alias": {"type": "primitive", "primitive": "FLOAT"}}}]}`
		_, err := LoadBytes([]byte(doc), FormatJSON)
		var derr *wire.DecodeError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, wire.KindUnknownVariant, derr.Kind)
		assert.Equal(t, "types[0].alias.alias.primitive", derr.Field)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		var perr *conjerrors.ParseError
		require.True(t, errors.As(err, &perr))
		assert.Contains(t, perr.Path, "nope.json")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := LoadBytes([]byte("version: [1"), FormatYAML)
		assert.ErrorIs(t, err, conjerrors.ErrParse)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := LoadBytes([]byte(`{}`), Format(9))
		assert.ErrorIs(t, err, conjerrors.ErrConfig)
	})
}

func TestDefinitionRoundTrip(t *testing.T) {
	def := loadFixture(t)
	out, err := wire.Marshal(def)
	require.NoError(t, err)

	back, err := LoadBytes(out, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, def.Types, back.Types)
	assert.Equal(t, def.Services, back.Services)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("api.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("API.YAML"))
	assert.Equal(t, FormatJSON, FormatFromPath("api.conjure.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("api"))
	assert.Equal(t, "yaml", FormatYAML.String())
}

func TestIndexPredicates(t *testing.T) {
	idx := NewIndex(loadFixture(t))
	payload := Reference("com.example.things", "Payload")
	thingID := Reference("com.example.things", "ThingId")

	assert.True(t, idx.IsBinary(PrimitiveBinary))
	assert.True(t, idx.IsBinary(payload))
	assert.False(t, idx.IsBinary(Optional(PrimitiveBinary)))
	assert.False(t, idx.IsBinary(PrimitiveString))

	inner, ok := idx.IsOptional(Optional(payload))
	require.True(t, ok)
	assert.True(t, idx.IsBinary(inner))
	_, ok = idx.IsOptional(List(PrimitiveString))
	assert.False(t, ok)

	assert.True(t, idx.IsIterable(List(PrimitiveString)))
	assert.True(t, idx.IsIterable(Set(PrimitiveString)))
	assert.True(t, idx.IsIterable(Optional(PrimitiveString)))
	assert.False(t, idx.IsIterable(Map(PrimitiveString, PrimitiveString)))
	assert.False(t, idx.IsIterable(thingID))

	assert.True(t, idx.IsCollection(Map(PrimitiveString, PrimitiveString)))
	assert.False(t, idx.IsCollection(Optional(PrimitiveString)))

	assert.Equal(t, PrimitiveUUID, idx.Resolve(thingID))
	assert.Equal(t, Reference("com.example.things", "Thing"), idx.Resolve(Reference("com.example.things", "Thing")))
	assert.Equal(t, PrimitiveString, idx.Resolve(ExternalType{
		ExternalReference: TypeName{Name: "Ext", Package: "org.other"},
		Fallback:          PrimitiveString,
	}))

	t.Run("alias cycles terminate", func(t *testing.T) {
		a := TypeName{Name: "A", Package: "p"}
		b := TypeName{Name: "B", Package: "p"}
		cyclic := NewIndex(&ConjureDefinition{Types: []TypeDefinition{
			AliasDefinition{TypeName: a, Alias: ReferenceType(b)},
			AliasDefinition{TypeName: b, Alias: ReferenceType(a)},
		}})
		assert.False(t, cyclic.IsIterable(ReferenceType(a)))
	})
}

func TestNewEndpointDefinition(t *testing.T) {
	t.Run("reports every missing field", func(t *testing.T) {
		_, err := NewEndpointDefinition(EndpointDefinition{})
		require.Error(t, err)
		var verr *conjerrors.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"endpointName", "httpMethod", "httpPath"}, verr.Missing)
		assert.Equal(t, "EndpointDefinition", verr.Path)
	})

	t.Run("rule violations", func(t *testing.T) {
		_, err := NewEndpointDefinition(EndpointDefinition{EndpointName: "e", HTTPMethod: "PATCH", HTTPPath: "things"})
		var verr *conjerrors.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Empty(t, verr.Missing)
		assert.Contains(t, verr.Message, "httpMethod must be one of: GET POST PUT DELETE")
		assert.Contains(t, verr.Message, `httpPath must start with "/"`)
	})

	t.Run("missing argument fields", func(t *testing.T) {
		_, err := NewEndpointDefinition(EndpointDefinition{
			EndpointName: "e", HTTPMethod: MethodPost, HTTPPath: "/x",
			Args: []ArgumentDefinition{{ArgName: "a"}},
		})
		var verr *conjerrors.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"args[0].type", "args[0].paramType"}, verr.Missing)
	})

	t.Run("at most one body", func(t *testing.T) {
		_, err := NewEndpointDefinition(EndpointDefinition{
			EndpointName: "e", HTTPMethod: MethodPost, HTTPPath: "/x",
			Args: []ArgumentDefinition{
				{ArgName: "a", Type: PrimitiveString, ParamType: BodyParameterType{}},
				{ArgName: "b", Type: PrimitiveString, ParamType: BodyParameterType{}},
			},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, conjerrors.ErrValidation)
		assert.Contains(t, err.Error(), "more than one body argument: a, b")
	})

	t.Run("placeholders match path arguments", func(t *testing.T) {
		_, err := NewEndpointDefinition(EndpointDefinition{
			EndpointName: "e", HTTPMethod: MethodGet, HTTPPath: "/x/{id}",
			Args: []ArgumentDefinition{
				{ArgName: "other", Type: PrimitiveString, ParamType: PathParameterType{}},
			},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "placeholder {id} has no path argument")
		assert.Contains(t, err.Error(), `path argument "other" has no placeholder`)
	})

	t.Run("valid endpoint", func(t *testing.T) {
		ep, err := NewEndpointDefinition(EndpointDefinition{
			EndpointName: "e", HTTPMethod: MethodGet, HTTPPath: "/x/{id}",
			Args: []ArgumentDefinition{
				{ArgName: "id", Type: PrimitiveString, ParamType: PathParameterType{}},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "e", ep.EndpointName)
	})
}

func TestNewServiceAndArgumentDefinition(t *testing.T) {
	_, err := NewServiceDefinition(ServiceDefinition{})
	var verr *conjerrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"serviceName"}, verr.Missing)

	_, err = NewArgumentDefinition(ArgumentDefinition{})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"argName", "type", "paramType"}, verr.Missing)

	arg, err := NewArgumentDefinition(ArgumentDefinition{ArgName: "q", Type: PrimitiveString, ParamType: QueryParameterType{ParamID: "q"}})
	require.NoError(t, err)
	assert.Equal(t, "q", arg.ArgName)
}

func TestValidateAggregates(t *testing.T) {
	def := &ConjureDefinition{
		Version: 1,
		Types: []TypeDefinition{
			ObjectDefinition{
				TypeName: TypeName{Name: "Thing", Package: "p"},
				Fields: []FieldDefinition{
					{FieldName: "other", Type: List(Reference("p", "Missing"))},
				},
			},
		},
		Services: []ServiceDefinition{{
			ServiceName: TypeName{Name: "S", Package: "p"},
			Endpoints: []EndpointDefinition{
				{EndpointName: "get", HTTPMethod: MethodGet, HTTPPath: "/a"},
				{EndpointName: "get", HTTPMethod: MethodGet, HTTPPath: "/b",
					Args: []ArgumentDefinition{{ArgName: "body", Type: PrimitiveString, ParamType: BodyParameterType{}}}},
			},
		}},
	}
	err := Validate(def)
	require.Error(t, err)
	assert.ErrorIs(t, err, conjerrors.ErrReference)
	assert.ErrorIs(t, err, conjerrors.ErrValidation)
	msg := err.Error()
	assert.Contains(t, msg, "reference error: p.Missing at types.p.Thing.other")
	assert.Contains(t, msg, "duplicate endpoint")
	assert.Contains(t, msg, "GET endpoints cannot have a body argument")

	assert.Error(t, Validate(nil))
}

func TestPathParameters(t *testing.T) {
	assert.Equal(t, []string{"a", "rest"}, PathParameters("/x/{a}/y/{rest*}"))
	assert.Empty(t, PathParameters("/static"))
}

func TestLoggers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	logger.With("service", "S").Info("generated", "endpoints", 3)
	logger.Debug("debug line")
	assert.Contains(t, buf.String(), "service=S")
	assert.Contains(t, buf.String(), "endpoints=3")
	assert.Contains(t, buf.String(), "debug line")

	var nop Logger = NopLogger{}
	nop.With("a", 1).Error("ignored")
	assert.NotNil(t, NewSlogAdapter(nil))
}
