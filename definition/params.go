package definition

import "github.com/erraggy/conjurego/wire"

// HTTPMethod is the HTTP method of an endpoint.
type HTTPMethod string

// Supported HTTP methods.
const (
	MethodGet    HTTPMethod = "GET"
	MethodPost   HTTPMethod = "POST"
	MethodPut    HTTPMethod = "PUT"
	MethodDelete HTTPMethod = "DELETE"
)

var methodValues = []string{string(MethodGet), string(MethodPost), string(MethodPut), string(MethodDelete)}

// UnmarshalConjure implements wire.Unmarshaler.
func (m *HTTPMethod) UnmarshalConjure(d wire.Decoder) error {
	s, err := wire.DecodeEnum(d, methodValues, true)
	if err != nil {
		return err
	}
	*m = HTTPMethod(s)
	return nil
}

// ParameterType says where an argument travels in a request. The concrete
// types are BodyParameterType, PathParameterType, QueryParameterType,
// HeaderParameterType and ExplicitParameterType.
type ParameterType interface {
	wire.Marshaler
	isParameterType()
}

// BodyParameterType is the request body.
type BodyParameterType struct{}

// PathParameterType is substituted into the path template under the argument name.
type PathParameterType struct{}

// QueryParameterType is a query string parameter under ParamID.
type QueryParameterType struct {
	ParamID string `json:"paramId"`
}

// HeaderParameterType is a request header named ParamID.
type HeaderParameterType struct {
	ParamID string `json:"paramId"`
}

// ExplicitParameterType is an argument handed to the generated method but not
// sent on the wire. Client generation does not support it.
type ExplicitParameterType struct{}

func (BodyParameterType) isParameterType()     {}
func (PathParameterType) isParameterType()     {}
func (QueryParameterType) isParameterType()    {}
func (HeaderParameterType) isParameterType()   {}
func (ExplicitParameterType) isParameterType() {}

// MarshalConjure implements wire.Marshaler.
func (BodyParameterType) MarshalConjure(e *wire.Encoder) error {
	return wire.EncodeUnion(e, "body", struct{}{})
}

// MarshalConjure implements wire.Marshaler.
func (PathParameterType) MarshalConjure(e *wire.Encoder) error {
	return wire.EncodeUnion(e, "path", struct{}{})
}

// MarshalConjure implements wire.Marshaler.
func (p QueryParameterType) MarshalConjure(e *wire.Encoder) error {
	return wire.EncodeUnion(e, "query", struct {
		ParamID string `json:"paramId"`
	}(p))
}

// MarshalConjure implements wire.Marshaler.
func (p HeaderParameterType) MarshalConjure(e *wire.Encoder) error {
	return wire.EncodeUnion(e, "header", struct {
		ParamID string `json:"paramId"`
	}(p))
}

// MarshalConjure implements wire.Marshaler.
func (ExplicitParameterType) MarshalConjure(e *wire.Encoder) error {
	return wire.EncodeUnion(e, "explicit", struct{}{})
}

var parameterVariants = map[string]func(wire.Decoder) (ParameterType, error){
	"body":     variantOf[ParameterType, BodyParameterType](),
	"path":     variantOf[ParameterType, PathParameterType](),
	"query":    variantOf[ParameterType, QueryParameterType](),
	"header":   variantOf[ParameterType, HeaderParameterType](),
	"explicit": variantOf[ParameterType, ExplicitParameterType](),
}

// AuthType is the authentication scheme of an endpoint: HeaderAuthType or
// CookieAuthType.
type AuthType interface {
	wire.Marshaler
	isAuthType()
}

// HeaderAuthType sends a bearer token in the Authorization header.
type HeaderAuthType struct{}

// CookieAuthType sends a bearer token in the named cookie.
type CookieAuthType struct {
	CookieName string `json:"cookieName"`
}

func (HeaderAuthType) isAuthType() {}
func (CookieAuthType) isAuthType() {}

// MarshalConjure implements wire.Marshaler.
func (HeaderAuthType) MarshalConjure(e *wire.Encoder) error {
	return wire.EncodeUnion(e, "header", struct{}{})
}

// MarshalConjure implements wire.Marshaler.
func (a CookieAuthType) MarshalConjure(e *wire.Encoder) error {
	return wire.EncodeUnion(e, "cookie", struct {
		CookieName string `json:"cookieName"`
	}(a))
}

var authVariants = map[string]func(wire.Decoder) (AuthType, error){
	"header": variantOf[AuthType, HeaderAuthType](),
	"cookie": variantOf[AuthType, CookieAuthType](),
}

func init() {
	wire.RegisterInterface(func(d wire.Decoder) (ParameterType, error) {
		return decodeVariant(d, "parameter type", parameterVariants)
	})
	wire.RegisterInterface(func(d wire.Decoder) (AuthType, error) {
		return decodeVariant(d, "auth type", authVariants)
	})
}
