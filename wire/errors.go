package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrDecode indicates a value did not match the wire contract.
	ErrDecode = errors.New("decode error")

	// ErrEncode indicates a value could not be encoded.
	ErrEncode = errors.New("encode error")
)

// DecodeErrorKind classifies a DecodeError.
type DecodeErrorKind int

const (
	// KindSyntax indicates malformed JSON or premature end of input.
	KindSyntax DecodeErrorKind = iota
	// KindInvalidType indicates a token of the wrong JSON shape.
	KindInvalidType
	// KindInvalidValue indicates a token of the right shape with an unacceptable value.
	KindInvalidValue
	// KindUnknownField indicates a record key outside the known field set.
	KindUnknownField
	// KindMissingField indicates a required record field or union entry was absent.
	KindMissingField
	// KindInvalidLength indicates a union object with more than two entries.
	KindInvalidLength
	// KindUnknownVariant indicates an unrecognised enum string.
	KindUnknownVariant
	// KindTrailingData indicates non-whitespace input after the top-level value.
	KindTrailingData
	// KindUnsupported indicates a destination type the codec cannot populate.
	KindUnsupported
)

// String returns the string representation of the kind.
func (k DecodeErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindInvalidType:
		return "invalid type"
	case KindInvalidValue:
		return "invalid value"
	case KindUnknownField:
		return "unknown field"
	case KindMissingField:
		return "missing field"
	case KindInvalidLength:
		return "invalid length"
	case KindUnknownVariant:
		return "unknown variant"
	case KindTrailingData:
		return "trailing data"
	case KindUnsupported:
		return "unsupported type"
	default:
		return "unknown"
	}
}

// DecodeError reports a deviation from the wire contract.
type DecodeError struct {
	// Kind classifies the failure
	Kind DecodeErrorKind
	// Field is the path of the offending value (e.g. "items[2].name"), empty at the top level
	Field string
	// Token is the offending token or key, when known
	Token string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *DecodeError) Error() string {
	msg := "decode error"
	if e.Field != "" {
		msg += " at " + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// EncodeError reports a value that could not be encoded.
type EncodeError struct {
	// Type is the Go type that failed to encode
	Type string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *EncodeError) Error() string {
	msg := "encode error"
	if e.Type != "" {
		msg += " for " + e.Type
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *EncodeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *EncodeError) Is(target error) bool {
	return target == ErrEncode
}

// joinPath appends rest to prefix, using "." before names and nothing before indexes.
func joinPath(prefix, rest string) string {
	if rest == "" {
		return prefix
	}
	if prefix == "" {
		return rest
	}
	if strings.HasPrefix(rest, "[") {
		return prefix + rest
	}
	return prefix + "." + rest
}

// atField attributes err to the named field or index segment. Errors that are
// not DecodeErrors (from custom Unmarshalers) are wrapped.
func atField(err error, segment string) error {
	if err == nil {
		return nil
	}
	var derr *DecodeError
	if errors.As(err, &derr) {
		derr.Field = joinPath(segment, derr.Field)
		return derr
	}
	return &DecodeError{Kind: KindInvalidValue, Field: segment, Cause: err}
}

func syntaxError(err error) *DecodeError {
	var derr *DecodeError
	if errors.As(err, &derr) {
		return derr
	}
	return &DecodeError{Kind: KindSyntax, Message: "malformed JSON", Cause: err}
}

func invalidType(tok json.Token, expected string) *DecodeError {
	return &DecodeError{
		Kind:    KindInvalidType,
		Token:   tokenString(tok),
		Message: fmt.Sprintf("invalid type: %s, expected %s", describeToken(tok), expected),
	}
}

func invalidValue(got, expected string) *DecodeError {
	return &DecodeError{
		Kind:    KindInvalidValue,
		Token:   got,
		Message: fmt.Sprintf("invalid value: string %q, expected %s", got, expected),
	}
}

func unknownField(name string, expected []string) *DecodeError {
	msg := fmt.Sprintf("unknown field `%s`", name)
	if len(expected) == 0 {
		msg += ", there are no fields"
	} else {
		msg += ", expected one of " + quoteList(expected)
	}
	return &DecodeError{Kind: KindUnknownField, Field: name, Token: name, Message: msg}
}

func missingField(name string) *DecodeError {
	return &DecodeError{Kind: KindMissingField, Token: name, Message: fmt.Sprintf("missing field `%s`", name)}
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "`" + v + "`"
	}
	return strings.Join(quoted, ", ")
}

func tokenString(tok json.Token) string {
	switch v := tok.(type) {
	case nil:
		return "null"
	case string:
		return v
	case json.Number:
		return string(v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case json.Delim:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func describeToken(tok json.Token) string {
	switch v := tok.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("string %q", v)
	case json.Number:
		return "number " + string(v)
	case bool:
		return fmt.Sprintf("boolean `%t`", v)
	case json.Delim:
		switch v {
		case '[':
			return "sequence"
		case '{':
			return "map"
		}
		return "delimiter " + v.String()
	default:
		return fmt.Sprintf("%T", v)
	}
}
