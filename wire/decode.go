package wire

import (
	"bytes"
	"encoding"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
)

// Unmarshaler is implemented by types that decode themselves from a Decoder.
type Unmarshaler interface {
	UnmarshalConjure(d Decoder) error
}

var (
	unmarshalerType     = reflect.TypeFor[Unmarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// Stream is a top-level decode source. It hands out one Decoder for the
// top-level value and verifies that nothing follows it.
type Stream struct {
	src *tokenSource
}

// NewStream returns a Stream reading JSON from r.
func NewStream(r io.Reader) *Stream {
	return &Stream{src: newTokenSource(r)}
}

// Standard returns a plain decoder for the top-level value.
func (s *Stream) Standard() Decoder {
	return &standardDecoder{src: s.src}
}

// Strict returns a Conjure decoder for the top-level value.
func (s *Stream) Strict() Decoder {
	return Strict(s.Standard())
}

// End returns an error if anything other than whitespace follows the value.
func (s *Stream) End() error {
	return s.src.end()
}

// Decode reads one Conjure JSON value from r into v and requires r to hold
// nothing else.
func Decode(r io.Reader, v any) error {
	s := NewStream(r)
	if err := DecodeValue(s.Strict(), v); err != nil {
		return err
	}
	return s.End()
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return Decode(bytes.NewReader(data), v)
}

// UnmarshalString decodes s into v.
func UnmarshalString(s string, v any) error {
	return Decode(strings.NewReader(s), v)
}

// DecodeValue decodes one value from d into the value pointed to by v.
func DecodeValue(d Decoder, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &DecodeError{Kind: KindUnsupported, Message: fmt.Sprintf("destination must be a non-nil pointer, got %T", v)}
	}
	return decodeInto(d, rv.Elem())
}

func decodeInto(d Decoder, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Pointer:
		null, err := d.DecodeNull()
		if err != nil {
			return err
		}
		if null {
			rv.SetZero()
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return decodeInto(d, rv.Elem())
	case reflect.Interface:
		if rv.NumMethod() == 0 {
			v, err := d.DecodeAny()
			if err != nil {
				return err
			}
			if v == nil {
				rv.SetZero()
			} else {
				rv.Set(reflect.ValueOf(v))
			}
			return nil
		}
		decode, ok := lookupInterface(rv.Type())
		if !ok {
			return &DecodeError{Kind: KindUnsupported, Message: fmt.Sprintf("cannot decode into unregistered interface %s", rv.Type())}
		}
		null, err := d.DecodeNull()
		if err != nil {
			return err
		}
		if null {
			rv.SetZero()
			return nil
		}
		v, err := decode(d)
		if err != nil {
			return err
		}
		rv.Set(v)
		return nil
	}

	if rv.CanAddr() {
		pt := reflect.PointerTo(rv.Type())
		switch {
		case pt.Implements(unmarshalerType):
			return rv.Addr().Interface().(Unmarshaler).UnmarshalConjure(d)
		case pt.Implements(textUnmarshalerType):
			return decodeText(d, rv.Addr().Interface().(encoding.TextUnmarshaler))
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		b, err := d.DecodeBool()
		if err != nil {
			return err
		}
		rv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := d.DecodeInt(rv.Type().Bits())
		if err != nil {
			return err
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := d.DecodeInt(64)
		if err != nil {
			return err
		}
		if n < 0 || rv.OverflowUint(uint64(n)) {
			return &DecodeError{Kind: KindInvalidValue, Token: strconv.FormatInt(n, 10), Message: fmt.Sprintf("invalid value: number %d, expected %s", n, rv.Type())}
		}
		rv.SetUint(uint64(n))
	case reflect.Float32, reflect.Float64:
		f, err := d.DecodeFloat(rv.Type().Bits())
		if err != nil {
			return err
		}
		rv.SetFloat(f)
	case reflect.String:
		s, err := d.DecodeString()
		if err != nil {
			return err
		}
		rv.SetString(s)
	case reflect.Slice:
		return decodeSlice(d, rv)
	case reflect.Map:
		return decodeMap(d, rv)
	case reflect.Struct:
		return decodeStruct(d, rv)
	default:
		return &DecodeError{Kind: KindUnsupported, Message: fmt.Sprintf("cannot decode into %s", rv.Type())}
	}
	return nil
}

func decodeText(d Decoder, u encoding.TextUnmarshaler) error {
	s, err := d.DecodeString()
	if err != nil {
		return err
	}
	if err := u.UnmarshalText([]byte(s)); err != nil {
		return &DecodeError{
			Kind:    KindInvalidValue,
			Token:   s,
			Message: fmt.Sprintf("invalid value: string %q", s),
			Cause:   err,
		}
	}
	return nil
}

func decodeSlice(d Decoder, rv reflect.Value) error {
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		b, err := d.DecodeBytes()
		if err != nil {
			return err
		}
		rv.SetBytes(b)
		return nil
	}
	null, err := d.DecodeNull()
	if err != nil {
		return err
	}
	out := reflect.MakeSlice(rv.Type(), 0, 0)
	if null {
		rv.Set(out)
		return nil
	}
	seq, err := d.DecodeSeq()
	if err != nil {
		return err
	}
	for i := 0; ; i++ {
		el, err := seq.Next()
		if err != nil {
			return err
		}
		if el == nil {
			break
		}
		item := reflect.New(rv.Type().Elem()).Elem()
		if err := decodeInto(el, item); err != nil {
			return atField(err, fmt.Sprintf("[%d]", i))
		}
		out = reflect.Append(out, item)
	}
	rv.Set(out)
	return nil
}

func decodeMap(d Decoder, rv reflect.Value) error {
	null, err := d.DecodeNull()
	if err != nil {
		return err
	}
	out := reflect.MakeMap(rv.Type())
	if null {
		rv.Set(out)
		return nil
	}
	m, err := d.DecodeMap()
	if err != nil {
		return err
	}
	for {
		key, ok, err := m.NextKey()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		kv, err := mapKey(key, rv.Type().Key())
		if err != nil {
			return atField(err, key)
		}
		item := reflect.New(rv.Type().Elem()).Elem()
		if err := decodeInto(m.Value(), item); err != nil {
			return atField(err, key)
		}
		out.SetMapIndex(kv, item)
	}
	rv.Set(out)
	return nil
}

// mapKey converts a JSON object key to a value of type t.
func mapKey(key string, t reflect.Type) (reflect.Value, error) {
	kv := reflect.New(t)
	if kv.Type().Implements(textUnmarshalerType) {
		if err := kv.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(key)); err != nil {
			return reflect.Value{}, &DecodeError{Kind: KindInvalidValue, Token: key, Message: fmt.Sprintf("invalid value: map key %q", key), Cause: err}
		}
		return kv.Elem(), nil
	}
	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(key).Convert(t), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(key, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, &DecodeError{Kind: KindInvalidValue, Token: key, Message: fmt.Sprintf("invalid value: map key %q, expected an integer", key)}
		}
		kv.Elem().SetInt(n)
		return kv.Elem(), nil
	case reflect.Bool:
		b, err := strconv.ParseBool(key)
		if err != nil {
			return reflect.Value{}, &DecodeError{Kind: KindInvalidValue, Token: key, Message: fmt.Sprintf("invalid value: map key %q, expected a boolean", key)}
		}
		kv.Elem().SetBool(b)
		return kv.Elem(), nil
	default:
		return reflect.Value{}, &DecodeError{Kind: KindUnsupported, Message: fmt.Sprintf("unsupported map key type %s", t)}
	}
}

func decodeStruct(d Decoder, rv reflect.Value) error {
	info := cachedStruct(rv.Type())
	m, err := d.DecodeStruct(info.name, info.names)
	if err != nil {
		return err
	}
	seen := make([]bool, len(info.fields))
	for {
		key, ok, err := m.NextKey()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		i, known := info.byName[key]
		if !known {
			if err := m.Value().Skip(); err != nil {
				return err
			}
			continue
		}
		if seen[i] {
			return &DecodeError{Kind: KindInvalidValue, Field: key, Token: key, Message: fmt.Sprintf("duplicate field `%s`", key)}
		}
		seen[i] = true
		if err := decodeInto(m.Value(), rv.FieldByIndex(info.fields[i].index)); err != nil {
			return atField(err, key)
		}
	}
	for i, f := range info.fields {
		if !seen[i] && f.required {
			return missingField(f.name)
		}
	}
	return nil
}
