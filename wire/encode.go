package wire

import (
	"bytes"
	"encoding"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"reflect"
	"slices"
	"strconv"
)

// Marshaler is implemented by types that encode themselves.
type Marshaler interface {
	MarshalConjure(e *Encoder) error
}

var (
	marshalerType     = reflect.TypeFor[Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	numberType        = reflect.TypeFor[json.Number]()
)

// Encoder writes Conjure JSON. The zero value encodes into an internal buffer.
type Encoder struct {
	buf bytes.Buffer
	w   io.Writer
}

// NewEncoder returns an Encoder whose Encode method writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes v to the underlying writer.
func (e *Encoder) Encode(v any) error {
	e.buf.Reset()
	if err := e.WriteValue(v); err != nil {
		return err
	}
	if e.w == nil {
		return nil
	}
	_, err := e.w.Write(e.buf.Bytes())
	return err
}

// Bytes returns the encoded output accumulated so far.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Marshal returns the Conjure JSON encoding of v.
func Marshal(v any) ([]byte, error) {
	var e Encoder
	if err := e.WriteValue(v); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// WriteNull writes a null token.
func (e *Encoder) WriteNull() {
	e.buf.WriteString("null")
}

// WriteBool writes a boolean token.
func (e *Encoder) WriteBool(b bool) {
	e.buf.WriteString(strconv.FormatBool(b))
}

// WriteInt writes an integer token.
func (e *Encoder) WriteInt(n int64) {
	e.buf.WriteString(strconv.FormatInt(n, 10))
}

// WriteFloat writes a numeric token for finite f and the special string otherwise.
func (e *Encoder) WriteFloat(f float64, bits int) {
	switch {
	case math.IsNaN(f):
		e.WriteString(NaN)
	case math.IsInf(f, 1):
		e.WriteString(PositiveInfinity)
	case math.IsInf(f, -1):
		e.WriteString(NegativeInfinity)
	default:
		e.buf.Write(appendFloat(nil, f, bits))
	}
}

// WriteString writes a string token.
func (e *Encoder) WriteString(s string) {
	b, _ := json.Marshal(s)
	e.buf.Write(b)
}

// WriteBytes writes b as a base64 string token.
func (e *Encoder) WriteBytes(b []byte) {
	e.buf.WriteByte('"')
	e.buf.WriteString(base64.StdEncoding.EncodeToString(b))
	e.buf.WriteByte('"')
}

// Object starts a JSON object. Close must be called once all fields are written.
func (e *Encoder) Object() *ObjectWriter {
	e.buf.WriteByte('{')
	return &ObjectWriter{e: e}
}

// ObjectWriter writes the entries of one JSON object.
type ObjectWriter struct {
	e *Encoder
	n int
}

// Field writes one object entry.
func (o *ObjectWriter) Field(name string, v any) error {
	o.key(name)
	return o.e.WriteValue(v)
}

func (o *ObjectWriter) key(name string) {
	if o.n > 0 {
		o.e.buf.WriteByte(',')
	}
	o.n++
	o.e.WriteString(name)
	o.e.buf.WriteByte(':')
}

// Close ends the object.
func (o *ObjectWriter) Close() {
	o.e.buf.WriteByte('}')
}

// WriteValue writes any Go value.
func (e *Encoder) WriteValue(v any) error {
	return e.encode(reflect.ValueOf(v))
}

func (e *Encoder) encode(rv reflect.Value) error {
	if !rv.IsValid() {
		e.WriteNull()
		return nil
	}
	t := rv.Type()
	if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
		e.WriteNull()
		return nil
	}

	switch {
	case t.Implements(marshalerType):
		return rv.Interface().(Marshaler).MarshalConjure(e)
	case reflect.PointerTo(t).Implements(marshalerType):
		return addressable(rv).Interface().(Marshaler).MarshalConjure(e)
	case t.Implements(textMarshalerType):
		return e.encodeText(rv.Interface().(encoding.TextMarshaler), t)
	case reflect.PointerTo(t).Implements(textMarshalerType):
		return e.encodeText(addressable(rv).Interface().(encoding.TextMarshaler), t)
	case t == numberType:
		e.buf.WriteString(rv.String())
		return nil
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return e.encode(rv.Elem())
	case reflect.Bool:
		e.WriteBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.WriteInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		e.buf.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		e.WriteFloat(rv.Float(), t.Bits())
	case reflect.String:
		e.WriteString(rv.String())
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 && rv.Kind() == reflect.Slice {
			e.WriteBytes(rv.Bytes())
			return nil
		}
		e.buf.WriteByte('[')
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			if err := e.encode(rv.Index(i)); err != nil {
				return err
			}
		}
		e.buf.WriteByte(']')
	case reflect.Map:
		return e.encodeMap(rv)
	case reflect.Struct:
		return e.encodeStruct(rv)
	default:
		return &EncodeError{Type: t.String(), Message: "unsupported type"}
	}
	return nil
}

func (e *Encoder) encodeText(m encoding.TextMarshaler, t reflect.Type) error {
	text, err := m.MarshalText()
	if err != nil {
		return &EncodeError{Type: t.String(), Cause: err}
	}
	e.WriteString(string(text))
	return nil
}

func (e *Encoder) encodeMap(rv reflect.Value) error {
	type entry struct {
		key   string
		value reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, err := mapKeyString(iter.Key())
		if err != nil {
			return err
		}
		entries = append(entries, entry{key: key, value: iter.Value()})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		switch {
		case a.key < b.key:
			return -1
		case a.key > b.key:
			return 1
		}
		return 0
	})
	obj := e.Object()
	for _, en := range entries {
		obj.key(en.key)
		if err := e.encode(en.value); err != nil {
			return err
		}
	}
	obj.Close()
	return nil
}

func mapKeyString(k reflect.Value) (string, error) {
	if m, ok := k.Interface().(encoding.TextMarshaler); ok {
		text, err := m.MarshalText()
		if err != nil {
			return "", &EncodeError{Type: k.Type().String(), Message: "map key", Cause: err}
		}
		return string(text), nil
	}
	switch k.Kind() {
	case reflect.String:
		return k.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Bool:
		return strconv.FormatBool(k.Bool()), nil
	default:
		return "", &EncodeError{Type: k.Type().String(), Message: "unsupported map key type"}
	}
}

func (e *Encoder) encodeStruct(rv reflect.Value) error {
	info := cachedStruct(rv.Type())
	obj := e.Object()
	for _, f := range info.fields {
		fv := rv.FieldByIndex(f.index)
		if f.omitEmpty && shouldSkip(fv) {
			continue
		}
		obj.key(f.name)
		if err := e.encode(fv); err != nil {
			return fmt.Errorf("field %s: %w", f.name, err)
		}
	}
	obj.Close()
	return nil
}

// shouldSkip reports whether an omitempty field holds an absent optional or
// an empty collection. Zero scalars are always written.
func shouldSkip(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return false
	}
}

func addressable(rv reflect.Value) reflect.Value {
	if rv.CanAddr() {
		return rv.Addr()
	}
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	return p
}

// appendFloat formats f the way encoding/json does: plain decimal notation
// for ordinary magnitudes and exponent notation for very small or large ones.
func appendFloat(b []byte, f float64, bits int) []byte {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) || bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}
	b = strconv.AppendFloat(b, f, format, -1, bits)
	if format == 'e' {
		// clean up e-09 to e-9
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return b
}
