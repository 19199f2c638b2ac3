package wire

import (
	"encoding/base64"
	"encoding/json"
	"math"
	"slices"
)

// Special float strings accepted and produced in place of non-finite numbers.
const (
	NaN              = "NaN"
	PositiveInfinity = "Infinity"
	NegativeInfinity = "-Infinity"
)

// Strict wraps d so that floats also accept the special strings, byte buffers
// are base64 strings, and records reject unknown keys. Every sequence, map and
// value decoder obtained from the result is itself strict. Wrapping an already
// strict decoder returns it unchanged.
func Strict(d Decoder) Decoder {
	switch d.(type) {
	case *strictDecoder, *fieldCheckingDecoder:
		return d
	}
	return &strictDecoder{inner: d}
}

type strictDecoder struct {
	inner Decoder
}

func (d *strictDecoder) DecodeNull() (bool, error)         { return d.inner.DecodeNull() }
func (d *strictDecoder) DecodeBool() (bool, error)         { return d.inner.DecodeBool() }
func (d *strictDecoder) DecodeInt(bits int) (int64, error) { return d.inner.DecodeInt(bits) }
func (d *strictDecoder) DecodeString() (string, error)     { return d.inner.DecodeString() }
func (d *strictDecoder) DecodeScalar() (json.Token, error) { return d.inner.DecodeScalar() }
func (d *strictDecoder) DecodeAny() (any, error)           { return d.inner.DecodeAny() }
func (d *strictDecoder) Skip() error                       { return d.inner.Skip() }

func (d *strictDecoder) DecodeFloat(bits int) (float64, error) {
	tok, err := d.inner.DecodeScalar()
	if err != nil {
		return 0, err
	}
	switch v := tok.(type) {
	case json.Number:
		return parseFloat(v, bits)
	case string:
		switch v {
		case NaN:
			return math.NaN(), nil
		case PositiveInfinity:
			return math.Inf(1), nil
		case NegativeInfinity:
			return math.Inf(-1), nil
		}
		return 0, invalidValue(v, "a float or one of `NaN`, `Infinity`, `-Infinity`")
	default:
		return 0, invalidType(tok, "a float")
	}
}

func (d *strictDecoder) DecodeBytes() ([]byte, error) {
	s, err := d.inner.DecodeString()
	if err != nil {
		return nil, err
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &DecodeError{
			Kind:    KindInvalidValue,
			Token:   s,
			Message: "invalid value: string is not valid base64",
			Cause:   err,
		}
	}
	return b, nil
}

func (d *strictDecoder) DecodeSeq() (SeqAccess, error) {
	seq, err := d.inner.DecodeSeq()
	if err != nil {
		return nil, err
	}
	return &strictSeq{inner: seq}, nil
}

func (d *strictDecoder) DecodeMap() (MapAccess, error) {
	m, err := d.inner.DecodeMap()
	if err != nil {
		return nil, err
	}
	return &strictMap{inner: m}, nil
}

func (d *strictDecoder) DecodeStruct(name string, fields []string) (MapAccess, error) {
	m, err := d.inner.DecodeStruct(name, fields)
	if err != nil {
		return nil, err
	}
	return &structMap{inner: m, fields: fields}, nil
}

type strictSeq struct {
	inner SeqAccess
}

func (s *strictSeq) Next() (Decoder, error) {
	el, err := s.inner.Next()
	if err != nil || el == nil {
		return nil, err
	}
	return Strict(el), nil
}

type strictMap struct {
	inner MapAccess
}

func (m *strictMap) NextKey() (string, bool, error) { return m.inner.NextKey() }
func (m *strictMap) Value() Decoder                 { return Strict(m.inner.Value()) }

// structMap remembers the most recent key so that the value decoder for a key
// outside the field set can name it.
type structMap struct {
	inner  MapAccess
	fields []string
	key    string
}

func (m *structMap) NextKey() (string, bool, error) {
	key, ok, err := m.inner.NextKey()
	if ok {
		m.key = key
	}
	return key, ok, err
}

func (m *structMap) Value() Decoder {
	value := &strictDecoder{inner: m.inner.Value()}
	if slices.Contains(m.fields, m.key) {
		return value
	}
	return &fieldCheckingDecoder{strictDecoder: value, key: m.key, fields: m.fields}
}

// fieldCheckingDecoder decodes the value of an unrecognised record key. Any
// typed decode proceeds normally; skipping the value is an error.
type fieldCheckingDecoder struct {
	*strictDecoder
	key    string
	fields []string
}

func (d *fieldCheckingDecoder) Skip() error {
	return unknownField(d.key, d.fields)
}
