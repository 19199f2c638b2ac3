package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Decoder decodes exactly one JSON value. Each method states the shape the
// caller expects; a Decoder must not be used again once a method has
// consumed its value.
type Decoder interface {
	// DecodeNull consumes a null and reports true, or reports false and
	// leaves any other value in place.
	DecodeNull() (bool, error)
	// DecodeBool decodes a boolean.
	DecodeBool() (bool, error)
	// DecodeInt decodes an integer that fits in the given bit size.
	DecodeInt(bits int) (int64, error)
	// DecodeFloat decodes a floating point number of the given bit size.
	DecodeFloat(bits int) (float64, error)
	// DecodeString decodes a string.
	DecodeString() (string, error)
	// DecodeBytes decodes a byte buffer.
	DecodeBytes() ([]byte, error)
	// DecodeScalar decodes any non-container token: string, json.Number, bool or nil.
	DecodeScalar() (json.Token, error)
	// DecodeSeq opens a JSON array.
	DecodeSeq() (SeqAccess, error)
	// DecodeMap opens a JSON object with arbitrary keys.
	DecodeMap() (MapAccess, error)
	// DecodeStruct opens a JSON object holding the record name with the given
	// known field set.
	DecodeStruct(name string, fields []string) (MapAccess, error)
	// DecodeAny decodes an untyped value into map[string]any, []any,
	// json.Number, string, bool or nil.
	DecodeAny() (any, error)
	// Skip consumes and discards a value.
	Skip() error
}

// SeqAccess iterates the elements of a JSON array.
type SeqAccess interface {
	// Next returns a Decoder for the next element, or nil once the array is exhausted.
	// The previous element must be fully consumed before calling Next.
	Next() (Decoder, error)
}

// MapAccess iterates the entries of a JSON object.
type MapAccess interface {
	// NextKey returns the next key, or false once the object is exhausted.
	NextKey() (string, bool, error)
	// Value returns a Decoder for the value of the most recent key.
	// It must be consumed before calling NextKey again.
	Value() Decoder
}

// tokenSource is a token stream with one token of lookahead.
type tokenSource struct {
	dec    *json.Decoder
	peeked json.Token
	has    bool
}

func newTokenSource(r io.Reader) *tokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &tokenSource{dec: dec}
}

func (s *tokenSource) next() (json.Token, error) {
	if s.has {
		s.has = false
		tok := s.peeked
		s.peeked = nil
		return tok, nil
	}
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &DecodeError{Kind: KindSyntax, Message: "unexpected end of input", Cause: io.ErrUnexpectedEOF}
		}
		return nil, syntaxError(err)
	}
	return tok, nil
}

func (s *tokenSource) peek() (json.Token, error) {
	if s.has {
		return s.peeked, nil
	}
	tok, err := s.next()
	if err != nil {
		return nil, err
	}
	s.peeked = tok
	s.has = true
	return tok, nil
}

// more reports whether the current array or object has another element.
func (s *tokenSource) more() bool {
	if s.has {
		d, ok := s.peeked.(json.Delim)
		return !ok || (d != ']' && d != '}')
	}
	return s.dec.More()
}

// end verifies only whitespace remains after the top-level value.
func (s *tokenSource) end() error {
	if s.has {
		return &DecodeError{Kind: KindTrailingData, Token: tokenString(s.peeked), Message: "trailing characters"}
	}
	tok, err := s.dec.Token()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return &DecodeError{Kind: KindTrailingData, Message: "trailing characters", Cause: err}
	}
	return &DecodeError{Kind: KindTrailingData, Token: tokenString(tok), Message: "trailing characters"}
}

func (s *tokenSource) expectDelim(want json.Delim, expected string) error {
	tok, err := s.next()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return invalidType(tok, expected)
	}
	return nil
}

// standardDecoder decodes values the way a plain JSON decoder does: floats
// come only from numbers, byte buffers are arrays of numbers, and record keys
// outside the known field set are left for the caller to skip.
type standardDecoder struct {
	src *tokenSource
}

func (d *standardDecoder) DecodeNull() (bool, error) {
	tok, err := d.src.peek()
	if err != nil {
		return false, err
	}
	if tok != nil {
		return false, nil
	}
	_, err = d.src.next()
	return true, err
}

func (d *standardDecoder) DecodeBool() (bool, error) {
	tok, err := d.src.next()
	if err != nil {
		return false, err
	}
	b, ok := tok.(bool)
	if !ok {
		return false, invalidType(tok, "a boolean")
	}
	return b, nil
}

func (d *standardDecoder) DecodeInt(bits int) (int64, error) {
	tok, err := d.src.next()
	if err != nil {
		return 0, err
	}
	n, ok := tok.(json.Number)
	if !ok {
		return 0, invalidType(tok, "an integer")
	}
	return parseInt(n, bits)
}

func (d *standardDecoder) DecodeFloat(bits int) (float64, error) {
	tok, err := d.src.next()
	if err != nil {
		return 0, err
	}
	n, ok := tok.(json.Number)
	if !ok {
		return 0, invalidType(tok, "a float")
	}
	return parseFloat(n, bits)
}

func (d *standardDecoder) DecodeString() (string, error) {
	tok, err := d.src.next()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", invalidType(tok, "a string")
	}
	return s, nil
}

func (d *standardDecoder) DecodeBytes() ([]byte, error) {
	seq, err := d.DecodeSeq()
	if err != nil {
		return nil, err
	}
	out := []byte{}
	for i := 0; ; i++ {
		el, err := seq.Next()
		if err != nil {
			return nil, err
		}
		if el == nil {
			return out, nil
		}
		b, err := el.DecodeInt(16)
		if err != nil {
			return nil, atField(err, fmt.Sprintf("[%d]", i))
		}
		if b < 0 || b > math.MaxUint8 {
			return nil, atField(&DecodeError{Kind: KindInvalidValue, Token: strconv.FormatInt(b, 10), Message: "byte out of range"}, fmt.Sprintf("[%d]", i))
		}
		out = append(out, byte(b))
	}
}

func (d *standardDecoder) DecodeScalar() (json.Token, error) {
	tok, err := d.src.next()
	if err != nil {
		return nil, err
	}
	if _, ok := tok.(json.Delim); ok {
		return nil, invalidType(tok, "a scalar")
	}
	return tok, nil
}

func (d *standardDecoder) DecodeSeq() (SeqAccess, error) {
	if err := d.src.expectDelim('[', "a sequence"); err != nil {
		return nil, err
	}
	return &standardSeq{src: d.src}, nil
}

func (d *standardDecoder) DecodeMap() (MapAccess, error) {
	if err := d.src.expectDelim('{', "a map"); err != nil {
		return nil, err
	}
	return &standardMap{src: d.src}, nil
}

func (d *standardDecoder) DecodeStruct(name string, _ []string) (MapAccess, error) {
	if err := d.src.expectDelim('{', "struct "+name); err != nil {
		return nil, err
	}
	return &standardMap{src: d.src}, nil
}

func (d *standardDecoder) DecodeAny() (any, error) {
	tok, err := d.src.next()
	if err != nil {
		return nil, err
	}
	return d.anyFrom(tok)
}

func (d *standardDecoder) anyFrom(tok json.Token) (any, error) {
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '[':
		out := []any{}
		for d.src.more() {
			el, err := d.DecodeAny()
			if err != nil {
				return nil, err
			}
			out = append(out, el)
		}
		_, err := d.src.next()
		return out, err
	case '{':
		out := map[string]any{}
		for d.src.more() {
			key, err := d.src.next()
			if err != nil {
				return nil, err
			}
			k, ok := key.(string)
			if !ok {
				return nil, invalidType(key, "a map key")
			}
			v, err := d.DecodeAny()
			if err != nil {
				return nil, atField(err, k)
			}
			out[k] = v
		}
		_, err := d.src.next()
		return out, err
	default:
		return nil, invalidType(tok, "a value")
	}
}

func (d *standardDecoder) Skip() error {
	tok, err := d.src.next()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '[' && delim != '{') {
		return nil
	}
	for depth := 1; depth > 0; {
		tok, err := d.src.next()
		if err != nil {
			return err
		}
		if delim, ok := tok.(json.Delim); ok {
			if delim == '[' || delim == '{' {
				depth++
			} else {
				depth--
			}
		}
	}
	return nil
}

type standardSeq struct {
	src  *tokenSource
	done bool
}

func (s *standardSeq) Next() (Decoder, error) {
	if s.done {
		return nil, nil
	}
	if !s.src.more() {
		s.done = true
		return nil, s.src.expectDelim(']', "end of sequence")
	}
	return &standardDecoder{src: s.src}, nil
}

type standardMap struct {
	src  *tokenSource
	done bool
}

func (m *standardMap) NextKey() (string, bool, error) {
	if m.done {
		return "", false, nil
	}
	if !m.src.more() {
		m.done = true
		return "", false, m.src.expectDelim('}', "end of map")
	}
	tok, err := m.src.next()
	if err != nil {
		return "", false, err
	}
	key, ok := tok.(string)
	if !ok {
		return "", false, invalidType(tok, "a map key")
	}
	return key, true, nil
}

func (m *standardMap) Value() Decoder {
	return &standardDecoder{src: m.src}
}

func parseInt(n json.Number, bits int) (int64, error) {
	v, err := strconv.ParseInt(string(n), 10, bits)
	if err != nil {
		return 0, &DecodeError{
			Kind:    KindInvalidValue,
			Token:   string(n),
			Message: fmt.Sprintf("invalid value: number %s, expected a %d-bit integer", n, bits),
		}
	}
	return v, nil
}

func parseFloat(n json.Number, bits int) (float64, error) {
	v, err := strconv.ParseFloat(string(n), bits)
	if err != nil {
		return 0, &DecodeError{
			Kind:    KindInvalidValue,
			Token:   string(n),
			Message: fmt.Sprintf("invalid value: number %s, expected a %d-bit float", n, bits),
		}
	}
	return v, nil
}
