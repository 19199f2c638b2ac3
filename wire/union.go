package wire

import "fmt"

// UnionTypeKey is the discriminant entry of an encoded union.
const UnionTypeKey = "type"

// UnionTarget receives the variant decoded by DecodeUnion.
type UnionTarget interface {
	// DecodeVariant decodes the payload of the named variant from d. It
	// reports false, without consuming d, when the name is not a known variant.
	DecodeVariant(name string, d Decoder) (bool, error)
	// SetUnknown stores an unrecognised variant and its opaque payload.
	SetUnknown(name string, value any)
}

// DecodeUnion decodes a {"type": name, name: payload} object into target.
// The two entries may appear in either order, and the type entry may be
// omitted when the payload comes first. target may have been written to
// when an error is returned, so callers decode into a scratch value.
func DecodeUnion(d Decoder, target UnionTarget) error {
	m, err := d.DecodeMap()
	if err != nil {
		return err
	}
	key, ok, err := m.NextKey()
	if err != nil {
		return err
	}
	if !ok {
		return missingField(UnionTypeKey)
	}

	if key == UnionTypeKey {
		variant, err := m.Value().DecodeString()
		if err != nil {
			return atField(err, UnionTypeKey)
		}
		next, ok, err := m.NextKey()
		if err != nil {
			return err
		}
		if !ok {
			return missingField(variant)
		}
		if next != variant {
			return invalidValue(next, "`"+variant+"`")
		}
		if err := decodePayload(variant, m.Value(), target); err != nil {
			return err
		}
	} else {
		variant := key
		if err := decodePayload(variant, m.Value(), target); err != nil {
			return err
		}
		next, ok, err := m.NextKey()
		if err != nil {
			return err
		}
		if !ok {
			// The payload key alone names the variant.
			return nil
		}
		if next != UnionTypeKey {
			return unknownField(next, []string{UnionTypeKey})
		}
		discriminant, err := m.Value().DecodeString()
		if err != nil {
			return atField(err, UnionTypeKey)
		}
		if discriminant != variant {
			return invalidValue(discriminant, "`"+variant+"`")
		}
	}

	extra, ok, err := m.NextKey()
	if err != nil {
		return err
	}
	if ok {
		return &DecodeError{
			Kind:    KindInvalidLength,
			Token:   extra,
			Message: "invalid length 3, expected type and value fields",
		}
	}
	return nil
}

func decodePayload(variant string, d Decoder, target UnionTarget) error {
	known, err := target.DecodeVariant(variant, d)
	if err != nil {
		return atField(err, variant)
	}
	if known {
		return nil
	}
	value, err := d.DecodeAny()
	if err != nil {
		return atField(err, variant)
	}
	target.SetUnknown(variant, value)
	return nil
}

// EncodeUnion writes exactly {"type": name, name: payload}.
func EncodeUnion(e *Encoder, name string, payload any) error {
	if name == "" {
		return &EncodeError{Type: "union", Message: "empty variant name"}
	}
	obj := e.Object()
	if err := obj.Field(UnionTypeKey, name); err != nil {
		return err
	}
	if err := obj.Field(name, payload); err != nil {
		return fmt.Errorf("union variant %s: %w", name, err)
	}
	obj.Close()
	return nil
}
