package wire

import (
	"fmt"
	"slices"
)

// ValidEnumVariant reports whether s may be accepted as an unknown variant of
// an open enum: non-empty and made only of ASCII letters, digits and underscores.
func ValidEnumVariant(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9', c == '_':
		default:
			return false
		}
	}
	return true
}

// ParseEnum checks s against the declared values. A known value is returned
// as is. An unknown value is an error in exhaustive mode; otherwise it is
// returned if it passes ValidEnumVariant.
func ParseEnum(s string, values []string, exhaustive bool) (string, error) {
	if slices.Contains(values, s) {
		return s, nil
	}
	if exhaustive {
		return "", &DecodeError{
			Kind:    KindUnknownVariant,
			Token:   s,
			Message: fmt.Sprintf("unknown variant `%s`, expected one of %s", s, quoteList(values)),
		}
	}
	if !ValidEnumVariant(s) {
		return "", &DecodeError{
			Kind:    KindInvalidValue,
			Token:   s,
			Message: fmt.Sprintf("invalid value: string %q, expected an enum variant", s),
		}
	}
	return s, nil
}

// DecodeEnum decodes a string and checks it with ParseEnum.
func DecodeEnum(d Decoder, values []string, exhaustive bool) (string, error) {
	s, err := d.DecodeString()
	if err != nil {
		return "", err
	}
	return ParseEnum(s, values, exhaustive)
}
