// Package wire implements the Conjure JSON wire format on top of the standard
// library's streaming JSON decoder.
//
// The package does not tokenize JSON itself. A standard decoder reads tokens
// from an encoding/json.Decoder and exposes them through the [Decoder]
// interface, one method per value shape (scalar, sequence, map, record, any).
// [Strict] wraps any Decoder and redirects a handful of decode decisions to
// enforce Conjure conventions, re-wrapping every nested access it hands out so
// the rules hold at every depth:
//
//   - floats may also be the strings "NaN", "Infinity" and "-Infinity"
//   - byte buffers are base64 strings
//   - records reject keys outside their known field set (maps do not)
//
// # Decoding
//
//	var thing Thing
//	if err := wire.Unmarshal(data, &thing); err != nil {
//	    var derr *wire.DecodeError
//	    if errors.As(err, &derr) {
//	        fmt.Println(derr.Kind, derr.Field)
//	    }
//	}
//
// Unmarshal, UnmarshalString and Decode consume the entire input; anything but
// whitespace after the value is an error.
//
// Strings are handed from the underlying decoder to the destination value as
// is. No wrapper layer copies them; callers that need data to outlive a
// caller-owned buffer copy it at their own boundary.
//
// # Encoding
//
// Marshal mirrors decoding: finite floats are numeric tokens and non-finite
// floats are the special strings, byte buffers are base64, and record fields
// tagged omitempty are skipped when they hold an absent optional or an empty
// collection.
//
// # Unions and enums
//
// DecodeUnion and EncodeUnion implement the two-entry tagged union encoding
// ({"type": name, name: payload}) and accept either entry order on input.
// DecodeEnum and ParseEnum implement closed and open string enums.
package wire
