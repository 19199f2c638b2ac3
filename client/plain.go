package client

import (
	"encoding"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/erraggy/conjurego/wire"
)

// ToPlain renders a value in the plain-text form used for path, query and
// header parameters.
func ToPlain(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case BearerToken:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return plainFloat(x, 64)
	case float32:
		return plainFloat(float64(x), 32)
	case uuid.UUID:
		return x.String()
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case encoding.TextMarshaler:
		text, err := x.MarshalText()
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(text)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func plainFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return wire.NaN
	case math.IsInf(f, 1):
		return wire.PositiveInfinity
	case math.IsInf(f, -1):
		return wire.NegativeInfinity
	default:
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
}
