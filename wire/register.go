package wire

import (
	"fmt"
	"reflect"
	"sync"
)

// interfaceDecoders maps an interface reflect.Type → func(Decoder) (reflect.Value, error).
var interfaceDecoders sync.Map

// RegisterInterface makes values of the interface type I decodable by the
// reflection driver, typically for a union whose variants are distinct Go
// types. decode reads one value and returns the concrete variant. Encoding
// needs no registration: each variant encodes itself.
func RegisterInterface[I any](decode func(Decoder) (I, error)) {
	t := reflect.TypeFor[I]()
	if t.Kind() != reflect.Interface {
		panic(fmt.Sprintf("wire: RegisterInterface called with non-interface type %s", t))
	}
	interfaceDecoders.Store(t, func(d Decoder) (reflect.Value, error) {
		v, err := decode(d)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(&v).Elem(), nil
	})
}

func lookupInterface(t reflect.Type) (func(Decoder) (reflect.Value, error), bool) {
	fn, ok := interfaceDecoders.Load(t)
	if !ok {
		return nil, false
	}
	return fn.(func(Decoder) (reflect.Value, error)), true
}
