package wire

import (
	"reflect"
	"strings"
	"sync"
)

// structInfo describes how a Go struct maps onto a Conjure record.
type structInfo struct {
	name   string
	fields []fieldInfo
	names  []string       // wire names in declaration order
	byName map[string]int // wire name → index into fields
}

// fieldInfo describes one exported struct field.
type fieldInfo struct {
	name      string
	index     []int
	omitEmpty bool
	required  bool
}

// structCache maps reflect.Type → *structInfo. Entries are immutable once stored.
var structCache sync.Map

// cachedStruct returns the record layout for t, building it on first use.
func cachedStruct(t reflect.Type) *structInfo {
	if info, ok := structCache.Load(t); ok {
		return info.(*structInfo)
	}
	info, _ := structCache.LoadOrStore(t, buildStructInfo(t))
	return info.(*structInfo)
}

func buildStructInfo(t reflect.Type) *structInfo {
	info := &structInfo{name: t.Name(), byName: make(map[string]int)}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			if sf.Anonymous {
				continue
			}
			name = sf.Name
		}
		if _, dup := info.byName[name]; dup {
			continue
		}
		omitEmpty := hasOption(opts, "omitempty")
		info.byName[name] = len(info.fields)
		info.names = append(info.names, name)
		info.fields = append(info.fields, fieldInfo{
			name:      name,
			index:     sf.Index,
			omitEmpty: omitEmpty,
			required:  isRequired(sf.Type, omitEmpty),
		})
	}
	return info
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}

// isRequired reports whether a record field of type t must be present on the
// wire. Optionals (pointers) and collections default when absent; byte
// buffers are binary values and stay required. An interface field is optional
// only when tagged omitempty.
func isRequired(t reflect.Type, omitEmpty bool) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Map:
		return false
	case reflect.Slice:
		return t.Elem().Kind() == reflect.Uint8
	case reflect.Interface:
		return !omitEmpty
	default:
		return true
	}
}
