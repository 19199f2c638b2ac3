// This file implements name conversion from Conjure identifiers to Go
// identifiers, including reserved word escaping and collision handling.

package generator

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"

	"github.com/erraggy/conjurego/internal/naming"
)

// methodLocals are identifiers used inside generated endpoint methods. An
// argument with one of these names is renamed so it does not shadow them.
var methodLocals = map[string]bool{
	"c": true, "v": true, "ctx": true, "out": true, "resp": true, "err": true, "body": true,
	"pathParams": true, "queryParams": true, "headers": true,
	"client": true, "context": true, "http": true, "io": true, "time": true,
	"uuid": true, "wire": true,
}

// escapeReservedWord appends an underscore to Go keywords.
func escapeReservedWord(name string) string {
	if token.IsKeyword(name) {
		return name + "_"
	}
	return name
}

// toTypeName converts a Conjure name to an exported Go identifier.
func toTypeName(s string) string {
	name := naming.ToPascalCase(s)
	if name == "" {
		return "Type"
	}
	if !unicode.IsLetter([]rune(name)[0]) {
		name = "T" + name
	}
	return name
}

// toFieldName converts a Conjure field or variant name to an exported Go identifier.
func toFieldName(s string) string {
	name := naming.ToPascalCase(s)
	if name == "" {
		return "Field"
	}
	if !unicode.IsLetter([]rune(name)[0]) {
		name = "F" + name
	}
	return name
}

// toParamName converts a Conjure argument name to a Go parameter name that
// does not collide with keywords or the locals of generated methods.
func toParamName(s string) string {
	name := naming.ToCamelCase(s)
	if name == "" {
		name = "arg"
	}
	if !unicode.IsLetter([]rune(name)[0]) {
		name = "arg" + name
	}
	if methodLocals[name] {
		return name + "Arg"
	}
	return escapeReservedWord(name)
}

// unexported lower-cases the first rune of an exported identifier,
// keeping a leading initialism together (e.g. "HTTPClient" -> "httpClient").
func unexported(name string) string {
	words := naming.Words(name)
	if len(words) == 0 {
		return name
	}
	first := words[0]
	return escapeReservedWord(strings.ToLower(first) + name[len(first):])
}

// nameSet hands out unique identifiers within one scope.
type nameSet map[string]bool

// claim returns name, or name with a numeric suffix when it is taken.
func (s nameSet) claim(name string) string {
	candidate := name
	for i := 2; s[candidate]; i++ {
		candidate = name + strconv.Itoa(i)
	}
	s[candidate] = true
	return candidate
}
