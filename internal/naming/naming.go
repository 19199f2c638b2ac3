package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// initialisms are written in one case when they form a whole word.
var initialisms = map[string]bool{
	"API": true, "HTML": true, "HTTP": true, "HTTPS": true, "ID": true,
	"IP": true, "JSON": true, "RID": true, "SQL": true, "TLS": true,
	"URI": true, "URL": true, "UUID": true, "XML": true,
}

// Words splits s on separators and case boundaries.
// Example: "thingId" -> ["thing", "Id"]
// Example: "HTTPServer_v2" -> ["HTTP", "Server", "v2"]
// Example: "MAYBE_DOWNLOAD" -> ["MAYBE", "DOWNLOAD"]
func Words(s string) []string {
	var words []string
	runes := []rune(s)
	start := -1
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			if start >= 0 {
				words = append(words, string(runes[start:i]))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := runes[i-1]
		boundary := unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev))
		if !boundary && unicode.IsUpper(r) && unicode.IsUpper(prev) &&
			i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			boundary = true
		}
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	if start >= 0 {
		words = append(words, string(runes[start:]))
	}
	return words
}

// ToPascalCase converts a string to PascalCase.
// Example: "thingId" -> "ThingID"
// Example: "list_things" -> "ListThings"
func ToPascalCase(s string) string {
	titleCaser := cases.Title(language.English, cases.NoLower)
	var result strings.Builder
	result.Grow(len(s))
	for _, w := range Words(s) {
		result.WriteString(pascalWord(w, titleCaser))
	}
	return result.String()
}

// ToCamelCase converts a string to camelCase.
// Example: "ThingId" -> "thingID"
// Example: "ID" -> "id"
func ToCamelCase(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	titleCaser := cases.Title(language.English, cases.NoLower)
	var result strings.Builder
	result.Grow(len(s))
	result.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		result.WriteString(pascalWord(w, titleCaser))
	}
	return result.String()
}

// ToSnakeCase converts a string to snake_case.
// Example: "ThingService" -> "thing_service"
// Example: "HTTPServer" -> "http_server"
func ToSnakeCase(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// ToKebabCase converts a string to kebab-case.
// Example: "ThingService" -> "thing-service"
func ToKebabCase(s string) string {
	return strings.ReplaceAll(ToSnakeCase(s), "_", "-")
}

func pascalWord(w string, titleCaser cases.Caser) string {
	upper := strings.ToUpper(w)
	if initialisms[upper] {
		return upper
	}
	if upper == w {
		// UPPER_SNAKE words read as ordinary words.
		w = strings.ToLower(w)
	}
	return titleCaser.String(w)
}
