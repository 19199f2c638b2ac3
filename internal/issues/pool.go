package issues

import (
	"strconv"
	"strings"
	"sync"
)

var stringBuilderPool = sync.Pool{
	New: func() any {
		return new(strings.Builder)
	},
}

// getStringBuilder retrieves a builder from the pool and resets it.
func getStringBuilder() *strings.Builder {
	sb := stringBuilderPool.Get().(*strings.Builder)
	sb.Reset()
	return sb
}

// putStringBuilder returns a builder to the pool.
func putStringBuilder(sb *strings.Builder) {
	if sb == nil {
		return
	}
	stringBuilderPool.Put(sb)
}

// FormatPath joins path segments with dots.
func FormatPath(segments ...string) string {
	if len(segments) == 0 {
		return ""
	}
	if len(segments) == 1 {
		return segments[0]
	}

	sb := getStringBuilder()
	for i, seg := range segments {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg)
	}
	result := sb.String()
	putStringBuilder(sb)
	return result
}

// Index formats a list element segment such as "endpoints[2]".
func Index(name string, i int) string {
	sb := getStringBuilder()
	sb.WriteString(name)
	sb.WriteByte('[')
	sb.WriteString(strconv.Itoa(i))
	sb.WriteByte(']')
	result := sb.String()
	putStringBuilder(sb)
	return result
}
