package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/erraggy/conjurego/wire"
)

// Content types used in Content-Type and Accept headers.
const (
	ContentTypeJSON        = "application/json"
	ContentTypeOctetStream = "application/octet-stream"
)

// Client sends one request and returns the response. Implementations own
// connection management, timeouts, cancellation and retries.
type Client interface {
	Request(ctx context.Context, method, path string, pathParams PathParams, queryParams QueryParams, headers http.Header, body Body) (Response, error)
}

// Response is a received response. The caller must close Body.
type Response interface {
	StatusCode() int
	Header() http.Header
	Body() io.ReadCloser
}

// Body is the body of a request.
type Body interface {
	// Reader returns the content, or nil for an empty body.
	Reader() io.Reader
	// Len returns the content length, or -1 when unknown.
	Len() int64
}

type emptyBody struct{}

func (emptyBody) Reader() io.Reader { return nil }
func (emptyBody) Len() int64        { return 0 }

type fixedBody struct {
	data []byte
}

func (b fixedBody) Reader() io.Reader { return bytes.NewReader(b.data) }
func (b fixedBody) Len() int64        { return int64(len(b.data)) }

type streamingBody struct {
	r io.Reader
}

func (b streamingBody) Reader() io.Reader { return b.r }
func (b streamingBody) Len() int64        { return -1 }

// EmptyBody returns a Body with no content.
func EmptyBody() Body { return emptyBody{} }

// FixedBody returns a Body holding data.
func FixedBody(data []byte) Body { return fixedBody{data: data} }

// StreamingBody returns a Body that streams r.
func StreamingBody(r io.Reader) Body { return streamingBody{r: r} }

// JSONBody encodes v with the Conjure JSON encoder.
func JSONBody(v any) (Body, error) {
	data, err := wire.Marshal(v)
	if err != nil {
		return nil, &InternalError{Op: "encode request body", Cause: err}
	}
	return FixedBody(data), nil
}

// IsEmpty reports whether b carries no content.
func IsEmpty(b Body) bool {
	_, ok := b.(emptyBody)
	return b == nil || ok
}

// PathParams maps path template placeholders to their plain-text values.
type PathParams map[string]string

// Insert sets the value of the named placeholder.
func (p PathParams) Insert(name, value string) {
	p[name] = value
}

// Expand substitutes the parameters into a path template, escaping each
// value as one path segment. A placeholder written {name*} may span
// segments and keeps its slashes.
func (p PathParams) Expand(template string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(template, '{')
		if start < 0 {
			b.WriteString(template)
			return b.String()
		}
		end := strings.IndexByte(template[start:], '}')
		if end < 0 {
			b.WriteString(template)
			return b.String()
		}
		end += start
		b.WriteString(template[:start])
		name := template[start+1 : end]
		if multi := strings.TrimSuffix(name, "*"); multi != name {
			segments := strings.Split(p[multi], "/")
			for i, s := range segments {
				segments[i] = url.PathEscape(s)
			}
			b.WriteString(strings.Join(segments, "/"))
		} else {
			b.WriteString(url.PathEscape(p[name]))
		}
		template = template[end+1:]
	}
}

// QueryParams holds query parameters. A key may repeat.
type QueryParams map[string][]string

// Insert adds one value under key.
func (q QueryParams) Insert(key, value string) {
	q[key] = append(q[key], value)
}

// InsertAll adds each value under key, one occurrence per value.
func (q QueryParams) InsertAll(key string, values ...string) {
	q[key] = append(q[key], values...)
}

// Encode returns the URL-encoded query string, sorted by key.
func (q QueryParams) Encode() string {
	return url.Values(q).Encode()
}

// AddHeader adds a header value. The name is stored lower-cased, which is how
// it is sent.
func AddHeader(h http.Header, name, value string) {
	key := strings.ToLower(name)
	h[key] = append(h[key], value)
}

// BearerToken is a credential sent in the Authorization header or a cookie.
type BearerToken string

// BearerAuth returns the Authorization header value for token.
func BearerAuth(token BearerToken) string {
	return "Bearer " + string(token)
}

// CookieAuth returns the Cookie header value carrying token in the named cookie.
func CookieAuth(cookieName string, token BearerToken) string {
	return cookieName + "=" + string(token)
}
