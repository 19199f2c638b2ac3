package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/conjurego/wire"
)

// fakeClient records the last request and replies with a canned response.
type fakeClient struct {
	method      string
	path        string
	pathParams  PathParams
	queryParams QueryParams
	headers     http.Header
	body        []byte

	status   int
	respBody string
	err      error
}

func (f *fakeClient) Request(_ context.Context, method, path string, pathParams PathParams, queryParams QueryParams, headers http.Header, body Body) (Response, error) {
	f.method, f.path = method, path
	f.pathParams, f.queryParams, f.headers = pathParams, queryParams, headers
	if r := body.Reader(); r != nil {
		f.body, _ = io.ReadAll(r)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &fakeResponse{status: f.status, body: io.NopCloser(strings.NewReader(f.respBody))}, nil
}

type fakeResponse struct {
	status int
	body   io.ReadCloser
}

func (r *fakeResponse) StatusCode() int     { return r.status }
func (r *fakeResponse) Header() http.Header { return http.Header{} }
func (r *fakeResponse) Body() io.ReadCloser { return r.body }

func TestPathParamsExpand(t *testing.T) {
	tests := []struct {
		name     string
		template string
		params   PathParams
		want     string
	}{
		{"no placeholders", "/things", nil, "/things"},
		{"single", "/things/{id}", PathParams{"id": "abc"}, "/things/abc"},
		{"escapes segment", "/things/{id}", PathParams{"id": "a/b c"}, "/things/a%2Fb%20c"},
		{"multi segment keeps slashes", "/files/{path*}", PathParams{"path": "a/b c/d"}, "/files/a/b%20c/d"},
		{"two placeholders", "/a/{x}/b/{y}", PathParams{"x": "1", "y": "2"}, "/a/1/b/2"},
		{"unterminated", "/a/{x", PathParams{"x": "1"}, "/a/{x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Expand(tt.template))
		})
	}
}

func TestQueryParams(t *testing.T) {
	q := QueryParams{}
	q.Insert("limit", "10")
	q.InsertAll("tag", "a", "b")
	q.Insert("tag", "c")
	assert.Equal(t, []string{"a", "b", "c"}, q["tag"])
	assert.Equal(t, "limit=10&tag=a&tag=b&tag=c", q.Encode())
	assert.Empty(t, QueryParams{}.Encode())
}

func TestAddHeaderLowercases(t *testing.T) {
	h := http.Header{}
	AddHeader(h, "X-Trace-Id", "t1")
	AddHeader(h, "X-Labels", "a")
	AddHeader(h, "x-labels", "b")
	assert.Equal(t, []string{"t1"}, h["x-trace-id"])
	assert.Equal(t, []string{"a", "b"}, h["x-labels"])
	assert.NotContains(t, h, "X-Trace-Id")
}

func TestAuthValues(t *testing.T) {
	assert.Equal(t, "Bearer tok", BearerAuth("tok"))
	assert.Equal(t, "SESSION=tok", CookieAuth("SESSION", "tok"))
}

func TestBodies(t *testing.T) {
	assert.True(t, IsEmpty(EmptyBody()))
	assert.True(t, IsEmpty(nil))
	assert.Nil(t, EmptyBody().Reader())

	fixed := FixedBody([]byte("abc"))
	assert.False(t, IsEmpty(fixed))
	assert.Equal(t, int64(3), fixed.Len())

	stream := StreamingBody(strings.NewReader("xyz"))
	assert.Equal(t, int64(-1), stream.Len())

	body, err := JSONBody(map[string]float64{"w": math.Inf(1)})
	require.NoError(t, err)
	data, _ := io.ReadAll(body.Reader())
	assert.JSONEq(t, `{"w":"Infinity"}`, string(data))

	_, err = JSONBody(make(chan int))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestToPlain(t *testing.T) {
	id := uuid.MustParse("6f1c2b4e-8f0a-4d4c-9d2a-0c1e2f3a4b5c")
	ts := time.Date(2024, 1, 2, 3, 4, 5, 600, time.UTC)
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "hi", "hi"},
		{"bearer", BearerToken("tok"), "tok"},
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"int8", int8(-128), "-128"},
		{"int16", int16(300), "300"},
		{"uint", uint(7), "7"},
		{"uint8", uint8(255), "255"},
		{"uint16", uint16(65535), "65535"},
		{"uint32", uint32(4000000000), "4000000000"},
		{"uint64", uint64(math.MaxUint64), "18446744073709551615"},
		{"float", 1.5, "1.5"},
		{"nan", math.NaN(), "NaN"},
		{"inf", math.Inf(1), "Infinity"},
		{"neg inf", math.Inf(-1), "-Infinity"},
		{"uuid", id, id.String()},
		{"time", ts, "2024-01-02T03:04:05.0000006Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPlain(tt.in))
		})
	}
}

func TestDoSuccess(t *testing.T) {
	fc := &fakeClient{status: http.StatusOK, respBody: `{"name":"x"}`}
	resp, err := Do(context.Background(), fc, http.MethodGet, "/things/{id}",
		PathParams{"id": "1"}, QueryParams{}, http.Header{}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, fc.method)
	assert.Equal(t, "/things/{id}", fc.path)

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, DecodeJSON(resp, &out))
	assert.Equal(t, "x", out.Name)
}

func TestDoServiceError(t *testing.T) {
	fc := &fakeClient{
		status:   http.StatusNotFound,
		respBody: `{"errorCode":"NOT_FOUND","errorName":"Thing:NotFound","errorInstanceId":"abc","parameters":{}}`,
	}
	_, err := Do(context.Background(), fc, http.MethodGet, "/things", nil, nil, http.Header{}, EmptyBody())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrService)

	var serr *ServiceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
	assert.Equal(t, "NOT_FOUND", serr.ErrorCode)
	assert.Equal(t, "Thing:NotFound", serr.ErrorName)
	assert.Equal(t, "abc", serr.ErrorInstanceID)
	assert.Contains(t, serr.Error(), "Thing:NotFound (NOT_FOUND)")
}

func TestDoServiceErrorNonJSONBody(t *testing.T) {
	fc := &fakeClient{status: http.StatusInternalServerError, respBody: "boom"}
	_, err := Do(context.Background(), fc, http.MethodGet, "/x", nil, nil, http.Header{}, nil)
	var serr *ServiceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, []byte("boom"), serr.Body)
	assert.Empty(t, serr.ErrorCode)
	assert.Equal(t, "service error: status 500", serr.Error())
}

func TestDoTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	fc := &fakeClient{err: cause}
	_, err := Do(context.Background(), fc, http.MethodPost, "/x", nil, nil, http.Header{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "POST /x")

	already := &InternalError{Op: "encode", Cause: cause}
	fc.err = already
	_, err = Do(context.Background(), fc, http.MethodPost, "/x", nil, nil, http.Header{}, nil)
	assert.Same(t, already, err)
}

func TestDecodeJSONFailure(t *testing.T) {
	resp := &fakeResponse{status: 200, body: io.NopCloser(strings.NewReader(`{"name":1}`))}
	var out struct {
		Name string `json:"name"`
	}
	err := DecodeJSON(resp, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, wire.ErrDecode)

	resp = &fakeResponse{status: 200, body: io.NopCloser(strings.NewReader(`{"name":"a","extra":1}`))}
	err = DecodeJSON(resp, &out)
	var derr *wire.DecodeError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, wire.KindUnknownField, derr.Kind)
}

func TestIsNoContent(t *testing.T) {
	assert.True(t, IsNoContent(&fakeResponse{status: http.StatusNoContent}))
	assert.False(t, IsNoContent(&fakeResponse{status: http.StatusOK}))
}

func TestHTTPClientRequest(t *testing.T) {
	var got *http.Request
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", ContentTypeJSON)
		_, _ = w.Write([]byte(`"ok"`))
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL+"/api/", WithUserAgent("test-agent/1"))
	require.NoError(t, err)

	headers := http.Header{}
	AddHeader(headers, "Authorization", BearerAuth("tok"))
	AddHeader(headers, "Content-Type", ContentTypeJSON)
	AddHeader(headers, "X-Labels", "a")
	AddHeader(headers, "X-Labels", "b")
	q := QueryParams{}
	q.InsertAll("tag", "x", "y")

	resp, err := Do(context.Background(), c, http.MethodPost, "/things/{id}",
		PathParams{"id": "a b"}, q, headers, FixedBody([]byte(`{"n":1}`)))
	require.NoError(t, err)

	var out string
	require.NoError(t, DecodeJSON(resp, &out))
	assert.Equal(t, "ok", out)

	require.NotNil(t, got)
	assert.Equal(t, "/api/things/a%20b", got.URL.EscapedPath())
	assert.Equal(t, []string{"x", "y"}, got.URL.Query()["tag"])
	assert.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
	assert.Equal(t, []string{"a", "b"}, got.Header.Values("X-Labels"))
	assert.Equal(t, "test-agent/1", got.Header.Get("User-Agent"))
	assert.Equal(t, `{"n":1}`, string(gotBody))
}

func TestHTTPClientGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept-Encoding"), "gzip")
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, _ = zw.Write([]byte(`{"name":"zipped"}`))
		_ = zw.Close()
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL)
	require.NoError(t, err)
	resp, err := Do(context.Background(), c, http.MethodGet, "/", nil, nil, http.Header{}, nil)
	require.NoError(t, err)
	assert.Empty(t, resp.Header().Get("Content-Encoding"))

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, DecodeJSON(resp, &out))
	assert.Equal(t, "zipped", out.Name)
}

func TestHTTPClientNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL)
	require.NoError(t, err)
	resp, err := Do(context.Background(), c, http.MethodDelete, "/x", nil, nil, http.Header{}, nil)
	require.NoError(t, err)
	assert.True(t, IsNoContent(resp))
	DiscardBody(resp)
}

func TestHTTPClientServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"errorCode":"PERMISSION_DENIED","errorName":"Default:PermissionDenied"}`))
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL)
	require.NoError(t, err)
	_, err = Do(context.Background(), c, http.MethodGet, "/x", nil, nil, http.Header{}, nil)
	var serr *ServiceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusForbidden, serr.StatusCode)
	assert.Equal(t, "PERMISSION_DENIED", serr.ErrorCode)
}

func TestHTTPClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url)
	require.NoError(t, err)
	_, err = Do(context.Background(), c, http.MethodGet, "/x", nil, nil, http.Header{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestHTTPClientRequestEditor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "yes", r.Header.Get("X-Edited"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL, WithRequestEditor(func(_ context.Context, req *http.Request) error {
		req.Header.Set("X-Edited", "yes")
		return nil
	}))
	require.NoError(t, err)
	_, err = Do(context.Background(), c, http.MethodGet, "/", nil, nil, http.Header{}, nil)
	require.NoError(t, err)

	failing, err := NewHTTPClient(srv.URL, WithRequestEditor(func(context.Context, *http.Request) error {
		return errors.New("no")
	}))
	require.NoError(t, err)
	_, err = Do(context.Background(), failing, http.MethodGet, "/", nil, nil, http.Header{}, nil)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestNewHTTPClientErrors(t *testing.T) {
	_, err := NewHTTPClient("not a url")
	assert.Error(t, err)
	_, err = NewHTTPClient("/relative")
	assert.Error(t, err)
	_, err = NewHTTPClient("http://localhost", WithHTTPClient(nil))
	assert.Error(t, err)
}
