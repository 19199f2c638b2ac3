package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/conjurego/definition"
)

// methodBody returns the source of the named method on the generated client.
func methodBody(t *testing.T, src, impl, method string) string {
	t.Helper()
	start := strings.Index(src, "func (c *"+impl+") "+method+"(")
	require.GreaterOrEqual(t, start, 0, "method %s not generated", method)
	end := strings.Index(src[start:], "\n}\n")
	require.Positive(t, end)
	return src[start : start+end+3]
}

// assertOrder checks that each snippet appears in body after the previous one.
func assertOrder(t *testing.T, body string, snippets ...string) {
	t.Helper()
	pos := 0
	for _, s := range snippets {
		i := strings.Index(body[pos:], s)
		if !assert.GreaterOrEqual(t, i, 0, "%q missing or out of order", s) {
			return
		}
		pos += i + len(s)
	}
}

func clientSource(t *testing.T) string {
	t.Helper()
	return fileContent(t, generateFixture(t), "thing_service_client.go")
}

func TestGenerateClientInterface(t *testing.T) {
	src := clientSource(t)

	assert.Contains(t, src, "type ThingServiceClient interface {")
	assert.Contains(t, src, "\tGetThing(ctx context.Context, authHeader client.BearerToken, thingID ThingID) (Thing, error)\n")
	assert.Contains(t, src, "\tListThings(ctx context.Context, limit *int, tags []string, traceID *string) ([]Thing, error)\n")
	assert.Contains(t, src, "\t// Creates a thing.\n\tCreateThing(ctx context.Context, cookieToken client.BearerToken, thing Thing) (Thing, error)\n")
	assert.Contains(t, src, "\tUploadData(ctx context.Context, thingID ThingID, data io.Reader) error\n")
	assert.Contains(t, src, "\tDownloadData(ctx context.Context, thingID ThingID) (io.ReadCloser, error)\n")
	assert.Contains(t, src, "\tMaybeDownload(ctx context.Context, thingID ThingID) (io.ReadCloser, error)\n")
	assert.Contains(t, src, "\t// Deprecated: Things are forever.\n\tDeleteThing(ctx context.Context, thingID ThingID, labels []string) error\n")

	assert.Contains(t, src, "type thingServiceClient struct {\n\ttransport client.Client\n}")
	assert.Contains(t, src, "func NewThingServiceClient(c client.Client) ThingServiceClient {\n\treturn &thingServiceClient{transport: c}\n}")
}

func TestGenerateClientPathAndAuth(t *testing.T) {
	body := methodBody(t, clientSource(t), "thingServiceClient", "GetThing")

	assertOrder(t, body,
		"var out Thing",
		"body := client.EmptyBody()",
		"pathParams := client.PathParams{}",
		`pathParams.Insert("thingId", client.ToPlain(thingID))`,
		"queryParams := client.QueryParams{}",
		"headers := http.Header{}",
		`client.AddHeader(headers, "Authorization", client.BearerAuth(authHeader))`,
		`client.AddHeader(headers, "Accept", client.ContentTypeJSON)`,
		`resp, err := client.Do(ctx, c.transport, http.MethodGet, "/things/{thingId}", pathParams, queryParams, headers, body)`,
		"client.DecodeJSON(resp, &out)",
		"return out, nil",
	)
	assert.NotContains(t, body, "IsNoContent", "a required object return has no 204 path")
}

func TestGenerateClientQueryAndHeaders(t *testing.T) {
	body := methodBody(t, clientSource(t), "thingServiceClient", "ListThings")

	assert.Contains(t, body, "\tif limit != nil {\n\t\tqueryParams.Insert(\"limit\", client.ToPlain(*limit))\n\t}\n")
	assert.Contains(t, body, "\tfor _, v := range tags {\n\t\tqueryParams.Insert(\"tag\", client.ToPlain(v))\n\t}\n")
	assert.Contains(t, body, "\tif traceID != nil {\n\t\tclient.AddHeader(headers, \"X-Trace-Id\", client.ToPlain(*traceID))\n\t}\n")
	assertOrder(t, body,
		`client.AddHeader(headers, "Accept", client.ContentTypeJSON)`,
		`client.AddHeader(headers, "X-Trace-Id"`,
		"client.Do(",
		"if client.IsNoContent(resp) {\n\t\tclient.DiscardBody(resp)\n\t\treturn out, nil\n\t}",
		"client.DecodeJSON(resp, &out)",
	)
}

func TestGenerateClientBodies(t *testing.T) {
	src := clientSource(t)

	t.Run("json body with cookie auth", func(t *testing.T) {
		body := methodBody(t, src, "thingServiceClient", "CreateThing")
		assertOrder(t, body,
			"body, err := client.JSONBody(thing)",
			"if err != nil {\n\t\treturn out, err\n\t}",
			`client.AddHeader(headers, "Cookie", client.CookieAuth("SESSION", cookieToken))`,
			`client.AddHeader(headers, "Content-Type", client.ContentTypeJSON)`,
			`client.AddHeader(headers, "Accept", client.ContentTypeJSON)`,
			"http.MethodPost",
		)
	})

	t.Run("binary body", func(t *testing.T) {
		body := methodBody(t, src, "thingServiceClient", "UploadData")
		assertOrder(t, body,
			"body := client.StreamingBody(data)",
			`client.AddHeader(headers, "Content-Type", client.ContentTypeOctetStream)`,
			"http.MethodPut",
			"client.DiscardBody(resp)",
			"return nil",
		)
		assert.NotContains(t, body, `"Accept"`)
	})
}

func TestGenerateClientBinaryReturns(t *testing.T) {
	src := clientSource(t)

	t.Run("binary", func(t *testing.T) {
		body := methodBody(t, src, "thingServiceClient", "DownloadData")
		assertOrder(t, body,
			`client.AddHeader(headers, "Accept", client.ContentTypeOctetStream)`,
			"if err != nil {\n\t\treturn nil, err\n\t}",
			"return resp.Body(), nil",
		)
		assert.NotContains(t, body, "IsNoContent")
	})

	t.Run("optional binary", func(t *testing.T) {
		body := methodBody(t, src, "thingServiceClient", "MaybeDownload")
		assertOrder(t, body,
			`client.AddHeader(headers, "Accept", client.ContentTypeOctetStream)`,
			"if client.IsNoContent(resp) {\n\t\tclient.DiscardBody(resp)\n\t\treturn nil, nil\n\t}",
			"return resp.Body(), nil",
		)
	})
}

func TestGenerateClientVoidWithSetHeader(t *testing.T) {
	body := methodBody(t, clientSource(t), "thingServiceClient", "DeleteThing")

	assertOrder(t, body,
		"body := client.EmptyBody()",
		"\tfor _, v := range labels {\n\t\tclient.AddHeader(headers, \"X-Labels\", client.ToPlain(v))\n\t}\n",
		"http.MethodDelete",
		"if err != nil {\n\t\treturn err\n\t}",
		"client.DiscardBody(resp)",
		"return nil",
	)
}

func TestGenerateClientNestedIterables(t *testing.T) {
	def := &definition.ConjureDefinition{
		Version: 1,
		Services: []definition.ServiceDefinition{{
			ServiceName: definition.TypeName{Name: "SearchService", Package: "com.example"},
			Endpoints: []definition.EndpointDefinition{{
				EndpointName: "search",
				HTTPMethod:   definition.MethodGet,
				HTTPPath:     "/search",
				Args: []definition.ArgumentDefinition{
					{
						ArgName:   "filters",
						Type:      definition.Optional(definition.List(definition.PrimitiveString)),
						ParamType: definition.QueryParameterType{ParamID: "filter"},
					},
					{
						ArgName:   "body",
						Type:      definition.Optional(definition.PrimitiveAny),
						ParamType: definition.HeaderParameterType{ParamID: "X-Body"},
					},
					{
						ArgName:   "type",
						Type:      definition.PrimitiveString,
						ParamType: definition.QueryParameterType{ParamID: "type"},
					},
				},
				Returns: definition.Optional(definition.PrimitiveString),
			}},
		}},
	}
	result, err := GenerateWithOptions(WithDefinition(def), WithPackageName("search"))
	require.NoError(t, err)
	src := fileContent(t, result, "search_service_client.go")

	assert.Contains(t, src, "Search(ctx context.Context, filters *[]string, bodyArg any, type_ string) (*string, error)")
	assert.Contains(t, src, "\tif filters != nil {\n\t\tfor _, v := range *filters {\n\t\t\tqueryParams.Insert(\"filter\", client.ToPlain(v))\n\t\t}\n\t}\n")
	assert.Contains(t, src, "\tif bodyArg != nil {\n\t\tclient.AddHeader(headers, \"X-Body\", client.ToPlain(bodyArg))\n\t}\n")
	assert.Contains(t, src, `queryParams.Insert("type", client.ToPlain(type_))`)
	assert.Contains(t, src, "if client.IsNoContent(resp) {")
	assertParses(t, result)
}

func TestGenerateClientFileNames(t *testing.T) {
	def := &definition.ConjureDefinition{
		Version: 1,
		Services: []definition.ServiceDefinition{
			{ServiceName: definition.TypeName{Name: "HTTPProxy", Package: "com.example.a"}},
			{ServiceName: definition.TypeName{Name: "HttpProxy", Package: "com.example.b"}},
		},
	}
	result, err := GenerateWithOptions(WithDefinition(def), WithReadme(false))
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, "http_proxy_client.go", result.Files[0].Name)
	assert.Equal(t, "http_proxy_client2.go", result.Files[1].Name)
	assertParses(t, result)
}
