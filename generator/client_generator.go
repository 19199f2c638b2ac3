package generator

import (
	"fmt"
	"strings"

	"github.com/erraggy/conjurego/definition"
	"github.com/erraggy/conjurego/internal/issues"
	"github.com/erraggy/conjurego/internal/naming"
)

// httpMethodConstants maps Conjure methods to net/http constants.
var httpMethodConstants = map[definition.HTTPMethod]string{
	definition.MethodGet:    "http.MethodGet",
	definition.MethodPost:   "http.MethodPost",
	definition.MethodPut:    "http.MethodPut",
	definition.MethodDelete: "http.MethodDelete",
}

// endpointPlan is everything needed to write one endpoint method.
type endpointPlan struct {
	ep         definition.EndpointDefinition
	methodName string
	authParam  string
	params     []argPlan
	body       *argPlan
	returns    returnKind
	returnType string
}

// argPlan is one argument of an endpoint method.
type argPlan struct {
	arg    definition.ArgumentDefinition
	param  string
	goType string
	binary bool
}

// generateClients writes one <service>_client.go file per service.
func (cg *codeGenerator) generateClients() error {
	fileNames := make(nameSet)
	ifaces := make(nameSet)
	for _, goName := range cg.names {
		ifaces[goName] = true
	}
	for i, svc := range cg.def.Services {
		path := issues.Index("services", i)
		fileName := fileNames.claim(naming.ToSnakeCase(svc.ServiceName.Name)+"_client") + ".go"
		iface := ifaces.claim(toTypeName(svc.ServiceName.Name) + "Client")
		cg.serviceNames = append(cg.serviceNames, iface)
		if err := cg.generateClient(path, fileName, iface, svc); err != nil {
			return err
		}
		cg.result.GeneratedServices++
	}
	return nil
}

func (cg *codeGenerator) generateClient(path, fileName, iface string, svc definition.ServiceDefinition) error {
	f := newGoFile(fileName, cg.result.PackageName, len(svc.Endpoints))
	f.use("context")
	f.use("net/http")
	f.use(importClient)

	impl := unexported(iface)

	methods := make(nameSet)
	plans := make([]*endpointPlan, 0, len(svc.Endpoints))
	for j, ep := range svc.Endpoints {
		epPath := issues.FormatPath(path, issues.Index("endpoints", j))
		plan := cg.planEndpoint(f, epPath, svc, ep)
		plan.methodName = methods.claim(toTypeName(ep.EndpointName))
		plans = append(plans, plan)
	}

	writeDoc(f, "", deref(svc.Docs))
	f.printf("type %s interface {\n", iface)
	for _, p := range plans {
		doc := deref(p.ep.Docs)
		writeDoc(f, "\t", doc)
		writeDeprecated(f, "\t", doc != "", p.ep.Deprecated)
		f.printf("\t%s%s\n", p.methodName, cg.signature(p))
	}
	f.println("}")
	f.println("")

	f.printf("type %s struct {\n\ttransport client.Client\n}\n\n", impl)
	f.printf("// New%s returns a %s that sends requests through c.\n", iface, iface)
	f.printf("func New%s(c client.Client) %s {\n\treturn &%s{transport: c}\n}\n\n", iface, iface, impl)

	for _, p := range plans {
		cg.writeEndpoint(f, impl, p)
		cg.result.GeneratedEndpoints++
	}
	return cg.emit(f)
}

// planEndpoint works out parameter names and types. Explicit arguments stay
// in the method signature but are never put on the wire.
func (cg *codeGenerator) planEndpoint(f *goFile, path string, svc definition.ServiceDefinition, ep definition.EndpointDefinition) *endpointPlan {
	for k, arg := range ep.Args {
		if _, ok := arg.ParamType.(definition.ExplicitParameterType); ok {
			argPath := issues.FormatPath(path, issues.Index("args", k))
			cg.addEndpointIssue(argPath, svc, ep,
				fmt.Sprintf("argument %s has an explicit parameter type; it is accepted by the client method but not sent", arg.ArgName),
				SeverityInfo)
		}
	}
	if ep.Deprecated != nil {
		cg.addEndpointIssue(path, svc, ep, "endpoint is deprecated", SeverityInfo)
	}
	if len(ep.Markers) > 0 {
		cg.addEndpointIssue(path, svc, ep, "endpoint markers are not represented in generated code", SeverityInfo)
	}

	plan := &endpointPlan{ep: ep, returns: cg.classifyReturn(ep.Returns)}
	used := make(nameSet)
	switch ep.Auth.(type) {
	case definition.HeaderAuthType:
		plan.authParam = used.claim("authHeader")
	case definition.CookieAuthType:
		plan.authParam = used.claim("cookieToken")
	}

	for _, arg := range ep.Args {
		ap := argPlan{arg: arg, param: used.claim(toParamName(arg.ArgName))}
		if _, isBody := arg.ParamType.(definition.BodyParameterType); isBody && cg.idx.IsBinary(arg.Type) {
			ap.binary = true
			ap.goType = "io.Reader"
			f.use("io")
		} else {
			ap.goType = cg.goType(f, arg.Type)
		}
		plan.params = append(plan.params, ap)
	}
	for i := range plan.params {
		if _, isBody := plan.params[i].arg.ParamType.(definition.BodyParameterType); isBody {
			plan.body = &plan.params[i]
		}
	}

	switch plan.returns {
	case returnJSON:
		plan.returnType = cg.goType(f, ep.Returns)
	case returnBinary, returnOptionalBinary:
		plan.returnType = "io.ReadCloser"
		f.use("io")
	}
	return plan
}

// signature returns the parameter and result lists of an endpoint method.
func (cg *codeGenerator) signature(p *endpointPlan) string {
	params := []string{"ctx context.Context"}
	if p.authParam != "" {
		params = append(params, p.authParam+" client.BearerToken")
	}
	for _, a := range p.params {
		params = append(params, a.param+" "+a.goType)
	}
	results := "error"
	if p.returns != returnVoid {
		results = "(" + p.returnType + ", error)"
	}
	return "(" + strings.Join(params, ", ") + ") " + results
}

func (cg *codeGenerator) writeEndpoint(f *goFile, impl string, p *endpointPlan) {
	ep := p.ep
	f.printf("func (c *%s) %s%s {\n", impl, p.methodName, cg.signature(p))

	// zero is what error paths return alongside the error.
	zero := ""
	switch p.returns {
	case returnJSON:
		f.printf("\tvar out %s\n", p.returnType)
		zero = "out, "
	case returnBinary, returnOptionalBinary:
		zero = "nil, "
	}

	// Body.
	switch {
	case p.body == nil:
		f.println("\tbody := client.EmptyBody()")
	case p.body.binary:
		f.printf("\tbody := client.StreamingBody(%s)\n", p.body.param)
	default:
		f.printf("\tbody, err := client.JSONBody(%s)\n", p.body.param)
		f.printf("\tif err != nil {\n\t\treturn %serr\n\t}\n", zero)
	}

	// Path parameters.
	f.println("\tpathParams := client.PathParams{}")
	for _, a := range p.params {
		if _, ok := a.arg.ParamType.(definition.PathParameterType); ok {
			cg.writePlain(f, "\t", a.param, a.arg.Type, 0, func(expr string) string {
				return fmt.Sprintf("pathParams.Insert(%q, %s)", a.arg.ArgName, expr)
			})
		}
	}

	// Query parameters.
	f.println("\tqueryParams := client.QueryParams{}")
	for _, a := range p.params {
		if q, ok := a.arg.ParamType.(definition.QueryParameterType); ok {
			cg.writePlain(f, "\t", a.param, a.arg.Type, 0, func(expr string) string {
				return fmt.Sprintf("queryParams.Insert(%q, %s)", q.ParamID, expr)
			})
		}
	}

	// Headers: auth, Content-Type, Accept, then header arguments.
	f.println("\theaders := http.Header{}")
	switch auth := ep.Auth.(type) {
	case definition.HeaderAuthType:
		f.printf("\tclient.AddHeader(headers, \"Authorization\", client.BearerAuth(%s))\n", p.authParam)
	case definition.CookieAuthType:
		f.printf("\tclient.AddHeader(headers, \"Cookie\", client.CookieAuth(%q, %s))\n", auth.CookieName, p.authParam)
	}
	if p.body != nil {
		contentType := "client.ContentTypeJSON"
		if p.body.binary {
			contentType = "client.ContentTypeOctetStream"
		}
		f.printf("\tclient.AddHeader(headers, \"Content-Type\", %s)\n", contentType)
	}
	switch p.returns {
	case returnJSON:
		f.println("\tclient.AddHeader(headers, \"Accept\", client.ContentTypeJSON)")
	case returnBinary, returnOptionalBinary:
		f.println("\tclient.AddHeader(headers, \"Accept\", client.ContentTypeOctetStream)")
	}
	for _, a := range p.params {
		if h, ok := a.arg.ParamType.(definition.HeaderParameterType); ok {
			cg.writePlain(f, "\t", a.param, a.arg.Type, 0, func(expr string) string {
				return fmt.Sprintf("client.AddHeader(headers, %q, %s)", h.ParamID, expr)
			})
		}
	}

	// Dispatch.
	f.printf("\tresp, err := client.Do(ctx, c.transport, %s, %q, pathParams, queryParams, headers, body)\n",
		httpMethodConstants[ep.HTTPMethod], ep.HTTPPath)
	f.printf("\tif err != nil {\n\t\treturn %serr\n\t}\n", zero)

	// Response.
	switch p.returns {
	case returnVoid:
		f.println("\tclient.DiscardBody(resp)")
		f.println("\treturn nil")
	case returnBinary:
		f.println("\treturn resp.Body(), nil")
	case returnOptionalBinary:
		f.println("\tif client.IsNoContent(resp) {\n\t\tclient.DiscardBody(resp)\n\t\treturn nil, nil\n\t}")
		f.println("\treturn resp.Body(), nil")
	case returnJSON:
		if cg.idx.IsIterable(ep.Returns) {
			f.println("\tif client.IsNoContent(resp) {\n\t\tclient.DiscardBody(resp)\n\t\treturn out, nil\n\t}")
		}
		f.println("\tif err := client.DecodeJSON(resp, &out); err != nil {\n\t\treturn out, err\n\t}")
		f.println("\treturn out, nil")
	}
	f.println("}")
	f.println("")
}

// writePlain writes code rendering expr of type t as plain text through
// emit. Optional values contribute only when present; list and set values
// contribute one entry per element.
func (cg *codeGenerator) writePlain(f *goFile, indent, expr string, t definition.Type, depth int, emit func(string) string) {
	switch v := cg.idx.Resolve(t).(type) {
	case definition.OptionalType:
		f.printf("%sif %s != nil {\n", indent, expr)
		inner := expr
		if !cg.isAny(v.ItemType) {
			inner = "*" + expr
		}
		cg.writePlain(f, indent+"\t", inner, v.ItemType, depth, emit)
		f.printf("%s}\n", indent)
	case definition.ListType:
		cg.writeRange(f, indent, expr, v.ItemType, depth, emit)
	case definition.SetType:
		cg.writeRange(f, indent, expr, v.ItemType, depth, emit)
	default:
		f.printf("%s%s\n", indent, emit("client.ToPlain("+expr+")"))
	}
}

func (cg *codeGenerator) writeRange(f *goFile, indent, expr string, item definition.Type, depth int, emit func(string) string) {
	elem := "v"
	if depth > 0 {
		elem = fmt.Sprintf("v%d", depth)
	}
	f.printf("%sfor _, %s := range %s {\n", indent, elem, expr)
	cg.writePlain(f, indent+"\t", elem, item, depth+1, emit)
	f.printf("%s}\n", indent)
}
