package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/conjurego/definition"
)

type inspectInput struct {
	Definition definitionInput `json:"definition"          jsonschema:"The Conjure IR definition to inspect"`
	Kind       string          `json:"kind,omitempty"      jsonschema:"Only list types of this kind: object, enum, union or alias"`
	Service    string          `json:"service,omitempty"   jsonschema:"Only list endpoints of this service (glob)"`
	Method     string          `json:"method,omitempty"    jsonschema:"Only list endpoints with this HTTP method"`
	Name       string          `json:"name,omitempty"      jsonschema:"Only list types and endpoints whose name matches (glob)"`
	GroupBy    string          `json:"group_by,omitempty"  jsonschema:"Group types by kind or package, or endpoints by service or method, and return counts"`
	Offset     int             `json:"offset,omitempty"    jsonschema:"Skip the first N types and endpoints (for pagination)"`
	Limit      int             `json:"limit,omitempty"     jsonschema:"Maximum number of types and endpoints to return (default 100)"`
}

type typeSummary struct {
	Name    string `json:"name"`
	Package string `json:"package"`
	Kind    string `json:"kind"`
	Members int    `json:"members"`
}

type endpointSummary struct {
	Service    string `json:"service"`
	Name       string `json:"name"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	Auth       string `json:"auth,omitempty"`
	Args       int    `json:"args"`
	Deprecated bool   `json:"deprecated,omitempty"`
}

type inspectOutput struct {
	TotalTypes     int               `json:"total_types"`
	TotalEndpoints int               `json:"total_endpoints"`
	Returned       int               `json:"returned"`
	Types          []typeSummary     `json:"types,omitempty"`
	Endpoints      []endpointSummary `json:"endpoints,omitempty"`
	TypeGroups     []groupCount      `json:"type_groups,omitempty"`
	EndpointGroups []groupCount      `json:"endpoint_groups,omitempty"`
}

var inspectGroupBy = []string{"kind", "package", "service", "method"}

func handleInspect(_ context.Context, _ *mcp.CallToolRequest, input inspectInput) (*mcp.CallToolResult, inspectOutput, error) {
	if err := validateGroupBy(input.GroupBy, inspectGroupBy); err != nil {
		return errResult(err), inspectOutput{}, nil
	}
	for _, pattern := range []string{input.Name, input.Service} {
		if err := validateGlobPattern(pattern); err != nil {
			return errResult(err), inspectOutput{}, nil
		}
	}

	def, err := input.Definition.resolve()
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	types := makeSlice[typeSummary](len(def.Types))
	for _, td := range def.Types {
		s := summarizeType(td)
		if input.Kind != "" && !strings.EqualFold(input.Kind, s.Kind) {
			continue
		}
		if !matchGlob(input.Name, s.Name) {
			continue
		}
		types = append(types, s)
	}

	var endpoints []endpointSummary
	for _, svc := range def.Services {
		if !matchGlob(input.Service, svc.ServiceName.Name) {
			continue
		}
		for _, ep := range svc.Endpoints {
			if input.Method != "" && !strings.EqualFold(input.Method, string(ep.HTTPMethod)) {
				continue
			}
			if !matchGlob(input.Name, ep.EndpointName) {
				continue
			}
			endpoints = append(endpoints, summarizeEndpoint(svc, ep))
		}
	}

	output := inspectOutput{
		TotalTypes:     len(types),
		TotalEndpoints: len(endpoints),
	}

	switch strings.ToLower(input.GroupBy) {
	case "kind":
		output.TypeGroups = groupAndSort(types, func(s typeSummary) string { return s.Kind })
	case "package":
		output.TypeGroups = groupAndSort(types, func(s typeSummary) string { return s.Package })
	case "service":
		output.EndpointGroups = groupAndSort(endpoints, func(s endpointSummary) string { return s.Service })
	case "method":
		output.EndpointGroups = groupAndSort(endpoints, func(s endpointSummary) string { return s.Method })
	default:
		output.Types = paginate(types, input.Offset, input.Limit)
		output.Endpoints = paginate(endpoints, input.Offset, input.Limit)
		output.Returned = len(output.Types) + len(output.Endpoints)
	}

	return nil, output, nil
}

func summarizeType(td definition.TypeDefinition) typeSummary {
	s := typeSummary{Name: td.Name().Name, Package: td.Name().Package}
	switch v := td.(type) {
	case definition.ObjectDefinition:
		s.Kind, s.Members = "object", len(v.Fields)
	case definition.EnumDefinition:
		s.Kind, s.Members = "enum", len(v.Values)
	case definition.UnionDefinition:
		s.Kind, s.Members = "union", len(v.Union)
	case definition.AliasDefinition:
		s.Kind = "alias"
	}
	return s
}

func summarizeEndpoint(svc definition.ServiceDefinition, ep definition.EndpointDefinition) endpointSummary {
	s := endpointSummary{
		Service:    svc.ServiceName.Name,
		Name:       ep.EndpointName,
		Method:     string(ep.HTTPMethod),
		Path:       ep.HTTPPath,
		Args:       len(ep.Args),
		Deprecated: ep.Deprecated != nil,
	}
	switch a := ep.Auth.(type) {
	case definition.HeaderAuthType:
		s.Auth = "header"
	case definition.CookieAuthType:
		s.Auth = "cookie:" + a.CookieName
	}
	return s
}
