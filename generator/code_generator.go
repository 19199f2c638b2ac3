package generator

import (
	"github.com/erraggy/conjurego/definition"
	"github.com/erraggy/conjurego/internal/issues"
)

// codeGenerator holds the state of one generation run.
type codeGenerator struct {
	g      *Generator
	def    *definition.ConjureDefinition
	idx    *definition.Index
	result *GenerateResult
	log    definition.Logger

	// names maps each defined type to its Go identifier.
	names map[definition.TypeName]string
	// skipped holds types that could not be generated.
	skipped map[definition.TypeName]bool
	// serviceNames holds the client interface name of each service, in order.
	serviceNames []string
}

func newCodeGenerator(g *Generator, def *definition.ConjureDefinition, result *GenerateResult) *codeGenerator {
	cg := &codeGenerator{
		g:       g,
		def:     def,
		idx:     definition.NewIndex(def),
		result:  result,
		log:     g.logger(),
		names:   make(map[definition.TypeName]string),
		skipped: make(map[definition.TypeName]bool),
	}
	cg.assignTypeNames()
	return cg
}

// assignTypeNames gives every defined type a unique Go name. Types from
// different Conjure packages share one Go package, so a clash is resolved
// by prefixing the last package segment.
func (cg *codeGenerator) assignTypeNames() {
	used := make(nameSet)
	for i, td := range cg.def.Types {
		name := td.Name()
		goName := toTypeName(name.Name)
		if used[goName] {
			prefixed := toTypeName(lastSegment(name.Package) + name.Name)
			cg.addIssue(issues.Index("types", i), "type name "+goName+" is already taken; generated as "+prefixed, SeverityWarning)
			goName = prefixed
		}
		cg.names[name] = used.claim(goName)
	}
}

func lastSegment(pkg string) string {
	for i := len(pkg) - 1; i >= 0; i-- {
		if pkg[i] == '.' {
			return pkg[i+1:]
		}
	}
	return pkg
}

// typeName returns the Go identifier of a defined type.
func (cg *codeGenerator) typeName(name definition.TypeName) string {
	if goName, ok := cg.names[name]; ok {
		return goName
	}
	return toTypeName(name.Name)
}

func (cg *codeGenerator) addIssue(path, message string, severity Severity) {
	cg.result.Issues = append(cg.result.Issues, GenerateIssue{
		Path:     path,
		Message:  message,
		Severity: severity,
	})
}

func (cg *codeGenerator) addEndpointIssue(path string, svc definition.ServiceDefinition, ep definition.EndpointDefinition, message string, severity Severity) {
	cg.result.Issues = append(cg.result.Issues, GenerateIssue{
		Path:     path,
		Message:  message,
		Severity: severity,
		Endpoint: &issues.EndpointContext{
			Service:  svc.ServiceName.Name,
			Endpoint: ep.EndpointName,
			Method:   string(ep.HTTPMethod),
			HTTPPath: ep.HTTPPath,
		},
	})
}

// emit renders f and appends it to the result.
func (cg *codeGenerator) emit(f *goFile) error {
	content, err := f.render()
	if err != nil {
		return err
	}
	cg.addFile(f.name, content)
	return nil
}

func (cg *codeGenerator) addFile(name string, content []byte) {
	cg.result.Files = append(cg.result.Files, GeneratedFile{Name: name, Content: content})
	cg.log.Debug("generated file", "name", name, "bytes", len(content))
}
