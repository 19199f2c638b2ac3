package definition

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/erraggy/conjurego/conjerrors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Parameter types without fields are zero values but still present.
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		return f.Type().Name()
	}, BodyParameterType{}, PathParameterType{}, ExplicitParameterType{})
	return v
}

// checkFields runs the struct tag rules on v and folds every failure into
// one ValidationError rooted at path.
func checkFields(path string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &conjerrors.ValidationError{Path: path, Cause: err}
	}
	verr := &conjerrors.ValidationError{Path: path}
	var problems []string
	for _, fe := range fieldErrs {
		field := fieldPath(fe.Namespace())
		if fe.Tag() == "required" {
			verr.Missing = append(verr.Missing, field)
			continue
		}
		problems = append(problems, field+" "+describeRule(fe))
	}
	verr.Message = strings.Join(problems, "; ")
	return verr
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "startswith":
		return fmt.Sprintf("must start with %q", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// NewServiceDefinition checks that every required field of s is set and
// returns it.
func NewServiceDefinition(s ServiceDefinition) (ServiceDefinition, error) {
	if err := checkFields("ServiceDefinition", s); err != nil {
		return ServiceDefinition{}, err
	}
	return s, nil
}

// NewEndpointDefinition checks that every required field of e is set, then
// checks the endpoint's argument invariants, and returns it.
func NewEndpointDefinition(e EndpointDefinition) (EndpointDefinition, error) {
	if err := checkFields("EndpointDefinition", e); err != nil {
		return EndpointDefinition{}, err
	}
	if errs := checkEndpoint("EndpointDefinition", e); len(errs) > 0 {
		return EndpointDefinition{}, errors.Join(errs...)
	}
	return e, nil
}

// NewArgumentDefinition checks that every required field of a is set and
// returns it.
func NewArgumentDefinition(a ArgumentDefinition) (ArgumentDefinition, error) {
	if err := checkFields("ArgumentDefinition", a); err != nil {
		return ArgumentDefinition{}, err
	}
	return a, nil
}

var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// PathParameters returns the placeholder names of a path template in order.
// A trailing '*' marks a placeholder that may span segments and is not part
// of the name.
func PathParameters(path string) []string {
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(path, -1) {
		names = append(names, strings.TrimSuffix(m[1], "*"))
	}
	return names
}

// checkEndpoint checks the invariants of one endpoint.
func checkEndpoint(path string, e EndpointDefinition) []error {
	var errs []error
	var bodies []string
	pathArgs := make(map[string]bool)
	argNames := make(map[string]bool)
	for _, arg := range e.Args {
		if argNames[arg.ArgName] {
			errs = append(errs, &conjerrors.ValidationError{Path: path, Field: "args", Message: fmt.Sprintf("duplicate argument %q", arg.ArgName)})
		}
		argNames[arg.ArgName] = true
		switch p := arg.ParamType.(type) {
		case BodyParameterType:
			bodies = append(bodies, arg.ArgName)
		case PathParameterType:
			pathArgs[arg.ArgName] = true
		case QueryParameterType:
			if p.ParamID == "" {
				errs = append(errs, &conjerrors.ValidationError{Path: path, Field: "args", Message: fmt.Sprintf("query argument %q has no paramId", arg.ArgName)})
			}
		case HeaderParameterType:
			if p.ParamID == "" {
				errs = append(errs, &conjerrors.ValidationError{Path: path, Field: "args", Message: fmt.Sprintf("header argument %q has no paramId", arg.ArgName)})
			}
		}
	}
	if len(bodies) > 1 {
		errs = append(errs, &conjerrors.ValidationError{Path: path, Field: "args", Message: "more than one body argument: " + strings.Join(bodies, ", ")})
	}
	if len(bodies) == 1 && e.HTTPMethod == MethodGet {
		errs = append(errs, &conjerrors.ValidationError{Path: path, Field: "args", Message: "GET endpoints cannot have a body argument"})
	}

	placeholders := make(map[string]bool)
	for _, name := range PathParameters(e.HTTPPath) {
		if placeholders[name] {
			errs = append(errs, &conjerrors.ValidationError{Path: path, Field: "httpPath", Message: fmt.Sprintf("placeholder {%s} appears more than once", name)})
		}
		placeholders[name] = true
		if !pathArgs[name] {
			errs = append(errs, &conjerrors.ValidationError{Path: path, Field: "httpPath", Message: fmt.Sprintf("placeholder {%s} has no path argument", name)})
		}
	}
	for _, arg := range e.Args {
		if _, ok := arg.ParamType.(PathParameterType); ok && !placeholders[arg.ArgName] {
			errs = append(errs, &conjerrors.ValidationError{Path: path, Field: "args", Message: fmt.Sprintf("path argument %q has no placeholder", arg.ArgName)})
		}
	}
	return errs
}

// Validate checks def as a whole: struct rules, endpoint invariants, unique
// names and resolvable references. It returns every problem found, joined.
func Validate(def *ConjureDefinition) error {
	if def == nil {
		return &conjerrors.ValidationError{Message: "nil definition"}
	}
	var errs []error
	if err := checkFields("ConjureDefinition", def); err != nil {
		errs = append(errs, err)
	}

	idx := NewIndex(def)
	seenTypes := make(map[TypeName]bool)
	for i, td := range def.Types {
		path := fmt.Sprintf("types[%d]", i)
		if td == nil {
			errs = append(errs, &conjerrors.ValidationError{Path: path, Message: "empty type definition"})
			continue
		}
		name := td.Name()
		if name.Name == "" {
			errs = append(errs, &conjerrors.ValidationError{Path: path, Missing: []string{"typeName.name"}})
		}
		if seenTypes[name] {
			errs = append(errs, &conjerrors.ValidationError{Path: path, Message: fmt.Sprintf("duplicate type %s", name)})
		}
		seenTypes[name] = true
		errs = append(errs, checkTypeDefinition(idx, "types."+name.String(), td)...)
	}

	seenServices := make(map[TypeName]bool)
	for _, svc := range def.Services {
		path := "services." + svc.ServiceName.String()
		if seenServices[svc.ServiceName] {
			errs = append(errs, &conjerrors.ValidationError{Path: path, Message: "duplicate service"})
		}
		seenServices[svc.ServiceName] = true
		seenEndpoints := make(map[string]bool)
		for _, ep := range svc.Endpoints {
			epPath := path + "." + ep.EndpointName
			if seenEndpoints[ep.EndpointName] {
				errs = append(errs, &conjerrors.ValidationError{Path: epPath, Message: "duplicate endpoint"})
			}
			seenEndpoints[ep.EndpointName] = true
			errs = append(errs, checkEndpoint(epPath, ep)...)
			for _, arg := range ep.Args {
				errs = append(errs, checkRefs(idx, epPath+".args."+arg.ArgName, arg.Type)...)
			}
			if ep.Returns != nil {
				errs = append(errs, checkRefs(idx, epPath+".returns", ep.Returns)...)
			}
		}
	}
	return errors.Join(errs...)
}

func checkTypeDefinition(idx *Index, path string, td TypeDefinition) []error {
	var errs []error
	switch v := td.(type) {
	case ObjectDefinition:
		seen := make(map[string]bool)
		for _, f := range v.Fields {
			if seen[f.FieldName] {
				errs = append(errs, &conjerrors.ValidationError{Path: path, Field: f.FieldName, Message: "duplicate field"})
			}
			seen[f.FieldName] = true
			errs = append(errs, checkRefs(idx, path+"."+f.FieldName, f.Type)...)
		}
	case UnionDefinition:
		if len(v.Union) == 0 {
			errs = append(errs, &conjerrors.ValidationError{Path: path, Message: "union has no variants"})
		}
		seen := make(map[string]bool)
		for _, f := range v.Union {
			if seen[f.FieldName] {
				errs = append(errs, &conjerrors.ValidationError{Path: path, Field: f.FieldName, Message: "duplicate variant"})
			}
			seen[f.FieldName] = true
			errs = append(errs, checkRefs(idx, path+"."+f.FieldName, f.Type)...)
		}
	case EnumDefinition:
		seen := make(map[string]bool)
		for _, ev := range v.Values {
			if seen[ev.Value] {
				errs = append(errs, &conjerrors.ValidationError{Path: path, Field: ev.Value, Message: "duplicate enum value"})
			}
			seen[ev.Value] = true
		}
	case AliasDefinition:
		errs = append(errs, checkRefs(idx, path, v.Alias)...)
	}
	return errs
}

// checkRefs reports every reference inside t that names no defined type.
func checkRefs(idx *Index, path string, t Type) []error {
	switch v := t.(type) {
	case nil:
		return []error{&conjerrors.ValidationError{Path: path, Message: "missing type"}}
	case ReferenceType:
		if _, ok := idx.Lookup(v.TypeName()); !ok {
			return []error{&conjerrors.ReferenceError{Ref: v.TypeName().String(), Path: path, Message: "type is not defined"}}
		}
	case OptionalType:
		return checkRefs(idx, path, v.ItemType)
	case ListType:
		return checkRefs(idx, path, v.ItemType)
	case SetType:
		return checkRefs(idx, path, v.ItemType)
	case MapType:
		return append(checkRefs(idx, path, v.KeyType), checkRefs(idx, path, v.ValueType)...)
	case ExternalType:
		if v.Fallback != nil {
			return checkRefs(idx, path, v.Fallback)
		}
	}
	return nil
}
