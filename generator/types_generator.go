package generator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/erraggy/conjurego/definition"
	"github.com/erraggy/conjurego/internal/issues"
	"github.com/erraggy/conjurego/internal/naming"
)

// unionMethods are the methods every generated union has; variant
// accessors must not reuse these names.
var unionMethods = []string{"Type", "Unknown", "AcceptFuncs", "MarshalConjure", "UnmarshalConjure", "MarshalJSON", "UnmarshalJSON"}

// generateTypes writes types.go holding every object, enum, union and alias.
func (cg *codeGenerator) generateTypes() error {
	if len(cg.def.Types) == 0 {
		return nil
	}
	f := newGoFile("types.go", cg.result.PackageName, len(cg.def.Types))
	declared := make(nameSet)
	for _, goName := range cg.names {
		declared[goName] = true
	}

	for i, td := range cg.def.Types {
		path := issues.Index("types", i)
		switch v := td.(type) {
		case definition.ObjectDefinition:
			cg.writeObject(f, v)
		case definition.EnumDefinition:
			cg.writeEnum(f, declared, v)
		case definition.UnionDefinition:
			cg.writeUnion(f, declared, v)
		case definition.AliasDefinition:
			if cg.isAliasCycle(v) {
				cg.skipped[v.TypeName] = true
				cg.addIssue(path, fmt.Sprintf("alias %s refers back to itself and was not generated", v.TypeName), SeverityCritical)
				continue
			}
			cg.writeAlias(f, v)
		default:
			cg.addIssue(path, fmt.Sprintf("unsupported type definition %T", td), SeverityCritical)
			continue
		}
		cg.result.GeneratedTypes++
	}
	return cg.emit(f)
}

func (cg *codeGenerator) isAliasCycle(a definition.AliasDefinition) bool {
	ref, ok := cg.idx.Resolve(a.Alias).(definition.ReferenceType)
	if !ok {
		return false
	}
	td, _ := cg.idx.Lookup(ref.TypeName())
	_, isAlias := td.(definition.AliasDefinition)
	return isAlias
}

func (cg *codeGenerator) writeAlias(f *goFile, a definition.AliasDefinition) {
	name := cg.typeName(a.TypeName)
	writeDoc(f, "", a.Documentation())
	f.printf("type %s = %s\n\n", name, cg.goType(f, a.Alias))
}

func (cg *codeGenerator) writeObject(f *goFile, o definition.ObjectDefinition) {
	name := cg.typeName(o.TypeName)
	f.use(importWire)

	writeDoc(f, "", o.Documentation())
	f.printf("type %s struct {\n", name)
	fields := nameSet{"MarshalJSON": true, "UnmarshalJSON": true}
	for _, fd := range o.Fields {
		doc := fd.DocString()
		writeDoc(f, "\t", doc)
		writeDeprecated(f, "\t", doc != "", fd.Deprecated)
		tag := fd.FieldName
		if cg.omitEmpty(fd.Type) {
			tag += ",omitempty"
		}
		f.printf("\t%s %s `json:%q`\n", fields.claim(toFieldName(fd.FieldName)), cg.goType(f, fd.Type), tag)
	}
	f.println("}")
	f.println("")

	f.printf("// MarshalJSON encodes o in the Conjure wire format.\n")
	f.printf("func (o %s) MarshalJSON() ([]byte, error) {\n\treturn wire.Marshal(o)\n}\n\n", name)
	f.printf("// UnmarshalJSON strictly decodes o from the Conjure wire format.\n")
	f.printf("func (o *%s) UnmarshalJSON(data []byte) error {\n\treturn wire.Unmarshal(data, o)\n}\n\n", name)
}

func (cg *codeGenerator) writeEnum(f *goFile, declared nameSet, e definition.EnumDefinition) {
	name := cg.typeName(e.TypeName)
	exhaustive := cg.g.ExhaustiveEnums
	recv := receiverName(name)
	valuesVar := declared.claim(unexported(name) + "Values")
	f.use(importWire)

	writeDoc(f, "", e.Documentation())
	f.printf("type %s string\n\n", name)

	constNames := make([]string, len(e.Values))
	if len(e.Values) > 0 {
		f.println("const (")
		for i, ev := range e.Values {
			doc := deref(ev.Docs)
			writeDoc(f, "\t", doc)
			writeDeprecated(f, "\t", doc != "", ev.Deprecated)
			constNames[i] = declared.claim(name + naming.ToPascalCase(ev.Value))
			f.printf("\t%s %s = %q\n", constNames[i], name, ev.Value)
		}
		f.println(")")
		f.println("")
	}

	quoted := make([]string, len(e.Values))
	for i, ev := range e.Values {
		quoted[i] = fmt.Sprintf("%q", ev.Value)
	}
	f.printf("var %s = []string{%s}\n\n", valuesVar, strings.Join(quoted, ", "))

	listFunc := declared.claim(name + "Values")
	f.printf("// %s returns the values %s declares.\n", listFunc, name)
	f.printf("func %s() []%s {\n\treturn []%s{%s}\n}\n\n", listFunc, name, name, strings.Join(constNames, ", "))

	parseFunc := declared.claim("Parse" + name)
	f.printf("// %s converts s to a %s.", parseFunc, name)
	if exhaustive {
		f.printf(" Values %s does not declare are rejected.\n", name)
	} else {
		f.printf(" Undeclared values are kept when they are\n// made only of ASCII letters, digits and underscores.\n")
	}
	f.printf("func %s(s string) (%s, error) {\n", parseFunc, name)
	f.printf("\tv, err := wire.ParseEnum(s, %s, %t)\n", valuesVar, exhaustive)
	f.printf("\tif err != nil {\n\t\treturn \"\", err\n\t}\n\treturn %s(v), nil\n}\n\n", name)

	f.printf("// IsUnknown reports whether %s is not a value %s declares.\n", recv, name)
	f.printf("func (%s %s) IsUnknown() bool {\n", recv, name)
	if len(constNames) > 0 {
		f.printf("\tswitch %s {\n\tcase %s:\n\t\treturn false\n\t}\n", recv, strings.Join(constNames, ", "))
	}
	f.printf("\treturn true\n}\n\n")

	f.printf("// String returns the wire value of %s.\n", recv)
	f.printf("func (%s %s) String() string {\n\treturn string(%s)\n}\n\n", recv, name, recv)

	f.printf("// MarshalText implements encoding.TextMarshaler.\n")
	f.printf("func (%s %s) MarshalText() ([]byte, error) {\n\treturn []byte(%s), nil\n}\n\n", recv, name, recv)

	f.printf("// UnmarshalText implements encoding.TextUnmarshaler.\n")
	f.printf("func (%s *%s) UnmarshalText(data []byte) error {\n", recv, name)
	f.printf("\tv, err := %s(string(data))\n\tif err != nil {\n\t\treturn err\n\t}\n\t*%s = v\n\treturn nil\n}\n\n", parseFunc, recv)

	f.printf("// UnmarshalConjure implements wire.Unmarshaler.\n")
	f.printf("func (%s *%s) UnmarshalConjure(d wire.Decoder) error {\n", recv, name)
	f.printf("\tv, err := wire.DecodeEnum(d, %s, %t)\n", valuesVar, exhaustive)
	f.printf("\tif err != nil {\n\t\treturn err\n\t}\n\t*%s = %s(v)\n\treturn nil\n}\n\n", recv, name)
}

// unionVariant is one variant of a generated union.
type unionVariant struct {
	wireName string
	accessor string
	goType   string
	param    string
}

func (cg *codeGenerator) writeUnion(f *goFile, declared nameSet, u definition.UnionDefinition) {
	name := cg.typeName(u.TypeName)
	target := declared.claim(unexported(name) + "Target")
	f.use(importWire)
	f.use("errors")

	methods := make(nameSet)
	for _, m := range unionMethods {
		methods[m] = true
	}
	params := nameSet{"unknownFunc": true}
	variants := make([]unionVariant, len(u.Union))
	for i, fd := range u.Union {
		variants[i] = unionVariant{
			wireName: fd.FieldName,
			accessor: methods.claim(toFieldName(fd.FieldName)),
			goType:   cg.goType(f, fd.Type),
			param:    params.claim(variantParam(fd.FieldName)),
		}
	}

	writeDoc(f, "", u.Documentation())
	f.printf("type %s struct {\n\ttyp   string\n\tvalue any\n}\n\n", name)

	for i, v := range variants {
		ctor := declared.claim("New" + name + v.accessor)
		fd := u.Union[i]
		f.printf("// %s returns a %s holding the %s variant.\n", ctor, name, v.wireName)
		writeDeprecated(f, "", true, fd.Deprecated)
		f.printf("func %s(v %s) %s {\n\treturn %s{typ: %q, value: v}\n}\n\n", ctor, v.goType, name, name, v.wireName)
	}

	f.printf("// Type returns the name of the variant u holds, or \"\" for the zero value.\n")
	f.printf("func (u %s) Type() string {\n\treturn u.typ\n}\n\n", name)

	for i, v := range variants {
		doc := u.Union[i].DocString()
		if doc == "" {
			doc = fmt.Sprintf("%s returns the %s variant and whether u holds it.", v.accessor, v.wireName)
		}
		writeDoc(f, "", doc)
		f.printf("func (u %s) %s() (%s, bool) {\n", name, v.accessor, v.goType)
		f.printf("\tif u.typ != %q {\n\t\tvar zero %s\n\t\treturn zero, false\n\t}\n", v.wireName, v.goType)
		f.printf("\tv, _ := u.value.(%s)\n\treturn v, true\n}\n\n", v.goType)
	}

	known := make([]string, 0, len(variants)+1)
	known = append(known, `""`)
	for _, v := range variants {
		known = append(known, fmt.Sprintf("%q", v.wireName))
	}
	f.printf("// Unknown returns the variant name and raw payload when u holds a variant\n// this package does not declare.\n")
	f.printf("func (u %s) Unknown() (string, any, bool) {\n", name)
	f.printf("\tswitch u.typ {\n\tcase %s:\n\t\treturn \"\", nil, false\n\t}\n", strings.Join(known, ", "))
	f.printf("\treturn u.typ, u.value, true\n}\n\n")

	sig := make([]string, 0, len(variants)+1)
	for _, v := range variants {
		sig = append(sig, fmt.Sprintf("%s func(%s) error", v.param, v.goType))
	}
	sig = append(sig, "unknownFunc func(string, any) error")
	f.printf("// AcceptFuncs calls the function matching the variant u holds.\n")
	f.printf("func (u %s) AcceptFuncs(%s) error {\n", name, strings.Join(sig, ", "))
	f.println("\tswitch u.typ {")
	f.printf("\tcase \"\":\n\t\treturn errors.New(%q)\n", name+": no variant set")
	for _, v := range variants {
		f.printf("\tcase %q:\n\t\tv, _ := u.value.(%s)\n\t\treturn %s(v)\n", v.wireName, v.goType, v.param)
	}
	f.printf("\tdefault:\n\t\treturn unknownFunc(u.typ, u.value)\n\t}\n}\n\n")

	f.printf("// MarshalConjure implements wire.Marshaler.\n")
	f.printf("func (u %s) MarshalConjure(e *wire.Encoder) error {\n\treturn wire.EncodeUnion(e, u.typ, u.value)\n}\n\n", name)

	f.printf("// UnmarshalConjure implements wire.Unmarshaler. Variants this package does\n// not declare are kept and reported by Unknown.\n")
	f.printf("func (u *%s) UnmarshalConjure(d wire.Decoder) error {\n", name)
	f.printf("\tvar decoded %s\n\tif err := wire.DecodeUnion(d, (*%s)(&decoded)); err != nil {\n\t\treturn err\n\t}\n", name, target)
	f.printf("\t*u = decoded\n\treturn nil\n}\n\n")

	f.printf("// MarshalJSON encodes u in the Conjure wire format.\n")
	f.printf("func (u %s) MarshalJSON() ([]byte, error) {\n\treturn wire.Marshal(u)\n}\n\n", name)
	f.printf("// UnmarshalJSON strictly decodes u from the Conjure wire format.\n")
	f.printf("func (u *%s) UnmarshalJSON(data []byte) error {\n\treturn wire.Unmarshal(data, u)\n}\n\n", name)

	f.printf("type %s %s\n\n", target, name)
	f.printf("func (t *%s) DecodeVariant(name string, d wire.Decoder) (bool, error) {\n", target)
	if len(variants) > 0 {
		f.println("\tswitch name {")
		for _, v := range variants {
			f.printf("\tcase %q:\n\t\tvar v %s\n", v.wireName, v.goType)
			f.printf("\t\tif err := wire.DecodeValue(d, &v); err != nil {\n\t\t\treturn true, err\n\t\t}\n")
			f.printf("\t\tt.typ, t.value = name, v\n\t\treturn true, nil\n")
		}
		f.println("\t}")
	}
	f.printf("\treturn false, nil\n}\n\n")
	f.printf("func (t *%s) SetUnknown(name string, value any) {\n\tt.typ, t.value = name, value\n}\n\n", target)
}

// variantParam names the AcceptFuncs parameter of a variant.
func variantParam(fieldName string) string {
	name := naming.ToCamelCase(fieldName)
	if name == "" || !unicode.IsLetter([]rune(name)[0]) {
		name = "variant" + name
	}
	return name + "Func"
}

// receiverName picks a short receiver that does not clash with the
// parameter names of generated methods.
func receiverName(typeName string) string {
	r := strings.ToLower(typeName[:1])
	switch r {
	case "d", "e", "s", "v":
		return "x"
	}
	return r
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
