package generator

import (
	"bytes"
	"fmt"
	"go/token"
	"slices"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/erraggy/conjurego"
)

// Import paths referenced by generated code.
const (
	importClient = "github.com/erraggy/conjurego/client"
	importWire   = "github.com/erraggy/conjurego/wire"
	importUUID   = "github.com/google/uuid"
)

// formatAndFixImports formats Go source code and removes unused imports.
// Generated files declare every import they need, so no package lookup happens.
func formatAndFixImports(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

// isIdentifier reports whether name can be used as a Go package name.
func isIdentifier(name string) bool {
	return token.IsIdentifier(name) && !token.IsKeyword(name)
}

// goFile accumulates the body and imports of one generated Go file.
type goFile struct {
	name    string
	pkg     string
	imports map[string]bool
	body    *bytes.Buffer
	size    int
}

func newGoFile(name, pkg string, sizeHint int) *goFile {
	return &goFile{
		name:    name,
		pkg:     pkg,
		imports: make(map[string]bool),
		body:    getBuffer(sizeHint),
		size:    sizeHint,
	}
}

// use records that the file refers to the package at path.
func (f *goFile) use(path string) {
	f.imports[path] = true
}

func (f *goFile) printf(format string, args ...any) {
	fmt.Fprintf(f.body, format, args...)
}

func (f *goFile) println(s string) {
	f.body.WriteString(s)
	f.body.WriteByte('\n')
}

// render assembles the file and formats it. The body buffer is released.
func (f *goFile) render() ([]byte, error) {
	defer func() {
		putBuffer(f.body, f.size)
		f.body = nil
	}()

	var src bytes.Buffer
	src.WriteString(generatedHeader())
	fmt.Fprintf(&src, "package %s\n\n", f.pkg)

	var std, other []string
	for path := range f.imports {
		if strings.Contains(strings.SplitN(path, "/", 2)[0], ".") {
			other = append(other, path)
		} else {
			std = append(std, path)
		}
	}
	slices.Sort(std)
	slices.Sort(other)
	if len(std)+len(other) > 0 {
		src.WriteString("import (\n")
		for _, p := range std {
			fmt.Fprintf(&src, "\t%q\n", p)
		}
		if len(std) > 0 && len(other) > 0 {
			src.WriteByte('\n')
		}
		for _, p := range other {
			fmt.Fprintf(&src, "\t%q\n", p)
		}
		src.WriteString(")\n\n")
	}
	src.Write(f.body.Bytes())

	out, err := formatAndFixImports(f.name, src.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", f.name, err)
	}
	return out, nil
}

func generatedHeader() string {
	return fmt.Sprintf("// Code generated by conjurego %s. DO NOT EDIT.\n\n", conjurego.Version())
}

// writeDoc writes text as a comment block at the given indent.
func writeDoc(f *goFile, indent, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			f.printf("%s//\n", indent)
			continue
		}
		f.printf("%s// %s\n", indent, line)
	}
}

// writeDeprecated appends a Deprecated paragraph, separated from any docs.
func writeDeprecated(f *goFile, indent string, hasDocs bool, notice *string) {
	if notice == nil {
		return
	}
	if hasDocs {
		f.printf("%s//\n", indent)
	}
	msg := strings.TrimSpace(*notice)
	if msg == "" {
		msg = "do not use."
	}
	writeDoc(f, indent, "Deprecated: "+msg)
}
