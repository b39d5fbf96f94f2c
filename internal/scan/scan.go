// Package scan parses a Go package directory and extracts the inputs the
// taintgen generator needs: struct field lists and taint directives on
// functions. This package is internal and not part of the public API.
package scan

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"io/fs"
	"strings"
)

// Struct is one struct type declaration eligible for variant generation.
type Struct struct {
	Name   string
	Fields []Field
}

// Field is a named struct field with its declared type expression rendered
// back to source form.
type Field struct {
	Name string
	Type string
}

// Func is a function carrying a taint directive in its doc comment.
type Func struct {
	Name    string
	Inputs  bool // //taint:inputs
	Output  bool // //taint:output
	Params  []Param
	Results []string
}

// Param is a named function parameter with its declared type.
type Param struct {
	Name string
	Type string
}

// Package is the scan result for one directory.
type Package struct {
	Name    string
	Structs map[string]*Struct
	Funcs   []Func
}

// Dir parses the package in dir (test files excluded) and collects struct
// definitions and directive-annotated functions.
func Dir(dir string) (*Package, error) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, func(fi fs.FileInfo) bool {
		return !strings.HasSuffix(fi.Name(), "_test.go")
	}, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("scan %s: no Go package found", dir)
	}

	out := &Package{Structs: map[string]*Struct{}}
	for name, pkg := range pkgs {
		if strings.HasSuffix(name, "_test") {
			continue
		}
		out.Name = name
		for _, f := range pkg.Files {
			if err := collectFile(out, f); err != nil {
				return nil, err
			}
		}
	}
	if out.Name == "" {
		return nil, fmt.Errorf("scan %s: only test packages found", dir)
	}
	return out, nil
}

func collectFile(out *Package, f *ast.File) error {
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.Name == nil {
					continue
				}
				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					continue
				}
				s, err := collectStruct(ts.Name.Name, st)
				if err != nil {
					return err
				}
				out.Structs[s.Name] = s
			}
		case *ast.FuncDecl:
			fn, ok := collectFunc(d)
			if ok {
				out.Funcs = append(out.Funcs, fn)
			}
		}
	}
	return nil
}

func collectStruct(name string, st *ast.StructType) (*Struct, error) {
	s := &Struct{Name: name}
	if st.Fields == nil {
		return s, nil
	}
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			return nil, fmt.Errorf("struct %s: embedded fields are not supported; name the field explicitly", name)
		}
		if err := checkFieldType(name, field.Names[0].Name, field.Type); err != nil {
			return nil, err
		}
		typ := types.ExprString(field.Type)
		for _, n := range field.Names {
			s.Fields = append(s.Fields, Field{Name: n.Name, Type: typ})
		}
	}
	return s, nil
}

// checkFieldType refuses field type shapes the generator cannot resolve to
// either "wrap in Value" or "has its own variant". Refusing here keeps
// generation fail-closed: unsupported shapes are a generation-time error,
// never a guess.
func checkFieldType(structName, fieldName string, expr ast.Expr) error {
	switch t := expr.(type) {
	case *ast.Ident:
		return nil
	case *ast.SelectorExpr:
		return nil
	case *ast.StarExpr:
		return checkFieldType(structName, fieldName, t.X)
	case *ast.ArrayType:
		return checkFieldType(structName, fieldName, t.Elt)
	case *ast.MapType:
		if err := checkFieldType(structName, fieldName, t.Key); err != nil {
			return err
		}
		return checkFieldType(structName, fieldName, t.Value)
	case *ast.IndexExpr:
		return checkFieldType(structName, fieldName, t.X)
	case *ast.IndexListExpr:
		return checkFieldType(structName, fieldName, t.X)
	default:
		return fmt.Errorf("struct %s: field %s has unsupported type %s; move it behind a named type or drop it from generation",
			structName, fieldName, types.ExprString(expr))
	}
}

const (
	directiveInputs = "//taint:inputs"
	directiveOutput = "//taint:output"
)

func collectFunc(d *ast.FuncDecl) (Func, bool) {
	fn := Func{Name: d.Name.Name}
	if d.Doc != nil {
		for _, c := range d.Doc.List {
			switch strings.TrimSpace(c.Text) {
			case directiveInputs:
				fn.Inputs = true
			case directiveOutput:
				fn.Output = true
			}
		}
	}
	if !fn.Inputs && !fn.Output {
		return Func{}, false
	}
	if d.Type.Params != nil {
		for _, p := range d.Type.Params.List {
			typ := types.ExprString(p.Type)
			for _, n := range p.Names {
				fn.Params = append(fn.Params, Param{Name: n.Name, Type: typ})
			}
		}
	}
	if d.Type.Results != nil {
		for _, r := range d.Type.Results.List {
			typ := types.ExprString(r.Type)
			n := len(r.Names)
			if n == 0 {
				n = 1
			}
			for i := 0; i < n; i++ {
				fn.Results = append(fn.Results, typ)
			}
		}
	}
	return fn, true
}
