// Package member classifies the top-level declarations of a Go file by member type.
package member

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/griffnb/core-maid/internal/membertype"
)

// Member is one top-level declaration other than an import.
type Member struct {
	Kind membertype.Kind
	Name string
	Decl ast.Decl
	// Index is the position among the file's members, used for stable ordering.
	Index int
}

// Classify returns the members of file in source order.
func Classify(file *ast.File) []Member {
	var members []Member
	for _, decl := range file.Decls {
		if gen, ok := decl.(*ast.GenDecl); ok && gen.Tok == token.IMPORT {
			continue
		}

		kind, name := classifyDecl(decl)
		members = append(members, Member{
			Kind:  kind,
			Name:  name,
			Decl:  decl,
			Index: len(members),
		})
	}
	return members
}

func classifyDecl(decl ast.Decl) (membertype.Kind, string) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		return classifyFunc(d)
	case *ast.GenDecl:
		return classifyGen(d)
	default:
		// *ast.BadDecl never survives a successful parse
		return membertype.Function, ""
	}
}

func classifyGen(d *ast.GenDecl) (membertype.Kind, string) {
	switch d.Tok {
	case token.CONST:
		return membertype.Constant, firstValueName(d)
	case token.VAR:
		return membertype.Variable, firstValueName(d)
	}

	if len(d.Specs) == 0 {
		return membertype.Type, ""
	}
	ts, ok := d.Specs[0].(*ast.TypeSpec)
	if !ok {
		return membertype.Type, ""
	}

	switch ts.Type.(type) {
	case *ast.InterfaceType:
		return membertype.Interface, ts.Name.Name
	case *ast.StructType:
		return membertype.Struct, ts.Name.Name
	default:
		return membertype.Type, ts.Name.Name
	}
}

func firstValueName(d *ast.GenDecl) string {
	for _, spec := range d.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		for _, n := range vs.Names {
			if n.Name != "_" {
				return n.Name
			}
		}
	}
	return ""
}

func classifyFunc(d *ast.FuncDecl) (membertype.Kind, string) {
	if d.Recv != nil && len(d.Recv.List) > 0 {
		recv := ReceiverName(d.Recv.List[0].Type)
		return membertype.Method, recv + "." + d.Name.Name
	}

	if IsConstructor(d) {
		return membertype.Constructor, d.Name.Name
	}
	return membertype.Function, d.Name.Name
}

// IsConstructor reports whether d is a New... func whose first result is a
// named type or a pointer to one.
func IsConstructor(d *ast.FuncDecl) bool {
	if d.Recv != nil || !strings.HasPrefix(d.Name.Name, "New") {
		return false
	}
	if d.Type.Results == nil || len(d.Type.Results.List) == 0 {
		return false
	}

	result := d.Type.Results.List[0].Type
	if star, ok := result.(*ast.StarExpr); ok {
		result = star.X
	}
	return namedType(result) != ""
}

// ReceiverName returns the base type name of a receiver expression, so
// *Foo, Foo[T] and *Foo[K, V] all yield Foo.
func ReceiverName(expr ast.Expr) string {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	return namedType(expr)
}

func namedType(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return namedType(t.X)
	case *ast.IndexListExpr:
		return namedType(t.X)
	case *ast.ParenExpr:
		return namedType(t.X)
	default:
		return ""
	}
}
