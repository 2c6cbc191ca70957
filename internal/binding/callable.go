package binding

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"

	"github.com/dave/jennifer/jen"
)

// Callable is a user-supplied transform reference: a named function, a
// pkg.Func selector, or a func literal. It round-trips textually and renders
// into generated code.
type Callable struct {
	expr ast.Expr
	// src is the canonical printed form of expr.
	src string
	// pkgPath is the import path behind the selector's package name, when
	// the reference is a selector and the path is known.
	pkgPath string
}

// ParseCallable parses src as a callable reference. The resolver, when
// non-nil, maps selector package names to import paths so the rendered call
// site imports the right package.
func ParseCallable(src string, resolver *ImportResolver) (*Callable, error) {
	expr, err := parser.ParseExpr(src)
	if err != nil {
		return nil, fmt.Errorf("parsing callable %q: %w", src, err)
	}

	expr = unparen(expr)

	c := &Callable{expr: expr, src: printExpr(expr)}

	switch e := expr.(type) {
	case *ast.Ident:
		// Named function in the spec struct's own package.

	case *ast.SelectorExpr:
		pkg, ok := e.X.(*ast.Ident)
		if !ok {
			return nil, fmt.Errorf("callable %q: only pkg.Func selectors are supported", src)
		}

		if resolver != nil {
			if p, found := resolver.Resolve(pkg.Name); found {
				c.pkgPath = p
			}
		}

	case *ast.FuncLit:
		// Inline closure, passed through verbatim.

	default:
		return nil, fmt.Errorf("callable %q: expected a function name, pkg.Func, or func literal", src)
	}

	return c, nil
}

// String returns the canonical source form of the callable.
func (c *Callable) String() string {
	return c.src
}

// Code renders the callable for embedding at a generated call site. Selectors
// with a known import path render as qualified references so the generated
// file imports their package.
func (c *Callable) Code() jen.Code {
	switch e := c.expr.(type) {
	case *ast.Ident:
		return jen.Id(e.Name)

	case *ast.SelectorExpr:
		if c.pkgPath != "" {
			return jen.Qual(c.pkgPath, e.Sel.Name)
		}

		pkg := e.X.(*ast.Ident)

		return jen.Id(pkg.Name).Dot(e.Sel.Name)

	default:
		// Func literal: emit the canonical source verbatim. jennifer's Op
		// writes tokens as-is and the file is gofmt'd after rendering.
		return jen.Op(c.src)
	}
}

func unparen(expr ast.Expr) ast.Expr {
	for {
		p, ok := expr.(*ast.ParenExpr)
		if !ok {
			return expr
		}

		expr = p.X
	}
}

func printExpr(expr ast.Expr) string {
	var buf bytes.Buffer

	// ParseExpr positions are throwaway; an empty FileSet prints fine.
	_ = printer.Fprint(&buf, token.NewFileSet(), expr)

	return buf.String()
}
