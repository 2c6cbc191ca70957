package binding

import (
	"go/ast"
	"go/token"

	"attrbind-generator/internal/common"
	"attrbind-generator/internal/diagnostic"
)

// Config is the root of an attrbind.yaml file.
type Config struct {
	// Version of the config schema (for future compatibility).
	Version string `yaml:"version,omitempty" default:"1"`

	// Marker is the annotation name that marks spec structs.
	Marker string `yaml:"marker,omitempty" default:"AttrSpec"`

	// Patterns are the package patterns to scan.
	Patterns []string `yaml:"patterns,omitempty" default:"[\"./...\"]"`

	// Transforms declares named transforms available to `with` keys.
	Transforms []TransformDef `yaml:"transforms,omitempty"`
}

// TransformDef declares a named transform usable in `with = <name>`. The
// actual implementation lives in user code; this records where to find it.
type TransformDef struct {
	// Name is the transform identifier used in `with` keys.
	Name string `yaml:"name"`

	// Func is the function name or expression. Defaults to Name.
	Func string `yaml:"func,omitempty"`

	// Package is the import path where the function is defined. Empty means
	// the spec struct's own package.
	Package string `yaml:"package,omitempty"`

	// Result is the transform's declared result type. Informational; the
	// generated call site pins the real check to the field's type.
	Result string `yaml:"result,omitempty"`

	// Description is an optional human-readable description.
	Description string `yaml:"description,omitempty"`
}

// LookupTransform returns the declared transform with the given name.
func (c *Config) LookupTransform(name string) (TransformDef, bool) {
	for _, t := range c.Transforms {
		if t.Name == name {
			return t, true
		}
	}

	return TransformDef{}, false
}

// Validate checks the transform registry for declaration mistakes.
func (c *Config) Validate() diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	seen := make(map[string]bool)

	for _, t := range c.Transforms {
		if t.Name == "" {
			diags.AddError("transform_unnamed", "transform declaration without a name", token.Position{}, "")
			continue
		}

		if seen[t.Name] {
			diags.AddError("transform_duplicate", "duplicate transform name "+t.Name, token.Position{}, "")
		}

		seen[t.Name] = true

		if _, err := t.Callable(); err != nil {
			diags.AddError("transform_invalid", err.Error(), token.Position{}, "")
		}
	}

	return diags
}

// Callable builds the callable reference for this transform declaration.
func (t TransformDef) Callable() (*Callable, error) {
	if t.Package == "" {
		return ParseCallable(t.Func, nil)
	}

	alias := common.PkgAlias(t.Package)

	return &Callable{
		expr: &ast.SelectorExpr{
			X:   ast.NewIdent(alias),
			Sel: ast.NewIdent(t.Func),
		},
		src:     alias + "." + t.Func,
		pkgPath: t.Package,
	}, nil
}
