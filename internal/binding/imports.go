package binding

import (
	"go/ast"
	"path"
	"strings"
)

// ImportResolver maps package names to their full import paths, scoped to a
// single file's import block.
type ImportResolver struct {
	pkgToPath map[string]string
}

// NewImportResolver creates an ImportResolver from a file's imports, handling
// both plain and aliased imports.
func NewImportResolver(file *ast.File) *ImportResolver {
	resolver := &ImportResolver{pkgToPath: make(map[string]string)}
	if file == nil {
		return resolver
	}

	for _, imp := range file.Imports {
		impPath := strings.Trim(imp.Path.Value, `"`)

		var pkgName string
		if imp.Name != nil {
			pkgName = imp.Name.Name
		} else {
			// Last path component: "database/sql" -> "sql". Packages whose
			// name differs from their directory need an alias in the file.
			pkgName = path.Base(impPath)
		}

		resolver.pkgToPath[pkgName] = impPath
	}

	return resolver
}

// Resolve returns the full import path for a package name, and whether the
// name is known in this file.
func (r *ImportResolver) Resolve(pkgName string) (string, bool) {
	if r == nil {
		return "", false
	}

	p, ok := r.pkgToPath[pkgName]

	return p, ok
}
