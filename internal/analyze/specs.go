package analyze

import (
	"go/ast"
	"go/token"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"attrbind-generator/annotation"
	"attrbind-generator/internal/binding"
)

// SpecDecl is one marker-annotated struct declaration found in a loaded
// package.
type SpecDecl struct {
	// Name is the struct's type name.
	Name string
	// Struct is the struct type syntax.
	Struct *ast.StructType
	// File is the file the struct is declared in.
	File *ast.File
	// Fset positions spans.
	Fset *token.FileSet
	// PkgPath, PkgName, and Dir locate the containing package.
	PkgPath string
	PkgName string
	Dir     string
	// Ann is the marker annotation from the declaration's doc comment.
	Ann *annotation.Annotation
}

// ParseInput converts the declaration into parser input with the given
// config.
func (d SpecDecl) ParseInput(cfg *binding.Config) binding.ParseInput {
	return binding.ParseInput{
		Name:    d.Name,
		Struct:  d.Struct,
		File:    d.File,
		Fset:    d.Fset,
		PkgPath: d.PkgPath,
		PkgName: d.PkgName,
		Dir:     d.Dir,
		Ann:     d.Ann,
		Config:  cfg,
	}
}

// FindSpecDecls walks the loaded packages' syntax and collects every struct
// declaration whose doc comment carries the marker annotation. The marker is
// recognized on the type declaration group and on the individual type spec.
func FindSpecDecls(pkgs []*packages.Package, marker string) []SpecDecl {
	var decls []SpecDecl

	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			decls = append(decls, findInFile(pkg, file, marker)...)
		}
	}

	return decls
}

func findInFile(pkg *packages.Package, file *ast.File, marker string) []SpecDecl {
	var decls []SpecDecl

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}

		for _, s := range gen.Specs {
			ts, ok := s.(*ast.TypeSpec)
			if !ok {
				continue
			}

			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}

			ann := markerAnnotation(ts.Doc, pkg.Fset, marker)
			if ann == nil {
				ann = markerAnnotation(gen.Doc, pkg.Fset, marker)
			}

			if ann == nil {
				continue
			}

			decls = append(decls, SpecDecl{
				Name:    ts.Name.Name,
				Struct:  st,
				File:    file,
				Fset:    pkg.Fset,
				PkgPath: pkg.PkgPath,
				PkgName: pkg.Name,
				Dir:     fileDir(pkg.Fset, file),
				Ann:     ann,
			})
		}
	}

	return decls
}

// markerAnnotation returns the marker annotation from a doc comment, or nil.
func markerAnnotation(doc *ast.CommentGroup, fset *token.FileSet, marker string) *annotation.Annotation {
	for _, ann := range annotation.ParseCommentGroup(doc, fset) {
		if ann.Name == marker {
			return ann
		}
	}

	return nil
}

func fileDir(fset *token.FileSet, file *ast.File) string {
	pos := fset.Position(file.Pos())
	if !pos.IsValid() {
		return ""
	}

	return filepath.Dir(pos.Filename)
}
