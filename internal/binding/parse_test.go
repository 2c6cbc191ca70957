package binding

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attrbind-generator/annotation"
	"attrbind-generator/internal/diagnostic"
)

func parseSpecSource(t *testing.T, src string) (*SpecStruct, diagnostic.Diagnostics) {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "spec.go", src, parser.ParseComments)
	require.NoError(t, err)

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

			in := ParseInput{
				Name:    ts.Name.Name,
				Struct:  st,
				File:    file,
				Fset:    fset,
				PkgPath: "example.com/demo",
				PkgName: "demo",
				Dir:     "/tmp/demo",
			}

			for _, ann := range annotation.ParseCommentGroup(gen.Doc, fset) {
				if ann.Name == "AttrSpec" {
					in.Ann = ann
				}
			}

			return ParseSpecStruct(in)
		}
	}

	t.Fatal("no struct declaration in source")

	return nil, diagnostic.Diagnostics{}
}

func TestParseSpecStruct_Basic(t *testing.T) {
	spec, diags := parseSpecSource(t, `package demo

import "attrbind-generator/attr"

// Rename configures a renamed declaration.
//
// @AttrSpec
type Rename struct {
	Ident attr.Ident `+"`"+`attr:"ident"`+"`"+`
	To    string     `+"`"+`attr:"to,required"`+"`"+`
	Deep  bool
}
`)

	require.True(t, diags.IsValid(), diags.Error())

	assert.Equal(t, "Rename", spec.Name)
	assert.Equal(t, "example.com/demo", spec.PkgPath)
	assert.Equal(t, TargetField, spec.Target)

	require.NotNil(t, spec.Ident)
	assert.Equal(t, "Ident", spec.Ident.Name())
	assert.Nil(t, spec.Ident.With())

	require.Len(t, spec.Fields, 2)
	assert.Equal(t, "to", spec.Fields[0].Key)
	assert.True(t, spec.Fields[0].Required)
	assert.Equal(t, KindString, spec.Fields[0].Kind)
	assert.Equal(t, "deep", spec.Fields[1].Key)
	assert.Equal(t, KindBool, spec.Fields[1].Kind)
	assert.False(t, spec.Fields[1].Required)
}

func TestParseSpecStruct_IdentWith(t *testing.T) {
	spec, diags := parseSpecSource(t, `package demo

import "attrbind-generator/attr"

// @AttrSpec(target=type)
type Named struct {
	Name attr.Ident `+"`"+`attr:"ident,with=attr.RequireIdent"`+"`"+`
}
`)

	require.True(t, diags.IsValid(), diags.Error())

	assert.Equal(t, TargetType, spec.Target)
	require.NotNil(t, spec.Ident)
	require.NotNil(t, spec.Ident.With())
	assert.Equal(t, "attr.RequireIdent", spec.Ident.With().String())
}

func TestParseSpecStruct_IdentUnknownKey(t *testing.T) {
	spec, diags := parseSpecSource(t, `package demo

import "attrbind-generator/attr"

// @AttrSpec
type Bad struct {
	Name attr.Ident `+"`"+`attr:"ident,wit=RequireIdent,with=attr.RequireIdent"`+"`"+`
}
`)

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, "unknown_key", diags.Errors[0].Code)
	assert.Equal(t, "Bad.Name", diags.Errors[0].Field)
	assert.Contains(t, diags.Errors[0].Message, `"wit"`)
	assert.Equal(t, 7, diags.Errors[0].Span.Line)

	// The failing key does not poison the rest of the dispatch.
	require.NotNil(t, spec.Ident)
	require.NotNil(t, spec.Ident.With())
	assert.Equal(t, "attr.RequireIdent", spec.Ident.With().String())
}

func TestParseSpecStruct_IdentDuplicate(t *testing.T) {
	_, diags := parseSpecSource(t, `package demo

import "attrbind-generator/attr"

// @AttrSpec
type Twice struct {
	A attr.Ident `+"`"+`attr:"ident"`+"`"+`
	B attr.Ident `+"`"+`attr:"ident"`+"`"+`
}
`)

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, "ident_duplicate", diags.Errors[0].Code)
	assert.Equal(t, "Twice.B", diags.Errors[0].Field)
}

func TestParseSpecStruct_TargetInvalid(t *testing.T) {
	_, diags := parseSpecSource(t, `package demo

// @AttrSpec(target=banana)
type Off struct {
	On bool
}
`)

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, "target_invalid", diags.Errors[0].Code)
	assert.Contains(t, diags.Errors[0].Message, "banana")
}

func TestParseSpecStruct_ValueFieldOptions(t *testing.T) {
	spec, diags := parseSpecSource(t, `package demo

// @AttrSpec
type Opts struct {
	Level   int     `+"`"+`attr:"level,default=3"`+"`"+`
	Rate    float64 `+"`"+`attr:"rate"`+"`"+`
	Skipped string  `+"`"+`attr:"-"`+"`"+`
	Both    string  `+"`"+`attr:"both,required,default=x"`+"`"+`
}
`)

	require.True(t, diags.IsValid(), diags.Error())
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "default_unused", diags.Warnings[0].Code)

	require.Len(t, spec.Fields, 3)
	assert.Equal(t, "3", spec.Fields[0].Default)
	assert.Equal(t, KindInt, spec.Fields[0].Kind)
	assert.Equal(t, "int", spec.Fields[0].TypeName)
	assert.Equal(t, KindFloat, spec.Fields[1].Kind)
	assert.Equal(t, "both", spec.Fields[2].Key)
}

func TestParseSpecStruct_UnsupportedType(t *testing.T) {
	_, diags := parseSpecSource(t, `package demo

// @AttrSpec
type Bad struct {
	Extra map[string]string `+"`"+`attr:"extra"`+"`"+`
}
`)

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, "field_type_unsupported", diags.Errors[0].Code)
	assert.Equal(t, "Bad.Extra", diags.Errors[0].Field)
}

func TestParseSpecStruct_Embedded(t *testing.T) {
	_, diags := parseSpecSource(t, `package demo

// @AttrSpec
type Wrapped struct {
	error
	On bool
}
`)

	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "field_embedded", diags.Warnings[0].Code)
	assert.True(t, diags.IsValid())
}

func TestParseSpecStruct_TransformRegistry(t *testing.T) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "spec.go", `package demo

import "attrbind-generator/attr"

type Named struct {
	Name attr.Ident `+"`"+`attr:"ident,with=require_ident"`+"`"+`
}
`, parser.ParseComments)
	require.NoError(t, err)

	st := file.Decls[1].(*ast.GenDecl).Specs[0].(*ast.TypeSpec).Type.(*ast.StructType)

	spec, diags := ParseSpecStruct(ParseInput{
		Name:    "Named",
		Struct:  st,
		File:    file,
		Fset:    fset,
		PkgPath: "example.com/demo",
		PkgName: "demo",
		Config: &Config{Transforms: []TransformDef{
			{Name: "require_ident", Func: "RequireIdent", Package: "attrbind-generator/attr"},
		}},
	})

	require.True(t, diags.IsValid(), diags.Error())
	require.NotNil(t, spec.Ident)
	require.NotNil(t, spec.Ident.With())
	assert.Equal(t, "attr.RequireIdent", spec.Ident.With().String())
}
