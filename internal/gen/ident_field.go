package gen

import (
	"github.com/dave/jennifer/jen"

	"attrbind-generator/internal/binding"
)

// Import paths of the runtime packages referenced by generated binders.
const (
	attrPkgPath       = "attrbind-generator/attr"
	annotationPkgPath = "attrbind-generator/annotation"
)

// CreateOptionalIdent renders the initializer fragment that populates the
// ident field when the binder's input ident is optional (*attr.Ident).
func CreateOptionalIdent(f *binding.IdentField, input jen.Code) jen.Code {
	return createIdent(f, input, true)
}

// CreateIdent renders the initializer fragment that populates the ident
// field when the binder's input ident is always present (attr.Ident).
func CreateIdent(f *binding.IdentField, input jen.Code) jen.Code {
	return createIdent(f, input, false)
}

// createIdent is the single implementation behind both flavors. Without a
// transform the fragment is a plain assignment and the flavors render
// identically. With a transform the callable is pinned by an explicit
// function type conversion, so a signature mismatch is a compile error at
// the generated call site rather than somewhere inside the callable.
func createIdent(f *binding.IdentField, input jen.Code, optionalIdent bool) jen.Code {
	if f.With() == nil {
		return jen.Id("out").Dot(f.Name()).Op("=").Add(input)
	}

	inputType := jen.Qual(attrPkgPath, "Ident")
	if optionalIdent {
		inputType = jen.Op("*").Qual(attrPkgPath, "Ident")
	}

	fnType := jen.Func().Params(inputType).Params(jen.Add(f.Type()), jen.Error())

	return jen.Block(
		jen.List(jen.Id("v"), jen.Err()).Op(":=").
			Parens(fnType).Parens(jen.Add(f.With().Code())).Call(input),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Id("out"), jen.Err()),
		),
		jen.Id("out").Dot(f.Name()).Op("=").Id("v"),
	)
}
