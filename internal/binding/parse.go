package binding

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/fatih/structtag"

	"attrbind-generator/annotation"
	"attrbind-generator/internal/diagnostic"
)

// TagKey is the struct tag key read from spec struct fields.
const TagKey = "attr"

// ParseInput carries one @AttrSpec-annotated struct declaration into the
// parser.
type ParseInput struct {
	// Name is the struct's type name.
	Name string
	// Struct is the struct type syntax.
	Struct *ast.StructType
	// File is the file the struct is declared in, for import resolution.
	File *ast.File
	// Fset positions spans.
	Fset *token.FileSet
	// PkgPath, PkgName, and Dir locate the containing package.
	PkgPath string
	PkgName string
	Dir     string
	// Ann is the @AttrSpec annotation from the struct's doc comment.
	Ann *annotation.Annotation
	// Config supplies the transform registry. May be nil.
	Config *Config
}

// ParseSpecStruct builds the descriptor for one spec struct. Errors do not
// abort the walk: each key dispatch fails fast on its own, and everything is
// aggregated into the returned diagnostics so one pass reports all mistakes.
// The returned SpecStruct is only usable when diags.IsValid().
func ParseSpecStruct(in ParseInput) (*SpecStruct, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	spec := &SpecStruct{
		Name:    in.Name,
		PkgPath: in.PkgPath,
		PkgName: in.PkgName,
		Dir:     in.Dir,
		Pos:     in.Fset.Position(in.Struct.Pos()),
		Target:  TargetField,
	}

	if in.Ann != nil {
		switch target := in.Ann.ParamOr("target", "field"); target {
		case "field":
			spec.Target = TargetField
		case "type":
			spec.Target = TargetType
		default:
			diags.AddError("target_invalid",
				fmt.Sprintf("unknown target %q, expected field or type", target),
				in.Ann.Pos, spec.Name)
		}
	}

	resolver := NewImportResolver(in.File)
	resolve := newCallableResolver(in.Config, resolver)

	for _, field := range in.Struct.Fields.List {
		if len(field.Names) == 0 {
			diags.AddWarning("field_embedded",
				"embedded fields are not bound", in.Fset.Position(field.Pos()), spec.Name)
			continue
		}

		for _, name := range field.Names {
			parseField(spec, field, name.Name, resolver, resolve, in.Fset, &diags)
		}
	}

	return spec, diags
}

func parseField(
	spec *SpecStruct,
	field *ast.Field,
	name string,
	resolver *ImportResolver,
	resolve CallableResolver,
	fset *token.FileSet,
	diags *diagnostic.Diagnostics,
) {
	fieldPath := spec.Name + "." + name
	span := fset.Position(field.Pos())

	tagName, options := "", []string(nil)

	if field.Tag != nil {
		span = fset.Position(field.Tag.Pos())

		tags, err := structtag.Parse(strings.Trim(field.Tag.Value, "`"))
		if err != nil {
			diags.AddError("tag_malformed", err.Error(), span, fieldPath)
			return
		}

		if tag, err := tags.Get(TagKey); err == nil {
			tagName = tag.Name
			options = tag.Options
		}
	}

	if tagName == "-" {
		return
	}

	if tagName == "ident" {
		parseIdentField(spec, field, name, options, resolver, resolve, span, fieldPath, diags)
		return
	}

	parseValueField(spec, field, name, tagName, options, resolver, span, fieldPath, diags)
}

func parseIdentField(
	spec *SpecStruct,
	field *ast.Field,
	name string,
	options []string,
	resolver *ImportResolver,
	resolve CallableResolver,
	span token.Position,
	fieldPath string,
	diags *diagnostic.Diagnostics,
) {
	if spec.Ident != nil {
		diags.AddError("ident_duplicate",
			"spec struct already has an ident field ("+spec.Ident.Name()+")", span, fieldPath)
		return
	}

	idf := NewIdentField(name, typeToCode(field.Type, resolver), resolve)

	// Each key dispatch fails fast on its own; mistakes across keys are
	// aggregated so the user sees them all in one run.
	for _, opt := range options {
		key, value, _ := strings.Cut(opt, "=")

		err := idf.ParseNested(key, value, span)
		if err == nil {
			continue
		}

		var unknown *UnknownKeyError
		if errors.As(err, &unknown) {
			diags.AddError("unknown_key", err.Error(), unknown.Span, fieldPath)
		} else {
			diags.AddError("with_invalid", err.Error(), span, fieldPath)
		}
	}

	spec.Ident = idf
}

func parseValueField(
	spec *SpecStruct,
	field *ast.Field,
	name string,
	tagName string,
	options []string,
	resolver *ImportResolver,
	span token.Position,
	fieldPath string,
	diags *diagnostic.Diagnostics,
) {
	kind, typeName, ok := classifyValueType(field.Type)
	if !ok {
		diags.AddError("field_type_unsupported",
			"value fields must be string, bool, integer, or float typed", span, fieldPath)
		return
	}

	vf := ValueField{
		Name:     name,
		Key:      strings.ToLower(name),
		Type:     typeToCode(field.Type, resolver),
		TypeName: typeName,
		Kind:     kind,
		Pos:      span,
	}

	if tagName != "" {
		vf.Key = strings.ToLower(tagName)
	}

	for _, opt := range options {
		key, value, hasValue := strings.Cut(opt, "=")

		switch {
		case key == "required" && !hasValue:
			vf.Required = true
		case key == "default":
			vf.Default = value
		default:
			diags.AddError("unknown_key",
				fmt.Sprintf("unknown configuration key %q for value field", key), span, fieldPath)
		}
	}

	if vf.Required && vf.Default != "" {
		diags.AddWarning("default_unused",
			"default is ignored because the key is required", span, fieldPath)
	}

	spec.Fields = append(spec.Fields, vf)
}

// newCallableResolver resolves `with` values: first against the transform
// registry by name, then as a Go expression in the file's import scope.
func newCallableResolver(cfg *Config, resolver *ImportResolver) CallableResolver {
	return func(src string) (*Callable, error) {
		if cfg != nil {
			if t, ok := cfg.LookupTransform(src); ok {
				return t.Callable()
			}
		}

		return ParseCallable(src, resolver)
	}
}

// classifyValueType maps a declared field type onto a ValueKind.
func classifyValueType(expr ast.Expr) (ValueKind, string, bool) {
	ident, ok := expr.(*ast.Ident)
	if !ok {
		return 0, "", false
	}

	switch ident.Name {
	case "string":
		return KindString, ident.Name, true
	case "bool":
		return KindBool, ident.Name, true
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64":
		return KindInt, ident.Name, true
	case "float32", "float64":
		return KindFloat, ident.Name, true
	default:
		return 0, "", false
	}
}

// typeToCode converts a type expression into generated-code form, resolving
// selector packages through the file's imports so the generated file imports
// them.
func typeToCode(expr ast.Expr, resolver *ImportResolver) jen.Code {
	switch t := expr.(type) {
	case *ast.Ident:
		return jen.Id(t.Name)

	case *ast.StarExpr:
		return jen.Op("*").Add(typeToCode(t.X, resolver))

	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok {
			if impPath, found := resolver.Resolve(pkg.Name); found {
				return jen.Qual(impPath, t.Sel.Name)
			}

			return jen.Id(pkg.Name).Dot(t.Sel.Name)
		}

		return jen.Interface()

	case *ast.ArrayType:
		return jen.Index().Add(typeToCode(t.Elt, resolver))

	case *ast.MapType:
		return jen.Map(typeToCode(t.Key, resolver)).Add(typeToCode(t.Value, resolver))

	case *ast.InterfaceType:
		return jen.Interface()

	default:
		return jen.Interface()
	}
}
