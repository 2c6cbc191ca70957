package gen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/spf13/cast"

	"attrbind-generator/internal/binding"
)

// GeneratorConfig holds configuration for binder generation.
type GeneratorConfig struct {
	// OutputDir overrides the output directory. Empty means each binder is
	// written next to its spec struct.
	OutputDir string
	// FileSuffix is appended to the lowercased struct name to form the
	// output filename.
	FileSuffix string
	// DebugUnformatted writes a sidecar file with jennifer's render error
	// when formatting fails.
	DebugUnformatted bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		FileSuffix: "_attrbind.go",
	}
}

// Generator generates binder functions from parsed spec structs.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.FileSuffix == "" {
		config.FileSuffix = "_attrbind.go"
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory the file belongs in.
	Dir string
	// Filename is the name of the file (e.g., "rename_attrbind.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders one binder file per spec struct. Rendering is pure:
// generating the same spec twice yields byte-identical content.
func (g *Generator) Generate(specs []*binding.SpecStruct) ([]GeneratedFile, error) {
	var files []GeneratedFile

	for _, spec := range specs {
		file, err := g.generateSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("generating binder for %s: %w", spec.Name, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

func (g *Generator) generateSpec(spec *binding.SpecStruct) (*GeneratedFile, error) {
	f := jen.NewFilePathName(spec.PkgPath, spec.PkgName)
	f.HeaderComment("Code generated by attrbind-generator. DO NOT EDIT.")

	identParam := jen.Id("ident").Op("*").Qual(attrPkgPath, "Ident")
	if spec.Target == binding.TargetType {
		identParam = jen.Id("ident").Qual(attrPkgPath, "Ident")
	}

	body, err := g.binderBody(spec)
	if err != nil {
		return nil, err
	}

	f.Commentf("Bind%s populates a %s from its annotation.", spec.Name, spec.Name)
	f.Func().Id("Bind"+spec.Name).
		Params(
			jen.Id("ann").Op("*").Qual(annotationPkgPath, "Annotation"),
			identParam,
		).
		Params(jen.Id(spec.Name), jen.Error()).
		Block(body...)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		if g.config.DebugUnformatted {
			// Jennifer embeds the offending source in its error.
			_ = writeDebugUnformatted(g.outDir(spec), g.filename(spec), []byte(err.Error()))
		}

		return nil, fmt.Errorf("rendering: %w", err)
	}

	return &GeneratedFile{
		Dir:      g.outDir(spec),
		Filename: g.filename(spec),
		Content:  buf.Bytes(),
	}, nil
}

func (g *Generator) outDir(spec *binding.SpecStruct) string {
	if g.config.OutputDir != "" {
		return g.config.OutputDir
	}

	return spec.Dir
}

func (g *Generator) filename(spec *binding.SpecStruct) string {
	return strings.ToLower(spec.Name) + g.config.FileSuffix
}

// binderBody renders the statements of one binder function.
func (g *Generator) binderBody(spec *binding.SpecStruct) ([]jen.Code, error) {
	body := []jen.Code{
		jen.Var().Id("out").Id(spec.Name),
		jen.Line(),
	}

	if spec.Ident != nil {
		frag := CreateIdent(spec.Ident, jen.Id("ident"))
		if spec.Target == binding.TargetField {
			frag = CreateOptionalIdent(spec.Ident, jen.Id("ident"))
		}

		body = append(body, frag, jen.Line())
	}

	for i, vf := range spec.Fields {
		stmts, err := g.valueFieldStmts(vf, i)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", vf.Name, err)
		}

		body = append(body, stmts...)
	}

	body = append(body, jen.Return(jen.Id("out"), jen.Nil()))

	return body, nil
}

// valueFieldStmts renders the statements binding one value field. Defaults
// are coerced here, at generation time, so a bad default is a generation
// error instead of broken output.
func (g *Generator) valueFieldStmts(vf binding.ValueField, idx int) ([]jen.Code, error) {
	v := fmt.Sprintf("v%d", idx)

	if vf.Kind == binding.KindString {
		if vf.Required {
			return []jen.Code{
				jen.List(jen.Id(v), jen.Err()).Op(":=").
					Id("ann").Dot("RequireParam").Call(jen.Lit(vf.Key)),
				jen.If(jen.Err().Op("!=").Nil()).Block(
					jen.Return(jen.Id("out"), jen.Err()),
				),
				jen.Id("out").Dot(vf.Name).Op("=").Add(convert(vf, jen.Id(v))),
				jen.Line(),
			}, nil
		}

		return []jen.Code{
			jen.Id("out").Dot(vf.Name).Op("=").
				Add(convert(vf, jen.Id("ann").Dot("ParamOr").Call(jen.Lit(vf.Key), jen.Lit(vf.Default)))),
			jen.Line(),
		}, nil
	}

	getter, def, err := typedGetter(vf)
	if err != nil {
		return nil, err
	}

	stmts := []jen.Code{}

	if vf.Required {
		stmts = append(stmts,
			jen.If(jen.Op("!").Id("ann").Dot("HasParam").Call(jen.Lit(vf.Key))).Block(
				jen.Return(jen.Id("out"),
					jen.Qual("fmt", "Errorf").Call(
						jen.Lit("@%s: missing required parameter %q"),
						jen.Id("ann").Dot("Name"), jen.Lit(vf.Key))),
			),
		)
	}

	stmts = append(stmts,
		jen.List(jen.Id(v), jen.Err()).Op(":=").
			Id("ann").Dot(getter).Call(jen.Lit(vf.Key), def),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Id("out"), jen.Err()),
		),
		jen.Id("out").Dot(vf.Name).Op("=").Add(convert(vf, jen.Id(v))),
		jen.Line(),
	)

	return stmts, nil
}

// typedGetter picks the annotation getter for a non-string field and coerces
// its textual default into the getter's default argument.
func typedGetter(vf binding.ValueField) (string, jen.Code, error) {
	switch vf.Kind {
	case binding.KindBool:
		b := false

		if vf.Default != "" {
			var err error
			if b, err = cast.ToBoolE(vf.Default); err != nil {
				return "", nil, fmt.Errorf("default %q: %w", vf.Default, err)
			}
		}

		return "BoolParamOr", jen.Lit(b), nil

	case binding.KindInt:
		n := 0

		if vf.Default != "" {
			var err error
			if n, err = cast.ToIntE(vf.Default); err != nil {
				return "", nil, fmt.Errorf("default %q: %w", vf.Default, err)
			}
		}

		return "IntParamOr", jen.Lit(n), nil

	case binding.KindFloat:
		x := 0.0

		if vf.Default != "" {
			var err error
			if x, err = cast.ToFloat64E(vf.Default); err != nil {
				return "", nil, fmt.Errorf("default %q: %w", vf.Default, err)
			}
		}

		return "FloatParamOr", jen.Lit(x), nil

	default:
		return "", nil, fmt.Errorf("unsupported value kind %d", vf.Kind)
	}
}

// convert wraps the getter result in a conversion when the declared type is
// not the getter's result type.
func convert(vf binding.ValueField, value jen.Code) jen.Code {
	canonical := map[binding.ValueKind]string{
		binding.KindString: "string",
		binding.KindBool:   "bool",
		binding.KindInt:    "int",
		binding.KindFloat:  "float64",
	}

	if vf.TypeName == canonical[vf.Kind] {
		return value
	}

	return jen.Id(vf.TypeName).Call(value)
}
