package annotation

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		want    []string // annotation names, in order
	}{
		{"none", "// just a comment", nil},
		{"bare", "// @AttrSpec", []string{"AttrSpec"}},
		{"with params", "// @AttrSpec(target=field)", []string{"AttrSpec"}},
		{"two on one line", "// @A @B(x=1)", []string{"A", "B"}},
		{"multi line", "// @A\n// text\n// @B", []string{"A", "B"}},
		{"block comment", "/* @A(x=1) */", []string{"A"}},
		{"email is not an annotation", "// mail me at a@b.com", []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anns := Parse(tt.comment)

			var names []string
			for _, ann := range anns {
				names = append(names, ann.Name)
			}

			assert.Equal(t, tt.want, names)
		})
	}
}

func TestParse_Params(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		key     string
		want    string
	}{
		{"bare value", "// @A(target=field)", "target", "field"},
		{"quoted value", `// @A(name="hello world")`, "name", "hello world"},
		{"backquoted value", "// @A(expr=`a, b`)", "expr", "a, b"},
		{"key lowercased", "// @A(Target=type)", "target", "type"},
		{"multiple", "// @A(a=1, b=2)", "b", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anns := Parse(tt.comment)
			require.Len(t, anns, 1)
			assert.Equal(t, tt.want, anns[0].Param(tt.key))
		})
	}
}

func TestParseCommentGroup_Positions(t *testing.T) {
	src := `package demo

// Options configures a binding.
//
// @AttrSpec(target=type)
type Options struct{}
`

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "demo.go", src, parser.ParseComments)
	require.NoError(t, err)

	gd := file.Decls[0].(*ast.GenDecl)
	anns := ParseCommentGroup(gd.Doc, fset)
	require.Len(t, anns, 1)

	assert.Equal(t, "AttrSpec", anns[0].Name)
	assert.Equal(t, "demo.go", anns[0].Pos.Filename)
	assert.Equal(t, 5, anns[0].Pos.Line)
}

func TestFilterByNames(t *testing.T) {
	anns := Parse("// @A\n// @B\n// @C")

	assert.Len(t, FilterByNames(anns), 3)
	assert.Len(t, FilterByNames(anns, "A", "C"), 2)
	assert.Empty(t, FilterByNames(anns, "Z"))

	assert.True(t, Has(anns, "B"))
	assert.False(t, Has(anns, "Z"))
	require.NotNil(t, Get(anns, "A"))
	assert.Nil(t, Get(anns, "Z"))
}

func TestTypedParams(t *testing.T) {
	anns := Parse("// @A(count=3, ratio=0.5, on=true, bad=xyz)")
	require.Len(t, anns, 1)
	ann := anns[0]

	n, err := ann.IntParamOr("count", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = ann.IntParamOr("missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	f, err := ann.FloatParamOr("ratio", 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, f, 1e-9)

	b, err := ann.BoolParamOr("on", false)
	require.NoError(t, err)
	assert.True(t, b)

	_, err = ann.BoolParamOr("bad", false)
	assert.Error(t, err)

	_, err = ann.RequireParam("missing")
	assert.Error(t, err)

	v, err := ann.RequireParam("count")
	require.NoError(t, err)
	assert.Equal(t, "3", v)
}
