package binding

import (
	"go/token"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentField_Accessors(t *testing.T) {
	f := NewIdentField("Ident", jen.Id("string"), nil)

	assert.Equal(t, "Ident", f.Name())
	assert.NotNil(t, f.Type())
	assert.Nil(t, f.With())
}

func TestIdentField_ParseNested_With(t *testing.T) {
	f := NewIdentField("Ident", jen.Id("string"), nil)

	err := f.ParseNested("with", "attr.RequireIdent", token.Position{})
	require.NoError(t, err)

	// Round-trip: the configured transform reads back as the same expression.
	require.NotNil(t, f.With())
	assert.Equal(t, "attr.RequireIdent", f.With().String())
}

func TestIdentField_ParseNested_UnknownKey(t *testing.T) {
	f := NewIdentField("Ident", jen.Id("string"), nil)
	span := token.Position{Filename: "spec.go", Line: 7, Column: 14}

	err := f.ParseNested("bogus", "1", span)
	require.Error(t, err)

	var unknown *UnknownKeyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "bogus", unknown.Key)
	assert.Equal(t, span, unknown.Span)
	assert.Contains(t, err.Error(), "spec.go:7:14")
	assert.Contains(t, err.Error(), `"bogus"`)

	// The failed dispatch must not have configured anything.
	assert.Nil(t, f.With())
}

func TestIdentField_ParseNested_MalformedCallable(t *testing.T) {
	f := NewIdentField("Ident", jen.Id("string"), nil)

	err := f.ParseNested("with", "not a callable!!", token.Position{})
	require.Error(t, err)
	assert.NotErrorAs(t, err, new(*UnknownKeyError))
	assert.Nil(t, f.With())
}

func TestIdentField_CustomResolver(t *testing.T) {
	called := ""
	resolve := func(src string) (*Callable, error) {
		called = src
		return ParseCallable("resolved", nil)
	}

	f := NewIdentField("Ident", jen.Id("string"), resolve)

	require.NoError(t, f.ParseNested("with", "Lookup", token.Position{}))
	assert.Equal(t, "Lookup", called)
	assert.Equal(t, "resolved", f.With().String())
}
