package binding

import (
	"fmt"
	"go/token"

	"github.com/dave/jennifer/jen"
)

// IdentField describes the spec struct field that receives the annotated
// declaration's name.
//
// It is built once by ParseSpecStruct and read-only afterwards: the only
// mutation path is ParseNested, which the parser calls while dispatching the
// field's tag options.
type IdentField struct {
	// name is the Go field name in the spec struct.
	name string
	// typ is the field's declared type. Only consulted when a transform is
	// configured, to pin the transform's result type at the call site.
	typ jen.Code
	// with is the optional transform from the raw ident to typ.
	with *Callable
	// resolve turns a `with` value into a Callable. Defaults to
	// ParseCallable without import resolution.
	resolve CallableResolver
}

// CallableResolver resolves the textual value of a `with` key into a
// Callable. Parsers install a resolver that consults the transform registry
// and the file's imports.
type CallableResolver func(src string) (*Callable, error)

// NewIdentField creates a descriptor for the named field with the given
// declared type. A nil resolver falls back to plain expression parsing.
func NewIdentField(name string, typ jen.Code, resolve CallableResolver) *IdentField {
	if resolve == nil {
		resolve = func(src string) (*Callable, error) {
			return ParseCallable(src, nil)
		}
	}

	return &IdentField{name: name, typ: typ, resolve: resolve}
}

// Name returns the Go field name.
func (f *IdentField) Name() string {
	return f.name
}

// Type returns the field's declared type.
func (f *IdentField) Type() jen.Code {
	return f.typ
}

// With returns the configured transform, or nil.
func (f *IdentField) With() *Callable {
	return f.with
}

// ParseNested dispatches one configuration key from the ident field's tag.
// The only recognized key is "with"; any other key fails with an
// UnknownKeyError carrying the tag's source position. Malformed callable
// values surface the resolver's error unchanged.
func (f *IdentField) ParseNested(key, value string, span token.Position) error {
	if key != "with" {
		return &UnknownKeyError{Key: key, Span: span}
	}

	c, err := f.resolve(value)
	if err != nil {
		return err
	}

	f.with = c

	return nil
}

// UnknownKeyError reports a configuration key the ident field does not
// accept, pointing at the struct tag that carried it.
type UnknownKeyError struct {
	Key  string
	Span token.Position
}

func (e *UnknownKeyError) Error() string {
	msg := fmt.Sprintf("unknown configuration key %q for ident field (did you mean \"with\"?)", e.Key)
	if e.Span.IsValid() {
		return e.Span.String() + ": " + msg
	}

	return msg
}
