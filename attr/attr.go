// Package attr is the runtime support package imported by generated binders.
//
// It holds the small set of types and helpers that generated code is allowed
// to reference: the Ident value carried from the annotated declaration into
// the bound spec struct, and RequireIdent for spec structs that only ever
// bind named declarations.
package attr

import (
	"errors"
	"go/token"
)

// Ident is the name of an annotated declaration together with the source
// position where it was declared.
type Ident struct {
	// Name is the declared identifier, e.g. the struct field name.
	Name string
	// Pos is the position of the declaration in the user's source.
	Pos token.Position
}

// NewIdent returns an Ident with the given name and no position.
func NewIdent(name string) Ident {
	return Ident{Name: name}
}

// String returns the identifier name.
func (i Ident) String() string {
	return i.Name
}

// IsZero returns true if the ident carries no name.
func (i Ident) IsZero() bool {
	return i.Name == ""
}

// ErrExpectedIdent is returned by RequireIdent when no identifier is present.
var ErrExpectedIdent = errors.New("expected identifier")

// RequireIdent attaches an error to a missing *Ident, turning it into
// (Ident, error) so it composes with the `with` transform hook on a spec
// struct field.
//
// Binding a field-targeted spec struct requires the ident field, if present,
// to be *Ident, since the declaration may be unnamed (an embedded field).
// When a spec struct is only ever bound against named declarations there is
// no need for the pointer:
//
//	type Options struct {
//		// Without with=, this must be *attr.Ident.
//		Ident attr.Ident `attr:"ident,with=attr.RequireIdent"`
//	}
func RequireIdent(id *Ident) (Ident, error) {
	if id == nil {
		return Ident{}, ErrExpectedIdent
	}

	return *id, nil
}
