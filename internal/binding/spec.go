package binding

import (
	"go/token"

	"github.com/dave/jennifer/jen"
)

// TargetKind is the declaration context a spec struct binds against. It
// decides whether the raw ident reaching the binder is optional.
type TargetKind int

const (
	// TargetField binds struct fields, which may be unnamed (embedded), so
	// the binder receives *attr.Ident.
	TargetField TargetKind = iota
	// TargetType binds type declarations, which always have a name, so the
	// binder receives a bare attr.Ident.
	TargetType
)

// String returns the target spelling used in @AttrSpec(target=...).
func (k TargetKind) String() string {
	switch k {
	case TargetField:
		return "field"
	case TargetType:
		return "type"
	default:
		return "unknown"
	}
}

//go:generate go tool stringer -type=ValueKind -output=valuekind_string.go

// ValueKind classifies a value field's declared type, selecting the typed
// parameter getter its binding code calls.
type ValueKind int

const (
	KindString ValueKind = iota
	KindBool
	KindInt
	KindFloat
)

// SpecStruct is the parsed descriptor for one @AttrSpec-annotated struct.
type SpecStruct struct {
	// Name is the struct's type name.
	Name string
	// PkgPath and PkgName locate the package the struct (and its generated
	// binder) lives in.
	PkgPath string
	PkgName string
	// Dir is the package directory, used to place the generated file.
	Dir string
	// Pos is where the struct is declared.
	Pos token.Position
	// Target selects the binder flavor.
	Target TargetKind
	// Ident is the ident field descriptor, or nil when the struct has none.
	Ident *IdentField
	// Fields are the value fields, in declaration order.
	Fields []ValueField
}

// ValueField describes one annotation-bound field of a spec struct.
type ValueField struct {
	// Name is the Go field name.
	Name string
	// Key is the annotation parameter key, from the tag name or the
	// lowercased field name.
	Key string
	// Type is the declared field type.
	Type jen.Code
	// TypeName is the declared type's spelling, used to decide whether the
	// getter's result needs a conversion (e.g. int32 from an int getter).
	TypeName string
	// Kind selects the typed getter.
	Kind ValueKind
	// Required makes binding fail when the parameter is absent.
	Required bool
	// Default is the parameter's textual default, coerced to Kind at
	// generation time. Empty means the zero value.
	Default string
	// Pos is where the field is declared.
	Pos token.Position
}
