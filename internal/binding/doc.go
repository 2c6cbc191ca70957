// Package binding provides the descriptor model for spec structs: what the
// generator knows about each annotated struct before emitting its binder.
//
// A spec struct is a user-declared struct marked with @AttrSpec whose fields
// describe how configuration is pulled out of an annotation. Two field kinds
// exist:
//
//   - Value fields bind annotation parameters. The `attr` struct tag renames
//     the key and carries hints: `attr:"level,required"`,
//     `attr:"mode,default=fast"`, `attr:"-"` to skip.
//
//   - The ident field receives the name of the annotated declaration itself,
//     not a parameter. It is marked `attr:"ident"` and accepts exactly one
//     further configuration key, `with`, naming a fallible transform from the
//     raw ident to the field's declared type:
//     `attr:"ident,with=attr.RequireIdent"`.
//
// Descriptors are built once during parsing and read many times during
// generation; nothing mutates them after ParseSpecStruct returns.
//
// # Targets
//
// The @AttrSpec annotation's target parameter selects the declaration context
// the binder is generated for:
//
//   - target=field (the default): the annotated declaration may be unnamed
//     (an embedded struct field), so the raw ident is optional and the binder
//     takes *attr.Ident.
//   - target=type: type declarations always have a name, so the binder takes
//     a bare attr.Ident.
//
// Without a `with` transform the ident field's declared type must already
// match that context (*attr.Ident or attr.Ident); with a transform, the
// transform's input type must match it and its result type must match the
// field.
//
// # Transforms
//
// A `with` value is resolved in two steps: first against the transforms
// declared in attrbind.yaml (by name), then as a Go expression in the scope
// of the user's file (a named function or a pkg.Func selector, with the
// package resolved through the file's imports). Struct tags cannot carry
// commas, so func literals are only available through the YAML registry.
package binding
