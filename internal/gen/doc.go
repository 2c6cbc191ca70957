// Package gen provides deterministic Go code generation for binder functions.
//
// Generation approach uses dave/jennifer for composable, gofmt-clean Go code.
//
// Codegen patterns:
//   - Direct assignment of the raw ident
//   - Transform calls pinned by an explicit function type conversion
//   - Typed parameter getters with generation-time default coercion
//   - Conversions for non-canonical numeric field types
package gen
