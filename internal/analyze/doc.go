// Package analyze loads Go packages and locates spec struct declarations.
//
// Loading uses golang.org/x/tools/go/packages in syntax mode; detection is
// purely syntactic, walking each file's type declarations for doc comments
// carrying the marker annotation.
package analyze
