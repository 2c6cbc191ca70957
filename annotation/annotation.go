// Package annotation parses `@Name(key=value, ...)` annotations out of Go
// comments.
//
// Annotations are the attribute syntax consumed by attrbind-generator and by
// the binders it generates: the tool reads them from doc comments to find
// spec structs, and generated binders receive them at their own runtime to
// populate spec struct values.
//
// Supported parameter forms:
//   - key=`value` (backquoted)
//   - key="value" (quoted)
//   - key=value (bare, terminated by comma or whitespace)
package annotation

import (
	"go/ast"
	"go/token"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// annotationRegex matches @Name or @Name(params).
var annotationRegex = regexp.MustCompile(`@(\w+)(?:\(([^)]*)\))?`)

// paramRegex matches the three parameter forms, backquoted first so quoting
// wins over the bare form.
var paramRegex = regexp.MustCompile("(\\w+)\\s*=\\s*`([^`]*)`|(\\w+)\\s*=\\s*\"([^\"]*)\"|(\\w+)\\s*=\\s*([^,\\s]+)")

// Annotation is one parsed `@Name(...)` occurrence.
type Annotation struct {
	// Name is the annotation name without the leading "@".
	Name string
	// Params holds the parsed parameters, keys lowercased.
	Params map[string]string
	// Raw is the matched annotation text.
	Raw string
	// Pos is the source position of the annotation, when parsed from an
	// *ast.CommentGroup. Zero otherwise.
	Pos token.Position
}

// Parse parses all annotations from a block of comment text. Positions are
// left zero; use ParseCommentGroup when source attribution matters.
func Parse(comment string) []*Annotation {
	var annotations []*Annotation

	for _, line := range strings.Split(comment, "\n") {
		line = strings.TrimPrefix(line, "//")
		line = strings.TrimPrefix(line, "/*")
		line = strings.TrimSuffix(line, "*/")
		line = strings.TrimSpace(line)

		annotations = append(annotations, parseLine(line, token.Position{})...)
	}

	return annotations
}

// ParseCommentGroup parses annotations from a doc comment, attributing each
// annotation to the position of the comment line it appears on.
func ParseCommentGroup(cg *ast.CommentGroup, fset *token.FileSet) []*Annotation {
	if cg == nil {
		return nil
	}

	var annotations []*Annotation

	for _, c := range cg.List {
		pos := fset.Position(c.Pos())
		text := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(c.Text, "//"), "/*"), "*/")

		annotations = append(annotations, parseLine(strings.TrimSpace(text), pos)...)
	}

	return annotations
}

func parseLine(line string, pos token.Position) []*Annotation {
	var annotations []*Annotation

	for _, match := range annotationRegex.FindAllStringSubmatch(line, -1) {
		ann := &Annotation{
			Name:   match[1],
			Params: make(map[string]string),
			Raw:    match[0],
			Pos:    pos,
		}

		if len(match) > 2 && match[2] != "" {
			ann.Params = parseParams(match[2])
		}

		annotations = append(annotations, ann)
	}

	return annotations
}

// parseParams parses the parameter list between the annotation parentheses.
func parseParams(content string) map[string]string {
	params := make(map[string]string)

	for _, match := range paramRegex.FindAllStringSubmatch(content, -1) {
		var key, value string

		switch {
		case match[1] != "":
			key, value = match[1], match[2]
		case match[3] != "":
			key, value = match[3], match[4]
		case match[5] != "":
			key, value = match[5], match[6]
		}

		if key != "" {
			params[strings.ToLower(key)] = value
		}
	}

	return params
}

// FilterByNames returns the annotations whose name is in names. With no
// names, all annotations are returned.
func FilterByNames(annotations []*Annotation, names ...string) []*Annotation {
	if len(names) == 0 {
		return annotations
	}

	return lo.Filter(annotations, func(ann *Annotation, _ int) bool {
		return lo.Contains(names, ann.Name)
	})
}

// Has reports whether an annotation with the given name is present.
func Has(annotations []*Annotation, name string) bool {
	return Get(annotations, name) != nil
}

// Get returns the first annotation with the given name, or nil.
func Get(annotations []*Annotation, name string) *Annotation {
	ann, _ := lo.Find(annotations, func(ann *Annotation) bool {
		return ann.Name == name
	})

	return ann
}
