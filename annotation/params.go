package annotation

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Param returns the parameter value for key, or "" when absent. Keys are
// case-insensitive.
func (a *Annotation) Param(key string) string {
	v, _ := a.lookup(key)
	return v
}

// ParamOr returns the parameter value for key, or def when absent.
func (a *Annotation) ParamOr(key, def string) string {
	if v, ok := a.lookup(key); ok {
		return v
	}

	return def
}

// HasParam reports whether the parameter is present.
func (a *Annotation) HasParam(key string) bool {
	_, ok := a.lookup(key)
	return ok
}

// RequireParam returns the parameter value for key, or an error naming the
// missing key.
func (a *Annotation) RequireParam(key string) (string, error) {
	v, ok := a.lookup(key)
	if !ok {
		return "", fmt.Errorf("@%s: missing required parameter %q", a.Name, key)
	}

	return v, nil
}

// BoolParamOr returns the parameter coerced to bool, or def when absent.
// Coercion accepts the usual textual bool spellings (true/false, 1/0, t/f).
func (a *Annotation) BoolParamOr(key string, def bool) (bool, error) {
	v, ok := a.lookup(key)
	if !ok {
		return def, nil
	}

	b, err := cast.ToBoolE(v)
	if err != nil {
		return def, fmt.Errorf("@%s: parameter %q: %w", a.Name, key, err)
	}

	return b, nil
}

// IntParamOr returns the parameter coerced to int, or def when absent.
func (a *Annotation) IntParamOr(key string, def int) (int, error) {
	v, ok := a.lookup(key)
	if !ok {
		return def, nil
	}

	n, err := cast.ToIntE(v)
	if err != nil {
		return def, fmt.Errorf("@%s: parameter %q: %w", a.Name, key, err)
	}

	return n, nil
}

// FloatParamOr returns the parameter coerced to float64, or def when absent.
func (a *Annotation) FloatParamOr(key string, def float64) (float64, error) {
	v, ok := a.lookup(key)
	if !ok {
		return def, nil
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return def, fmt.Errorf("@%s: parameter %q: %w", a.Name, key, err)
	}

	return f, nil
}

func (a *Annotation) lookup(key string) (string, bool) {
	// Params are stored lowercased at parse time.
	v, ok := a.Params[strings.ToLower(key)]
	return v, ok
}
