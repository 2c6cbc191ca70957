package common

import (
	"path"
	"strings"
)

// PkgAlias returns the package name implied by an import path: its last
// element, skipping a major-version suffix ("example.com/pkg/v2" is "pkg").
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if isMajorVersion(base) {
		base = path.Base(path.Dir(pkgPath))
	}

	return base
}

func isMajorVersion(elem string) bool {
	if len(elem) < 2 || elem[0] != 'v' {
		return false
	}

	digits := elem[1:]

	return strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) < 0
}
