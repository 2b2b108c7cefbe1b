// Package common holds small helpers shared by the generator packages.
package common

import (
	"go/token"
	"strings"
	"unicode"
)

// PkgAlias returns an identifier to import pkgPath under, or "" for an empty
// path. It is the last path element without a major version suffix ("/v2"
// or "gopkg.in" style ".v2"), with every rune not allowed in an identifier
// replaced by an underscore.
//
// The result is a guess at the package name. Imports using it are written
// with an explicit name unless the package name is known to match.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	elems := strings.Split(pkgPath, "/")

	name := elems[len(elems)-1]
	if len(elems) > 1 && isMajorVersion(name) {
		name = elems[len(elems)-2]
	}

	if i := strings.LastIndex(name, ".v"); i > 0 && isDigits(name[i+2:]) {
		name = name[:i]
	}

	return identifier(name)
}

func isMajorVersion(elem string) bool {
	return len(elem) > 1 && elem[0] == 'v' && isDigits(elem[1:])
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func identifier(s string) string {
	id := strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}

		return '_'
	}, s)

	switch {
	case id == "":
		return "pkg"
	case unicode.IsDigit([]rune(id)[0]):
		id = "_" + id
	case token.IsKeyword(id):
		id += "_"
	}

	return id
}
