package gen

import (
	"fmt"
	"go/token"
	"strings"

	"cachediff-generator/cachediff"
)

// cachediffQualifier is accepted as shorthand for the runtime package.
const cachediffQualifier = "cachediff"

// Formatter names the function generated code wraps each displayed value
// with. It must accept any value and return a string.
type Formatter struct {
	// ImportPath is the package declaring the function; empty means the
	// package being generated into.
	ImportPath string
	// Name is the function name.
	Name string
}

// DefaultFormatter is cachediff.FormatValue.
func DefaultFormatter() Formatter {
	return Formatter{ImportPath: cachediff.ImportPath, Name: "FormatValue"}
}

// String returns the formatter in the form accepted by ParseFormatter.
func (f Formatter) String() string {
	if f.ImportPath == "" {
		return f.Name
	}

	return f.ImportPath + "." + f.Name
}

// ParseFormatter parses a formatter reference:
//   - "Func" for a function of the generated package
//   - "cachediff.Func" for a function of the runtime package
//   - "import/path.Func" for any other package
func ParseFormatter(s string) (Formatter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultFormatter(), nil
	}

	slash := strings.LastIndex(s, "/")
	dot := strings.LastIndex(s, ".")

	if dot <= slash {
		if !token.IsIdentifier(s) {
			return Formatter{}, fmt.Errorf("invalid formatter %q: expected [import/path.]Func", s)
		}

		return Formatter{Name: s}, nil
	}

	pkgPath, name := s[:dot], s[dot+1:]
	if pkgPath == "" || !token.IsIdentifier(name) {
		return Formatter{}, fmt.Errorf("invalid formatter %q: expected [import/path.]Func", s)
	}

	if pkgPath == cachediffQualifier {
		pkgPath = cachediff.ImportPath
	}

	return Formatter{ImportPath: pkgPath, Name: name}, nil
}
