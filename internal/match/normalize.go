package match

import (
	"strings"
	"unicode"
)

// Normalize folds s to lower case and strips the separators _, - and space,
// so that "Ruby_Version", "rubyVersion" and "ruby-version" compare equal.
func Normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		switch r {
		case '_', '-', ' ':
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
