package cachediff

import (
	"fmt"
)

// ImportPath is the import path generated code uses to refer to this package.
const ImportPath = "cachediff-generator/cachediff"

// Differ is implemented by cache metadata types.
//
// Generated implementations compare fields with !=. A field holding an
// interface panics when both values hold the same non-comparable dynamic
// type, such as a slice or a map.
type Differ[T any] interface {
	// Diff returns the differences between the receiver and old, in field
	// declaration order. An empty result means the cache should be retained.
	Diff(old T) []string
}

// Changed reports whether now differs from old.
func Changed[T Differ[T]](now, old T) bool {
	return len(now.Diff(old)) > 0
}

// FormatValue is the default value formatter. It wraps the textual form of v
// in backticks.
func FormatValue(v any) string {
	return fmt.Sprintf("`%v`", v)
}
