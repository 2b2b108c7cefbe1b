package annotation

import (
	"slices"
	"strings"
)

// TagKey is the struct tag key holding a field's annotation.
const TagKey = "cachediff"

// Key is a recognized annotation key.
type Key string

const (
	KeyRename  Key = "rename"
	KeyDisplay Key = "display"
	KeyIgnore  Key = "ignore"
)

// Keys lists every recognized key in documentation order.
var Keys = []Key{KeyRename, KeyDisplay, KeyIgnore}

func lookupKey(name string) (Key, bool) {
	for _, k := range Keys {
		if string(k) == name {
			return k, true
		}
	}

	return "", false
}

// FieldAnnotation is the validated configuration of one field.
// Each option is independently optional.
type FieldAnnotation struct {
	// Rename overrides the display name of the field.
	Rename *string
	// Display names the function used to render the field value.
	Display *FuncRef
	// Ignore excludes the field from the comparison. It takes precedence over
	// Rename and Display.
	Ignore bool
}

// IsZero returns true if no option is set.
func (a FieldAnnotation) IsZero() bool {
	return a.Rename == nil && a.Display == nil && !a.Ignore
}

// Merge returns a copy of a with every option set in other applied on top.
func (a FieldAnnotation) Merge(other FieldAnnotation) FieldAnnotation {
	if other.Rename != nil {
		a.Rename = other.Rename
	}

	if other.Display != nil {
		a.Display = other.Display
	}

	if other.Ignore {
		a.Ignore = true
	}

	return a
}

// FuncRef is a reference to a function resolvable where the generated code
// lives: "fn", "pkg.Fn", "Type.Method" or "pkg.Type.Method".
type FuncRef struct {
	Segments []string
}

// ParseFuncRef builds a FuncRef from its dotted form. It performs no
// validation beyond splitting.
func ParseFuncRef(s string) FuncRef {
	return FuncRef{Segments: strings.Split(s, ".")}
}

// Qualifier returns the first segment of a qualified reference, or "" for a
// bare identifier.
func (f FuncRef) Qualifier() string {
	if len(f.Segments) < 2 {
		return ""
	}

	return f.Segments[0]
}

// WithQualifier returns a copy of a qualified reference with its first
// segment replaced by q. Bare identifiers are returned unchanged.
func (f FuncRef) WithQualifier(q string) FuncRef {
	if f.Qualifier() == "" {
		return f
	}

	segments := slices.Clone(f.Segments)
	segments[0] = q

	return FuncRef{Segments: segments}
}

// String returns the dotted source form of the reference.
func (f FuncRef) String() string {
	return strings.Join(f.Segments, ".")
}
