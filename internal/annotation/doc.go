// Package annotation parses the per-field `cachediff` struct tag.
//
// The tag value is a comma separated list of entries, tokenized with the Go
// scanner:
//
//	entry := 'rename' '=' string_literal
//	       | 'display' '=' ident ('.' ident)*
//	       | 'ignore'
//
// A field without the tag, or with an empty tag, yields the zero
// FieldAnnotation. The value "-" is shorthand for ignore. When a key appears
// more than once the last occurrence wins.
package annotation
