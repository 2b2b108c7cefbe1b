package annotation

import (
	"fmt"
	"strings"

	"cachediff-generator/internal/match"
)

//go:generate go tool stringer -type=ErrorKind -output=errorkind_string.go

// ErrorKind classifies annotation parse failures.
type ErrorKind int

const (
	// UnknownKey is a key outside the recognized set.
	UnknownKey ErrorKind = iota
	// MalformedValue is a rename value that is not a string literal, or a
	// display value that is not a function reference.
	MalformedValue
	// UnexpectedValue is a value given to ignore.
	UnexpectedValue
	// InvalidSyntax is input that is not a list of entries at all.
	InvalidSyntax
)

// Error describes a malformed annotation.
type Error struct {
	Kind ErrorKind
	// Key is the offending key, when one was read.
	Key string
	// Offset is the byte offset into the annotation text.
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return e.Msg
}

func unknownKeyError(name string, offset int) *Error {
	valid := make([]string, 0, len(Keys))
	names := make([]string, 0, len(Keys))

	for _, k := range Keys {
		valid = append(valid, "`"+string(k)+"`")
		names = append(names, string(k))
	}

	return &Error{
		Kind:   UnknownKey,
		Key:    name,
		Offset: offset,
		Msg: fmt.Sprintf("unknown %s key `%s`: must be one of %s%s",
			TagKey, name, strings.Join(valid, ", "), match.Hint(name, names)),
	}
}

func malformedValueError(key Key, offset int) *Error {
	var want string

	switch key {
	case KeyRename:
		want = `a string literal, e.g. rename = "Ruby version"`
	case KeyDisplay:
		want = "a function reference, e.g. display = pkg.Func"
	default:
		want = "a value"
	}

	return &Error{
		Kind:   MalformedValue,
		Key:    string(key),
		Offset: offset,
		Msg:    fmt.Sprintf("`%s` expects %s", key, want),
	}
}

func unexpectedValueError(key Key, offset int) *Error {
	return &Error{
		Kind:   UnexpectedValue,
		Key:    string(key),
		Offset: offset,
		Msg:    fmt.Sprintf("`%s` does not take a value", key),
	}
}

func syntaxError(offset int, format string, args ...any) *Error {
	return &Error{
		Kind:   InvalidSyntax,
		Offset: offset,
		Msg:    fmt.Sprintf(format, args...),
	}
}
