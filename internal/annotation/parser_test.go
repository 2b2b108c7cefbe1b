package annotation

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string {
	return &s
}

func TestParse_Rename(t *testing.T) {
	a, err := Parse(`rename="Ruby version"`)
	require.NoError(t, err)

	assert.Equal(t, FieldAnnotation{Rename: ptr("Ruby version")}, a)
}

func TestParse_RenameRawString(t *testing.T) {
	a, err := Parse("rename = `Ruby version`")
	require.NoError(t, err)

	require.NotNil(t, a.Rename)
	assert.Equal(t, "Ruby version", *a.Rename)
}

func TestParse_Display(t *testing.T) {
	a, err := Parse(`display = my_function`)
	require.NoError(t, err)

	require.NotNil(t, a.Display)
	assert.Equal(t, []string{"my_function"}, a.Display.Segments)
	assert.Empty(t, a.Display.Qualifier())
	assert.Nil(t, a.Rename)
	assert.False(t, a.Ignore)
}

func TestParse_DisplayQualified(t *testing.T) {
	a, err := Parse(`display=semver.Version.String`)
	require.NoError(t, err)

	require.NotNil(t, a.Display)
	assert.Equal(t, "semver.Version.String", a.Display.String())
	assert.Equal(t, "semver", a.Display.Qualifier())
}

func TestParse_Ignore(t *testing.T) {
	a, err := Parse(`ignore`)
	require.NoError(t, err)

	assert.Equal(t, FieldAnnotation{Ignore: true}, a)
}

func TestParse_IgnoreShorthand(t *testing.T) {
	a, err := Parse(" - ")
	require.NoError(t, err)

	assert.True(t, a.Ignore)
}

func TestParse_Combined(t *testing.T) {
	a, err := Parse(`rename="Ruby version", display=myDisplay, ignore,`)
	require.NoError(t, err)

	require.NotNil(t, a.Rename)
	require.NotNil(t, a.Display)
	assert.Equal(t, "Ruby version", *a.Rename)
	assert.Equal(t, "myDisplay", a.Display.String())
	assert.True(t, a.Ignore)
}

func TestParse_Empty(t *testing.T) {
	a, err := Parse("")
	require.NoError(t, err)
	assert.True(t, a.IsZero())

	a, err = Parse("   ")
	require.NoError(t, err)
	assert.True(t, a.IsZero())
}

func TestParse_DuplicateLastWins(t *testing.T) {
	a, err := Parse(`rename = "A", rename = "B"`)
	require.NoError(t, err)

	require.NotNil(t, a.Rename)
	assert.Equal(t, "B", *a.Rename)

	a, err = Parse(`display = first, display = second`)
	require.NoError(t, err)
	assert.Equal(t, "second", a.Display.String())
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse(`foo = "bar"`)
	require.Error(t, err)

	var aerr *Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, UnknownKey, aerr.Kind)
	assert.Equal(t, "foo", aerr.Key)
	assert.Equal(t, 0, aerr.Offset)
	assert.Equal(t, "unknown cachediff key `foo`: must be one of `rename`, `display`, `ignore`", err.Error())
}

func TestParse_UnknownKeySuggestion(t *testing.T) {
	_, err := Parse(`renam = "x"`)
	require.Error(t, err)
	assert.Equal(t, "unknown cachediff key `renam`: must be one of `rename`, `display`, `ignore` (did you mean rename?)", err.Error())
}

func TestParse_UnknownKeyAfterValidEntry(t *testing.T) {
	_, err := Parse(`ignore, colour = red`)

	var aerr *Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, UnknownKey, aerr.Kind)
	assert.Equal(t, "colour", aerr.Key)
	assert.Equal(t, 8, aerr.Offset)
	assert.Contains(t, err.Error(), "`rename`")
	assert.Contains(t, err.Error(), "`display`")
	assert.Contains(t, err.Error(), "`ignore`")
}

func TestParse_MalformedValue(t *testing.T) {
	tests := []struct {
		name string
		text string
		key  string
	}{
		{"rename without value", `rename`, "rename"},
		{"rename identifier", `rename = RubyVersion`, "rename"},
		{"rename char literal", `rename = 'x'`, "rename"},
		{"rename number", `rename = 3`, "rename"},
		{"rename expression", `rename = "a" + "b"`, "rename"},
		{"display without value", `display`, "display"},
		{"display string", `display = "fmt.Sprint"`, "display"},
		{"display call", `display = fmt.Sprint()`, "display"},
		{"display trailing dot", `display = fmt.`, "display"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)

			var aerr *Error
			require.ErrorAs(t, err, &aerr)
			assert.Equal(t, MalformedValue, aerr.Kind, err.Error())
			assert.Equal(t, tt.key, aerr.Key)
		})
	}
}

func TestParse_UnexpectedValue(t *testing.T) {
	_, err := Parse(`ignore = true`)

	var aerr *Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, UnexpectedValue, aerr.Kind)
	assert.Equal(t, "ignore", aerr.Key)
	assert.Equal(t, "`ignore` does not take a value", err.Error())
}

func TestParse_InvalidSyntax(t *testing.T) {
	for _, text := range []string{
		`,`,
		`ignore ignore`,
		`"rename"`,
		`rename = "unterminated`,
		`ignore; rename = "x"`,
	} {
		t.Run(text, func(t *testing.T) {
			_, err := Parse(text)

			var aerr *Error
			require.ErrorAs(t, err, &aerr)
			assert.Equal(t, InvalidSyntax, aerr.Kind, err.Error())
		})
	}
}

func TestFromTag(t *testing.T) {
	a, err := FromTag(reflect.StructTag(`json:"version" cachediff:"rename=\"Ruby version\""`))
	require.NoError(t, err)
	require.NotNil(t, a.Rename)
	assert.Equal(t, "Ruby version", *a.Rename)

	a, err = FromTag(reflect.StructTag(`json:"version"`))
	require.NoError(t, err)
	assert.True(t, a.IsZero())

	_, err = FromTag(reflect.StructTag(`cachediff:"nope"`))
	var aerr *Error
	assert.True(t, errors.As(err, &aerr))
}

func TestFieldAnnotation_Merge(t *testing.T) {
	base := FieldAnnotation{Rename: ptr("A")}
	display := ParseFuncRef("pkg.Show")

	merged := base.Merge(FieldAnnotation{Rename: ptr("B"), Display: &display})
	assert.Equal(t, "B", *merged.Rename)
	assert.Equal(t, "pkg.Show", merged.Display.String())
	assert.False(t, merged.Ignore)

	kept := base.Merge(FieldAnnotation{Ignore: true})
	assert.Equal(t, "A", *kept.Rename)
	assert.True(t, kept.Ignore)

	// Merge does not mutate the receiver.
	assert.Equal(t, "A", *base.Rename)
}

func TestFuncRef_WithQualifier(t *testing.T) {
	ref := ParseFuncRef("s.Type.Method")

	assert.Equal(t, "s2.Type.Method", ref.WithQualifier("s2").String())
	assert.Equal(t, "s.Type.Method", ref.String())
	assert.Equal(t, "show", ParseFuncRef("show").WithQualifier("x").String())
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "UnknownKey", UnknownKey.String())
	assert.Equal(t, "MalformedValue", MalformedValue.String())
	assert.Equal(t, "UnexpectedValue", UnexpectedValue.String())
	assert.Equal(t, "InvalidSyntax", InvalidSyntax.String())
	assert.Equal(t, "ErrorKind(9)", ErrorKind(9).String())
}
