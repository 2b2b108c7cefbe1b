package plan

import (
	"errors"
	"go/token"
	"go/types"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cachediff-generator/cachediff"
	"cachediff-generator/internal/analyze"
	"cachediff-generator/internal/annotation"
)

var (
	stringType = types.Typ[types.String]
	pathType   = newNamed(cachediff.ImportPath, "cachediff", "Path")
	otherPath  = newNamed("example.com/fs", "fs", "Path")
)

func newNamed(pkgPath, pkgName, name string) *types.Named {
	pkg := types.NewPackage(pkgPath, pkgName)
	obj := types.NewTypeName(token.NoPos, pkg, name, nil)

	return types.NewNamed(obj, stringType, nil)
}

func field(name string, typ types.Type, tag string) analyze.FieldInfo {
	return analyze.FieldInfo{Name: name, Type: typ, Tag: reflect.StructTag(tag)}
}

func record(name string, fields ...analyze.FieldInfo) *analyze.StructInfo {
	for i := range fields {
		fields[i].Index = i
	}

	return &analyze.StructInfo{
		ID:     analyze.TypeID{PkgPath: "example.com/cache", Name: name},
		Fields: fields,
		Imports: map[string]string{
			"sv": "example.com/semver/v3",
		},
		PackageNames: map[string]string{
			"example.com/semver/v3": "semver",
		},
	}
}

func names(p *RecordPlan) []string {
	var out []string
	for _, f := range p.Fields {
		out = append(out, f.Name)
	}

	return out
}

func TestBuildRecord_OrderPreserved(t *testing.T) {
	s := record("Metadata",
		field("Version", stringType, ""),
		field("Distro", stringType, ""),
		field("Arch", stringType, ""),
	)

	p, err := NewBuilder(nil).BuildRecord(s)
	require.NoError(t, err)

	assert.Equal(t, []string{"Version", "Distro", "Arch"}, names(p))
	assert.Equal(t, s.ID, p.Type)
}

func TestBuildRecord_IgnoredFieldsDropped(t *testing.T) {
	s := record("Metadata",
		field("Version", stringType, ""),
		field("ChangedBy", stringType, `cachediff:"ignore"`),
		field("ChangedAt", stringType, `cachediff:"-"`),
		field("Note", stringType, `cachediff:"ignore, rename=\"Shown\", display=show"`),
		field("_", stringType, ""),
	)

	p, err := NewBuilder(nil).BuildRecord(s)
	require.NoError(t, err)

	assert.Equal(t, []string{"Version"}, names(p))
}

func TestBuildRecord_DisplayNames(t *testing.T) {
	s := record("Metadata",
		field("ruby_version", stringType, ""),
		field("Version", stringType, `cachediff:"rename=\"Ruby version\""`),
		field("a__b", stringType, ""),
		field("snake_case", stringType, `cachediff:"rename=\"kept_as_is\""`),
		field("Twice", stringType, `cachediff:"rename=\"A\", rename=\"B\""`),
	)

	p, err := NewBuilder(nil).BuildRecord(s)
	require.NoError(t, err)

	assert.Equal(t, []string{"ruby version", "Ruby version", "a  b", "kept_as_is", "B"}, names(p))
	assert.Equal(t, "ruby_version", p.Fields[0].Field)
}

func TestBuildRecord_DisplayStrategy(t *testing.T) {
	s := record("Metadata",
		field("Version", stringType, ""),
		field("Dir", pathType, ""),
		field("Other", otherPath, ""),
		field("Ptr", types.NewPointer(pathType), ""),
		field("Shown", pathType, `cachediff:"display=showDir"`),
		field("Semver", stringType, `cachediff:"display=sv.Canonical"`),
		field("Method", stringType, `cachediff:"display=Version.String"`),
	)

	p, err := NewBuilder(nil).BuildRecord(s)
	require.NoError(t, err)
	require.Len(t, p.Fields, 7, spew.Sdump(p))

	assert.Equal(t, DisplayIdentity, p.Fields[0].Display.Kind)
	assert.Equal(t, DisplayPath, p.Fields[1].Display.Kind)
	assert.Equal(t, DisplayIdentity, p.Fields[2].Display.Kind)
	assert.Equal(t, DisplayIdentity, p.Fields[3].Display.Kind)

	shown := p.Fields[4].Display
	assert.Equal(t, DisplayCustom, shown.Kind)
	assert.Equal(t, "showDir", shown.Func.String())
	assert.Empty(t, shown.ImportPath)

	semver := p.Fields[5].Display
	assert.Equal(t, DisplayCustom, semver.Kind)
	assert.Equal(t, "example.com/semver/v3", semver.ImportPath)
	assert.Equal(t, "semver", semver.PackageName)

	method := p.Fields[6].Display
	assert.Equal(t, "Version.String", method.Func.String())
	assert.Empty(t, method.ImportPath)
	assert.Empty(t, method.PackageName)
}

func TestBuildRecord_ZeroFields(t *testing.T) {
	p, err := NewBuilder(nil).BuildRecord(record("Hello"))
	require.NoError(t, err)

	assert.Empty(t, p.Fields)
}

func TestBuildRecord_AllIgnored(t *testing.T) {
	p, err := NewBuilder(nil).BuildRecord(record("Metadata",
		field("A", stringType, `cachediff:"ignore"`),
		field("B", stringType, `cachediff:"ignore"`),
	))
	require.NoError(t, err)

	assert.Empty(t, p.Fields)
}

func TestBuildRecord_PositionalFieldRejected(t *testing.T) {
	embedded := field("Base", newNamed("example.com/cache", "cache", "Base"), "")
	embedded.Embedded = true

	s := record("Metadata",
		field("Version", stringType, ""),
		embedded,
		field("Bad", stringType, `cachediff:"nope"`),
	)

	p, err := NewBuilder(nil).BuildRecord(s)
	require.Error(t, err)
	assert.Nil(t, p)

	var shape *ShapeError
	require.True(t, errors.As(err, &shape))
	assert.Equal(t, "Base", shape.Field)
	assert.Equal(t, "positional fields not supported", shape.Reason)
	assert.Contains(t, err.Error(), "example.com/cache.Metadata.Base: [UnsupportedShape]")

	// Shape is checked before any field annotation is parsed.
	var aerr *annotation.Error
	assert.False(t, errors.As(err, &aerr))
}

func TestBuildRecord_UnknownKey(t *testing.T) {
	s := record("Metadata", field("Version", stringType, `cachediff:"foo = \"bar\""`))

	_, err := NewBuilder(nil).BuildRecord(s)
	require.Error(t, err)

	for _, key := range []string{"rename", "display", "ignore"} {
		assert.Contains(t, err.Error(), key)
	}

	var aerr *annotation.Error
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, annotation.UnknownKey, aerr.Kind)
	assert.Contains(t, err.Error(), "Metadata.Version: [UnknownKey]")
}

func TestBuildRecord_CollectsAllFieldErrors(t *testing.T) {
	s := record("Metadata",
		field("A", stringType, `cachediff:"rename=A"`),
		field("B", stringType, ""),
		field("C", stringType, `cachediff:"ignore=yes"`),
	)

	_, err := NewBuilder(nil).BuildRecord(s)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "Metadata.A: [MalformedValue]")
	assert.Contains(t, err.Error(), "Metadata.C: [UnexpectedValue]")
	assert.NotContains(t, err.Error(), "Metadata.B")
}

func TestBuildRecord_Overrides(t *testing.T) {
	s := record("Metadata",
		field("Version", stringType, `cachediff:"rename=\"From tag\""`),
		field("Distro", stringType, ""),
	)

	rename, err := annotation.Parse(`rename = "From config"`)
	require.NoError(t, err)

	ignore, err := annotation.Parse(`ignore`)
	require.NoError(t, err)

	b := NewBuilder(Overrides{
		s.ID: {
			"Version": rename,
			"Distro":  ignore,
		},
	})

	p, err := b.BuildRecord(s)
	require.NoError(t, err)

	assert.Equal(t, []string{"From config"}, names(p))
}

func TestBuildRecord_OverrideUnknownField(t *testing.T) {
	s := record("Metadata", field("Version", stringType, ""))

	b := NewBuilder(Overrides{
		s.ID: {"Missing": {Ignore: true}},
	})

	_, err := b.BuildRecord(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Metadata.Missing: [UnknownField]")
}

func TestBuildPackage(t *testing.T) {
	pkg := &analyze.PackageInfo{Path: "example.com/cache", Name: "cache"}

	good := record("Good", field("A", stringType, ""))
	empty := record("Empty")

	pp, err := NewBuilder(nil).BuildPackage(pkg, []*analyze.StructInfo{good, empty})
	require.NoError(t, err)

	require.Len(t, pp.Records, 2)
	assert.Equal(t, "Good", pp.Records[0].Type.Name)
	assert.Equal(t, "Empty", pp.Records[1].Type.Name)
	assert.Same(t, pkg, pp.Package)

	bad := record("Bad", field("A", stringType, `cachediff:"what"`))
	worse := record("Worse", field("B", stringType, `cachediff:"rename"`))

	_, err = NewBuilder(nil).BuildPackage(pkg, []*analyze.StructInfo{good, bad, worse})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad.A")
	assert.Contains(t, err.Error(), "Worse.B")
}

func TestBuildRecord_InterfaceWarning(t *testing.T) {
	anyType := types.Universe.Lookup("any").Type()
	tparam := types.NewTypeParam(types.NewTypeName(token.NoPos, nil, "T", nil), anyType)
	holder := types.NewStruct([]*types.Var{types.NewField(token.NoPos, nil, "V", anyType, false)}, nil)

	s := record("Metadata",
		field("Version", stringType, ""),
		field("Value", anyType, ""),
		field("Param", tparam, ""),
		field("Holder", holder, ""),
		field("Values", types.NewArray(anyType, 2), ""),
		field("Ptr", types.NewPointer(anyType), ""),
		field("Skipped", anyType, `cachediff:"ignore"`),
	)

	p, err := NewBuilder(nil).BuildRecord(s)
	require.NoError(t, err)
	require.Len(t, p.Fields, 6)

	var fields []string
	for _, w := range p.Warnings {
		assert.Equal(t, CodeNonComparableInterface, w.Code)
		assert.Equal(t, "example.com/cache.Metadata", w.Type)
		fields = append(fields, w.FieldPath)
	}

	assert.Equal(t, []string{"Value", "Holder", "Values"}, fields, spew.Sdump(p.Warnings))
}

func TestDisplayKind_String(t *testing.T) {
	assert.Equal(t, "identity", DisplayIdentity.String())
	assert.Equal(t, "path", DisplayPath.String())
	assert.Equal(t, "custom", DisplayCustom.String())
	assert.Equal(t, "unknown", DisplayKind(7).String())
}

func TestRecordPlan_IsGeneric(t *testing.T) {
	assert.False(t, (&RecordPlan{}).IsGeneric())
	assert.True(t, (&RecordPlan{TypeParams: []string{"T"}}).IsGeneric())
}
