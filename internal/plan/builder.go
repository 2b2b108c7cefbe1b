package plan

import (
	"errors"
	"fmt"
	"go/types"
	"maps"
	"slices"
	"strings"

	"cachediff-generator/internal/analyze"
	"cachediff-generator/internal/annotation"
	"cachediff-generator/internal/diagnostic"
	"cachediff-generator/internal/match"
)

// Diagnostic codes.
const (
	CodeUnsupportedShape = "UnsupportedShape"
	CodeUnknownField     = "UnknownField"

	CodeNonComparableInterface = "NonComparableInterface"
)

const positionalReason = "positional fields not supported"

// Builder builds record plans.
type Builder struct {
	overrides Overrides
}

// NewBuilder creates a Builder applying the given overrides. A nil map is
// valid.
func NewBuilder(overrides Overrides) *Builder {
	return &Builder{overrides: overrides}
}

// BuildRecord builds the plan for one struct. All problems found in the
// record are reported together; no plan is returned if there are any.
func (b *Builder) BuildRecord(s *analyze.StructInfo) (*RecordPlan, error) {
	diags := b.buildRecord(s)
	if diags.plan == nil {
		return nil, diags.Err()
	}

	return diags.plan, nil
}

// BuildPackage builds plans for the given structs of one package, keeping
// their order.
func (b *Builder) BuildPackage(pkg *analyze.PackageInfo, structs []*analyze.StructInfo) (*PackagePlan, error) {
	var diags diagnostic.Diagnostics

	out := &PackagePlan{Package: pkg}

	for _, s := range structs {
		res := b.buildRecord(s)
		if res.plan == nil {
			diags.Merge(res.Diagnostics)
			continue
		}

		out.Records = append(out.Records, *res.plan)
	}

	if err := diags.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

type recordResult struct {
	diagnostic.Diagnostics
	plan *RecordPlan
}

func (b *Builder) buildRecord(s *analyze.StructInfo) recordResult {
	var res recordResult

	typeName := s.ID.String()

	// Reject the shape before planning any field.
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Embedded {
			res.AddErr(CodeUnsupportedShape, &ShapeError{
				Type:   s.ID,
				Field:  f.Name,
				Reason: positionalReason,
			}, typeName, f.Name)
		}
	}

	if res.HasErrors() {
		return res
	}

	overrides := b.overrides[s.ID]
	for _, name := range slices.Sorted(maps.Keys(overrides)) {
		if s.Field(name) == nil {
			res.AddError(CodeUnknownField,
				fmt.Sprintf("configured field %s does not exist%s", name, match.Hint(name, fieldNames(s))), typeName, name)
		}
	}

	p := &RecordPlan{
		Type:       s.ID,
		TypeParams: s.TypeParams,
	}

	for i := range s.Fields {
		f := &s.Fields[i]

		a, err := annotation.FromTag(f.Tag)
		if err != nil {
			res.AddErr(errorCode(err), err, typeName, f.Name)
			continue
		}

		if o, ok := overrides[f.Name]; ok {
			a = a.Merge(o)
		}

		fp, ok := planField(s, f, a)
		if !ok {
			continue
		}

		if holdsInterface(f.Type) {
			res.AddWarning(CodeNonComparableInterface,
				fmt.Sprintf("field type %s holds an interface; the comparison panics if both values hold the same non-comparable type", f.Type), typeName, f.Name)
		}

		p.Fields = append(p.Fields, fp)
	}

	if res.HasErrors() {
		return res
	}

	p.Warnings = res.Warnings
	res.plan = p

	return res
}

// planField resolves one field. It returns false for fields left out of the
// comparison.
func planField(s *analyze.StructInfo, f *analyze.FieldInfo, a annotation.FieldAnnotation) (FieldPlan, bool) {
	// Blank fields cannot be read.
	if a.Ignore || f.Name == "_" {
		return FieldPlan{}, false
	}

	return FieldPlan{
		Field:   f.Name,
		Name:    DisplayName(f.Name, a),
		Display: selectDisplay(s, f, a),
	}, true
}

// DisplayName returns the rename value verbatim, or the field name with every
// underscore replaced by a space.
func DisplayName(field string, a annotation.FieldAnnotation) string {
	if a.Rename != nil {
		return *a.Rename
	}

	return strings.ReplaceAll(field, "_", " ")
}

// selectDisplay resolves override, then type-specific default, then identity.
func selectDisplay(s *analyze.StructInfo, f *analyze.FieldInfo, a annotation.FieldAnnotation) Display {
	if a.Display != nil {
		ref := *a.Display
		importPath := s.Imports[ref.Qualifier()]

		return Display{
			Kind:        DisplayCustom,
			Func:        &ref,
			ImportPath:  importPath,
			PackageName: s.PackageNames[importPath],
		}
	}

	if analyze.IsPathType(f.Type) {
		return Display{Kind: DisplayPath}
	}

	return Display{Kind: DisplayIdentity}
}

// holdsInterface reports whether comparing values of t with != may compare
// interface values. Type parameters are left to their constraint.
func holdsInterface(t types.Type) bool {
	switch t := types.Unalias(t).(type) {
	case *types.TypeParam:
		return false
	case *types.Named:
		return holdsInterface(t.Underlying())
	case *types.Interface:
		return true
	case *types.Struct:
		for i := range t.NumFields() {
			if holdsInterface(t.Field(i).Type()) {
				return true
			}
		}

		return false
	case *types.Array:
		return holdsInterface(t.Elem())
	default:
		return false
	}
}

func fieldNames(s *analyze.StructInfo) []string {
	names := make([]string, len(s.Fields))
	for i := range s.Fields {
		names[i] = s.Fields[i].Name
	}

	return names
}

func errorCode(err error) string {
	var aerr *annotation.Error
	if errors.As(err, &aerr) {
		return aerr.Kind.String()
	}

	return "InvalidAnnotation"
}
