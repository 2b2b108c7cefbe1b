package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"cachediff-generator/internal/analyze"
	"cachediff-generator/internal/annotation"
	"cachediff-generator/internal/diagnostic"
	"cachediff-generator/internal/match"
	"cachediff-generator/internal/plan"
)

// Diagnostic codes reported by Overrides.
const (
	CodeUnknownType   = "UnknownType"
	CodeAmbiguousType = "AmbiguousType"
	CodeInvalidField  = "InvalidAnnotation"
)

// ResolveType resolves a type name like:
//   - "Metadata" (name only, must be unique among loaded packages)
//   - "metadata.Metadata" (short package path)
//   - "cachediff-generator/examples/metadata.Metadata" (full).
//
// All matches are returned sorted by id.
func ResolveType(name string, graph *analyze.TypeGraph) []analyze.TypeID {
	if graph == nil || name == "" {
		return nil
	}

	pkgStr, typeName := "", name
	if lastDot := strings.LastIndex(name, "."); lastDot >= 0 {
		pkgStr, typeName = name[:lastDot], name[lastDot+1:]
		if pkgStr == "" || typeName == "" {
			return nil
		}
	}

	if pkgStr != "" {
		id := analyze.TypeID{PkgPath: pkgStr, Name: typeName}
		if graph.GetType(id) != nil {
			return []analyze.TypeID{id}
		}
	}

	var matches []analyze.TypeID

	for id := range graph.Types {
		if id.Name != typeName {
			continue
		}

		if pkgStr == "" || id.PkgPath == pkgStr || strings.HasSuffix(id.PkgPath, "/"+pkgStr) {
			matches = append(matches, id)
		}
	}

	slices.SortFunc(matches, func(a, b analyze.TypeID) int {
		return strings.Compare(a.String(), b.String())
	})

	return matches
}

// Overrides resolves the configured types against graph and parses their
// field annotations. Every problem is reported; entries that resolve and
// parse are still returned.
func (f *File) Overrides(graph *analyze.TypeGraph) (plan.Overrides, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}
	overrides := plan.Overrides{}

	for _, tc := range f.Types {
		ids := ResolveType(tc.Name, graph)

		switch len(ids) {
		case 0:
			diags.AddError(CodeUnknownType,
				fmt.Sprintf("configured type %q not found%s", tc.Name, match.Hint(tc.Name, typeNames(graph))), tc.Name, "")
			continue
		case 1:
		default:
			names := make([]string, len(ids))
			for i, id := range ids {
				names[i] = id.String()
			}

			diags.AddError(CodeAmbiguousType,
				fmt.Sprintf("configured type %q matches %s", tc.Name, strings.Join(names, ", ")), tc.Name, "")

			continue
		}

		id := ids[0]

		for _, field := range slices.Sorted(maps.Keys(tc.Fields)) {
			a, err := annotation.Parse(tc.Fields[field])
			if err != nil {
				diags.AddErr(CodeInvalidField, err, id.String(), field)
				continue
			}

			if overrides[id] == nil {
				overrides[id] = map[string]annotation.FieldAnnotation{}
			}

			overrides[id][field] = overrides[id][field].Merge(a)
		}
	}

	return overrides, diags
}

func typeNames(graph *analyze.TypeGraph) []string {
	if graph == nil {
		return nil
	}

	names := make([]string, 0, len(graph.Types))
	for id := range graph.Types {
		names = append(names, id.Name)
	}

	slices.Sort(names)

	return names
}

// HasType reports whether the config lists id.
func (f *File) HasType(id analyze.TypeID, graph *analyze.TypeGraph) bool {
	for _, tc := range f.Types {
		if slices.Contains(ResolveType(tc.Name, graph), id) {
			return true
		}
	}

	return false
}
