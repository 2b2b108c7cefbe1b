package plan

import (
	"fmt"

	"cachediff-generator/internal/analyze"
	"cachediff-generator/internal/annotation"
	"cachediff-generator/internal/diagnostic"
)

// DisplayKind selects how a field value is rendered as text.
type DisplayKind int

const (
	// DisplayIdentity uses the value as-is.
	DisplayIdentity DisplayKind = iota
	// DisplayPath renders a cachediff.Path with cachediff.DisplayPath.
	DisplayPath
	// DisplayCustom calls a user supplied function.
	DisplayCustom
)

// String returns a human-readable display kind name.
func (k DisplayKind) String() string {
	switch k {
	case DisplayIdentity:
		return "identity"
	case DisplayPath:
		return "path"
	case DisplayCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// MarshalYAML renders the kind by name.
func (k DisplayKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Display is the resolved display strategy of a field.
type Display struct {
	Kind DisplayKind
	// Func is the function to call, set for DisplayCustom.
	Func *annotation.FuncRef
	// ImportPath is the package Func's qualifier refers to, when the
	// qualifier is an import of the declaring file.
	ImportPath string
	// PackageName is the declared name of the ImportPath package, when known.
	PackageName string
}

// MarshalYAML flattens the function reference.
func (d Display) MarshalYAML() (any, error) {
	out := map[string]string{"kind": d.Kind.String()}
	if d.Func != nil {
		out["func"] = d.Func.String()
	}

	if d.ImportPath != "" {
		out["import"] = d.ImportPath
	}

	return out, nil
}

// FieldPlan is the comparison plan of one non-ignored field.
type FieldPlan struct {
	// Field is the Go field name, used for field access.
	Field string `yaml:"field"`
	// Name is the display name used in difference messages.
	Name string `yaml:"name"`
	// Display is how the field value is rendered.
	Display Display `yaml:"display"`
}

// RecordPlan is the ordered comparison plan of one record type.
type RecordPlan struct {
	Type analyze.TypeID `yaml:"-"`
	// TypeParams lists type parameter names of generic records.
	TypeParams []string `yaml:"type_params,omitempty"`
	// Fields excludes ignored fields and keeps declaration order.
	Fields []FieldPlan `yaml:"fields"`
	// Warnings found while planning. They do not prevent generation.
	Warnings []diagnostic.Diagnostic `yaml:"-"`
}

// IsGeneric returns true if the record type has type parameters.
func (r *RecordPlan) IsGeneric() bool {
	return len(r.TypeParams) > 0
}

// PackagePlan groups the record plans of one package, in declaration order.
type PackagePlan struct {
	Package *analyze.PackageInfo
	Records []RecordPlan
}

type recordYAML struct {
	Type       string      `yaml:"type"`
	TypeParams []string    `yaml:"type_params,omitempty"`
	Fields     []FieldPlan `yaml:"fields"`
}

type packageYAML struct {
	Package string       `yaml:"package"`
	Dir     string       `yaml:"dir,omitempty"`
	Records []recordYAML `yaml:"records"`
}

// MarshalYAML renders the plan with record types by name.
func (p *PackagePlan) MarshalYAML() (any, error) {
	out := packageYAML{Records: make([]recordYAML, 0, len(p.Records))}
	if p.Package != nil {
		out.Package = p.Package.Path
		out.Dir = p.Package.Dir
	}

	for _, r := range p.Records {
		out.Records = append(out.Records, recordYAML{
			Type:       r.Type.Name,
			TypeParams: r.TypeParams,
			Fields:     r.Fields,
		})
	}

	return out, nil
}

// Overrides holds per-field annotations supplied outside the source, keyed by
// record type and field name. They are applied after the struct tag.
type Overrides map[analyze.TypeID]map[string]annotation.FieldAnnotation

// ShapeError reports a record that cannot be compared field by field.
type ShapeError struct {
	Type   analyze.TypeID
	Field  string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unsupported shape: %s (embedded field %s)", e.Reason, e.Field)
}
