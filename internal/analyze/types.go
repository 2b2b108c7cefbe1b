package analyze

import (
	"go/token"
	"go/types"
	"reflect"
	"slices"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "cachediff-generator/examples/metadata"
	Name    string // e.g., "Metadata"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// StructInfo describes a named struct type declared at package level.
type StructInfo struct {
	ID           TypeID
	Pos          token.Position    // Position of the type name
	TypeParams   []string          // Type parameter names, empty for non-generic types
	Directives   []string          // "//cachediff:<name>" directives from the doc comment
	Imports      map[string]string // Import name -> path, for the declaring file
	PackageNames map[string]string // Import path -> declared package name, for the declaring file
	Fields       []FieldInfo       // Fields in declaration order
}

// HasDirective returns true if the doc comment carries //cachediff:<name>.
func (s *StructInfo) HasDirective(name string) bool {
	return slices.Contains(s.Directives, name)
}

// HasTag returns true if any field carries the given tag key.
func (s *StructInfo) HasTag(key string) bool {
	for i := range s.Fields {
		if s.Fields[i].HasTag(key) {
			return true
		}
	}

	return false
}

// Field returns the field with the given name, or nil.
func (s *StructInfo) Field(name string) *FieldInfo {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}

	return nil
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name (the type name for embedded fields)
	Exported bool              // Whether the field is exported
	Type     types.Type        // Declared type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// HasTag returns true if the field has the specified tag key, even if empty.
func (f *FieldInfo) HasTag(key string) bool {
	_, ok := f.Tag.Lookup(key)
	return ok
}

// GetTag returns the value of the specified tag.
func (f *FieldInfo) GetTag(key string) string {
	return f.Tag.Get(key)
}

// TypeGraph holds all analyzed structs from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to StructInfo for all named struct types.
	Types map[TypeID]*StructInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
	// Order lists package paths in load order.
	Order []string
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*StructInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the StructInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *StructInfo {
	return g.Types[id]
}

// Structs returns the structs of a package in declaration order.
func (g *TypeGraph) Structs(pkgPath string) []*StructInfo {
	pkg, ok := g.Packages[pkgPath]
	if !ok {
		return nil
	}

	out := make([]*StructInfo, 0, len(pkg.Structs))
	for _, id := range pkg.Structs {
		out = append(out, g.Types[id])
	}

	return out
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path    string   // Import path
	Name    string   // Package name
	Dir     string   // Directory containing the package sources
	Structs []TypeID // Named struct types, in file then declaration order
}
