package gen

import (
	"sort"
	"strconv"

	"cachediff-generator/cachediff"
	"cachediff-generator/internal/common"
)

// knownNames are package names the generator can rely on without loading
// the package.
var knownNames = map[string]string{
	"fmt":                "fmt",
	cachediff.ImportPath: "cachediff",
}

// reservedNames are declared by every generated method and would shadow an
// import of the same name.
var reservedNames = []string{"now", "old", "differences"}

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet collects the imports of one generated file. Each path is bound
// to exactly one local name and each local name to exactly one path.
type importSet struct {
	// self is the import path of the package being generated into.
	self  string
	specs map[string]importSpec
	local map[string]string // path -> local name
	taken map[string]bool
}

func newImportSet(self string) *importSet {
	s := &importSet{
		self:  self,
		specs: make(map[string]importSpec),
		local: make(map[string]string),
		taken: make(map[string]bool),
	}

	for _, name := range reservedNames {
		s.taken[name] = true
	}

	return s
}

// qualify returns the expression referring to name in pkgPath, registering
// the import.
func (s *importSet) qualify(pkgPath, name string) string {
	local := s.use(pkgPath, "", "")
	if local == "" {
		return name
	}

	return local + "." + name
}

// use registers pkgPath and returns the name generated code refers to it by,
// or "" for the package being generated into. want is the preferred local
// name and pkgName the declared package name; either may be empty.
//
// A path seen before keeps its first name. A name already bound to another
// path gets a numeric suffix. The import is written with an explicit name
// unless the local name is the declared package name.
func (s *importSet) use(pkgPath, want, pkgName string) string {
	if pkgPath == "" || pkgPath == s.self {
		return ""
	}

	if name, ok := s.local[pkgPath]; ok {
		return name
	}

	if pkgName == "" {
		pkgName = knownNames[pkgPath]
	}

	if want == "" {
		want = pkgName
	}

	if want == "" {
		want = common.PkgAlias(pkgPath)
	}

	name := want
	for i := 2; s.taken[name]; i++ {
		name = want + strconv.Itoa(i)
	}

	spec := importSpec{Path: pkgPath}
	if name != pkgName {
		spec.Alias = name
	}

	s.specs[pkgPath] = spec
	s.local[pkgPath] = name
	s.taken[name] = true

	return name
}

// sorted returns the imports ordered by path.
func (s *importSet) sorted() []importSpec {
	out := make([]importSpec, 0, len(s.specs))
	for _, spec := range s.specs {
		out = append(out, spec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out
}
