package analyze

import (
	"go/types"

	"cachediff-generator/cachediff"
)

// PathTypeName is the name of the well-known owned path type.
const PathTypeName = "Path"

// IsPathType reports whether t is cachediff.Path. Only the plain named type
// matches; pointers, slices and generic types do not.
func IsPathType(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}

	if named.TypeArgs().Len() > 0 || named.TypeParams().Len() > 0 {
		return false
	}

	obj := named.Obj()
	if obj.Pkg() == nil {
		return false
	}

	return obj.Name() == PathTypeName && obj.Pkg().Path() == cachediff.ImportPath
}
