package cachediff

// Path is an owned filesystem path.
//
// Generated Diff methods render Path fields with DisplayPath without needing a
// display tag.
type Path string

// String returns the path as text.
func (p Path) String() string {
	return DisplayPath(p)
}

// DisplayPath renders p as text. The path is not cleaned, so two paths that
// compare unequal never render the same.
func DisplayPath(p Path) string {
	return string(p)
}
