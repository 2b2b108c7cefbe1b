// Package cachediff holds the runtime half of cachediff-generator.
//
// A cached artifact is usually keyed by a small metadata struct. When that
// struct changes the cache must be invalidated, and the user should be told
// why. Types implementing [Differ] return one human readable line per changed
// field; an empty result means the cache can be kept.
//
// Implementations are normally generated by the cachediff-gen command from
// struct tags:
//
//	//go:generate go run cachediff-generator/cmd/cachediff-gen gen .
//
//	type Metadata struct {
//		RubyVersion string
//		Distro      string `cachediff:"rename=\"OS distribution\""`
//		Stack       string `cachediff:"display=stackName"`
//		ChangedBy   string `cachediff:"ignore"`
//		BinDir      cachediff.Path
//	}
//
// which yields output such as:
//
//	RubyVersion (`3.3.0` to `3.4.0`)
//
// Tag keys are:
//   - rename = "<name>": use the given name instead of the field name
//   - display = <function>: render the field value with the given function
//   - ignore: leave the field out of the comparison (also spelled "-")
//
// Fields of type [Path] are rendered with [DisplayPath] unless a display
// function is given. Values are wrapped by [FormatValue], or by the
// formatter configured at generation time, for example [StyledValue].
package cachediff
