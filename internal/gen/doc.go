// Package gen provides deterministic Go code generation for Diff methods.
//
// Generation approach uses text/template + go/format for readable Go code.
// One file is generated per package; it holds a Diff method per planned
// record, in declaration order:
//
//	func (now Metadata) Diff(old Metadata) []string {
//		var differences []string
//
//		if now.Version != old.Version {
//			differences = append(differences, fmt.Sprintf("%s (%s to %s)",
//				"Ruby version",
//				cachediff.FormatValue(old.Version),
//				cachediff.FormatValue(now.Version),
//			))
//		}
//
//		return differences
//	}
package gen
