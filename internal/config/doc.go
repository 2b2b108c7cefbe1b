// Package config loads the optional cachediff YAML file.
//
// The file sets generator defaults and carries per-field annotations for
// types whose source cannot be tagged:
//
//	version: "1"
//	output: cachediff_gen.go
//	formatter: cachediff.FormatValue
//	types:
//	  - name: Metadata
//	    fields:
//	      Version: 'rename = "Ruby version"'
//	      Internal: ignore
//
// Field values use the same grammar as the cachediff struct tag and are merged
// after it, so a value given here overrides the tag option of the same key.
package config
