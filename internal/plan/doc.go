// Package plan turns analyzed structs and their annotations into the
// per-record plans consumed by code generation.
//
// For each field, in declaration order:
//  1. ignored fields are dropped
//  2. the display name is the rename value, or the field name with
//     underscores replaced by spaces
//  3. the display strategy is the explicit display function, else the path
//     renderer for cachediff.Path fields, else identity
//
// Records with embedded (positional) fields are rejected before any field is
// planned.
package plan
