// Package analyze provides package loading and struct extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types
// to build an in-memory model of the struct types a package declares.
//
// Key types:
//   - TypeID: package import path + type name
//   - StructInfo: a named struct type, its ordered fields and directives
//   - FieldInfo: describes field name, declared type, tag, and embedding
package analyze
