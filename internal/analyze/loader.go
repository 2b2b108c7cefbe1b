package analyze

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// DirectivePrefix starts a type-level directive comment.
const DirectivePrefix = "//cachediff:"

// Config controls package loading.
type Config struct {
	// Dir is the working directory patterns are resolved from. Empty means
	// the current directory.
	Dir string
	// GeneratedFile is the base name of previously generated output.
	// Errors reported in such files are ignored, since they are about to be
	// rewritten, and their declarations are not analyzed.
	GeneratedFile string
}

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	config Config
	graph  *TypeGraph
	fset   *token.FileSet
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(config Config) *Analyzer {
	return &Analyzer{
		config: config,
		graph:  NewTypeGraph(),
	}
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./examples/metadata", "./...").
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*TypeGraph, error) {
	pkgs, err := a.load(ctx, nil, patterns)
	if err != nil {
		return nil, err
	}

	// A generated file that no longer compiles fails the whole package, not
	// just its own positions. Retry with those files reduced to a package
	// clause.
	errs := a.packageErrors(pkgs)
	if len(errs) > 0 {
		if overlay := a.generatedOverlay(pkgs); len(overlay) > 0 {
			pkgs, err = a.load(ctx, overlay, patterns)
			if err != nil {
				return nil, err
			}

			errs = a.packageErrors(pkgs)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	// Process each package
	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

func (a *Analyzer) load(ctx context.Context, overlay map[string][]byte, patterns []string) ([]*packages.Package, error) {
	a.fset = token.NewFileSet()

	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     a.config.Dir,
		Fset:    a.fset,
		Overlay: overlay,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	return pkgs, nil
}

func (a *Analyzer) packageErrors(pkgs []*packages.Package) []error {
	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if a.inGeneratedFile(e.Pos) {
				continue
			}

			errs = append(errs, e)
		}
	}

	return errs
}

// generatedOverlay replaces every previously generated file of pkgs with a
// file holding only its package clause.
func (a *Analyzer) generatedOverlay(pkgs []*packages.Package) map[string][]byte {
	overlay := map[string][]byte{}

	for _, pkg := range pkgs {
		for _, filename := range pkg.GoFiles {
			if !a.isGeneratedFile(filename) {
				continue
			}

			name := pkg.Name
			if name == "" {
				f, err := parser.ParseFile(token.NewFileSet(), filename, nil, parser.PackageClauseOnly)
				if err != nil {
					continue
				}

				name = f.Name.Name
			}

			overlay[filename] = []byte("package " + name + "\n")
		}
	}

	return overlay
}

// inGeneratedFile reports whether an error position ("file:line:col") lies in
// the generated output file.
func (a *Analyzer) inGeneratedFile(pos string) bool {
	if a.config.GeneratedFile == "" || pos == "" {
		return false
	}

	return strings.HasPrefix(filepath.Base(pos), a.config.GeneratedFile+":")
}

func (a *Analyzer) isGeneratedFile(filename string) bool {
	return a.config.GeneratedFile != "" && filepath.Base(filename) == a.config.GeneratedFile
}

// processPackage extracts struct types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	if _, ok := a.graph.Packages[pkg.PkgPath]; ok {
		return nil
	}

	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	if len(pkg.GoFiles) > 0 {
		pkgInfo.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	for i, file := range pkg.Syntax {
		if i < len(pkg.CompiledGoFiles) && a.isGeneratedFile(pkg.CompiledGoFiles[i]) {
			continue
		}

		imports, names := fileImports(pkg, file)

		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.Assign.IsValid() {
					continue
				}

				info, err := a.analyzeTypeSpec(pkg, gd, ts)
				if err != nil {
					return err
				}

				if info == nil {
					continue
				}

				info.Imports = imports
				info.PackageNames = names
				a.graph.Types[info.ID] = info
				pkgInfo.Structs = append(pkgInfo.Structs, info.ID)
			}
		}
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
	a.graph.Order = append(a.graph.Order, pkg.PkgPath)

	return nil
}

// analyzeTypeSpec returns the StructInfo for a struct type declaration, or
// nil for any other kind of type.
func (a *Analyzer) analyzeTypeSpec(pkg *packages.Package, gd *ast.GenDecl, ts *ast.TypeSpec) (*StructInfo, error) {
	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("type %s has no type information", ts.Name.Name)
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil, nil
	}

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, nil
	}

	info := &StructInfo{
		ID: TypeID{
			PkgPath: pkg.PkgPath,
			Name:    obj.Name(),
		},
		Pos: a.fset.Position(ts.Name.Pos()),
	}

	if tparams := named.TypeParams(); tparams != nil {
		for i := range tparams.Len() {
			info.TypeParams = append(info.TypeParams, tparams.At(i).Obj().Name())
		}
	}

	// A lone spec in a parenthesis-free declaration carries its doc on the GenDecl.
	doc := ts.Doc
	if doc == nil && len(gd.Specs) == 1 {
		doc = gd.Doc
	}
	info.Directives = directives(doc)

	a.analyzeStructFields(st, info)

	return info, nil
}

// analyzeStructFields extracts fields from a struct type.
// Unexported fields are kept: generated methods live in the same package.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *StructInfo) {
	for i := range st.NumFields() {
		field := st.Field(i)

		info.Fields = append(info.Fields, FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     field.Type(),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
		})
	}
}

// GetStruct returns the StructInfo for a named struct.
func (a *Analyzer) GetStruct(pkgPath, typeName string) (*StructInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}
	info := a.graph.GetType(id)
	if info == nil {
		return nil, fmt.Errorf("struct type %s not found", id)
	}

	return info, nil
}

// directives returns the names of //cachediff:<name> comment lines.
func directives(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}

	var out []string
	for _, c := range doc.List {
		if name, ok := strings.CutPrefix(c.Text, DirectivePrefix); ok {
			out = append(out, strings.TrimSpace(name))
		}
	}

	return out
}

// fileImports maps the name each import is referred to by in file to its
// path, and each imported path to the package's declared name.
func fileImports(pkg *packages.Package, file *ast.File) (map[string]string, map[string]string) {
	imports := make(map[string]string, len(file.Imports))
	names := make(map[string]string, len(file.Imports))

	for _, spec := range file.Imports {
		pkgName := pkg.TypesInfo.PkgNameOf(spec)
		if pkgName == nil || pkgName.Name() == "_" || pkgName.Name() == "." {
			continue
		}

		imports[pkgName.Name()] = pkgName.Imported().Path()
		names[pkgName.Imported().Path()] = pkgName.Imported().Name()
	}

	return imports, names
}
