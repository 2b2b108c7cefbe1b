package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"cachediff-generator/cachediff"
	"cachediff-generator/internal/plan"
)

// DefaultFilename is the name of the file generated in each package.
const DefaultFilename = "cachediff_gen.go"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Filename is the base name of the generated file in each package.
	Filename string
	// Formatter wraps every displayed value.
	Formatter Formatter
	// GenerateComments enables doc comments on generated methods.
	GenerateComments bool
	// DebugUnformatted writes an .unformatted sidecar when gofmt fails.
	DebugUnformatted bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename:         DefaultFilename,
		Formatter:        DefaultFormatter(),
		GenerateComments: true,
	}
}

// Generator generates Go code from package plans.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Filename == "" {
		config.Filename = DefaultFilename
	}

	if config.Formatter.Name == "" {
		config.Formatter = DefaultFormatter()
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the path of the file, inside the package directory.
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate generates one file per package plan that has records.
func (g *Generator) Generate(plans []*plan.PackagePlan) ([]GeneratedFile, error) {
	var files []GeneratedFile

	for _, p := range plans {
		if len(p.Records) == 0 {
			continue
		}

		file, err := g.GeneratePackage(p)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", p.Package.Path, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

// GeneratePackage renders the file for one package. When gofmt fails the
// unformatted source is returned along with the error.
func (g *Generator) GeneratePackage(p *plan.PackagePlan) (*GeneratedFile, error) {
	data := g.buildTemplateData(p)
	filename := filepath.Join(p.Package.Dir, g.config.Filename)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.DebugUnformatted {
			_ = writeDebugUnformatted(p.Package.Dir, g.config.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: filename,
		Content:  formatted,
	}, nil
}

// templateData holds all data needed for the file template.
type templateData struct {
	PackageName      string
	Imports          []importSpec
	Records          []recordData
	GenerateComments bool
	// Sprintf is fmt.Sprintf under its local name, set when any record
	// compares a field.
	Sprintf string
}

// recordData is one Diff method.
type recordData struct {
	// Type is the receiver type, with type parameters for generic records.
	Type string
	// Differ is the interface assertion target, empty for generic records.
	Differ string
	Fields []fieldData
}

// fieldData is one comparison.
type fieldData struct {
	Field string
	Name  string // quoted Go string literal
	Old   string
	Now   string
}

func (g *Generator) buildTemplateData(p *plan.PackagePlan) *templateData {
	imports := newImportSet(p.Package.Path)

	data := &templateData{
		PackageName:      p.Package.Name,
		GenerateComments: g.config.GenerateComments,
	}

	// fmt is bound first so that it keeps its own name.
	for i := range p.Records {
		if len(p.Records[i].Fields) > 0 {
			data.Sprintf = imports.qualify("fmt", "Sprintf")
			break
		}
	}

	for i := range p.Records {
		data.Records = append(data.Records, g.buildRecord(&p.Records[i], imports))
	}

	data.Imports = imports.sorted()

	return data
}

func (g *Generator) buildRecord(r *plan.RecordPlan, imports *importSet) recordData {
	rd := recordData{Type: r.Type.Name}

	if r.IsGeneric() {
		rd.Type += "[" + strings.Join(r.TypeParams, ", ") + "]"
	} else {
		rd.Differ = imports.qualify(cachediff.ImportPath, "Differ")
	}

	if len(r.Fields) == 0 {
		return rd
	}

	formatter := imports.qualify(g.config.Formatter.ImportPath, g.config.Formatter.Name)

	for _, f := range r.Fields {
		display := g.displayFunc(f.Display, imports)

		rd.Fields = append(rd.Fields, fieldData{
			Field: f.Field,
			Name:  strconv.Quote(f.Name),
			Old:   valueExpr(formatter, display, "old."+f.Field),
			Now:   valueExpr(formatter, display, "now."+f.Field),
		})
	}

	return rd
}

// displayFunc returns the function applied before formatting, or "" for
// identity. Qualified references are rewritten to the qualifier the
// generated file imports their package under.
func (g *Generator) displayFunc(d plan.Display, imports *importSet) string {
	switch d.Kind {
	case plan.DisplayPath:
		return imports.qualify(cachediff.ImportPath, "DisplayPath")
	case plan.DisplayCustom:
		if d.ImportPath == "" {
			return d.Func.String()
		}

		local := imports.use(d.ImportPath, d.Func.Qualifier(), d.PackageName)

		return d.Func.WithQualifier(local).String()
	default:
		return ""
	}
}

func valueExpr(formatter, display, operand string) string {
	if display != "" {
		operand = display + "(" + operand + ")"
	}

	return formatter + "(" + operand + ")"
}

var fileTemplate = template.Must(template.New("cachediff").Parse(`// Code generated by cachediff-gen. DO NOT EDIT.

package {{.PackageName}}

{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{range .Records}}
{{if .Differ}}var _ {{.Differ}}[{{.Type}}] = {{.Type}}{}
{{end}}
{{if $.GenerateComments}}// Diff returns the differences between now and old, one line per changed
// field, in field declaration order. An empty result means unchanged.
{{end}}func (now {{.Type}}) Diff(old {{.Type}}) []string {
	var differences []string
{{range .Fields}}
	if now.{{.Field}} != old.{{.Field}} {
		differences = append(differences, {{$.Sprintf}}("%s (%s to %s)",
			{{.Name}},
			{{.Old}},
			{{.Now}},
		))
	}
{{end}}
	return differences
}
{{end}}`))
