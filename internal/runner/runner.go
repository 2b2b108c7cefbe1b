package runner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"cachediff-generator/internal/analyze"
	"cachediff-generator/internal/annotation"
	"cachediff-generator/internal/config"
	"cachediff-generator/internal/gen"
	"cachediff-generator/internal/match"
	"cachediff-generator/internal/plan"
)

// GenerateDirective opts a struct in without any tagged field.
const GenerateDirective = "generate"

// Options control one run.
type Options struct {
	// Dir is the directory patterns are resolved from.
	Dir string
	// Patterns are Go package patterns; defaults to ".".
	Patterns []string
	// Types restricts generation to these type names. Empty selects every
	// struct with a cachediff tag, a //cachediff:generate directive or a
	// config entry.
	Types []string
	// ConfigPath is an optional YAML config file.
	ConfigPath string
	// Output overrides the generated file name.
	Output string
	// Formatter overrides the value formatter reference.
	Formatter string
	// DebugUnformatted writes .unformatted sidecars when gofmt fails.
	DebugUnformatted bool
}

// Result is what a run produced.
type Result struct {
	Plans []*plan.PackagePlan
	Files []gen.GeneratedFile
}

// Runner runs the pipeline.
type Runner struct {
	logger *zap.Logger
}

// New creates a Runner. A nil logger disables logging.
func New(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Runner{logger: logger}
}

// Plan loads packages and builds plans for the selected types, without
// rendering code.
func (r *Runner) Plan(ctx context.Context, opts Options) ([]*plan.PackagePlan, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	return r.plan(ctx, opts, cfg)
}

func (r *Runner) plan(ctx context.Context, opts Options, cfg *config.File) ([]*plan.PackagePlan, error) {
	output := firstNonEmpty(opts.Output, cfg.Output, gen.DefaultFilename)

	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	r.logger.Debug("loading packages", zap.Strings("patterns", patterns), zap.String("dir", opts.Dir))

	analyzer := analyze.NewAnalyzer(analyze.Config{Dir: opts.Dir, GeneratedFile: output})

	graph, err := analyzer.LoadPackages(ctx, patterns...)
	if err != nil {
		return nil, err
	}

	overrides, diags := cfg.Overrides(graph)
	if err := diags.Err(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	selected, err := selectTypes(graph, cfg, opts.Types)
	if err != nil {
		return nil, err
	}

	builder := plan.NewBuilder(overrides)

	var (
		plans []*plan.PackagePlan
		errs  []error
	)

	for _, pkgPath := range graph.Order {
		structs := selected[pkgPath]
		if len(structs) == 0 {
			continue
		}

		p, err := builder.BuildPackage(graph.Packages[pkgPath], structs)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		for _, rec := range p.Records {
			for _, w := range rec.Warnings {
				r.logger.Warn("field comparison may panic",
					zap.String("type", w.Type),
					zap.String("field", w.FieldPath),
					zap.String("reason", w.Message))
			}
		}

		r.logger.Debug("planned package",
			zap.String("package", pkgPath),
			zap.Int("records", len(p.Records)))

		plans = append(plans, p)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return plans, nil
}

// Generate plans and renders the selected types.
func (r *Runner) Generate(ctx context.Context, opts Options) (*Result, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	genConfig, err := generatorConfig(opts, cfg)
	if err != nil {
		return nil, err
	}

	plans, err := r.plan(ctx, opts, cfg)
	if err != nil {
		return nil, err
	}

	files, err := gen.NewGenerator(genConfig).Generate(plans)
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		r.logger.Debug("rendered file", zap.String("file", f.Filename), zap.Int("bytes", len(f.Content)))
	}

	return &Result{Plans: plans, Files: files}, nil
}

// Write generates and writes files to disk.
func (r *Runner) Write(ctx context.Context, opts Options) (*Result, error) {
	res, err := r.Generate(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := gen.WriteFiles(res.Files, opts.Dir); err != nil {
		return nil, err
	}

	r.logger.Info("generated diff methods", zap.Int("files", len(res.Files)))

	return res, nil
}

// Check generates in memory and reports files that differ from disk.
func (r *Runner) Check(ctx context.Context, opts Options) ([]gen.StaleFile, error) {
	res, err := r.Generate(ctx, opts)
	if err != nil {
		return nil, err
	}

	return gen.CheckFiles(res.Files, opts.Dir)
}

func generatorConfig(opts Options, cfg *config.File) (gen.GeneratorConfig, error) {
	formatter, err := gen.ParseFormatter(firstNonEmpty(opts.Formatter, cfg.Formatter))
	if err != nil {
		return gen.GeneratorConfig{}, err
	}

	genConfig := gen.DefaultGeneratorConfig()
	genConfig.Filename = firstNonEmpty(opts.Output, cfg.Output, gen.DefaultFilename)
	genConfig.Formatter = formatter
	genConfig.DebugUnformatted = opts.DebugUnformatted

	return genConfig, nil
}

func loadConfig(path string) (*config.File, error) {
	if path == "" {
		return &config.File{Version: config.CurrentVersion}, nil
	}

	return config.LoadFile(path)
}

// selectTypes returns the structs to plan, grouped by package and kept in
// declaration order.
func selectTypes(graph *analyze.TypeGraph, cfg *config.File, names []string) (map[string][]*analyze.StructInfo, error) {
	var want map[analyze.TypeID]bool

	if len(names) > 0 {
		want = map[analyze.TypeID]bool{}

		var unknown []string

		for _, name := range names {
			ids := config.ResolveType(name, graph)
			if len(ids) == 0 {
				unknown = append(unknown, name+match.Hint(name, typeNames(graph)))
				continue
			}

			for _, id := range ids {
				want[id] = true
			}
		}

		if len(unknown) > 0 {
			return nil, fmt.Errorf("unknown type(s): %s", strings.Join(unknown, ", "))
		}
	}

	out := map[string][]*analyze.StructInfo{}

	for _, pkgPath := range graph.Order {
		for _, s := range graph.Structs(pkgPath) {
			if want != nil {
				if want[s.ID] {
					out[pkgPath] = append(out[pkgPath], s)
				}

				continue
			}

			if s.HasTag(annotation.TagKey) || s.HasDirective(GenerateDirective) || cfg.HasType(s.ID, graph) {
				out[pkgPath] = append(out[pkgPath], s)
			}
		}
	}

	return out, nil
}

// typeNames returns the struct names of graph in load order.
func typeNames(graph *analyze.TypeGraph) []string {
	var names []string

	for _, pkgPath := range graph.Order {
		for _, id := range graph.Packages[pkgPath].Structs {
			names = append(names, id.Name)
		}
	}

	return names
}

func firstNonEmpty(values ...string) string {
	if i := slices.IndexFunc(values, func(v string) bool { return v != "" }); i >= 0 {
		return values[i]
	}

	return ""
}
