package config

// CurrentVersion is the only supported file version.
const CurrentVersion = "1"

// File is the root structure of a cachediff YAML file.
type File struct {
	// Version is the schema version; defaults to CurrentVersion.
	Version string `yaml:"version"`
	// Output is the generated file name in each package.
	Output string `yaml:"output,omitempty"`
	// Formatter is the value formatter reference, as accepted by
	// gen.ParseFormatter.
	Formatter string `yaml:"formatter,omitempty"`
	// Types lists per-type annotations.
	Types []TypeConfig `yaml:"types,omitempty"`
}

// TypeConfig holds the annotations of one struct type.
type TypeConfig struct {
	// Name is "Type", "pkg.Type" or "import/path.Type".
	Name string `yaml:"name"`
	// Fields maps Go field names to annotation text.
	Fields map[string]string `yaml:"fields,omitempty"`
}
