// Package main provides the CLI entrypoint for cachediff-gen.
//
// cachediff-gen generates Diff methods for cache metadata structs:
//   - gen writes cachediff_gen.go into each package with selected structs
//   - check fails when a generated file is missing or out of date
//   - plan prints the resolved field plans as YAML
package main

import (
	"errors"
	"os"

	"github.com/fatih/color"
)

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)

	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errStale) {
			color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		}

		os.Exit(1)
	}
}
