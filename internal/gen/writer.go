package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files. Relative filenames are resolved
// against outputDir; absolute ones are written as-is.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	for _, file := range files {
		outputPath := file.Filename
		if !filepath.IsAbs(outputPath) {
			outputPath = filepath.Join(outputDir, outputPath)
		}

		if err := os.MkdirAll(filepath.Dir(outputPath), dirPerm); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// StaleReason says why a generated file does not match the disk.
type StaleReason string

const (
	StaleMissing  StaleReason = "missing"
	StaleOutdated StaleReason = "out of date"
)

// StaleFile is a generated file whose on-disk copy is missing or different.
type StaleFile struct {
	Filename string
	Reason   StaleReason
}

// CheckFiles compares generated files with their on-disk copies, resolving
// relative names like WriteFiles.
func CheckFiles(files []GeneratedFile, outputDir string) ([]StaleFile, error) {
	var stale []StaleFile

	for _, file := range files {
		outputPath := file.Filename
		if !filepath.IsAbs(outputPath) {
			outputPath = filepath.Join(outputDir, outputPath)
		}

		existing, err := os.ReadFile(outputPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			stale = append(stale, StaleFile{Filename: file.Filename, Reason: StaleMissing})
		case err != nil:
			return nil, fmt.Errorf("reading file %s: %w", file.Filename, err)
		case !bytes.Equal(existing, file.Content):
			stale = append(stale, StaleFile{Filename: file.Filename, Reason: StaleOutdated})
		}
	}

	return stale, nil
}
