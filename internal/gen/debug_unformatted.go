package gen

import (
	"os"
	"path/filepath"
)

// debugSuffix keeps the sidecar out of the package's Go files.
const debugSuffix = ".unformatted"

// writeDebugUnformatted writes template output that gofmt rejected next to
// the intended file, as <name>.unformatted. Failures are returned but
// callers ignore them: the formatting error is what gets reported.
func writeDebugUnformatted(dir, filename string, content []byte) error {
	if dir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, filename+debugSuffix), content, filePerm)
}
