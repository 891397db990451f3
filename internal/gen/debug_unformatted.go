package gen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// debugName returns the sidecar name of filename, keeping the .go suffix so
// editors still highlight it.
func debugName(filename string) string {
	return strings.TrimSuffix(filename, ".go") + ".unformatted.go"
}

// writeDebugUnformatted writes code gofmt rejected to a sidecar file next to
// the intended output. Failures are not fatal to generation.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(outDir, debugName(filename)), content, filePerm)
}

// removeDebugUnformatted deletes the sidecar of filename, if any.
func removeDebugUnformatted(outDir, filename string) error {
	err := os.Remove(filepath.Join(outDir, debugName(filename)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing debug file of %s: %w", filename, err)
	}

	return nil
}
