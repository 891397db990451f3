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

// WriteFiles writes generated files to the output directory, creating it if
// needed. Files whose content is unchanged are not rewritten, and debug
// sidecars left by earlier failed runs are removed. It returns the number of
// files written.
func WriteFiles(files []GeneratedFile, outputDir string) (int, error) {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}

	written := 0

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		current, err := os.ReadFile(outputPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return written, fmt.Errorf("reading file %s: %w", file.Filename, err)
		}

		if err == nil && bytes.Equal(current, file.Content) {
			continue
		}

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		if err := removeDebugUnformatted(outputDir, file.Filename); err != nil {
			return written, err
		}

		written++
	}

	return written, nil
}
