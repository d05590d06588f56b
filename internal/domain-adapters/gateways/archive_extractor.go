package gateways

import (
	"context"
	"fmt"
	"path/filepath"
)

// ArArchiveExtractor unpacks static archives with gcc-ar
type ArArchiveExtractor struct {
	runner *CommandRunner
	binary string
}

// NewArArchiveExtractor creates an extractor calling binary (e.g. "gcc-ar-13")
func NewArArchiveExtractor(runner *CommandRunner, binary string) *ArArchiveExtractor {
	return &ArArchiveExtractor{runner: runner, binary: binary}
}

// ExtractArchive writes the members of archivePath into destDir.
// ar extracts into its working directory, so the archive path must be absolute.
func (e *ArArchiveExtractor) ExtractArchive(ctx context.Context, archivePath, destDir string) error {
	abs, err := filepath.Abs(archivePath)
	if err != nil {
		return fmt.Errorf("failed to resolve archive path: %w", err)
	}

	result := e.runner.Run(ctx, RunConfig{
		Name: e.binary,
		Args: []string{"x", abs},
		Dir:  destDir,
	})
	return result.Err(fmt.Sprintf("extracting %s", filepath.Base(archivePath)))
}
