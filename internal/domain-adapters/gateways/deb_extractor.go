package gateways

import (
	"context"
	"fmt"
	"path/filepath"
)

// DpkgDebExtractor unpacks .deb files with dpkg-deb -x
type DpkgDebExtractor struct {
	runner *CommandRunner
	binary string
}

// NewDpkgDebExtractor creates an extractor calling binary (e.g. "dpkg-deb")
func NewDpkgDebExtractor(runner *CommandRunner, binary string) *DpkgDebExtractor {
	return &DpkgDebExtractor{runner: runner, binary: binary}
}

// ExtractDeb unpacks the data member of debPath into destDir
func (e *DpkgDebExtractor) ExtractDeb(ctx context.Context, debPath, destDir string) error {
	result := e.runner.Run(ctx, RunConfig{
		Name: e.binary,
		Args: []string{"-x", debPath, destDir},
	})
	return result.Err(fmt.Sprintf("extracting %s", filepath.Base(debPath)))
}
