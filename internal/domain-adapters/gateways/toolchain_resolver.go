package gateways

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"

	"github.com/ochairo/ltoscan/internal/domain/entities"
)

// ErrNoVersionSuffix is returned when the gcc binary name carries no version
var ErrNoVersionSuffix = errors.New("gcc binary has no version suffix")

var versionSuffix = regexp.MustCompile(`-(\d+)$`)

// ToolchainResolver derives tool names from the active gcc installation
type ToolchainResolver struct {
	lookPath func(string) (string, error)
}

// NewToolchainResolver creates a resolver that searches $PATH
func NewToolchainResolver() *ToolchainResolver {
	return &ToolchainResolver{lookPath: exec.LookPath}
}

// Resolve locates gcc, follows symlinks to its real binary and derives the
// versioned archiver and dump tool names. Explicit Archiver/LTODump settings
// in config win over derived names.
func (r *ToolchainResolver) Resolve(config entities.ScanConfig) (entities.Toolchain, error) {
	tc := entities.Toolchain{
		DumpArgs:    config.DumpArgs,
		Puller:      config.Puller,
		DpkgDeb:     config.DpkgDeb,
		Distro:      config.Distro,
		Series:      config.Series,
		ToolTimeout: config.ToolTimeout,
		Archiver:    config.Archiver,
		LTODump:     config.LTODump,
	}

	if tc.Archiver != "" && tc.LTODump != "" {
		return tc, nil
	}

	gcc := config.GCC
	if gcc == "" {
		gcc = "gcc"
	}
	gccPath, err := r.lookPath(gcc)
	if err != nil {
		return tc, fmt.Errorf("failed to locate %s: %w", gcc, err)
	}

	realPath, err := filepath.EvalSymlinks(gccPath)
	if err != nil {
		return tc, fmt.Errorf("failed to resolve %s: %w", gccPath, err)
	}

	version, err := ParseGCCVersion(realPath)
	if err != nil {
		return tc, err
	}

	tc.GCCPath = realPath
	tc.GCCVersion = version
	if tc.Archiver == "" {
		tc.Archiver = "gcc-ar-" + version
	}
	if tc.LTODump == "" {
		tc.LTODump = "lto-dump-" + version
	}

	return tc, nil
}

// ParseGCCVersion extracts the trailing version number from a gcc binary path,
// e.g. /usr/bin/x86_64-linux-gnu-gcc-13 -> "13"
func ParseGCCVersion(path string) (string, error) {
	m := versionSuffix.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return "", fmt.Errorf("%w: %s", ErrNoVersionSuffix, path)
	}
	return m[1], nil
}
