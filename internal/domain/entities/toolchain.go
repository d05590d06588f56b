package entities

import "time"

// DefaultSeries is the distribution series packages are pulled from
const DefaultSeries = "noble"

// DefaultDistro is the distribution flavor passed to the package puller
const DefaultDistro = "ubuntu"

// Deb extractor backends
const (
	DebExtractorDpkg   = "dpkg"
	DebExtractorNative = "native"
)

// Toolchain describes the external tools used by a scan. It is resolved once
// at startup and passed down explicitly.
type Toolchain struct {
	GCCPath     string // real path of the active gcc binary
	GCCVersion  string // trailing version suffix of GCCPath, e.g. "13"
	Archiver    string // e.g. gcc-ar-13
	LTODump     string // e.g. lto-dump-13
	DumpArgs    []string
	Puller      string // e.g. pull-pkg
	DpkgDeb     string // e.g. dpkg-deb
	Distro      string
	Series      string
	ToolTimeout time.Duration // zero means no timeout
}

// ScanConfig holds user-facing settings loaded from the optional config file
type ScanConfig struct {
	WorkDir      string
	Series       string
	Distro       string
	GCC          string
	Archiver     string
	LTODump      string
	DumpArgs     []string
	Puller       string
	DpkgDeb      string
	DebExtractor string
	ToolTimeout  time.Duration
}

// DefaultScanConfig returns the settings used when no config file is given
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		WorkDir:      "workdir",
		Series:       DefaultSeries,
		Distro:       DefaultDistro,
		GCC:          "gcc",
		DumpArgs:     []string{"-list"},
		Puller:       "pull-pkg",
		DpkgDeb:      "dpkg-deb",
		DebExtractor: DebExtractorDpkg,
	}
}
