// Package gateways defines contracts for the external tools a scan drives.
package gateways

import "context"

// PackagePuller fetches the binary packages for a name and series into dir
type PackagePuller interface {
	Pull(ctx context.Context, dir, packageName, series string) error
}

// DebExtractor unpacks the payload of a .deb file into destDir
type DebExtractor interface {
	ExtractDeb(ctx context.Context, debPath, destDir string) error
}

// ArchiveExtractor unpacks the members of a static archive into destDir
type ArchiveExtractor interface {
	ExtractArchive(ctx context.Context, archivePath, destDir string) error
}

// DumpResult is the outcome of one LTO dump invocation
type DumpResult struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
}

// LTODumper runs the LTO bytecode dump tool over object files in dir
type LTODumper interface {
	Dump(ctx context.Context, dir string, objects []string) *DumpResult
}
