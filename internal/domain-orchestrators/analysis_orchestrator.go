// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/ltoscan/internal/domain/entities"
	"github.com/ochairo/ltoscan/internal/domain/interfaces"
	"github.com/ochairo/ltoscan/internal/domain/interfaces/gateways"
	"github.com/ochairo/ltoscan/internal/domain/services"
)

// FileFinder interface for locating packages, archives and objects on disk
type FileFinder interface {
	FindDebs(dir, packageName string) ([]string, error)
	FindStaticArchives(root string) ([]string, error)
	FindObjects(dir string) ([]string, error)
}

// AnalysisOrchestrator runs the download, extract and dump pipeline for packages
type AnalysisOrchestrator struct {
	puller           gateways.PackagePuller
	debExtractor     gateways.DebExtractor
	archiveExtractor gateways.ArchiveExtractor
	dumper           gateways.LTODumper
	finder           FileFinder
	logger           interfaces.Logger
	workDir          string
	tempDir          string
	series           string
}

// AnalysisOrchestratorConfig holds configuration for the orchestrator
type AnalysisOrchestratorConfig struct {
	WorkDir string // packages are cached under WorkDir/<package>
	TempDir string // parent of scratch directories; empty means os.TempDir()
	Series  string
}

// NewAnalysisOrchestrator creates a new analysis orchestrator
func NewAnalysisOrchestrator(
	puller gateways.PackagePuller,
	debExtractor gateways.DebExtractor,
	archiveExtractor gateways.ArchiveExtractor,
	dumper gateways.LTODumper,
	finder FileFinder,
	logger interfaces.Logger,
	config AnalysisOrchestratorConfig,
) *AnalysisOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	workDir := config.WorkDir
	if workDir == "" {
		workDir = "workdir"
	}
	if abs, err := filepath.Abs(workDir); err == nil {
		workDir = abs
	}

	series := config.Series
	if series == "" {
		series = entities.DefaultSeries
	}

	return &AnalysisOrchestrator{
		puller:           puller,
		debExtractor:     debExtractor,
		archiveExtractor: archiveExtractor,
		dumper:           dumper,
		finder:           finder,
		logger:           logger,
		workDir:          workDir,
		tempDir:          config.TempDir,
		series:           series,
	}
}

// PackageDir returns the cache directory for a package
func (o *AnalysisOrchestrator) PackageDir(packageName string) string {
	return filepath.Join(o.workDir, packageName)
}

// AnalyzeAll analyzes packages one at a time in the given order. If ctx is
// cancelled the interrupted package and all following ones are left out.
func (o *AnalysisOrchestrator) AnalyzeAll(ctx context.Context, packageNames []string) map[string]entities.Result {
	results := make(map[string]entities.Result, len(packageNames))

	for i, name := range packageNames {
		if ctx.Err() != nil {
			break
		}

		o.logger.Info("Analyzing package",
			interfaces.F("package", name),
			interfaces.F("progress", fmt.Sprintf("%d/%d", i+1, len(packageNames))))

		result := o.AnalyzePackage(ctx, name)
		if ctx.Err() != nil {
			o.logger.Warn("Scan interrupted", interfaces.F("package", name))
			break
		}

		results[name] = result
		o.logger.Info("Package analyzed",
			interfaces.F("package", name),
			interfaces.F("result", result.Kind))
	}

	return results
}

// AnalyzePackage downloads (or reuses) the binary packages for packageName and
// checks every static archive they ship. The first failing archive decides
// the result; failures are never returned as errors.
func (o *AnalysisOrchestrator) AnalyzePackage(ctx context.Context, packageName string) entities.Result {
	if err := services.ValidatePackageName(packageName); err != nil {
		o.logger.Error("Cannot download package", interfaces.F("error", err))
		return entities.NewResult(entities.ResultDownloadFail, nil)
	}

	pkgDir := o.PackageDir(packageName)
	if err := os.MkdirAll(pkgDir, 0750); err != nil {
		o.logger.Error("Failed to create package directory", interfaces.F("dir", pkgDir), interfaces.F("error", err))
		return entities.NewResult(entities.ResultDownloadFail, nil)
	}

	cached, err := o.finder.FindDebs(pkgDir, packageName)
	if err != nil {
		o.logger.Error("Failed to look for downloaded packages", interfaces.F("error", err))
		return entities.NewResult(entities.ResultDownloadFail, nil)
	}

	if len(cached) > 0 {
		o.logger.Info("Reusing downloaded packages",
			interfaces.F("package", packageName),
			interfaces.F("count", len(cached)))
	} else {
		o.logger.Info("Downloading packages",
			interfaces.F("package", packageName),
			interfaces.F("series", o.series))
		if err := o.puller.Pull(ctx, pkgDir, packageName, o.series); err != nil {
			o.logger.Error("Download failed", interfaces.F("package", packageName), interfaces.F("error", err))
			return entities.NewResult(entities.ResultDownloadFail, nil)
		}
	}

	return o.inspectDebs(ctx, packageName, pkgDir)
}

// inspectDebs extracts every deb of the package into a scratch directory and
// dumps the objects of each static archive found there
func (o *AnalysisOrchestrator) inspectDebs(ctx context.Context, packageName, pkgDir string) entities.Result {
	scratch, err := os.MkdirTemp(o.tempDir, "ltoscan-")
	if err != nil {
		o.logger.Error("Failed to create temporary directory", interfaces.F("error", err))
		return entities.NewResult(entities.ResultDebExtractFail, nil)
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			o.logger.Warn("Failed to remove temporary directory", interfaces.F("dir", scratch), interfaces.F("error", err))
		}
	}()

	extractDir := filepath.Join(scratch, "root")
	if err := os.Mkdir(extractDir, 0750); err != nil {
		o.logger.Error("Failed to create extraction directory", interfaces.F("error", err))
		return entities.NewResult(entities.ResultDebExtractFail, nil)
	}

	debPaths, err := o.finder.FindDebs(pkgDir, packageName)
	if err != nil {
		o.logger.Error("Failed to list downloaded packages", interfaces.F("error", err))
		return entities.NewResult(entities.ResultDebExtractFail, nil)
	}

	debs := make([]string, 0, len(debPaths))
	for _, debPath := range debPaths {
		debs = append(debs, filepath.Base(debPath))
		o.logger.Info("Extracting package", interfaces.F("deb", filepath.Base(debPath)))
		if err := o.debExtractor.ExtractDeb(ctx, debPath, extractDir); err != nil {
			o.logger.Error("Package extraction failed", interfaces.F("deb", filepath.Base(debPath)), interfaces.F("error", err))
			return entities.NewResult(entities.ResultDebExtractFail, debs)
		}
	}

	archives, err := o.finder.FindStaticArchives(extractDir)
	if err != nil {
		o.logger.Error("Failed to search for static archives", interfaces.F("error", err))
		return entities.NewResult(entities.ResultDebExtractFail, debs)
	}
	if len(archives) == 0 {
		o.logger.Info("No static archives found", interfaces.F("package", packageName))
	}

	for n, archive := range archives {
		if kind, failed := o.inspectArchive(ctx, scratch, extractDir, n, archive); failed {
			return entities.NewResult(kind, debs)
		}
	}

	return entities.NewResult(entities.ResultPass, debs)
}

// inspectArchive extracts archive n into its own directory and runs the dump
// tool over its objects. It reports true only for a dump failure.
func (o *AnalysisOrchestrator) inspectArchive(ctx context.Context, scratch, extractDir string, n int, archive string) (entities.ResultKind, bool) {
	rel, err := filepath.Rel(extractDir, archive)
	if err != nil {
		rel = archive
	}

	dir := filepath.Join(scratch, fmt.Sprintf("archive-%d", n))
	if err := os.Mkdir(dir, 0750); err != nil {
		o.logger.Warn("Skipping archive", interfaces.F("archive", rel), interfaces.F("error", err))
		return "", false
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	o.logger.Debug("Extracting archive", interfaces.F("archive", rel), interfaces.F("dir", dir))
	// TODO: report archives that fail to extract as AR_EXTRACT_FAIL once they
	// can be re-analyzed separately.
	if err := o.archiveExtractor.ExtractArchive(ctx, archive, dir); err != nil {
		o.logger.Warn("Archive extraction failed, skipping", interfaces.F("archive", rel), interfaces.F("error", err))
		return "", false
	}

	objects, err := o.finder.FindObjects(dir)
	if err != nil {
		o.logger.Warn("Skipping archive", interfaces.F("archive", rel), interfaces.F("error", err))
		return "", false
	}
	if len(objects) == 0 {
		o.logger.Debug("No object files in archive", interfaces.F("archive", rel))
		return "", false
	}

	o.logger.Info("Dumping LTO bytecode",
		interfaces.F("archive", rel),
		interfaces.F("objects", len(objects)))
	result := o.dumper.Dump(ctx, dir, objects)
	if result.Success {
		return "", false
	}

	kind := services.ClassifyDumpFailure(result.Stderr)
	o.logger.Error("LTO dump failed",
		interfaces.F("archive", rel),
		interfaces.F("result", kind),
		interfaces.F("exit_code", result.ExitCode),
		interfaces.F("stderr", strings.TrimSpace(result.Stderr)))
	return kind, true
}
