package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ochairo/ltoscan/internal/domain/entities"
)

// CountResults tallies results per kind; every kind is present in the map
func CountResults(results map[string]entities.Result) map[entities.ResultKind]int {
	counts := make(map[entities.ResultKind]int, len(entities.AllResultKinds))
	for _, kind := range entities.AllResultKinds {
		counts[kind] = 0
	}
	for _, r := range results {
		counts[r.Kind]++
	}
	return counts
}

// SummaryLine renders the non-zero counts, e.g. "2 packages: PASS=1 DOWNLOAD_FAIL=1"
func SummaryLine(results map[string]entities.Result) string {
	counts := CountResults(results)

	parts := make([]string, 0, len(counts))
	for _, kind := range entities.AllResultKinds {
		if counts[kind] > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", kind, counts[kind]))
		}
	}

	noun := "packages"
	if len(results) == 1 {
		noun = "package"
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%d %s", len(results), noun)
	}
	return fmt.Sprintf("%d %s: %s", len(results), noun, strings.Join(parts, " "))
}

// SortedPackageNames returns the keys of results in lexical order
func SortedPackageNames(results map[string]entities.Result) []string {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildScanReport assembles the machine-readable report for a run. checksums
// maps package name to the checksums of its debs and may be nil.
func BuildScanReport(
	results map[string]entities.Result,
	checksums map[string][]entities.DebChecksum,
	toolchain entities.Toolchain,
	now time.Time,
) *entities.ScanReport {
	packages := make(map[string]entities.PackageReport, len(results))
	for name, r := range results {
		packages[name] = entities.PackageReport{
			Result:    r,
			Checksums: checksums[name],
		}
	}

	return &entities.ScanReport{
		GeneratedAt: now.UTC(),
		GCCVersion:  toolchain.GCCVersion,
		Series:      toolchain.Series,
		Packages:    packages,
		Counts:      CountResults(results),
	}
}
