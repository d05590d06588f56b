package entities

import "time"

// DebChecksum records the SHA-256 of an examined .deb file
type DebChecksum struct {
	File   string `json:"file"`
	SHA256 string `json:"sha256"`
}

// PackageReport is a result enriched with checksums for the JSON report
type PackageReport struct {
	Result
	Checksums []DebChecksum `json:"checksums,omitempty"`
}

// ScanReport is the machine-readable summary of a whole run
type ScanReport struct {
	RunID       string                   `json:"run_id"`
	GeneratedAt time.Time                `json:"generated_at"`
	GCCVersion  string                   `json:"gcc_version"`
	Series      string                   `json:"series"`
	Packages    map[string]PackageReport `json:"packages"`
	Counts      map[ResultKind]int       `json:"counts"`
}
