package gateways

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ochairo/ltoscan/internal/domain/entities"
)

// ChecksumCalculator computes SHA-256 sums of downloaded packages
type ChecksumCalculator struct{}

// NewChecksumCalculator creates a new checksum calculator
func NewChecksumCalculator() *ChecksumCalculator {
	return &ChecksumCalculator{}
}

// CalculateChecksum calculates the SHA256 checksum of a file
func (c *ChecksumCalculator) CalculateChecksum(filePath string) (string, error) {
	//nolint:gosec // G304: file path points into the scan work directory
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// ChecksumDebs hashes each named deb inside dir. Files that have disappeared
// are skipped.
func (c *ChecksumCalculator) ChecksumDebs(dir string, debs []string) ([]entities.DebChecksum, error) {
	sums := make([]entities.DebChecksum, 0, len(debs))
	for _, deb := range debs {
		path := filepath.Join(dir, deb)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		sum, err := c.CalculateChecksum(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", deb, err)
		}
		sums = append(sums, entities.DebChecksum{File: deb, SHA256: sum})
	}
	return sums, nil
}
