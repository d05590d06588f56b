package gateways

import (
	"os"
	"path/filepath"
	"testing"
)

func TestChecksumCalculator_CalculateChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.deb")
	if err := os.WriteFile(path, []byte("hello world"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	got, err := NewChecksumCalculator().CalculateChecksum(path)
	if err != nil {
		t.Fatalf("CalculateChecksum() error = %v", err)
	}

	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if got != want {
		t.Errorf("CalculateChecksum() = %s, want %s", got, want)
	}
}

func TestChecksumCalculator_ChecksumDebs(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.deb"), []byte("hello world"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	sums, err := NewChecksumCalculator().ChecksumDebs(dir, []string{"a.deb", "gone.deb"})
	if err != nil {
		t.Fatalf("ChecksumDebs() error = %v", err)
	}
	if len(sums) != 1 || sums[0].File != "a.deb" {
		t.Errorf("ChecksumDebs() = %+v, want only a.deb", sums)
	}
}
