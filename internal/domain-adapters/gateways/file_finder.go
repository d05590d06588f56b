package gateways

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileFinder locates the files a scan operates on
type FileFinder struct{}

// NewFileFinder creates a new file finder
func NewFileFinder() *FileFinder {
	return &FileFinder{}
}

// FindDebs returns the <packageName>*.deb files in dir, sorted
func (f *FileFinder) FindDebs(dir, packageName string) ([]string, error) {
	pattern := filepath.Join(dir, packageName+"*.deb")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// FindStaticArchives walks root and returns every regular file ending in .a,
// in lexical walk order
func (f *FileFinder) FindStaticArchives(root string) ([]string, error) {
	var archives []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Type().IsRegular() && strings.HasSuffix(d.Name(), ".a") {
			archives = append(archives, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return archives, nil
}

// FindObjects returns the base names of the *.o files directly inside dir
func (f *FileFinder) FindObjects(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var objects []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".o") {
			continue
		}
		objects = append(objects, entry.Name())
	}
	return objects, nil
}
