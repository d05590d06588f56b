// Package services implements domain business logic and use cases.
package services

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// logSeparator splits a log line into package name and path
const logSeparator = ": "

// ErrMalformedLogLine is returned for non-empty log lines lacking the separator
var ErrMalformedLogLine = errors.New("malformed log line")

// ErrInvalidPackageName is returned for names that cannot form a safe file pattern
var ErrInvalidPackageName = errors.New("invalid package name")

// ParseLog reads package names from a log of "<package>: <path>" lines.
// Blank lines are ignored; any other line without the separator is an error.
func ParseLog(r io.Reader) ([]string, error) {
	var names []string

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		name, _, found := strings.Cut(line, logSeparator)
		if !found {
			return nil, fmt.Errorf("%w at line %d: %q", ErrMalformedLogLine, lineNo, line)
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}

	return names, nil
}

// ParseLogFile is ParseLog over a file on disk
func ParseLogFile(path string) ([]string, error) {
	//nolint:gosec // G304: log path is supplied by the user on the command line
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	names, err := ParseLog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return names, nil
}

// ResolvePackages merges package names from an optional log file with the
// names given explicitly. The result is deduplicated and sorted.
func ResolvePackages(logPath string, args []string) ([]string, error) {
	set := make(map[string]struct{})

	if logPath != "" {
		fromLog, err := ParseLogFile(logPath)
		if err != nil {
			return nil, err
		}
		for _, name := range fromLog {
			set[name] = struct{}{}
		}
	}

	for _, name := range args {
		set[name] = struct{}{}
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// ValidatePackageName rejects names that would escape the package directory
// or act as glob metacharacters in "<name>*.deb"
func ValidatePackageName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidPackageName, name)
	}
	if strings.ContainsAny(name, `/\*?[]`) {
		return fmt.Errorf("%w: %q", ErrInvalidPackageName, name)
	}
	if _, err := filepath.Match(name+"*.deb", name); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidPackageName, name, err)
	}
	return nil
}
