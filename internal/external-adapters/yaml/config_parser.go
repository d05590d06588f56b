// Package yaml provides YAML-based configuration parsing and report output.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ochairo/ltoscan/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlConfig represents the raw YAML structure
type yamlConfig struct {
	WorkDir            string   `yaml:"workdir"`
	Series             string   `yaml:"series"`
	Distro             string   `yaml:"distro"`
	GCC                string   `yaml:"gcc"`
	Archiver           string   `yaml:"archiver"`
	LTODump            string   `yaml:"lto_dump"`
	DumpArgs           []string `yaml:"dump_args"`
	Puller             string   `yaml:"puller"`
	DpkgDeb            string   `yaml:"dpkg_deb"`
	DebExtractor       string   `yaml:"deb_extractor"`
	ToolTimeoutMinutes int      `yaml:"tool_timeout_minutes"`
}

// ConfigParser parses ltoscan configuration files
type ConfigParser struct{}

// NewConfigParser creates a new YAML parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// ParseFile parses a YAML config file. An empty path yields the defaults.
func (p *ConfigParser) ParseFile(filePath string) (entities.ScanConfig, error) {
	if filePath == "" {
		return entities.DefaultScanConfig(), nil
	}

	//nolint:gosec // G304: config path is supplied by the user
	data, err := os.ReadFile(filePath)
	if err != nil {
		return entities.ScanConfig{}, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes on top of the default configuration
func (p *ConfigParser) Parse(data []byte) (entities.ScanConfig, error) {
	config := entities.DefaultScanConfig()

	var raw yamlConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return config, nil
		}
		return entities.ScanConfig{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if raw.ToolTimeoutMinutes < 0 {
		return entities.ScanConfig{}, fmt.Errorf("tool_timeout_minutes must not be negative")
	}
	switch raw.DebExtractor {
	case "", entities.DebExtractorDpkg, entities.DebExtractorNative:
	default:
		return entities.ScanConfig{}, fmt.Errorf("unknown deb_extractor %q (want %s or %s)",
			raw.DebExtractor, entities.DebExtractorDpkg, entities.DebExtractorNative)
	}

	override(&config.WorkDir, raw.WorkDir)
	override(&config.Series, raw.Series)
	override(&config.Distro, raw.Distro)
	override(&config.GCC, raw.GCC)
	override(&config.Archiver, raw.Archiver)
	override(&config.LTODump, raw.LTODump)
	override(&config.Puller, raw.Puller)
	override(&config.DpkgDeb, raw.DpkgDeb)
	override(&config.DebExtractor, raw.DebExtractor)
	if raw.DumpArgs != nil {
		config.DumpArgs = raw.DumpArgs
	}
	config.ToolTimeout = time.Duration(raw.ToolTimeoutMinutes) * time.Minute

	return config, nil
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
