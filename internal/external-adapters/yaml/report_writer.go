package yaml

import (
	"fmt"
	"io"

	"github.com/ochairo/ltoscan/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// ReportWriter renders scan results as a human-readable YAML document
type ReportWriter struct {
	out io.Writer
}

// NewReportWriter creates a writer emitting to out
func NewReportWriter(out io.Writer) *ReportWriter {
	return &ReportWriter{out: out}
}

// WriteResults dumps the package -> result mapping, keys in lexical order
func (w *ReportWriter) WriteResults(results map[string]entities.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w.out, "{}")
		return err
	}

	enc := yaml.NewEncoder(w.out)
	enc.SetIndent(2)
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return enc.Close()
}
