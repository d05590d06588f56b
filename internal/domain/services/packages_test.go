package services

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseLog(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{
			name:  "single line",
			input: "libfoo-dev: /usr/lib/x86_64-linux-gnu/libfoo.a\n",
			want:  []string{"libfoo-dev"},
		},
		{
			name:  "blank lines skipped",
			input: "libfoo-dev: a\n\n   \nlibbar-dev: b\n",
			want:  []string{"libfoo-dev", "libbar-dev"},
		},
		{
			name:  "split on first separator only",
			input: "libbaz-dev: path: with: colons\n",
			want:  []string{"libbaz-dev"},
		},
		{
			name:  "crlf line endings",
			input: "libfoo-dev: a\r\nlibbar-dev: b\r\n",
			want:  []string{"libfoo-dev", "libbar-dev"},
		},
		{
			name:    "missing separator",
			input:   "libfoo-dev: a\nlibbar-dev\n",
			wantErr: true,
		},
		{
			name:    "colon without space",
			input:   "libfoo-dev:/usr/lib/libfoo.a\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLog(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLog() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedLogLine) {
					t.Errorf("ParseLog() error = %v, want ErrMalformedLogLine", err)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseLog() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolvePackages_MergesAndDeduplicates(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "build.log")
	content := "libfoo-dev: /a/libfoo.a\nlibbar-dev: /b/libbar.a\nlibfoo-dev: /a/libfoo_pic.a\n"
	if err := os.WriteFile(logPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write log: %v", err)
	}

	got, err := ResolvePackages(logPath, []string{"libzed-dev", "libbar-dev"})
	if err != nil {
		t.Fatalf("ResolvePackages() error = %v", err)
	}

	want := []string{"libbar-dev", "libfoo-dev", "libzed-dev"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolvePackages() = %v, want %v", got, want)
	}
}

func TestResolvePackages_ArgsOnly(t *testing.T) {
	got, err := ResolvePackages("", []string{"b", "a", "b"})
	if err != nil {
		t.Fatalf("ResolvePackages() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("ResolvePackages() = %v, want [a b]", got)
	}
}

func TestResolvePackages_MissingLog(t *testing.T) {
	_, err := ResolvePackages(filepath.Join(t.TempDir(), "missing.log"), nil)
	if err == nil {
		t.Error("ResolvePackages() should fail for a missing log file")
	}
}

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		pkg     string
		wantErr bool
	}{
		{name: "plain", pkg: "libfoo-dev", wantErr: false},
		{name: "with plus and dots", pkg: "libstdc++-13-dev", wantErr: false},
		{name: "empty", pkg: "", wantErr: true},
		{name: "dot dot", pkg: "..", wantErr: true},
		{name: "slash", pkg: "../etc", wantErr: true},
		{name: "star", pkg: "lib*", wantErr: true},
		{name: "bracket", pkg: "lib[foo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.pkg)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackageName(%q) error = %v, wantErr %v", tt.pkg, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidPackageName) {
				t.Errorf("ValidatePackageName(%q) error = %v, want ErrInvalidPackageName", tt.pkg, err)
			}
		})
	}
}
