package services

import (
	"testing"

	"github.com/ochairo/ltoscan/internal/domain/entities"
)

func TestClassifyDumpFailure(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   entities.ResultKind
	}{
		{
			name:   "version mismatch",
			stderr: "lto1: fatal error: bytecode stream in file 'foo.o' generated with LTO version 13.1 instead of the expected 14.0\ncompilation terminated.\n",
			want:   entities.ResultLTOVersionFail,
		},
		{
			name:   "message wrapped across lines",
			stderr: "lto1: fatal error: bytecode stream in file 'foo.o' generated with LTO version 13.1\ninstead of the expected 14.0\n",
			want:   entities.ResultLTOVersionFail,
		},
		{
			name:   "phrases only",
			stderr: "generated with LTO version 1 ... instead of the expected 2",
			want:   entities.ResultLTOVersionFail,
		},
		{
			name:   "phrases out of order",
			stderr: "instead of the expected 2; generated with LTO version 1",
			want:   entities.ResultLTOUnknownFail,
		},
		{
			name:   "case sensitive",
			stderr: "GENERATED WITH LTO VERSION 1 INSTEAD OF THE EXPECTED 2",
			want:   entities.ResultLTOUnknownFail,
		},
		{
			name:   "other failure",
			stderr: "lto-dump: fatal error: foo.o: file not recognized\n",
			want:   entities.ResultLTOUnknownFail,
		},
		{
			name:   "empty",
			stderr: "",
			want:   entities.ResultLTOUnknownFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyDumpFailure(tt.stderr); got != tt.want {
				t.Errorf("ClassifyDumpFailure() = %v, want %v", got, tt.want)
			}
		})
	}
}
