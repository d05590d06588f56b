package services

import (
	"regexp"

	"github.com/ochairo/ltoscan/internal/domain/entities"
)

// ltoVersionMismatch matches lto1's "fatal error: bytecode stream in file
// '...' generated with LTO version X instead of the expected Y". The message
// may be wrapped across lines.
var ltoVersionMismatch = regexp.MustCompile(`(?s)generated with LTO version.*instead of the expected`)

// ClassifyDumpFailure maps the error output of a failed LTO dump to a result kind
func ClassifyDumpFailure(stderr string) entities.ResultKind {
	if ltoVersionMismatch.MatchString(stderr) {
		return entities.ResultLTOVersionFail
	}
	return entities.ResultLTOUnknownFail
}
