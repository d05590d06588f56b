// Package entities holds the value types shared across the scan pipeline.
package entities

// ResultKind classifies the outcome of analyzing one package
type ResultKind string

const (
	ResultPass           ResultKind = "PASS"
	ResultDownloadFail   ResultKind = "DOWNLOAD_FAIL"
	ResultDebExtractFail ResultKind = "DEB_EXTRACT_FAIL"
	// ResultArExtractFail is reserved: archive extraction failures are
	// currently logged and skipped rather than returned.
	ResultArExtractFail  ResultKind = "AR_EXTRACT_FAIL"
	ResultLTOVersionFail ResultKind = "LTO_VERSION_FAIL"
	ResultLTOUnknownFail ResultKind = "LTO_UNKNOWN_FAIL"
)

// AllResultKinds lists every kind in reporting order
var AllResultKinds = []ResultKind{
	ResultPass,
	ResultDownloadFail,
	ResultDebExtractFail,
	ResultArExtractFail,
	ResultLTOVersionFail,
	ResultLTOUnknownFail,
}

// IsFailure reports whether the kind is anything other than PASS
func (k ResultKind) IsFailure() bool {
	return k != ResultPass
}

// Result is the outcome of analyzing a single package
type Result struct {
	Kind ResultKind `json:"result" yaml:"result"`
	Debs []string   `json:"debs" yaml:"debs"`
}

// NewResult creates a result, copying debs so later changes by the caller
// do not leak into the record
func NewResult(kind ResultKind, debs []string) Result {
	copied := make([]string, len(debs))
	copy(copied, debs)
	return Result{Kind: kind, Debs: copied}
}
