package yaml

import (
	"testing"
)

// FuzzConfigParser tests the YAML parser against random/malformed inputs
// to detect crashes, panics, or unexpected behavior.
//
// Run with: go test -fuzz=FuzzConfigParser -fuzztime=30s
func FuzzConfigParser(f *testing.F) {
	f.Add([]byte(`workdir: workdir
series: noble
`))

	f.Add([]byte(`series: questing
distro: ubuntu
gcc: /usr/bin/gcc-15
archiver: gcc-ar-15
lto_dump: lto-dump-15
dump_args:
  - -list
puller: pull-pkg
dpkg_deb: dpkg-deb
deb_extractor: native
tool_timeout_minutes: 30
`))

	// Seed with edge cases
	f.Add([]byte(``))                                  // Empty input
	f.Add([]byte(`{}`))                                // Empty JSON-style YAML
	f.Add([]byte(`[]`))                                // Array instead of object
	f.Add([]byte(`series: noble\n  bad`))              // Invalid indentation
	f.Add([]byte(`series: noble\nseries: jammy`))      // Duplicate keys
	f.Add([]byte(`tool_timeout_minutes: 99999999999`)) // Overflow

	parser := NewConfigParser()

	f.Fuzz(func(_ *testing.T, data []byte) {
		_, _ = parser.Parse(data)
	})
}
