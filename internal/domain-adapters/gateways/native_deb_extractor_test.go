package gateways

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

type tarEntry struct {
	name     string
	body     string
	typeflag byte
	linkname string
}

func buildTar(t *testing.T, entries []tarEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, e := range entries {
		hdr := &tar.Header{
			Name:     e.name,
			Mode:     0644,
			Size:     int64(len(e.body)),
			Typeflag: e.typeflag,
			Linkname: e.linkname,
		}
		if e.typeflag == tar.TypeDir {
			hdr.Mode = 0755
			hdr.Size = 0
		}
		if e.typeflag == tar.TypeSymlink || e.typeflag == tar.TypeLink {
			hdr.Size = 0
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("Failed to write tar header: %v", err)
		}
		if hdr.Size > 0 {
			if _, err := tw.Write([]byte(e.body)); err != nil {
				t.Fatalf("Failed to write tar body: %v", err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("Failed to close tar writer: %v", err)
	}
	return buf.Bytes()
}

func compress(t *testing.T, format string, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	var w io.WriteCloser
	var err error
	switch format {
	case "":
		return data
	case ".gz":
		w = gzip.NewWriter(&buf)
	case ".xz":
		w, err = xz.NewWriter(&buf)
	case ".zst":
		w, err = zstd.NewWriter(&buf)
	default:
		t.Fatalf("unknown format %s", format)
	}
	if err != nil {
		t.Fatalf("Failed to create %s writer: %v", format, err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Failed to compress: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close %s writer: %v", format, err)
	}
	return buf.Bytes()
}

type arMember struct {
	name string
	data []byte
}

func buildAr(members []arMember) []byte {
	var buf bytes.Buffer
	buf.WriteString(arMagic)
	for _, m := range members {
		fmt.Fprintf(&buf, "%-16s%-12d%-6d%-6d%-8s%-10d`\n", m.name, 0, 0, 0, "100644", len(m.data))
		buf.Write(m.data)
		if len(m.data)%2 == 1 {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

func writeDeb(t *testing.T, dir, name string, members []arMember) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buildAr(members), 0600); err != nil {
		t.Fatalf("Failed to write deb: %v", err)
	}
	return path
}

func standardDebMembers(t *testing.T, format string, payload []tarEntry) []arMember {
	control := compress(t, ".gz", buildTar(t, []tarEntry{{name: "./control", body: "Package: libfoo-dev\n"}}))
	return []arMember{
		{name: "debian-binary", data: []byte("2.0\n")},
		{name: "control.tar.gz", data: control},
		// odd length exercises member padding
		{name: "_gpgorigin", data: []byte("sig")},
		{name: "data.tar" + format, data: compress(t, format, buildTar(t, payload))},
	}
}

func TestNativeDebExtractor_ExtractDeb_Formats(t *testing.T) {
	payload := []tarEntry{
		{name: "./", typeflag: tar.TypeDir},
		{name: "./usr/lib/x86_64-linux-gnu/", typeflag: tar.TypeDir},
		{name: "./usr/lib/x86_64-linux-gnu/libfoo.a", body: "!<arch>\n", typeflag: tar.TypeReg},
		{name: "./usr/lib/x86_64-linux-gnu/libfoo_pic.a", typeflag: tar.TypeSymlink, linkname: "libfoo.a"},
		{name: "./usr/lib/libfoo-copy.a", typeflag: tar.TypeLink, linkname: "./usr/lib/x86_64-linux-gnu/libfoo.a"},
	}

	for _, format := range []string{"", ".gz", ".xz", ".zst"} {
		t.Run("data.tar"+format, func(t *testing.T) {
			deb := writeDeb(t, t.TempDir(), "libfoo-dev_1.0_amd64.deb", standardDebMembers(t, format, payload))
			dest := t.TempDir()

			if err := NewNativeDebExtractor().ExtractDeb(context.Background(), deb, dest); err != nil {
				t.Fatalf("ExtractDeb() error = %v", err)
			}

			content, err := os.ReadFile(filepath.Join(dest, "usr", "lib", "x86_64-linux-gnu", "libfoo.a"))
			if err != nil {
				t.Fatalf("libfoo.a not extracted: %v", err)
			}
			if string(content) != "!<arch>\n" {
				t.Errorf("libfoo.a content = %q", content)
			}
			if target, err := os.Readlink(filepath.Join(dest, "usr", "lib", "x86_64-linux-gnu", "libfoo_pic.a")); err != nil || target != "libfoo.a" {
				t.Errorf("symlink = %q, %v", target, err)
			}
			if _, err := os.Stat(filepath.Join(dest, "usr", "lib", "libfoo-copy.a")); err != nil {
				t.Errorf("hard link not created: %v", err)
			}
		})
	}
}

func TestNativeDebExtractor_ExtractDeb_RejectsTraversal(t *testing.T) {
	payload := []tarEntry{{name: "../../escape.txt", body: "x", typeflag: tar.TypeReg}}
	deb := writeDeb(t, t.TempDir(), "evil.deb", standardDebMembers(t, ".gz", payload))

	if err := NewNativeDebExtractor().ExtractDeb(context.Background(), deb, t.TempDir()); err == nil {
		t.Error("ExtractDeb() should reject paths outside the destination")
	}
}

func TestNativeDebExtractor_ExtractDeb_NoDataMember(t *testing.T) {
	deb := writeDeb(t, t.TempDir(), "empty.deb", []arMember{{name: "debian-binary", data: []byte("2.0\n")}})

	err := NewNativeDebExtractor().ExtractDeb(context.Background(), deb, t.TempDir())
	if !errors.Is(err, ErrNoDataMember) {
		t.Errorf("ExtractDeb() error = %v, want ErrNoDataMember", err)
	}
}

func TestNativeDebExtractor_ExtractDeb_NotAnArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.deb")
	if err := os.WriteFile(path, []byte("this is not a deb"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if err := NewNativeDebExtractor().ExtractDeb(context.Background(), path, t.TempDir()); err == nil {
		t.Error("ExtractDeb() should fail for a non-ar file")
	}
}

func TestNativeDebExtractor_ExtractDeb_UnsupportedCompression(t *testing.T) {
	deb := writeDeb(t, t.TempDir(), "odd.deb", []arMember{
		{name: "debian-binary", data: []byte("2.0\n")},
		{name: "data.tar.rar", data: []byte("xx")},
	})

	if err := NewNativeDebExtractor().ExtractDeb(context.Background(), deb, t.TempDir()); err == nil {
		t.Error("ExtractDeb() should fail for unknown compression")
	}
}
