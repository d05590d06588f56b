package gateways

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

const (
	arMagic      = "!<arch>\n"
	arHeaderSize = 60
	// maxMemberFileSize caps a single extracted file (decompression bombs)
	maxMemberFileSize = 1 << 30
)

// ErrNoDataMember is returned for .deb files without a data.tar member
var ErrNoDataMember = errors.New("no data.tar member in package")

// NativeDebExtractor unpacks .deb files without dpkg-deb: the ar container
// is read directly and its data.tar member decompressed in-process
type NativeDebExtractor struct{}

// NewNativeDebExtractor creates a new native extractor
func NewNativeDebExtractor() *NativeDebExtractor {
	return &NativeDebExtractor{}
}

// ExtractDeb unpacks the data member of debPath into destDir
func (e *NativeDebExtractor) ExtractDeb(ctx context.Context, debPath, destDir string) error {
	//nolint:gosec // G304: deb path points into the scan work directory
	f, err := os.Open(debPath)
	if err != nil {
		return fmt.Errorf("failed to open package: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	ar, err := newArReader(f)
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(debPath), err)
	}

	for {
		name, size, err := ar.next()
		if err == io.EOF {
			return fmt.Errorf("%s: %w", filepath.Base(debPath), ErrNoDataMember)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(debPath), err)
		}
		if !strings.HasPrefix(name, "data.tar") {
			continue
		}

		payload, err := decompressor(name, io.LimitReader(ar.r, size))
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(debPath), err)
		}
		if err := extractTar(ctx, payload, destDir); err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(debPath), err)
		}
		return nil
	}
}

// arReader walks the members of a Unix ar archive
type arReader struct {
	r         *bufio.Reader
	remaining int64 // unread bytes of the current member, including padding
}

func newArReader(r io.Reader) (*arReader, error) {
	br := bufio.NewReader(r)
	magic := make([]byte, len(arMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("failed to read ar magic: %w", err)
	}
	if string(magic) != arMagic {
		return nil, fmt.Errorf("not an ar archive")
	}
	return &arReader{r: br}, nil
}

// next skips to the following member header and returns its name and size
func (a *arReader) next() (string, int64, error) {
	if a.remaining > 0 {
		if _, err := io.CopyN(io.Discard, a.r, a.remaining); err != nil {
			return "", 0, fmt.Errorf("failed to skip member: %w", err)
		}
		a.remaining = 0
	}

	header := make([]byte, arHeaderSize)
	if _, err := io.ReadFull(a.r, header); err != nil {
		if err == io.EOF {
			return "", 0, io.EOF
		}
		return "", 0, fmt.Errorf("failed to read member header: %w", err)
	}
	if !bytes.Equal(header[58:60], []byte("`\n")) {
		return "", 0, fmt.Errorf("corrupt member header")
	}

	name := strings.TrimSuffix(strings.TrimRight(string(header[0:16]), " "), "/")
	size, err := strconv.ParseInt(strings.TrimSpace(string(header[48:58])), 10, 64)
	if err != nil || size < 0 {
		return "", 0, fmt.Errorf("invalid size for member %q", name)
	}

	// Members are aligned to even offsets.
	a.remaining = size + size%2
	return name, size, nil
}

// decompressor wraps r according to the compression suffix of member
func decompressor(member string, r io.Reader) (io.Reader, error) {
	switch filepath.Ext(member) {
	case ".tar":
		return r, nil
	case ".gz":
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzr, nil
	case ".xz":
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xzr, nil
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return zr.IOReadCloser(), nil
	case ".lzma":
		lr, err := lzma.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create lzma reader: %w", err)
		}
		return lr, nil
	case ".bz2":
		return bzip2.NewReader(r), nil
	default:
		return nil, fmt.Errorf("unsupported data member compression: %s", member)
	}
}

// extractTar unpacks a tar stream into destDir, refusing entries that would
// land outside it. Links are created after all regular files exist.
func extractTar(ctx context.Context, r io.Reader, destDir string) error {
	if closer, ok := r.(io.Closer); ok {
		//nolint:errcheck // Defer close on decompressor
		defer closer.Close()
	}

	if err := os.MkdirAll(destDir, 0750); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}
	root := filepath.Clean(destDir)

	type linkInfo struct {
		target   string
		linkname string
		hard     bool
	}
	var links []linkInfo

	tr := tar.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("tar read error: %w", err)
		}

		target, err := safeJoin(root, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}

		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
				return fmt.Errorf("failed to create parent directory: %w", err)
			}
			//nolint:gosec // G115: tar header mode fits in FileMode
			mode := os.FileMode(header.Mode).Perm() | 0600
			outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
			if err != nil {
				return fmt.Errorf("failed to create file: %w", err)
			}
			if _, err := io.Copy(outFile, io.LimitReader(tr, maxMemberFileSize)); err != nil {
				_ = outFile.Close()
				return fmt.Errorf("failed to write file: %w", err)
			}
			if err := outFile.Close(); err != nil {
				return fmt.Errorf("failed to close file: %w", err)
			}

		case tar.TypeSymlink:
			links = append(links, linkInfo{target: target, linkname: header.Linkname})

		case tar.TypeLink:
			source, err := safeJoin(root, header.Linkname)
			if err != nil {
				return err
			}
			links = append(links, linkInfo{target: target, linkname: source, hard: true})
		}
	}

	for _, link := range links {
		if err := os.MkdirAll(filepath.Dir(link.target), 0750); err != nil {
			return fmt.Errorf("failed to create directory for link: %w", err)
		}
		var err error
		if link.hard {
			err = os.Link(link.linkname, link.target)
		} else {
			err = os.Symlink(link.linkname, link.target)
		}
		if err != nil && !os.IsExist(err) {
			return fmt.Errorf("failed to create link %s: %w", link.target, err)
		}
	}

	return nil
}

// safeJoin joins name under root and rejects results outside root
func safeJoin(root, name string) (string, error) {
	//nolint:gosec // G305: traversal is rejected below
	target := filepath.Join(root, name)
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid file path in archive: %s", name)
	}
	return target, nil
}
