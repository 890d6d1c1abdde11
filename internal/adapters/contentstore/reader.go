package contentstore

import (
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"
	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/zerr"
)

// Open returns the raw payload stored at the slash-separated rel path of the bundle at root.
// Payloads with the zstd suffix are decoded transparently.
// Locations that do not have the content area's shape are rejected without touching the filesystem.
func Open(root, rel string) (io.ReadCloser, error) {
	if !domain.IsContentRelPath(rel) {
		return nil, domain.Annotate(domain.ErrInvalidContentLocation, "path", rel)
	}
	path := filepath.Join(root, filepath.FromSlash(rel))
	f, err := os.Open(path) //nolint:gosec // Path is checked to lie inside the content area
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.Annotate(domain.ErrContentNotFound, "path", rel)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to open content"), "path", rel)
	}
	if !strings.HasSuffix(rel, domain.ZstdSuffix) {
		return f, nil
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, zerr.With(zerr.Wrap(err, "failed to decode content"), "path", rel)
	}
	return &decodingReader{dec: dec, f: f}, nil
}

// Fingerprint recomputes the fingerprint and raw size of a stored payload.
func Fingerprint(root, rel string) (string, int64, error) {
	rc, err := Open(root, rel)
	if err != nil {
		return "", 0, err
	}
	defer func() { _ = rc.Close() }()

	hasher := blake3.New()
	n, err := io.Copy(hasher, rc)
	if err != nil {
		return "", 0, zerr.With(zerr.Wrap(err, "failed to read content"), "path", rel)
	}
	return hex.EncodeToString(hasher.Sum(nil)), n, nil
}

// FingerprintFromPath returns the fingerprint a content path is named after.
func FingerprintFromPath(rel string) string {
	return strings.TrimSuffix(filepath.Base(filepath.FromSlash(rel)), domain.ZstdSuffix)
}

type decodingReader struct {
	dec *zstd.Decoder
	f   *os.File
}

func (d *decodingReader) Read(p []byte) (int, error) {
	return d.dec.Read(p)
}

func (d *decodingReader) Close() error {
	d.dec.Close()
	return d.f.Close()
}
