// Package contentstore implements the deduplicating, content addressed payload area of a case bundle.
package contentstore

import (
	"context"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"
	"go.trai.ch/portable/internal/adapters/fs"
	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ContentStore = (*Store)(nil)

// Store copies payloads into <root>/content, one file per distinct blake3 fingerprint.
// It is build-scoped and not safe for concurrent use.
type Store struct {
	root        string
	compression domain.Compression

	records map[string]*domain.ContentRecord
	order   []string
	bytes   int64
}

// New creates a Store for the bundle at root, creating the content area.
func New(root string, compression domain.Compression) (*Store, error) {
	if !compression.Valid() {
		return nil, domain.Annotate(domain.ErrInvalidSettings, "compression", string(compression))
	}
	if compression == "" {
		compression = domain.CompressionNone
	}
	if err := os.MkdirAll(filepath.Join(root, domain.ContentDirName), domain.DirPerm); err != nil {
		return nil, zerr.With(domain.Classify(domain.ErrContentWrite, err), "root", root)
	}
	return &Store{
		root:        filepath.Clean(root),
		compression: compression,
		records:     make(map[string]*domain.ContentRecord),
	}, nil
}

// Store streams r into a temporary file while fingerprinting it, then publishes the file
// under its fingerprint. If the fingerprint was stored earlier in the build the new copy is
// discarded and the existing location returned.
func (s *Store) Store(ctx context.Context, ref domain.SourceObjectRef, r io.Reader) (domain.ContentLocation, error) {
	tmp, err := os.CreateTemp(filepath.Join(s.root, domain.ContentDirName), fs.TempPrefix+"*")
	if err != nil {
		return domain.ContentLocation{}, domain.Classify(domain.ErrContentWrite, err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	src := &trackingReader{ctx: ctx, r: r}
	hasher := blake3.New()
	size, err := s.copy(tmp, src, hasher)
	if err != nil {
		if src.err != nil {
			return domain.ContentLocation{}, zerr.With(domain.Classify(domain.ErrSourceRead, src.err), "ref", ref.String())
		}
		return domain.ContentLocation{}, zerr.With(domain.Classify(domain.ErrContentWrite, err), "ref", ref.String())
	}

	if err := tmp.Sync(); err != nil {
		return domain.ContentLocation{}, domain.Classify(domain.ErrContentWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return domain.ContentLocation{}, domain.Classify(domain.ErrContentWrite, err)
	}

	fp := hex.EncodeToString(hasher.Sum(nil))
	if rec, ok := s.records[fp]; ok {
		_ = os.Remove(tmpPath)
		success = true
		rec.Refs = append(rec.Refs, ref)
		loc := rec.Location
		loc.Deduplicated = true
		return loc, nil
	}

	compressed := s.compression == domain.CompressionZstd
	loc := domain.ContentLocation{
		Fingerprint: fp,
		RelPath:     domain.ContentRelPath(fp, compressed),
		Size:        size,
		Compressed:  compressed,
	}
	final := filepath.Join(s.root, filepath.FromSlash(loc.RelPath))
	if err := os.MkdirAll(filepath.Dir(final), domain.DirPerm); err != nil {
		return domain.ContentLocation{}, domain.Classify(domain.ErrContentWrite, err)
	}
	if err := os.Rename(tmpPath, final); err != nil {
		return domain.ContentLocation{}, domain.Classify(domain.ErrContentWrite, err)
	}
	success = true

	s.records[fp] = &domain.ContentRecord{Fingerprint: fp, Location: loc, Refs: []domain.SourceObjectRef{ref}}
	s.order = append(s.order, fp)
	s.bytes += size
	return loc, nil
}

// copy streams src into dst, encoding it when compression is on. The hasher always sees raw bytes.
func (s *Store) copy(dst io.Writer, src io.Reader, hasher io.Writer) (int64, error) {
	if s.compression != domain.CompressionZstd {
		return io.Copy(io.MultiWriter(hasher, dst), src)
	}

	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(io.MultiWriter(hasher, enc), src)
	if err != nil {
		_ = enc.Close()
		return n, err
	}
	return n, enc.Close()
}

// Records implements ports.ContentStore.
func (s *Store) Records() []domain.ContentRecord {
	out := make([]domain.ContentRecord, 0, len(s.order))
	for _, fp := range s.order {
		out = append(out, *s.records[fp])
	}
	return out
}

// BytesStored implements ports.ContentStore.
func (s *Store) BytesStored() int64 {
	return s.bytes
}

// trackingReader remembers read failures so they can be told apart from write failures,
// and stops at the next chunk once ctx is done.
type trackingReader struct {
	ctx context.Context
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	if err := t.ctx.Err(); err != nil {
		t.err = domain.Classify(domain.ErrCancelled, err)
		return 0, t.err
	}
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		t.err = err
	}
	return n, err
}
