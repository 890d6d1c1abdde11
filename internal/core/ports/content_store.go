package ports

import (
	"context"
	"io"

	"go.trai.ch/portable/internal/core/domain"
)

// ContentStore copies payloads into the content area of one case bundle, de-duplicating by fingerprint.
// It is build-scoped and used by a single worker.
//
//go:generate go run go.uber.org/mock/mockgen -source=content_store.go -destination=mocks/mock_content_store.go -package=mocks
type ContentStore interface {
	// Store streams r into the content area and returns where the bytes live.
	// Read failures match domain.ErrSourceRead; write failures match domain.ErrContentWrite.
	Store(ctx context.Context, ref domain.SourceObjectRef, r io.Reader) (domain.ContentLocation, error)
	// Records returns one record per distinct payload stored so far.
	Records() []domain.ContentRecord
	// BytesStored returns the raw size of every distinct payload stored so far.
	BytesStored() int64
}

// ContentStoreFactory creates a content store rooted at a case bundle directory.
type ContentStoreFactory interface {
	New(root string, compression domain.Compression) (ContentStore, error)
}
