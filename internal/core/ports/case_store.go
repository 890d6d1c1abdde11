package ports

import (
	"context"

	"go.trai.ch/portable/internal/core/domain"
)

// CaseStore is the schema store of a portable case under construction.
// Records passed in already carry destination identifiers.
//
//go:generate go run go.uber.org/mock/mockgen -source=case_store.go -destination=mocks/mock_case_store.go -package=mocks
type CaseStore interface {
	// Savepoint runs fn inside a savepoint. If fn returns an error every write it made is rolled back.
	Savepoint(ctx context.Context, fn func() error) error

	PutDataSource(ctx context.Context, ds *domain.DataSource) error
	// PutFile writes a file and its hash set hits. loc is nil for files without content.
	PutFile(ctx context.Context, f *domain.File, loc *domain.ContentLocation, hashSetIDs []int64) error
	PutArtifact(ctx context.Context, a *domain.Artifact) error
	// EnsureTagName returns the identifier of the tag name with the same display name, creating it if needed.
	EnsureTagName(ctx context.Context, tn *domain.TagName) (int64, error)
	// PutTag writes a tag. tagNameID is the destination tag name identifier.
	PutTag(ctx context.Context, t *domain.Tag, tagNameID int64) error
	PutHashSet(ctx context.Context, h *domain.HashSet) error
	PutAttachment(ctx context.Context, a *domain.Attachment, loc domain.ContentLocation) error

	// Close flushes and closes the store.
	Close() error
}

// CaseStoreFactory creates the schema store of a new case bundle rooted at root.
type CaseStoreFactory interface {
	Create(ctx context.Context, root string, info domain.CaseInfo) (CaseStore, error)
}

// CaseVerifier checks that a finalized case bundle is self-contained.
type CaseVerifier interface {
	// Verify reopens the bundle at root read-only and traverses every reference.
	// Problems are listed in the report; an error means the bundle could not be read.
	Verify(ctx context.Context, root string) (*domain.VerifyReport, error)
}
