// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/portable/internal/core/domain"
)

// SourceCase is a read-only view of an ordinary case.
// Lookups by identifier return domain.ErrObjectNotFound when no record matches.
//
//go:generate go run go.uber.org/mock/mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks
type SourceCase interface {
	// TagNames lists every tag name defined in the case.
	TagNames(ctx context.Context) ([]domain.TagName, error)
	// TagsByName returns every tag carrying one of the given tag names.
	TagsByName(ctx context.Context, tagNameIDs []int64) ([]*domain.Tag, error)
	// Tag returns a single tag.
	Tag(ctx context.Context, id int64) (*domain.Tag, error)

	// HashSets lists every hash set in the case.
	HashSets(ctx context.Context) ([]domain.HashSet, error)
	// HashSet returns a single hash set.
	HashSet(ctx context.Context, id int64) (*domain.HashSet, error)
	// HashSetMembers returns the identifiers of files hitting any of the given hash sets.
	HashSetMembers(ctx context.Context, hashSetIDs []int64) ([]int64, error)
	// HashSetsForFile returns the identifiers of the hash sets a file hits.
	HashSetsForFile(ctx context.Context, fileID int64) ([]int64, error)

	// DataSource returns a data source record.
	DataSource(ctx context.Context, id int64) (*domain.DataSource, error)
	// File returns a file or directory record.
	File(ctx context.Context, id int64) (*domain.File, error)
	// Artifact returns an artifact with its attributes.
	Artifact(ctx context.Context, id int64) (*domain.Artifact, error)
	// ArtifactsForFile returns the identifiers of artifacts derived from a file.
	ArtifactsForFile(ctx context.Context, fileID int64) ([]int64, error)
	// Attachment returns an attachment record.
	Attachment(ctx context.Context, id int64) (*domain.Attachment, error)
	// AttachmentsForArtifact returns the identifiers of attachments owned by an artifact.
	AttachmentsForArtifact(ctx context.Context, artifactID int64) ([]int64, error)

	// OpenContent streams the raw bytes of a file or attachment.
	// It returns domain.ErrContentNotFound for objects without a payload.
	OpenContent(ctx context.Context, ref domain.SourceObjectRef) (io.ReadCloser, error)

	// Close releases the case.
	Close() error
}

// SourceOpener opens a case bundle for reading.
type SourceOpener interface {
	Open(ctx context.Context, path string) (SourceCase, error)
}
