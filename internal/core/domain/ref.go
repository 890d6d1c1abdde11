// Package domain contains the core domain models for building portable cases.
package domain

import (
	"cmp"
	"fmt"
)

// ObjectKind identifies which table of the source case an object lives in.
type ObjectKind uint8

const (
	// KindDataSource is an acquired data source (disk image, logical file set).
	KindDataSource ObjectKind = iota + 1
	// KindFile is a file or directory inside a data source.
	KindFile
	// KindArtifact is a blackboard artifact derived from a file.
	KindArtifact
	// KindTag is a tag an investigator applied to a file or an artifact.
	KindTag
	// KindHashSet is a named set of known content hashes.
	KindHashSet
	// KindAttachment is a binary payload owned by an artifact (e.g. an email attachment).
	KindAttachment
)

// String returns the lower-case name of the kind.
func (k ObjectKind) String() string {
	switch k {
	case KindDataSource:
		return "data_source"
	case KindFile:
		return "file"
	case KindArtifact:
		return "artifact"
	case KindTag:
		return "tag"
	case KindHashSet:
		return "hash_set"
	case KindAttachment:
		return "attachment"
	default:
		return "unknown"
	}
}

// SourceObjectRef identifies an object in the original case.
// It is a comparable value and safe to use as a map key.
type SourceObjectRef struct {
	Kind ObjectKind
	ID   int64
}

// Ref builds a SourceObjectRef.
func Ref(kind ObjectKind, id int64) SourceObjectRef {
	return SourceObjectRef{Kind: kind, ID: id}
}

// String returns a stable "kind:id" representation used in logs and error metadata.
func (r SourceObjectRef) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

// IsZero reports whether the ref is unset.
func (r SourceObjectRef) IsZero() bool {
	return r.Kind == 0 && r.ID == 0
}

// CompareRefs orders refs by kind, then by identifier.
func CompareRefs(a, b SourceObjectRef) int {
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// DestinationObjectID is an identifier minted for the portable case.
// It never equals, and never points back to, a source case identifier by construction.
type DestinationObjectID int64
