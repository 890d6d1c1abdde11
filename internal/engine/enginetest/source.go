// Package enginetest provides an in-memory source case for engine tests.
package enginetest

import (
	"bytes"
	"context"
	"io"
	"maps"
	"slices"
	"sync"

	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
)

var _ ports.SourceCase = (*Source)(nil)

// Source is an in-memory ports.SourceCase. Populate it with the Add methods.
type Source struct {
	mu sync.Mutex

	dataSources map[int64]*domain.DataSource
	files       map[int64]*domain.File
	artifacts   map[int64]*domain.Artifact
	tags        map[int64]*domain.Tag
	tagNames    map[int64]domain.TagName
	hashSets    map[int64]*domain.HashSet
	hits        map[int64][]int64
	attachments map[int64]*domain.Attachment
	content     map[domain.SourceObjectRef][]byte
	failures    map[domain.SourceObjectRef]error

	// Opened counts OpenContent calls per ref.
	Opened map[domain.SourceObjectRef]int
	closed bool
}

// NewSource creates an empty Source.
func NewSource() *Source {
	return &Source{
		dataSources: make(map[int64]*domain.DataSource),
		files:       make(map[int64]*domain.File),
		artifacts:   make(map[int64]*domain.Artifact),
		tags:        make(map[int64]*domain.Tag),
		tagNames:    make(map[int64]domain.TagName),
		hashSets:    make(map[int64]*domain.HashSet),
		hits:        make(map[int64][]int64),
		attachments: make(map[int64]*domain.Attachment),
		content:     make(map[domain.SourceObjectRef][]byte),
		failures:    make(map[domain.SourceObjectRef]error),
		Opened:      make(map[domain.SourceObjectRef]int),
	}
}

// AddDataSource adds a data source.
func (s *Source) AddDataSource(ds *domain.DataSource) *Source {
	s.dataSources[ds.ID] = ds
	return s
}

// AddFile adds a file. A non-nil payload marks the file as having content.
func (s *Source) AddFile(f *domain.File, payload []byte) *Source {
	if payload != nil {
		f.HasContent = true
		f.Size = int64(len(payload))
		s.content[f.ObjectRef()] = payload
	}
	s.files[f.ID] = f
	return s
}

// AddArtifact adds an artifact.
func (s *Source) AddArtifact(a *domain.Artifact) *Source {
	s.artifacts[a.ID] = a
	return s
}

// AddTag adds a tag and registers its tag name.
func (s *Source) AddTag(t *domain.Tag) *Source {
	s.tags[t.ID] = t
	s.tagNames[t.Name.ID] = t.Name
	return s
}

// AddTagName registers a tag name that may have no tags.
func (s *Source) AddTagName(tn domain.TagName) *Source {
	s.tagNames[tn.ID] = tn
	return s
}

// AddHashSet adds a hash set with the given member files.
func (s *Source) AddHashSet(h *domain.HashSet, fileIDs ...int64) *Source {
	s.hashSets[h.ID] = h
	s.hits[h.ID] = append(s.hits[h.ID], fileIDs...)
	return s
}

// AddAttachment adds an attachment with its payload.
func (s *Source) AddAttachment(a *domain.Attachment, payload []byte) *Source {
	a.Size = int64(len(payload))
	s.attachments[a.ID] = a
	s.content[a.ObjectRef()] = payload
	return s
}

// FailContent makes reads of ref's payload fail with err after half the bytes.
func (s *Source) FailContent(ref domain.SourceObjectRef, err error) *Source {
	s.failures[ref] = err
	return s
}

// Remove deletes an object, simulating a corrupt source case.
func (s *Source) Remove(ref domain.SourceObjectRef) *Source {
	switch ref.Kind {
	case domain.KindDataSource:
		delete(s.dataSources, ref.ID)
	case domain.KindFile:
		delete(s.files, ref.ID)
	case domain.KindArtifact:
		delete(s.artifacts, ref.ID)
	case domain.KindTag:
		delete(s.tags, ref.ID)
	case domain.KindHashSet:
		delete(s.hashSets, ref.ID)
	case domain.KindAttachment:
		delete(s.attachments, ref.ID)
	}
	return s
}

// Closed reports whether Close was called.
func (s *Source) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// TagNames implements ports.SourceCase.
func (s *Source) TagNames(_ context.Context) ([]domain.TagName, error) {
	out := make([]domain.TagName, 0, len(s.tagNames))
	for _, id := range slices.Sorted(maps.Keys(s.tagNames)) {
		out = append(out, s.tagNames[id])
	}
	return out, nil
}

// TagsByName implements ports.SourceCase.
func (s *Source) TagsByName(_ context.Context, tagNameIDs []int64) ([]*domain.Tag, error) {
	var out []*domain.Tag
	for _, id := range slices.Sorted(maps.Keys(s.tags)) {
		if slices.Contains(tagNameIDs, s.tags[id].Name.ID) {
			out = append(out, s.tags[id])
		}
	}
	return out, nil
}

// Tag implements ports.SourceCase.
func (s *Source) Tag(_ context.Context, id int64) (*domain.Tag, error) {
	return get(s.tags, id)
}

// HashSets implements ports.SourceCase.
func (s *Source) HashSets(_ context.Context) ([]domain.HashSet, error) {
	out := make([]domain.HashSet, 0, len(s.hashSets))
	for _, id := range slices.Sorted(maps.Keys(s.hashSets)) {
		out = append(out, *s.hashSets[id])
	}
	return out, nil
}

// HashSet implements ports.SourceCase.
func (s *Source) HashSet(_ context.Context, id int64) (*domain.HashSet, error) {
	return get(s.hashSets, id)
}

// HashSetMembers implements ports.SourceCase.
func (s *Source) HashSetMembers(_ context.Context, hashSetIDs []int64) ([]int64, error) {
	var out []int64
	for _, id := range hashSetIDs {
		out = append(out, s.hits[id]...)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// HashSetsForFile implements ports.SourceCase.
func (s *Source) HashSetsForFile(_ context.Context, fileID int64) ([]int64, error) {
	var out []int64
	for _, id := range slices.Sorted(maps.Keys(s.hits)) {
		if slices.Contains(s.hits[id], fileID) {
			out = append(out, id)
		}
	}
	return out, nil
}

// DataSource implements ports.SourceCase.
func (s *Source) DataSource(_ context.Context, id int64) (*domain.DataSource, error) {
	return get(s.dataSources, id)
}

// File implements ports.SourceCase.
func (s *Source) File(_ context.Context, id int64) (*domain.File, error) {
	return get(s.files, id)
}

// Artifact implements ports.SourceCase.
func (s *Source) Artifact(_ context.Context, id int64) (*domain.Artifact, error) {
	return get(s.artifacts, id)
}

// ArtifactsForFile implements ports.SourceCase.
func (s *Source) ArtifactsForFile(_ context.Context, fileID int64) ([]int64, error) {
	var out []int64
	for _, id := range slices.Sorted(maps.Keys(s.artifacts)) {
		if s.artifacts[id].FileID == fileID {
			out = append(out, id)
		}
	}
	return out, nil
}

// Attachment implements ports.SourceCase.
func (s *Source) Attachment(_ context.Context, id int64) (*domain.Attachment, error) {
	return get(s.attachments, id)
}

// AttachmentsForArtifact implements ports.SourceCase.
func (s *Source) AttachmentsForArtifact(_ context.Context, artifactID int64) ([]int64, error) {
	var out []int64
	for _, id := range slices.Sorted(maps.Keys(s.attachments)) {
		if s.attachments[id].ArtifactID == artifactID {
			out = append(out, id)
		}
	}
	return out, nil
}

// OpenContent implements ports.SourceCase.
func (s *Source) OpenContent(_ context.Context, ref domain.SourceObjectRef) (io.ReadCloser, error) {
	s.mu.Lock()
	s.Opened[ref]++
	s.mu.Unlock()

	payload, ok := s.content[ref]
	if !ok {
		return nil, domain.ErrContentNotFound
	}
	if err, ok := s.failures[ref]; ok {
		return io.NopCloser(io.MultiReader(bytes.NewReader(payload[:len(payload)/2]), &errReader{err: err})), nil
	}
	return io.NopCloser(bytes.NewReader(payload)), nil
}

// Close implements ports.SourceCase.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

type errReader struct {
	err error
}

func (r *errReader) Read([]byte) (int, error) {
	return 0, r.err
}

func get[T any](m map[int64]*T, id int64) (*T, error) {
	v, ok := m[id]
	if !ok {
		return nil, domain.Annotate(domain.ErrObjectNotFound, "id", id)
	}
	return v, nil
}
