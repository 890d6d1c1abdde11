package enginetest

import (
	"context"
	"encoding/hex"
	"io"
	"maps"
	"slices"
	"sync"

	"github.com/zeebo/blake3"
	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
)

var (
	_ ports.CaseStore    = (*CaseStore)(nil)
	_ ports.ContentStore = (*ContentStore)(nil)
)

// CaseStore is an in-memory ports.CaseStore. Records are keyed by destination identifier.
type CaseStore struct {
	DataSources map[int64]domain.DataSource
	Files       map[int64]domain.File
	// FileContent holds the content location of every file written with one.
	FileContent map[int64]domain.ContentLocation
	// HashSetHits maps a destination file to its destination hash sets.
	HashSetHits map[int64][]int64
	Artifacts   map[int64]domain.Artifact
	TagNames    map[int64]domain.TagName
	Tags        map[int64]domain.Tag
	HashSets    map[int64]domain.HashSet
	Attachments map[int64]domain.Attachment
	// AttachmentContent holds the content location of every attachment.
	AttachmentContent map[int64]domain.ContentLocation

	// FailPut makes the Put call for a record fail when it returns non-nil.
	FailPut func(kind domain.ObjectKind, id int64) error

	Closed bool

	nextTagName int64
	undo        []func()
}

// NewCaseStore creates an empty CaseStore.
func NewCaseStore() *CaseStore {
	return &CaseStore{
		DataSources:       make(map[int64]domain.DataSource),
		Files:             make(map[int64]domain.File),
		FileContent:       make(map[int64]domain.ContentLocation),
		HashSetHits:       make(map[int64][]int64),
		Artifacts:         make(map[int64]domain.Artifact),
		TagNames:          make(map[int64]domain.TagName),
		Tags:              make(map[int64]domain.Tag),
		HashSets:          make(map[int64]domain.HashSet),
		Attachments:       make(map[int64]domain.Attachment),
		AttachmentContent: make(map[int64]domain.ContentLocation),
	}
}

// Objects returns the number of object records held.
func (s *CaseStore) Objects() int {
	return len(s.DataSources) + len(s.Files) + len(s.Artifacts) + len(s.Tags) + len(s.HashSets) + len(s.Attachments)
}

// Dangling lists every reference that does not resolve inside the store.
func (s *CaseStore) Dangling() []domain.DanglingReference {
	var out []domain.DanglingReference
	check := func(table, column string, row, target int64, ok bool) {
		if !ok {
			out = append(out, domain.DanglingReference{Table: table, Column: column, RowID: row, Target: domain.Ref(0, target).String()})
		}
	}
	has := func(m map[int64]domain.File, id int64) bool { _, ok := m[id]; return ok }

	for _, id := range slices.Sorted(maps.Keys(s.Files)) {
		f := s.Files[id]
		_, ok := s.DataSources[f.DataSourceID]
		check("files", "data_source_obj_id", id, f.DataSourceID, ok)
		if f.ParentID != 0 {
			check("files", "parent_obj_id", id, f.ParentID, has(s.Files, f.ParentID))
		}
		for _, hs := range s.HashSetHits[id] {
			_, ok := s.HashSets[hs]
			check("hash_set_hits", "hash_set_id", id, hs, ok)
		}
	}
	for _, id := range slices.Sorted(maps.Keys(s.Artifacts)) {
		a := s.Artifacts[id]
		if a.FileID != 0 {
			check("artifacts", "obj_id", id, a.FileID, has(s.Files, a.FileID))
		}
		_, ok := s.DataSources[a.DataSourceID]
		check("artifacts", "data_source_obj_id", id, a.DataSourceID, ok)
		for _, assoc := range a.AssociatedArtifacts() {
			_, ok := s.Artifacts[assoc]
			check("artifact_attributes", "value_int64", id, assoc, ok)
		}
	}
	for _, id := range slices.Sorted(maps.Keys(s.Tags)) {
		t := s.Tags[id]
		_, ok := s.TagNames[t.Name.ID]
		check("tags", "tag_name_id", id, t.Name.ID, ok)
		if t.ArtifactID != 0 {
			_, ok := s.Artifacts[t.ArtifactID]
			check("artifact_tags", "artifact_id", id, t.ArtifactID, ok)
		} else {
			check("content_tags", "obj_id", id, t.FileID, has(s.Files, t.FileID))
		}
	}
	for _, id := range slices.Sorted(maps.Keys(s.Attachments)) {
		a := s.Attachments[id]
		_, ok := s.Artifacts[a.ArtifactID]
		check("attachments", "artifact_id", id, a.ArtifactID, ok)
	}
	return out
}

// Savepoint implements ports.CaseStore.
func (s *CaseStore) Savepoint(_ context.Context, fn func() error) error {
	s.undo = nil
	if err := fn(); err != nil {
		for i := len(s.undo) - 1; i >= 0; i-- {
			s.undo[i]()
		}
		s.undo = nil
		return err
	}
	s.undo = nil
	return nil
}

func put[T any](s *CaseStore, kind domain.ObjectKind, m map[int64]T, id int64, v T) error {
	if s.FailPut != nil {
		if err := s.FailPut(kind, id); err != nil {
			return domain.Classify(domain.ErrCaseWriteFailed, err)
		}
	}
	m[id] = v
	s.undo = append(s.undo, func() { delete(m, id) })
	return nil
}

// PutDataSource implements ports.CaseStore.
func (s *CaseStore) PutDataSource(_ context.Context, ds *domain.DataSource) error {
	return put(s, domain.KindDataSource, s.DataSources, ds.ID, *ds)
}

// PutFile implements ports.CaseStore.
func (s *CaseStore) PutFile(_ context.Context, f *domain.File, loc *domain.ContentLocation, hashSetIDs []int64) error {
	if err := put(s, domain.KindFile, s.Files, f.ID, *f); err != nil {
		return err
	}
	if loc != nil {
		s.FileContent[f.ID] = *loc
	}
	if len(hashSetIDs) > 0 {
		s.HashSetHits[f.ID] = slices.Clone(hashSetIDs)
	}
	s.undo = append(s.undo, func() {
		delete(s.FileContent, f.ID)
		delete(s.HashSetHits, f.ID)
	})
	return nil
}

// PutArtifact implements ports.CaseStore.
func (s *CaseStore) PutArtifact(_ context.Context, a *domain.Artifact) error {
	return put(s, domain.KindArtifact, s.Artifacts, a.ID, *a)
}

// EnsureTagName implements ports.CaseStore.
func (s *CaseStore) EnsureTagName(_ context.Context, tn *domain.TagName) (int64, error) {
	for id, existing := range s.TagNames {
		if existing.DisplayName == tn.DisplayName {
			return id, nil
		}
	}
	s.nextTagName++
	out := *tn
	out.ID = s.nextTagName
	s.TagNames[out.ID] = out
	s.undo = append(s.undo, func() { delete(s.TagNames, out.ID) })
	return out.ID, nil
}

// PutTag implements ports.CaseStore.
func (s *CaseStore) PutTag(_ context.Context, t *domain.Tag, tagNameID int64) error {
	out := *t
	out.Name = s.TagNames[tagNameID]
	return put(s, domain.KindTag, s.Tags, t.ID, out)
}

// PutHashSet implements ports.CaseStore.
func (s *CaseStore) PutHashSet(_ context.Context, h *domain.HashSet) error {
	return put(s, domain.KindHashSet, s.HashSets, h.ID, *h)
}

// PutAttachment implements ports.CaseStore.
func (s *CaseStore) PutAttachment(_ context.Context, a *domain.Attachment, loc domain.ContentLocation) error {
	if err := put(s, domain.KindAttachment, s.Attachments, a.ID, *a); err != nil {
		return err
	}
	s.AttachmentContent[a.ID] = loc
	return nil
}

// Close implements ports.CaseStore.
func (s *CaseStore) Close() error {
	s.Closed = true
	return nil
}

// ContentStore is an in-memory ports.ContentStore that fingerprints payloads with blake3.
type ContentStore struct {
	mu      sync.Mutex
	records map[string]*domain.ContentRecord
	order   []string
	bytes   int64

	// Blobs holds the stored payloads by fingerprint.
	Blobs map[string][]byte
	// Err, when set, is returned by every Store call.
	Err error
}

// NewContentStore creates an empty ContentStore.
func NewContentStore() *ContentStore {
	return &ContentStore{
		records: make(map[string]*domain.ContentRecord),
		Blobs:   make(map[string][]byte),
	}
}

// Store implements ports.ContentStore.
func (c *ContentStore) Store(_ context.Context, ref domain.SourceObjectRef, r io.Reader) (domain.ContentLocation, error) {
	if c.Err != nil {
		return domain.ContentLocation{}, c.Err
	}
	payload, err := io.ReadAll(r)
	if err != nil {
		return domain.ContentLocation{}, domain.Classify(domain.ErrSourceRead, err)
	}
	sum := blake3.Sum256(payload)
	fp := hex.EncodeToString(sum[:])

	c.mu.Lock()
	defer c.mu.Unlock()
	if rec, ok := c.records[fp]; ok {
		rec.Refs = append(rec.Refs, ref)
		loc := rec.Location
		loc.Deduplicated = true
		return loc, nil
	}
	loc := domain.ContentLocation{
		Fingerprint: fp,
		RelPath:     domain.ContentRelPath(fp, false),
		Size:        int64(len(payload)),
	}
	c.records[fp] = &domain.ContentRecord{Fingerprint: fp, Location: loc, Refs: []domain.SourceObjectRef{ref}}
	c.order = append(c.order, fp)
	c.Blobs[fp] = payload
	c.bytes += int64(len(payload))
	return loc, nil
}

// Records implements ports.ContentStore.
func (c *ContentStore) Records() []domain.ContentRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.ContentRecord, 0, len(c.order))
	for _, fp := range c.order {
		out = append(out, *c.records[fp])
	}
	return out
}

// BytesStored implements ports.ContentStore.
func (c *ContentStore) BytesStored() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bytes
}
