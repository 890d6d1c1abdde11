// Package casedbtest builds case bundles on disk for tests.
package casedbtest

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/portable/internal/adapters/casedb"
	"go.trai.ch/portable/internal/adapters/contentstore"
	"go.trai.ch/portable/internal/core/domain"
)

// SourceCaseID is the case id recorded in every bundle built here.
const SourceCaseID = "7d0c1b8e-source"

// Bundle writes records straight into a case bundle, keeping their identifiers.
type Bundle struct {
	t       testing.TB
	root    string
	store   *casedb.Store
	content *contentstore.Store
}

// New creates an empty bundle at root.
func New(t testing.TB, root string) *Bundle {
	t.Helper()
	require.NoError(t, os.MkdirAll(root, domain.DirPerm))

	store, err := casedb.Create(context.Background(), root, domain.CaseInfo{
		ID:            SourceCaseID,
		Name:          "Original",
		SchemaVersion: domain.SchemaVersion,
		CreatedUnix:   1700000000,
	}, nil)
	require.NoError(t, err)

	content, err := contentstore.New(root, domain.CompressionNone)
	require.NoError(t, err)

	return &Bundle{t: t, root: root, store: store, content: content}
}

// DataSource adds a data source.
func (b *Bundle) DataSource(ds *domain.DataSource) *Bundle {
	b.t.Helper()
	require.NoError(b.t, b.store.PutDataSource(context.Background(), ds))
	return b
}

// HashSet adds a hash set.
func (b *Bundle) HashSet(h *domain.HashSet) *Bundle {
	b.t.Helper()
	require.NoError(b.t, b.store.PutHashSet(context.Background(), h))
	return b
}

// File adds a file. A non-nil payload is stored in the content area; hashSets lists its hits.
func (b *Bundle) File(f *domain.File, payload []byte, hashSets ...int64) *Bundle {
	b.t.Helper()
	var loc *domain.ContentLocation
	if payload != nil {
		l := b.store1(f.ObjectRef(), payload)
		loc = &l
		f.HasContent = true
		f.Size = int64(len(payload))
	}
	require.NoError(b.t, b.store.PutFile(context.Background(), f, loc, hashSets))
	return b
}

// FileAt adds a file whose content location is recorded as given, without storing a payload.
func (b *Bundle) FileAt(f *domain.File, loc domain.ContentLocation) *Bundle {
	b.t.Helper()
	f.HasContent = true
	require.NoError(b.t, b.store.PutFile(context.Background(), f, &loc, nil))
	return b
}

// Artifact adds an artifact with its attributes.
func (b *Bundle) Artifact(a *domain.Artifact) *Bundle {
	b.t.Helper()
	require.NoError(b.t, b.store.PutArtifact(context.Background(), a))
	return b
}

// Attachment adds an attachment and stores its payload.
func (b *Bundle) Attachment(a *domain.Attachment, payload []byte) *Bundle {
	b.t.Helper()
	a.Size = int64(len(payload))
	loc := b.store1(a.ObjectRef(), payload)
	require.NoError(b.t, b.store.PutAttachment(context.Background(), a, loc))
	return b
}

// Tag adds a tag, creating its tag name on first use. t.Name.ID is set to the stored identifier.
func (b *Bundle) Tag(t *domain.Tag) *Bundle {
	b.t.Helper()
	ctx := context.Background()
	id, err := b.store.EnsureTagName(ctx, &t.Name)
	require.NoError(b.t, err)
	t.Name.ID = id
	require.NoError(b.t, b.store.PutTag(ctx, t, id))
	return b
}

// Close flushes the bundle and returns its root.
func (b *Bundle) Close() string {
	b.t.Helper()
	require.NoError(b.t, b.store.Close())
	return b.root
}

func (b *Bundle) store1(ref domain.SourceObjectRef, payload []byte) domain.ContentLocation {
	b.t.Helper()
	loc, err := b.content.Store(context.Background(), ref, bytes.NewReader(payload))
	require.NoError(b.t, err)
	return loc
}

// Payloads used by Scenario.
var (
	ReportPayload     = []byte("hello")
	AttachmentPayload = []byte("%PDF-1.4 invoice")
)

// Scenario tag names.
const (
	NotableItem = "Notable Item"
	FollowUp    = "Follow Up"
)

// Scenario builds the reference case at root and returns root:
//
//	data_source:1 image.E01
//	hash_set:7    Known Bad (member: file:10)
//	file:5        /docs (directory)
//	file:10       /docs/report.txt  "hello"
//	file:11       /docs/copy.txt    "hello"
//	artifact:20   email on file:10, associated with artifact:21
//	artifact:21   contact on file:11
//	attachment:40 invoice.pdf owned by artifact:20
//	tag:30        Notable Item on file:10
//	tag:31        Notable Item on artifact:20
//	tag:32        Follow Up on file:11
//
// Exporting Notable Item yields nine objects and two distinct payloads.
func Scenario(t testing.TB, root string) string {
	t.Helper()
	return New(t, root).
		DataSource(&domain.DataSource{ID: 1, Name: "image.E01", DeviceID: "dev-1", TimeZone: "UTC", Size: 1 << 20}).
		HashSet(&domain.HashSet{ID: 7, Name: "Known Bad", Known: domain.KnownBad}).
		File(&domain.File{ID: 5, DataSourceID: 1, Name: "docs", ParentPath: "/", IsDir: true}, nil).
		File(&domain.File{
			ID: 10, DataSourceID: 1, ParentID: 5, Name: "report.txt", ParentPath: "/docs",
			MIMEType: "text/plain", Known: domain.KnownBad, Mtime: 1690000000,
		}, ReportPayload, 7).
		File(&domain.File{ID: 11, DataSourceID: 1, ParentID: 5, Name: "copy.txt", ParentPath: "/docs"}, ReportPayload).
		Artifact(&domain.Artifact{
			ID: 21, FileID: 11, DataSourceID: 1,
			TypeName: domain.NewInternedString("TSK_CONTACT"),
			Attributes: []domain.Attribute{
				{Type: domain.NewInternedString("TSK_NAME"), ValueType: domain.ValueText, Text: "J. Doe", SourceModule: "contacts"},
			},
		}).
		Artifact(&domain.Artifact{
			ID: 20, FileID: 10, DataSourceID: 1,
			TypeName:    domain.NewInternedString("TSK_EMAIL_MSG"),
			DisplayName: "Invoice",
			Attributes: []domain.Attribute{
				{Type: domain.NewInternedString("TSK_SUBJECT"), ValueType: domain.ValueText, Text: "Invoice", SourceModule: "email"},
				{Type: domain.NewInternedString("TSK_SIZE"), ValueType: domain.ValueInt64, Int64: 512, SourceModule: "email"},
				{Type: domain.NewInternedString("TSK_SCORE"), ValueType: domain.ValueDouble, Double: 0.75, SourceModule: "email"},
				{Type: domain.NewInternedString("TSK_ASSOCIATED_ARTIFACT"), ValueType: domain.ValueArtifact, Int64: 21, SourceModule: "email"},
			},
		}).
		Attachment(&domain.Attachment{ID: 40, ArtifactID: 20, Name: "invoice.pdf", MIMEType: "application/pdf"}, AttachmentPayload).
		Tag(&domain.Tag{ID: 30, Name: domain.TagName{DisplayName: NotableItem, Color: "red"}, FileID: 10, Examiner: "analyst"}).
		Tag(&domain.Tag{ID: 31, Name: domain.TagName{DisplayName: NotableItem}, ArtifactID: 20, Comment: "suspicious"}).
		Tag(&domain.Tag{ID: 32, Name: domain.TagName{DisplayName: FollowUp}, FileID: 11}).
		Close()
}
