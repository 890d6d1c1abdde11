package casedb_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/portable/internal/adapters/casedb"
	"go.trai.ch/portable/internal/adapters/casedb/casedbtest"
	"go.trai.ch/portable/internal/core/domain"
)

func openScenario(t *testing.T) *casedb.Source {
	t.Helper()
	root := casedbtest.Scenario(t, filepath.Join(t.TempDir(), "original"))
	src, err := casedb.OpenSource(context.Background(), root, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })
	return src
}

func TestSource_Info(t *testing.T) {
	src := openScenario(t)

	info, err := src.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, casedbtest.SourceCaseID, info.ID)
	assert.Equal(t, "Original", info.Name)
	assert.Equal(t, domain.SchemaVersion, info.SchemaVersion)
	assert.Equal(t, domain.CompressionNone, info.Compression)
	assert.Equal(t, int64(1700000000), info.CreatedUnix)
}

func TestSource_Records(t *testing.T) {
	ctx := context.Background()
	src := openScenario(t)

	ds, err := src.DataSource(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "image.E01", ds.Name)
	assert.Equal(t, "UTC", ds.TimeZone)

	dir, err := src.File(ctx, 5)
	require.NoError(t, err)
	assert.True(t, dir.IsDir)
	assert.False(t, dir.HasContent)
	assert.Zero(t, dir.ParentID)

	f, err := src.File(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(5), f.ParentID)
	assert.Equal(t, "/docs/report.txt", f.Path())
	assert.Equal(t, domain.KnownBad, f.Known)
	assert.Equal(t, int64(1690000000), f.Mtime)
	assert.True(t, f.HasContent)
	assert.Equal(t, int64(5), f.Size)

	a, err := src.Artifact(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, "TSK_EMAIL_MSG", a.TypeName.String())
	require.Len(t, a.Attributes, 4)
	assert.Equal(t, "Invoice", a.Attributes[0].Text)
	assert.Equal(t, int64(512), a.Attributes[1].Int64)
	assert.InDelta(t, 0.75, a.Attributes[2].Double, 1e-9)
	assert.Equal(t, []int64{21}, a.AssociatedArtifacts())

	att, err := src.Attachment(ctx, 40)
	require.NoError(t, err)
	assert.Equal(t, "invoice.pdf", att.Name)
	assert.Equal(t, int64(20), att.ArtifactID)

	hs, err := src.HashSet(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Known Bad", hs.Name)
}

func TestSource_Lookups(t *testing.T) {
	ctx := context.Background()
	src := openScenario(t)

	names, err := src.TagNames(ctx)
	require.NoError(t, err)
	require.Len(t, names, 2)
	assert.Equal(t, casedbtest.NotableItem, names[0].DisplayName)
	assert.Equal(t, "red", names[0].Color)

	tags, err := src.TagsByName(ctx, []int64{names[0].ID})
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, domain.Ref(domain.KindFile, 10), tags[0].Target())
	assert.Equal(t, domain.Ref(domain.KindArtifact, 20), tags[1].Target())
	assert.Equal(t, "suspicious", tags[1].Comment)

	tag, err := src.Tag(ctx, 32)
	require.NoError(t, err)
	assert.Equal(t, casedbtest.FollowUp, tag.Name.DisplayName)

	members, err := src.HashSetMembers(ctx, []int64{7})
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, members)

	hits, err := src.HashSetsForFile(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, hits)

	derived, err := src.ArtifactsForFile(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{20}, derived)

	attachments, err := src.AttachmentsForArtifact(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, []int64{40}, attachments)
}

func TestSource_NotFound(t *testing.T) {
	ctx := context.Background()
	src := openScenario(t)

	_, err := src.File(ctx, 99)
	require.ErrorIs(t, err, domain.ErrObjectNotFound)
	_, err = src.Artifact(ctx, 99)
	require.ErrorIs(t, err, domain.ErrObjectNotFound)
	_, err = src.Tag(ctx, 99)
	require.ErrorIs(t, err, domain.ErrObjectNotFound)
	_, err = src.HashSet(ctx, 99)
	require.ErrorIs(t, err, domain.ErrObjectNotFound)
	_, err = src.OpenContent(ctx, domain.Ref(domain.KindAttachment, 99))
	require.ErrorIs(t, err, domain.ErrObjectNotFound)
}

func TestSource_OpenContent(t *testing.T) {
	ctx := context.Background()
	src := openScenario(t)

	rc, err := src.OpenContent(ctx, domain.Ref(domain.KindFile, 10))
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, casedbtest.ReportPayload, data)

	rc, err = src.OpenContent(ctx, domain.Ref(domain.KindAttachment, 40))
	require.NoError(t, err)
	data, err = io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, casedbtest.AttachmentPayload, data)

	_, err = src.OpenContent(ctx, domain.Ref(domain.KindFile, 5))
	require.ErrorIs(t, err, domain.ErrContentNotFound)

	_, err = src.OpenContent(ctx, domain.Ref(domain.KindArtifact, 20))
	require.ErrorIs(t, err, domain.ErrContentNotFound)
}

func TestSource_OpenContentStaysInsideBundle(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	secret := filepath.Join(dir, "host-secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("not evidence"), 0o600))

	locations := []string{
		"../host-secret.txt",
		filepath.ToSlash(secret),
		"content/../../host-secret.txt",
		"content/ab/cd/../../../../host-secret.txt",
		"content/00/00/host-secret.txt",
	}
	b := casedbtest.New(t, filepath.Join(dir, "original")).
		DataSource(&domain.DataSource{ID: 1, Name: "image.E01"})
	for i, rel := range locations {
		b.FileAt(
			&domain.File{ID: int64(10 + i), DataSourceID: 1, Name: "report.txt", ParentPath: "/"},
			domain.ContentLocation{RelPath: rel, Fingerprint: "00"},
		)
	}
	src, err := casedb.OpenSource(ctx, b.Close(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	for i, rel := range locations {
		t.Run(rel, func(t *testing.T) {
			rc, err := src.OpenContent(ctx, domain.Ref(domain.KindFile, int64(10+i)))
			if rc != nil {
				_ = rc.Close()
			}
			require.ErrorIs(t, err, domain.ErrInvalidContentLocation)
			require.ErrorIs(t, err, domain.ErrContentNotFound)
		})
	}
}

func TestOpenSource_Missing(t *testing.T) {
	_, err := casedb.OpenSource(context.Background(), t.TempDir(), nil)
	require.ErrorIs(t, err, domain.ErrCaseOpenFailed)
}

func TestOpener_Open(t *testing.T) {
	root := casedbtest.Scenario(t, filepath.Join(t.TempDir(), "original"))

	src, err := casedb.NewOpener(nil).Open(context.Background(), root)
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	f, err := src.File(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, "copy.txt", f.Name)
}

func newStore(t *testing.T) (*casedb.Store, string) {
	t.Helper()
	root := t.TempDir()
	store, err := casedb.Create(context.Background(), root, domain.CaseInfo{ID: "case-1", Name: "Case"}, nil)
	require.NoError(t, err)
	return store, root
}

func TestCreate_ExistingDatabase(t *testing.T) {
	store, root := newStore(t)
	require.NoError(t, store.Close())

	_, err := casedb.Create(context.Background(), root, domain.CaseInfo{ID: "case-2"}, nil)
	require.ErrorIs(t, err, domain.ErrDestinationExists)
}

func TestStore_SavepointRollsBack(t *testing.T) {
	ctx := context.Background()
	store, root := newStore(t)

	boom := errors.New("boom")
	err := store.Savepoint(ctx, func() error {
		require.NoError(t, store.PutDataSource(ctx, &domain.DataSource{ID: 1, Name: "kept?"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, store.Savepoint(ctx, func() error {
		return store.PutDataSource(ctx, &domain.DataSource{ID: 2, Name: "kept"})
	}))
	require.NoError(t, store.Close())

	src, err := casedb.OpenSource(ctx, root, nil)
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	_, err = src.DataSource(ctx, 1)
	require.ErrorIs(t, err, domain.ErrObjectNotFound)
	ds, err := src.DataSource(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "kept", ds.Name)
}

func TestStore_SavepointCancelled(t *testing.T) {
	store, _ := newStore(t)
	defer func() { _ = store.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.Savepoint(ctx, func() error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStore_DanglingReferenceIsWriteFailure(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)
	defer func() { _ = store.Close() }()

	err := store.PutFile(ctx, &domain.File{ID: 10, DataSourceID: 1, Name: "orphan"}, nil, nil)
	require.ErrorIs(t, err, domain.ErrCaseWriteFailed)
	require.ErrorIs(t, err, domain.ErrIO)
}

func TestStore_EnsureTagNameDeduplicates(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)
	defer func() { _ = store.Close() }()

	first, err := store.EnsureTagName(ctx, &domain.TagName{ID: 900, DisplayName: "Notable Item"})
	require.NoError(t, err)
	second, err := store.EnsureTagName(ctx, &domain.TagName{ID: 901, DisplayName: "Notable Item"})
	require.NoError(t, err)
	other, err := store.EnsureTagName(ctx, &domain.TagName{ID: 900, DisplayName: "Follow Up"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.NotEqual(t, int64(900), first)
}

func TestStore_UnknownAttributeType(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.PutDataSource(ctx, &domain.DataSource{ID: 1, Name: "ds"}))
	err := store.PutArtifact(ctx, &domain.Artifact{
		ID: 2, DataSourceID: 1, TypeName: domain.NewInternedString("TSK_X"),
		Attributes: []domain.Attribute{{Type: domain.NewInternedString("A"), ValueType: "blob"}},
	})
	require.ErrorIs(t, err, domain.ErrCaseWriteFailed)
}

func TestStore_CloseTwice(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
