package builder_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
	"go.trai.ch/portable/internal/core/ports/mocks"
	"go.trai.ch/portable/internal/engine/builder"
	"go.trai.ch/portable/internal/engine/enginetest"
	"go.uber.org/mock/gomock"
)

var notable = domain.TagName{ID: 1, DisplayName: "Notable Item"}

func scenario() *enginetest.Source {
	return enginetest.NewSource().
		AddDataSource(&domain.DataSource{ID: 1, Name: "image.E01"}).
		AddFile(&domain.File{ID: 10, DataSourceID: 1, Name: "f1.txt", ParentPath: "/docs"}, []byte("hello")).
		AddFile(&domain.File{ID: 11, DataSourceID: 1, Name: "f2.txt", ParentPath: "/docs"}, []byte("world")).
		AddArtifact(&domain.Artifact{ID: 20, FileID: 10, DataSourceID: 1}).
		AddTag(&domain.Tag{ID: 30, Name: notable, FileID: 10}).
		AddTag(&domain.Tag{ID: 31, Name: notable, ArtifactID: 20}).
		AddTag(&domain.Tag{ID: 32, Name: notable, FileID: 11})
}

type harness struct {
	builder  *builder.Builder
	src      *enginetest.Source
	store    *enginetest.CaseStore
	content  *enginetest.ContentStore
	sink     *enginetest.Sink
	out      string
	info     domain.CaseInfo
	released bool
	report   func(root string) *domain.VerifyReport
}

func newHarness(t *testing.T, src *enginetest.Source) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := &harness{
		src:     src,
		store:   enginetest.NewCaseStore(),
		content: enginetest.NewContentStore(),
		sink:    &enginetest.Sink{},
		out:     filepath.Join(t.TempDir(), "exports"),
	}
	h.report = func(root string) *domain.VerifyReport {
		_, err := os.Stat(domain.IncompleteMarkerPath(root))
		return &domain.VerifyReport{Objects: h.store.Objects(), Dangling: h.store.Dangling(), Incomplete: err == nil}
	}

	opener := mocks.NewMockSourceOpener(ctrl)
	opener.EXPECT().Open(gomock.Any(), "/cases/original").Return(src, nil).AnyTimes()

	cases := mocks.NewMockCaseStoreFactory(ctrl)
	cases.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, info domain.CaseInfo) (ports.CaseStore, error) {
			h.info = info
			return h.store, nil
		}).AnyTimes()

	contents := mocks.NewMockContentStoreFactory(ctrl)
	contents.EXPECT().New(gomock.Any(), gomock.Any()).Return(h.content, nil).AnyTimes()

	verifier := mocks.NewMockCaseVerifier(ctrl)
	verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, root string) (*domain.VerifyReport, error) {
			return h.report(root), nil
		}).AnyTimes()

	locker := mocks.NewMockDestinationLocker(ctrl)
	locker.EXPECT().Lock(gomock.Any()).DoAndReturn(func(path string) (func() error, error) {
		if err := os.WriteFile(path, nil, 0o600); err != nil {
			return nil, err
		}
		return func() error {
			h.released = true
			return nil
		}, nil
	}).AnyTimes()

	hasher := mocks.NewMockHasher(ctrl)
	hasher.EXPECT().SelectionDigest(gomock.Any()).Return("9f86d081").AnyTimes()

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()
	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any()).AnyTimes()

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	h.builder = builder.New(opener, cases, contents, verifier, locker, hasher, tracer, log)
	return h
}

func (h *harness) request(sel domain.Selection) builder.Request {
	return builder.Request{
		SourcePath:   "/cases/original",
		OutputTarget: h.out,
		CaseName:     "Case-Export",
		Selection:    sel,
	}
}

func (h *harness) entries(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(h.out)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestBuild_Completed(t *testing.T) {
	h := newHarness(t, scenario())

	res := h.builder.Build(context.Background(), h.request(domain.Selection{TagNames: []string{"Notable Item"}}), h.sink)

	require.NoError(t, res.Err)
	assert.Equal(t, domain.BuildCompleted, res.Status)
	assert.Equal(t, filepath.Join(h.out, "Case-Export"), res.CasePath)
	assert.Equal(t, 7, res.ObjectsWritten)
	assert.Equal(t, 2, res.ContentStored)
	assert.Equal(t, int64(10), res.BytesCopied)
	assert.Equal(t, h.info.ID, res.CaseID)
	assert.Equal(t, "9f86d081", h.info.SelectionDigest)
	assert.Equal(t, domain.CompressionNone, h.info.Compression)

	assert.ElementsMatch(t, []string{"Case-Export", ".Case-Export.lock"}, h.entries(t))
	assert.NoFileExists(t, domain.IncompleteMarkerPath(res.CasePath))

	raw, err := os.ReadFile(domain.ManifestPath(res.CasePath))
	require.NoError(t, err)
	var m domain.Manifest
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, res.CaseID, m.CaseID)
	assert.Equal(t, "completed", m.Status)
	assert.Equal(t, 7, m.Objects)

	done, total := h.sink.Progress()
	assert.Equal(t, int64(7), total)
	assert.Equal(t, int64(7), done)
	assert.True(t, h.store.Closed)
	assert.True(t, h.src.Closed())
	assert.True(t, h.released)
}

func TestBuild_CopiesSharedFileOnce(t *testing.T) {
	h := newHarness(t, scenario())

	res := h.builder.Build(context.Background(), h.request(domain.Selection{TagIDs: []int64{30, 31}}), h.sink)

	require.NoError(t, res.Err)
	assert.Equal(t, 1, h.src.Opened[domain.Ref(domain.KindFile, 10)])
	assert.Equal(t, 1, res.ContentStored)
	assert.Zero(t, res.ContentDeduplicated)
}

func TestBuild_ContentFailureIsPartial(t *testing.T) {
	src := scenario().FailContent(domain.Ref(domain.KindFile, 10), errors.New("read error at sector 2048"))
	h := newHarness(t, src)

	res := h.builder.Build(context.Background(), h.request(domain.Selection{TagNames: []string{"Notable Item"}}), h.sink)

	require.NoError(t, res.Err)
	assert.Equal(t, domain.BuildPartiallyCompleted, res.Status)
	assert.True(t, res.FailedWith(domain.Ref(domain.KindFile, 10), domain.ErrSourceRead))
	assert.Contains(t, res.Failed(), domain.Ref(domain.KindTag, 30))
	assert.DirExists(t, res.CasePath)

	// Everything that does not depend on F1 is present and consistent.
	assert.Len(t, h.store.Files, 1)
	assert.Len(t, h.store.Tags, 1)
	assert.Empty(t, h.store.Dangling())

	raw, err := os.ReadFile(domain.ManifestPath(res.CasePath))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"status": "partially_completed"`)
}

func TestBuild_CancelledMidBuildLeavesNothing(t *testing.T) {
	h := newHarness(t, scenario())
	h.sink.CancelWhen = func(status string) bool { return status == "writing artifact:20" }

	res := h.builder.Build(context.Background(), h.request(domain.Selection{TagNames: []string{"Notable Item"}}), h.sink)

	assert.Equal(t, domain.BuildFailed, res.Status)
	require.ErrorIs(t, res.Err, domain.ErrCancelled)
	assert.Empty(t, res.CasePath)
	assert.Equal(t, []string{".Case-Export.lock"}, h.entries(t))
	assert.True(t, h.store.Closed)
	assert.True(t, h.released)
}

func TestBuild_CancelledDuringLargeCopy(t *testing.T) {
	big := bytes.Repeat([]byte("x"), 3<<20)
	src := enginetest.NewSource().
		AddDataSource(&domain.DataSource{ID: 1}).
		AddFile(&domain.File{ID: 10, DataSourceID: 1, Name: "disk.vmdk"}, big).
		AddTag(&domain.Tag{ID: 30, Name: notable, FileID: 10})
	h := newHarness(t, src)
	h.sink.CancelWhen = func(status string) bool { return status == "copying file:10" }

	res := h.builder.Build(context.Background(), h.request(domain.Selection{TagIDs: []int64{30}}), h.sink)

	require.ErrorIs(t, res.Err, domain.ErrCancelled)
	assert.Empty(t, h.content.Records())
	assert.Equal(t, []string{".Case-Export.lock"}, h.entries(t))
}

func TestBuild_ContextCancelled(t *testing.T) {
	h := newHarness(t, scenario())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := h.builder.Build(ctx, h.request(domain.Selection{TagIDs: []int64{30}}), h.sink)

	assert.Equal(t, domain.BuildFailed, res.Status)
	require.ErrorIs(t, res.Err, domain.ErrCancelled)
	assert.NoDirExists(t, filepath.Join(h.out, "Case-Export"))
}

func TestBuild_EmptySelectionDoesNoIO(t *testing.T) {
	ctrl := gomock.NewController(t)
	out := filepath.Join(t.TempDir(), "never")
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Error(gomock.Any())
	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()

	// Every collaborator that touches a case or the filesystem has no expectations.
	b := builder.New(
		mocks.NewMockSourceOpener(ctrl),
		mocks.NewMockCaseStoreFactory(ctrl),
		mocks.NewMockContentStoreFactory(ctrl),
		mocks.NewMockCaseVerifier(ctrl),
		mocks.NewMockDestinationLocker(ctrl),
		mocks.NewMockHasher(ctrl),
		tracer,
		log,
	)

	res := b.Build(context.Background(), builder.Request{OutputTarget: out, CaseName: "x"}, &enginetest.Sink{})

	require.ErrorIs(t, res.Err, domain.ErrEmptySelection)
	assert.Equal(t, domain.BuildFailed, res.Status)
	assert.NoDirExists(t, out)
}

func TestBuild_HashSetFilterMatchingNothing(t *testing.T) {
	h := newHarness(t, scenario().AddHashSet(&domain.HashSet{ID: 7, Name: "NSRL"}))

	res := h.builder.Build(context.Background(), h.request(domain.Selection{
		TagNames:   []string{"Notable Item"},
		HashSetIDs: []int64{7},
	}), h.sink)

	require.ErrorIs(t, res.Err, domain.ErrEmptySelection)
	assert.Nil(t, h.entries(t))
}

func TestBuild_DestinationExists(t *testing.T) {
	h := newHarness(t, scenario())
	existing := filepath.Join(h.out, "Case-Export")
	require.NoError(t, os.MkdirAll(existing, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(existing, "keep.txt"), []byte("mine"), 0o600))

	res := h.builder.Build(context.Background(), h.request(domain.Selection{TagIDs: []int64{30}}), h.sink)

	require.ErrorIs(t, res.Err, domain.ErrDestinationExists)
	require.ErrorIs(t, res.Err, domain.ErrStructural)
	assert.FileExists(t, filepath.Join(existing, "keep.txt"))
	assert.NoDirExists(t, domain.StagingPath(h.out, "Case-Export"))
}

func TestBuild_VerificationFailureDiscardsCase(t *testing.T) {
	h := newHarness(t, scenario())
	h.report = func(string) *domain.VerifyReport {
		return &domain.VerifyReport{Dangling: []domain.DanglingReference{{Table: "files", Column: "data_source_obj_id", RowID: 2, Target: "1"}}}
	}

	res := h.builder.Build(context.Background(), h.request(domain.Selection{TagIDs: []int64{30}}), h.sink)

	require.ErrorIs(t, res.Err, domain.ErrVerificationFailed)
	assert.Equal(t, []string{".Case-Export.lock"}, h.entries(t))
}

func TestBuild_UnresolvableRootIsPartial(t *testing.T) {
	src := scenario().AddTag(&domain.Tag{ID: 33, Name: notable, FileID: 404})
	h := newHarness(t, src)

	res := h.builder.Build(context.Background(), h.request(domain.Selection{TagNames: []string{"Notable Item"}}), h.sink)

	require.NoError(t, res.Err)
	assert.Equal(t, domain.BuildPartiallyCompleted, res.Status)
	assert.True(t, res.FailedWith(domain.Ref(domain.KindTag, 33), domain.ErrUnresolvableReference))
	assert.Equal(t, 7, res.ObjectsWritten)
}

func TestBuild_InvalidRequest(t *testing.T) {
	h := newHarness(t, scenario())
	sel := domain.Selection{TagIDs: []int64{30}}

	req := h.request(sel)
	req.CaseName = "../escape"
	require.ErrorIs(t, h.builder.Build(context.Background(), req, h.sink).Err, domain.ErrInvalidSettings)

	req = h.request(sel)
	req.OutputTarget = ""
	require.ErrorIs(t, h.builder.Build(context.Background(), req, h.sink).Err, domain.ErrOutputPathRequired)

	req = h.request(sel)
	req.Compression = "lz4"
	require.ErrorIs(t, h.builder.Build(context.Background(), req, h.sink).Err, domain.ErrInvalidSettings)
}
