package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/portable/cmd/portable/commands"
	"go.trai.ch/portable/internal/app"
	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
	"go.trai.ch/portable/internal/core/ports/mocks"
	"go.trai.ch/portable/internal/modules"
	"go.uber.org/mock/gomock"
)

type nopSink struct {
	cancelled bool
}

func (*nopSink) SetTotal(int64)               {}
func (*nopSink) Advance(int64)                {}
func (*nopSink) SetStatus(string)             {}
func (s *nopSink) IsCancelled() bool          { return s.cancelled }
func (s *nopSink) Cancel()                    { s.cancelled = true }
func (*nopSink) Complete(*domain.BuildResult) {}

type fixture struct {
	cli      *commands.CLI
	out      *bytes.Buffer
	module   *mocks.MockReportModule
	settings *mocks.MockSettingsStore
	verifier *mocks.MockCaseVerifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		out:      &bytes.Buffer{},
		module:   mocks.NewMockReportModule(ctrl),
		settings: mocks.NewMockSettingsStore(ctrl),
		verifier: mocks.NewMockCaseVerifier(ctrl),
	}
	f.module.EXPECT().Name().Return("Portable Case").AnyTimes()
	f.module.EXPECT().Description().Return("Copies selected tagged items").AnyTimes()
	f.module.EXPECT().RequiresOutputPath().Return(true).AnyTimes()

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	registry, err := modules.NewRegistry(f.module)
	require.NoError(t, err)

	find := func(string) (string, error) { return "", domain.ErrConfigReadFailed }
	sinks := app.SinkFactoryFunc(func(string) app.Sink { return &nopSink{} })
	a := app.New(registry, f.settings, find, f.verifier, sinks, log)

	f.cli = commands.New(a, log)
	f.cli.SetOutput(f.out)
	return f
}

func TestModules(t *testing.T) {
	f := newFixture(t)
	f.cli.SetArgs([]string{"modules"})

	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.out.String(), "Portable Case")
	assert.Contains(t, f.out.String(), "output path: yes")
}

func TestOptions(t *testing.T) {
	f := newFixture(t)
	surface := mocks.NewMockConfigurationSurface(gomock.NewController(t))
	f.module.EXPECT().ConfigurationSurface().Return(surface)
	surface.EXPECT().Options(gomock.Any(), "/cases/original").Return(&domain.ModuleOptions{
		TagNames: []domain.TagNameOption{{TagName: domain.TagName{ID: 1, DisplayName: "Notable Item"}, TagCount: 2}},
		HashSets: []domain.HashSetOption{{HashSet: domain.HashSet{ID: 7, Name: "Known Bad"}, MemberCount: 1}},
	}, nil)

	f.cli.SetArgs([]string{"options", "/cases/original"})

	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.out.String(), "Notable Item")
	assert.Contains(t, f.out.String(), "Known Bad")
}

func TestExport_FlagsOverrideLoadedSettings(t *testing.T) {
	f := newFixture(t)
	loaded := domain.DefaultPortableCaseSettings()
	loaded.Source = "/cases/original"
	loaded.Selection.TagNames = []string{"Follow Up"}

	f.settings.EXPECT().Load("custom.yaml").Return(loaded, nil)
	f.module.EXPECT().Run(gomock.Any(), "/exports", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ ports.ProgressSink, s ports.ReportModuleSettings) *domain.BuildResult {
			settings, ok := s.(*domain.PortableCaseSettings)
			if !assert.True(t, ok) {
				return &domain.BuildResult{Status: domain.BuildFailed}
			}
			assert.Equal(t, "/cases/original", settings.Source)
			assert.Equal(t, []string{"Notable Item"}, settings.Selection.TagNames)
			assert.Equal(t, []int64{7}, settings.Selection.HashSetIDs)
			assert.Equal(t, domain.CompressionZstd, settings.Content.Compression)
			return &domain.BuildResult{Status: domain.BuildCompleted, CasePath: "/exports/Portable-Case", ObjectsWritten: 9}
		})

	f.cli.SetArgs([]string{
		"export", "/exports", "-c", "custom.yaml",
		"-t", "Notable Item", "--hash-set", "7", "--compression", "zstd",
	})

	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.out.String(), "status:   completed")
	assert.Contains(t, f.out.String(), "9 written")
}

func TestExport_FailurePrintsResult(t *testing.T) {
	f := newFixture(t)
	f.module.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.BuildResult{
			Status: domain.BuildFailed,
			Err:    domain.ErrEmptySelection,
		})

	f.cli.SetArgs([]string{"export", "/exports", "-s", "/cases/original"})

	err := f.cli.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrExportFailed)
	assert.Contains(t, f.out.String(), "status:   failed")
	assert.Contains(t, f.out.String(), "nothing selected")
}

func TestExport_NoRequestFile(t *testing.T) {
	f := newFixture(t)
	f.cli.SetArgs([]string{"export", "/exports"})

	require.ErrorIs(t, f.cli.Execute(context.Background()), domain.ErrConfigReadFailed)
}

func TestVerify(t *testing.T) {
	f := newFixture(t)
	f.verifier.EXPECT().Verify(gomock.Any(), "/exports/ok").
		Return(&domain.VerifyReport{CaseID: "c1", Objects: 9, ContentFiles: 2}, nil)
	f.verifier.EXPECT().Verify(gomock.Any(), "/exports/bad").
		Return(&domain.VerifyReport{
			CaseID:   "c2",
			Dangling: []domain.DanglingReference{{Table: "content_tags", Column: "obj_id", RowID: 3, Target: "file:10"}},
		}, nil)

	f.cli.SetArgs([]string{"verify", "/exports/ok"})
	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.out.String(), "result:  ok")

	f.out.Reset()
	f.cli.SetArgs([]string{"verify", "/exports/bad"})
	require.ErrorIs(t, f.cli.Execute(context.Background()), domain.ErrVerificationFailed)
	assert.Contains(t, f.out.String(), "content_tags.obj_id[3] -> file:10")
}

func TestVersion(t *testing.T) {
	f := newFixture(t)
	f.cli.SetArgs([]string{"version"})

	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.out.String(), "portable version dev")
}
