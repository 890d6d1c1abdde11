package portablecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/portable/internal/adapters/casedb"
	"go.trai.ch/portable/internal/adapters/casedb/casedbtest"
	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports/mocks"
	"go.trai.ch/portable/internal/modules/portablecase"
	"go.uber.org/mock/gomock"
)

func scenarioSurface(t *testing.T) (*portablecase.Surface, string) {
	t.Helper()
	root := casedbtest.Scenario(t, filepath.Join(t.TempDir(), "original"))
	return portablecase.NewSurface(casedb.NewOpener(nil)), root
}

func TestSurface_Options(t *testing.T) {
	surface, root := scenarioSurface(t)

	opts, err := surface.Options(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, opts.TagNames, 2)
	assert.Equal(t, casedbtest.NotableItem, opts.TagNames[0].DisplayName)
	assert.Equal(t, 2, opts.TagNames[0].TagCount)
	assert.Equal(t, casedbtest.FollowUp, opts.TagNames[1].DisplayName)
	assert.Equal(t, 1, opts.TagNames[1].TagCount)

	require.Len(t, opts.HashSets, 1)
	assert.Equal(t, int64(7), opts.HashSets[0].ID)
	assert.Equal(t, "Known Bad", opts.HashSets[0].Name)
	assert.Equal(t, 1, opts.HashSets[0].MemberCount)
}

func TestSurface_OptionsMissingCase(t *testing.T) {
	surface := portablecase.NewSurface(casedb.NewOpener(nil))

	_, err := surface.Options(context.Background(), t.TempDir())
	require.ErrorIs(t, err, domain.ErrCaseOpenFailed)
}

func TestSurface_ValidateSelection(t *testing.T) {
	surface, root := scenarioSurface(t)

	tests := []struct {
		name string
		sel  domain.Selection
		want error
	}{
		{"tag name", domain.Selection{TagNames: []string{casedbtest.NotableItem}}, nil},
		{"tag name id", domain.Selection{TagNameIDs: []int64{2}}, nil},
		{"tag id and hash set filter", domain.Selection{TagIDs: []int64{30}, HashSetIDs: []int64{7}}, nil},
		{"hash set include", domain.Selection{HashSetIDs: []int64{7}, HashSetMode: domain.HashSetModeInclude}, nil},
		{"unknown tag name", domain.Selection{TagNames: []string{"Ignored"}}, domain.ErrUnknownTagName},
		{"unknown tag name id", domain.Selection{TagNameIDs: []int64{99}}, domain.ErrUnknownTagName},
		{"unknown tag", domain.Selection{TagIDs: []int64{99}}, domain.ErrInvalidSelection},
		{
			"unknown hash set",
			domain.Selection{HashSetIDs: []int64{99}, HashSetMode: domain.HashSetModeInclude},
			domain.ErrUnknownHashSet,
		},
		{"empty", domain.Selection{}, domain.ErrEmptySelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := surface.ValidateSelection(context.Background(), root, tt.sel)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSurface_EmptySelectionNeverOpensCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	opener := mocks.NewMockSourceOpener(ctrl)
	opener.EXPECT().Open(gomock.Any(), gomock.Any()).Times(0)

	err := portablecase.NewSurface(opener).ValidateSelection(context.Background(), "/cases/original", domain.Selection{})
	require.ErrorIs(t, err, domain.ErrEmptySelection)
}

func TestSurface_OpenFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	opener := mocks.NewMockSourceOpener(ctrl)
	boom := errors.New("locked")
	opener.EXPECT().Open(gomock.Any(), "/cases/original").Return(nil, boom)

	err := portablecase.NewSurface(opener).ValidateSelection(
		context.Background(), "/cases/original", domain.Selection{TagIDs: []int64{1}},
	)
	require.ErrorIs(t, err, boom)
}
