package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/portable/internal/adapters/fs"
	"go.trai.ch/portable/internal/core/domain"
)

func TestWalker_WalkFiles(t *testing.T) {
	// tmp/
	//   ab/cd/abcd1234
	//   ab/cd/.tmp-123
	//   ignored/file
	//   top.zst
	tmpDir := t.TempDir()
	write := func(rel string) {
		path := filepath.Join(tmpDir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(rel), 0o600))
	}
	write("ab/cd/abcd1234")
	write("ab/cd/" + fs.TempPrefix + "123")
	write("ignored/file")
	write("top.zst")

	walker := fs.NewWalker()
	files := slices.Sorted(walker.WalkFiles(tmpDir, []string{"ignored"}))

	assert.Equal(t, []string{"ab/cd/abcd1234", "top.zst"}, files)
}

func TestWalker_MissingRoot(t *testing.T) {
	walker := fs.NewWalker()
	files := slices.Collect(walker.WalkFiles(filepath.Join(t.TempDir(), "absent"), nil))
	assert.Empty(t, files)
}

func TestWalker_StopsEarly(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), nil, 0o600))
	}

	var seen []string
	for f := range fs.NewWalker().WalkFiles(tmpDir, nil) {
		seen = append(seen, f)
		break
	}
	assert.Len(t, seen, 1)
}

func TestHasher_SelectionDigest(t *testing.T) {
	h := fs.NewHasher()

	a := h.SelectionDigest(domain.Selection{TagIDs: []int64{3, 1, 3}, TagNames: []string{"b", "a"}})
	b := h.SelectionDigest(domain.Selection{TagIDs: []int64{1, 3}, TagNames: []string{"a", "b"}, HashSetMode: domain.HashSetModeFilter})
	assert.Equal(t, a, b)
	assert.Len(t, a, 16)

	c := h.SelectionDigest(domain.Selection{TagIDs: []int64{1, 3}, TagNames: []string{"a", "b"}, PreserveDirectoryTree: true})
	assert.NotEqual(t, a, c)

	// Identifiers moving between lists change the digest.
	d := h.SelectionDigest(domain.Selection{TagNameIDs: []int64{1}})
	e := h.SelectionDigest(domain.Selection{TagIDs: []int64{1}})
	assert.NotEqual(t, d, e)
}

func TestLocker_Lock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", ".Case.lock")
	locker := fs.NewLocker()

	release, err := locker.Lock(path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = locker.Lock(path)
	require.ErrorIs(t, err, domain.ErrDestinationLocked)
	require.ErrorIs(t, err, domain.ErrStructural)

	require.NoError(t, release())

	release, err = locker.Lock(path)
	require.NoError(t, err)
	require.NoError(t, release())
}
