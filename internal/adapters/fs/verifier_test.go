package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/portable/internal/adapters/fs"
)

func TestVerifier_MissingFiles(t *testing.T) {
	tmpDir := t.TempDir()
	verifier := fs.NewVerifier()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "content", "ab"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "content", "ab", "one"), []byte("content"), 0o600))

	// Case 1: All files exist
	missing, err := verifier.MissingFiles(tmpDir, []string{"content/ab/one"})
	require.NoError(t, err)
	assert.Empty(t, missing)

	// Case 2: One missing, one is a directory
	missing, err = verifier.MissingFiles(tmpDir, []string{"content/ab/one", "content/ab/two", "content/ab"})
	require.NoError(t, err)
	assert.Equal(t, []string{"content/ab/two", "content/ab"}, missing)

	// Case 3: Paths leaving the root are never looked up
	outside := filepath.Join(filepath.Dir(tmpDir), "outside.txt")
	missing, err = verifier.MissingFiles(tmpDir, []string{"../outside.txt", filepath.ToSlash(outside)})
	require.NoError(t, err)
	assert.Equal(t, []string{"../outside.txt", filepath.ToSlash(outside)}, missing)
}
