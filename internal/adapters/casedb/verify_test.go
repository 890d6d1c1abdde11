package casedb_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/portable/internal/adapters/casedb"
	"go.trai.ch/portable/internal/adapters/casedb/casedbtest"
	"go.trai.ch/portable/internal/adapters/fs"
	"go.trai.ch/portable/internal/core/domain"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

func newVerifier() *casedb.Verifier {
	return casedb.NewVerifier(fs.NewWalker(), fs.NewVerifier(), nil)
}

// tamper runs statements against a bundle with foreign keys off.
func tamper(t *testing.T, root string, statements ...string) {
	t.Helper()
	conn, err := sqlite.OpenConn(domain.CaseDBPath(root), sqlite.OpenReadWrite)
	require.NoError(t, err)
	defer func() { require.NoError(t, conn.Close()) }()
	for _, stmt := range statements {
		require.NoError(t, sqlitex.ExecuteTransient(conn, stmt, nil))
	}
}

func contentPaths(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	for rel := range fs.NewWalker().WalkFiles(filepath.Join(root, domain.ContentDirName), nil) {
		out = append(out, filepath.Join(root, domain.ContentDirName, filepath.FromSlash(rel)))
	}
	return out
}

func TestVerifier_SelfContained(t *testing.T) {
	root := casedbtest.Scenario(t, filepath.Join(t.TempDir(), "case"))

	report, err := newVerifier().Verify(context.Background(), root)
	require.NoError(t, err)

	assert.True(t, report.OK(), report.Summary())
	assert.Equal(t, casedbtest.SourceCaseID, report.CaseID)
	assert.Equal(t, 11, report.Objects)
	assert.Equal(t, 2, report.ContentFiles)
	assert.Equal(t, "ok", report.Summary())
}

func TestVerifier_DanglingReferences(t *testing.T) {
	root := casedbtest.Scenario(t, filepath.Join(t.TempDir(), "case"))
	tamper(t, root,
		"DELETE FROM artifacts WHERE artifact_id = 21",
		"DELETE FROM hash_sets",
	)

	report, err := newVerifier().Verify(context.Background(), root)
	require.NoError(t, err)
	require.False(t, report.OK())

	assert.Contains(t, report.Dangling, domain.DanglingReference{
		Table: "hash_set_hits", Column: "hash_set_id", RowID: 10, Target: "hash_set:7",
	})
	assert.Contains(t, report.Dangling, domain.DanglingReference{
		Table: "artifact_attributes", Column: "value_artifact_id", RowID: 20, Target: "artifact:21",
	})
	assert.Contains(t, report.Summary(), "dangling references")
}

func TestVerifier_MissingAndCorruptContent(t *testing.T) {
	root := casedbtest.Scenario(t, filepath.Join(t.TempDir(), "case"))
	paths := contentPaths(t, root)
	require.Len(t, paths, 2)

	require.NoError(t, os.Remove(paths[0]))
	require.NoError(t, os.WriteFile(paths[1], []byte("tampered"), domain.FilePerm))

	report, err := newVerifier().Verify(context.Background(), root)
	require.NoError(t, err)

	assert.Len(t, report.MissingContent, 1)
	assert.Len(t, report.CorruptContent, 1)
	assert.Equal(t, 1, report.ContentFiles)
	assert.False(t, report.OK())
}

func TestVerifier_Incomplete(t *testing.T) {
	root := casedbtest.Scenario(t, filepath.Join(t.TempDir(), "case"))
	require.NoError(t, os.WriteFile(domain.IncompleteMarkerPath(root), nil, domain.FilePerm))

	report, err := newVerifier().Verify(context.Background(), root)
	require.NoError(t, err)
	assert.True(t, report.Incomplete)
	assert.Equal(t, "marked incomplete", report.Summary())
}

func TestVerifier_Unreadable(t *testing.T) {
	_, err := newVerifier().Verify(context.Background(), t.TempDir())
	require.ErrorIs(t, err, domain.ErrCaseOpenFailed)
}
