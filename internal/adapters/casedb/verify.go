package casedb

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/portable/internal/adapters/contentstore"
	"go.trai.ch/portable/internal/adapters/fs"
	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
	"go.trai.ch/zerr"
	"zombiezen.com/go/sqlite"
)

var _ ports.CaseVerifier = (*Verifier)(nil)

// reference is one column that must resolve inside the case.
// query yields (row id, target id) for every row whose target is missing.
type reference struct {
	table  string
	column string
	target domain.ObjectKind
	query  string
}

var references = []reference{
	{"files", "data_source_obj_id", domain.KindDataSource, `
		SELECT f.obj_id, f.data_source_obj_id FROM files f
		LEFT JOIN data_sources d ON d.obj_id = f.data_source_obj_id
		WHERE d.obj_id IS NULL`},
	{"files", "parent_obj_id", domain.KindFile, `
		SELECT f.obj_id, f.parent_obj_id FROM files f
		LEFT JOIN files p ON p.obj_id = f.parent_obj_id
		WHERE f.parent_obj_id IS NOT NULL AND p.obj_id IS NULL`},
	{"hash_set_hits", "hash_set_id", domain.KindHashSet, `
		SELECT h.obj_id, h.hash_set_id FROM hash_set_hits h
		LEFT JOIN hash_sets s ON s.hash_set_id = h.hash_set_id
		WHERE s.hash_set_id IS NULL`},
	{"hash_set_hits", "obj_id", domain.KindFile, `
		SELECT h.hash_set_id, h.obj_id FROM hash_set_hits h
		LEFT JOIN files f ON f.obj_id = h.obj_id
		WHERE f.obj_id IS NULL`},
	{"artifacts", "obj_id", domain.KindFile, `
		SELECT a.artifact_id, a.obj_id FROM artifacts a
		LEFT JOIN files f ON f.obj_id = a.obj_id
		WHERE a.obj_id IS NOT NULL AND f.obj_id IS NULL`},
	{"artifacts", "data_source_obj_id", domain.KindDataSource, `
		SELECT a.artifact_id, a.data_source_obj_id FROM artifacts a
		LEFT JOIN data_sources d ON d.obj_id = a.data_source_obj_id
		WHERE d.obj_id IS NULL`},
	{"artifact_attributes", "value_artifact_id", domain.KindArtifact, `
		SELECT v.artifact_id, v.value_artifact_id FROM artifact_attributes v
		LEFT JOIN artifacts a ON a.artifact_id = v.value_artifact_id
		WHERE v.value_type = 'artifact' AND a.artifact_id IS NULL`},
	{"content_tags", "obj_id", domain.KindFile, `
		SELECT t.tag_id, t.obj_id FROM content_tags t
		LEFT JOIN files f ON f.obj_id = t.obj_id
		WHERE f.obj_id IS NULL`},
	{"content_tags", "tag_name_id", 0, `
		SELECT t.tag_id, t.tag_name_id FROM content_tags t
		LEFT JOIN tag_names n ON n.tag_name_id = t.tag_name_id
		WHERE n.tag_name_id IS NULL`},
	{"artifact_tags", "artifact_id", domain.KindArtifact, `
		SELECT t.tag_id, t.artifact_id FROM artifact_tags t
		LEFT JOIN artifacts a ON a.artifact_id = t.artifact_id
		WHERE a.artifact_id IS NULL`},
	{"artifact_tags", "tag_name_id", 0, `
		SELECT t.tag_id, t.tag_name_id FROM artifact_tags t
		LEFT JOIN tag_names n ON n.tag_name_id = t.tag_name_id
		WHERE n.tag_name_id IS NULL`},
	{"attachments", "artifact_id", domain.KindArtifact, `
		SELECT x.attachment_id, x.artifact_id FROM attachments x
		LEFT JOIN artifacts a ON a.artifact_id = x.artifact_id
		WHERE a.artifact_id IS NULL`},
}

const countObjects = `
	SELECT (SELECT count(*) FROM data_sources)
		+ (SELECT count(*) FROM files)
		+ (SELECT count(*) FROM artifacts)
		+ (SELECT count(*) FROM content_tags)
		+ (SELECT count(*) FROM artifact_tags)
		+ (SELECT count(*) FROM hash_sets)
		+ (SELECT count(*) FROM attachments)`

const contentLocations = `
	SELECT content_location FROM files WHERE content_location IS NOT NULL
	UNION
	SELECT content_location FROM attachments
	ORDER BY 1`

// Verifier reopens a case bundle read-only and checks that it is self-contained.
type Verifier struct {
	walker *fs.Walker
	files  *fs.Verifier
	logger ports.Logger
}

// NewVerifier creates a Verifier. logger may be nil.
func NewVerifier(walker *fs.Walker, files *fs.Verifier, logger ports.Logger) *Verifier {
	return &Verifier{walker: walker, files: files, logger: logger}
}

// Verify implements ports.CaseVerifier. A returned error means the bundle could not be read;
// problems found in a readable bundle are listed in the report.
func (v *Verifier) Verify(ctx context.Context, root string) (*domain.VerifyReport, error) {
	src, err := OpenSource(ctx, root, v.logger)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	info, err := src.Info(ctx)
	if err != nil {
		return nil, err
	}
	report := &domain.VerifyReport{CaseID: info.ID, CaseName: info.Name}

	if err := src.query(ctx, countObjects, nil, func(stmt *sqlite.Stmt) error {
		report.Objects = stmt.ColumnInt(0)
		return nil
	}); err != nil {
		return nil, err
	}

	for _, ref := range references {
		err := src.query(ctx, ref.query, nil, func(stmt *sqlite.Stmt) error {
			target := domain.Ref(ref.target, stmt.ColumnInt64(1)).String()
			if ref.target == 0 {
				target = "tag_name:" + stmt.ColumnText(1)
			}
			report.Dangling = append(report.Dangling, domain.DanglingReference{
				Table:  ref.table,
				Column: ref.column,
				RowID:  stmt.ColumnInt64(0),
				Target: target,
			})
			return nil
		})
		if err != nil {
			return nil, zerr.With(err, "table", ref.table)
		}
	}

	if err := v.checkContent(ctx, src, report); err != nil {
		return nil, err
	}

	if _, err := os.Stat(domain.IncompleteMarkerPath(root)); err == nil {
		report.Incomplete = true
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, zerr.Wrap(err, "failed to check staging marker")
	}

	return report, nil
}

func (v *Verifier) checkContent(ctx context.Context, src *Source, report *domain.VerifyReport) error {
	var locations []string
	if err := src.query(ctx, contentLocations, nil, func(stmt *sqlite.Stmt) error {
		locations = append(locations, stmt.ColumnText(0))
		return nil
	}); err != nil {
		return err
	}

	missing, err := v.files.MissingFiles(src.root, locations)
	if err != nil {
		return err
	}
	report.MissingContent = missing

	absent := make(map[string]bool, len(missing))
	for _, rel := range missing {
		absent[rel] = true
	}
	for _, rel := range locations {
		if absent[rel] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		fingerprint, _, err := contentstore.Fingerprint(src.root, rel)
		if err != nil || fingerprint != contentstore.FingerprintFromPath(rel) {
			report.CorruptContent = append(report.CorruptContent, rel)
		}
	}

	for range v.walker.WalkFiles(filepath.Join(src.root, domain.ContentDirName), nil) {
		report.ContentFiles++
	}
	return nil
}
