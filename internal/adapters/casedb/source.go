package casedb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.trai.ch/portable/internal/adapters/contentstore"
	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
	"go.trai.ch/zerr"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var _ ports.SourceCase = (*Source)(nil)

const sourcePoolSize = 2

// Source is a read-only view of a case bundle.
type Source struct {
	pool *pool
	root string
}

// OpenSource opens the bundle at root read-only.
func OpenSource(ctx context.Context, root string, logger ports.Logger) (*Source, error) {
	path := domain.CaseDBPath(root)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.Annotate(domain.ErrCaseOpenFailed, "path", path)
		}
		return nil, zerr.With(domain.Classify(domain.ErrCaseOpenFailed, err), "path", path)
	}

	p, err := openPool(poolConfig{Path: path, PoolSize: sourcePoolSize, ReadOnly: true, Logger: logger})
	if err != nil {
		return nil, domain.Classify(domain.ErrCaseOpenFailed, err)
	}
	s := &Source{pool: p, root: root}

	if _, err := s.Info(ctx); err != nil {
		_ = p.close()
		return nil, zerr.With(domain.Classify(domain.ErrCaseOpenFailed, err), "path", path)
	}
	return s, nil
}

// Root returns the bundle directory.
func (s *Source) Root() string {
	return s.root
}

// Info returns the case identity recorded in case_info.
func (s *Source) Info(ctx context.Context) (domain.CaseInfo, error) {
	var info domain.CaseInfo
	values := make(map[string]string)
	err := s.query(ctx, "SELECT key, value FROM case_info", nil, func(stmt *sqlite.Stmt) error {
		values[stmt.ColumnText(0)] = stmt.ColumnText(1)
		return nil
	})
	if err != nil {
		return info, err
	}

	info.ID = values[infoID]
	info.Name = values[infoName]
	info.SelectionDigest = values[infoSelectionDigest]
	info.Compression = domain.Compression(values[infoCompression])
	if v, ok := values[infoSchemaVersion]; ok {
		if info.SchemaVersion, err = strconv.Atoi(v); err != nil {
			return info, readError("case_info", err)
		}
	}
	if v, ok := values[infoCreated]; ok {
		if info.CreatedUnix, err = strconv.ParseInt(v, 10, 64); err != nil {
			return info, readError("case_info", err)
		}
	}
	return info, nil
}

// TagNames implements ports.SourceCase.
func (s *Source) TagNames(ctx context.Context) ([]domain.TagName, error) {
	var out []domain.TagName
	err := s.query(ctx, `
		SELECT tag_name_id, display_name, description, color, known
		FROM tag_names ORDER BY tag_name_id`, nil,
		func(stmt *sqlite.Stmt) error {
			out = append(out, scanTagName(stmt, 0))
			return nil
		})
	return out, err
}

// tagColumns selects a tag with its tag name. Artifact tags carry zero offsets.
const tagColumns = `
	SELECT t.tag_id, t.obj_id, 0, t.comment, t.examiner, t.begin_byte_offset, t.end_byte_offset,
		n.tag_name_id, n.display_name, n.description, n.color, n.known
	FROM content_tags t JOIN tag_names n ON n.tag_name_id = t.tag_name_id
	WHERE %[1]s
	UNION ALL
	SELECT t.tag_id, 0, t.artifact_id, t.comment, t.examiner, 0, 0,
		n.tag_name_id, n.display_name, n.description, n.color, n.known
	FROM artifact_tags t JOIN tag_names n ON n.tag_name_id = t.tag_name_id
	WHERE %[1]s
	ORDER BY 1`

// TagsByName implements ports.SourceCase.
func (s *Source) TagsByName(ctx context.Context, tagNameIDs []int64) ([]*domain.Tag, error) {
	if len(tagNameIDs) == 0 {
		return nil, nil
	}
	where := "t.tag_name_id IN (" + placeholders(len(tagNameIDs)) + ")"
	values := append(args(tagNameIDs), args(tagNameIDs)...)
	return s.tags(ctx, where, values)
}

// Tag implements ports.SourceCase.
func (s *Source) Tag(ctx context.Context, id int64) (*domain.Tag, error) {
	tags, err := s.tags(ctx, "t.tag_id = ?", []any{id, id})
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, notFound(domain.KindTag, id)
	}
	return tags[0], nil
}

func (s *Source) tags(ctx context.Context, where string, values []any) ([]*domain.Tag, error) {
	var out []*domain.Tag
	err := s.query(ctx, fmt.Sprintf(tagColumns, where), values, func(stmt *sqlite.Stmt) error {
		// Columns: tag_id(0), obj_id(1), artifact_id(2), comment(3), examiner(4),
		// begin(5), end(6), tag name(7..11)
		out = append(out, &domain.Tag{
			ID:          stmt.ColumnInt64(0),
			FileID:      stmt.ColumnInt64(1),
			ArtifactID:  stmt.ColumnInt64(2),
			Comment:     stmt.ColumnText(3),
			Examiner:    stmt.ColumnText(4),
			BeginOffset: stmt.ColumnInt64(5),
			EndOffset:   stmt.ColumnInt64(6),
			Name:        scanTagName(stmt, 7),
		})
		return nil
	})
	return out, err
}

// HashSets implements ports.SourceCase.
func (s *Source) HashSets(ctx context.Context) ([]domain.HashSet, error) {
	var out []domain.HashSet
	err := s.query(ctx, "SELECT hash_set_id, name, known FROM hash_sets ORDER BY hash_set_id", nil,
		func(stmt *sqlite.Stmt) error {
			out = append(out, scanHashSet(stmt))
			return nil
		})
	return out, err
}

// HashSet implements ports.SourceCase.
func (s *Source) HashSet(ctx context.Context, id int64) (*domain.HashSet, error) {
	var out *domain.HashSet
	err := s.query(ctx, "SELECT hash_set_id, name, known FROM hash_sets WHERE hash_set_id = ?", []any{id},
		func(stmt *sqlite.Stmt) error {
			h := scanHashSet(stmt)
			out = &h
			return nil
		})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, notFound(domain.KindHashSet, id)
	}
	return out, nil
}

// HashSetMembers implements ports.SourceCase.
func (s *Source) HashSetMembers(ctx context.Context, hashSetIDs []int64) ([]int64, error) {
	if len(hashSetIDs) == 0 {
		return nil, nil
	}
	return s.ids(ctx, `
		SELECT DISTINCT obj_id FROM hash_set_hits
		WHERE hash_set_id IN (`+placeholders(len(hashSetIDs))+`) ORDER BY obj_id`,
		args(hashSetIDs)...)
}

// HashSetsForFile implements ports.SourceCase.
func (s *Source) HashSetsForFile(ctx context.Context, fileID int64) ([]int64, error) {
	return s.ids(ctx, "SELECT hash_set_id FROM hash_set_hits WHERE obj_id = ? ORDER BY hash_set_id", fileID)
}

// DataSource implements ports.SourceCase.
func (s *Source) DataSource(ctx context.Context, id int64) (*domain.DataSource, error) {
	var out *domain.DataSource
	err := s.query(ctx, `
		SELECT obj_id, name, device_id, time_zone, size, md5, acquisition_details
		FROM data_sources WHERE obj_id = ?`, []any{id},
		func(stmt *sqlite.Stmt) error {
			out = &domain.DataSource{
				ID:                 stmt.ColumnInt64(0),
				Name:               stmt.ColumnText(1),
				DeviceID:           stmt.ColumnText(2),
				TimeZone:           stmt.ColumnText(3),
				Size:               stmt.ColumnInt64(4),
				MD5:                stmt.ColumnText(5),
				AcquisitionDetails: stmt.ColumnText(6),
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, notFound(domain.KindDataSource, id)
	}
	return out, nil
}

// File implements ports.SourceCase.
func (s *Source) File(ctx context.Context, id int64) (*domain.File, error) {
	var out *domain.File
	err := s.query(ctx, `
		SELECT obj_id, data_source_obj_id, parent_obj_id, name, parent_path, is_dir,
			size, md5, sha256, mime_type, known, crtime, mtime, atime, ctime, content_location
		FROM files WHERE obj_id = ?`, []any{id},
		func(stmt *sqlite.Stmt) error {
			out = &domain.File{
				ID:           stmt.ColumnInt64(0),
				DataSourceID: stmt.ColumnInt64(1),
				ParentID:     stmt.ColumnInt64(2),
				Name:         stmt.ColumnText(3),
				ParentPath:   stmt.ColumnText(4),
				IsDir:        stmt.ColumnBool(5),
				Size:         stmt.ColumnInt64(6),
				MD5:          stmt.ColumnText(7),
				SHA256:       stmt.ColumnText(8),
				MIMEType:     stmt.ColumnText(9),
				Known:        domain.KnownStatus(stmt.ColumnInt(10)),
				Crtime:       stmt.ColumnInt64(11),
				Mtime:        stmt.ColumnInt64(12),
				Atime:        stmt.ColumnInt64(13),
				Ctime:        stmt.ColumnInt64(14),
				HasContent:   !stmt.ColumnIsNull(15),
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, notFound(domain.KindFile, id)
	}
	return out, nil
}

// Artifact implements ports.SourceCase.
func (s *Source) Artifact(ctx context.Context, id int64) (*domain.Artifact, error) {
	var out *domain.Artifact
	err := s.query(ctx, `
		SELECT artifact_id, obj_id, data_source_obj_id, type_name, display_name
		FROM artifacts WHERE artifact_id = ?`, []any{id},
		func(stmt *sqlite.Stmt) error {
			out = &domain.Artifact{
				ID:           stmt.ColumnInt64(0),
				FileID:       stmt.ColumnInt64(1),
				DataSourceID: stmt.ColumnInt64(2),
				TypeName:     domain.NewInternedString(stmt.ColumnText(3)),
				DisplayName:  stmt.ColumnText(4),
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, notFound(domain.KindArtifact, id)
	}

	err = s.query(ctx, `
		SELECT attribute_type, value_type, value_text, value_int64, value_double, value_artifact_id, source
		FROM artifact_attributes WHERE artifact_id = ? ORDER BY seq`, []any{id},
		func(stmt *sqlite.Stmt) error {
			attr := domain.Attribute{
				Type:         domain.NewInternedString(stmt.ColumnText(0)),
				ValueType:    domain.AttributeValueType(stmt.ColumnText(1)),
				SourceModule: stmt.ColumnText(6),
			}
			switch attr.ValueType {
			case domain.ValueText:
				attr.Text = stmt.ColumnText(2)
			case domain.ValueInt64:
				attr.Int64 = stmt.ColumnInt64(3)
			case domain.ValueDouble:
				attr.Double = stmt.ColumnFloat(4)
			case domain.ValueArtifact:
				attr.Int64 = stmt.ColumnInt64(5)
			}
			out.Attributes = append(out.Attributes, attr)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ArtifactsForFile implements ports.SourceCase.
func (s *Source) ArtifactsForFile(ctx context.Context, fileID int64) ([]int64, error) {
	return s.ids(ctx, "SELECT artifact_id FROM artifacts WHERE obj_id = ? ORDER BY artifact_id", fileID)
}

// Attachment implements ports.SourceCase.
func (s *Source) Attachment(ctx context.Context, id int64) (*domain.Attachment, error) {
	var out *domain.Attachment
	err := s.query(ctx, `
		SELECT attachment_id, artifact_id, name, size, mime_type
		FROM attachments WHERE attachment_id = ?`, []any{id},
		func(stmt *sqlite.Stmt) error {
			out = &domain.Attachment{
				ID:         stmt.ColumnInt64(0),
				ArtifactID: stmt.ColumnInt64(1),
				Name:       stmt.ColumnText(2),
				Size:       stmt.ColumnInt64(3),
				MIMEType:   stmt.ColumnText(4),
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, notFound(domain.KindAttachment, id)
	}
	return out, nil
}

// AttachmentsForArtifact implements ports.SourceCase.
func (s *Source) AttachmentsForArtifact(ctx context.Context, artifactID int64) ([]int64, error) {
	return s.ids(ctx, "SELECT attachment_id FROM attachments WHERE artifact_id = ? ORDER BY attachment_id", artifactID)
}

// OpenContent implements ports.SourceCase.
func (s *Source) OpenContent(ctx context.Context, ref domain.SourceObjectRef) (io.ReadCloser, error) {
	var query string
	switch ref.Kind {
	case domain.KindFile:
		query = "SELECT content_location FROM files WHERE obj_id = ?"
	case domain.KindAttachment:
		query = "SELECT content_location FROM attachments WHERE attachment_id = ?"
	default:
		return nil, domain.Annotate(domain.ErrContentNotFound, "ref", ref.String())
	}

	var (
		found    bool
		location string
	)
	err := s.query(ctx, query, []any{ref.ID}, func(stmt *sqlite.Stmt) error {
		found = true
		location = stmt.ColumnText(0)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, notFound(ref.Kind, ref.ID)
	}
	if location == "" {
		return nil, domain.Annotate(domain.ErrContentNotFound, "ref", ref.String())
	}

	rc, err := contentstore.Open(s.root, location)
	if err != nil {
		return nil, zerr.With(err, "ref", ref.String())
	}
	return rc, nil
}

// Close implements ports.SourceCase.
func (s *Source) Close() error {
	return s.pool.close()
}

func (s *Source) query(ctx context.Context, query string, values []any, fn func(*sqlite.Stmt) error) error {
	conn, err := s.pool.take(ctx)
	if err != nil {
		return readError("", err)
	}
	defer s.pool.put(conn)

	if err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{Args: values, ResultFunc: fn}); err != nil {
		return readError("", err)
	}
	return nil
}

func (s *Source) ids(ctx context.Context, query string, values ...any) ([]int64, error) {
	var out []int64
	err := s.query(ctx, query, values, func(stmt *sqlite.Stmt) error {
		out = append(out, stmt.ColumnInt64(0))
		return nil
	})
	return out, err
}

func scanTagName(stmt *sqlite.Stmt, col int) domain.TagName {
	return domain.TagName{
		ID:          stmt.ColumnInt64(col),
		DisplayName: stmt.ColumnText(col + 1),
		Description: stmt.ColumnText(col + 2),
		Color:       stmt.ColumnText(col + 3),
		Known:       domain.KnownStatus(stmt.ColumnInt(col + 4)),
	}
}

func scanHashSet(stmt *sqlite.Stmt) domain.HashSet {
	return domain.HashSet{
		ID:    stmt.ColumnInt64(0),
		Name:  stmt.ColumnText(1),
		Known: domain.KnownStatus(stmt.ColumnInt(2)),
	}
}

func notFound(kind domain.ObjectKind, id int64) error {
	return domain.Annotate(domain.ErrObjectNotFound, "ref", domain.Ref(kind, id).String())
}

func readError(table string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	err = domain.Classify(domain.ErrCaseReadFailed, err)
	if table != "" {
		err = zerr.With(err, "table", table)
	}
	return err
}

// Opener opens case bundles read-only.
type Opener struct {
	logger ports.Logger
}

// NewOpener creates an Opener. logger may be nil.
func NewOpener(logger ports.Logger) *Opener {
	return &Opener{logger: logger}
}

// Open implements ports.SourceOpener.
func (o *Opener) Open(ctx context.Context, path string) (ports.SourceCase, error) {
	s, err := OpenSource(ctx, path, o.logger)
	if err != nil {
		return nil, err
	}
	return s, nil
}
