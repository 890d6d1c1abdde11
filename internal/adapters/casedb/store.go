package casedb

import (
	"context"
	"errors"
	"os"
	"strconv"

	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
	"go.trai.ch/zerr"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var _ ports.CaseStore = (*Store)(nil)

// Store is the schema store of a case bundle under construction.
// It holds a single connection for its whole lifetime, so savepoints nest
// around every write made by the build worker.
type Store struct {
	pool *pool
	conn *sqlite.Conn
}

// Create creates the schema store of a new bundle rooted at root and records info in case_info.
// It fails if root already holds a case database.
func Create(ctx context.Context, root string, info domain.CaseInfo, logger ports.Logger) (*Store, error) {
	path := domain.CaseDBPath(root)
	if _, err := os.Stat(path); err == nil {
		return nil, domain.Annotate(domain.ErrDestinationExists, "path", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, domain.Classify(domain.ErrCaseCreateFailed, err)
	}

	p, err := openPool(poolConfig{Path: path, Create: true, Logger: logger})
	if err != nil {
		return nil, domain.Classify(domain.ErrCaseCreateFailed, err)
	}
	conn, err := p.take(ctx)
	if err != nil {
		_ = p.close()
		return nil, domain.Classify(domain.ErrCaseCreateFailed, err)
	}

	s := &Store{pool: p, conn: conn}
	if err := s.init(info); err != nil {
		_ = s.Close()
		return nil, domain.Classify(domain.ErrCaseCreateFailed, err)
	}
	return s, nil
}

func (s *Store) init(info domain.CaseInfo) (err error) {
	defer sqlitex.Save(s.conn)(&err)

	if err := sqlitex.ExecuteScript(s.conn, schema, nil); err != nil {
		return zerr.Wrap(err, "failed to create schema")
	}

	compression := info.Compression
	if compression == "" {
		compression = domain.CompressionNone
	}
	rows := [][2]string{
		{infoID, info.ID},
		{infoName, info.Name},
		{infoSchemaVersion, strconv.Itoa(info.SchemaVersion)},
		{infoSelectionDigest, info.SelectionDigest},
		{infoCompression, string(compression)},
		{infoCreated, strconv.FormatInt(info.CreatedUnix, 10)},
	}
	for _, row := range rows {
		if err := sqlitex.Execute(s.conn, "INSERT INTO case_info (key, value) VALUES (?, ?)", &sqlitex.ExecOptions{
			Args: []any{row[0], row[1]},
		}); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to write case info"), "key", row[0])
		}
	}
	return nil
}

// Savepoint implements ports.CaseStore.
func (s *Store) Savepoint(ctx context.Context, fn func() error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer sqlitex.Save(s.conn)(&err)
	return fn()
}

// PutDataSource implements ports.CaseStore.
func (s *Store) PutDataSource(_ context.Context, ds *domain.DataSource) error {
	return s.exec("data_sources", `
		INSERT INTO data_sources (obj_id, name, device_id, time_zone, size, md5, acquisition_details)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ds.ID, ds.Name, ds.DeviceID, ds.TimeZone, ds.Size, ds.MD5, ds.AcquisitionDetails)
}

// PutFile implements ports.CaseStore.
func (s *Store) PutFile(_ context.Context, f *domain.File, loc *domain.ContentLocation, hashSetIDs []int64) error {
	var location, fingerprint any
	if loc != nil {
		location, fingerprint = loc.RelPath, loc.Fingerprint
	}
	if err := s.exec("files", `
		INSERT INTO files (obj_id, data_source_obj_id, parent_obj_id, name, parent_path, is_dir,
			size, md5, sha256, mime_type, known, crtime, mtime, atime, ctime,
			content_location, content_fingerprint)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.DataSourceID, nullID(f.ParentID), f.Name, f.ParentPath, f.IsDir,
		f.Size, f.MD5, f.SHA256, f.MIMEType, int64(f.Known), f.Crtime, f.Mtime, f.Atime, f.Ctime,
		location, fingerprint); err != nil {
		return err
	}

	for _, hs := range hashSetIDs {
		if err := s.exec("hash_set_hits",
			"INSERT INTO hash_set_hits (hash_set_id, obj_id) VALUES (?, ?)", hs, f.ID); err != nil {
			return err
		}
	}
	return nil
}

// PutArtifact implements ports.CaseStore.
func (s *Store) PutArtifact(_ context.Context, a *domain.Artifact) error {
	if err := s.exec("artifacts", `
		INSERT INTO artifacts (artifact_id, obj_id, data_source_obj_id, type_name, display_name)
		VALUES (?, ?, ?, ?, ?)`,
		a.ID, nullID(a.FileID), a.DataSourceID, a.TypeName.String(), a.DisplayName); err != nil {
		return err
	}

	for i, attr := range a.Attributes {
		var text, integer, double, artifact any
		switch attr.ValueType {
		case domain.ValueText:
			text = attr.Text
		case domain.ValueInt64:
			integer = attr.Int64
		case domain.ValueDouble:
			double = attr.Double
		case domain.ValueArtifact:
			artifact = attr.Int64
		default:
			return domain.Classify(domain.ErrCaseWriteFailed,
				zerr.With(zerr.New("unknown attribute value type"), "value_type", string(attr.ValueType)))
		}
		if err := s.exec("artifact_attributes", `
			INSERT INTO artifact_attributes (artifact_id, seq, attribute_type, value_type,
				value_text, value_int64, value_double, value_artifact_id, source)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, i, attr.Type.String(), string(attr.ValueType),
			text, integer, double, artifact, attr.SourceModule); err != nil {
			return err
		}
	}
	return nil
}

// EnsureTagName implements ports.CaseStore.
// The identifier of tn is ignored: tag names are shared by display name.
func (s *Store) EnsureTagName(_ context.Context, tn *domain.TagName) (int64, error) {
	var id int64
	err := sqlitex.Execute(s.conn, "SELECT tag_name_id FROM tag_names WHERE display_name = ?", &sqlitex.ExecOptions{
		Args: []any{tn.DisplayName},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			id = stmt.ColumnInt64(0)
			return nil
		},
	})
	if err != nil {
		return 0, writeError("tag_names", err)
	}
	if id != 0 {
		return id, nil
	}

	if err := s.exec("tag_names", `
		INSERT INTO tag_names (display_name, description, color, known) VALUES (?, ?, ?, ?)`,
		tn.DisplayName, tn.Description, tn.Color, int64(tn.Known)); err != nil {
		return 0, err
	}
	return s.conn.LastInsertRowID(), nil
}

// PutTag implements ports.CaseStore.
func (s *Store) PutTag(_ context.Context, t *domain.Tag, tagNameID int64) error {
	if t.ArtifactID != 0 {
		return s.exec("artifact_tags", `
			INSERT INTO artifact_tags (tag_id, artifact_id, tag_name_id, comment, examiner)
			VALUES (?, ?, ?, ?, ?)`,
			t.ID, t.ArtifactID, tagNameID, t.Comment, t.Examiner)
	}
	return s.exec("content_tags", `
		INSERT INTO content_tags (tag_id, obj_id, tag_name_id, comment, examiner, begin_byte_offset, end_byte_offset)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.FileID, tagNameID, t.Comment, t.Examiner, t.BeginOffset, t.EndOffset)
}

// PutHashSet implements ports.CaseStore.
func (s *Store) PutHashSet(_ context.Context, h *domain.HashSet) error {
	return s.exec("hash_sets",
		"INSERT INTO hash_sets (hash_set_id, name, known) VALUES (?, ?, ?)",
		h.ID, h.Name, int64(h.Known))
}

// PutAttachment implements ports.CaseStore.
func (s *Store) PutAttachment(_ context.Context, a *domain.Attachment, loc domain.ContentLocation) error {
	return s.exec("attachments", `
		INSERT INTO attachments (attachment_id, artifact_id, name, size, mime_type, content_location, content_fingerprint)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ArtifactID, a.Name, a.Size, a.MIMEType, loc.RelPath, loc.Fingerprint)
}

// Close implements ports.CaseStore. It is safe to call more than once.
func (s *Store) Close() error {
	if s.pool == nil {
		return nil
	}
	s.pool.put(s.conn)
	s.conn = nil
	p := s.pool
	s.pool = nil
	if err := p.close(); err != nil {
		return domain.Classify(domain.ErrCaseCloseFailed, err)
	}
	return nil
}

func (s *Store) exec(table, query string, values ...any) error {
	if err := sqlitex.Execute(s.conn, query, &sqlitex.ExecOptions{Args: values}); err != nil {
		return writeError(table, err)
	}
	return nil
}

func writeError(table string, err error) error {
	return domain.Classify(domain.ErrCaseWriteFailed, zerr.With(err, "table", table))
}

// Factory creates schema stores for the builder.
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a Factory. logger may be nil.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger}
}

// Create implements ports.CaseStoreFactory.
func (f *Factory) Create(ctx context.Context, root string, info domain.CaseInfo) (ports.CaseStore, error) {
	s, err := Create(ctx, root, info, f.logger)
	if err != nil {
		return nil, err
	}
	return s, nil
}
