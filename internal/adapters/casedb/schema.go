package casedb

import "strings"

// schema creates every table of a case bundle. Object identifiers are never
// generated by SQLite except for tag names, which are shared by display name.
const schema = `
CREATE TABLE IF NOT EXISTS case_info (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS data_sources (
	obj_id              INTEGER PRIMARY KEY,
	name                TEXT NOT NULL,
	device_id           TEXT NOT NULL DEFAULT '',
	time_zone           TEXT NOT NULL DEFAULT '',
	size                INTEGER NOT NULL DEFAULT 0,
	md5                 TEXT NOT NULL DEFAULT '',
	acquisition_details TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS hash_sets (
	hash_set_id INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	known       INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS files (
	obj_id             INTEGER PRIMARY KEY,
	data_source_obj_id INTEGER NOT NULL REFERENCES data_sources(obj_id),
	parent_obj_id      INTEGER REFERENCES files(obj_id),
	name               TEXT NOT NULL,
	parent_path        TEXT NOT NULL DEFAULT '',
	is_dir             INTEGER NOT NULL DEFAULT 0,
	size               INTEGER NOT NULL DEFAULT 0,
	md5                TEXT NOT NULL DEFAULT '',
	sha256             TEXT NOT NULL DEFAULT '',
	mime_type          TEXT NOT NULL DEFAULT '',
	known              INTEGER NOT NULL DEFAULT 0,
	crtime             INTEGER NOT NULL DEFAULT 0,
	mtime              INTEGER NOT NULL DEFAULT 0,
	atime              INTEGER NOT NULL DEFAULT 0,
	ctime              INTEGER NOT NULL DEFAULT 0,
	content_location   TEXT,
	content_fingerprint TEXT
);

CREATE INDEX IF NOT EXISTS idx_files_parent ON files(parent_obj_id);

CREATE TABLE IF NOT EXISTS hash_set_hits (
	hash_set_id INTEGER NOT NULL REFERENCES hash_sets(hash_set_id),
	obj_id      INTEGER NOT NULL REFERENCES files(obj_id),
	PRIMARY KEY (hash_set_id, obj_id)
);

CREATE INDEX IF NOT EXISTS idx_hash_set_hits_obj ON hash_set_hits(obj_id);

CREATE TABLE IF NOT EXISTS artifacts (
	artifact_id        INTEGER PRIMARY KEY,
	obj_id             INTEGER REFERENCES files(obj_id),
	data_source_obj_id INTEGER NOT NULL REFERENCES data_sources(obj_id),
	type_name          TEXT NOT NULL,
	display_name       TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_artifacts_obj ON artifacts(obj_id);

CREATE TABLE IF NOT EXISTS artifact_attributes (
	artifact_id       INTEGER NOT NULL REFERENCES artifacts(artifact_id),
	seq               INTEGER NOT NULL,
	attribute_type    TEXT NOT NULL,
	value_type        TEXT NOT NULL,
	value_text        TEXT,
	value_int64       INTEGER,
	value_double      REAL,
	value_artifact_id INTEGER REFERENCES artifacts(artifact_id),
	source            TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (artifact_id, seq)
);

CREATE TABLE IF NOT EXISTS tag_names (
	tag_name_id  INTEGER PRIMARY KEY AUTOINCREMENT,
	display_name TEXT NOT NULL UNIQUE,
	description  TEXT NOT NULL DEFAULT '',
	color        TEXT NOT NULL DEFAULT '',
	known        INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS content_tags (
	tag_id            INTEGER PRIMARY KEY,
	obj_id            INTEGER NOT NULL REFERENCES files(obj_id),
	tag_name_id       INTEGER NOT NULL REFERENCES tag_names(tag_name_id),
	comment           TEXT NOT NULL DEFAULT '',
	examiner          TEXT NOT NULL DEFAULT '',
	begin_byte_offset INTEGER NOT NULL DEFAULT 0,
	end_byte_offset   INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_content_tags_name ON content_tags(tag_name_id);

CREATE TABLE IF NOT EXISTS artifact_tags (
	tag_id      INTEGER PRIMARY KEY,
	artifact_id INTEGER NOT NULL REFERENCES artifacts(artifact_id),
	tag_name_id INTEGER NOT NULL REFERENCES tag_names(tag_name_id),
	comment     TEXT NOT NULL DEFAULT '',
	examiner    TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_artifact_tags_name ON artifact_tags(tag_name_id);

CREATE TABLE IF NOT EXISTS attachments (
	attachment_id       INTEGER PRIMARY KEY,
	artifact_id         INTEGER NOT NULL REFERENCES artifacts(artifact_id),
	name                TEXT NOT NULL,
	size                INTEGER NOT NULL DEFAULT 0,
	mime_type           TEXT NOT NULL DEFAULT '',
	content_location    TEXT NOT NULL,
	content_fingerprint TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_attachments_artifact ON attachments(artifact_id);
`

// case_info keys.
const (
	infoID              = "case_id"
	infoName            = "case_name"
	infoSchemaVersion   = "schema_version"
	infoSelectionDigest = "selection_digest"
	infoCompression     = "compression"
	infoCreated         = "created"
)

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

// args converts identifiers into statement arguments.
func args(ids []int64) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

// nullID binds zero as NULL.
func nullID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
