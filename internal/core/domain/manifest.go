package domain

import "time"

// Manifest describes a case bundle. It is written last, just before publish.
type Manifest struct {
	CaseID          string    `json:"case_id"`
	CaseName        string    `json:"case_name"`
	Created         time.Time `json:"created"`
	SchemaVersion   int       `json:"schema_version"`
	SelectionDigest string    `json:"selection_digest,omitzero"`
	Compression     string    `json:"compression,omitzero"`
	Objects         int       `json:"objects"`
	ContentFiles    int       `json:"content_files"`
	ContentBytes    int64     `json:"content_bytes"`
	Status          string    `json:"status"`
	SkippedObjects  int       `json:"skipped_objects,omitzero"`
}
