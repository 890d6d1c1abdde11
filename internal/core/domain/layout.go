package domain

import (
	"encoding/hex"
	"path"
	"path/filepath"
	"strings"
)

const (
	// CaseDBFileName is the schema store inside a case bundle.
	CaseDBFileName = "case.db"

	// ContentDirName is the content area inside a case bundle.
	ContentDirName = "content"

	// ManifestFileName is the bundle manifest.
	ManifestFileName = "manifest.json"

	// IncompleteMarker is present only while a bundle is being built.
	IncompleteMarker = ".incomplete"

	// StagingPrefix prefixes the hidden directory a bundle is built in.
	StagingPrefix = ".staging-"

	// LockSuffix is appended to the case name to form the destination lock file.
	LockSuffix = ".lock"

	// ZstdSuffix marks compressed payload files.
	ZstdSuffix = ".zst"

	// SettingsFileName is where module settings persist between runs.
	SettingsFileName = "portable-settings.yaml"

	// RequestFileName is the default export request file.
	RequestFileName = "portable.yaml"

	// SchemaVersion is the case schema version written into case_info.
	SchemaVersion = 1

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// CaseDBPath returns the schema store path of the bundle at root.
func CaseDBPath(root string) string {
	return filepath.Join(root, CaseDBFileName)
}

// ManifestPath returns the manifest path of the bundle at root.
func ManifestPath(root string) string {
	return filepath.Join(root, ManifestFileName)
}

// IncompleteMarkerPath returns the staging marker path of the bundle at root.
func IncompleteMarkerPath(root string) string {
	return filepath.Join(root, IncompleteMarker)
}

// StagingPath returns the hidden directory a case named caseName is built in.
func StagingPath(outputTarget, caseName string) string {
	return filepath.Join(outputTarget, StagingPrefix+caseName)
}

// LockPath returns the lock file guarding caseName under outputTarget.
func LockPath(outputTarget, caseName string) string {
	return filepath.Join(outputTarget, "."+caseName+LockSuffix)
}

// ContentRelPath returns the slash-separated location of a payload relative to the case root.
// Payloads fan out over two directory levels taken from the fingerprint.
func ContentRelPath(fingerprint string, compressed bool) string {
	name := fingerprint
	if compressed {
		name += ZstdSuffix
	}
	if len(fingerprint) < 4 {
		return path.Join(ContentDirName, name)
	}
	return path.Join(ContentDirName, fingerprint[:2], fingerprint[2:4], name)
}

// IsContentRelPath reports whether rel has the shape ContentRelPath produces for a
// fanned-out fingerprint: content/<fp[:2]>/<fp[2:4]>/<fp>[.zst], fp being hex.
// Locations read from a source case must pass this check before they touch the filesystem.
func IsContentRelPath(rel string) bool {
	parts := strings.Split(rel, "/")
	if len(parts) != 4 || parts[0] != ContentDirName {
		return false
	}
	fingerprint := strings.TrimSuffix(parts[3], ZstdSuffix)
	if len(fingerprint) < 4 {
		return false
	}
	if _, err := hex.DecodeString(fingerprint); err != nil {
		return false
	}
	return parts[1] == fingerprint[:2] && parts[2] == fingerprint[2:4]
}
