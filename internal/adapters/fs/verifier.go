package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

// Verifier checks content locations of a case bundle against the filesystem.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// MissingFiles returns the slash-separated paths under root that do not exist as regular files.
// Paths that would leave root count as missing.
func (v *Verifier) MissingFiles(root string, rels []string) ([]string, error) {
	var missing []string
	for _, rel := range rels {
		if !filepath.IsLocal(filepath.FromSlash(rel)) {
			missing = append(missing, rel)
			continue
		}
		path := filepath.Join(root, filepath.FromSlash(rel))
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				missing = append(missing, rel)
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to stat content file"), "path", path)
		}
		if !info.Mode().IsRegular() {
			missing = append(missing, rel)
		}
	}
	return missing, nil
}
