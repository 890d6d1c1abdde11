package fs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher digests build inputs with xxhash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// SelectionDigest computes a single hash identifying a selection.
// Selections that normalize to the same value share a digest.
func (h *Hasher) SelectionDigest(sel domain.Selection) string {
	sel = sel.Normalized()
	hasher := xxhash.New()

	hashInts(hasher, sel.TagNameIDs)
	for _, name := range sel.TagNames {
		_, _ = hasher.WriteString(name)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0}) // Section separator
	hashInts(hasher, sel.TagIDs)
	hashInts(hasher, sel.HashSetIDs)

	_, _ = hasher.WriteString(string(sel.HashSetMode))
	_, _ = hasher.Write([]byte{0})
	_, _ = fmt.Fprintf(hasher, "%t,%t", sel.IncludeDerivedArtifacts, sel.PreserveDirectoryTree)

	return fmt.Sprintf("%016x", hasher.Sum64())
}

func hashInts(hasher *xxhash.Digest, ids []int64) {
	for _, id := range ids {
		_, _ = fmt.Fprintf(hasher, "%d", id)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}
