package fs

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DestinationLocker = (*Locker)(nil)

// Locker hands out exclusive advisory file locks.
type Locker struct{}

// NewLocker creates a new Locker.
func NewLocker() *Locker {
	return &Locker{}
}

// Lock takes the lock file at path without blocking. The lock file is left in place on release.
func (l *Locker) Lock(path string) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create lock directory"), "path", path)
	}

	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, zerr.With(domain.Classify(domain.ErrDestinationLocked, err), "path", path)
	}
	if !locked {
		return nil, domain.Annotate(domain.ErrDestinationLocked, "path", path)
	}

	return lock.Unlock, nil
}
