package ports

// DestinationLocker grants exclusive ownership of a destination while it is being built.
//
//go:generate go run go.uber.org/mock/mockgen -source=lock.go -destination=mocks/mock_lock.go -package=mocks
type DestinationLocker interface {
	// Lock acquires the lock file at path without blocking.
	// It returns domain.ErrDestinationLocked when another build holds it.
	Lock(path string) (release func() error, err error)
}
