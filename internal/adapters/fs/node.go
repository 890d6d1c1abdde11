package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/portable/internal/core/ports"
)

const (
	WalkerNodeID   graft.ID = "adapter.fs.walker"
	VerifierNodeID graft.ID = "adapter.fs.verifier"
	HasherNodeID   graft.ID = "adapter.fs.hasher"
	LockerNodeID   graft.ID = "adapter.fs.locker"
)

func init() {
	// Walker Node (Concrete implementation needed by the case verifier)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[*Verifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Verifier, error) {
			return NewVerifier(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.DestinationLocker]{
		ID:        LockerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.DestinationLocker, error) {
			return NewLocker(), nil
		},
	})
}
