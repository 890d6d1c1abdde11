package contentstore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
)

const NodeID graft.ID = "adapter.content_store_factory"

// Factory creates a Store per build.
type Factory struct{}

// New implements ports.ContentStoreFactory.
func (Factory) New(root string, compression domain.Compression) (ports.ContentStore, error) {
	store, err := New(root, compression)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func init() {
	graft.Register(graft.Node[ports.ContentStoreFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ContentStoreFactory, error) {
			return Factory{}, nil
		},
	})
}
