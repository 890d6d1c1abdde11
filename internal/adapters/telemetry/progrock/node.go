package progrock

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
)

const (
	// NodeID is the unique identifier for the progress sink factory node.
	NodeID graft.ID = "adapter.telemetry.progrock"
)

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Factory, error) {
			return New(os.Stderr), nil
		},
	})
}
