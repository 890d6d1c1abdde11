package builder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/portable/internal/adapters/casedb"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/portable/internal/adapters/contentstore" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/portable/internal/adapters/fs"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/portable/internal/adapters/logger"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/portable/internal/adapters/telemetry"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/portable/internal/core/ports"
)

// NodeID is the unique identifier for the builder Graft node.
const NodeID graft.ID = "engine.builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			casedb.OpenerNodeID,
			casedb.FactoryNodeID,
			casedb.VerifierNodeID,
			contentstore.NodeID,
			fs.LockerNodeID,
			fs.HasherNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			opener, err := graft.Dep[ports.SourceOpener](ctx)
			if err != nil {
				return nil, err
			}

			cases, err := graft.Dep[ports.CaseStoreFactory](ctx)
			if err != nil {
				return nil, err
			}

			contents, err := graft.Dep[ports.ContentStoreFactory](ctx)
			if err != nil {
				return nil, err
			}

			verifier, err := graft.Dep[ports.CaseVerifier](ctx)
			if err != nil {
				return nil, err
			}

			locker, err := graft.Dep[ports.DestinationLocker](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(opener, cases, contents, verifier, locker, hasher, tracer, log), nil
		},
	})
}
