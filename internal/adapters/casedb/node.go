package casedb

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/portable/internal/adapters/fs"
	"go.trai.ch/portable/internal/adapters/logger"
	"go.trai.ch/portable/internal/core/ports"
)

const (
	FactoryNodeID  graft.ID = "adapter.casedb.factory"
	OpenerNodeID   graft.ID = "adapter.casedb.opener"
	VerifierNodeID graft.ID = "adapter.casedb.verifier"
)

func init() {
	graft.Register(graft.Node[ports.CaseStoreFactory]{
		ID:        FactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.CaseStoreFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(log), nil
		},
	})

	graft.Register(graft.Node[ports.SourceOpener]{
		ID:        OpenerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.SourceOpener, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewOpener(log), nil
		},
	})

	graft.Register(graft.Node[ports.CaseVerifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, fs.VerifierNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.CaseVerifier, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			files, err := graft.Dep[*fs.Verifier](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewVerifier(walker, files, log), nil
		},
	})
}
