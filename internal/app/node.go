package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/portable/internal/adapters/casedb"             //nolint:depguard // Wired in app layer
	"go.trai.ch/portable/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/portable/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/portable/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/portable/internal/core/ports"
	"go.trai.ch/portable/internal/engine/builder"
	"go.trai.ch/portable/internal/modules"
	"go.trai.ch/portable/internal/modules/portablecase"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			builder.NodeID,
			casedb.OpenerNodeID,
			casedb.VerifierNodeID,
			config.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	b, err := graft.Dep[*builder.Builder](ctx)
	if err != nil {
		return nil, err
	}

	opener, err := graft.Dep[ports.SourceOpener](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.CaseVerifier](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[ports.SettingsStore](ctx)
	if err != nil {
		return nil, err
	}

	sinks, err := graft.Dep[*progrock.Factory](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	// The registry is populated explicitly; every report module is listed here.
	registry, err := modules.NewRegistry(
		portablecase.New(b, opener, log),
	)
	if err != nil {
		return nil, err
	}

	return New(registry, settings, config.FindRequest, verifier, ProgrockSinks(sinks), log), nil
}

// ProgrockSinks adapts a progrock factory to SinkFactory.
func ProgrockSinks(f *progrock.Factory) SinkFactory {
	return SinkFactoryFunc(func(name string) Sink {
		return f.Sink(name)
	})
}
