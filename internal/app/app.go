// Package app implements the host side of portable case exports.
package app

import (
	"context"
	"fmt"
	"os"

	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
	"go.trai.ch/portable/internal/modules"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Sink is a progress sink the host can cancel and close.
type Sink interface {
	ports.ProgressSink
	// Cancel asks the running build to stop at its next poll.
	Cancel()
	// Complete records the final outcome.
	Complete(result *domain.BuildResult)
}

// SinkFactory creates one Sink per export.
type SinkFactory interface {
	Sink(name string) Sink
}

// SinkFactoryFunc adapts a function to SinkFactory.
type SinkFactoryFunc func(name string) Sink

// Sink implements SinkFactory.
func (f SinkFactoryFunc) Sink(name string) Sink { return f(name) }

// RequestFinder locates the export request file, starting at cwd.
type RequestFinder func(cwd string) (string, error)

// App represents the main application logic.
type App struct {
	registry *modules.Registry
	settings ports.SettingsStore
	find     RequestFinder
	verifier ports.CaseVerifier
	sinks    SinkFactory
	logger   ports.Logger
}

// New creates a new App instance.
func New(
	registry *modules.Registry,
	settings ports.SettingsStore,
	find RequestFinder,
	verifier ports.CaseVerifier,
	sinks SinkFactory,
	logger ports.Logger,
) *App {
	return &App{
		registry: registry,
		settings: settings,
		find:     find,
		verifier: verifier,
		sinks:    sinks,
		logger:   logger,
	}
}

// WithSinks replaces the progress sink factory.
func (a *App) WithSinks(sinks SinkFactory) *App {
	a.sinks = sinks
	return a
}

// ExportOptions describes one export.
type ExportOptions struct {
	// Module names the report module to run.
	Module       string
	OutputTarget string
	Settings     ports.ReportModuleSettings
	// SaveSettingsTo, when set, receives the settings after a build that produced a case.
	SaveSettingsTo string
}

// Modules lists the registered report modules.
func (a *App) Modules() []ports.ReportModule {
	return a.registry.List()
}

// Module returns the report module registered under name.
func (a *App) Module(name string) (ports.ReportModule, error) {
	return a.registry.Get(name)
}

// Export runs a module on a dedicated worker. Cancelling ctx is forwarded to the
// build through its sink, and Export waits for the build to wind down.
// The result is nil only when the module could not be started.
func (a *App) Export(ctx context.Context, opts ExportOptions) (*domain.BuildResult, error) {
	module, err := a.registry.Get(opts.Module)
	if err != nil {
		return nil, err
	}
	if module.RequiresOutputPath() && opts.OutputTarget == "" {
		return nil, domain.Annotate(domain.ErrOutputPathRequired, "module", module.Name())
	}
	settings := opts.Settings
	if settings == nil {
		settings = module.DefaultSettings()
	}

	sink := a.sinks.Sink(module.Name())
	done := make(chan struct{})
	var result *domain.BuildResult

	var g errgroup.Group
	g.Go(func() error {
		defer close(done)
		result = module.Run(ctx, opts.OutputTarget, sink, settings)
		return nil
	})

	select {
	case <-ctx.Done():
		a.logger.Warn("cancellation requested, waiting for the build to stop")
		sink.Cancel()
	case <-done:
	}
	_ = g.Wait()

	if result == nil {
		result = &domain.BuildResult{Status: domain.BuildFailed, Err: domain.ErrExportFailed}
	}
	sink.Complete(result)

	if !result.Succeeded() {
		return result, domain.Classify(domain.ErrExportFailed, result.Err)
	}

	if opts.SaveSettingsTo != "" {
		if err := a.saveSettings(opts.SaveSettingsTo, settings); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (a *App) saveSettings(path string, settings ports.ReportModuleSettings) error {
	s, ok := settings.(*domain.PortableCaseSettings)
	if !ok {
		a.logger.Warn(fmt.Sprintf("settings of type %T cannot be saved", settings))
		return nil
	}
	saved := *s
	if err := saved.Upgrade(); err != nil {
		return err
	}
	if err := a.settings.Save(path, &saved); err != nil {
		return zerr.Wrap(err, "failed to save settings")
	}
	a.logger.Info("settings saved to " + path)
	return nil
}

// LoadSettings reads settings from path. An empty path searches the working
// directory and its parents for the export request file.
func (a *App) LoadSettings(path string) (*domain.PortableCaseSettings, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, domain.Classify(domain.ErrConfigReadFailed, err)
		}
		found, err := a.find(cwd)
		if err != nil {
			return nil, err
		}
		path = found
	}
	a.logger.Debug("loading settings from " + path)
	return a.settings.Load(path)
}

// Options lists what the case at source offers to the named module.
func (a *App) Options(ctx context.Context, moduleName, source string) (*domain.ModuleOptions, error) {
	module, err := a.registry.Get(moduleName)
	if err != nil {
		return nil, err
	}
	surface := module.ConfigurationSurface()
	if surface == nil {
		return &domain.ModuleOptions{}, nil
	}
	return surface.Options(ctx, source)
}

// ValidateSelection checks sel against the case at source for the named module.
func (a *App) ValidateSelection(ctx context.Context, moduleName, source string, sel domain.Selection) error {
	module, err := a.registry.Get(moduleName)
	if err != nil {
		return err
	}
	surface := module.ConfigurationSurface()
	if surface == nil {
		return nil
	}
	return surface.ValidateSelection(ctx, source, sel)
}

// Verify checks the referential closure of the case bundle at root.
func (a *App) Verify(ctx context.Context, root string) (*domain.VerifyReport, error) {
	report, err := a.verifier.Verify(ctx, root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to verify case"), "path", root)
	}
	return report, nil
}
