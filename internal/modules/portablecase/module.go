// Package portablecase implements the "Portable Case" report module.
package portablecase

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
	"go.trai.ch/portable/internal/engine/builder"
)

const (
	// Name is the display name hosts list the module under.
	Name = "Portable Case"
	// Description is shown next to Name.
	Description = "Copies selected tagged items, with everything they depend on, to a new case that will work anywhere."
)

// Exporter runs a single build.
type Exporter interface {
	Build(ctx context.Context, req builder.Request, sink ports.ProgressSink) *domain.BuildResult
}

var _ ports.ReportModule = (*Module)(nil)

// Module implements ports.ReportModule.
type Module struct {
	exporter Exporter
	surface  *Surface
	logger   ports.Logger
}

// New creates the module. opener backs its configuration surface.
func New(exporter Exporter, opener ports.SourceOpener, logger ports.Logger) *Module {
	return &Module{
		exporter: exporter,
		surface:  NewSurface(opener),
		logger:   logger,
	}
}

// Name implements ports.ReportModule.
func (m *Module) Name() string { return Name }

// Description implements ports.ReportModule.
func (m *Module) Description() string { return Description }

// RequiresOutputPath implements ports.ReportModule.
func (m *Module) RequiresOutputPath() bool { return true }

// ConfigurationSurface implements ports.ReportModule.
func (m *Module) ConfigurationSurface() ports.ConfigurationSurface { return m.surface }

// DefaultSettings implements ports.ReportModule.
func (m *Module) DefaultSettings() ports.ReportModuleSettings {
	return domain.DefaultPortableCaseSettings()
}

// Run exports the selection in settings to outputTarget.
// Settings are upgraded on a copy; the caller's value is left untouched.
func (m *Module) Run(
	ctx context.Context,
	outputTarget string,
	sink ports.ProgressSink,
	settings ports.ReportModuleSettings,
) *domain.BuildResult {
	s, err := m.settings(settings)
	if err != nil {
		return m.reject(sink, err)
	}
	if strings.TrimSpace(outputTarget) == "" {
		return m.reject(sink, domain.ErrOutputPathRequired)
	}

	req := builder.Request{
		SourcePath:   s.Source,
		OutputTarget: outputTarget,
		CaseName:     s.CaseName,
		Selection:    s.Selection.Normalized(),
		Compression:  s.Content.Compression,
	}
	if m.logger != nil {
		m.logger.Info(fmt.Sprintf("exporting %s from %s to %s", req.CaseName, req.SourcePath, req.CasePath()))
	}
	return m.exporter.Build(ctx, req, sink)
}

func (m *Module) settings(settings ports.ReportModuleSettings) (*domain.PortableCaseSettings, error) {
	in, ok := settings.(*domain.PortableCaseSettings)
	if !ok || in == nil {
		return nil, domain.Annotate(domain.ErrInvalidSettings, "type", fmt.Sprintf("%T", settings))
	}

	s := *in
	if err := s.Upgrade(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(s.Source) == "" {
		return nil, domain.Annotate(domain.ErrInvalidSettings, "source", s.Source)
	}
	return &s, nil
}

// reject reports a build that failed before any I/O.
func (m *Module) reject(sink ports.ProgressSink, err error) *domain.BuildResult {
	if sink != nil {
		sink.SetStatus("failed: " + err.Error())
	}
	if m.logger != nil {
		m.logger.Error(err)
	}
	return &domain.BuildResult{Status: domain.BuildFailed, Err: err}
}
