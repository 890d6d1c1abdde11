package ports

import (
	"context"

	"go.trai.ch/portable/internal/core/domain"
)

// ReportModuleSettings is the opaque, versioned settings payload a module receives.
type ReportModuleSettings interface {
	VersionNumber() int
}

// ConfigurationSurface is the optional capability a module exposes to let a host build a selection.
//
//go:generate go run go.uber.org/mock/mockgen -source=module.go -destination=mocks/mock_module.go -package=mocks
type ConfigurationSurface interface {
	// Options lists what the case at source offers for selection.
	Options(ctx context.Context, source string) (*domain.ModuleOptions, error)
	// ValidateSelection checks a selection against the case at source.
	ValidateSelection(ctx context.Context, source string, sel domain.Selection) error
}

// ReportModule is the contract a host invokes an export module through.
type ReportModule interface {
	Name() string
	Description() string
	RequiresOutputPath() bool
	// ConfigurationSurface returns nil when the module has nothing to configure.
	ConfigurationSurface() ConfigurationSurface
	// DefaultSettings returns settings at the module's current version.
	DefaultSettings() ReportModuleSettings
	// Run performs the export. The returned result is never nil.
	Run(ctx context.Context, outputTarget string, sink ProgressSink, settings ReportModuleSettings) *domain.BuildResult
}
