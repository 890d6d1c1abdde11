package ports

import "go.trai.ch/portable/internal/core/domain"

// SettingsStore reads and writes portable case settings.
//
//go:generate go run go.uber.org/mock/mockgen -source=settings.go -destination=mocks/mock_settings.go -package=mocks
type SettingsStore interface {
	// Load reads settings from path and upgrades them to the current version.
	Load(path string) (*domain.PortableCaseSettings, error)
	// Save writes settings to path.
	Save(path string, settings *domain.PortableCaseSettings) error
}
