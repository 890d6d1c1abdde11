package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

const (
	// SettingsVersionLegacy is the first settings layout: tag names only, no content block.
	SettingsVersionLegacy = 1
	// SettingsVersion is the settings layout this build writes.
	SettingsVersion = 2
	// DefaultCaseName names the portable case when settings leave it empty.
	DefaultCaseName = "Portable-Case"
)

// ContentSettings controls how payloads are stored.
type ContentSettings struct {
	Compression Compression `yaml:"compression,omitempty"`
}

// PortableCaseSettings is the versioned settings payload of the portable case module.
type PortableCaseSettings struct {
	Version   int             `yaml:"version"`
	CaseName  string          `yaml:"caseName,omitempty"`
	Source    string          `yaml:"source,omitempty"`
	Selection Selection       `yaml:"selection"`
	Content   ContentSettings `yaml:"content,omitempty"`
}

// DefaultPortableCaseSettings returns settings at the current version with no selection.
func DefaultPortableCaseSettings() *PortableCaseSettings {
	return &PortableCaseSettings{
		Version:  SettingsVersion,
		CaseName: DefaultCaseName,
		Content:  ContentSettings{Compression: CompressionNone},
	}
}

// VersionNumber implements the module settings contract.
func (s *PortableCaseSettings) VersionNumber() int {
	return s.Version
}

// Upgrade brings older settings to SettingsVersion in place.
// Settings from a newer version are rejected rather than guessed at.
func (s *PortableCaseSettings) Upgrade() error {
	switch {
	case s.Version == 0, s.Version == SettingsVersionLegacy:
		if s.Content.Compression == "" {
			s.Content.Compression = CompressionNone
		}
		s.Version = SettingsVersion
	case s.Version > SettingsVersion:
		return zerr.With(Annotate(ErrUnsupportedSettingsVersion, "version", s.Version), "supported", SettingsVersion)
	}
	if strings.TrimSpace(s.CaseName) == "" {
		s.CaseName = DefaultCaseName
	}
	return nil
}

// Validate checks the settings without touching the filesystem.
func (s *PortableCaseSettings) Validate() error {
	if s.Version != SettingsVersion {
		return Annotate(ErrUnsupportedSettingsVersion, "version", s.Version)
	}
	if !s.Content.Compression.Valid() {
		return Annotate(ErrInvalidSettings, "compression", string(s.Content.Compression))
	}
	if err := ValidateCaseName(s.CaseName); err != nil {
		return err
	}
	return s.Selection.Validate()
}

// ValidateCaseName rejects names that cannot be used as a single directory name.
func ValidateCaseName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return Annotate(ErrInvalidSettings, "case_name", name)
	}
	return nil
}
