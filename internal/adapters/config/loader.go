// Package config loads export requests and persists portable case settings as YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.SettingsStore = (*Loader)(nil)

// Loader implements ports.SettingsStore using YAML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads settings from path and upgrades them to the current version.
func (l *Loader) Load(path string) (*domain.PortableCaseSettings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(domain.Classify(domain.ErrConfigReadFailed, err), "path", path)
	}

	settings, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if settings.Version < domain.SettingsVersion && l.Logger != nil {
		l.Logger.Info(fmt.Sprintf("upgrading settings in %s from version %d to %d", path, settings.Version, domain.SettingsVersion))
	}
	if err := settings.Upgrade(); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return settings, nil
}

// Parse decodes settings without upgrading them. Unknown fields are rejected.
func Parse(data []byte) (*domain.PortableCaseSettings, error) {
	var file SettingsFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, domain.Classify(domain.ErrConfigParseFailed, err)
	}
	return toDomain(&file), nil
}

// Save writes settings to path, replacing any existing file atomically.
func (l *Loader) Save(path string, settings *domain.PortableCaseSettings) error {
	data, err := yaml.Marshal(fromDomain(settings))
	if err != nil {
		return domain.Classify(domain.ErrConfigWriteFailed, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(domain.Classify(domain.ErrConfigWriteFailed, err), "path", path)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return zerr.With(domain.Classify(domain.ErrConfigWriteFailed, err), "path", path)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(domain.Classify(domain.ErrConfigWriteFailed, err), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(domain.Classify(domain.ErrConfigWriteFailed, err), "path", path)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(domain.Classify(domain.ErrConfigWriteFailed, err), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(domain.Classify(domain.ErrConfigWriteFailed, err), "path", path)
	}
	return nil
}

// FindRequest searches cwd and its parents for the export request file.
func FindRequest(cwd string) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", domain.Classify(domain.ErrConfigReadFailed, err)
	}
	for {
		candidate := filepath.Join(dir, domain.RequestFileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", zerr.With(domain.Classify(domain.ErrConfigReadFailed, err), "path", candidate)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(domain.Annotate(domain.ErrConfigReadFailed, "file", domain.RequestFileName), "cwd", cwd)
		}
		dir = parent
	}
}

func toDomain(file *SettingsFile) *domain.PortableCaseSettings {
	sel := file.Selection
	tagNames := sel.TagNames
	if file.Version <= domain.SettingsVersionLegacy {
		tagNames = append(slices.Clone(file.TagNames), tagNames...)
	}

	settings := &domain.PortableCaseSettings{
		Version:  file.Version,
		CaseName: strings.TrimSpace(file.CaseName),
		Source:   file.Source,
		Selection: domain.Selection{
			TagNames:                canonicalizeStrings(tagNames),
			TagNameIDs:              canonicalizeIDs(sel.TagNameIDs),
			TagIDs:                  canonicalizeIDs(sel.TagIDs),
			HashSetIDs:              canonicalizeIDs(sel.HashSets),
			HashSetMode:             domain.HashSetMode(sel.HashSetMode),
			IncludeDerivedArtifacts: sel.IncludeDerivedArtifacts,
			PreserveDirectoryTree:   sel.PreserveDirectoryTree,
		},
	}
	if file.Content != nil {
		settings.Content.Compression = domain.Compression(file.Content.Compression)
	}
	return settings
}

func fromDomain(s *domain.PortableCaseSettings) *SettingsFile {
	file := &SettingsFile{
		Version:  s.Version,
		CaseName: s.CaseName,
		Source:   s.Source,
		Selection: SelectionDTO{
			TagNames:                s.Selection.TagNames,
			TagNameIDs:              s.Selection.TagNameIDs,
			TagIDs:                  s.Selection.TagIDs,
			HashSets:                s.Selection.HashSetIDs,
			HashSetMode:             string(s.Selection.HashSetMode),
			IncludeDerivedArtifacts: s.Selection.IncludeDerivedArtifacts,
			PreserveDirectoryTree:   s.Selection.PreserveDirectoryTree,
		},
	}
	if s.Content.Compression != "" {
		file.Content = &ContentDTO{Compression: string(s.Content.Compression)}
	}
	return file
}

func canonicalizeStrings(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}
	sorted := slices.Clone(strs)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

func canonicalizeIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}
