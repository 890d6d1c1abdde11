package config

// SettingsFile represents the structure of portable.yaml and of persisted module settings.
type SettingsFile struct {
	Version   int          `yaml:"version"`
	CaseName  string       `yaml:"caseName,omitempty"`
	Source    string       `yaml:"source,omitempty"`
	Selection SelectionDTO `yaml:"selection,omitempty"`
	Content   *ContentDTO  `yaml:"content,omitempty"`

	// TagNames is the version 1 layout, where tag names sat at the top level.
	TagNames []string `yaml:"tagNames,omitempty"`
}

// SelectionDTO represents the selection block.
type SelectionDTO struct {
	TagNames                []string `yaml:"tagNames,omitempty"`
	TagNameIDs              []int64  `yaml:"tagNameIds,omitempty"`
	TagIDs                  []int64  `yaml:"tagIds,omitempty"`
	HashSets                []int64  `yaml:"hashSets,omitempty"`
	HashSetMode             string   `yaml:"hashSetMode,omitempty"`
	IncludeDerivedArtifacts bool     `yaml:"includeDerivedArtifacts,omitempty"`
	PreserveDirectoryTree   bool     `yaml:"preserveDirectoryTree,omitempty"`
}

// ContentDTO represents the content block.
type ContentDTO struct {
	Compression string `yaml:"compression,omitempty"`
}
