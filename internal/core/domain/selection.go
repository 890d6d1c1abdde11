package domain

import "slices"

// HashSetMode controls how chosen hash sets combine with chosen tags.
type HashSetMode string

const (
	// HashSetModeFilter keeps only tagged items whose file is a member of a chosen hash set.
	HashSetModeFilter HashSetMode = "filter"
	// HashSetModeInclude adds every member file of the chosen hash sets to the export.
	HashSetModeInclude HashSetMode = "include"
)

// Selection is the validated output of the module configuration surface.
type Selection struct {
	// TagNameIDs selects every tag carrying one of these tag names.
	TagNameIDs []int64 `yaml:"tagNameIds,omitempty"`
	// TagNames selects tag names by display name. They are resolved to
	// TagNameIDs against the source case before resolution starts.
	TagNames []string `yaml:"tagNames,omitempty"`
	// TagIDs selects individual tags.
	TagIDs []int64 `yaml:"tagIds,omitempty"`
	// HashSetIDs are the hash sets chosen for export.
	HashSetIDs []int64 `yaml:"hashSets,omitempty"`
	// HashSetMode decides whether HashSetIDs filter tagged items or add members.
	HashSetMode HashSetMode `yaml:"hashSetMode,omitempty"`
	// IncludeDerivedArtifacts pulls in every artifact derived from an exported file.
	IncludeDerivedArtifacts bool `yaml:"includeDerivedArtifacts,omitempty"`
	// PreserveDirectoryTree exports the parent directory chain of every file.
	PreserveDirectoryTree bool `yaml:"preserveDirectoryTree,omitempty"`
}

// HasTags reports whether any tag criterion is set.
func (s Selection) HasTags() bool {
	return len(s.TagNameIDs) > 0 || len(s.TagNames) > 0 || len(s.TagIDs) > 0
}

// HasHashSets reports whether any hash set is chosen.
func (s Selection) HasHashSets() bool {
	return len(s.HashSetIDs) > 0
}

// Mode returns the effective hash set mode, defaulting to filter.
func (s Selection) Mode() HashSetMode {
	if s.HashSetMode == "" {
		return HashSetModeFilter
	}
	return s.HashSetMode
}

// Validate rejects empty and malformed selections. It performs no I/O.
func (s Selection) Validate() error {
	if !s.HasTags() && !s.HasHashSets() {
		return ErrEmptySelection
	}

	switch s.HashSetMode {
	case "", HashSetModeFilter, HashSetModeInclude:
	default:
		return Annotate(ErrInvalidSelection, "hash_set_mode", string(s.HashSetMode))
	}

	// Filtering needs something to filter.
	if s.Mode() == HashSetModeFilter && s.HasHashSets() && !s.HasTags() {
		return Annotate(ErrNoTagsSelected, "hash_set_mode", string(HashSetModeFilter))
	}
	// Including needs something to include. An empty filter filters nothing.
	if s.HashSetMode == HashSetModeInclude && !s.HasHashSets() {
		return Annotate(ErrNoHashSetSelected, "hash_set_mode", string(HashSetModeInclude))
	}

	for _, ids := range [][]int64{s.TagNameIDs, s.TagIDs, s.HashSetIDs} {
		for _, id := range ids {
			if id <= 0 {
				return Annotate(ErrInvalidSelection, "id", id)
			}
		}
	}
	for _, name := range s.TagNames {
		if name == "" {
			return Annotate(ErrInvalidSelection, "tag_name", name)
		}
	}

	return nil
}

// Normalized returns a copy with sorted, de-duplicated identifier lists.
func (s Selection) Normalized() Selection {
	out := s
	out.TagNameIDs = sortedUnique(s.TagNameIDs)
	out.TagIDs = sortedUnique(s.TagIDs)
	out.HashSetIDs = sortedUnique(s.HashSetIDs)
	if len(s.TagNames) > 0 {
		names := slices.Clone(s.TagNames)
		slices.Sort(names)
		out.TagNames = slices.Compact(names)
	}
	out.HashSetMode = s.Mode()
	return out
}

func sortedUnique(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
