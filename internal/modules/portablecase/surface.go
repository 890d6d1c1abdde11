package portablecase

import (
	"context"
	"errors"

	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ConfigurationSurface = (*Surface)(nil)

// Surface lists what a source case offers and checks selections against it.
type Surface struct {
	opener ports.SourceOpener
}

// NewSurface creates a Surface reading cases through opener.
func NewSurface(opener ports.SourceOpener) *Surface {
	return &Surface{opener: opener}
}

// Options implements ports.ConfigurationSurface.
func (s *Surface) Options(ctx context.Context, source string) (opts *domain.ModuleOptions, err error) {
	src, err := s.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	opts = &domain.ModuleOptions{}

	names, err := src.TagNames(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list tag names")
	}
	for _, tn := range names {
		tags, err := src.TagsByName(ctx, []int64{tn.ID})
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to count tags"), "tag_name", tn.DisplayName)
		}
		opts.TagNames = append(opts.TagNames, domain.TagNameOption{TagName: tn, TagCount: len(tags)})
	}

	sets, err := src.HashSets(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list hash sets")
	}
	for _, hs := range sets {
		members, err := src.HashSetMembers(ctx, []int64{hs.ID})
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to count hash set members"), "hash_set", hs.Name)
		}
		opts.HashSets = append(opts.HashSets, domain.HashSetOption{HashSet: hs, MemberCount: len(members)})
	}

	return opts, nil
}

// ValidateSelection implements ports.ConfigurationSurface.
// It runs the offline checks first, so an empty selection never opens the case.
func (s *Surface) ValidateSelection(ctx context.Context, source string, sel domain.Selection) (err error) {
	if err := sel.Validate(); err != nil {
		return err
	}

	src, err := s.open(ctx, source)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if len(sel.TagNames) > 0 || len(sel.TagNameIDs) > 0 {
		names, err := src.TagNames(ctx)
		if err != nil {
			return zerr.Wrap(err, "failed to list tag names")
		}
		byName := make(map[string]bool, len(names))
		byID := make(map[int64]bool, len(names))
		for _, tn := range names {
			byName[tn.DisplayName] = true
			byID[tn.ID] = true
		}
		for _, name := range sel.TagNames {
			if !byName[name] {
				return domain.Annotate(domain.ErrUnknownTagName, "tag_name", name)
			}
		}
		for _, id := range sel.TagNameIDs {
			if !byID[id] {
				return domain.Annotate(domain.ErrUnknownTagName, "tag_name_id", id)
			}
		}
	}

	for _, id := range sel.TagIDs {
		if _, err := src.Tag(ctx, id); err != nil {
			if errors.Is(err, domain.ErrObjectNotFound) {
				return zerr.With(domain.Classify(domain.ErrInvalidSelection, err), "tag_id", id)
			}
			return err
		}
	}

	for _, id := range sel.HashSetIDs {
		if _, err := src.HashSet(ctx, id); err != nil {
			if errors.Is(err, domain.ErrObjectNotFound) {
				return domain.Annotate(domain.ErrUnknownHashSet, "hash_set", id)
			}
			return err
		}
	}

	return nil
}

func (s *Surface) open(ctx context.Context, source string) (ports.SourceCase, error) {
	if source == "" {
		return nil, domain.Annotate(domain.ErrInvalidSettings, "source", source)
	}
	src, err := s.opener.Open(ctx, source)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open source case"), "source", source)
	}
	return src, nil
}
