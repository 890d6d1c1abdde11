// Package resolver computes the closed set of objects a selection needs in a portable case.
package resolver

import (
	"context"
	"errors"
	"maps"
	"slices"

	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver builds dependency graphs against one source case.
type Resolver struct {
	source ports.SourceCase
	logger ports.Logger
}

// New creates a Resolver reading from source.
func New(source ports.SourceCase, logger ports.Logger) *Resolver {
	return &Resolver{source: source, logger: logger}
}

// Resolve expands sel into a validated dependency graph.
//
// Roots are the selected tags (optionally filtered by hash set membership) and,
// in include mode, the member files of the selected hash sets. Each root is
// expanded along its required edges to a fixed point; a root whose closure
// contains a missing object is left out and listed in Graph.Unresolved.
// Companions (attachments of an included artifact, and derived artifacts of an
// included file when requested) are added the same way once their owner is in.
func (r *Resolver) Resolve(ctx context.Context, sel domain.Selection) (*domain.Graph, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	run := &resolution{
		source:  r.source,
		sel:     sel.Normalized(),
		entries: make(map[domain.SourceObjectRef]*entry),
	}

	pending, err := run.roots(ctx)
	if err != nil {
		return nil, err
	}

	included := make(map[domain.SourceObjectRef]bool)
	reported := make(map[domain.SourceObjectRef]bool)
	var unresolved []domain.ObjectError

	for len(pending) > 0 {
		if err := run.explore(ctx, pending); err != nil {
			return nil, err
		}
		broken := run.broken()

		var accepted []domain.SourceObjectRef
		for _, ref := range pending {
			missing, isBroken := broken[ref]
			if !isBroken {
				accepted = append(accepted, ref)
				continue
			}
			if reported[ref] {
				continue
			}
			reported[ref] = true
			err := zerr.With(domain.Annotate(domain.ErrUnresolvableReference, "ref", ref.String()), "missing", missing.String())
			unresolved = append(unresolved, domain.ObjectError{Ref: ref, Err: err})
			r.logger.Warn("skipping " + ref.String() + ": missing " + missing.String())
		}

		added := run.include(included, accepted)

		pending, err = run.companions(ctx, added, included, reported)
		if err != nil {
			return nil, err
		}
	}

	g := domain.NewGraph()
	for _, ref := range slices.SortedFunc(maps.Keys(included), domain.CompareRefs) {
		if err := g.AddNode(run.entries[ref].node); err != nil {
			return nil, err
		}
	}
	for _, u := range unresolved {
		g.AddUnresolved(u)
	}

	if g.NodeCount() == 0 {
		if len(unresolved) == 0 {
			return nil, domain.ErrEmptySelection
		}
		return nil, zerr.With(domain.Annotate(domain.ErrUnresolvableReference, "unresolved", len(unresolved)), "first", unresolved[0].Ref.String())
	}

	if err := g.Validate(); err != nil {
		return nil, domain.Classify(domain.ErrUnresolvableReference, err)
	}

	return g, nil
}

type entry struct {
	node    domain.Node
	missing bool
}

// resolution is the state of one Resolve call.
type resolution struct {
	source  ports.SourceCase
	sel     domain.Selection
	entries map[domain.SourceObjectRef]*entry
	preload map[domain.SourceObjectRef]domain.Object
}

// roots returns the objects the selection names directly, in canonical order.
func (run *resolution) roots(ctx context.Context) ([]domain.SourceObjectRef, error) {
	tagNameIDs, err := run.tagNameIDs(ctx)
	if err != nil {
		return nil, err
	}

	run.preload = make(map[domain.SourceObjectRef]domain.Object)
	roots := make(map[domain.SourceObjectRef]bool)

	if len(tagNameIDs) > 0 {
		tags, err := run.source.TagsByName(ctx, tagNameIDs)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to list tags by name")
		}
		for _, t := range tags {
			run.preload[t.ObjectRef()] = t
			roots[t.ObjectRef()] = true
		}
	}
	for _, id := range run.sel.TagIDs {
		roots[domain.Ref(domain.KindTag, id)] = true
	}

	if run.sel.HasHashSets() {
		members, err := run.hashSetMembers(ctx)
		if err != nil {
			return nil, err
		}

		switch run.sel.Mode() {
		case domain.HashSetModeInclude:
			for id := range members {
				roots[domain.Ref(domain.KindFile, id)] = true
			}
		case domain.HashSetModeFilter:
			for ref := range roots {
				keep, err := run.taggedFileIn(ctx, ref, members)
				if err != nil {
					return nil, err
				}
				if !keep {
					delete(roots, ref)
				}
			}
		}
	}

	return slices.SortedFunc(maps.Keys(roots), domain.CompareRefs), nil
}

func (run *resolution) tagNameIDs(ctx context.Context) ([]int64, error) {
	ids := slices.Clone(run.sel.TagNameIDs)
	if len(run.sel.TagNames) == 0 {
		return ids, nil
	}

	names, err := run.source.TagNames(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list tag names")
	}
	byName := make(map[string]int64, len(names))
	for _, tn := range names {
		byName[tn.DisplayName] = tn.ID
	}
	for _, name := range run.sel.TagNames {
		id, ok := byName[name]
		if !ok {
			return nil, domain.Annotate(domain.ErrUnknownTagName, "tag_name", name)
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return slices.Compact(ids), nil
}

func (run *resolution) hashSetMembers(ctx context.Context) (map[int64]bool, error) {
	for _, id := range run.sel.HashSetIDs {
		if _, err := run.source.HashSet(ctx, id); err != nil {
			if errors.Is(err, domain.ErrObjectNotFound) {
				return nil, domain.Annotate(domain.ErrUnknownHashSet, "hash_set", id)
			}
			return nil, zerr.Wrap(err, "failed to read hash set")
		}
	}

	ids, err := run.source.HashSetMembers(ctx, run.sel.HashSetIDs)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list hash set members")
	}
	members := make(map[int64]bool, len(ids))
	for _, id := range ids {
		members[id] = true
	}
	return members, nil
}

// taggedFileIn reports whether the file behind a tag is a hash set member.
// Tags whose target cannot be loaded are kept so that they surface as unresolvable.
func (run *resolution) taggedFileIn(ctx context.Context, ref domain.SourceObjectRef, members map[int64]bool) (bool, error) {
	obj, err := run.load(ctx, ref)
	if errors.Is(err, domain.ErrObjectNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	tag, ok := obj.(*domain.Tag)
	if !ok {
		return false, nil
	}
	if tag.ArtifactID == 0 {
		return members[tag.FileID], nil
	}

	obj, err = run.load(ctx, tag.Target())
	if errors.Is(err, domain.ErrObjectNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return members[obj.(*domain.Artifact).FileID], nil
}

// explore loads refs and everything they transitively require.
func (run *resolution) explore(ctx context.Context, refs []domain.SourceObjectRef) error {
	queue := slices.Clone(refs)
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return domain.Classify(domain.ErrCancelled, err)
		}

		ref := queue[0]
		queue = queue[1:]
		if _, seen := run.entries[ref]; seen {
			continue
		}

		obj, err := run.load(ctx, ref)
		if errors.Is(err, domain.ErrObjectNotFound) {
			run.entries[ref] = &entry{node: domain.Node{Ref: ref}, missing: true}
			continue
		}
		if err != nil {
			return err
		}

		deps, err := run.dependencies(ctx, obj)
		if err != nil {
			return err
		}
		run.entries[ref] = &entry{node: domain.Node{Ref: ref, Object: obj, Dependencies: deps}}
		queue = append(queue, deps...)
	}
	return nil
}

// dependencies returns the refs obj requires, de-duplicated, in canonical order.
func (run *resolution) dependencies(ctx context.Context, obj domain.Object) ([]domain.SourceObjectRef, error) {
	var deps []domain.SourceObjectRef

	switch o := obj.(type) {
	case *domain.File:
		deps = append(deps, domain.Ref(domain.KindDataSource, o.DataSourceID))
		if run.sel.PreserveDirectoryTree && o.ParentID != 0 {
			deps = append(deps, domain.Ref(domain.KindFile, o.ParentID))
		}
		hashSets, err := run.source.HashSetsForFile(ctx, o.ID)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read hash set hits"), "file", o.ID)
		}
		for _, id := range hashSets {
			deps = append(deps, domain.Ref(domain.KindHashSet, id))
		}
	case *domain.Artifact:
		if o.FileID != 0 {
			deps = append(deps, domain.Ref(domain.KindFile, o.FileID))
		} else {
			deps = append(deps, domain.Ref(domain.KindDataSource, o.DataSourceID))
		}
		for _, id := range o.AssociatedArtifacts() {
			deps = append(deps, domain.Ref(domain.KindArtifact, id))
		}
	case *domain.Tag:
		deps = append(deps, o.Target())
	case *domain.Attachment:
		deps = append(deps, domain.Ref(domain.KindArtifact, o.ArtifactID))
	}

	self := obj.ObjectRef()
	deps = slices.DeleteFunc(deps, func(d domain.SourceObjectRef) bool { return d == self })
	slices.SortFunc(deps, domain.CompareRefs)
	return slices.Compact(deps), nil
}

// broken maps every explored ref whose closure contains a missing object to one such object.
func (run *resolution) broken() map[domain.SourceObjectRef]domain.SourceObjectRef {
	dependents := make(map[domain.SourceObjectRef][]domain.SourceObjectRef)
	out := make(map[domain.SourceObjectRef]domain.SourceObjectRef)
	var queue []domain.SourceObjectRef

	for _, ref := range slices.SortedFunc(maps.Keys(run.entries), domain.CompareRefs) {
		e := run.entries[ref]
		if e.missing {
			out[ref] = ref
			queue = append(queue, ref)
			continue
		}
		for _, dep := range e.node.Dependencies {
			dependents[dep] = append(dependents[dep], ref)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range dependents[cur] {
			if _, done := out[d]; !done {
				out[d] = out[cur]
				queue = append(queue, d)
			}
		}
	}
	return out
}

// include adds the closure of refs to included and returns the refs that were new, in canonical order.
func (run *resolution) include(included map[domain.SourceObjectRef]bool, refs []domain.SourceObjectRef) []domain.SourceObjectRef {
	var added []domain.SourceObjectRef
	queue := slices.Clone(refs)
	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]
		if included[ref] {
			continue
		}
		included[ref] = true
		added = append(added, ref)
		queue = append(queue, run.entries[ref].node.Dependencies...)
	}
	slices.SortFunc(added, domain.CompareRefs)
	return added
}

// companions returns objects owned by newly included ones that are not yet decided.
func (run *resolution) companions(
	ctx context.Context,
	added []domain.SourceObjectRef,
	included, reported map[domain.SourceObjectRef]bool,
) ([]domain.SourceObjectRef, error) {
	next := make(map[domain.SourceObjectRef]bool)
	add := func(kind domain.ObjectKind, ids []int64) {
		for _, id := range ids {
			ref := domain.Ref(kind, id)
			if !included[ref] && !reported[ref] {
				next[ref] = true
			}
		}
	}

	for _, ref := range added {
		switch ref.Kind {
		case domain.KindArtifact:
			ids, err := run.source.AttachmentsForArtifact(ctx, ref.ID)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to list attachments"), "artifact", ref.ID)
			}
			add(domain.KindAttachment, ids)
		case domain.KindFile:
			if !run.sel.IncludeDerivedArtifacts {
				continue
			}
			ids, err := run.source.ArtifactsForFile(ctx, ref.ID)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to list derived artifacts"), "file", ref.ID)
			}
			add(domain.KindArtifact, ids)
		}
	}

	return slices.SortedFunc(maps.Keys(next), domain.CompareRefs), nil
}

// load returns the object for ref, consulting objects already fetched by bulk queries first.
func (run *resolution) load(ctx context.Context, ref domain.SourceObjectRef) (domain.Object, error) {
	if obj, ok := run.preload[ref]; ok {
		return obj, nil
	}
	if e, ok := run.entries[ref]; ok {
		if e.missing {
			return nil, domain.ErrObjectNotFound
		}
		return e.node.Object, nil
	}

	var (
		obj domain.Object
		err error
	)
	switch ref.Kind {
	case domain.KindDataSource:
		obj, err = lookup(ctx, ref.ID, run.source.DataSource)
	case domain.KindFile:
		obj, err = lookup(ctx, ref.ID, run.source.File)
	case domain.KindArtifact:
		obj, err = lookup(ctx, ref.ID, run.source.Artifact)
	case domain.KindTag:
		obj, err = lookup(ctx, ref.ID, run.source.Tag)
	case domain.KindHashSet:
		obj, err = lookup(ctx, ref.ID, run.source.HashSet)
	case domain.KindAttachment:
		obj, err = lookup(ctx, ref.ID, run.source.Attachment)
	default:
		return nil, domain.Annotate(domain.ErrObjectNotFound, "ref", ref.String())
	}
	if err != nil {
		if errors.Is(err, domain.ErrObjectNotFound) {
			return nil, err
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve object"), "ref", ref.String())
	}
	run.preload[ref] = obj
	return obj, nil
}

func lookup[T domain.Object](ctx context.Context, id int64, get func(context.Context, int64) (T, error)) (domain.Object, error) {
	v, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	return v, nil
}
