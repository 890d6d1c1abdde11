// Package writer materializes a resolved dependency graph into a destination case.
package writer

import (
	"context"
	"errors"

	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
	"go.trai.ch/portable/internal/engine/idmap"
	"go.trai.ch/zerr"
)

// ObjectStatus represents the outcome of one object.
type ObjectStatus string

const (
	// StatusPending indicates the object has not been reached yet.
	StatusPending ObjectStatus = "Pending"
	// StatusWritten indicates the record (and payload, if any) is in the destination.
	StatusWritten ObjectStatus = "Written"
	// StatusFailed indicates copying or writing the object failed.
	StatusFailed ObjectStatus = "Failed"
	// StatusSkipped indicates the object was not attempted because a dependency failed.
	StatusSkipped ObjectStatus = "Skipped"
)

// Observer is notified as the writer moves through the graph.
// All calls happen on the goroutine that called Write.
type Observer interface {
	// BeforeObject is called at every object boundary. A non-nil error stops the write.
	BeforeObject(ref domain.SourceObjectRef) error
	// Copying is called before an object's payload is streamed.
	Copying(ref domain.SourceObjectRef)
	// Writing is called before an object's record is written.
	Writing(ref domain.SourceObjectRef)
	// AfterObject is called once per attempted object with its outcome.
	AfterObject(ref domain.SourceObjectRef, err error)
}

// Writer copies objects from a source case into a destination case.
// It is build-scoped and must be used from a single goroutine.
type Writer struct {
	source  ports.SourceCase
	store   ports.CaseStore
	content ports.ContentStore
	ids     *idmap.Map
	logger  ports.Logger

	status       map[domain.SourceObjectRef]ObjectStatus
	deduplicated int
}

// New creates a Writer.
func New(
	source ports.SourceCase,
	store ports.CaseStore,
	content ports.ContentStore,
	ids *idmap.Map,
	logger ports.Logger,
) *Writer {
	return &Writer{
		source:  source,
		store:   store,
		content: content,
		ids:     ids,
		logger:  logger,
		status:  make(map[domain.SourceObjectRef]ObjectStatus),
	}
}

// Status returns the outcome of ref.
func (w *Writer) Status(ref domain.SourceObjectRef) ObjectStatus {
	if s, ok := w.status[ref]; ok {
		return s
	}
	return StatusPending
}

// IsFatal reports whether err must abort the build instead of being recorded against one object.
func IsFatal(err error) bool {
	return errors.Is(err, domain.ErrCancelled) ||
		errors.Is(err, domain.ErrStructural) ||
		errors.Is(err, domain.ErrContentWrite)
}

// Write walks g in dependency order and writes every node.
//
// Per-object failures are collected in the returned result, and everything that
// depends on a failed object is skipped so the destination never holds a
// dangling reference. A fatal error stops the walk and is returned together
// with the counts reached so far.
func (w *Writer) Write(ctx context.Context, g *domain.Graph, obs Observer) (*domain.BuildResult, error) {
	result := &domain.BuildResult{}
	defer w.tally(result)

	for node := range g.Walk() {
		if err := obs.BeforeObject(node.Ref); err != nil {
			return result, err
		}
		if err := ctx.Err(); err != nil {
			return result, domain.Classify(domain.ErrCancelled, err)
		}

		err := w.writeNode(ctx, node, obs)
		if err == nil {
			w.status[node.Ref] = StatusWritten
			result.ObjectsWritten++
			obs.AfterObject(node.Ref, nil)
			continue
		}

		w.ids.Forget(node.Ref)
		if IsFatal(err) {
			w.status[node.Ref] = StatusFailed
			obs.AfterObject(node.Ref, err)
			return result, err
		}

		if errors.Is(err, domain.ErrDependencyFailed) {
			w.status[node.Ref] = StatusSkipped
		} else {
			w.status[node.Ref] = StatusFailed
			w.logger.Warn("failed to export " + node.Ref.String() + ": " + err.Error())
		}
		result.AddError(node.Ref, err)
		obs.AfterObject(node.Ref, err)
	}

	return result, nil
}

func (w *Writer) tally(result *domain.BuildResult) {
	result.BytesCopied = w.content.BytesStored()
	result.ContentStored = len(w.content.Records())
	result.ContentDeduplicated = w.deduplicated
}

func (w *Writer) writeNode(ctx context.Context, node domain.Node, obs Observer) error {
	for _, dep := range node.Dependencies {
		if w.status[dep] != StatusWritten {
			return zerr.With(domain.Annotate(domain.ErrDependencyFailed, "dependency", dep.String()), "status", string(w.Status(dep)))
		}
	}

	var loc *domain.ContentLocation
	if domain.HasContent(node.Object) {
		obs.Copying(node.Ref)
		l, err := w.copyContent(ctx, node.Ref)
		if err != nil {
			return err
		}
		loc = &l
	}

	obs.Writing(node.Ref)
	return w.store.Savepoint(ctx, func() error {
		return w.writeRecord(ctx, node, loc)
	})
}

func (w *Writer) copyContent(ctx context.Context, ref domain.SourceObjectRef) (domain.ContentLocation, error) {
	rc, err := w.source.OpenContent(ctx, ref)
	if err != nil {
		return domain.ContentLocation{}, domain.Classify(domain.ErrSourceRead, err)
	}
	defer func() { _ = rc.Close() }()

	loc, err := w.content.Store(ctx, ref, rc)
	if err != nil {
		return domain.ContentLocation{}, err
	}
	if loc.Deduplicated {
		w.deduplicated++
	}
	return loc, nil
}

//nolint:cyclop // one case per object kind
func (w *Writer) writeRecord(ctx context.Context, node domain.Node, loc *domain.ContentLocation) error {
	m := &remapper{ids: w.ids}
	id := int64(w.ids.Remap(node.Ref))

	switch o := node.Object.(type) {
	case *domain.DataSource:
		out := *o
		out.ID = id
		return w.store.PutDataSource(ctx, &out)

	case *domain.File:
		out := *o
		out.ID = id
		out.DataSourceID = m.id(domain.Ref(domain.KindDataSource, o.DataSourceID))
		out.ParentID = 0
		parent := domain.Ref(domain.KindFile, o.ParentID)
		var hashSets []int64
		for _, dep := range node.Dependencies {
			switch {
			case o.ParentID != 0 && dep == parent:
				out.ParentID = m.id(dep)
			case dep.Kind == domain.KindHashSet:
				hashSets = append(hashSets, m.id(dep))
			}
		}
		if m.err != nil {
			return m.err
		}
		return w.store.PutFile(ctx, &out, loc, hashSets)

	case *domain.Artifact:
		out := *o
		out.ID = id
		if o.FileID != 0 {
			out.FileID = m.id(domain.Ref(domain.KindFile, o.FileID))
		}
		out.DataSourceID = m.id(domain.Ref(domain.KindDataSource, o.DataSourceID))
		out.Attributes = make([]domain.Attribute, len(o.Attributes))
		for i, attr := range o.Attributes {
			if attr.ValueType == domain.ValueArtifact {
				attr.Int64 = m.id(domain.Ref(domain.KindArtifact, attr.Int64))
			}
			out.Attributes[i] = attr
		}
		if m.err != nil {
			return m.err
		}
		return w.store.PutArtifact(ctx, &out)

	case *domain.Tag:
		out := *o
		out.ID = id
		if o.ArtifactID != 0 {
			out.ArtifactID = m.id(o.Target())
		} else {
			out.FileID = m.id(o.Target())
		}
		if m.err != nil {
			return m.err
		}
		tagNameID, err := w.store.EnsureTagName(ctx, &o.Name)
		if err != nil {
			return err
		}
		out.Name.ID = tagNameID
		return w.store.PutTag(ctx, &out, tagNameID)

	case *domain.HashSet:
		out := *o
		out.ID = id
		return w.store.PutHashSet(ctx, &out)

	case *domain.Attachment:
		out := *o
		out.ID = id
		out.ArtifactID = m.id(domain.Ref(domain.KindArtifact, o.ArtifactID))
		if m.err != nil {
			return m.err
		}
		if loc == nil {
			return domain.Annotate(domain.ErrContentNotFound, "ref", node.Ref.String())
		}
		return w.store.PutAttachment(ctx, &out, *loc)

	default:
		return domain.Annotate(domain.ErrUnresolvableReference, "ref", node.Ref.String())
	}
}

// remapper looks up destination identifiers of already written objects,
// keeping the first failure so a record can be checked once.
type remapper struct {
	ids *idmap.Map
	err error
}

func (m *remapper) id(ref domain.SourceObjectRef) int64 {
	if m.err != nil {
		return 0
	}
	id, ok := m.ids.Lookup(ref)
	if !ok {
		m.err = domain.Annotate(domain.ErrUnresolvableReference, "ref", ref.String())
		return 0
	}
	return int64(id)
}
