// Package builder drives a portable case build from selection to published bundle.
package builder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
	"go.trai.ch/portable/internal/engine/idmap"
	"go.trai.ch/portable/internal/engine/resolver"
	"go.trai.ch/portable/internal/engine/writer"
	"go.trai.ch/zerr"
)

// Request describes one build.
type Request struct {
	// SourcePath is the case bundle to export from.
	SourcePath string
	// OutputTarget is the directory the portable case is published into.
	OutputTarget string
	// CaseName names the published case directory.
	CaseName    string
	Selection   domain.Selection
	Compression domain.Compression
}

// CasePath returns where the request publishes its case.
func (r Request) CasePath() string {
	return filepath.Join(r.OutputTarget, r.CaseName)
}

// Builder sequences resolution, copying, writing and finalizing of a portable case.
type Builder struct {
	opener   ports.SourceOpener
	cases    ports.CaseStoreFactory
	contents ports.ContentStoreFactory
	verifier ports.CaseVerifier
	locker   ports.DestinationLocker
	hasher   ports.Hasher
	tracer   ports.Tracer
	logger   ports.Logger
}

// New creates a Builder.
func New(
	opener ports.SourceOpener,
	cases ports.CaseStoreFactory,
	contents ports.ContentStoreFactory,
	verifier ports.CaseVerifier,
	locker ports.DestinationLocker,
	hasher ports.Hasher,
	tracer ports.Tracer,
	logger ports.Logger,
) *Builder {
	return &Builder{
		opener:   opener,
		cases:    cases,
		contents: contents,
		verifier: verifier,
		locker:   locker,
		hasher:   hasher,
		tracer:   tracer,
		logger:   logger,
	}
}

// Build runs req to completion, failure or cancellation and reports through sink.
// The returned result is never nil. A failed build leaves nothing behind in OutputTarget
// except the destination lock file.
func (b *Builder) Build(ctx context.Context, req Request, sink ports.ProgressSink) *domain.BuildResult {
	r := &run{
		Builder: b,
		req:     req,
		sink:    sink,
		states:  domain.NewStateMachine(),
		result:  &domain.BuildResult{},
	}
	start := time.Now()
	defer func() {
		r.result.Duration = time.Since(start)
	}()
	defer r.release()

	ctx, span := b.tracer.Start(ctx, "build",
		ports.WithAttribute("case.name", req.CaseName),
		ports.WithAttribute("output", req.OutputTarget),
	)
	defer span.End()

	if err := r.execute(ctx); err != nil {
		span.RecordError(err)
		return r.fail(err)
	}
	span.SetAttribute("status", string(r.result.Status))
	return r.result
}

// run is the state of one Build call. It is only touched by the build goroutine.
type run struct {
	*Builder

	req    Request
	sink   ports.ProgressSink
	states *domain.StateMachine
	result *domain.BuildResult

	source  ports.SourceCase
	graph   *domain.Graph
	staging string
	store   ports.CaseStore
	content ports.ContentStore
	unlock  func() error
	span    ports.Span
}

func (r *run) execute(ctx context.Context) error {
	steps := []struct {
		state domain.BuildState
		name  string
		fn    func(context.Context) error
	}{
		{domain.StateValidating, "validate", r.validate},
		{domain.StateResolving, "resolve", r.resolve},
		{domain.StateResolving, "prepare", r.prepare},
		{domain.StateWriting, "write", r.write},
		{domain.StateFinalizing, "finalize", r.finalize},
	}

	for _, step := range steps {
		if err := r.enter(step.state); err != nil {
			return err
		}
		if step.state != domain.StateValidating && r.sink.IsCancelled() {
			return domain.ErrCancelled
		}

		stepCtx, span := r.tracer.Start(ctx, step.name)
		r.span = span
		err := step.fn(stepCtx)
		if err != nil {
			span.RecordError(err)
		}
		span.End()
		if err != nil {
			return err
		}
	}
	return nil
}

// enter moves the state machine. The writer drives Copying and Writing itself.
func (r *run) enter(state domain.BuildState) error {
	if state == domain.StateWriting || state == r.states.Current() {
		return nil
	}
	return r.states.Transition(state)
}

func (r *run) validate(_ context.Context) error {
	r.sink.SetStatus("validating selection")
	if err := r.req.Selection.Validate(); err != nil {
		return err
	}
	if r.req.OutputTarget == "" {
		return domain.ErrOutputPathRequired
	}
	if !r.req.Compression.Valid() {
		return domain.Annotate(domain.ErrInvalidSettings, "compression", string(r.req.Compression))
	}
	return domain.ValidateCaseName(r.req.CaseName)
}

func (r *run) resolve(ctx context.Context) error {
	r.sink.SetStatus("resolving dependencies")

	source, err := r.opener.Open(ctx, r.req.SourcePath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open source case"), "source", r.req.SourcePath)
	}
	r.source = source

	graph, err := resolver.New(source, r.logger).Resolve(ctx, r.req.Selection)
	if err != nil {
		return err
	}
	r.graph = graph

	refs := graph.Refs()
	plan := make([]string, 0, len(refs))
	for _, ref := range refs {
		plan = append(plan, ref.String())
	}
	r.tracer.EmitPlan(ctx, plan)
	r.span.SetAttribute("objects", len(refs))

	for _, u := range graph.Unresolved() {
		r.result.AddError(u.Ref, u.Err)
		r.span.RecordError(u)
	}

	r.sink.SetStatus(fmt.Sprintf("resolved %d objects", len(refs)))
	return nil
}

func (r *run) prepare(ctx context.Context) error {
	if err := os.MkdirAll(r.req.OutputTarget, domain.DirPerm); err != nil {
		return domain.Classify(domain.ErrStructural, err)
	}

	unlock, err := r.locker.Lock(domain.LockPath(r.req.OutputTarget, r.req.CaseName))
	if err != nil {
		return err
	}
	r.unlock = unlock

	final := r.req.CasePath()
	if _, err := os.Stat(final); err == nil {
		return domain.Annotate(domain.ErrDestinationExists, "path", final)
	} else if !errors.Is(err, os.ErrNotExist) {
		return domain.Classify(domain.ErrStructural, err)
	}

	// A staging directory left by a crashed build is ours to discard while we hold the lock.
	staging := domain.StagingPath(r.req.OutputTarget, r.req.CaseName)
	if err := os.RemoveAll(staging); err != nil {
		return domain.Classify(domain.ErrStructural, err)
	}
	if err := os.MkdirAll(staging, domain.DirPerm); err != nil {
		return domain.Classify(domain.ErrStructural, err)
	}
	r.staging = staging
	if err := os.WriteFile(domain.IncompleteMarkerPath(staging), nil, domain.FilePerm); err != nil {
		return domain.Classify(domain.ErrStructural, err)
	}

	info := domain.CaseInfo{
		ID:              uuid.NewString(),
		Name:            r.req.CaseName,
		SchemaVersion:   domain.SchemaVersion,
		SelectionDigest: r.hasher.SelectionDigest(r.req.Selection),
		Compression:     r.compression(),
		CreatedUnix:     time.Now().Unix(),
	}
	r.result.CaseID = info.ID

	store, err := r.cases.Create(ctx, staging, info)
	if err != nil {
		return domain.Classify(domain.ErrCaseCreateFailed, err)
	}
	r.store = store

	content, err := r.contents.New(staging, info.Compression)
	if err != nil {
		return domain.Classify(domain.ErrContentWrite, err)
	}
	r.content = content

	r.sink.SetTotal(int64(r.graph.NodeCount()))
	return nil
}

func (r *run) write(ctx context.Context) error {
	w := writer.New(cancellableSource{SourceCase: r.source, sink: r.sink}, r.store, r.content, idmap.New(), r.logger)
	written, err := w.Write(ctx, r.graph, &observer{run: r})

	r.result.ObjectsWritten = written.ObjectsWritten
	r.result.BytesCopied = written.BytesCopied
	r.result.ContentStored = written.ContentStored
	r.result.ContentDeduplicated = written.ContentDeduplicated
	r.result.Errors = append(r.result.Errors, written.Errors...)
	r.span.SetAttribute("objects.written", written.ObjectsWritten)
	r.span.SetAttribute("bytes.copied", written.BytesCopied)

	return err
}

func (r *run) finalize(ctx context.Context) error {
	r.sink.SetStatus("finalizing case")

	store := r.store
	r.store = nil
	if err := store.Close(); err != nil {
		return domain.Classify(domain.ErrCaseCloseFailed, err)
	}

	terminal := domain.StateCompleted
	if len(r.result.Errors) > 0 {
		terminal = domain.StatePartiallyCompleted
	}

	if err := r.writeManifest(terminal.Status()); err != nil {
		return err
	}
	if err := os.Remove(domain.IncompleteMarkerPath(r.staging)); err != nil {
		return domain.Classify(domain.ErrStructural, err)
	}

	report, err := r.verifier.Verify(ctx, r.staging)
	if err != nil {
		return domain.Classify(domain.ErrVerificationFailed, err)
	}
	if !report.OK() {
		return domain.Annotate(domain.ErrVerificationFailed, "problems", report.Summary())
	}

	final := r.req.CasePath()
	if err := os.Rename(r.staging, final); err != nil {
		return zerr.With(domain.Classify(domain.ErrStructural, err), "path", final)
	}
	r.staging = ""

	if err := r.states.Transition(terminal); err != nil {
		return err
	}
	r.result.Status = terminal.Status()
	r.result.CasePath = final
	r.sink.SetStatus(fmt.Sprintf("%s: %d objects, %d skipped", r.result.Status, r.result.ObjectsWritten, len(r.result.Errors)))
	r.logger.Info(fmt.Sprintf("portable case %s written to %s", r.result.CaseID, final))
	return nil
}

func (r *run) writeManifest(status domain.BuildStatus) error {
	m := domain.Manifest{
		CaseID:          r.result.CaseID,
		CaseName:        r.req.CaseName,
		Created:         time.Now().UTC(),
		SchemaVersion:   domain.SchemaVersion,
		SelectionDigest: r.hasher.SelectionDigest(r.req.Selection),
		Compression:     string(r.compression()),
		Objects:         r.result.ObjectsWritten,
		ContentFiles:    r.result.ContentStored,
		ContentBytes:    r.result.BytesCopied,
		Status:          string(status),
		SkippedObjects:  len(r.result.Errors),
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return domain.Classify(domain.ErrStructural, err)
	}
	if err := os.WriteFile(domain.ManifestPath(r.staging), append(data, '\n'), domain.FilePerm); err != nil {
		return domain.Classify(domain.ErrStructural, err)
	}
	return nil
}

func (r *run) compression() domain.Compression {
	if r.req.Compression == "" {
		return domain.CompressionNone
	}
	return r.req.Compression
}

// fail discards the staging directory and reports err as the fatal error of the build.
func (r *run) fail(err error) *domain.BuildResult {
	if errors.Is(err, context.Canceled) && !errors.Is(err, domain.ErrCancelled) {
		err = domain.Classify(domain.ErrCancelled, err)
	}

	if r.store != nil {
		_ = r.store.Close()
		r.store = nil
	}
	if r.staging != "" {
		if rmErr := os.RemoveAll(r.staging); rmErr != nil {
			r.logger.Error(zerr.With(zerr.Wrap(rmErr, "failed to remove staging directory"), "path", r.staging))
		}
		r.staging = ""
	}

	_ = r.states.Transition(domain.StateFailed)
	r.result.Status = domain.BuildFailed
	r.result.CasePath = ""
	r.result.Err = err
	r.sink.SetStatus("failed: " + err.Error())
	r.logger.Error(err)
	return r.result
}

// release closes the source and gives up the destination lock.
func (r *run) release() {
	if r.source != nil {
		_ = r.source.Close()
	}
	if r.unlock != nil {
		if err := r.unlock(); err != nil {
			r.logger.Error(zerr.Wrap(err, "failed to release destination lock"))
		}
	}
}

// observer forwards writer progress to the state machine, the sink and the write span.
type observer struct {
	run *run
	err error
}

func (o *observer) BeforeObject(domain.SourceObjectRef) error {
	if o.err != nil {
		return o.err
	}
	if o.run.sink.IsCancelled() {
		return domain.ErrCancelled
	}
	return nil
}

func (o *observer) Copying(ref domain.SourceObjectRef) {
	o.transition(domain.StateCopying)
	o.run.sink.SetStatus("copying " + ref.String())
}

func (o *observer) Writing(ref domain.SourceObjectRef) {
	o.transition(domain.StateWriting)
	o.run.sink.SetStatus("writing " + ref.String())
}

func (o *observer) AfterObject(ref domain.SourceObjectRef, err error) {
	o.run.sink.Advance(1)
	if err != nil {
		o.run.sink.SetStatus("skipped " + ref.String() + ": " + err.Error())
		o.run.span.RecordError(domain.ObjectError{Ref: ref, Err: err})
	}
}

func (o *observer) transition(state domain.BuildState) {
	if o.err != nil {
		return
	}
	o.err = o.run.states.Transition(state)
}
