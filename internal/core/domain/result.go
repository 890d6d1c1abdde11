package domain

import (
	"errors"
	"time"
)

// BuildStatus is the terminal outcome of a build.
type BuildStatus string

const (
	// BuildCompleted means every resolved object was written and the case verified.
	BuildCompleted BuildStatus = "completed"
	// BuildPartiallyCompleted means the case is sound but some objects were skipped.
	BuildPartiallyCompleted BuildStatus = "partially_completed"
	// BuildFailed means no usable case was produced.
	BuildFailed BuildStatus = "failed"
)

// ObjectError pairs an object with the reason it was not written.
type ObjectError struct {
	Ref SourceObjectRef
	Err error
}

// Error implements error.
func (e ObjectError) Error() string {
	return e.Ref.String() + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e ObjectError) Unwrap() error {
	return e.Err
}

// BuildResult is the authoritative summary of a build.
type BuildResult struct {
	Status BuildStatus
	// CasePath is the published portable case directory. Empty unless the build completed.
	CasePath string
	// CaseID is the uuid minted for the portable case.
	CaseID string
	// ObjectsWritten counts records written to the destination schema store.
	ObjectsWritten int
	// BytesCopied counts payload bytes stored, excluding deduplicated copies.
	BytesCopied int64
	// ContentStored counts distinct payloads in the content area.
	ContentStored int
	// ContentDeduplicated counts payload copies avoided by deduplication.
	ContentDeduplicated int
	// Errors lists every object that was skipped or failed, in the order encountered.
	Errors []ObjectError
	// Err is the fatal error for a failed build.
	Err error
	// Duration is the wall time spent in the build.
	Duration time.Duration
}

// AddError records a per-object failure.
func (r *BuildResult) AddError(ref SourceObjectRef, err error) {
	r.Errors = append(r.Errors, ObjectError{Ref: ref, Err: err})
}

// Failed returns the refs of every object listed in Errors.
func (r *BuildResult) Failed() []SourceObjectRef {
	refs := make([]SourceObjectRef, 0, len(r.Errors))
	for _, e := range r.Errors {
		refs = append(refs, e.Ref)
	}
	return refs
}

// FailedWith reports whether ref is listed with an error matching target.
func (r *BuildResult) FailedWith(ref SourceObjectRef, target error) bool {
	for _, e := range r.Errors {
		if e.Ref == ref && errors.Is(e.Err, target) {
			return true
		}
	}
	return false
}

// Succeeded reports whether a usable case was produced.
func (r *BuildResult) Succeeded() bool {
	return r.Status == BuildCompleted || r.Status == BuildPartiallyCompleted
}
