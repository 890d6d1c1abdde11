// Package progrock renders build progress on a progrock tape.
package progrock

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
)

var _ ports.ProgressSink = (*Sink)(nil)

// Sink implements ports.ProgressSink with one progrock vertex per build.
// Units of work are recorded on an "objects" progress task of the vertex. Status
// changes are written to the vertex and, when set, echoed to an extra writer.
type Sink struct {
	vertex *progrock.VertexRecorder
	task   *progrock.TaskRecorder
	echo   io.Writer

	total     atomic.Int64
	done      atomic.Int64
	cancelled atomic.Bool

	mu     sync.Mutex
	status string
	closed bool
}

// NewSink starts a vertex named name on rec. echo may be nil.
func NewSink(rec *progrock.Recorder, name string, echo io.Writer) *Sink {
	vertex := rec.Vertex(digest.FromString(name), name)
	return &Sink{
		vertex: vertex,
		task:   vertex.ProgressTask(0, "objects"),
		echo:   echo,
	}
}

// SetTotal implements ports.ProgressSink.
func (s *Sink) SetTotal(units int64) {
	s.total.Store(units)
	s.recordProgress()
}

// Advance implements ports.ProgressSink.
func (s *Sink) Advance(n int64) {
	s.done.Add(n)
	s.recordProgress()
}

func (s *Sink) recordProgress() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.task.Progress(s.done.Load(), s.total.Load())
}

// SetStatus implements ports.ProgressSink.
func (s *Sink) SetStatus(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = text
	if s.closed {
		return
	}
	line := fmt.Sprintf("[%d/%d] %s\n", s.done.Load(), s.total.Load(), text)
	_, _ = io.WriteString(s.vertex.Stdout(), line)
	if s.echo != nil {
		_, _ = io.WriteString(s.echo, line)
	}
}

// IsCancelled implements ports.ProgressSink.
func (s *Sink) IsCancelled() bool {
	return s.cancelled.Load()
}

// Cancel asks the build to stop at its next poll.
func (s *Sink) Cancel() {
	s.cancelled.Store(true)
}

// Progress returns the units done and the total.
func (s *Sink) Progress() (done, total int64) {
	return s.done.Load(), s.total.Load()
}

// Status returns the last status text.
func (s *Sink) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Complete marks the vertex finished with the outcome of result.
// Later status changes are kept but no longer recorded.
func (s *Sink) Complete(result *domain.BuildResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.task.Complete()

	if result.Status == domain.BuildFailed {
		err := result.Err
		if err == nil {
			err = domain.ErrExportFailed
		}
		s.vertex.Done(err)
		return
	}
	s.vertex.Done(nil)
}
