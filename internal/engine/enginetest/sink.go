package enginetest

import (
	"sync"
	"sync/atomic"

	"go.trai.ch/portable/internal/core/ports"
)

var _ ports.ProgressSink = (*Sink)(nil)

// Sink is a ports.ProgressSink that records everything it is told.
type Sink struct {
	// CancelWhen, if set, requests cancellation as soon as it returns true for a status.
	CancelWhen func(status string) bool

	mu       sync.Mutex
	total    int64
	done     int64
	statuses []string

	cancelled atomic.Bool
}

// Cancel requests cancellation.
func (s *Sink) Cancel() {
	s.cancelled.Store(true)
}

// SetTotal implements ports.ProgressSink.
func (s *Sink) SetTotal(units int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = units
}

// Advance implements ports.ProgressSink.
func (s *Sink) Advance(n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done += n
}

// SetStatus implements ports.ProgressSink.
func (s *Sink) SetStatus(text string) {
	s.mu.Lock()
	s.statuses = append(s.statuses, text)
	s.mu.Unlock()
	if s.CancelWhen != nil && s.CancelWhen(text) {
		s.Cancel()
	}
}

// IsCancelled implements ports.ProgressSink.
func (s *Sink) IsCancelled() bool {
	return s.cancelled.Load()
}

// Progress returns the units advanced and the total.
func (s *Sink) Progress() (done, total int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done, s.total
}

// Statuses returns every status set so far.
func (s *Sink) Statuses() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.statuses...)
}
