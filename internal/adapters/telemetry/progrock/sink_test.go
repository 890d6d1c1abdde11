package progrock_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vprogrock "github.com/vito/progrock"
	"go.trai.ch/portable/internal/adapters/telemetry/progrock"
	"go.trai.ch/portable/internal/core/domain"
)

// captureWriter keeps every status update written to it.
type captureWriter struct {
	mu      sync.Mutex
	updates []*vprogrock.StatusUpdate
	closed  bool
}

func (w *captureWriter) WriteStatus(u *vprogrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.updates = append(w.updates, u)
	return nil
}

func (w *captureWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

// last returns the latest state of the vertex named name.
func (w *captureWriter) last(name string) *vprogrock.Vertex {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out *vprogrock.Vertex
	for _, u := range w.updates {
		for _, v := range u.Vertexes {
			if v.Name == name {
				out = v
			}
		}
	}
	return out
}

func TestSink_Progress(t *testing.T) {
	var echo strings.Builder
	f := progrock.NewFactory(&captureWriter{}, &echo)
	sink := f.Sink("Case-Export")

	sink.SetTotal(3)
	sink.Advance(1)
	sink.SetStatus("copying file:10")
	sink.Advance(2)

	done, total := sink.Progress()
	assert.Equal(t, int64(3), done)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, "copying file:10", sink.Status())
	assert.Equal(t, "[1/3] copying file:10\n", echo.String())
}

// lastTask returns the latest state of the task named name.
func (w *captureWriter) lastTask(name string) *vprogrock.VertexTask {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out *vprogrock.VertexTask
	for _, u := range w.updates {
		for _, task := range u.Tasks {
			if task.Name == name {
				out = task
			}
		}
	}
	return out
}

func TestSink_RecordsUnitsWithoutStatus(t *testing.T) {
	w := &captureWriter{}
	sink := progrock.NewFactory(w, nil).Sink("Case-Export")

	sink.SetTotal(9)
	task := w.lastTask("objects")
	require.NotNil(t, task)
	assert.Equal(t, int64(9), task.Total)
	assert.Zero(t, task.Current)

	sink.Advance(1)
	sink.Advance(3)
	task = w.lastTask("objects")
	assert.Equal(t, int64(4), task.Current)
	assert.Equal(t, int64(9), task.Total)
	assert.Nil(t, task.Completed)

	sink.Complete(&domain.BuildResult{Status: domain.BuildCompleted})
	sink.Advance(5)
	task = w.lastTask("objects")
	assert.NotNil(t, task.Completed)
	assert.Equal(t, int64(4), task.Current)
}

func TestSink_Cancel(t *testing.T) {
	sink := progrock.NewFactory(&captureWriter{}, nil).Sink("Case-Export")
	assert.False(t, sink.IsCancelled())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sink.Cancel()
	}()
	wg.Wait()

	assert.True(t, sink.IsCancelled())
}

func TestSink_CompleteRecordsOutcome(t *testing.T) {
	w := &captureWriter{}
	f := progrock.NewFactory(w, nil)

	ok := f.Sink("ok")
	ok.Complete(&domain.BuildResult{Status: domain.BuildPartiallyCompleted})
	failed := f.Sink("failed")
	failed.Complete(&domain.BuildResult{Status: domain.BuildFailed, Err: domain.ErrCancelled})

	v := w.last("ok")
	require.NotNil(t, v)
	assert.NotNil(t, v.Completed)
	assert.Nil(t, v.Error)

	v = w.last("failed")
	require.NotNil(t, v)
	assert.NotNil(t, v.Completed)
	require.NotNil(t, v.Error)
	assert.Contains(t, *v.Error, "build cancelled")

	// Completing twice and updating status afterwards are harmless.
	failed.Complete(&domain.BuildResult{Status: domain.BuildCompleted})
	failed.SetStatus("late")
	assert.Equal(t, "late", failed.Status())

	require.NoError(t, f.Close())
	assert.True(t, w.closed)
}

func TestNew(t *testing.T) {
	f := progrock.New(nil)
	assert.NotNil(t, f)
	assert.NotNil(t, f.Sink("build"))
}
