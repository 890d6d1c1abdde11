package progrock

import (
	"io"

	"github.com/vito/progrock"
)

// Factory creates one Sink per build, all recording on the same writer.
type Factory struct {
	w    progrock.Writer
	rec  *progrock.Recorder
	echo io.Writer
}

// New creates a Factory recording on a fresh tape. echo may be nil.
func New(echo io.Writer) *Factory {
	return NewFactory(progrock.NewTape(), echo)
}

// NewFactory creates a Factory recording on w.
func NewFactory(w progrock.Writer, echo io.Writer) *Factory {
	return &Factory{w: w, rec: progrock.NewRecorder(w), echo: echo}
}

// Sink starts a vertex for a build named name.
func (f *Factory) Sink(name string) *Sink {
	return NewSink(f.rec, name, f.echo)
}

// Close flushes and closes the recording session.
func (f *Factory) Close() error {
	return f.w.Close()
}
