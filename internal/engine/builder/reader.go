package builder

import (
	"context"
	"io"

	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
)

// pollInterval is how many payload bytes are streamed between cancellation polls.
const pollInterval = 1 << 20

// cancellableSource makes long payload copies interruptible by polling the sink.
type cancellableSource struct {
	ports.SourceCase
	sink ports.ProgressSink
}

func (s cancellableSource) OpenContent(ctx context.Context, ref domain.SourceObjectRef) (io.ReadCloser, error) {
	rc, err := s.SourceCase.OpenContent(ctx, ref)
	if err != nil {
		return nil, err
	}
	return &cancellableReader{ReadCloser: rc, sink: s.sink}, nil
}

type cancellableReader struct {
	io.ReadCloser
	sink      ports.ProgressSink
	unchecked int
}

func (r *cancellableReader) Read(p []byte) (int, error) {
	if r.unchecked >= pollInterval {
		r.unchecked = 0
		if r.sink.IsCancelled() {
			return 0, domain.ErrCancelled
		}
	}
	n, err := r.ReadCloser.Read(p)
	r.unchecked += n
	return n, err
}
