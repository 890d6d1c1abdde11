package ports

// ProgressSink receives progress from a running build.
// Every method is safe to call concurrently with the build.
//
//go:generate go run go.uber.org/mock/mockgen -source=sink.go -destination=mocks/mock_sink.go -package=mocks
type ProgressSink interface {
	// SetTotal sets the number of units the build will advance through.
	SetTotal(units int64)
	// Advance moves progress forward by n units.
	Advance(n int64)
	// SetStatus replaces the current status text.
	SetStatus(text string)
	// IsCancelled reports whether the user asked the build to stop. It is polled, never signaled.
	IsCancelled() bool
}
