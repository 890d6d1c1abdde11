package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/portable/internal/adapters/logger"
	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(l *logger.Logger)
		level string
		msg   string
	}{
		{
			name:  "Info",
			log:   func(l *logger.Logger) { l.Info("copying content for file 10") },
			level: "level=INFO",
			msg:   "copying content for file 10",
		},
		{
			name:  "Warn",
			log:   func(l *logger.Logger) { l.Warn("export cancelled, waiting for builder") },
			level: "level=WARN",
			msg:   "export cancelled, waiting for builder",
		},
		{
			name:  "Error",
			log:   func(l *logger.Logger) { l.Error(zerr.New("source case is locked")) },
			level: "level=ERROR",
			msg:   "source case is locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(logger.NewWithWriter(&buf))

			out := buf.String()
			assert.Contains(t, out, tt.level)
			assert.Contains(t, out, tt.msg)
		})
	}
}

func TestLogger_ErrorCarriesMetadata(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf)

	l.Error(domain.Annotate(domain.ErrUnknownHashSet, "hash_set_id", int64(9)))

	out := buf.String()
	assert.Contains(t, out, `msg="operation failed"`)
	assert.Contains(t, out, domain.ErrUnknownHashSet.Error())
	assert.Contains(t, out, "hash_set_id=9")
}

func TestLogger_DebugToggle(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf)

	l.Debug("resolving tag 30")
	assert.Empty(t, buf.String())

	l.SetDebug(true)
	l.Debug("resolving tag 30")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "resolving tag 30")

	buf.Reset()
	l.SetDebug(false)
	l.Debug("resolving tag 31")
	assert.Empty(t, buf.String())
}

func TestLogger_SetOutputKeepsLevel(t *testing.T) {
	var first, second bytes.Buffer
	l := logger.NewWithWriter(&first)
	l.SetDebug(true)

	l.SetOutput(&second)
	l.Debug("writing manifest")

	assert.Empty(t, first.String())
	assert.Contains(t, second.String(), "writing manifest")
}

func TestNew(t *testing.T) {
	assert.NotNil(t, logger.New())
}
