package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/flashdeck/internal/logger"
)

func newBufferLogger(level logger.Level) (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logger.New(
		logger.WithOutput(&buf),
		logger.WithLevel(level),
		logger.WithColors(false),
		logger.WithCaller(false),
	)
	return l, &buf
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	log, buf := newBufferLogger(logger.WARN)

	log.Debug("debug line")
	log.Info("info line")
	log.Warn("warn line")
	log.Error("error %d", 42)

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.NotContains(t, out, "info line")
	assert.Contains(t, out, "WARN  warn line")
	assert.Contains(t, out, "ERROR error 42")
}

func TestLogger_PrefixAndSortedFields(t *testing.T) {
	log, buf := newBufferLogger(logger.DEBUG)

	log.WithPrefix("scheduler").
		WithFields(map[string]any{"zeta": 1, "alpha": "a"}).
		WithField("mid", true).
		Info("queued")

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "[scheduler] queued alpha=a mid=true zeta=1")
}

func TestLogger_DerivedDoesNotMutateParent(t *testing.T) {
	log, buf := newBufferLogger(logger.DEBUG)

	_ = log.WithField("request_id", "abc")
	log.Info("plain")

	assert.NotContains(t, buf.String(), "request_id")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.Level
		ok   bool
	}{
		{"debug", logger.DEBUG, true},
		{"INFO", logger.INFO, true},
		{"warning", logger.WARN, true},
		{"Error", logger.ERROR, true},
		{"loud", logger.INFO, false},
		{"", logger.INFO, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.in))
			assert.Equal(t, tt.ok, logger.ValidLevel(tt.in))
		})
	}
}

func TestFromContext(t *testing.T) {
	log, _ := newBufferLogger(logger.DEBUG)
	scoped := log.WithPrefix("req")

	ctx := logger.NewContext(context.Background(), scoped)

	assert.Same(t, scoped, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
