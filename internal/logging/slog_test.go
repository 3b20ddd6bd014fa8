package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufLogger(level slog.Level) (*SlogLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	h := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level})
	return NewSlogLogger(slog.New(h)), buf
}

func TestSlogLogger_Levels(t *testing.T) {
	ctx := context.Background()
	l, buf := newBufLogger(slog.LevelDebug)

	l.Debug(ctx, "dbg")
	l.Info(ctx, "inf")
	l.Warn(ctx, "wrn")
	l.Error(ctx, "err")

	out := buf.String()
	assert.Contains(t, out, "dbg")
	assert.Contains(t, out, "inf")
	assert.Contains(t, out, "wrn")
	assert.Contains(t, out, "err")
}

func TestSlogLogger_WithAddsAttrs(t *testing.T) {
	ctx := context.Background()
	l, buf := newBufLogger(slog.LevelInfo)

	child := l.With("component", "session")
	child.Info(ctx, "hello")

	assert.Contains(t, buf.String(), "component=session")
}

func TestSlogLogger_LevelFiltering(t *testing.T) {
	ctx := context.Background()
	l, buf := newBufLogger(slog.LevelWarn)

	l.Info(ctx, "should not appear")
	l.Warn(ctx, "should appear")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "should appear")
}
