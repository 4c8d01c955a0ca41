package ucdchart

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l.WithComponent("test").WithChunk(3).WithCodePoint(0x41).Info("hello")
	out := buf.String()
	assert.Contains(t, out, `"component":"test"`)
	assert.Contains(t, out, `"chunk":3`)
	assert.Contains(t, out, `"code_point":"U+0041"`)

	buf.Reset()
	l.LogLookup(context.Background(), 0x41, errors.New("boom"))
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), "lookup failed")

	buf.Reset()
	l.LogIndex(context.Background(), "gc-index.binpb", false, nil)
	assert.Contains(t, buf.String(), "category index not found")
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.NotPanics(t, func() {
		l.LogList(context.Background(), "gc=Lu", 1, nil)
	})
}
