package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHandler captures log records for testing.
type testHandler struct {
	buf   *bytes.Buffer
	level slog.Level
	attrs []slog.Attr
}

func newTestHandler() *testHandler {
	return &testHandler{
		buf:   &bytes.Buffer{},
		level: slog.LevelDebug,
	}
}

func (h *testHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *testHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}

	for _, attr := range h.attrs {
		data[attr.Key] = attr.Value.Any()
	}

	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})

	enc := json.NewEncoder(h.buf)
	return enc.Encode(data)
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := &testHandler{
		buf:   h.buf,
		level: h.level,
		attrs: make([]slog.Attr, len(h.attrs)+len(attrs)),
	}
	copy(newH.attrs, h.attrs)
	copy(newH.attrs[len(h.attrs):], attrs)
	return newH
}

func (h *testHandler) WithGroup(_ string) slog.Handler {
	return h
}

// lastRecord decodes the most recent log line into a map.
func lastRecord(t *testing.T, h *testHandler) map[string]any {
	lines := strings.Split(strings.TrimSpace(h.buf.String()), "\n")
	require.NotEmpty(t, lines)

	var data map[string]any
	err := json.Unmarshal([]byte(lines[len(lines)-1]), &data)
	require.NoError(t, err)
	return data
}

func TestEnrichLogger(t *testing.T) {
	t.Run("adds document id", func(t *testing.T) {
		h := newTestHandler()
		logger := EnrichLogger(slog.New(h), "doc-42")
		require.NotNil(t, logger)

		logger.Info("hello")

		data := lastRecord(t, h)
		assert.Equal(t, "doc-42", data["document_id"])
	})

	t.Run("nil logger returns nil", func(t *testing.T) {
		assert.Nil(t, EnrichLogger(nil, "doc-42"))
	})
}

func TestLogConvertStart(t *testing.T) {
	h := newTestHandler()
	LogConvertStart(slog.New(h), 5)

	data := lastRecord(t, h)
	assert.Equal(t, "conversion starting", data["msg"])
	assert.Equal(t, float64(5), data["events"])

	// Nil logger must not panic.
	LogConvertStart(nil, 5)
}

func TestLogGraphCollapsed(t *testing.T) {
	h := newTestHandler()
	LogGraphCollapsed(slog.New(h), 4, 3)

	data := lastRecord(t, h)
	assert.Equal(t, "aggregation events collapsed", data["msg"])
	assert.Equal(t, float64(4), data["events_before"])
	assert.Equal(t, float64(3), data["events_after"])

	LogGraphCollapsed(nil, 4, 3)
}

func TestLogConvertComplete(t *testing.T) {
	h := newTestHandler()
	LogConvertComplete(slog.New(h), 12.5, 2, 3, 1)

	data := lastRecord(t, h)
	assert.Equal(t, "conversion completed", data["msg"])
	assert.Equal(t, 12.5, data["duration_ms"])
	assert.Equal(t, float64(2), data["stations"])
	assert.Equal(t, float64(3), data["deliveries"])
	assert.Equal(t, float64(1), data["delivery_relations"])

	LogConvertComplete(nil, 12.5, 2, 3, 1)
}

func TestLogConvertError(t *testing.T) {
	h := newTestHandler()
	LogConvertError(slog.New(h), errors.New("bad document"), 3.0)

	data := lastRecord(t, h)
	assert.Equal(t, "conversion failed", data["msg"])
	assert.Equal(t, "bad document", data["error"])

	LogConvertError(nil, errors.New("bad document"), 3.0)
}

func TestTimedOperation(t *testing.T) {
	elapsed := TimedOperation()
	assert.GreaterOrEqual(t, elapsed(), float64(0))
}
