package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: LevelTrace}))
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	return entry
}

func TestFromContext(t *testing.T) {
	scoped := slog.New(slog.NewTextHandler(io.Discard, nil))
	fallback := slog.New(slog.NewJSONHandler(io.Discard, nil))

	assert.Equal(t, defaultLogger, FromContext(nil)) //nolint:staticcheck // nil guard
	assert.Equal(t, defaultLogger, FromContext(context.Background()))
	assert.Equal(t, scoped, FromContext(WithContext(context.Background(), scoped)))

	assert.Equal(t, fallback, FromContextOr(nil, fallback)) //nolint:staticcheck // nil guard
	assert.Equal(t, fallback, FromContextOr(context.Background(), fallback))
	assert.Equal(t, scoped, FromContextOr(WithContext(context.Background(), scoped), fallback))
}

func TestRequestScopedIDs(t *testing.T) {
	tests := []struct {
		key  string
		with func(context.Context, string) context.Context
	}{
		{key: "request_id", with: WithRequestID},
		{key: "trace_id", with: WithTraceID},
		{key: "correlation_id", with: WithCorrelationID},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			var buf bytes.Buffer

			ctx := tt.with(WithContext(context.Background(), jsonLogger(&buf)), "id-42")
			FromContext(ctx).InfoContext(ctx, "quiz fetched")

			assert.Equal(t, "id-42", decodeEntry(t, &buf)[tt.key])
		})
	}
}

func TestSetDefault(t *testing.T) {
	original := defaultLogger
	t.Cleanup(func() { SetDefault(original) })

	custom := slog.New(slog.NewTextHandler(io.Discard, nil))
	SetDefault(custom)

	assert.Equal(t, custom, FromContext(context.Background()))
	assert.Equal(t, custom, slog.Default())
}

func TestNewWithWriter_Formats(t *testing.T) {
	tests := []struct {
		format      string
		wantService bool
	}{
		{format: "json", wantService: true},
		{format: "text", wantService: true},
		{format: "pretty"},
		{format: "unknown-falls-back-to-json", wantService: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer

			logger := NewWithWriter(&Config{Level: "info", Format: tt.format, Service: "quizapi", Version: "1.2.3"}, &buf)

			logger.Debug("hidden at info")
			logger.Info("quiz created", slog.Int64("quiz_id", 1))

			out := buf.String()
			assert.Contains(t, out, "quiz created")
			assert.NotContains(t, out, "hidden at info")

			if tt.wantService {
				assert.Contains(t, out, "quizapi")
				assert.Contains(t, out, "1.2.3")
			}
		})
	}
}

func TestNewWithWriter_TraceLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&Config{Level: "trace", Format: "json"}, &buf)

	logger.Log(context.Background(), LevelTrace, "row scanned", slog.Int64("quiz_id", 7))

	assert.Contains(t, buf.String(), "row scanned")
}

func TestNewWithWriter_RollingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizapi.log")

	var buf bytes.Buffer
	logger := NewWithWriter(&Config{
		Level:  "info",
		Format: "pretty",
		File:   FileConfig{Enabled: true, Path: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1},
	}, &buf)

	logger.Info("quiz deleted", slog.String("dsn", "postgres://quiz:hunter2@db:5432/quiz"))

	assert.Contains(t, buf.String(), "quiz deleted")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"quiz deleted"`, "the file is always JSON")
	assert.NotContains(t, string(content), "hunter2")
}

func TestRedaction(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		value  string
		secret string
	}{
		{name: "database dsn", key: "dsn", value: "host=db password=hunter2", secret: "hunter2"},
		{name: "cache password", key: "cache_password", value: "s3cret", secret: "s3cret"},
		{name: "credential url under any key", key: "target", value: "postgres://quiz:hunter2@db/quiz", secret: "hunter2"},
		{name: "key value dsn under any key", key: "conn", value: "host=db password=hunter2 dbname=quiz", secret: "hunter2"},
		{name: "bearer header", key: "header", value: "Bearer abc.def", secret: "abc.def"},
		{name: "jwt", key: "subject", value: "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.c2ln", secret: "eyJzdWIiOiIxIn0"},
		{name: "secret prefix", key: "secret_salt", value: "pepper", secret: "pepper"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(&Config{Level: "info", Format: "json"}, &buf)

			logger.Info("configured", slog.String(tt.key, tt.value), slog.String("title", "Capitals"))

			assert.NotContains(t, buf.String(), tt.secret)
			assert.Equal(t, "Capitals", decodeEntry(t, &buf)["title"], "ordinary fields are kept")
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"trace":   LevelTrace,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for input, want := range tests {
		assert.Equal(t, want, parseLevel(input), "input %q", input)
	}
}

func TestSlogToCharmLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, slogToCharmLevel(LevelTrace))
	assert.Equal(t, log.DebugLevel, slogToCharmLevel(slog.LevelDebug))
	assert.Equal(t, log.InfoLevel, slogToCharmLevel(slog.LevelInfo))
	assert.Equal(t, log.WarnLevel, slogToCharmLevel(slog.LevelWarn))
	assert.Equal(t, log.ErrorLevel, slogToCharmLevel(slog.LevelError+4))
}

// failingHandler accepts everything and fails every write.
type failingHandler struct{ err error }

func (h failingHandler) Enabled(context.Context, slog.Level) bool   { return true }
func (h failingHandler) Handle(context.Context, slog.Record) error { return h.err } //nolint:gocritic // interface
func (h failingHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h failingHandler) WithGroup(string) slog.Handler             { return h }

func TestMultiHandler(t *testing.T) {
	var infoBuf, debugBuf bytes.Buffer

	h := NewMultiHandler(
		slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	ctx := context.Background()

	assert.True(t, h.Enabled(ctx, slog.LevelDebug))
	assert.False(t, h.Enabled(ctx, LevelTrace))

	logger := slog.New(h).WithGroup("quiz").With(slog.Int64("id", 3))
	logger.Debug("cache miss")
	logger.Info("quiz updated")

	assert.NotContains(t, infoBuf.String(), "cache miss")
	assert.Contains(t, infoBuf.String(), `"quiz":{"id":3}`)
	assert.Contains(t, debugBuf.String(), "cache miss")
	assert.Contains(t, debugBuf.String(), "quiz updated")
}

func TestMultiHandler_JoinsSinkErrors(t *testing.T) {
	var buf bytes.Buffer

	errDisk := errors.New("disk full")
	errPipe := errors.New("broken pipe")

	h := NewMultiHandler(failingHandler{err: errDisk}, slog.NewJSONHandler(&buf, nil), failingHandler{err: errPipe})

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "quiz created", 0))

	require.ErrorIs(t, err, errDisk)
	require.ErrorIs(t, err, errPipe)
	assert.Contains(t, buf.String(), "quiz created", "healthy sinks still receive the record")
}
