package log

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl.Level())

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestInitLog(t *testing.T) {
	logger := InitLog(zap.NewAtomicLevelAt(zapcore.WarnLevel))
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestLoggerMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(Logger(zap.New(core), "http"))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("fine")) })
	r.Get("/bad", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadRequest) })
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) })

	tests := []struct {
		path  string
		level zapcore.Level
	}{
		{"/healthz", zapcore.DebugLevel},
		{"/ok", zapcore.InfoLevel},
		{"/bad", zapcore.WarnLevel},
		{"/boom", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))
			entries := logs.TakeAll()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)
			assert.Equal(t, "http", entries[0].LoggerName)
			assert.Equal(t, "HTTP request completed: "+tt.path, entries[0].Message)
			assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
		})
	}
}

func TestLoggerMiddleware_NilPanics(t *testing.T) {
	assert.Panics(t, func() { Logger(nil, "x") })
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "200 OK", statusLabel(200))
	assert.Equal(t, "302 Redirect", statusLabel(302))
	assert.Equal(t, "404 Client Error", statusLabel(404))
	assert.Equal(t, "503 Server Error", statusLabel(503))
	assert.Equal(t, "0 Unknown", statusLabel(0))
}
