package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/pawscout-api/internal/api/middleware"
	"github.com/phrazzld/pawscout-api/internal/api/shared"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
)

func TestTraceMiddleware(t *testing.T) {
	t.Run("request logger carries the trace ID", func(t *testing.T) {
		buf, base := logger.NewTestLogger(t)
		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = shared.GetTraceID(r.Context())
			logger.FromContext(r.Context()).Info("handled")
		})

		rec := httptest.NewRecorder()
		middleware.NewTraceMiddleware(base)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(middleware.TraceHeader))

		entries, err := buf.GetLogEntries()
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		last := entries[len(entries)-1]
		assert.Equal(t, "handled", last["msg"])
		assert.Equal(t, seen, last["trace_id"])
	})

	t.Run("reuses the chi request ID", func(t *testing.T) {
		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = shared.GetTraceID(r.Context())
		})
		h := chimw.RequestID(middleware.NewTraceMiddleware(nil)(next))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(chimw.RequestIDHeader, "req-123")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", rec.Header().Get(middleware.TraceHeader))
	})
}
