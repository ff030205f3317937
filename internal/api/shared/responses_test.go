package shared_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/pawscout-api/internal/api/shared"
	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
)

func TestRespondWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	shared.RespondWithJSON(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusCreated, map[string]int{"id": 3})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":3}`, rec.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	buf, log := logger.NewTestLogger(t)
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/animals/3", nil)
	ctx := logger.WithContext(shared.SetTraceID(req.Context(), "trace-9"), log)
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	cause := errors.New(`dial postgres://pawscout:hunter2@db:5432/pawscout failed`)
	shared.RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "Failed to delete animal", cause)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to delete animal","trace_id":"trace-9"}`, rec.Body.String())

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ERROR", entries[0]["level"])
	assert.Equal(t, "trace-9", entries[0]["trace_id"])
	assert.Equal(t, float64(http.StatusInternalServerError), entries[0]["status_code"])
	assert.NotContains(t, entries[0]["error"], "hunter2")
}

func TestRespondWithErrorAndLog_Levels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		opts   []shared.ResponseOption
		level  string
	}{
		{name: "client error", status: http.StatusNotFound, level: "DEBUG"},
		{name: "elevated client error", status: http.StatusUnauthorized, opts: []shared.ResponseOption{shared.WithElevatedLogLevel()}, level: "WARN"},
		{name: "server error", status: http.StatusInternalServerError, level: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, log := logger.NewTestLogger(t)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(logger.WithContext(req.Context(), log))

			shared.RespondWithErrorAndLog(httptest.NewRecorder(), req, tt.status, "x", nil, tt.opts...)

			entries, err := buf.GetLogEntries()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0]["level"])
			_, hasError := entries[0]["error"]
			assert.False(t, hasError)
		})
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()

	_, ok := shared.AccountFromContext(ctx)
	assert.False(t, ok)

	account := &domain.Account{ID: 4, Email: "ada@example.com"}
	got, ok := shared.AccountFromContext(shared.WithAccount(ctx, account))
	require.True(t, ok)
	assert.Same(t, account, got)

	assert.Empty(t, shared.GetTraceID(ctx))
	generated := shared.GetTraceID(shared.SetTraceID(ctx, ""))
	assert.Len(t, generated, 36)
	assert.True(t, strings.Count(generated, "-") == 4)
	assert.Equal(t, "given", shared.GetTraceID(shared.SetTraceID(ctx, "given")))
}
