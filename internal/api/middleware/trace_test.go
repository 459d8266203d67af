package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/promptchain/internal/api/shared"
	"github.com/phrazzld/promptchain/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	buf, log := logger.SetupTestLogger(t)

	var seenTrace string
	handler := TraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTrace = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Len(t, seenTrace, 32)
		assert.Equal(t, seenTrace, rec.Header().Get(shared.TraceIDHeader))

		entries, err := buf.GetLogEntries()
		require.NoError(t, err)
		var found bool
		for _, e := range entries {
			if e["msg"] == "inside handler" {
				found = true
				assert.Equal(t, seenTrace, e["trace_id"])
			}
		}
		assert.True(t, found)
	})

	t.Run("honors a well-formed incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(shared.TraceIDHeader, "abc-123_DEF")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123_DEF", seenTrace)
	})

	t.Run("replaces a malformed incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(shared.TraceIDHeader, "bad id\n")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Len(t, seenTrace, 32)
		assert.NotEqual(t, "bad id\n", seenTrace)
	})
}
