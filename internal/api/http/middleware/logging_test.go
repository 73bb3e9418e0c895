package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkulagin/notable/internal/logger"
)

func TestLogging_RecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	l := &logger.Logger{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	rec := httptest.NewRecorder()

	NewLogging(l).Handle(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusTeapot, rec.Code)
	out := buf.String()
	require.Contains(t, out, "method=GET")
	require.Contains(t, out, "path=/api/notes")
	require.Contains(t, out, "status=418")
}

func TestLogging_DefaultsToOK(t *testing.T) {
	var buf bytes.Buffer
	l := &logger.Logger{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	NewLogging(l).Handle(next).ServeHTTP(rec, req)

	require.Contains(t, buf.String(), "status=200")
}
