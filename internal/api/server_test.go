package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dhima/synclog/internal/api/middleware"
	"github.com/dhima/synclog/internal/logging"
	"github.com/dhima/synclog/internal/logs"
	"github.com/dhima/synclog/internal/retention"
	"github.com/dhima/synclog/internal/settings"
	"github.com/dhima/synclog/internal/testutil/fakes"
	"github.com/dhima/synclog/pkg/clock"
	"github.com/dhima/synclog/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := logging.NewNoOpLogger()
	options := fakes.NewFakeOptionStore()
	options.Values["object_sync_logging_enable"] = "1"
	options.Values["object_sync_statuses_to_log"] = `["error"]`
	settingsSvc := settings.NewService(options, "", logger)

	registry := retention.NewRegistry(retention.Defaults{})
	manager := logs.NewManager(context.Background(), fakes.NewFakeRecordStore(nil), settingsSvc, registry, logger)

	cfg := config.App{Environment: "test", APIPort: "0", CORSOrigins: []string{"*"}}
	return NewServer(cfg, logger, Dependencies{
		Logs:      manager,
		LogTypes:  registry,
		Settings:  settingsSvc,
		Retention: retention.PolicyView{Registry: registry, Schedule: "@hourly"},
		Clock:     clock.NewFixed(time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)),
	})
}

func TestNewServer_WhenBuilt_ThenRoutesAreRegistered(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/v1/log-types", http.StatusOK},
		{http.MethodGet, "/api/v1/logs?object_id=1", http.StatusOK},
		{http.MethodGet, "/api/v1/logs/count?object_id=1", http.StatusOK},
		{http.MethodGet, "/api/v1/settings", http.StatusOK},
		{http.MethodGet, "/api/v1/retention", http.StatusOK},
		{http.MethodGet, "/api/v1/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestNewServer_WhenRequestServed_ThenEchoesRequestID(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-42")

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, "trace-42", w.Header().Get(middleware.RequestIDHeader))
}

func TestNewServer_WhenPreflightRequest_ThenAllowsConfiguredOrigin(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/settings", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServe_WhenContextCancelled_ThenShutsDown(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
