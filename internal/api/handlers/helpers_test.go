package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dhima/synclog/internal/logging"
	"github.com/dhima/synclog/internal/logs"
	"github.com/dhima/synclog/internal/retention"
	"github.com/dhima/synclog/internal/testutil/fakes"
	"github.com/dhima/synclog/pkg/clock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func testNow() time.Time { return time.Date(2025, 11, 5, 10, 30, 0, 0, time.UTC) }

type apiFixture struct {
	router   *gin.Engine
	store    *fakes.FakeRecordStore
	settings *fakes.FakeSettings
	registry *retention.Registry
	manager  *logs.Manager
}

// newAPIFixture wires handlers around a real log manager backed by in-memory fakes.
func newAPIFixture(t *testing.T, settings *fakes.FakeSettings) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := fakes.NewFakeRecordStore(clock.NewFixed(testNow()))
	registry := retention.NewRegistry(retention.Defaults{})
	logger := logging.NewNoOpLogger()
	manager := logs.NewManager(context.Background(), store, settings, registry, logger)

	router := gin.New()
	logHandler := NewLogHandler(logger, manager, registry)
	router.GET("/api/v1/logs", logHandler.ListLogs)
	router.GET("/api/v1/logs/count", logHandler.CountLogs)
	router.GET("/api/v1/log-types", logHandler.ListLogTypes)
	router.POST("/api/v1/logs/events", NewIngestHandler(logger, manager).LogEvent)
	router.GET("/api/v1/retention", NewRetentionHandler(logger, retention.PolicyView{Registry: registry, Schedule: "@hourly"}, clock.NewFixed(testNow())).GetPolicy)

	return &apiFixture{
		router:   router,
		store:    store,
		settings: settings,
		registry: registry,
		manager:  manager,
	}
}

func (f *apiFixture) do(method, target string, body []byte) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the envelope's data member into out.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
