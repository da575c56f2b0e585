package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(ctx context.Context) error {
	return f.err
}

type fakeQuarantineCounter struct {
	count int
	err   error
}

func (f *fakeQuarantineCounter) CountSince(ctx context.Context, since time.Time) (int, error) {
	return f.count, f.err
}

func TestHandleHealth(t *testing.T) {
	server := NewServer(Config{ServiceName: "ingestion", Version: "1.2.3", Commit: "abc123"})

	rec := httptest.NewRecorder()
	server.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "ingestion", body.Service)
	assert.Equal(t, "1.2.3", body.Version)
}

func TestHandleReadyNotReadyBeforeBackfill(t *testing.T) {
	server := NewServer(Config{ServiceName: "ingestion", DB: &fakePinger{}})

	rec := httptest.NewRecorder()
	server.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body readyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_ready", body.Status)
	assert.Equal(t, "not_ready", body.Checks["service"])
	assert.Equal(t, "ok", body.Checks["database"])
}

func TestHandleReadyDatabaseFailure(t *testing.T) {
	server := NewServer(Config{ServiceName: "ingestion", DB: &fakePinger{err: fmt.Errorf("connection refused")}})
	server.SetReady(true)

	rec := httptest.NewRecorder()
	server.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body readyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Checks["database"], "connection refused")
}

func TestHandleReadyIncludesQuarantineCount(t *testing.T) {
	server := NewServer(Config{
		ServiceName: "ingestion",
		DB:          &fakePinger{},
		Quarantine:  &fakeQuarantineCounter{count: 7},
	})
	server.SetReady(true)

	rec := httptest.NewRecorder()
	server.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body readyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Quarantined1d)
	assert.Equal(t, 7, *body.Quarantined1d)
}

func TestHandleReadyQuarantineErrorOmitted(t *testing.T) {
	server := NewServer(Config{
		ServiceName: "ingestion",
		DB:          &fakePinger{},
		Quarantine:  &fakeQuarantineCounter{err: fmt.Errorf("relation missing")},
	})
	server.SetReady(true)

	rec := httptest.NewRecorder()
	server.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body readyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body.Quarantined1d)
}

func TestDefaultPort(t *testing.T) {
	server := NewServer(Config{ServiceName: "ingestion"})
	assert.Equal(t, "8080", server.port)
}
