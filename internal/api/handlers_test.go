package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/specgate/internal/config"
)

const testWorkstream = `---
id: ws-a
title: Workstream A
owner: team-a
scope: some scope
status: draft
dependencies:
contracts:
---
# Objective

# Deliverables

# Interfaces & Contracts

# Acceptance Criteria
`

const testRegistry = `---
contracts:
  - id: contract-auth
    type: api
    path: contracts/auth.md
    owner: platform-team
    version: 1.0.0
---
`

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contracts.md"), []byte(testRegistry), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ws-a.md"), []byte(testWorkstream), 0644))

	cfg := config.DefaultConfig()
	cfg.Specs.Root = dir
	return NewServer(cfg), dir
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestHandleValidate(t *testing.T) {
	s, _ := newTestServer(t)

	rec := postJSON(t, s, "/validate", ValidateRequest{})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Passed, "issues: %v", resp.Issues)
	assert.Equal(t, 1, resp.DocumentCount)
	assert.Empty(t, resp.Issues)
}

func TestHandleValidate_ReportsIssues(t *testing.T) {
	s, dir := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.md"), []byte("no metadata\n"), 0644))

	rec := postJSON(t, s, "/validate", ValidateRequest{})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Passed)
	assert.NotEmpty(t, resp.Issues)
}

func TestHandleMerge(t *testing.T) {
	s, dir := newTestServer(t)
	out := filepath.Join(dir, "out", "merged.md")

	rec := postJSON(t, s, "/merge", MergeRequest{Output: out})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MergeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pass", resp.Status)
	assert.FileExists(t, out)
	assert.FileExists(t, resp.ReportPath)

	// The last report becomes available on /report.
	req := httptest.NewRequest(http.MethodGet, "/report", nil)
	reportRec := httptest.NewRecorder()
	s.Handler().ServeHTTP(reportRec, req)
	assert.Equal(t, http.StatusOK, reportRec.Code)
}

func TestHandleMerge_RequiresOutput(t *testing.T) {
	s, _ := newTestServer(t)

	rec := postJSON(t, s, "/merge", MergeRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleReport_NotFoundBeforeMerge(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/report", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPIKeyAuth(t *testing.T) {
	s, _ := newTestServer(t)
	s.cfg.API.APIKey = "secret"
	s.setupRouter()

	rec := postJSON(t, s, "/validate", ValidateRequest{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	data, _ := json.Marshal(ValidateRequest{})
	req := httptest.NewRequest(http.MethodPost, "/validate", bytes.NewReader(data))
	req.Header.Set("X-API-Key", "secret")
	authedRec := httptest.NewRecorder()
	s.Handler().ServeHTTP(authedRec, req)
	assert.Equal(t, http.StatusOK, authedRec.Code)

	// Health stays open.
	healthReq := httptest.NewRequest(http.MethodGet, "/health", nil)
	healthRec := httptest.NewRecorder()
	s.Handler().ServeHTTP(healthRec, healthReq)
	assert.Equal(t, http.StatusOK, healthRec.Code)
}
