package api

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/specgate/internal/logger"
	"github.com/ternarybob/specgate/pkg/spec"
)

// version is set via -ldflags at build time
var version = "dev"

// SetVersion sets the version string (called from main).
func SetVersion(v string) {
	version = v
}

// Response types

// HealthResponse is the response for /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// VersionResponse is the response for /version.
type VersionResponse struct {
	Version string `json:"version"`
	Service string `json:"service"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidateRequest is the request body for /validate.
type ValidateRequest struct {
	Paths      []string `json:"paths,omitempty"`
	Root       string   `json:"root,omitempty"`
	Registry   string   `json:"registry,omitempty"`
	AllowEmpty bool     `json:"allow_empty,omitempty"`
}

// ValidateResponse wraps a validation outcome.
type ValidateResponse struct {
	Passed        bool         `json:"passed"`
	DocumentCount int          `json:"document_count"`
	Issues        []spec.Issue `json:"issues"`
}

// MergeRequest is the request body for /merge.
type MergeRequest struct {
	Paths    []string `json:"paths,omitempty"`
	Root     string   `json:"root,omitempty"`
	Registry string   `json:"registry,omitempty"`
	Output   string   `json:"output"`
	Report   string   `json:"report,omitempty"`
	ID       string   `json:"id,omitempty"`
	Title    string   `json:"title,omitempty"`
}

// MergeResponse wraps a merge outcome.
type MergeResponse struct {
	Status     string           `json:"status"`
	OutputPath string           `json:"output_path"`
	ReportPath string           `json:"report_path"`
	Report     *spec.GateReport `json:"report"`
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handleVersion handles GET /version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: version, Service: "specgate"})
}

// handleValidate handles POST /validate.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	opts := spec.ValidateOptions{
		Paths:        req.Paths,
		Root:         req.Root,
		RegistryPath: req.Registry,
		AllowEmpty:   req.AllowEmpty,
	}
	if opts.Root == "" && len(opts.Paths) == 0 {
		opts.Root = s.cfg.Specs.Root
	}
	if opts.RegistryPath == "" {
		opts.RegistryPath = s.cfg.Specs.Registry
	}

	result, err := spec.ValidateSet(opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.GetLogger().Info().
		Int("documents", len(result.Documents)).
		Int("issues", len(result.Issues)).
		Msg("Validation batch completed")

	issues := result.Issues
	if issues == nil {
		issues = []spec.Issue{}
	}
	writeJSON(w, http.StatusOK, ValidateResponse{
		Passed:        result.Passed(),
		DocumentCount: len(result.Documents),
		Issues:        issues,
	})
}

// handleMerge handles POST /merge.
func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	var req MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Output == "" {
		writeError(w, http.StatusBadRequest, "output is required")
		return
	}

	opts := spec.MergeOptions{
		Paths:        req.Paths,
		Root:         req.Root,
		RegistryPath: req.Registry,
		OutputPath:   req.Output,
		ReportPath:   req.Report,
		ID:           req.ID,
		Title:        req.Title,
	}
	if opts.Root == "" && len(opts.Paths) == 0 {
		opts.Root = s.cfg.Specs.Root
	}
	if opts.RegistryPath == "" {
		opts.RegistryPath = s.cfg.Specs.Registry
	}

	result, err := spec.MergeSet(opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.mu.Lock()
	s.lastReport = result.Report
	s.mu.Unlock()

	logger.GetLogger().Info().
		Str("status", result.Report.Status).
		Str("output", result.OutputPath).
		Msg("Merge batch completed")

	writeJSON(w, http.StatusOK, MergeResponse{
		Status:     result.Report.Status,
		OutputPath: result.OutputPath,
		ReportPath: result.ReportPath,
		Report:     result.Report,
	})
}

// handleReport handles GET /report, returning the last merge gate report.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	report := s.lastReport
	s.mu.RUnlock()

	if report == nil {
		writeError(w, http.StatusNotFound, "no merge has run yet")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
