package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/sitedigest/sitedigest"
)

var errURLRequired = errors.New("the \"url\" field is required")

// Transport handles HTTP requests for sitemap analysis.
type Transport struct {
	analyzer sitedigest.Analyzer
	logger   *slog.Logger
}

// NewTransport creates an HTTP transport backed by the given analyzer.
func NewTransport(analyzer sitedigest.Analyzer, logger *slog.Logger) *Transport {
	return &Transport{analyzer: analyzer, logger: logger}
}

// RegisterRoutes attaches the transport's handlers to the given mux.
func (t *Transport) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /analyze-sitemap", t.handleAnalyzeSitemap)
}

type analyzeRequest struct {
	URL string `json:"url"`
}

func (r analyzeRequest) validate() error {
	if r.URL == "" {
		return errURLRequired
	}
	u, err := url.Parse(r.URL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("the \"url\" field must be an absolute http(s) URL")
	}
	return nil
}

type analyzeResponse struct {
	Status        sitedigest.Status `json:"status"`
	AnalyzedCount int               `json:"analyzed_count"`
	OutputPath    string            `json:"output_path,omitempty"`
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

func (t *Transport) handleAnalyzeSitemap(w http.ResponseWriter, r *http.Request) {
	const maxRequestBody = 1 << 20 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.renderError(w, http.StatusBadRequest, "Invalid request body. Please send a JSON object with a \"url\" field.")
		return
	}

	if err := req.validate(); err != nil {
		t.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := t.analyzer.AnalyzeSitemap(r.Context(), req.URL)
	if err != nil {
		t.handleAnalyzerError(w, err)
		return
	}

	t.renderJSON(w, http.StatusOK, analyzeResponse{
		Status:        result.Status,
		AnalyzedCount: result.AnalyzedCount,
		OutputPath:    result.OutputPath,
	})
}

// handleAnalyzerError maps application error codes to HTTP statuses.
// Upstream failures (sitemap fetch, summarization API) surface as 502.
func (t *Transport) handleAnalyzerError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch sitedigest.ErrorCode(err) {
	case sitedigest.EINVALID:
		status = http.StatusBadRequest
	case sitedigest.ENOTFOUND:
		status = http.StatusNotFound
	case sitedigest.EFETCH, sitedigest.EPARSE, sitedigest.EAPI:
		status = http.StatusBadGateway
	case sitedigest.EIO, sitedigest.EINTERNAL:
		// 500 Internal Server Error
	}
	t.renderError(w, status, sitedigest.ErrorMessage(err))
}

func (t *Transport) renderJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		t.logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderError(w http.ResponseWriter, status int, message string) {
	t.renderJSON(w, status, ErrorResponse{
		Error:      http.StatusText(status),
		StatusCode: status,
		Message:    message,
	})
}
