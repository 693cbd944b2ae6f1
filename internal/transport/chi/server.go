package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchtools/internal/domain"
	"github.com/kailas-cloud/searchtools/internal/domain/envelope"
	"github.com/kailas-cloud/searchtools/internal/tools"
	healthuc "github.com/kailas-cloud/searchtools/internal/usecase/health"
	"github.com/kailas-cloud/searchtools/internal/version"
)

// maxArgumentsBytes bounds a tool call body.
const maxArgumentsBytes = 1 << 20

// Error codes of the HTTP error body.
const (
	CodeBadRequest    = "bad_request"
	CodeToolNotFound  = "tool_not_found"
	CodeTooLarge      = "request_too_large"
	CodeInternalError = "internal_error"
)

// ErrorResponse is the body of a non-2xx response. Tool outcomes, failures
// included, are always envelopes with status 200.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ToolCaller lists and invokes tools.
type ToolCaller interface {
	Definitions() []tools.Definition
	Call(ctx context.Context, name string, args json.RawMessage) (envelope.Envelope, error)
}

// HealthChecker reports engine health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the tool registry over HTTP.
type Server struct {
	tools         ToolCaller
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP tool server.
func NewServer(tools ToolCaller, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{tools: tools, health: health, logger: logger}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrUnknownTool, http.StatusNotFound, CodeToolNotFound),
	}
	return s
}

// Mount registers the routes on r.
func (s *Server) Mount(r chi.Router) {
	r.Get("/tools", s.ListTools)
	r.Post("/tools/{name}", s.CallTool)
	r.Get("/health", s.HealthCheck)
	r.Get("/version", s.Version)
	r.Get("/metrics", s.Metrics)
}

// ListTools handles GET /tools.
func (s *Server) ListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": s.tools.Definitions()})
}

// CallTool handles POST /tools/{name}. The body is the JSON argument object.
func (s *Server) CallTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxArgumentsBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, CodeTooLarge, "arguments exceed 1 MiB")
			return
		}
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	env, err := s.tools.Call(r.Context(), name, body)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, env)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Version handles GET /version.
func (s *Server) Version(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
