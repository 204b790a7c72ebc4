package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	mdwerror "github.com/msto63/khwarizmi/foundation/core/error"
	"github.com/msto63/khwarizmi/internal/khwarizmi/service"
	"github.com/msto63/khwarizmi/internal/khwarizmi/store"
	"github.com/msto63/khwarizmi/pkg/core/cache"
	"github.com/msto63/khwarizmi/pkg/core/health"
	"github.com/msto63/khwarizmi/pkg/core/logging"
	"github.com/msto63/khwarizmi/pkg/core/version"
)

// maxBodySize limits request bodies; equations are short
const maxBodySize = 64 << 10

// SolveRequest represents a solve request body
type SolveRequest struct {
	Equation string `json:"equation"`
}

// HistoryResponse represents a list of history entries
type HistoryResponse struct {
	Entries []*store.Entry `json:"entries"`
	Total   int            `json:"total"`
}

// StatsResponse combines cache and history statistics
type StatsResponse struct {
	Cache   cache.Stats  `json:"cache"`
	History *store.Stats `json:"history,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Handler serves the khwarizmi HTTP API
type Handler struct {
	service *service.Service
	logger  *logging.Logger
	started time.Time
}

// NewHandler creates a new HTTP handler
func NewHandler(svc *service.Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.New("khwarizmi-http")
	}
	return &Handler{
		service: svc,
		logger:  logger,
		started: time.Now(),
	}
}

// ServeHTTP routes API requests
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")

	switch path {
	case "", "/api/v1":
		h.handleRoot(w, r)
	case "/health":
		h.handleHealth(w, r)
	case "/api/v1/solve":
		h.handleSolve(w, r)
	case "/api/v1/history":
		h.handleHistory(w, r)
	case "/api/v1/stats":
		h.handleStats(w, r)
	case "/api/v1/version":
		h.handleVersion(w, r)
	default:
		h.writeError(w, http.StatusNotFound, "not_found", "Endpoint not found", "")
	}
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET", "")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":    "khwarizmi",
		"version": version.ComponentVersion("server"),
		"uptime":  time.Since(h.started).Round(time.Second).String(),
		"endpoints": []string{
			"POST /api/v1/solve",
			"GET  /api/v1/solve?equation=",
			"GET  /api/v1/solve/ws",
			"GET  /api/v1/history?limit=",
			"GET  /api/v1/stats",
			"GET  /api/v1/version",
			"GET  /health",
		},
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET", "")
		return
	}

	report := h.service.Health(r.Context())
	code := http.StatusOK
	if report.Status == health.StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	h.writeJSON(w, code, report)
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest

	switch r.Method {
	case http.MethodGet:
		req.Equation = r.URL.Query().Get("equation")
	case http.MethodPost:
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid_request", "Failed to read body", err.Error())
			return
		}
		if err := json.Unmarshal(body, &req); err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON", err.Error())
			return
		}
	default:
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET or POST", "")
		return
	}

	if strings.TrimSpace(req.Equation) == "" {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Missing input", "")
		return
	}

	resp, err := h.service.Solve(r.Context(), &service.SolveRequest{
		Input:     req.Equation,
		Source:    service.SourceHTTP,
		RequestID: r.Header.Get("X-Request-ID"),
	})
	if err != nil {
		h.writeSolveError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET", "")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid limit", raw)
			return
		}
		limit = n
	}

	entries, err := h.service.History(r.Context(), limit)
	if err != nil {
		h.writeSolveError(w, err)
		return
	}
	if entries == nil {
		entries = []*store.Entry{}
	}

	h.writeJSON(w, http.StatusOK, HistoryResponse{Entries: entries, Total: len(entries)})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET", "")
		return
	}

	resp := StatsResponse{Cache: h.service.CacheStats()}
	if h.service.HistoryEnabled() {
		stats, err := h.service.HistoryStats(r.Context())
		if err != nil {
			h.writeSolveError(w, err)
			return
		}
		resp.History = stats
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, version.Get())
}

// writeSolveError maps a coded error to its HTTP status
func (h *Handler) writeSolveError(w http.ResponseWriter, err error) {
	code := mdwerror.GetCode(err)
	statusCode := code.HTTPStatus()
	if statusCode >= http.StatusInternalServerError {
		h.logger.With("component", "http").LogError(err)
	}
	h.writeJSON(w, statusCode, ErrorResponse{
		Error:   code.Category() + "_error",
		Code:    string(code),
		Message: err.Error(),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, errType, message, details string) {
	h.writeJSON(w, status, ErrorResponse{
		Error:   errType,
		Message: message,
		Details: details,
	})
}
