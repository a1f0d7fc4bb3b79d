// Package transport exposes the monitor over HTTP.
package transport

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 1000

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// APIHandler serves the monitor's state and its live event stream.
type APIHandler struct {
	monitor  Monitor
	metrics  Metrics
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewAPIHandler returns an APIHandler instance.
func NewAPIHandler(m Monitor, metrics Metrics, logger *zap.Logger) *APIHandler {
	return &APIHandler{
		monitor: m,
		metrics: metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Origins are enforced by the CORS layer in front of the mux.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger.Named("api_handler"),
	}
}

// Register adds the API routes to mux.
func (h *APIHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/status", h.instrument("status", h.status))
	mux.HandleFunc("GET /api/highest", h.instrument("highest", h.highest))
	mux.HandleFunc("GET /api/pending", h.instrument("pending", h.pending))
	mux.HandleFunc("GET /api/recent", h.instrument("recent", h.recent))
	mux.HandleFunc("GET /api/events", h.stream)
}

type pendingResponse struct {
	Count      int                   `json:"count"`
	Candidates []model.MintCandidate `json:"candidates"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *APIHandler) status(w http.ResponseWriter, _ *http.Request) int {
	return h.writeJSON(w, http.StatusOK, h.monitor.Status())
}

func (h *APIHandler) highest(w http.ResponseWriter, _ *http.Request) int {
	return h.writeJSON(w, http.StatusOK, h.monitor.Highest())
}

func (h *APIHandler) pending(w http.ResponseWriter, _ *http.Request) int {
	pending := h.monitor.Pending()
	if pending == nil {
		pending = []model.MintCandidate{}
	}
	return h.writeJSON(w, http.StatusOK, pendingResponse{Count: len(pending), Candidates: pending})
}

func (h *APIHandler) recent(w http.ResponseWriter, r *http.Request) int {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
		}
		limit = min(n, maxRecentLimit)
	}
	recent := h.monitor.RecentConfirmed(limit)
	if recent == nil {
		recent = []model.MintCandidate{}
	}
	return h.writeJSON(w, http.StatusOK, recent)
}

func (h *APIHandler) instrument(route string, fn func(http.ResponseWriter, *http.Request) int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		code := fn(w, r)
		h.metrics.ObserveRequest(route, code, started)
	}
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, code int, v any) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Debug("write response", zap.Error(err))
	}
	return code
}
