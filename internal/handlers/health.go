package handlers

import (
	"net/http"

	"kzone-booking-backend/internal/config"
	"kzone-booking-backend/internal/profileapi"
)

// HealthHandler serves liveness and version/environment info
type HealthHandler struct {
	server  config.ServerConfig
	backend *profileapi.Client
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(server config.ServerConfig, backend *profileapi.Client) *HealthHandler {
	return &HealthHandler{server: server, backend: backend}
}

// Health handles GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// InfoResponse reports the service version and environment, plus the
// backend's own info when it is reachable
type InfoResponse struct {
	Name             string           `json:"name"`
	Version          string           `json:"version"`
	Environment      string           `json:"environment"`
	BackendAvailable bool             `json:"backend_available"`
	Backend          *profileapi.Info `json:"backend,omitempty"`
}

// Info handles GET /api/v1/
func (h *HealthHandler) Info(w http.ResponseWriter, r *http.Request) {
	resp := InfoResponse{
		Name:             "kzone-booking-backend",
		Version:          h.server.Version,
		Environment:      h.server.Environment,
		BackendAvailable: h.backend.Available(),
	}
	if h.backend.Available() {
		if info, err := h.backend.GetInfo(r.Context()); err == nil {
			resp.Backend = info
		}
	}
	respondJSON(w, resp, http.StatusOK)
}
