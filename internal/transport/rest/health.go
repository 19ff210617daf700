package rest

import (
	"context"
	"net/http"
	"time"
)

const healthCheckTimeout = 3 * time.Second

// backendChecker is the subset of the backend handle health checks need.
type backendChecker interface {
	Ready() error
	PingDatabase(ctx context.Context) error
	CheckStorage(ctx context.Context) error
}

// HealthHandler serves the root message and health check endpoints.
type HealthHandler struct {
	backend backendChecker
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(backend backendChecker, version string) *HealthHandler {
	return &HealthHandler{backend: backend, version: version}
}

// HealthResponse is the JSON response for /health and its probes.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Voice Recording API is running"})
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 when the backend handle is initialized
// and the table store answers, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status, code := "ok", http.StatusOK
	if h.backend.Ready() != nil || h.backend.PingDatabase(ctx) != nil {
		status, code = "down", http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
	})
}

// Health is the full health check: backend handle state, database ping and
// object store check with latencies, plus the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	components := make(map[string]CompStatus, 3)
	overallStatus := "ok"

	if err := h.backend.Ready(); err != nil {
		components["backend"] = CompStatus{Status: "down", Error: err.Error()}
		overallStatus = "down"
	} else {
		components["backend"] = CompStatus{Status: "ok"}
		components["database"] = probe(ctx, h.backend.PingDatabase)
		components["storage"] = probe(ctx, h.backend.CheckStorage)
		for _, c := range components {
			if c.Status != "ok" {
				overallStatus = "down"
			}
		}
	}

	code := http.StatusOK
	if overallStatus != "ok" {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:     overallStatus,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func probe(ctx context.Context, check func(context.Context) error) CompStatus {
	start := time.Now()
	err := check(ctx)
	latency := time.Since(start)

	if err != nil {
		return CompStatus{Status: "down", Error: err.Error()}
	}
	return CompStatus{Status: "ok", Latency: latency.String()}
}
