package rest

import (
	"encoding/json"
	"net/http"
	"time"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status    HealthStatus   `json:"status"`
	Message   string         `json:"message,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CheckedAt time.Time      `json:"checked_at"`
}

// ProcessorInfo is what the health check reports about the wired processor.
type ProcessorInfo struct {
	GatewayURL string
	MinAmount  string
}

type HealthHandler struct {
	processor *ProcessorInfo
}

func NewHealthHandler(processor *ProcessorInfo) *HealthHandler {
	return &HealthHandler{processor: processor}
}

// pingHandler → just says service is up
func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "OK"}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// healthCheckHandler → reports whether a processor is wired. The gateway
// itself is not probed: a charge is the only call it supports.
func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	entry := CheckEntry{
		Status:    HealthHealthy,
		CheckedAt: time.Now(),
	}

	if h.processor == nil {
		entry.Status = HealthUnhealthy
		entry.Message = "payment processor not configured"
	} else {
		entry.Details = map[string]any{
			"gateway_url": h.processor.GatewayURL,
			"min_amount":  h.processor.MinAmount,
		}
	}

	resp := HealthResponse{
		Status:     entry.Status,
		CheckedAt:  time.Now(),
		Components: map[string]CheckEntry{"processor": entry},
	}

	statusCode := http.StatusOK
	if entry.Status == HealthUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}
