package gateway

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"

	gatewaytypes "github.com/frahmantamala/payment-processor/internal/core/datamodel/gateway"
)

// SandboxConfig controls the local fake gateway. FailureRate is the share
// of accepted requests answered with 502; Latency delays every response.
type SandboxConfig struct {
	FailureRate float64
	Latency     time.Duration
}

type sandbox struct {
	config SandboxConfig
	logger *slog.Logger
}

// NewSandboxHandler serves a fake charge API compatible with Client.
func NewSandboxHandler(config SandboxConfig, logger *slog.Logger) http.Handler {
	s := &sandbox{config: config, logger: logger}

	router := chi.NewRouter()
	router.Post(chargesPath, s.charge)
	return router
}

func (s *sandbox) charge(w http.ResponseWriter, r *http.Request) {
	if s.config.Latency > 0 {
		select {
		case <-time.After(s.config.Latency):
		case <-r.Context().Done():
			return
		}
	}

	var req gatewaytypes.ChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid charge request"})
		return
	}

	if req.APIKey == "" {
		s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing api key"})
		return
	}

	if !req.Amount.IsPositive() {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "amount must be positive"})
		return
	}

	if s.config.FailureRate > 0 && rand.Float64() < s.config.FailureRate {
		s.logger.Info("sandbox: simulated gateway failure", "amount", req.Amount.String())
		s.writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream processor unavailable"})
		return
	}

	result := gatewaytypes.ChargeResult{
		ID:     "txn_" + uuid.NewString(),
		Status: gatewaytypes.ChargeStatusSucceeded,
	}

	s.logger.Info("sandbox: charge accepted",
		"transaction_id", result.ID,
		"amount", req.Amount.String())

	s.writeJSON(w, http.StatusCreated, result)
}

func (s *sandbox) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("sandbox: failed to encode response", "error", err)
	}
}
