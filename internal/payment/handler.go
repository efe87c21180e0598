package payment

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	errors "github.com/frahmantamala/payment-processor/internal"
	"github.com/frahmantamala/payment-processor/internal/transport"
	"github.com/frahmantamala/payment-processor/pkg/logger"
)

type ProcessorAPI interface {
	ProcessPayment(amount decimal.Decimal, token string) TransactionOutcome
}

type OutcomeObserver interface {
	ObserveOutcome(success bool)
}

type Handler struct {
	*transport.BaseHandler
	Processor ProcessorAPI
	Observer  OutcomeObserver
}

func NewHandler(processor ProcessorAPI, observer OutcomeObserver, lg *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Processor:   processor,
		Observer:    observer,
	}
}

// CreatePayment handles POST /api/v1/payments
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	log := logger.From(r.Context())

	var req ChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("CreatePayment: failed to parse request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeInvalidBody))
		return
	}

	if err := req.Validate(); err != nil {
		log.Warn("CreatePayment: validation error", "error", err)
		h.HandleError(w, err)
		return
	}

	amount, err := req.ParsedAmount()
	if err != nil {
		h.HandleError(w, errors.NewValidationError("invalid amount", errors.ErrCodeInvalidAmount))
		return
	}

	outcome := h.Processor.ProcessPayment(amount, req.CardToken)
	if h.Observer != nil {
		h.Observer.ObserveOutcome(outcome.Success)
	}

	status := http.StatusOK
	if !outcome.Success {
		status = http.StatusPaymentRequired
	}

	log.Info("CreatePayment: payment processed",
		"success", outcome.Success,
		"amount", amount.String())

	h.WriteJSON(w, status, outcome)
}
