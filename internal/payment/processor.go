package payment

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	errors "github.com/frahmantamala/payment-processor/internal"
	"github.com/frahmantamala/payment-processor/internal/core/common/validation"
	gatewaytypes "github.com/frahmantamala/payment-processor/internal/core/datamodel/gateway"
	"github.com/frahmantamala/payment-processor/pkg/logger"
)

const (
	MessageProcessed     = "payment processed successfully"
	gatewayErrorTemplate = "payment gateway error: %v"
)

var DefaultMinAmount = decimal.RequireFromString("0.50")

// Gateway is the charge capability the processor delegates to.
type Gateway interface {
	Charge(amount decimal.Decimal, token string) (*gatewaytypes.ChargeResult, error)
}

// Processor validates charges, delegates them to a Gateway and turns every
// expected failure into a TransactionOutcome. It holds no mutable state and
// may be shared between goroutines.
type Processor struct {
	gateway   Gateway
	minAmount decimal.Decimal
	logger    *slog.Logger
}

type Option func(*Processor)

func WithMinAmount(minAmount decimal.Decimal) Option {
	return func(p *Processor) {
		p.minAmount = minAmount
	}
}

func NewProcessor(gateway Gateway, lg *slog.Logger, opts ...Option) *Processor {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	p := &Processor{
		gateway:   gateway,
		minAmount: DefaultMinAmount,
		logger:    lg,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Processor) Gateway() Gateway {
	return p.gateway
}

func (p *Processor) MinAmount() decimal.Decimal {
	return p.minAmount
}

// ProcessPayment never returns an error: rejections and gateway failures
// are reported through the outcome.
func (p *Processor) ProcessPayment(amount decimal.Decimal, token string) TransactionOutcome {
	if appErr := validation.ValidateChargeAmount(amount, p.minAmount); appErr != nil {
		p.logger.Info("payment rejected by validation",
			"min_amount", p.minAmount.String(),
			"reason", appErr.Error())
		return rejected(appErr.Error())
	}

	result, err := p.charge(amount, token)
	if err != nil {
		p.logger.Error("payment gateway charge failed",
			"amount", amount.String(),
			"transport_error", errors.IsTransportError(err),
			"error", err)
		return rejected(fmt.Sprintf(gatewayErrorTemplate, err))
	}

	p.logger.Info("payment processed successfully",
		"amount", amount.String(),
		"transaction_id", result.ID)

	return approved(result.ID)
}

// charge runs the gateway call and folds panics and empty results into
// errors so a broken gateway can never produce a successful outcome.
func (p *Processor) charge(amount decimal.Decimal, token string) (result *gatewaytypes.ChargeResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = errors.NewInternalError("unexpected gateway failure", fmt.Errorf("panic: %v", r))
		}
	}()

	result, err = p.gateway.Charge(amount, token)
	if err != nil {
		return nil, err
	}
	if result == nil || result.ID == "" {
		return nil, errors.NewInternalError("gateway returned no transaction id", nil)
	}
	return result, nil
}
