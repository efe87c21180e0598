package payment

import (
	"time"

	"github.com/shopspring/decimal"

	gatewaytypes "github.com/frahmantamala/payment-processor/internal/core/datamodel/gateway"
)

type ChargeObserver interface {
	ObserveCharge(success bool, duration time.Duration)
}

// InstrumentedGateway reports every charge to an observer and otherwise
// passes calls through untouched.
type InstrumentedGateway struct {
	next     Gateway
	observer ChargeObserver
}

// WithChargeObserver wraps the processor's gateway in an InstrumentedGateway.
func WithChargeObserver(observer ChargeObserver) Option {
	return func(p *Processor) {
		p.gateway = NewInstrumentedGateway(p.gateway, observer)
	}
}

func NewInstrumentedGateway(next Gateway, observer ChargeObserver) *InstrumentedGateway {
	return &InstrumentedGateway{next: next, observer: observer}
}

func (g *InstrumentedGateway) Charge(amount decimal.Decimal, token string) (*gatewaytypes.ChargeResult, error) {
	start := time.Now()
	result, err := g.next.Charge(amount, token)
	g.observer.ObserveCharge(err == nil, time.Since(start))
	return result, err
}

func (g *InstrumentedGateway) Unwrap() Gateway {
	return g.next
}
