package payment

import (
	"github.com/shopspring/decimal"

	errors "github.com/frahmantamala/payment-processor/internal"
	"github.com/frahmantamala/payment-processor/internal/core/common/validation"
)

// ChargeRequest is the body of POST /api/v1/payments. Amount is a decimal
// string so it never passes through a binary float.
type ChargeRequest struct {
	Amount    string `json:"amount"`
	CardToken string `json:"card_token"`
}

// Validate checks the request shape only; the minimum amount rule belongs
// to the processor and is reported as an outcome.
func (r *ChargeRequest) Validate() error {
	validator := validation.NewValidator()

	validator.Field("amount", r.Amount).Required().Decimal(errors.ErrCodeInvalidAmount).InRange(errors.ErrCodeInvalidAmount)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func (r *ChargeRequest) ParsedAmount() (decimal.Decimal, error) {
	return decimal.NewFromString(r.Amount)
}
