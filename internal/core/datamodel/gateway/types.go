package gateway

import (
	"github.com/shopspring/decimal"
)

const (
	ChargeStatusSucceeded = "succeeded"
	ChargeStatusFailed    = "failed"
)

// ChargeRequest is the wire body of POST {base_url}/charges. Amount is
// encoded as a JSON string so no precision is lost in transit.
type ChargeRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	CardToken string          `json:"card_token"`
	APIKey    string          `json:"api_key"`
}

// ChargeResult is what the gateway returns for an accepted charge.
type ChargeResult struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
}
