package payment

// TransactionOutcome is the single result type of ProcessPayment.
// TransactionID is nil unless the gateway accepted the charge.
type TransactionOutcome struct {
	Success       bool    `json:"success"`
	TransactionID *string `json:"transaction_id"`
	Message       string  `json:"message"`
}

func approved(transactionID string) TransactionOutcome {
	return TransactionOutcome{
		Success:       true,
		TransactionID: &transactionID,
		Message:       MessageProcessed,
	}
}

func rejected(message string) TransactionOutcome {
	return TransactionOutcome{
		Success: false,
		Message: message,
	}
}
