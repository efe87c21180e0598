package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	errors "github.com/frahmantamala/payment-processor/internal"
	"github.com/frahmantamala/payment-processor/internal/core/common/validation"
	"github.com/frahmantamala/payment-processor/internal/payment"
	"github.com/frahmantamala/payment-processor/pkg/logger"
)

var (
	chargeAmount string
	chargeToken  string
)

var chargeCmd = &cobra.Command{
	Use:   "charge",
	Short: "Process a single payment",
	Long:  `Process one payment through the configured gateway and print the outcome as JSON. Exits non-zero when the payment does not succeed.`,
	Example: `  PAYMENT_API_KEY=sk_test PAYMENT_API_URL=http://localhost:8090 \
    payment-processor charge --amount 10.00 --token tok_visa`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCharge(cmd.OutOrStdout())
	},
}

func runCharge(out io.Writer) error {
	config, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	amount, err := decimal.NewFromString(chargeAmount)
	if err != nil {
		return fmt.Errorf("invalid --amount %q: %w", chargeAmount, err)
	}
	if !validation.AmountInRange(amount) {
		return errors.NewValidationError("invalid --amount: out of range", errors.ErrCodeInvalidAmount)
	}

	minAmount, err := config.Payment.MinAmountDecimal()
	if err != nil {
		return err
	}

	processor, err := payment.NewProcessorFromEnvironment(logger.LoggerWrapper(), payment.WithMinAmount(minAmount))
	if err != nil {
		return err
	}

	outcome := processor.ProcessPayment(amount, chargeToken)

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(outcome); err != nil {
		return fmt.Errorf("failed to write outcome: %w", err)
	}

	if !outcome.Success {
		return fmt.Errorf("payment failed: %s", outcome.Message)
	}
	return nil
}

func init() {
	chargeCmd.Flags().StringVar(&chargeAmount, "amount", "", "Amount to charge, as a decimal string")
	chargeCmd.Flags().StringVar(&chargeToken, "token", "", "Card token to charge")
	chargeCmd.MarkFlagRequired("amount")
	chargeCmd.MarkFlagRequired("token")
}
