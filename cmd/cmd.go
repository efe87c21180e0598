package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/payment-processor/internal"
	"github.com/frahmantamala/payment-processor/pkg/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "payment-processor",
	Short: "Payment Processor",
	Long: `Validates charge amounts and delegates charges to an external payment gateway.

The gateway is configured from the environment:
  PAYMENT_API_KEY  required
  PAYMENT_API_URL  optional, defaults to the public gateway URL`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads the service config and installs the process logger.
func loadConfig() (*internal.Config, error) {
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "Directory containing config.yml")

	rootCmd.AddCommand(httpServerCmd)
	rootCmd.AddCommand(chargeCmd)
	rootCmd.AddCommand(sandboxCmd)
}
