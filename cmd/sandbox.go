package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/payment-processor/internal/gateway"
	"github.com/frahmantamala/payment-processor/pkg/logger"
)

var (
	sandboxPort        int
	sandboxFailureRate float64
	sandboxLatency     time.Duration
)

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Start a local fake payment gateway",
	Long:  `Start a fake charge API on POST /charges for local testing. Point PAYMENT_API_URL at it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startSandbox()
	},
}

func startSandbox() error {
	if sandboxFailureRate < 0 || sandboxFailureRate > 1 {
		return fmt.Errorf("--failure-rate must be between 0 and 1, got %v", sandboxFailureRate)
	}

	log := logger.LoggerWrapper()

	handler := gateway.NewSandboxHandler(gateway.SandboxConfig{
		FailureRate: sandboxFailureRate,
		Latency:     sandboxLatency,
	}, log)

	addr := fmt.Sprintf(":%d", sandboxPort)
	log.Info("starting sandbox gateway",
		"address", addr,
		"failure_rate", sandboxFailureRate,
		"latency", sandboxLatency)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return serve(server, log)
}

func init() {
	sandboxCmd.Flags().IntVar(&sandboxPort, "port", 8090, "Port to listen on")
	sandboxCmd.Flags().Float64Var(&sandboxFailureRate, "failure-rate", 0.1, "Share of charges answered with 502")
	sandboxCmd.Flags().DurationVar(&sandboxLatency, "latency", 0, "Delay added to every response")
}
