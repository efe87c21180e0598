package payment

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	errors "github.com/frahmantamala/payment-processor/internal"
	"github.com/frahmantamala/payment-processor/internal/gateway"
	"github.com/frahmantamala/payment-processor/pkg/logger"
)

const (
	EnvAPIKey = "PAYMENT_API_KEY"
	EnvAPIURL = "PAYMENT_API_URL"

	DefaultBaseURL = "https://api.payment-gateway.example.com/v1"
)

// newMissingAPIKeyError builds a new error per call; AppError builders
// mutate their receiver.
func newMissingAPIKeyError() *errors.AppError {
	return errors.NewConfigurationError(
		fmt.Sprintf("%s environment variable is required", EnvAPIKey),
		errors.ErrCodeMissingAPIKey,
	)
}

// GatewayConfigFromEnvironment reads the gateway settings from the process
// environment. A new viper instance is used per call so every call sees the
// current environment.
func GatewayConfigFromEnvironment() (gateway.Config, error) {
	v := viper.New()
	v.SetDefault("api_url", DefaultBaseURL)
	if err := v.BindEnv("api_key", EnvAPIKey); err != nil {
		return gateway.Config{}, errors.NewConfigurationError("failed to bind api key", errors.ErrCodeInvalidConfig).WithCause(err)
	}
	if err := v.BindEnv("api_url", EnvAPIURL); err != nil {
		return gateway.Config{}, errors.NewConfigurationError("failed to bind api url", errors.ErrCodeInvalidConfig).WithCause(err)
	}

	apiKey := v.GetString("api_key")
	if apiKey == "" {
		return gateway.Config{}, newMissingAPIKeyError()
	}

	return gateway.Config{
		APIKey:  apiKey,
		BaseURL: v.GetString("api_url"),
		Timeout: gateway.DefaultTimeout,
	}, nil
}

// NewProcessorFromEnvironment wires a gateway client and a processor from
// the environment. It fails only on configuration defects.
func NewProcessorFromEnvironment(lg *slog.Logger, opts ...Option) (*Processor, error) {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}

	config, err := GatewayConfigFromEnvironment()
	if err != nil {
		lg.Error("payment processor configuration failed", "error", err)
		return nil, err
	}

	lg.Info("payment processor configured",
		"base_url", config.BaseURL,
		"timeout", config.Timeout)

	client := gateway.NewClient(config, lg)
	return NewProcessor(client, lg, opts...), nil
}
