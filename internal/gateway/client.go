package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	errors "github.com/frahmantamala/payment-processor/internal"
	gatewaytypes "github.com/frahmantamala/payment-processor/internal/core/datamodel/gateway"
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/payment-processor/pkg/logger"
)

const (
	DefaultTimeout = 5 * time.Second

	chargesPath     = "/charges"
	maxResponseBody = 1 << 20
)

// Config holds the connection parameters of the gateway. It is copied
// into the Client on construction and never changed afterwards.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client performs one outbound charge per call against the gateway API.
// It never retries and never swallows transport failures.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(config Config, lg *slog.Logger) *Client {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if lg == nil {
		lg = logger.LoggerWrapper()
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     lg,
	}
}

// Config returns a copy of the connection parameters.
func (c *Client) Config() Config {
	return c.config
}

func (c *Client) Charge(amount decimal.Decimal, token string) (*gatewaytypes.ChargeResult, error) {
	payload := gatewaytypes.ChargeRequest{
		Amount:    amount,
		CardToken: token,
		APIKey:    c.config.APIKey,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.NewTransportError("failed to marshal charge request", err)
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + chargesPath
	httpReq, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, errors.NewTransportError("failed to create charge request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug("sending charge request",
		"url", url,
		"amount", amount.String(),
		"timeout", c.config.Timeout)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("charge request failed",
			"url", url,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err)
		return nil, errors.NewTransportError("charge request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, errors.NewTransportError("failed to read charge response", err)
	}

	// The body of an error response may echo the request, so only its
	// size is reported.
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warn("gateway returned error status",
			"status", resp.StatusCode,
			"response_bytes", len(respBody))
		return nil, errors.NewTransportError(
			fmt.Sprintf("gateway returned status %d", resp.StatusCode), nil)
	}

	var result gatewaytypes.ChargeResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, errors.NewTransportError("failed to decode charge response", err)
	}
	if result.ID == "" {
		return nil, errors.NewTransportError("charge response has no transaction id", nil)
	}

	c.logger.Info("charge accepted by gateway",
		"transaction_id", result.ID,
		"status", result.Status,
		"duration_ms", time.Since(start).Milliseconds())

	return &result, nil
}
