package internal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Payment       PaymentConfig       `mapstructure:"payment"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

// PaymentConfig holds processor policy only. Gateway credentials are read
// from the environment by the processor factory.
type PaymentConfig struct {
	MinAmount string `mapstructure:"min_amount"`
}

type ObservabilityConfig struct {
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- LOADING -----------------

func SetDefaults(v *viper.Viper) {
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.read_header_timeout", 5*time.Second)
	v.SetDefault("http_server.read_timeout", 15*time.Second)
	v.SetDefault("http_server.write_timeout", 15*time.Second)
	v.SetDefault("http_server.idle_timeout", 60*time.Second)
	v.SetDefault("payment.min_amount", "0.50")
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.path", "/metrics")
	v.SetDefault("observability.logging.level", "info")
	v.SetDefault("observability.logging.format", "text")
}

// LoadConfig reads config.yml from path when present; ENV_ prefixed
// variables override any key (ENV_HTTP_SERVER_PORT=9000).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("ENV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, NewConfigurationError("invalid configuration", ErrCodeInvalidConfig).WithCause(err)
	}

	return &cfg, nil
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Payment.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("payment config: %v", err))
	}

	if err := c.Observability.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("observability config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *PaymentConfig) Validate() error {
	amount, err := c.MinAmountDecimal()
	if err != nil {
		return fmt.Errorf("invalid min_amount %q: %w", c.MinAmount, err)
	}
	if amount.IsNegative() {
		return errors.New("min_amount cannot be negative")
	}
	return nil
}

func (c *PaymentConfig) MinAmountDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(c.MinAmount)
}

func (c *ObservabilityConfig) Validate() error {
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("metrics path must start with /")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("unsupported log format %q", c.Logging.Format)
	}
	return nil
}
