package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/payment-processor/internal"
	"github.com/frahmantamala/payment-processor/internal/gateway"
	"github.com/frahmantamala/payment-processor/internal/observability"
	"github.com/frahmantamala/payment-processor/internal/payment"
	"github.com/frahmantamala/payment-processor/internal/transport/rest"
	"github.com/frahmantamala/payment-processor/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server that accepts payments on POST /api/v1/payments`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startHTTPServer()
	},
}

type Dependencies struct {
	Config  *internal.Config
	Router  *chi.Mux
	Metrics *observability.Metrics
	Logger  *slog.Logger
}

func startHTTPServer() error {
	deps, err := initializeDependencies()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	return serve(server, deps.Logger)
}

// serve runs server until SIGINT/SIGTERM and then shuts it down gracefully.
func serve(server *http.Server, log *slog.Logger) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	log.Info("Server stopped")
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.LoggerWrapper()

	minAmount, err := config.Payment.MinAmountDecimal()
	if err != nil {
		return nil, err
	}

	metrics := observability.NewMetrics()

	processor, err := payment.NewProcessorFromEnvironment(log,
		payment.WithMinAmount(minAmount),
		payment.WithChargeObserver(metrics))
	if err != nil {
		return nil, err
	}

	var gatewayURL string
	if instrumented, ok := processor.Gateway().(*payment.InstrumentedGateway); ok {
		if client, ok := instrumented.Unwrap().(*gateway.Client); ok {
			gatewayURL = client.Config().BaseURL
		}
	}

	routerDeps := rest.RouterDeps{
		PaymentHandler: payment.NewHandler(processor, metrics, log),
		HealthHandler: rest.NewHealthHandler(&rest.ProcessorInfo{
			GatewayURL: gatewayURL,
			MinAmount:  processor.MinAmount().String(),
		}),
		Logger: log,
	}
	if config.Observability.Metrics.Enabled {
		routerDeps.MetricsPath = config.Observability.Metrics.Path
		routerDeps.MetricsHandler = metrics.Handler()
	}

	return &Dependencies{
		Config:  config,
		Router:  rest.NewRouter(routerDeps),
		Metrics: metrics,
		Logger:  log,
	}, nil
}
