package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/payment-processor/api"
	"github.com/frahmantamala/payment-processor/internal/payment"
	"github.com/frahmantamala/payment-processor/internal/transport/middleware"
	"github.com/frahmantamala/payment-processor/internal/transport/swagger"
)

type RouterDeps struct {
	PaymentHandler *payment.Handler
	HealthHandler  *HealthHandler
	MetricsPath    string
	MetricsHandler http.Handler
	Logger         *slog.Logger
}

func NewRouter(deps RouterDeps) *chi.Mux {
	router := chi.NewRouter()
	RegisterAllRoutes(router, deps)
	return router
}

func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	// Apply global middleware
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.RecoveryMiddleware(deps.Logger))

	if deps.MetricsHandler != nil {
		router.Handle(deps.MetricsPath, deps.MetricsHandler)
	}

	// Serve the OpenAPI document at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(api.OpenAPISpec)
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		if deps.HealthHandler != nil {
			r.Get("/health", deps.HealthHandler.healthCheckHandler)
			r.Get("/ping", deps.HealthHandler.pingHandler)
		}

		if deps.PaymentHandler != nil {
			r.Post("/payments", deps.PaymentHandler.CreatePayment) // POST /payments
		}
	})
}
