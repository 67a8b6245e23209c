package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/roivest/return-calculator-backend/internal/api/handlers"
	custommiddleware "github.com/roivest/return-calculator-backend/internal/api/middleware"
	"github.com/roivest/return-calculator-backend/internal/config"
	"github.com/roivest/return-calculator-backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(systemService *service.SystemService, calculationService *service.CalculationService, shareService *service.ShareService, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		calculationHandler := handlers.NewCalculationHandler(calculationService, cfg.Scheduler.RecomputeConcurrency)
		shareHandler := handlers.NewShareHandler(shareService)

		// One-off computation without persistence
		r.Post("/calculate", calculationHandler.Compute)

		r.Route("/calculation", func(r chi.Router) {
			r.Get("/", calculationHandler.AllCalculations)
			r.Post("/", calculationHandler.CreateCalculation)

			r.With(custommiddleware.APIKeyMiddleware).Post("/recompute", calculationHandler.Recompute)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", calculationHandler.GetCalculation)
				r.Put("/", calculationHandler.UpdateCalculation)
				r.Delete("/", calculationHandler.DeleteCalculation)
				r.Get("/growth", calculationHandler.GrowthSeries)
				r.Post("/share", shareHandler.CreateToken)
			})
		})

		// Read-only access via share token
		r.Get("/shared/{token}", shareHandler.GetShared)
	})

	return r
}
