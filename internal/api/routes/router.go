package routes

import (
	"net/http"

	"github.com/yogeshtekawade0602/bicycle-project/internal/api/handlers"
	"github.com/yogeshtekawade0602/bicycle-project/internal/api/middleware"
	"github.com/yogeshtekawade0602/bicycle-project/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	dwellerHandler *handlers.DwellerHandler
	rentalHandler  *handlers.RentalHandler
	healthHandler  *handlers.HealthHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	dwellerHandler *handlers.DwellerHandler,
	rentalHandler *handlers.RentalHandler,
	healthHandler *handlers.HealthHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		dwellerHandler: dwellerHandler,
		rentalHandler:  rentalHandler,
		healthHandler:  healthHandler,

		metrics: metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)

	// Listing
	r.mux.HandleFunc("GET /{$}", r.dwellerHandler.Dashboard)
	r.mux.HandleFunc("GET /dashboard", r.dwellerHandler.Dashboard)

	// Combined management form
	r.mux.HandleFunc("POST /manage_dweller", r.dwellerHandler.ManageDweller)

	// Standalone forms
	r.mux.HandleFunc("GET /add", r.dwellerHandler.AddForm)
	r.mux.HandleFunc("POST /add", r.dwellerHandler.AddSubmit)
	r.mux.HandleFunc("GET /edit/{id}", r.dwellerHandler.EditForm)
	r.mux.HandleFunc("POST /edit/{id}", r.dwellerHandler.EditSubmit)
	r.mux.HandleFunc("POST /delete/{id}", r.dwellerHandler.Delete)

	// Rentals
	r.mux.HandleFunc("POST /manage_rental/{id}", r.rentalHandler.ManageRental)

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	return handler
}
