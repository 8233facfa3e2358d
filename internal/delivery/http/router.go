package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "devevents/docs"
	"devevents/internal/delivery/http/controllers"
	"devevents/internal/delivery/http/middleware"
	"devevents/internal/domain"
)

// RouterConfig carries the controllers and cross-cutting settings for NewRouter.
type RouterConfig struct {
	Logger         *slog.Logger
	Events         *controllers.EventController
	Bookings       *controllers.BookingController
	Health         *controllers.HealthController
	Verifier       domain.TokenVerifier // nil leaves organizer routes open
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	organizer := middleware.RequireAuth(cfg.Verifier, cfg.Logger)

	mux.HandleFunc("GET /health", cfg.Health.Health)

	// Events
	mux.HandleFunc("GET /events", cfg.Events.ListEvents)
	mux.HandleFunc("POST /events", organizer(cfg.Events.CreateEvent))
	mux.HandleFunc("GET /events/{slug}", cfg.Events.GetEventBySlug)
	mux.HandleFunc("PATCH /events/{eventID}", organizer(cfg.Events.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", organizer(cfg.Events.DeleteEvent))

	// Bookings
	mux.HandleFunc("POST /events/{eventID}/bookings", cfg.Bookings.CreateBooking)
	mux.HandleFunc("GET /events/{eventID}/bookings", organizer(cfg.Bookings.ListBookings))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logging(cfg.Logger),
		middleware.Recovery(cfg.Logger),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.Timeout(cfg.RequestTimeout),
	)
}
