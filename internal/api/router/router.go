package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nexusdigital/agency-api/internal/api/respond"
	"github.com/nexusdigital/agency-api/internal/appointments"
	"github.com/nexusdigital/agency-api/internal/chatbot"
	"github.com/nexusdigital/agency-api/internal/contacts"
	httpmiddleware "github.com/nexusdigital/agency-api/internal/http/middleware"
	"github.com/nexusdigital/agency-api/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	AppointmentsHandler *appointments.Handler
	ContactsHandler     *contacts.Handler
	ChatHandler         *chatbot.Handler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string
	RateLimitRPS        float64
	RateLimitBurst      int
}

// New creates a Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.RateLimitRPS > 0 {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", healthCheck)

		if cfg.AppointmentsHandler != nil {
			api.Route("/appointments", func(r chi.Router) {
				r.Post("/", cfg.AppointmentsHandler.Book)
				r.Get("/", cfg.AppointmentsHandler.List)
				r.Get("/availability/{date}", cfg.AppointmentsHandler.Availability)
				r.Put("/{id}/confirm", cfg.AppointmentsHandler.Confirm)
				r.Put("/{id}/cancel", cfg.AppointmentsHandler.Cancel)
			})
		}

		if cfg.ContactsHandler != nil {
			api.Route("/contacts", func(r chi.Router) {
				r.Post("/", cfg.ContactsHandler.Submit)
				r.Get("/", cfg.ContactsHandler.List)
				r.Get("/{id}", cfg.ContactsHandler.Get)
				r.Put("/{id}/read", cfg.ContactsHandler.MarkRead)
			})
		}

		if cfg.ChatHandler != nil {
			api.Route("/chat", func(r chi.Router) {
				r.Post("/messages", cfg.ChatHandler.HandleMessage)
				r.Get("/history", cfg.ChatHandler.HandleHistory)
			})
		}
	})

	if cfg.ChatHandler != nil {
		r.Get("/ws/chat", cfg.ChatHandler.HandleWebSocket)
	}

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	respond.OK(w, http.StatusOK, "Backend is running", nil)
}
