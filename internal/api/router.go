package api

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sillaskon/incidentreporthub-be/internal/api/handlers"
	"github.com/sillaskon/incidentreporthub-be/internal/auth"
	"github.com/sillaskon/incidentreporthub-be/internal/config"
	"github.com/sillaskon/incidentreporthub-be/internal/county"
	"github.com/sillaskon/incidentreporthub-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	cfg *config.Config,
	db *sql.DB,
	issuer *auth.Issuer,
	directory *county.Directory,
	userService services.UserServiceProvider,
	requestService services.RequestServiceProvider,
	inboundService services.InboundServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS so the hosted form can talk to the API from another origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, issuer)
	requestHandler := handlers.NewRequestHandler(requestService)
	inboundHandler := handlers.NewInboundHandler(inboundService)
	adminHandler := handlers.NewAdminHandler(cfg.AdminToken, userService, requestService, inboundService, directory)
	opsHandler := handlers.NewOpsHandler(db)

	// Liveness probes
	r.Get("/ping", opsHandler.Ping)
	r.Get("/healthz", opsHandler.Healthz)

	// Auth
	r.Post("/register", authHandler.Register)
	r.Post("/token", authHandler.Token)

	// Incident requests (bearer-authenticated)
	r.Group(func(r chi.Router) {
		r.Use(issuer.Middleware())
		r.Post("/incident_request", requestHandler.Create)
		r.Get("/incident_request/recent", requestHandler.GetRecent)
	})

	// Inbound email webhook
	r.Post("/inbound", inboundHandler.Receive)

	// Admin surface, gated by the shared admin token
	r.Route("/admin", func(r chi.Router) {
		r.Use(adminHandler.RequireToken)
		r.Get("/users", adminHandler.ListUsers)
		r.Get("/incident_requests", adminHandler.ListRequests)
		r.Get("/inbound_emails", adminHandler.ListInbound)
		r.Post("/counties/refresh", adminHandler.RefreshCounties)
	})

	// The companion single-page submission form
	if cfg.WebDir != "" {
		if _, err := os.Stat(cfg.WebDir); err == nil {
			r.Handle("/*", http.FileServer(http.Dir(cfg.WebDir)))
		}
	}

	return r
}
