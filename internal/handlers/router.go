package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/trinitynoble/BudgetBuddyProject/internal/middleware"
)

// RouterConfig collects everything the HTTP surface needs.
type RouterConfig struct {
	Auth         *AuthHandler
	Transactions *RecordHandler
	Budget       *RecordHandler
	AuthMW       *middleware.AuthMiddleware
	RateLimiter  *middleware.RateLimiter // optional
	CORSOrigin   string
}

// NewRouter assembles the full API under /api.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := chi.NewRouter()

	mux.Use(chimw.RequestID)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.RateLimiter != nil {
		mux.Use(cfg.RateLimiter.Middleware)
	}

	mux.Route("/api", func(api chi.Router) {
		api.Get("/health", health)

		api.Post("/register", cfg.Auth.Register)
		api.Post("/login", cfg.Auth.Login)
		api.Post("/forgot-password", cfg.Auth.ForgotPassword)

		api.Group(func(protected chi.Router) {
			protected.Use(cfg.AuthMW.RequireAuth)
			protected.Get("/profile", cfg.Auth.Profile)
			protected.Mount("/transactions", cfg.Transactions.Routes())
			protected.Mount("/budget", cfg.Budget.Routes())
		})
	})

	return mux
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
