package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"shop-agent/internal/auth"
	"shop-agent/internal/ratelimit"
	"shop-agent/internal/repository/db"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(authService *auth.Service, agentService Agent, limiter ratelimit.Store, database db.Database) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	chatHandlers := NewChatHandlers(agentService, limiter, database)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", chatHandlers.HealthHandler)
		api.Post("/register", authService.RegisterHandler)
		api.Post("/login", authService.LoginHandler)

		api.Group(func(protected chi.Router) {
			protected.Use(authService.Middleware)
			protected.Post("/chat", chatHandlers.ChatHandler)
			protected.Get("/sessions", chatHandlers.SessionsHandler)
			protected.Get("/sessions/{id}/messages", chatHandlers.SessionMessagesHandler)
		})
	})

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
