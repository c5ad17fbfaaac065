package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lucasmendez/rolegate/app"
	"github.com/lucasmendez/rolegate/handlers"
	"github.com/lucasmendez/rolegate/models"
)

// SetupRoutes configures all application routes and middleware. Each
// protected route group declares its role allow-list here, at startup.
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", handlers.HealthCheck(deps))
	r.Get("/readyz", handlers.ReadinessCheck(deps))

	r.Route("/api", func(r chi.Router) {
		// Auth endpoints
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handlers.RegisterHandler(deps))
			r.Post("/login", handlers.LoginHandler(deps))
			r.With(deps.Auth.RequireRoles(models.AllRoles()...)).
				Get("/logout", handlers.LogoutHandler(deps))
		})

		// User endpoints
		r.Route("/users", func(r chi.Router) {
			r.With(deps.Auth.RequireRoles(models.AllRoles()...)).
				Get("/me", handlers.GetCurrentUserHandler(deps))

			// User management (admin only)
			r.Group(func(r chi.Router) {
				r.Use(deps.Auth.RequireRoles(models.RoleAdmin))
				r.Get("/", handlers.ListUsersHandler(deps))
				r.Get("/{id}", handlers.GetUserHandler(deps))
				r.Delete("/{id}", handlers.DeleteUserHandler(deps))
			})
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":"fail","message":"endpoint not found"}`))
	})

	return r
}
