package routes

import (
	"net/http"
	"time"

	"github.com/casting-agency/api/app"
	"github.com/casting-agency/api/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", deps.HealthHandler.HandleLiveness)
	r.Get("/readyz", deps.HealthHandler.HandleReadiness)

	// Browser login flow
	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", deps.AuthHandler.HandleLogin)
		r.Get("/callback", deps.AuthHandler.HandleCallback)
		r.Get("/logout", deps.AuthHandler.HandleLogout)
	})

	// Protected resources; each route declares exactly one required permission
	guard := deps.AuthMiddleware

	r.Route("/actors", func(r chi.Router) {
		r.With(guard.RequirePermission("view:actors")).Get("/", deps.ActorHandler.HandleList)
		r.With(guard.RequirePermission("post:actor")).Post("/", deps.ActorHandler.HandleCreate)
		r.With(guard.RequirePermission("update:actor")).Patch("/{id}", deps.ActorHandler.HandleUpdate)
		r.With(guard.RequirePermission("delete:actor")).Delete("/{id}", deps.ActorHandler.HandleDelete)
	})

	r.Route("/movies", func(r chi.Router) {
		r.With(guard.RequirePermission("view:movies")).Get("/", deps.MovieHandler.HandleList)
		r.With(guard.RequirePermission("post:movie")).Post("/", deps.MovieHandler.HandleCreate)
		r.With(guard.RequirePermission("update:movie")).Patch("/{id}", deps.MovieHandler.HandleUpdate)
		r.With(guard.RequirePermission("delete:movie")).Delete("/{id}", deps.MovieHandler.HandleDelete)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteMethodNotAllowed(w)
	})

	return r
}
