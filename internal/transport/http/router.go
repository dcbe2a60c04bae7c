package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"minifeed/internal/handler"
	"minifeed/internal/httputil"
	authmw "minifeed/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler *handler.AuthHandler
	PostHandler *handler.PostHandler
	UserHandler *handler.UserHandler
	FeedHandler *handler.FeedHandler
	JWTSecret   string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes - no authentication required
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)

			// Role assignment requires an authenticated admin
			r.Group(func(r chi.Router) {
				r.Use(authmw.AuthMiddleware(cfg.JWTSecret))
				r.Use(authmw.RequireAdmin)
				r.Post("/assignRole", cfg.AuthHandler.AssignRole)
			})
		})

		// Protected routes - require authentication
		r.Group(func(r chi.Router) {
			r.Use(authmw.AuthMiddleware(cfg.JWTSecret))

			r.Route("/posts", func(r chi.Router) {
				r.Post("/", cfg.PostHandler.Create)
				r.Get("/feed", cfg.FeedHandler.GetFeed)
				r.Get("/{id}", cfg.PostHandler.GetByID)
				r.Put("/{id}", cfg.PostHandler.Update)
				r.Delete("/{id}", cfg.PostHandler.Delete)
			})

			// The like route lives under /users alongside follow/unfollow.
			// The shared {id} segment is a username for follow/unfollow and
			// a post id for like.
			r.Route("/users", func(r chi.Router) {
				r.Post("/{id}/follow", cfg.UserHandler.Follow)
				r.Post("/{id}/unfollow", cfg.UserHandler.Unfollow)
				r.Post("/{id}/like", cfg.UserHandler.Like)
			})
		})
	})

	return r
}
