package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/KCCPMG/ReadingList/internal/api/handlers"
	"github.com/KCCPMG/ReadingList/internal/auth"
	"github.com/KCCPMG/ReadingList/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(userService services.UserServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// CORS configuration, permissive enough for the browser extension
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	userHandler := handlers.NewUserHandler(userService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)

		// Routes below require a valid token for an existing user
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(userService))

			r.Get("/me", userHandler.GetMe)
			r.Post("/me/tags", userHandler.AddTag)
			r.Delete("/me/tags/{text}", userHandler.RemoveTag)
			r.Post("/me/links", userHandler.AddLink)
		})
	})

	return r
}
