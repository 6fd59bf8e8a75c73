package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/alex/resume-builder/internal/api/handlers"
	"github.com/alex/resume-builder/internal/api/middleware"
	"github.com/alex/resume-builder/internal/service"
)

func NewRouter(services *service.Services, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, logger)
	resumeHandler := handlers.NewResumeHandler(services.Resume, logger)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth, logger))
				r.Get("/me", authHandler.Me)
			})
		})

		// Protected resume routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth, logger))

			r.Route("/resumes", func(r chi.Router) {
				r.Get("/", resumeHandler.List)
				r.Post("/", resumeHandler.Create)
				r.Get("/{id}", resumeHandler.Get)
				r.Put("/{id}", resumeHandler.Update)
				r.Delete("/{id}", resumeHandler.Delete)
			})
		})
	})

	return r
}
