// Package calculationsapi предоставляет маршруты для основного приложения.
package calculationsapi

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/calculations-api/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/calculations-api/internal/http/handlers/auth/register"
	calccreate "github.com/magabrotheeeer/calculations-api/internal/http/handlers/calculation/create"
	calclist "github.com/magabrotheeeer/calculations-api/internal/http/handlers/calculation/list"
	calcread "github.com/magabrotheeeer/calculations-api/internal/http/handlers/calculation/read"
	calcremove "github.com/magabrotheeeer/calculations-api/internal/http/handlers/calculation/remove"
	calcupdate "github.com/magabrotheeeer/calculations-api/internal/http/handlers/calculation/update"
	"github.com/magabrotheeeer/calculations-api/internal/http/handlers/health"
	"github.com/magabrotheeeer/calculations-api/internal/http/handlers/user/me"
	"github.com/magabrotheeeer/calculations-api/internal/http/handlers/user/password"
	"github.com/magabrotheeeer/calculations-api/internal/http/handlers/user/profile"
	"github.com/magabrotheeeer/calculations-api/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/calculations-api/internal/services/auth"
	calcservice "github.com/magabrotheeeer/calculations-api/internal/services/calculation"
	userservice "github.com/magabrotheeeer/calculations-api/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, userService *userservice.UserService, calcService *calcservice.CalculationService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/user/me", me.New(logger, userService).ServeHTTP)
			r.Put("/user/profile", profile.New(logger, userService).ServeHTTP)
			r.Put("/user/password", password.New(logger, userService).ServeHTTP)
			r.Post("/calculations", calccreate.New(logger, calcService).ServeHTTP)
			r.Get("/calculations", calclist.New(logger, calcService).ServeHTTP)
			r.Get("/calculations/{id}", calcread.New(logger, calcService).ServeHTTP)
			r.Put("/calculations/{id}", calcupdate.New(logger, calcService).ServeHTTP)
			r.Delete("/calculations/{id}", calcremove.New(logger, calcService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
