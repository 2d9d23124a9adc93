package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the process settings the router needs.
type RouterConfig struct {
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

type Handlers struct {
	Auth       AuthHandler
	User       UserHandler
	Settings   SettingsHandler
	Intern     InternHandler
	Attendance AttendanceHandler
	Dashboard  DashboardHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "interntrack"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.User.Me)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/mentors", h.User.ListMentors)
					r.Post("/", h.User.Create)
				})
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", h.Settings.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/", h.Settings.Update)
					r.Post("/values", h.Settings.AddValues)
					r.Delete("/", h.Settings.Delete)
				})
			})

			r.Route("/interns", func(r chi.Router) {
				r.Get("/", h.Intern.List)
				r.With(middleware.RequireRole(access.RoleMentor)).Get("/mentees", h.Intern.Mentees)
				r.Get("/{id}", h.Intern.Get)
				r.With(middleware.RequireRole(access.RoleAdmin, access.RoleMentor)).
					Patch("/{id}/progress", h.Intern.UpdateProgress)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Intern.Create)
					r.Post("/promote", h.Intern.Promote)
					r.Delete("/cleanup", h.Intern.Cleanup)
					r.Put("/{id}", h.Intern.Update)
					r.Delete("/{id}", h.Intern.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Post("/", h.Attendance.Mark)
				r.Get("/{id}", h.Attendance.Get)
				r.Put("/{id}", h.Attendance.Update)
				r.Delete("/{id}", h.Attendance.Delete)
			})

			r.Get("/dashboard", h.Dashboard.GetDashboard)
		})
	})
	return r
}
