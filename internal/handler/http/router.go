package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/utamahr/claims-backend-go/internal/config"
	"github.com/utamahr/claims-backend-go/internal/domain/user"
	"github.com/utamahr/claims-backend-go/internal/handler/http/middleware"
	"github.com/utamahr/claims-backend-go/internal/pkg/jwt"
)

func NewRouter(cfg *config.Config, jwtService jwt.Service, claimHandler ClaimHandler, employeeHandler EmployeeHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "utamahr-claims"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/claims", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionClaimSubmit)).
					Post("/", claimHandler.Submit)

				// The type segment is regex-bound so it can share the
				// path level with the claim-id routes below; a claim id
				// can never spell a claim type.
				r.Get("/{type:financial|overtime}", claimHandler.List)

				r.With(middleware.RequirePermission(user.PermissionReportsView)).
					Get("/{type:financial|overtime}/summary", claimHandler.Summary)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/actions", claimHandler.Actions)
					r.Post("/approve", claimHandler.Approve)
					r.Post("/reject", claimHandler.Reject)
				})
			})

			r.With(middleware.RequirePermission(user.PermissionPolicyView)).
				Get("/approval-policies/{type}", claimHandler.GetPolicy)

			r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).
				Route("/employees", func(r chi.Router) {
					r.Get("/", employeeHandler.List)
					r.Get("/{id}", employeeHandler.Get)
				})
		})
	})
	return r
}
