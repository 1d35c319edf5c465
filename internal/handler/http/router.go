package http

import (
	"log/slog"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	LogLevel       slog.Level
}

func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	reconciliationHandler ReconciliationHandler,
	allowanceHandler AllowanceHandler,
	leaveHandler LeaveHandler,
	eventsHandler EventsHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
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

	r.Route("/api/v1", func(r chi.Router) {

		// SSE authenticates with a short-lived query token
		r.Get("/events/stream", eventsHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Get("/events/token", eventsHandler.GetSSEToken)

			r.Route("/reconciliation", func(r chi.Router) {
				r.Get("/my", reconciliationHandler.GetMy)
				r.Post("/evaluate", reconciliationHandler.Evaluate)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/subjects/{subjectID}", reconciliationHandler.GetSubject)
				})
			})

			r.Route("/allowance", func(r chi.Router) {
				r.Get("/my/breakdown", allowanceHandler.GetMyBreakdown)
				r.Post("/breakdown/evaluate", allowanceHandler.EvaluateBreakdown)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/pending-count", leaveHandler.PendingCount)
				r.Post("/{id}/approve", leaveHandler.Approve)
				r.Post("/{id}/reject", leaveHandler.Reject)
			})
		})
	})

	return r
}
