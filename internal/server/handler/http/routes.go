package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/WorkoutTracker/internal/middleware"
	"github.com/atinyakov/WorkoutTracker/internal/server/respond"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// ReadinessFunc reports whether the service dependencies are reachable.
type ReadinessFunc func(ctx context.Context) error

// RouterConfig carries everything NewRouter needs besides the handlers.
type RouterConfig struct {
	Logger       *zap.Logger
	Tokens       middleware.TokenParser
	Ready        ReadinessFunc
	RateRPS      int
	RateBurst    int
	MaxBodyBytes int64
}

// NewRouter constructs and returns an HTTP handler that serves
// the workout API.
//
// Routes:
//
//	GET    /health               → liveness
//	GET    /ready                → readiness (cfg.Ready)
//	POST   /api/user/signup      → authHandler.Signup
//	POST   /api/user/login       → authHandler.Login
//	POST   /api/workouts         → workoutHandler.Create (BearerAuth)
//	GET    /api/workouts         → workoutHandler.List   (BearerAuth)
//	GET    /api/workouts/{id}    → workoutHandler.Get    (BearerAuth)
//	PATCH  /api/workouts/{id}    → workoutHandler.Update (BearerAuth)
//	DELETE /api/workouts/{id}    → workoutHandler.Delete (BearerAuth)
//
// Middleware chain (applied in order): request id, real ip, panic recovery,
// request logging, rate limiting, body size limit. Requests with a body
// must be application/json.
func NewRouter(
	authHandler *AuthHandler,
	workoutHandler *WorkoutHandler,
	cfg RouterConfig,
) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.RateLimit(cfg.RateRPS, cfg.RateBurst))
	r.Use(middleware.RequestSizeLimit(cfg.MaxBodyBytes))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Ready != nil {
			if err := cfg.Ready(r.Context()); err != nil {
				logger.Warn("readiness check failed", zap.Error(err))
				respond.Error(w, http.StatusServiceUnavailable, "not ready")
				return
			}
		}
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	r.Route("/api", func(r chi.Router) {
		// Only allow requests with Content-Type: application/json
		r.Use(chiMiddleware.AllowContentType("application/json"))

		// Public endpoints
		r.Post("/user/signup", authHandler.Signup)
		r.Post("/user/login", authHandler.Login)

		// Protected group: requires a valid bearer token
		r.Route("/workouts", func(r chi.Router) {
			r.Use(middleware.BearerAuth(cfg.Tokens))

			r.Get("/", workoutHandler.List)
			r.Post("/", workoutHandler.Create)
			r.Get("/{id}", workoutHandler.Get)
			r.Patch("/{id}", workoutHandler.Update)
			r.Delete("/{id}", workoutHandler.Delete)
		})
	})

	return r
}
