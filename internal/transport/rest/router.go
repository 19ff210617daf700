package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/heartmarshall/voicerec-backend/internal/config"
	"github.com/heartmarshall/voicerec-backend/internal/transport/middleware"
)

// RouterDeps holds everything the HTTP surface is assembled from.
type RouterDeps struct {
	Logger *slog.Logger

	Health     *HealthHandler
	Auth       *AuthHandler
	Recordings *RecordingHandler
	Profiles   *ProfileHandler

	// Authenticate guards every route that needs a caller identity.
	Authenticate func(http.Handler) http.Handler
	// AuthenticateOptional is used for POST /user/profile/create while
	// ProfileOpenCreate is set.
	AuthenticateOptional func(http.Handler) http.Handler
	ProfileOpenCreate    bool

	// TrustProxyHeaders rewrites the client address from forwarding headers
	// before logging and rate limiting. Leave off unless a proxy sets them.
	TrustProxyHeaders bool

	CORS        config.CORSConfig
	RateLimiter *middleware.RateLimiter
	Metrics     func(http.Handler) http.Handler
	MetricsView http.Handler
}

// NewRouter builds the chi router with the global middleware stack:
// request id, access log, panic recovery, CORS, metrics and rate limiting,
// outermost first.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	if d.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.CORS(d.CORS))
	if d.Metrics != nil {
		r.Use(d.Metrics)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Probes and scraping stay outside the rate limiter.
	r.Get("/", d.Health.Root)
	r.Get("/health", d.Health.Health)
	r.Get("/health/live", d.Health.Live)
	r.Get("/health/ready", d.Health.Ready)
	if d.MetricsView != nil {
		r.Handle("/metrics", d.MetricsView)
	}

	r.Group(func(r chi.Router) {
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Middleware)
		}

		r.Post("/auth/register", d.Auth.Register)
		r.Post("/auth/login", d.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(d.Authenticate)

			r.Post("/recordings/upload", d.Recordings.Upload)
			r.Get("/recordings/user/{user_id}", d.Recordings.ListForUser)
			r.Get("/recordings/{recording_id}", d.Recordings.Get)
			r.Delete("/recordings/{recording_id}", d.Recordings.Delete)

			r.Post("/user/profile/sync", d.Profiles.Sync)
			r.Get("/user/profile", d.Profiles.Get)
			r.Put("/user/profile/update", d.Profiles.Update)
			if !d.ProfileOpenCreate {
				r.Post("/user/profile/create", d.Profiles.Create)
			}
		})

		if d.ProfileOpenCreate {
			r.With(d.AuthenticateOptional).Post("/user/profile/create", d.Profiles.Create)
		}
	})

	return r
}
