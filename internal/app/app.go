package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/heartmarshall/voicerec-backend/internal/adapter/postgres/profile"
	"github.com/heartmarshall/voicerec-backend/internal/adapter/postgres/recording"
	"github.com/heartmarshall/voicerec-backend/internal/auth"
	"github.com/heartmarshall/voicerec-backend/internal/backend"
	"github.com/heartmarshall/voicerec-backend/internal/config"
	"github.com/heartmarshall/voicerec-backend/internal/domain"
	"github.com/heartmarshall/voicerec-backend/internal/metrics"
	authsvc "github.com/heartmarshall/voicerec-backend/internal/service/auth"
	profilesvc "github.com/heartmarshall/voicerec-backend/internal/service/profile"
	recordingsvc "github.com/heartmarshall/voicerec-backend/internal/service/recording"
	"github.com/heartmarshall/voicerec-backend/internal/transport/middleware"
	"github.com/heartmarshall/voicerec-backend/internal/transport/rest"
)

// Run opens the backend handle, serves HTTP until ctx is cancelled and then
// shuts down gracefully. A backend that fails to open does not stop the
// server: workflows answer 503 until the process is restarted.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.InfoContext(ctx, "starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Bool("auth_dev_mode", cfg.Auth.DevMode),
	)
	if cfg.Auth.DevMode {
		logger.WarnContext(ctx, "auth dev mode enabled: requests without a valid token run as the fallback identity",
			slog.String("fallback_user_id", cfg.Auth.FallbackUserID))
	}

	handle := backend.Open(ctx, cfg, logger)
	defer handle.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler, cleanup := NewHandler(cfg, handle, logger, reg)
	defer cleanup()

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	logger.Info("http server stopped gracefully")
	return nil
}

// NewHandler wires repositories, services and handlers on top of handle and
// returns the HTTP handler plus a cleanup func for background workers.
func NewHandler(cfg *config.Config, handle *backend.Handle, logger *slog.Logger, reg *prometheus.Registry) (http.Handler, func()) {
	collector := metrics.NewCollector(reg)

	// Repositories
	recordingRepo := recording.New(handle.Pool())
	profileRepo := profile.New(handle.Pool())

	// Services
	verifier := auth.NewVerifier(logger, handle, auth.FallbackPolicy{
		DevMode: cfg.Auth.DevMode,
		Identity: domain.Identity{
			ID:    cfg.Auth.FallbackUserID,
			Email: cfg.Auth.FallbackEmail,
		},
	}, collector)

	recordingService := recordingsvc.NewService(logger, handle, recordingRepo, handle.Objects(), profileRepo, collector,
		recordingsvc.Config{
			DefaultExtension:     cfg.Upload.DefaultExtension,
			EnforceListOwnership: cfg.Recordings.EnforceListOwnership,
			DefaultFullName:      cfg.Profile.DefaultFullName,
		})

	profileService := profilesvc.NewService(logger, handle, profileRepo, handle.Provider(),
		profilesvc.Config{
			OpenCreate:      cfg.Profile.OpenCreate,
			DefaultFullName: cfg.Profile.DefaultFullName,
		})

	authService := authsvc.NewService(logger, handle, handle.Provider(), profileRepo)

	// Transport
	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.CleanupInterval)
	}

	router := rest.NewRouter(rest.RouterDeps{
		Logger:               logger,
		Health:               rest.NewHealthHandler(handle, BuildVersion()),
		Auth:                 rest.NewAuthHandler(authService, logger),
		Recordings:           rest.NewRecordingHandler(recordingService, cfg.Upload.MaxBytes, logger),
		Profiles:             rest.NewProfileHandler(profileService, logger),
		Authenticate:         middleware.Auth(verifier),
		AuthenticateOptional: middleware.OptionalAuth(verifier),
		ProfileOpenCreate:    cfg.Profile.OpenCreate,
		TrustProxyHeaders:    cfg.Server.TrustProxyHeaders,
		CORS:                 cfg.CORS,
		RateLimiter:          limiter,
		Metrics:              middleware.Metrics(collector),
		MetricsView:          metrics.Handler(reg),
	})

	cleanup := func() {
		if limiter != nil {
			limiter.Stop()
		}
	}
	return router, cleanup
}
