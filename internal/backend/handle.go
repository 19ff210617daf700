// Package backend holds the process-wide handle to the external services:
// the table store, the object store and the identity provider.
//
// The handle is opened once at startup and is read-only afterwards. If opening
// fails the handle stays in an unavailable state; Ready then reports
// domain.ErrServiceUnavailable and every workflow fails fast instead of the
// process crashing.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/voicerec-backend/internal/adapter/postgres"
	"github.com/heartmarshall/voicerec-backend/internal/adapter/provider/gotrue"
	"github.com/heartmarshall/voicerec-backend/internal/adapter/storage"
	"github.com/heartmarshall/voicerec-backend/internal/auth"
	"github.com/heartmarshall/voicerec-backend/internal/config"
	"github.com/heartmarshall/voicerec-backend/internal/domain"
)

type tokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (domain.Identity, error)
}

// Handle is the initialized (or failed) set of external clients.
type Handle struct {
	pool     *pgxpool.Pool
	objects  storage.ObjectStore
	provider *gotrue.Client
	tokens   tokenVerifier
	err      error
}

// Deps are the clients of an already-initialized handle.
type Deps struct {
	Pool     *pgxpool.Pool
	Objects  storage.ObjectStore
	Provider *gotrue.Client
	Tokens   tokenVerifier
}

// New wraps already-built clients in a ready handle.
func New(d Deps) *Handle {
	return &Handle{
		pool:     d.Pool,
		objects:  d.Objects,
		provider: d.Provider,
		tokens:   d.Tokens,
	}
}

// Unavailable returns a handle that reports cause from Ready.
func Unavailable(cause error) *Handle {
	if cause == nil {
		cause = fmt.Errorf("backend not initialized")
	}
	return &Handle{err: cause}
}

// Open builds every external client from cfg. It never returns nil: a failure
// is logged and recorded in the returned handle.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) *Handle {
	log := logger.With("component", "backend")

	provider := gotrue.NewClient(cfg.Auth.ProviderURL, cfg.Auth.AnonKey, logger)

	var tokens tokenVerifier = provider
	if cfg.Auth.IsLocalVerification() {
		tokens = auth.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.ErrorContext(ctx, "backend unavailable: table store", slog.String("error", err.Error()))
		return Unavailable(fmt.Errorf("table store: %w", err))
	}

	objects, err := storage.NewFromConfig(ctx, cfg.Storage)
	if err != nil {
		pool.Close()
		log.ErrorContext(ctx, "backend unavailable: object store", slog.String("error", err.Error()))
		return Unavailable(fmt.Errorf("object store: %w", err))
	}

	log.InfoContext(ctx, "backend ready",
		slog.String("storage", cfg.Storage.Type),
		slog.String("bucket", cfg.Storage.Bucket),
		slog.String("verify_mode", cfg.Auth.VerifyMode),
	)

	return New(Deps{Pool: pool, Objects: objects, Provider: provider, Tokens: tokens})
}

// Ready returns nil when the handle is usable and wraps
// domain.ErrServiceUnavailable otherwise. A nil handle is unavailable.
func (h *Handle) Ready() error {
	if h == nil {
		return domain.ErrServiceUnavailable
	}
	if h.err != nil {
		return fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, h.err)
	}
	return nil
}

// Err returns the initialization error, if any.
func (h *Handle) Err() error {
	if h == nil {
		return fmt.Errorf("backend not initialized")
	}
	return h.err
}

// VerifyToken resolves a bearer token through the configured verifier.
func (h *Handle) VerifyToken(ctx context.Context, token string) (domain.Identity, error) {
	if err := h.Ready(); err != nil {
		return domain.Identity{}, err
	}
	if h.tokens == nil {
		return domain.Identity{}, fmt.Errorf("%w: no token verifier", domain.ErrServiceUnavailable)
	}
	return h.tokens.VerifyToken(ctx, token)
}

// Pool returns the table-store pool (nil when unavailable).
func (h *Handle) Pool() *pgxpool.Pool {
	if h == nil {
		return nil
	}
	return h.pool
}

// Objects returns the object store (nil when unavailable).
func (h *Handle) Objects() storage.ObjectStore {
	if h == nil {
		return nil
	}
	return h.objects
}

// Provider returns the identity provider client (nil when unavailable).
func (h *Handle) Provider() *gotrue.Client {
	if h == nil {
		return nil
	}
	return h.provider
}

// PingDatabase checks the table store.
func (h *Handle) PingDatabase(ctx context.Context) error {
	if err := h.Ready(); err != nil {
		return err
	}
	return postgres.Ping(ctx, h.pool)
}

// CheckStorage checks the object store.
func (h *Handle) CheckStorage(ctx context.Context) error {
	if err := h.Ready(); err != nil {
		return err
	}
	if h.objects == nil {
		return fmt.Errorf("object store is not initialized")
	}
	return h.objects.Check(ctx)
}

// Close releases the table-store pool.
func (h *Handle) Close() {
	if h != nil && h.pool != nil {
		h.pool.Close()
	}
}
