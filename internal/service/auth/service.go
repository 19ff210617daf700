package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/voicerec-backend/internal/adapter/provider/gotrue"
	"github.com/heartmarshall/voicerec-backend/internal/domain"
)

// identityProvider defines the provider operations needed by the auth service.
type identityProvider interface {
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (domain.Identity, error)
	SignInWithPassword(ctx context.Context, email, password string) (gotrue.Session, error)
}

// profileRepo defines the profile repository interface needed by auth service.
type profileRepo interface {
	Upsert(ctx context.Context, p domain.UserProfile) (domain.UserProfile, error)
}

type readiness interface {
	Ready() error
}

// Service implements register and login on top of the identity provider.
// Passwords and sessions never touch local storage.
type Service struct {
	log      *slog.Logger
	ready    readiness
	provider identityProvider
	profiles profileRepo
	now      func() time.Time
}

// NewService creates a new auth service instance.
func NewService(logger *slog.Logger, ready readiness, provider identityProvider, profiles profileRepo) *Service {
	return &Service{
		log:      logger.With("service", "auth"),
		ready:    ready,
		provider: provider,
		profiles: profiles,
		now:      time.Now,
	}
}
