package profile

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
)

// profileRepo defines the table-store operations needed by the profile service.
type profileRepo interface {
	Upsert(ctx context.Context, p domain.UserProfile) (domain.UserProfile, error)
	GetByID(ctx context.Context, id string) (domain.UserProfile, error)
}

// metadataUpdater pushes profile changes back to the identity provider.
type metadataUpdater interface {
	UpdateUserMetadata(ctx context.Context, accessToken string, data map[string]any) error
}

type readiness interface {
	Ready() error
}

// Config holds profile policy.
type Config struct {
	// OpenCreate allows Create without a caller identity and for any user_id.
	OpenCreate bool
	// DefaultFullName is used when no name can be resolved.
	DefaultFullName string
}

// Service implements the profile sync, get, create and update workflows.
type Service struct {
	log      *slog.Logger
	ready    readiness
	profiles profileRepo
	provider metadataUpdater
	cfg      Config
	now      func() time.Time
}

// NewService creates a new profile service. provider may be nil, in which
// case Update skips the identity-provider write.
func NewService(logger *slog.Logger, ready readiness, profiles profileRepo, provider metadataUpdater, cfg Config) *Service {
	if cfg.DefaultFullName == "" {
		cfg.DefaultFullName = domain.DefaultFullName
	}
	return &Service{
		log:      logger.With("service", "profile"),
		ready:    ready,
		profiles: profiles,
		provider: provider,
		cfg:      cfg,
		now:      time.Now,
	}
}
