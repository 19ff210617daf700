package recording

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
)

// recordingRepo defines the table-store operations needed by the recording service.
type recordingRepo interface {
	Create(ctx context.Context, rec domain.Recording) (domain.Recording, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Recording, error)
	GetForUser(ctx context.Context, id uuid.UUID, userID string) (domain.Recording, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Recording, error)
	DeleteForUser(ctx context.Context, id uuid.UUID, userID string) error
}

// objectStore defines the object-storage operations needed by the recording service.
type objectStore interface {
	Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, path string) error
	PublicURL(path string) string
}

// profileRepo is used for the best-effort profile upsert during upload.
type profileRepo interface {
	Upsert(ctx context.Context, p domain.UserProfile) (domain.UserProfile, error)
}

// readiness reports whether the external backend handle is usable.
type readiness interface {
	Ready() error
}

// Observer receives workflow outcomes for metrics.
type Observer interface {
	ObserveUpload(outcome string)
	ObserveCompensation(outcome string)
}

// Upload outcomes.
const (
	OutcomeOK            = "ok"
	OutcomeInvalid       = "invalid"
	OutcomeStorageError  = "storage_error"
	OutcomeMetadataError = "metadata_error"
	OutcomeFailed        = "failed"
)

// Config holds recording workflow policy.
type Config struct {
	// DefaultExtension is used when the uploaded filename carries none.
	DefaultExtension string
	// EnforceListOwnership rejects listing another user's recordings with ErrForbidden.
	EnforceListOwnership bool
	// DefaultFullName is used for the profile upserted during upload.
	DefaultFullName string
}

// Service implements the recording upload, query and delete workflows.
type Service struct {
	log        *slog.Logger
	ready      readiness
	recordings recordingRepo
	objects    objectStore
	profiles   profileRepo
	observer   Observer
	cfg        Config
	now        func() time.Time
}

// NewService creates a new recording service. observer may be nil.
func NewService(
	logger *slog.Logger,
	ready readiness,
	recordings recordingRepo,
	objects objectStore,
	profiles profileRepo,
	observer Observer,
	cfg Config,
) *Service {
	if cfg.DefaultFullName == "" {
		cfg.DefaultFullName = domain.DefaultFullName
	}
	return &Service{
		log:        logger.With("service", "recording"),
		ready:      ready,
		recordings: recordings,
		objects:    objects,
		profiles:   profiles,
		observer:   observer,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *Service) observeUpload(outcome string) {
	if s.observer != nil {
		s.observer.ObserveUpload(outcome)
	}
}

func (s *Service) observeCompensation(outcome string) {
	if s.observer != nil {
		s.observer.ObserveCompensation(outcome)
	}
}

// parseRecordingID maps a malformed id to ErrNotFound: no row can carry it.
func parseRecordingID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrNotFound
	}
	return id, nil
}
