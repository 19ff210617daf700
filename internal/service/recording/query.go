package recording

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
	"github.com/heartmarshall/voicerec-backend/pkg/ctxutil"
)

// ListForUser returns userID's recordings, newest first.
// With EnforceListOwnership, a caller other than userID gets ErrForbidden.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.Recording, error) {
	if err := s.ready.Ready(); err != nil {
		return nil, err
	}

	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.NewValidationError("user_id", "required")
	}

	if s.cfg.EnforceListOwnership {
		if err := domain.Authorize(userID, callerID); err != nil {
			return nil, err
		}
	}

	recs, err := s.recordings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("recording.ListForUser: %w", err)
	}
	return recs, nil
}

// Get returns one recording. ErrNotFound when absent, ErrForbidden when it
// belongs to another user.
func (s *Service) Get(ctx context.Context, recordingID string) (domain.Recording, error) {
	if err := s.ready.Ready(); err != nil {
		return domain.Recording{}, err
	}

	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Recording{}, domain.ErrUnauthorized
	}

	id, err := parseRecordingID(recordingID)
	if err != nil {
		return domain.Recording{}, err
	}

	rec, err := s.recordings.GetByID(ctx, id)
	if err != nil {
		return domain.Recording{}, fmt.Errorf("recording.Get: %w", err)
	}

	if err := domain.Authorize(rec.UserID, callerID); err != nil {
		return domain.Recording{}, err
	}
	return rec, nil
}
