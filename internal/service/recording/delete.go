package recording

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
	"github.com/heartmarshall/voicerec-backend/pkg/ctxutil"
)

// Delete removes the caller's recording and, best-effort, its audio object.
//
// Ownership is part of the lookup predicate, so a recording owned by someone
// else is reported exactly like a missing one (ErrNotFound).
func (s *Service) Delete(ctx context.Context, recordingID string) error {
	if err := s.ready.Ready(); err != nil {
		return err
	}

	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	id, err := parseRecordingID(recordingID)
	if err != nil {
		return err
	}

	// Step 1: Look up by (id, user_id)
	rec, err := s.recordings.GetForUser(ctx, id, callerID)
	if err != nil {
		return fmt.Errorf("recording.Delete: %w", err)
	}

	// Step 2: Best-effort object removal
	if path, ok := domain.ObjectPathFromURL(rec.AudioURL, callerID); ok {
		if err := s.objects.Remove(ctx, path); err != nil {
			s.log.WarnContext(ctx, "delete: object removal failed",
				slog.String("recording_id", id.String()),
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
	} else {
		s.log.WarnContext(ctx, "delete: cannot derive object path",
			slog.String("recording_id", id.String()),
			slog.String("audio_url", rec.AudioURL))
	}

	// Step 3: Delete the row with the same predicate
	if err := s.recordings.DeleteForUser(ctx, id, callerID); err != nil {
		return fmt.Errorf("recording.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "recording deleted",
		slog.String("user_id", callerID),
		slog.String("recording_id", id.String()))
	return nil
}
