package recording

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
	"github.com/heartmarshall/voicerec-backend/pkg/ctxutil"
)

// UploadResult identifies a newly stored recording.
type UploadResult struct {
	RecordingID uuid.UUID
	AudioURL    string
}

// Upload stores the audio object, then the metadata row. If the row cannot be
// written the object is removed again so no row ever points at a missing object.
//
// Errors: ErrValidation for bad input, ErrStorageWrite when the object write
// fails, ErrMetadataWrite when the row write fails.
func (s *Service) Upload(ctx context.Context, input UploadInput) (UploadResult, error) {
	if err := s.ready.Ready(); err != nil {
		return UploadResult{}, err
	}

	caller, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return UploadResult{}, domain.ErrUnauthorized
	}

	// Step 1: Validate input
	input = input.normalize()
	if err := input.Validate(); err != nil {
		s.observeUpload(OutcomeInvalid)
		return UploadResult{}, err
	}

	// Step 2: Write the object under the caller's prefix
	filename := domain.ObjectFilename(uuid.New(), input.Filename, s.cfg.DefaultExtension)
	path := domain.ObjectPath(caller.ID, filename)

	if err := s.objects.Put(ctx, path, input.Audio, input.Size, input.ContentType); err != nil {
		s.log.ErrorContext(ctx, "upload: object write failed",
			slog.String("user_id", caller.ID),
			slog.String("path", path),
			slog.String("error", err.Error()))
		s.observeUpload(OutcomeStorageError)
		return UploadResult{}, fmt.Errorf("recording.Upload put %s: %w: %v", path, domain.ErrStorageWrite, err)
	}

	// Step 3: Resolve the public URL
	audioURL := s.objects.PublicURL(path)

	// Step 4: Best-effort profile upsert
	s.syncProfile(ctx, caller)

	// Step 5: Insert the metadata row
	rec := domain.Recording{
		ID:          uuid.New(),
		UserID:      caller.ID,
		Title:       input.Title,
		Description: input.Description,
		ScriptText:  input.ScriptText,
		AudioURL:    audioURL,
		CreatedAt:   s.now().UTC(),
	}

	created, err := s.recordings.Create(ctx, rec)
	if err != nil {
		// Step 6: Compensate
		s.log.ErrorContext(ctx, "upload: metadata write failed",
			slog.String("user_id", caller.ID),
			slog.String("recording_id", rec.ID.String()),
			slog.String("error", err.Error()))
		s.removeObject(ctx, path)
		s.observeUpload(OutcomeMetadataError)
		return UploadResult{}, fmt.Errorf("recording.Upload insert %s: %w: %v", rec.ID, domain.ErrMetadataWrite, err)
	}

	s.log.InfoContext(ctx, "recording uploaded",
		slog.String("user_id", caller.ID),
		slog.String("recording_id", created.ID.String()),
		slog.Int64("size", input.Size))
	s.observeUpload(OutcomeOK)

	return UploadResult{RecordingID: created.ID, AudioURL: created.AudioURL}, nil
}

// syncProfile upserts the caller's profile. Failures are logged only.
func (s *Service) syncProfile(ctx context.Context, caller domain.Identity) {
	if s.profiles == nil {
		return
	}
	p := domain.ProfileFromIdentity(caller, s.cfg.DefaultFullName, s.now().UTC())
	if _, err := s.profiles.Upsert(ctx, p); err != nil {
		s.log.WarnContext(ctx, "upload: profile upsert failed",
			slog.String("user_id", caller.ID),
			slog.String("error", err.Error()))
	}
}

// removeObject deletes an object written earlier in a failed upload. It runs
// detached from cancellation so a cancelled request still cleans up.
func (s *Service) removeObject(ctx context.Context, path string) {
	if err := s.objects.Remove(context.WithoutCancel(ctx), path); err != nil {
		s.log.ErrorContext(ctx, "upload: compensation failed, object orphaned",
			slog.String("path", path),
			slog.String("error", err.Error()))
		s.observeCompensation(OutcomeFailed)
		return
	}
	s.log.WarnContext(ctx, "upload: object removed after metadata failure", slog.String("path", path))
	s.observeCompensation(OutcomeOK)
}
