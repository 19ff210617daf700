package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
	"github.com/heartmarshall/voicerec-backend/pkg/ctxutil"
)

// Sync upserts the caller's profile from their identity: email from the
// identity, full_name from user_metadata.full_name, then .name, then the default.
func (s *Service) Sync(ctx context.Context) (domain.UserProfile, error) {
	if err := s.ready.Ready(); err != nil {
		return domain.UserProfile{}, err
	}

	caller, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.UserProfile{}, domain.ErrUnauthorized
	}

	p, err := s.profiles.Upsert(ctx, domain.ProfileFromIdentity(caller, s.cfg.DefaultFullName, s.now().UTC()))
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("profile.Sync: %w", err)
	}

	s.log.InfoContext(ctx, "profile synced", slog.String("user_id", caller.ID))
	return p, nil
}

// Get returns the caller's profile. A missing row is reconciled from the
// identity and returned.
func (s *Service) Get(ctx context.Context) (domain.UserProfile, error) {
	if err := s.ready.Ready(); err != nil {
		return domain.UserProfile{}, err
	}

	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.UserProfile{}, domain.ErrUnauthorized
	}

	p, err := s.profiles.GetByID(ctx, callerID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.UserProfile{}, fmt.Errorf("profile.Get: %w", err)
	}

	s.log.InfoContext(ctx, "profile missing, reconciling from identity", slog.String("user_id", callerID))
	return s.Sync(ctx)
}

// Create upserts a profile for an explicit user_id.
//
// With OpenCreate the route needs no identity and any user_id is accepted.
// Otherwise the caller must be authenticated and user_id must be the caller's
// own id (ErrForbidden).
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.UserProfile, error) {
	if err := s.ready.Ready(); err != nil {
		return domain.UserProfile{}, err
	}

	input = input.normalize()
	if err := input.Validate(); err != nil {
		return domain.UserProfile{}, err
	}

	if !s.cfg.OpenCreate {
		callerID, ok := ctxutil.UserIDFromCtx(ctx)
		if !ok {
			return domain.UserProfile{}, domain.ErrUnauthorized
		}
		if err := domain.Authorize(input.UserID, callerID); err != nil {
			return domain.UserProfile{}, err
		}
	}

	fullName := input.FullName
	if fullName == "" {
		fullName = s.cfg.DefaultFullName
	}

	now := s.now().UTC()
	p, err := s.profiles.Upsert(ctx, domain.UserProfile{
		ID:        input.UserID,
		Email:     input.Email,
		FullName:  fullName,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("profile.Create: %w", err)
	}

	s.log.InfoContext(ctx, "profile created", slog.String("user_id", input.UserID))
	return p, nil
}

// Update sets the caller's full name. The identity provider's user_metadata is
// updated as well; failure there is logged and does not fail the request.
func (s *Service) Update(ctx context.Context, input UpdateInput) (domain.UserProfile, error) {
	if err := s.ready.Ready(); err != nil {
		return domain.UserProfile{}, err
	}

	input = input.normalize()
	if err := input.Validate(); err != nil {
		return domain.UserProfile{}, err
	}

	caller, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.UserProfile{}, domain.ErrUnauthorized
	}

	now := s.now().UTC()
	p, err := s.profiles.Upsert(ctx, domain.UserProfile{
		ID:        caller.ID,
		Email:     caller.Email,
		FullName:  input.FullName,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("profile.Update: %w", err)
	}

	s.pushMetadata(ctx, caller.ID, map[string]any{"full_name": input.FullName})

	s.log.InfoContext(ctx, "profile updated", slog.String("user_id", caller.ID))
	return p, nil
}

// pushMetadata is best-effort: the local profile is already written.
func (s *Service) pushMetadata(ctx context.Context, userID string, data map[string]any) {
	if s.provider == nil {
		return
	}

	token := ctxutil.AccessTokenFromCtx(ctx)
	if token == "" {
		s.log.WarnContext(ctx, "profile update: no access token, provider metadata not updated",
			slog.String("user_id", userID))
		return
	}

	if err := s.provider.UpdateUserMetadata(ctx, token, data); err != nil {
		s.log.WarnContext(ctx, "profile update: provider metadata update failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
	}
}
