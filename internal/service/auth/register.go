package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/voicerec-backend/internal/adapter/provider/gotrue"
	"github.com/heartmarshall/voicerec-backend/internal/domain"
)

// Register creates the user at the identity provider and seeds the local
// profile row. A provider rejection (duplicate email, weak password) is
// returned as a validation error carrying the provider's message.
func (s *Service) Register(ctx context.Context, input RegisterInput) (domain.Identity, error) {
	if err := s.ready.Ready(); err != nil {
		return domain.Identity{}, err
	}

	input = input.normalize()

	// Step 1: Validate input
	if err := input.Validate(); err != nil {
		return domain.Identity{}, err
	}

	// Step 2: Create the user at the provider
	identity, err := s.provider.SignUp(ctx, input.Email, input.Password, map[string]any{"name": input.Name})
	if err != nil {
		var perr *gotrue.ProviderError
		if errors.As(err, &perr) {
			return domain.Identity{}, domain.NewValidationError("registration", perr.Message)
		}
		return domain.Identity{}, fmt.Errorf("auth.Register: %w", err)
	}

	// Step 3: Seed the profile. The provider account already exists, so a
	// failure here is logged and reconciled on the next profile sync.
	now := s.now().UTC()
	email := identity.Email
	if email == "" {
		email = input.Email
	}
	profile := domain.UserProfile{
		ID:        identity.ID,
		Email:     email,
		FullName:  identity.ResolveFullName(input.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.profiles.Upsert(ctx, profile); err != nil {
		s.log.WarnContext(ctx, "register: profile seed failed",
			slog.String("user_id", identity.ID),
			slog.String("error", err.Error()))
	}

	s.log.InfoContext(ctx, "user registered via password",
		slog.String("user_id", identity.ID))

	return identity, nil
}
