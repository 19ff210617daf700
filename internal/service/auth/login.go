package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/voicerec-backend/internal/adapter/provider/gotrue"
	"github.com/heartmarshall/voicerec-backend/internal/domain"
)

// Login exchanges email and password for a provider session. Every provider
// rejection collapses to domain.ErrUnauthorized.
func (s *Service) Login(ctx context.Context, input LoginInput) (gotrue.Session, error) {
	if err := s.ready.Ready(); err != nil {
		return gotrue.Session{}, err
	}

	input = input.normalize()
	if err := input.Validate(); err != nil {
		return gotrue.Session{}, err
	}

	session, err := s.provider.SignInWithPassword(ctx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, domain.ErrServiceUnavailable) {
			return gotrue.Session{}, fmt.Errorf("auth.Login: %w", err)
		}
		s.log.InfoContext(ctx, "login rejected", slog.String("error", err.Error()))
		return gotrue.Session{}, fmt.Errorf("auth.Login: %w", domain.ErrUnauthorized)
	}

	s.log.InfoContext(ctx, "user logged in", slog.String("user_id", session.User.ID))
	return session, nil
}
