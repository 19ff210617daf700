package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/heartmarshall/voicerec-backend/internal/adapter/provider/gotrue"
	"github.com/heartmarshall/voicerec-backend/internal/domain"
)

//go:generate moq -out identity_provider_mock_test.go -pkg auth . identityProvider profileRepo

const testUserID = "5f0c2a8e-3b8f-4d0e-9a5c-1f2e3d4c5b6a"

func newTestService(provider identityProvider, profiles profileRepo, ready readinessStub) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(logger, ready, provider, profiles)
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc
}

func okProfiles() *profileRepoMock {
	return &profileRepoMock{
		UpsertFunc: func(_ context.Context, p domain.UserProfile) (domain.UserProfile, error) {
			return p, nil
		},
	}
}

// ─── Register Tests ─────────────────────────────────────────────────────────

func TestService_Register_Success(t *testing.T) {
	t.Parallel()

	provider := &identityProviderMock{
		SignUpFunc: func(_ context.Context, email, _ string, metadata map[string]any) (domain.Identity, error) {
			return domain.Identity{ID: testUserID, Email: email, Metadata: metadata}, nil
		},
	}
	profiles := okProfiles()
	svc := newTestService(provider, profiles, readinessStub{})

	identity, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Ada@Example.COM ",
		Password: "secret123",
		Name:     "Ada Lovelace",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.ID != testUserID {
		t.Errorf("identity.ID = %q, want %q", identity.ID, testUserID)
	}

	signUps := provider.SignUpCalls()
	if len(signUps) != 1 {
		t.Fatalf("SignUp calls = %d, want 1", len(signUps))
	}
	if signUps[0].Email != "ada@example.com" {
		t.Errorf("SignUp email = %q, want normalized", signUps[0].Email)
	}
	if signUps[0].Metadata["name"] != "Ada Lovelace" {
		t.Errorf("SignUp metadata name = %v", signUps[0].Metadata["name"])
	}

	upserts := profiles.UpsertCalls()
	if len(upserts) != 1 {
		t.Fatalf("Upsert calls = %d, want 1", len(upserts))
	}
	got := upserts[0].P
	if got.ID != testUserID || got.Email != "ada@example.com" || got.FullName != "Ada Lovelace" {
		t.Errorf("seeded profile = %+v", got)
	}
}

func TestService_Register_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input RegisterInput
		field string
	}{
		{"missing email", RegisterInput{Password: "secret123", Name: "Ada"}, "email"},
		{"bad email", RegisterInput{Email: "nope", Password: "secret123", Name: "Ada"}, "email"},
		{"short password", RegisterInput{Email: "a@example.com", Password: "123", Name: "Ada"}, "password"},
		{"missing name", RegisterInput{Email: "a@example.com", Password: "secret123"}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := &identityProviderMock{}
			svc := newTestService(provider, okProfiles(), readinessStub{})

			_, err := svc.Register(context.Background(), tt.input)

			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Errors[0].Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Errors[0].Field, tt.field)
			}
			if len(provider.SignUpCalls()) != 0 {
				t.Error("provider must not be called on invalid input")
			}
		})
	}
}

func TestService_Register_ProviderRejection(t *testing.T) {
	t.Parallel()

	provider := &identityProviderMock{
		SignUpFunc: func(context.Context, string, string, map[string]any) (domain.Identity, error) {
			return domain.Identity{}, &gotrue.ProviderError{Status: 422, Message: "User already registered"}
		},
	}
	profiles := okProfiles()
	svc := newTestService(provider, profiles, readinessStub{})

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@example.com", Password: "secret123", Name: "Ada"})

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Errors[0].Message != "User already registered" {
		t.Errorf("message = %q", verr.Errors[0].Message)
	}
	if len(profiles.UpsertCalls()) != 0 {
		t.Error("profile must not be seeded when sign-up fails")
	}
}

func TestService_Register_ProviderUnavailable(t *testing.T) {
	t.Parallel()

	provider := &identityProviderMock{
		SignUpFunc: func(context.Context, string, string, map[string]any) (domain.Identity, error) {
			return domain.Identity{}, domain.ErrServiceUnavailable
		},
	}
	svc := newTestService(provider, okProfiles(), readinessStub{})

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@example.com", Password: "secret123", Name: "Ada"})
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestService_Register_ProfileSeedFailureIsLogged(t *testing.T) {
	t.Parallel()

	provider := &identityProviderMock{
		SignUpFunc: func(_ context.Context, email, _ string, _ map[string]any) (domain.Identity, error) {
			return domain.Identity{ID: testUserID, Email: email}, nil
		},
	}
	profiles := &profileRepoMock{
		UpsertFunc: func(context.Context, domain.UserProfile) (domain.UserProfile, error) {
			return domain.UserProfile{}, errors.New("db down")
		},
	}
	svc := newTestService(provider, profiles, readinessStub{})

	identity, err := svc.Register(context.Background(), RegisterInput{Email: "a@example.com", Password: "secret123", Name: "Ada"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.ID != testUserID {
		t.Errorf("identity.ID = %q", identity.ID)
	}
	// Name came only from the input, identity had no metadata.
	if got := profiles.UpsertCalls()[0].P.FullName; got != "Ada" {
		t.Errorf("FullName = %q, want Ada", got)
	}
}

// ─── Login Tests ────────────────────────────────────────────────────────────

func TestService_Login_Success(t *testing.T) {
	t.Parallel()

	provider := &identityProviderMock{
		SignInWithPasswordFunc: func(_ context.Context, email, _ string) (gotrue.Session, error) {
			return gotrue.Session{
				AccessToken: "access",
				User:        domain.Identity{ID: testUserID, Email: email},
			}, nil
		},
	}
	svc := newTestService(provider, okProfiles(), readinessStub{})

	session, err := svc.Login(context.Background(), LoginInput{Email: "A@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.AccessToken != "access" {
		t.Errorf("AccessToken = %q", session.AccessToken)
	}
	if session.User.Email != "a@example.com" {
		t.Errorf("User.Email = %q", session.User.Email)
	}
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	provider := &identityProviderMock{
		SignInWithPasswordFunc: func(context.Context, string, string) (gotrue.Session, error) {
			return gotrue.Session{}, &gotrue.ProviderError{Status: 400, Message: "Invalid login credentials"}
		},
	}
	svc := newTestService(provider, okProfiles(), readinessStub{})

	_, err := svc.Login(context.Background(), LoginInput{Email: "a@example.com", Password: "wrong-pass"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestService_Login_ProviderUnavailable(t *testing.T) {
	t.Parallel()

	provider := &identityProviderMock{
		SignInWithPasswordFunc: func(context.Context, string, string) (gotrue.Session, error) {
			return gotrue.Session{}, domain.ErrServiceUnavailable
		},
	}
	svc := newTestService(provider, okProfiles(), readinessStub{})

	_, err := svc.Login(context.Background(), LoginInput{Email: "a@example.com", Password: "secret123"})
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestService_Login_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService(&identityProviderMock{}, okProfiles(), readinessStub{})

	_, err := svc.Login(context.Background(), LoginInput{})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("errors = %d, want 2", len(verr.Errors))
	}
}

func TestService_NotReady(t *testing.T) {
	t.Parallel()

	svc := newTestService(&identityProviderMock{}, okProfiles(), readinessStub{err: domain.ErrServiceUnavailable})

	if _, err := svc.Register(context.Background(), RegisterInput{}); !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Errorf("Register: expected ErrServiceUnavailable, got %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{}); !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Errorf("Login: expected ErrServiceUnavailable, got %v", err)
	}
}
