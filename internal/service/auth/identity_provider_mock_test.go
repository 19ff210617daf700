package auth

import (
	"context"
	"sync"

	"github.com/heartmarshall/voicerec-backend/internal/adapter/provider/gotrue"
	"github.com/heartmarshall/voicerec-backend/internal/domain"
)

var _ identityProvider = &identityProviderMock{}

type identityProviderMock struct {
	SignUpFunc             func(ctx context.Context, email, password string, metadata map[string]any) (domain.Identity, error)
	SignInWithPasswordFunc func(ctx context.Context, email, password string) (gotrue.Session, error)

	calls struct {
		SignUp []struct {
			Email    string
			Password string
			Metadata map[string]any
		}
		SignInWithPassword []struct {
			Email    string
			Password string
		}
	}
	lockSignUp             sync.RWMutex
	lockSignInWithPassword sync.RWMutex
}

func (mock *identityProviderMock) SignUp(ctx context.Context, email, password string, metadata map[string]any) (domain.Identity, error) {
	if mock.SignUpFunc == nil {
		panic("identityProviderMock.SignUpFunc: method is nil but identityProvider.SignUp was just called")
	}
	callInfo := struct {
		Email    string
		Password string
		Metadata map[string]any
	}{Email: email, Password: password, Metadata: metadata}
	mock.lockSignUp.Lock()
	mock.calls.SignUp = append(mock.calls.SignUp, callInfo)
	mock.lockSignUp.Unlock()
	return mock.SignUpFunc(ctx, email, password, metadata)
}

func (mock *identityProviderMock) SignUpCalls() []struct {
	Email    string
	Password string
	Metadata map[string]any
} {
	mock.lockSignUp.RLock()
	calls := mock.calls.SignUp
	mock.lockSignUp.RUnlock()
	return calls
}

func (mock *identityProviderMock) SignInWithPassword(ctx context.Context, email, password string) (gotrue.Session, error) {
	if mock.SignInWithPasswordFunc == nil {
		panic("identityProviderMock.SignInWithPasswordFunc: method is nil but identityProvider.SignInWithPassword was just called")
	}
	callInfo := struct {
		Email    string
		Password string
	}{Email: email, Password: password}
	mock.lockSignInWithPassword.Lock()
	mock.calls.SignInWithPassword = append(mock.calls.SignInWithPassword, callInfo)
	mock.lockSignInWithPassword.Unlock()
	return mock.SignInWithPasswordFunc(ctx, email, password)
}

func (mock *identityProviderMock) SignInWithPasswordCalls() []struct {
	Email    string
	Password string
} {
	mock.lockSignInWithPassword.RLock()
	calls := mock.calls.SignInWithPassword
	mock.lockSignInWithPassword.RUnlock()
	return calls
}

var _ profileRepo = &profileRepoMock{}

type profileRepoMock struct {
	UpsertFunc func(ctx context.Context, p domain.UserProfile) (domain.UserProfile, error)

	calls struct {
		Upsert []struct {
			P domain.UserProfile
		}
	}
	lockUpsert sync.RWMutex
}

func (mock *profileRepoMock) Upsert(ctx context.Context, p domain.UserProfile) (domain.UserProfile, error) {
	if mock.UpsertFunc == nil {
		panic("profileRepoMock.UpsertFunc: method is nil but profileRepo.Upsert was just called")
	}
	callInfo := struct {
		P domain.UserProfile
	}{P: p}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, p)
}

func (mock *profileRepoMock) UpsertCalls() []struct {
	P domain.UserProfile
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

type readinessStub struct{ err error }

func (r readinessStub) Ready() error { return r.err }
