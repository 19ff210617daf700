package rest

import (
	"context"

	"github.com/heartmarshall/voicerec-backend/internal/adapter/provider/gotrue"
	"github.com/heartmarshall/voicerec-backend/internal/domain"
	"github.com/heartmarshall/voicerec-backend/internal/service/auth"
	"github.com/heartmarshall/voicerec-backend/internal/service/profile"
	"github.com/heartmarshall/voicerec-backend/internal/service/recording"
)

type backendCheckerMock struct {
	readyErr   error
	dbErr      error
	storageErr error
}

func (m *backendCheckerMock) Ready() error                          { return m.readyErr }
func (m *backendCheckerMock) PingDatabase(_ context.Context) error { return m.dbErr }
func (m *backendCheckerMock) CheckStorage(_ context.Context) error { return m.storageErr }

type authServiceMock struct {
	RegisterFunc func(ctx context.Context, input auth.RegisterInput) (domain.Identity, error)
	LoginFunc    func(ctx context.Context, input auth.LoginInput) (gotrue.Session, error)
}

func (m *authServiceMock) Register(ctx context.Context, input auth.RegisterInput) (domain.Identity, error) {
	return m.RegisterFunc(ctx, input)
}

func (m *authServiceMock) Login(ctx context.Context, input auth.LoginInput) (gotrue.Session, error) {
	return m.LoginFunc(ctx, input)
}

type recordingServiceMock struct {
	UploadFunc      func(ctx context.Context, input recording.UploadInput) (recording.UploadResult, error)
	ListForUserFunc func(ctx context.Context, userID string) ([]domain.Recording, error)
	GetFunc         func(ctx context.Context, recordingID string) (domain.Recording, error)
	DeleteFunc      func(ctx context.Context, recordingID string) error
}

func (m *recordingServiceMock) Upload(ctx context.Context, input recording.UploadInput) (recording.UploadResult, error) {
	return m.UploadFunc(ctx, input)
}

func (m *recordingServiceMock) ListForUser(ctx context.Context, userID string) ([]domain.Recording, error) {
	return m.ListForUserFunc(ctx, userID)
}

func (m *recordingServiceMock) Get(ctx context.Context, recordingID string) (domain.Recording, error) {
	return m.GetFunc(ctx, recordingID)
}

func (m *recordingServiceMock) Delete(ctx context.Context, recordingID string) error {
	return m.DeleteFunc(ctx, recordingID)
}

type profileServiceMock struct {
	SyncFunc   func(ctx context.Context) (domain.UserProfile, error)
	GetFunc    func(ctx context.Context) (domain.UserProfile, error)
	CreateFunc func(ctx context.Context, input profile.CreateInput) (domain.UserProfile, error)
	UpdateFunc func(ctx context.Context, input profile.UpdateInput) (domain.UserProfile, error)
}

func (m *profileServiceMock) Sync(ctx context.Context) (domain.UserProfile, error) {
	return m.SyncFunc(ctx)
}

func (m *profileServiceMock) Get(ctx context.Context) (domain.UserProfile, error) {
	return m.GetFunc(ctx)
}

func (m *profileServiceMock) Create(ctx context.Context, input profile.CreateInput) (domain.UserProfile, error) {
	return m.CreateFunc(ctx, input)
}

func (m *profileServiceMock) Update(ctx context.Context, input profile.UpdateInput) (domain.UserProfile, error) {
	return m.UpdateFunc(ctx, input)
}
