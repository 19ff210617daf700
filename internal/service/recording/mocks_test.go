package recording

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// recordingRepoMock
// ---------------------------------------------------------------------------

var _ recordingRepo = &recordingRepoMock{}

type ownedIDCall struct {
	ID     uuid.UUID
	UserID string
}

type recordingRepoMock struct {
	CreateFunc        func(ctx context.Context, rec domain.Recording) (domain.Recording, error)
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (domain.Recording, error)
	GetForUserFunc    func(ctx context.Context, id uuid.UUID, userID string) (domain.Recording, error)
	ListByUserFunc    func(ctx context.Context, userID string) ([]domain.Recording, error)
	DeleteForUserFunc func(ctx context.Context, id uuid.UUID, userID string) error

	mu    sync.RWMutex
	calls struct {
		Create        []domain.Recording
		GetByID       []uuid.UUID
		GetForUser    []ownedIDCall
		ListByUser    []string
		DeleteForUser []ownedIDCall
	}
}

func (m *recordingRepoMock) Create(ctx context.Context, rec domain.Recording) (domain.Recording, error) {
	if m.CreateFunc == nil {
		panic("recordingRepoMock.CreateFunc: method is nil but recordingRepo.Create was just called")
	}
	m.mu.Lock()
	m.calls.Create = append(m.calls.Create, rec)
	m.mu.Unlock()
	return m.CreateFunc(ctx, rec)
}

func (m *recordingRepoMock) CreateCalls() []domain.Recording {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Create
}

func (m *recordingRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Recording, error) {
	if m.GetByIDFunc == nil {
		panic("recordingRepoMock.GetByIDFunc: method is nil but recordingRepo.GetByID was just called")
	}
	m.mu.Lock()
	m.calls.GetByID = append(m.calls.GetByID, id)
	m.mu.Unlock()
	return m.GetByIDFunc(ctx, id)
}

func (m *recordingRepoMock) GetByIDCalls() []uuid.UUID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.GetByID
}

func (m *recordingRepoMock) GetForUser(ctx context.Context, id uuid.UUID, userID string) (domain.Recording, error) {
	if m.GetForUserFunc == nil {
		panic("recordingRepoMock.GetForUserFunc: method is nil but recordingRepo.GetForUser was just called")
	}
	m.mu.Lock()
	m.calls.GetForUser = append(m.calls.GetForUser, ownedIDCall{ID: id, UserID: userID})
	m.mu.Unlock()
	return m.GetForUserFunc(ctx, id, userID)
}

func (m *recordingRepoMock) GetForUserCalls() []ownedIDCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.GetForUser
}

func (m *recordingRepoMock) ListByUser(ctx context.Context, userID string) ([]domain.Recording, error) {
	if m.ListByUserFunc == nil {
		panic("recordingRepoMock.ListByUserFunc: method is nil but recordingRepo.ListByUser was just called")
	}
	m.mu.Lock()
	m.calls.ListByUser = append(m.calls.ListByUser, userID)
	m.mu.Unlock()
	return m.ListByUserFunc(ctx, userID)
}

func (m *recordingRepoMock) ListByUserCalls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.ListByUser
}

func (m *recordingRepoMock) DeleteForUser(ctx context.Context, id uuid.UUID, userID string) error {
	if m.DeleteForUserFunc == nil {
		panic("recordingRepoMock.DeleteForUserFunc: method is nil but recordingRepo.DeleteForUser was just called")
	}
	m.mu.Lock()
	m.calls.DeleteForUser = append(m.calls.DeleteForUser, ownedIDCall{ID: id, UserID: userID})
	m.mu.Unlock()
	return m.DeleteForUserFunc(ctx, id, userID)
}

func (m *recordingRepoMock) DeleteForUserCalls() []ownedIDCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.DeleteForUser
}

// ---------------------------------------------------------------------------
// objectStoreMock
// ---------------------------------------------------------------------------

var _ objectStore = &objectStoreMock{}

type objectStoreMock struct {
	PutFunc       func(ctx context.Context, path string, r io.Reader, size int64, contentType string) error
	RemoveFunc    func(ctx context.Context, path string) error
	PublicURLFunc func(path string) string

	mu    sync.RWMutex
	calls struct {
		Put    []string
		Remove []string
	}
}

func (m *objectStoreMock) Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	if m.PutFunc == nil {
		panic("objectStoreMock.PutFunc: method is nil but objectStore.Put was just called")
	}
	m.mu.Lock()
	m.calls.Put = append(m.calls.Put, path)
	m.mu.Unlock()
	return m.PutFunc(ctx, path, r, size, contentType)
}

func (m *objectStoreMock) PutCalls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Put
}

func (m *objectStoreMock) Remove(ctx context.Context, path string) error {
	if m.RemoveFunc == nil {
		panic("objectStoreMock.RemoveFunc: method is nil but objectStore.Remove was just called")
	}
	m.mu.Lock()
	m.calls.Remove = append(m.calls.Remove, path)
	m.mu.Unlock()
	return m.RemoveFunc(ctx, path)
}

func (m *objectStoreMock) RemoveCalls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Remove
}

func (m *objectStoreMock) PublicURL(path string) string {
	if m.PublicURLFunc == nil {
		return "memory://recordings/" + path
	}
	return m.PublicURLFunc(path)
}

// ---------------------------------------------------------------------------
// profileRepoMock
// ---------------------------------------------------------------------------

var _ profileRepo = &profileRepoMock{}

type profileRepoMock struct {
	UpsertFunc func(ctx context.Context, p domain.UserProfile) (domain.UserProfile, error)

	mu    sync.RWMutex
	calls []domain.UserProfile
}

func (m *profileRepoMock) Upsert(ctx context.Context, p domain.UserProfile) (domain.UserProfile, error) {
	if m.UpsertFunc == nil {
		panic("profileRepoMock.UpsertFunc: method is nil but profileRepo.Upsert was just called")
	}
	m.mu.Lock()
	m.calls = append(m.calls, p)
	m.mu.Unlock()
	return m.UpsertFunc(ctx, p)
}

func (m *profileRepoMock) UpsertCalls() []domain.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

// ---------------------------------------------------------------------------
// readinessMock / observerMock
// ---------------------------------------------------------------------------

type readinessMock struct{ err error }

func (m readinessMock) Ready() error { return m.err }

type observerMock struct {
	mu            sync.Mutex
	uploads       []string
	compensations []string
}

func (m *observerMock) ObserveUpload(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads = append(m.uploads, outcome)
}

func (m *observerMock) ObserveCompensation(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.compensations = append(m.compensations, outcome)
}
