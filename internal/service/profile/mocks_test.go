package profile

import (
	"context"
	"sync"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
)

var _ profileRepo = &profileRepoMock{}

// profileRepoMock keeps rows in memory so idempotency can be observed.
type profileRepoMock struct {
	UpsertErr  error
	GetByIDErr error

	mu      sync.RWMutex
	rows    map[string]domain.UserProfile
	upserts []domain.UserProfile
	gets    []string
}

func newProfileRepoMock() *profileRepoMock {
	return &profileRepoMock{rows: make(map[string]domain.UserProfile)}
}

func (m *profileRepoMock) Upsert(_ context.Context, p domain.UserProfile) (domain.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.upserts = append(m.upserts, p)
	if m.UpsertErr != nil {
		return domain.UserProfile{}, m.UpsertErr
	}
	if existing, ok := m.rows[p.ID]; ok {
		p.CreatedAt = existing.CreatedAt
	}
	m.rows[p.ID] = p
	return p, nil
}

func (m *profileRepoMock) UpsertCalls() []domain.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.upserts
}

func (m *profileRepoMock) GetByID(_ context.Context, id string) (domain.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gets = append(m.gets, id)
	if m.GetByIDErr != nil {
		return domain.UserProfile{}, m.GetByIDErr
	}
	p, ok := m.rows[id]
	if !ok {
		return domain.UserProfile{}, domain.ErrNotFound
	}
	return p, nil
}

var _ metadataUpdater = &metadataUpdaterMock{}

type metadataUpdaterMock struct {
	UpdateUserMetadataFunc func(ctx context.Context, accessToken string, data map[string]any) error

	mu    sync.RWMutex
	calls []struct {
		AccessToken string
		Data        map[string]any
	}
}

func (m *metadataUpdaterMock) UpdateUserMetadata(ctx context.Context, accessToken string, data map[string]any) error {
	if m.UpdateUserMetadataFunc == nil {
		panic("metadataUpdaterMock.UpdateUserMetadataFunc: method is nil but metadataUpdater.UpdateUserMetadata was just called")
	}
	m.mu.Lock()
	m.calls = append(m.calls, struct {
		AccessToken string
		Data        map[string]any
	}{accessToken, data})
	m.mu.Unlock()
	return m.UpdateUserMetadataFunc(ctx, accessToken, data)
}

func (m *metadataUpdaterMock) UpdateUserMetadataCalls() []struct {
	AccessToken string
	Data        map[string]any
} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

type readinessMock struct{ err error }

func (m readinessMock) Ready() error { return m.err }
