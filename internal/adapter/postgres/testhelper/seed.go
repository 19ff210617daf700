package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// NewUserID returns a fresh provider-style user id.
func NewUserID() string {
	return uuid.New().String()
}

// SeedProfile inserts a user profile with generated values.
func SeedProfile(t *testing.T, pool *pgxpool.Pool) domain.UserProfile {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	p := domain.UserProfile{
		ID:        NewUserID(),
		Email:     "testuser-" + suffix + "@example.com",
		FullName:  "Test User " + suffix,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO user_profiles (id, email, full_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Email, p.FullName, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile: %v", err)
	}

	return p
}

// SeedRecording inserts a recording owned by userID created at createdAt.
func SeedRecording(t *testing.T, pool *pgxpool.Pool, userID string, createdAt time.Time) domain.Recording {
	t.Helper()

	id := uuid.New()
	rec := domain.Recording{
		ID:         id,
		UserID:     userID,
		Title:      "Recording " + uniqueSuffix(),
		ScriptText: "The quick brown fox jumps over the lazy dog.",
		AudioURL:   "memory://recordings/" + userID + "/" + id.String() + ".webm",
		CreatedAt:  createdAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO recordings (id, user_id, title, description, script_text, audio_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.UserID, rec.Title, rec.Description, rec.ScriptText, rec.AudioURL, rec.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRecording: %v", err)
	}

	return rec
}
