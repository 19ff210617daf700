// Package profile implements the user_profiles table store using PostgreSQL.
package profile

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/voicerec-backend/internal/adapter/postgres"
	"github.com/heartmarshall/voicerec-backend/internal/domain"
)

const table = "user_profiles"

// Repo provides user profile persistence.
type Repo struct {
	q postgres.Querier
}

// New creates a new profile repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// Upsert writes the profile keyed by id. On conflict email, full_name and
// updated_at are replaced; created_at keeps its first value.
func (r *Repo) Upsert(ctx context.Context, p domain.UserProfile) (domain.UserProfile, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "email", "full_name", "created_at", "updated_at").
		Values(p.ID, p.Email, p.FullName, p.CreatedAt, p.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			full_name = EXCLUDED.full_name,
			updated_at = EXCLUDED.updated_at
		RETURNING id, email, full_name, created_at, updated_at`).
		ToSql()
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("build upsert profile: %w", err)
	}

	got, err := scanProfile(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		return domain.UserProfile{}, postgres.MapError(err, "user_profile", p.ID)
	}
	return got, nil
}

// GetByID returns a profile by user id.
func (r *Repo) GetByID(ctx context.Context, id string) (domain.UserProfile, error) {
	query, args, err := postgres.Builder().
		Select("id", "email", "full_name", "created_at", "updated_at").
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("build get profile: %w", err)
	}

	got, err := scanProfile(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		return domain.UserProfile{}, postgres.MapError(err, "user_profile", id)
	}
	return got, nil
}

func scanProfile(row pgx.Row) (domain.UserProfile, error) {
	var p domain.UserProfile
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
