// Package recording implements the recordings table store using PostgreSQL.
package recording

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/voicerec-backend/internal/adapter/postgres"
	"github.com/heartmarshall/voicerec-backend/internal/domain"
)

const table = "recordings"

var columns = []string{"id", "user_id", "title", "description", "script_text", "audio_url", "created_at"}

// Repo provides recording persistence.
type Repo struct {
	q postgres.Querier
}

// New creates a new recording repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// Create inserts a recording row and returns it as stored.
func (r *Repo) Create(ctx context.Context, rec domain.Recording) (domain.Recording, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(rec.ID, rec.UserID, rec.Title, rec.Description, rec.ScriptText, rec.AudioURL, rec.CreatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Recording{}, fmt.Errorf("build insert recording: %w", err)
	}

	got, err := scanRecording(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		return domain.Recording{}, postgres.MapError(err, "recording", rec.ID.String())
	}
	return got, nil
}

// GetByID returns a recording by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Recording, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, id)
}

// GetForUser returns the recording only when it belongs to userID.
// A recording owned by someone else is reported as domain.ErrNotFound.
func (r *Repo) GetForUser(ctx context.Context, id uuid.UUID, userID string) (domain.Recording, error) {
	return r.getOne(ctx, sq.Eq{"id": id, "user_id": userID}, id)
}

// ListByUser returns all recordings of userID, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Recording, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list recordings: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "recordings of user", userID)
	}
	defer rows.Close()

	result := make([]domain.Recording, 0)
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, postgres.MapError(err, "recordings of user", userID)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "recordings of user", userID)
	}

	return result, nil
}

// DeleteForUser removes the recording matching both id and userID.
// Returns domain.ErrNotFound when no row matched.
func (r *Repo) DeleteForUser(ctx context.Context, id uuid.UUID, userID string) error {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete recording: %w", err)
	}

	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "recording", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recording %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) getOne(ctx context.Context, where sq.Eq, id uuid.UUID) (domain.Recording, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return domain.Recording{}, fmt.Errorf("build get recording: %w", err)
	}

	rec, err := scanRecording(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		return domain.Recording{}, postgres.MapError(err, "recording", id.String())
	}
	return rec, nil
}

func scanRecording(row pgx.Row) (domain.Recording, error) {
	var rec domain.Recording
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Title,
		&rec.Description,
		&rec.ScriptText,
		&rec.AudioURL,
		&rec.CreatedAt,
	)
	return rec, err
}
