package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
)

// pgCodeErrors maps SQLSTATE codes to domain sentinels.
var pgCodeErrors = map[string]error{
	"23505": domain.ErrAlreadyExists,      // unique_violation
	"23503": domain.ErrNotFound,           // foreign_key_violation
	"23514": domain.ErrValidation,         // check_violation
	"23502": domain.ErrValidation,         // not_null_violation
	"22001": domain.ErrValidation,         // string_data_right_truncation
	"57P01": domain.ErrServiceUnavailable, // admin_shutdown
	"57P03": domain.ErrServiceUnavailable, // cannot_connect_now
}

// MapError converts pgx/pgconn errors to domain errors, prefixed with the
// entity and id. Context cancellation passes through unmapped. A table store
// that cannot be reached maps to domain.ErrServiceUnavailable.
func MapError(err error, entity string, id string) error {
	if err == nil {
		return nil
	}

	prefix := entity + " " + id

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", prefix, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", prefix, domain.ErrNotFound)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%s: %w: %v", prefix, domain.ErrServiceUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := pgCodeErrors[pgErr.Code]; ok {
			return fmt.Errorf("%s: %w", prefix, mapped)
		}
		// Class 08: connection exception.
		if strings.HasPrefix(pgErr.Code, "08") {
			return fmt.Errorf("%s: %w: %v", prefix, domain.ErrServiceUnavailable, err)
		}
	}

	return fmt.Errorf("%s: %w", prefix, err)
}
