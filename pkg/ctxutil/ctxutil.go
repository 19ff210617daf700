package ctxutil

import (
	"context"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
)

type ctxKey string

const (
	identityKey    ctxKey = "identity"
	requestIDKey   ctxKey = "request_id"
	accessTokenKey ctxKey = "access_token"
)

// WithIdentity stores the caller identity in the context.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromCtx extracts the caller identity from the context.
// Returns false if the value is missing, has an empty ID, or has the wrong type.
func IdentityFromCtx(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	if !ok || id.ID == "" {
		return domain.Identity{}, false
	}
	return id, true
}

// UserIDFromCtx extracts the caller's user ID from the context.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := IdentityFromCtx(ctx)
	if !ok {
		return "", false
	}
	return id.ID, true
}

// WithAccessToken stores the caller's raw bearer token in the context.
// Needed for provider calls made on behalf of the caller.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey, token)
}

// AccessTokenFromCtx returns the caller's bearer token, or "" if absent.
func AccessTokenFromCtx(ctx context.Context) string {
	t, _ := ctx.Value(accessTokenKey).(string)
	return t
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
