package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
	"github.com/heartmarshall/voicerec-backend/pkg/ctxutil"
)

type identityResolver interface {
	Resolve(ctx context.Context, token string) (domain.Identity, error)
}

// Auth returns middleware that resolves the bearer credential to a caller
// identity. Requests the resolver rejects never reach next.
func Auth(resolver identityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authenticate(w, r, next, resolver, extractBearerToken(r))
		})
	}
}

// OptionalAuth is Auth for routes that also serve anonymous callers. A request
// without a bearer credential passes through with no identity; a request with
// one is resolved exactly like Auth.
func OptionalAuth(resolver identityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			authenticate(w, r, next, resolver, token)
		})
	}
}

func authenticate(w http.ResponseWriter, r *http.Request, next http.Handler, resolver identityResolver, token string) {
	identity, err := resolver.Resolve(r.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrServiceUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "Authentication service unavailable")
			return
		}
		writeError(w, http.StatusUnauthorized, "Invalid authentication credentials")
		return
	}

	ctx := ctxutil.WithIdentity(r.Context(), identity)
	if token != "" {
		ctx = ctxutil.WithAccessToken(ctx, token)
	}
	annotateUser(ctx, identity.ID)
	next.ServeHTTP(w, r.WithContext(ctx))
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(auth, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
