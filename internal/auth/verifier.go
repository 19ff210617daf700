package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
)

// Outcomes reported for every resolved credential.
const (
	OutcomeVerified = "verified"
	OutcomeFallback = "fallback"
	OutcomeRejected = "rejected"
)

// Reasons attached to fallback and rejected outcomes.
const (
	ReasonNoCredential  = "no_credential"
	ReasonProviderError = "provider_error"
	ReasonUnavailable   = "unavailable"
)

type tokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (domain.Identity, error)
}

// Observer receives one call per resolved credential.
type Observer interface {
	ObserveAuth(outcome, reason string)
}

// FallbackPolicy controls the development identity used when a request
// carries no valid credential. Disabled unless DevMode is set.
type FallbackPolicy struct {
	DevMode  bool
	Identity domain.Identity
}

// Verifier resolves bearer credentials to caller identities.
type Verifier struct {
	tokens   tokenVerifier
	policy   FallbackPolicy
	observer Observer
	log      *slog.Logger
}

// NewVerifier creates an identity verifier. observer may be nil.
func NewVerifier(logger *slog.Logger, tokens tokenVerifier, policy FallbackPolicy, observer Observer) *Verifier {
	return &Verifier{
		tokens:   tokens,
		policy:   policy,
		observer: observer,
		log:      logger.With("component", "identity_verifier"),
	}
}

// Resolve maps a bearer credential to an Identity.
//
// Without dev mode, a missing or invalid credential yields ErrUnauthorized and
// an unavailable provider yields ErrServiceUnavailable. With dev mode, both
// cases resolve to the fallback identity and are logged as auth.fallback.
func (v *Verifier) Resolve(ctx context.Context, token string) (domain.Identity, error) {
	if token == "" {
		if v.policy.DevMode {
			return v.fallback(ctx, ReasonNoCredential, nil), nil
		}
		v.reject(ctx, ReasonNoCredential, nil)
		return domain.Identity{}, domain.ErrUnauthorized
	}

	identity, err := v.tokens.VerifyToken(ctx, token)
	if err != nil {
		if v.policy.DevMode {
			return v.fallback(ctx, ReasonProviderError, err), nil
		}
		if errors.Is(err, domain.ErrServiceUnavailable) {
			v.reject(ctx, ReasonUnavailable, err)
			return domain.Identity{}, domain.ErrServiceUnavailable
		}
		v.reject(ctx, ReasonProviderError, err)
		return domain.Identity{}, domain.ErrUnauthorized
	}

	v.log.InfoContext(ctx, "auth.verified", slog.String("user_id", identity.ID))
	v.observe(OutcomeVerified, "")
	return identity, nil
}

func (v *Verifier) fallback(ctx context.Context, reason string, cause error) domain.Identity {
	attrs := []any{
		slog.String("reason", reason),
		slog.String("user_id", v.policy.Identity.ID),
	}
	if cause != nil {
		attrs = append(attrs, slog.String("error", cause.Error()))
	}
	v.log.WarnContext(ctx, "auth.fallback", attrs...)
	v.observe(OutcomeFallback, reason)
	return v.policy.Identity
}

func (v *Verifier) reject(ctx context.Context, reason string, cause error) {
	attrs := []any{slog.String("reason", reason)}
	if cause != nil {
		attrs = append(attrs, slog.String("error", cause.Error()))
	}
	v.log.InfoContext(ctx, "auth.rejected", attrs...)
	v.observe(OutcomeRejected, reason)
}

func (v *Verifier) observe(outcome, reason string) {
	if v.observer != nil {
		v.observer.ObserveAuth(outcome, reason)
	}
}
