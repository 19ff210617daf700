package domain

import "time"

// UserProfile is the application-side copy of a user's profile, keyed by
// Identity.ID. It is written only through idempotent upserts.
type UserProfile struct {
	ID        string
	Email     string
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileFromIdentity reconciles a profile from the identity's email and metadata.
func ProfileFromIdentity(id Identity, defaultName string, now time.Time) UserProfile {
	return UserProfile{
		ID:        id.ID,
		Email:     id.Email,
		FullName:  id.ResolveFullName(defaultName),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
