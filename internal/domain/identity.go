package domain

import "strings"

// DefaultFullName is used when identity metadata carries no usable name.
const DefaultFullName = "User"

// Identity is the authenticated (or fallback) representation of a caller.
// It is owned by the external identity provider and never mutated here.
type Identity struct {
	ID       string
	Email    string
	Metadata map[string]any
}

// MetadataString returns a trimmed string value from the identity metadata.
// Non-string values and blanks yield "".
func (i Identity) MetadataString(key string) string {
	if i.Metadata == nil {
		return ""
	}
	s, ok := i.Metadata[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// ResolveFullName picks the display name for a profile: user_metadata.full_name,
// then user_metadata.name, then fallback.
func (i Identity) ResolveFullName(fallback string) string {
	if v := i.MetadataString("full_name"); v != "" {
		return v
	}
	if v := i.MetadataString("name"); v != "" {
		return v
	}
	return fallback
}
