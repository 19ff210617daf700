package domain

// Authorize is the ownership guard: access is allowed only when the caller
// is the resource owner (byte-exact comparison). Returns ErrForbidden otherwise.
func Authorize(resourceOwnerID, callerID string) error {
	if resourceOwnerID != callerID {
		return ErrForbidden
	}
	return nil
}
