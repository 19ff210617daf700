package profile

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
	"github.com/heartmarshall/voicerec-backend/internal/sanitize"
)

const maxNameLength = 255

// CreateInput holds parameters for the explicit profile create operation.
type CreateInput struct {
	UserID   string
	Email    string
	FullName string
}

func (i CreateInput) normalize() CreateInput {
	i.UserID = strings.TrimSpace(i.UserID)
	i.Email = strings.ToLower(strings.TrimSpace(i.Email))
	i.FullName = sanitize.PlainText(i.FullName)
	return i
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == "" {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if _, err := mail.ParseAddress(i.Email); err != nil {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid format"})
	}

	if utf8.RuneCountInString(i.FullName) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "full_name", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds parameters for the profile update operation.
type UpdateInput struct {
	FullName string
}

func (i UpdateInput) normalize() UpdateInput {
	i.FullName = sanitize.PlainText(i.FullName)
	return i
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	if i.FullName == "" {
		return domain.NewValidationError("full_name", "required")
	}
	if utf8.RuneCountInString(i.FullName) > maxNameLength {
		return domain.NewValidationError("full_name", "too long")
	}
	return nil
}
