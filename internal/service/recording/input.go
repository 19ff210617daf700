package recording

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
	"github.com/heartmarshall/voicerec-backend/internal/sanitize"
)

const maxTitleLength = 255

// UploadInput holds the fields of a recording upload.
type UploadInput struct {
	Title       string
	Description *string
	ScriptText  string

	// Audio is the file content; Size is its length or -1 when unknown.
	Audio       io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// normalize strips markup from title and description. The script text is
// what the user reads aloud and is kept verbatim apart from outer whitespace.
func (i UploadInput) normalize() UploadInput {
	i.Title = sanitize.PlainText(i.Title)
	i.Description = sanitize.OptionalPlainText(i.Description)
	i.ScriptText = strings.TrimSpace(i.ScriptText)
	i.ContentType = strings.TrimSpace(i.ContentType)
	return i
}

// Validate validates the upload input.
func (i UploadInput) Validate() error {
	var errs []domain.FieldError

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if utf8.RuneCountInString(i.Title) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}

	if i.ScriptText == "" {
		errs = append(errs, domain.FieldError{Field: "script_text", Message: "required"})
	}

	if i.Audio == nil {
		errs = append(errs, domain.FieldError{Field: "audio_file", Message: "required"})
	} else if !domain.IsAudioContentType(i.ContentType) {
		errs = append(errs, domain.FieldError{Field: "audio_file", Message: "File must be an audio file"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
