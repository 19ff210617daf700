package domain

import (
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AudioContentTypePrefix is the required prefix of an uploaded file's content type.
const AudioContentTypePrefix = "audio/"

// objectExtPattern is the only extension shape that may reach a storage key
// or a public URL unescaped.
var objectExtPattern = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)

// Recording is the metadata row describing one uploaded audio file.
// UserID never changes after creation and AudioURL always points at an
// object that exists for as long as the row does.
type Recording struct {
	ID          uuid.UUID
	UserID      string
	Title       string
	Description *string
	ScriptText  string
	AudioURL    string
	CreatedAt   time.Time
}

// IsAudioContentType reports whether contentType is acceptable for an upload.
func IsAudioContentType(contentType string) bool {
	return strings.HasPrefix(contentType, AudioContentTypePrefix)
}

// ObjectFilename builds a storage filename from a fresh id, keeping the
// extension of the original filename when it is 1-10 ASCII letters or digits
// and falling back to defaultExt otherwise. An unusable default yields a bare id.
func ObjectFilename(id uuid.UUID, originalName, defaultExt string) string {
	ext := strings.TrimPrefix(path.Ext(originalName), ".")
	if !objectExtPattern.MatchString(ext) {
		ext = strings.TrimPrefix(defaultExt, ".")
	}
	if !objectExtPattern.MatchString(ext) {
		return id.String()
	}
	return id.String() + "." + ext
}

// ObjectPath returns the storage key of a user's object: "{userID}/{filename}".
func ObjectPath(userID, filename string) string {
	return userID + "/" + filename
}

// ObjectPathFromURL derives the storage key from a stored audio URL by taking
// its last path segment as the filename. ok is false when no filename can be found.
func ObjectPathFromURL(audioURL, userID string) (string, bool) {
	p := audioURL
	if u, err := url.Parse(audioURL); err == nil {
		p = u.Path
	}
	p = strings.TrimRight(p, "/")
	filename := path.Base(p)
	if filename == "" || filename == "." || filename == "/" {
		return "", false
	}
	return ObjectPath(userID, filename), true
}
