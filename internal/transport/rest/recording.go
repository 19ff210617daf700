package rest

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
	"github.com/heartmarshall/voicerec-backend/internal/service/recording"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling file parts to temporary files.
const multipartMemory = 8 << 20

// recordingService defines the minimal interface needed by RecordingHandler.
type recordingService interface {
	Upload(ctx context.Context, input recording.UploadInput) (recording.UploadResult, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Recording, error)
	Get(ctx context.Context, recordingID string) (domain.Recording, error)
	Delete(ctx context.Context, recordingID string) error
}

// RecordingHandler serves the recording REST endpoints.
type RecordingHandler struct {
	svc      recordingService
	maxBytes int64
	errorResponder
}

// NewRecordingHandler creates a RecordingHandler. maxBytes bounds the whole
// multipart request body.
func NewRecordingHandler(svc recordingService, maxBytes int64, logger *slog.Logger) *RecordingHandler {
	return &RecordingHandler{
		svc:      svc,
		maxBytes: maxBytes,
		errorResponder: errorResponder{
			log:      logger.With("handler", "recording"),
			notFound: "Recording not found",
		},
	}
}

type recordingResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ScriptText  string    `json:"script_text"`
	AudioURL    string    `json:"audio_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type uploadResponse struct {
	Message     string `json:"message"`
	RecordingID string `json:"recording_id"`
	AudioURL    string `json:"audio_url"`
}

func toRecordingResponse(rec domain.Recording) recordingResponse {
	return recordingResponse{
		ID:          rec.ID.String(),
		UserID:      rec.UserID,
		Title:       rec.Title,
		Description: rec.Description,
		ScriptText:  rec.ScriptText,
		AudioURL:    rec.AudioURL,
		CreatedAt:   rec.CreatedAt,
	}
}

// Upload handles POST /recordings/upload (multipart form: title,
// description, script_text, audio_file).
func (h *RecordingHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, "File too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	input := recording.UploadInput{
		Title:       r.FormValue("title"),
		Description: optionalFormValue(r.MultipartForm, "description"),
		ScriptText:  r.FormValue("script_text"),
		Size:        -1,
	}

	file, header, err := r.FormFile("audio_file")
	switch {
	case err == nil:
		defer file.Close()
		input.Audio = file
		input.Size = header.Size
		input.Filename = header.Filename
		input.ContentType = header.Header.Get("Content-Type")
	case errors.Is(err, http.ErrMissingFile):
		// Left nil; validation reports the missing file.
	default:
		writeError(w, http.StatusBadRequest, "invalid audio_file")
		return
	}

	result, err := h.svc.Upload(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Message:     "Recording uploaded successfully",
		RecordingID: result.RecordingID.String(),
		AudioURL:    result.AudioURL,
	})
}

// ListForUser handles GET /recordings/user/{user_id}.
func (h *RecordingHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.ListForUser(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := make([]recordingResponse, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, toRecordingResponse(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /recordings/{recording_id}.
func (h *RecordingHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Get(r.Context(), chi.URLParam(r, "recording_id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordingResponse(rec))
}

// Delete handles DELETE /recordings/{recording_id}.
func (h *RecordingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "recording_id")); err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Recording deleted successfully"})
}

// optionalFormValue distinguishes an absent field (nil) from an empty one.
func optionalFormValue(form *multipart.Form, key string) *string {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}
