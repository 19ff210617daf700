package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
	"github.com/heartmarshall/voicerec-backend/pkg/ctxutil"
)

func TestLogger_Success(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})

	req := httptest.NewRequest(http.MethodGet, "/test-path", nil)
	rec := httptest.NewRecorder()
	Logger(logger)(handler).ServeHTTP(rec, req)

	logOutput := buf.String()
	for _, want := range []string{"http.request", `"method":"GET"`, `"path":"/test-path"`, `"status":200`, `"bytes":5`, "duration", `"level":"INFO"`} {
		if !strings.Contains(logOutput, want) {
			t.Errorf("expected log to contain %s, got %q", want, logOutput)
		}
	}
	if strings.Contains(logOutput, "user_id") {
		t.Errorf("anonymous request should not log user_id, got %q", logOutput)
	}
}

func TestLogger_ServerErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	req := httptest.NewRequest(http.MethodPost, "/recordings/upload", nil)
	Logger(logger)(handler).ServeHTTP(httptest.NewRecorder(), req)

	if !strings.Contains(buf.String(), `"level":"ERROR"`) {
		t.Errorf("expected ERROR level for 502, got %q", buf.String())
	}
}

func TestLogger_IncludesRequestAndUserID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	resolver := &identityResolverMock{
		ResolveFunc: func(context.Context, string) (domain.Identity, error) {
			return domain.Identity{ID: testUserID}, nil
		},
	}
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ctxutil.RequestIDFromCtx(r.Context()) == "" {
			t.Error("expected request id in context")
		}
	})

	handler := RequestID(Logger(logger)(Auth(resolver)(inner)))

	req := httptest.NewRequest(http.MethodGet, "/recordings/user/"+testUserID, nil)
	req.Header.Set("Authorization", "Bearer tok")
	req.Header.Set(requestIDHeader, "req-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	logOutput := buf.String()
	if !strings.Contains(logOutput, `"user_id":"`+testUserID+`"`) {
		t.Errorf("expected user_id in log, got %q", logOutput)
	}
	if !strings.Contains(logOutput, `"request_id":"req-123"`) {
		t.Errorf("expected request_id in log, got %q", logOutput)
	}
}
