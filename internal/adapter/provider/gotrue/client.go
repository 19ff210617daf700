// Package gotrue is a client for a GoTrue-compatible identity provider
// (Supabase Auth). BaseURL is the auth API root, e.g.
// "https://<project>.supabase.co/auth/v1".
package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
)

// Client talks to the provider over HTTP. Calls are not retried; the request
// context bounds every call.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a provider client. apiKey is the project's anon key.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
		log:        logger.With("adapter", "gotrue"),
	}
}

// userResponse is the provider's user object.
type userResponse struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

func (u userResponse) identity() domain.Identity {
	return domain.Identity{ID: u.ID, Email: u.Email, Metadata: u.UserMetadata}
}

// sessionResponse is returned by the password grant. Sign-up returns either a
// session (autoconfirm) or a bare user object.
type sessionResponse struct {
	AccessToken  string        `json:"access_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int           `json:"expires_in"`
	RefreshToken string        `json:"refresh_token"`
	User         *userResponse `json:"user"`
}

// errorResponse covers both error shapes the provider emits.
type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func (e errorResponse) text() string {
	for _, s := range []string{e.ErrorDescription, e.Msg, e.Message, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// Session is the result of a successful password sign-in.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	User         domain.Identity
}

// ProviderError is a non-2xx answer from the provider.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gotrue: status %d", e.Status)
	}
	return fmt.Sprintf("gotrue: status %d: %s", e.Status, e.Message)
}

// VerifyToken resolves an access token to the user it was issued for.
func (c *Client) VerifyToken(ctx context.Context, accessToken string) (domain.Identity, error) {
	var user userResponse
	if err := c.do(ctx, http.MethodGet, "/user", accessToken, nil, &user); err != nil {
		return domain.Identity{}, err
	}
	if user.ID == "" {
		return domain.Identity{}, fmt.Errorf("gotrue: user response has no id")
	}
	return user.identity(), nil
}

// UpdateUserMetadata merges data into the caller's user_metadata.
func (c *Client) UpdateUserMetadata(ctx context.Context, accessToken string, data map[string]any) error {
	body := map[string]any{"data": data}
	return c.do(ctx, http.MethodPut, "/user", accessToken, body, nil)
}

// SignUp registers a user with email and password. metadata is stored as user_metadata.
func (c *Client) SignUp(ctx context.Context, email, password string, metadata map[string]any) (domain.Identity, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     metadata,
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/signup", "", body, &raw); err != nil {
		return domain.Identity{}, err
	}

	var session sessionResponse
	if err := json.Unmarshal(raw, &session); err == nil && session.User != nil && session.User.ID != "" {
		return session.User.identity(), nil
	}

	var user userResponse
	if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" {
		return domain.Identity{}, fmt.Errorf("gotrue: invalid signup response")
	}
	return user.identity(), nil
}

// SignInWithPassword exchanges email and password for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (Session, error) {
	body := map[string]string{"email": email, "password": password}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=password", "", body, &resp); err != nil {
		return Session{}, err
	}
	if resp.AccessToken == "" || resp.User == nil {
		return Session{}, fmt.Errorf("gotrue: invalid token response")
	}

	return Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		User:         resp.User.identity(),
	}, nil
}

// Check probes the provider's health endpoint.
func (c *Client) Check(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

// do sends one request. Transport failures and 5xx answers wrap
// domain.ErrServiceUnavailable; other non-2xx answers are *ProviderError.
func (c *Client) do(ctx context.Context, method, path, accessToken string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("gotrue: encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("gotrue: create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "gotrue request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("gotrue: %s %s: %w", method, path, errors.Join(domain.ErrServiceUnavailable, err))
	}
	defer resp.Body.Close()

	c.log.DebugContext(ctx, "gotrue request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("gotrue: read response: %w", err)
	}

	if resp.StatusCode >= 500 {
		return fmt.Errorf("gotrue: %s %s: status %d: %w", method, path, resp.StatusCode, domain.ErrServiceUnavailable)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		_ = json.Unmarshal(respBody, &errResp)
		return &ProviderError{Status: resp.StatusCode, Message: errResp.text()}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("gotrue: decode response: %w", err)
	}
	return nil
}
