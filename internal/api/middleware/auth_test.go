package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/easyjatra/marketplace-api/internal/core/domain"
)

type stubVerifier struct {
	email string
	err   error
	seen  string
}

func (v *stubVerifier) Verify(_ context.Context, token string) (string, error) {
	v.seen = token
	if v.err != nil {
		return "", v.err
	}
	return v.email, nil
}

func invokeAuth(t *testing.T, verifier *stubVerifier, authHeader string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return c, Auth(verifier)(next)(c)
}

func TestAuth_ValidBearerSetsEmail(t *testing.T) {
	verifier := &stubVerifier{email: "buyer@example.com"}

	c, err := invokeAuth(t, verifier, "Bearer token-123")
	if err != nil {
		t.Fatalf("expected next to run, got %v", err)
	}
	if verifier.seen != "token-123" {
		t.Fatalf("verifier received %q", verifier.seen)
	}
	if got, _ := c.Get(ContextEmailKey).(string); got != "buyer@example.com" {
		t.Fatalf("email not injected, got %q", got)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, err := invokeAuth(t, &stubVerifier{}, "")

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	_, err := invokeAuth(t, &stubVerifier{}, "Basic dXNlcjpwYXNz")

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_RejectedToken(t *testing.T) {
	verifier := &stubVerifier{err: domain.ErrUnauthorized}

	_, err := invokeAuth(t, verifier, "Bearer expired")

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
