package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/easyjatra/marketplace-api/internal/core/domain"
	"github.com/easyjatra/marketplace-api/internal/core/ports"
)

// stubUserService authorizes from a fixed email-to-role table, the same
// contract the real service exposes: no record or a mismatch is forbidden.
type stubUserService struct {
	roles map[string]string
}

func (s *stubUserService) SyncLogin(context.Context, ports.SyncLoginInput) (*ports.SyncLoginResult, error) {
	return nil, nil
}

func (s *stubUserService) Role(_ context.Context, email string) (string, error) {
	role, ok := s.roles[email]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	return role, nil
}

func (s *stubUserService) Authorize(_ context.Context, email, required string) error {
	role, ok := s.roles[email]
	if !ok || role != required {
		return domain.ErrForbidden
	}
	return nil
}

func (s *stubUserService) ListOthers(context.Context, string) ([]domain.User, error) {
	return nil, nil
}

func (s *stubUserService) UpdateRole(context.Context, string, string) error { return nil }

func invokeRequireRole(t *testing.T, users ports.UserService, required, email string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if email != "" {
		c.Set(ContextEmailKey, email)
	}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return RequireRole(users, required)(next)(c)
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	users := &stubUserService{roles: map[string]string{"vendor@example.com": domain.RoleVendor}}

	if err := invokeRequireRole(t, users, domain.RoleVendor, "vendor@example.com"); err != nil {
		t.Fatalf("expected access, got %v", err)
	}
}

func TestRequireRole_ForbidsMismatchedRole(t *testing.T) {
	users := &stubUserService{roles: map[string]string{"vendor@example.com": domain.RoleVendor}}

	err := invokeRequireRole(t, users, domain.RoleAdmin, "vendor@example.com")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRole_ForbidsUnknownUser(t *testing.T) {
	users := &stubUserService{roles: map[string]string{}}

	err := invokeRequireRole(t, users, domain.RoleVendor, "ghost@example.com")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRole_RejectsMissingClaims(t *testing.T) {
	users := &stubUserService{roles: map[string]string{}}

	err := invokeRequireRole(t, users, domain.RoleVendor, "")

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
