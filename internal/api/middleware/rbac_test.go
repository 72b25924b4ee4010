package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/travelink/booking-api/internal/core/domain"
)

func runRequireRole(t *testing.T, role string, allowed ...string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return RequireRole(allowed...)(next)(c)
}

func TestRequireRole_Allowed(t *testing.T) {
	if err := runRequireRole(t, domain.RoleAdmin, domain.RoleAdmin); err != nil {
		t.Fatalf("admin should pass: %v", err)
	}
	if err := runRequireRole(t, domain.RoleClient, domain.RoleAdmin, domain.RoleClient); err != nil {
		t.Fatalf("client should pass when listed: %v", err)
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	err := runRequireRole(t, domain.RoleClient, domain.RoleAdmin)
	assertHTTPStatus(t, err, http.StatusForbidden)
}

func TestRequireRole_NoRoleInContext(t *testing.T) {
	err := runRequireRole(t, "", domain.RoleAdmin)
	assertHTTPStatus(t, err, http.StatusForbidden)
}
