package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newGuardedEcho(token string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	g := e.Group("/admin", AdminGuard(token))
	g.POST("/pause", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	})
	return e
}

func doGuarded(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/admin/pause", nil)
	if token != "" {
		req.Header.Set("X-Admin-Token", token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAdminGuard_AllowsMatchingToken(t *testing.T) {
	e := newGuardedEcho("s3cret")
	if rec := doGuarded(e, "s3cret"); rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
}

func TestAdminGuard_RejectsMissingOrWrongToken(t *testing.T) {
	e := newGuardedEcho("s3cret")
	if rec := doGuarded(e, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("missing token: code = %d, want 403", rec.Code)
	}
	if rec := doGuarded(e, "nope"); rec.Code != http.StatusForbidden {
		t.Fatalf("wrong token: code = %d, want 403", rec.Code)
	}
}

func TestAdminGuard_EmptyConfiguredTokenDisables(t *testing.T) {
	e := newGuardedEcho("")
	if rec := doGuarded(e, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("code = %d, want 403 when surface disabled", rec.Code)
	}
}
