package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vetcare/central/internal/core/domain"
)

type stubTokens struct{}

func (stubTokens) Parse(token string) (string, error) {
	if token == "good" {
		return "sid-1", nil
	}
	return "", domain.ErrUnauthenticated
}

type stubSessions struct {
	sessions map[string]domain.Session
}

func (s *stubSessions) Current(_ context.Context, sid string) domain.Session {
	return s.sessions[sid]
}

func (s *stubSessions) Login(context.Context, string, domain.Credentials) (*domain.Identity, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSessions) Logout(context.Context, string) error { return nil }

var adminSession = domain.Session{Identity: &domain.Identity{ID: "1", Name: "Ana", Email: "admin@vetcare.test", Role: domain.RoleAdmin}}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(stubTokens{}, &stubSessions{sessions: map[string]domain.Session{"sid-1": adminSession}})
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	rec, c, called := runAuth(t, "Bearer good")
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected next to run with 200, got called=%v code=%d", called, rec.Code)
	}
	if SessionIDFrom(c) != "sid-1" {
		t.Fatalf("session id not set")
	}
	if s := SessionFrom(c); s.Identity == nil || s.Identity.Role != domain.RoleAdmin {
		t.Fatalf("session not set: %+v", s)
	}
}

func TestAuthMiddleware_MissingHeaderIsAnonymous(t *testing.T) {
	rec, c, called := runAuth(t, "")
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("anonymous requests must reach next, got called=%v code=%d", called, rec.Code)
	}
	if SessionFrom(c).Authenticated() || SessionIDFrom(c) != "" {
		t.Fatalf("expected anonymous session")
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	rec, _, called := runAuth(t, "Token abc")
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without next, got called=%v code=%d", called, rec.Code)
	}
}

func TestAuthMiddleware_InvalidTokenIsAnonymous(t *testing.T) {
	rec, c, called := runAuth(t, "Bearer not-a-token")
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected next to run anonymously, got called=%v code=%d", called, rec.Code)
	}
	if SessionFrom(c).Authenticated() || SessionIDFrom(c) != "" {
		t.Fatalf("a token that does not verify must not bind a session")
	}
}
