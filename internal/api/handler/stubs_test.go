package handler

import (
	"context"
	"errors"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vetcare/central/internal/api/middleware"
	"github.com/vetcare/central/internal/core/domain"
)

type stubSessionManager struct {
	currentFn func(ctx context.Context, sid string) domain.Session
	loginFn   func(ctx context.Context, sid string, creds domain.Credentials) (*domain.Identity, error)
	logoutFn  func(ctx context.Context, sid string) error
}

func (s *stubSessionManager) Current(ctx context.Context, sid string) domain.Session {
	return s.currentFn(ctx, sid)
}

func (s *stubSessionManager) Login(ctx context.Context, sid string, creds domain.Credentials) (*domain.Identity, error) {
	return s.loginFn(ctx, sid, creds)
}

func (s *stubSessionManager) Logout(ctx context.Context, sid string) error {
	return s.logoutFn(ctx, sid)
}

type stubTokenIssuer struct {
	issued []string
	err    error
}

func (s *stubTokenIssuer) Issue(sid string) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	s.issued = append(s.issued, sid)
	return "token-for-" + sid, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

var errBackend = errors.New("backend down")

var receptionist = &domain.Identity{ID: "3", Name: "Carlos", Email: "recepcion@vetcare.test", Role: domain.RoleReceptionist}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// withSession simulates the Auth middleware.
func withSession(c echo.Context, sid string, s domain.Session) {
	if sid != "" {
		c.Set(middleware.ContextSessionID, sid)
	}
	c.Set(middleware.ContextSession, s)
}

func serve(e *echo.Echo, c echo.Context, h echo.HandlerFunc, rec *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}
