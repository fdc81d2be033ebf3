package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vetcare/central/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"bad credentials", &domain.AuthError{Reason: domain.ErrInvalidCredentials}, http.StatusUnauthorized, domain.LoginFailedMessage},
		{"directory down", &domain.AuthError{Reason: domain.ErrDirectoryUnavailable, Cause: errors.New("dial tcp: refused")}, http.StatusUnauthorized, domain.LoginFailedMessage},
		{"storage on login", &domain.AuthError{Reason: domain.ErrSessionStorage}, http.StatusUnauthorized, domain.LoginFailedMessage},
		{"in progress", &domain.AuthError{Reason: domain.ErrLoginInProgress}, http.StatusConflict, "login already in progress"},
		{"storage on logout", fmt.Errorf("logout: %w", domain.ErrSessionStorage), http.StatusServiceUnavailable, "session storage unavailable"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "email is required"), http.StatusBadRequest, "email is required"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
		{"directory error outside login", fmt.Errorf("lookup: %w", domain.ErrUserNotFound), http.StatusInternalServerError, "internal server error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tc.err, c)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.message) {
				t.Fatalf("expected message %q, got %s", tc.message, rec.Body.String())
			}
			if strings.Contains(rec.Body.String(), "refused") {
				t.Fatalf("internal cause leaked: %s", rec.Body.String())
			}
		})
	}
}
