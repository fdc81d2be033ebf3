package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vetcare/central/internal/core/domain"
	"github.com/vetcare/central/internal/core/ports"
)

// Context keys set by Auth.
const (
	ContextSessionID = "session_id"
	ContextSession   = "session"
)

// TokenParser extracts the session id from a bearer token.
type TokenParser interface {
	Parse(token string) (string, error)
}

// Auth resolves the caller's browser session. A request without an
// Authorization header, or with a token that no longer verifies (expired,
// wrong signature), is anonymous; route guards then send it to login. Only a
// header that is not a bearer credential at all is rejected with 401.
func Auth(tokens TokenParser, sessions ports.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				c.Set(ContextSession, domain.Session{})
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			sid, err := tokens.Parse(parts[1])
			if err != nil {
				c.Set(ContextSession, domain.Session{})
				return next(c)
			}

			c.Set(ContextSessionID, sid)
			c.Set(ContextSession, sessions.Current(c.Request().Context(), sid))
			return next(c)
		}
	}
}

// SessionFrom returns the session stored by Auth, or an anonymous one.
func SessionFrom(c echo.Context) domain.Session {
	s, _ := c.Get(ContextSession).(domain.Session)
	return s
}

// SessionIDFrom returns the session id stored by Auth, or "".
func SessionIDFrom(c echo.Context) string {
	sid, _ := c.Get(ContextSessionID).(string)
	return sid
}
