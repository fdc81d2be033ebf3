package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vetcare/central/internal/core/domain"
	"github.com/vetcare/central/internal/core/ports"
)

// TokenIssuer signs the transport token carrying a session id.
type TokenIssuer interface {
	Issue(sessionID string) (string, time.Time, error)
}

type AuthHandler struct {
	sessions     ports.SessionManager
	tokens       TokenIssuer
	newSessionID func() string
}

func NewAuthHandler(sessions ports.SessionManager, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{sessions: sessions, tokens: tokens, newSessionID: uuid.NewString}
}

// Login authenticates against the user directory and binds the identity to
// the caller's browser session. A caller without a session gets a new one.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sid, _ := ctxSession(c)
	if sid == "" {
		sid = h.newSessionID()
	}

	user, err := h.sessions.Login(c.Request().Context(), sid, domain.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}

	token, exp, err := h.tokens.Issue(sid)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token, ExpiresAt: exp, User: user})
}

// Logout clears the caller's session. It succeeds for anonymous callers too.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sid, _ := ctxSession(c)
	if err := h.sessions.Logout(c.Request().Context(), sid); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session reports the caller's current session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	_, s := ctxSession(c)
	return c.JSON(http.StatusOK, toSessionResponse(s))
}
