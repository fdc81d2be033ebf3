package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/vetcare/central/internal/api/middleware"
	"github.com/vetcare/central/internal/core/domain"
)

// ctxSession returns the session id and session resolved by the Auth
// middleware. Both are zero for anonymous requests.
func ctxSession(c echo.Context) (string, domain.Session) {
	return middleware.SessionIDFrom(c), middleware.SessionFrom(c)
}
