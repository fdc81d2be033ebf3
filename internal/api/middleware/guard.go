package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vetcare/central/internal/core/access"
	"github.com/vetcare/central/internal/metrics"
)

type guardResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

// Guard protects a dashboard route. It must run after Auth.
//
//	RedirectLogin -> 401 {"redirect": "/login"}
//	RedirectHome  -> 403 {"redirect": "/"}
func Guard(resolver *access.Resolver, route access.Route) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := resolver.Decide(SessionFrom(c), route.Rule)
			metrics.GuardDecisionsTotal.WithLabelValues(route.Name, decision.String()).Inc()

			switch decision {
			case access.Allow:
				return next(c)
			case access.RedirectHome:
				return c.JSON(http.StatusForbidden, guardResponse{Error: "access forbidden", Redirect: decision.Target()})
			default:
				return c.JSON(http.StatusUnauthorized, guardResponse{Error: "authentication required", Redirect: decision.Target()})
			}
		}
	}
}
