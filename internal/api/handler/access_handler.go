package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vetcare/central/internal/core/access"
	"github.com/vetcare/central/internal/core/domain"
)

type AccessHandler struct {
	resolver *access.Resolver
}

func NewAccessHandler(resolver *access.Resolver) *AccessHandler {
	return &AccessHandler{resolver: resolver}
}

type accessResponse struct {
	Role       domain.Role                `json:"role,omitempty"`
	Features   map[domain.FeatureKey]bool `json:"features"`
	Navigation []access.Route             `json:"navigation"`
}

type featureResponse struct {
	Feature domain.FeatureKey `json:"feature"`
	Allowed bool              `json:"allowed"`
}

// Summary returns every feature flag and the navigation of the caller.
// Anonymous callers get an all-false table and no navigation.
//
// @Summary      Access summary
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  accessResponse
// @Failure      401   {object}  map[string]string
// @Router       /v1/access [get]
func (h *AccessHandler) Summary(c echo.Context) error {
	_, s := ctxSession(c)

	resp := accessResponse{
		Features:   h.resolver.Features(s.Identity),
		Navigation: h.resolver.Navigation(s.Identity),
	}
	if s.Identity != nil {
		resp.Role = s.Identity.Role
	}
	if resp.Navigation == nil {
		resp.Navigation = []access.Route{}
	}
	return c.JSON(http.StatusOK, resp)
}

// Feature checks a single feature. Unknown keys are reported as not allowed.
//
// @Summary      Feature check
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Param        feature  path      string  true  "Feature key"
// @Success      200      {object}  featureResponse
// @Failure      401      {object}  map[string]string
// @Router       /v1/access/features/{feature} [get]
func (h *AccessHandler) Feature(c echo.Context) error {
	_, s := ctxSession(c)
	key := domain.FeatureKey(c.Param("feature"))
	return c.JSON(http.StatusOK, featureResponse{
		Feature: key,
		Allowed: h.resolver.HasFeature(s.Identity, key),
	})
}

// Page renders the guarded dashboard page. It only runs once the Guard
// middleware has allowed the request.
//
// @Summary      Dashboard page
// @Tags         pages
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Page name"
// @Success      200   {object}  access.Route
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/pages/{name} [get]
func (h *AccessHandler) Page(route access.Route) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, route)
	}
}
