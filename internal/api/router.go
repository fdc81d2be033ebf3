package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/vetcare/central/docs"
	"github.com/vetcare/central/internal/api/handler"
	"github.com/vetcare/central/internal/api/middleware"
	"github.com/vetcare/central/internal/core/access"
	"github.com/vetcare/central/internal/core/ports"
)

// Tokens issues and verifies the transport token carrying the session id.
type Tokens interface {
	handler.TokenIssuer
	middleware.TokenParser
}

// Deps is everything the HTTP layer needs.
type Deps struct {
	Sessions ports.SessionManager
	Tokens   Tokens
	Resolver *access.Resolver
	Pingers  map[string]handler.Pinger
	Log      zerolog.Logger

	// Registerer and Gatherer back the HTTP metrics and /metrics. Nil uses
	// the prometheus defaults.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "vetcare",
		Registerer: registerer,
	}))

	// --- Health probes, metrics and docs (no session required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Pingers)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	auth := middleware.Auth(deps.Tokens, deps.Sessions)

	// --- Session routes ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Tokens)
	e.POST("/auth/login", authHandler.Login, auth)
	e.POST("/auth/logout", authHandler.Logout, auth)
	e.GET("/auth/session", authHandler.Session, auth)

	// --- Access checks and guarded pages ---
	accessHandler := handler.NewAccessHandler(deps.Resolver)
	v1 := e.Group("/v1", auth)
	v1.GET("/access", accessHandler.Summary)
	v1.GET("/access/features/:feature", accessHandler.Feature)
	for _, route := range access.Routes() {
		v1.GET("/pages/"+route.Name, accessHandler.Page(route), middleware.Guard(deps.Resolver, route))
	}

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
