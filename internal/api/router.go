package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/selectshop/shop-api/internal/api/handler"
	"github.com/selectshop/shop-api/internal/api/middleware"
	"github.com/selectshop/shop-api/internal/core/ports"
	httphandlers "github.com/selectshop/shop-api/internal/infrastructure/http/handlers"
)

// Deps bundles the collaborators the router wires into handlers and gates.
type Deps struct {
	AuthService  ports.AuthService
	KakaoService ports.KakaoService
	KakaoClient  ports.KakaoClient
	TokenService ports.TokenService
	Users        ports.UserRepository
	Folders      ports.FolderRepository
	States       ports.StateStore
	Health       *httphandlers.HealthDependenciesHandler
	Log          zerolog.Logger

	// Metrics overrides the Prometheus registry for HTTP metrics. Leave nil
	// in production to use the default registry; tests pass a fresh one so
	// building several routers in one process does not double-register.
	Metrics *prometheus.Registry
}

// NewRouter builds the Echo instance with all routes registered.
//
// Every request passes the Authenticate gate; the allow-list below mirrors
// the public surface (root page, the whole /api/user/** login/signup/OAuth
// area, probes, metrics). Protected groups additionally carry RequireUser,
// which is what turns "no identity" into a rejection.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	if d.Metrics != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "selectshop",
			Registerer: d.Metrics,
		}))
	} else {
		e.Use(echoprometheus.NewMiddleware("selectshop"))
	}

	allow := middleware.NewAllowList(
		"/",
		"/api/user/**",
		"/health",
		"/health/ready",
		"/metrics",
		"/static/**",
	)
	e.Use(middleware.Authenticate(d.TokenService, d.Users, allow))

	userHandler := handler.NewUserHandler(d.AuthService, d.KakaoService, d.KakaoClient, d.States)
	folderHandler := handler.NewFolderHandler(d.Folders)

	e.POST("/api/user/signup", userHandler.Signup)
	e.POST("/api/user/login", userHandler.Login)
	e.GET("/api/user/kakao/authorize", userHandler.KakaoAuthorize)
	e.GET("/api/user/kakao/callback", userHandler.KakaoCallback)

	protected := e.Group("", middleware.RequireUser())
	protected.GET("/api/user-info", userHandler.UserInfo)
	protected.GET("/api/user-folder", folderHandler.List)
	protected.POST("/api/folders", folderHandler.Create)

	e.GET("/health", httphandlers.NewHealthHandler().Liveness)
	if d.Health != nil {
		e.GET("/health/ready", d.Health.Readiness)
	}
	if d.Metrics != nil {
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: d.Metrics,
		}))
	} else {
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	return e
}
