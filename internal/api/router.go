package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/demoapps/rbac-portal/internal/api/handler"
	"github.com/demoapps/rbac-portal/internal/api/middleware"
	"github.com/demoapps/rbac-portal/internal/core/domain"
	"github.com/demoapps/rbac-portal/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(sessions ports.AuthService, users ports.UserService, storage ports.SessionStorage, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rbacportal"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(sessions)
	userHandler := handler.NewUserHandler(users)

	// --- Public routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)

	// --- Guarded routes ---
	// The session gate runs before the role gate everywhere; the role gate
	// admits unauthenticated requests and relies on this ordering.
	requireSession := middleware.RequireSession(sessions)

	profile := e.Group("/profile", requireSession)
	profile.GET("", authHandler.Profile)

	admin := e.Group("/admin", requireSession, middleware.RequireRole(sessions, domain.RoleAdmin))
	admin.GET("/users", userHandler.List)
	admin.GET("/users/:id", userHandler.GetByID)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(storage)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – is the session store reachable?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
