package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/citylink/citylink-api/docs"
	"github.com/citylink/citylink-api/internal/api/handler"
	"github.com/citylink/citylink-api/internal/api/middleware"
	"github.com/citylink/citylink-api/internal/core/domain"
	"github.com/citylink/citylink-api/internal/core/ports"
)

// Deps carries everything the router needs wired in.
type Deps struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	Accounts  ports.AccountService
	Issues    ports.IssueService
	Sessions  ports.SessionStore
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("citylink"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Accounts)
	adminHandler := handler.NewAdminHandler(deps.Accounts)
	issueHandler := handler.NewIssueHandler(deps.Issues)
	meHandler := handler.NewMeHandler(deps.Accounts, deps.Sessions)
	metaHandler := handler.NewMetaHandler()
	authRequired := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authRequired)

	// --- Catalogs (public) ---
	e.GET("/v1/meta/categories", metaHandler.Categories)
	e.GET("/v1/meta/cities", metaHandler.Cities)

	// --- Current account ---
	me := e.Group("/v1/me", authRequired)
	me.GET("", meHandler.Current)
	me.GET("/theme", meHandler.GetTheme)
	me.PUT("/theme", meHandler.SetTheme)

	// --- Access policy (routing guards) ---
	e.GET("/v1/access/:area", metaHandler.Access, authRequired)

	// --- Issues ---
	issues := e.Group("/v1/issues", authRequired)
	issues.POST("", issueHandler.Report, middleware.RBAC(domain.RoleCitizen))
	issues.GET("", issueHandler.List, middleware.RBAC(domain.RoleCityAdmin, domain.RoleSuperAdmin))
	issues.GET("/mine", issueHandler.ListMine, middleware.RBAC(domain.RoleCitizen))
	issues.GET("/community", issueHandler.ListCommunity, middleware.RBAC(domain.RoleCitizen))
	issues.GET("/:id", issueHandler.Get)
	issues.PATCH("/:id/status", issueHandler.UpdateStatus, middleware.RBAC(domain.RoleCityAdmin, domain.RoleSuperAdmin))
	issues.POST("/:id/analyze", issueHandler.Analyze, middleware.RBAC(domain.RoleCityAdmin, domain.RoleSuperAdmin))

	// --- Super admin ---
	admin := e.Group("/v1/admin", authRequired, middleware.RBAC(domain.RoleSuperAdmin))
	admin.GET("/city-admins", adminHandler.ListCityAdmins)
	admin.POST("/city-admins", adminHandler.ProvisionCityAdmin)
	admin.DELETE("/city-admins/:id", adminHandler.DeleteCityAdmin)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
