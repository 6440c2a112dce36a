// Package api assembles the HTTP surface: routes, the guard chain with its
// per-route metadata, and the supporting middleware.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	"github.com/taskforge/task-management-api/internal/api/handler"
	"github.com/taskforge/task-management-api/internal/api/middleware"
	"github.com/taskforge/task-management-api/internal/auth/strategy"
	"github.com/taskforge/task-management-api/internal/auth/token"
	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/service"
	"github.com/taskforge/task-management-api/internal/infrastructure/config"
	"github.com/taskforge/task-management-api/internal/infrastructure/db/postgres"
	redisinfra "github.com/taskforge/task-management-api/internal/infrastructure/db/redis"
	"github.com/taskforge/task-management-api/internal/infrastructure/oauth"
)

// NewRouter builds and returns the Echo instance with all routes registered
// and the guard chain composed once at startup.
func NewRouter(db *gorm.DB, rdb *redis.Client, google *oauth.GoogleProvider, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskapi"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	projectRepo := postgres.NewProjectRepository(db)

	tokens := token.NewIssuer(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	exchangeStore := redisinfra.NewExchangeCodeStore(rdb)

	localStrategy := strategy.NewLocal(userRepo)
	accessStrategy := strategy.NewAccessToken(tokens)
	refreshStrategy := strategy.NewRefreshToken(tokens, userRepo)
	googleStrategy := strategy.NewGoogle(google, userRepo, log)

	authService := service.NewAuthService(userRepo, tokens, log)
	taskService := service.NewTaskService(taskRepo, projectRepo, log)
	projectService := service.NewProjectService(projectRepo, log)

	authHandler := handler.NewAuthHandler(authService, google, googleStrategy, exchangeStore, cfg.Google.ClientCallbackURL)
	taskHandler := handler.NewTaskHandler(taskService)
	projectHandler := handler.NewProjectHandler(projectService)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	// --- Route metadata ---
	// One table, consulted by the guard before dispatch. Routes absent from
	// the table require access-token authentication with any role.
	rules := middleware.RouteRules{
		"POST /auth/signup":          {Public: true},
		"POST /auth/signin":          {Strategy: localStrategy},
		"POST /auth/refresh":         {Strategy: refreshStrategy},
		"GET /auth/protected":        {Roles: []string{domain.RoleAdmin, domain.RoleEditor}},
		"GET /auth/google/login":     {Public: true},
		"GET /auth/google/callback":  {Public: true},
		"POST /auth/google/exchange": {Public: true},

		"POST /tasks":       {Roles: []string{domain.RoleAdmin, domain.RoleEditor}},
		"PUT /tasks/:id":    {Roles: []string{domain.RoleAdmin, domain.RoleEditor}},
		"DELETE /tasks/:id": {Roles: []string{domain.RoleAdmin}},

		"POST /projects": {Roles: []string{domain.RoleAdmin, domain.RoleEditor}},

		"GET /health":       {Public: true},
		"GET /health/ready": {Public: true},
		"GET /metrics":      {Public: true},
		"GET /swagger/*":    {Public: true},
	}
	// The limiter runs before the guard so failed signin attempts count
	// toward the limit too.
	e.Use(middleware.Scoped("/auth", middleware.RateLimit(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window, log)))
	e.Use(middleware.Guard(rules, accessStrategy))

	// --- Auth routes ---
	authGroup := e.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/signin", authHandler.Signin)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/signout", authHandler.SignOut)
	authGroup.GET("/protected", authHandler.Protected)
	authGroup.GET("/google/login", authHandler.GoogleLogin)
	authGroup.GET("/google/callback", authHandler.GoogleCallback)
	authGroup.POST("/google/exchange", authHandler.GoogleExchange)

	// --- Task routes ---
	e.POST("/tasks", taskHandler.Create)
	e.GET("/tasks", taskHandler.List)
	e.GET("/tasks/search", taskHandler.Search)
	e.GET("/tasks/:id", taskHandler.Get)
	e.PUT("/tasks/:id", taskHandler.Update)
	e.DELETE("/tasks/:id", taskHandler.Delete)

	// --- Project routes ---
	e.POST("/projects", projectHandler.Create)
	e.GET("/projects", projectHandler.List)
	e.GET("/projects/:id", projectHandler.Get)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
