package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskforge/task-management/docs"
	"github.com/taskforge/task-management/internal/api/handler"
	"github.com/taskforge/task-management/internal/api/middleware"
	"github.com/taskforge/task-management/internal/core/domain"
	"github.com/taskforge/task-management/internal/core/ports"
	"github.com/taskforge/task-management/internal/core/service"
	"github.com/taskforge/task-management/internal/infrastructure/config"
	mongodb "github.com/taskforge/task-management/internal/infrastructure/db/mongo"
)

// Dependencies carries the externally constructed collaborators the router
// wires into handlers.
type Dependencies struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	Config    *config.Config
	Logger    zerolog.Logger
	Publisher ports.EventPublisher
	Cache     ports.Cache
	Mailer    ports.Mailer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskmgmt"))

	// --- Repositories and services ---
	userRepo := mongodb.NewUserRepository(deps.Mongo)
	taskRepo := mongodb.NewTaskRepository(deps.Mongo)

	authService := service.NewAuthService(userRepo, deps.Cache, deps.Mailer, deps.Config.JWTSecret, 15*time.Minute, deps.Logger)
	userService := service.NewUserService(userRepo, deps.Cache, deps.Logger)
	taskService := service.NewTaskService(taskRepo, userRepo, deps.Publisher, deps.Logger)

	secureCookies := deps.Config.Env == "production"
	authHandler := handler.NewAuthHandler(authService, secureCookies)
	userHandler := handler.NewUserHandler(userService)
	taskHandler := handler.NewTaskHandler(taskService)

	auth := middleware.Auth(deps.Config.JWTSecret)
	adminOrManager := middleware.RBAC(domain.RoleAdmin, domain.RoleManager)

	// --- User routes ---
	user := e.Group("/api/v1/user")
	user.POST("/signup", authHandler.Signup)
	user.POST("/login", authHandler.Login)
	user.POST("/logout", authHandler.Logout)
	user.GET("/me", userHandler.Me, auth)
	user.GET("", userHandler.List, auth, adminOrManager)

	// --- Task routes ---
	task := e.Group("/api/v1/task", auth)
	task.POST("", taskHandler.Create, adminOrManager)
	task.GET("", taskHandler.List, adminOrManager)
	task.GET("/mine", taskHandler.Mine)
	task.GET("/analytics", taskHandler.Analytics, adminOrManager)
	task.PUT("/:id/assign", taskHandler.Assign, adminOrManager)
	task.PUT("/:id", taskHandler.Update)
	task.DELETE("/:id", taskHandler.Delete, adminOrManager)

	// --- Health probes, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)              // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)    // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
