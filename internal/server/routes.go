package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "github.com/tobenna/maestro/docs"
	"github.com/tobenna/maestro/internal/config"
	"github.com/tobenna/maestro/internal/domains/chat"
	"github.com/tobenna/maestro/internal/domains/plan"
	"github.com/tobenna/maestro/internal/domains/query"
	"github.com/tobenna/maestro/internal/domains/routing"
	"github.com/tobenna/maestro/internal/domains/user"
	"github.com/tobenna/maestro/internal/handlers"
	"github.com/tobenna/maestro/pkg/Logger"
)

type Dependencies struct {
	Settings       *config.Settings
	Logger         *Logger.Logger
	UserService    user.UserService
	ChatService    chat.ChatService
	PlanService    plan.PlanService
	QueryService   query.QueryService
	RoutingService routing.RoutingService
}

func NewServerDependencies(
	settings *config.Settings,
	logger *Logger.Logger,
	userService user.UserService,
	chatService chat.ChatService,
	planService plan.PlanService,
	queryService query.QueryService,
	routingService routing.RoutingService,
) Dependencies {
	return Dependencies{
		Settings:       settings,
		Logger:         logger,
		UserService:    userService,
		ChatService:    chatService,
		PlanService:    planService,
		QueryService:   queryService,
		RoutingService: routingService,
	}
}

// InitializeRoutes mounts every endpoint on the engine.
func InitializeRoutes(engine *gin.Engine, deps Dependencies) {
	engine.Use(
		handlers.CORSMiddleware(deps.Settings.Auth.AllowOrigin),
		handlers.RequestLoggerMiddleware(deps.Logger),
		handlers.ErrorHandlerMiddleware(deps.Logger),
	)

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "maestro", "status": "ok"})
	})
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := engine.Group("/api/v1")

	userHandler := handlers.NewUserHandler(deps.UserService, deps.Logger)
	userHandler.RegisterRoutes(v1)

	chatHandler := handlers.NewChatHandler(deps.ChatService, deps.Logger)
	chatHandler.RegisterRoutes(v1, deps.UserService)

	planHandler := handlers.NewPlanHandler(deps.PlanService, deps.Logger)
	planHandler.RegisterRoutes(v1, deps.UserService)

	dispatchHandler := handlers.NewDispatchHandler(
		deps.RoutingService, deps.ChatService, deps.QueryService, deps.Logger)
	dispatchHandler.RegisterRoutes(v1, deps.UserService)
}
