package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"issue-tracker-api/internal/handler"
	"issue-tracker-api/internal/metrics"
	"issue-tracker-api/internal/middleware"
	"issue-tracker-api/internal/repository"
	"issue-tracker-api/internal/service"
)

// Config holds the dependencies for the router
type Config struct {
	DB             *gorm.DB
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	JWTSecret      string
	TokenValidator middleware.TokenValidator
	BasePath       string
	Mode           string
	AllowedOrigins []string
}

// Setup wires the repositories, services and handlers and returns the engine
func Setup(cfg Config) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Initialize repositories
	issueRepo := repository.NewIssueRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)
	userRepo := repository.NewUserRepository(cfg.DB)

	// Initialize services
	issueService := service.NewIssueService(issueRepo, cfg.Metrics, cfg.Logger)
	commentService := service.NewCommentService(commentRepo, issueRepo, userRepo, cfg.Metrics, cfg.Logger)

	// Initialize handlers
	issueHandler := handler.NewIssueHandler(issueService)
	commentHandler := handler.NewCommentHandler(commentService)
	healthHandler := handler.NewHealthHandler(cfg.DB)

	// Health endpoints (no auth)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth middleware: prefer auth-service validation when configured
	var auth gin.HandlerFunc
	if cfg.TokenValidator != nil {
		auth = middleware.AuthWithValidator(cfg.TokenValidator)
	} else {
		auth = middleware.Auth(cfg.JWTSecret)
	}

	// API routes with base path
	api := r.Group(cfg.BasePath)
	{
		// Health under base path
		api.GET("/health", healthHandler.Health)
		api.GET("/ready", healthHandler.Ready)

		authenticated := api.Group("")
		authenticated.Use(auth)
		{
			// Issue routes
			authenticated.GET("", issueHandler.ListIssues)
			authenticated.POST("", issueHandler.CreateIssue)
			authenticated.GET("/:issueId", issueHandler.GetIssue)
			authenticated.PUT("/:issueId", issueHandler.UpdateIssue)
			authenticated.DELETE("/:issueId", issueHandler.DeleteIssue)

			// Comment routes (static prefix before dynamic issue route)
			authenticated.GET("/comments/:commentId", commentHandler.GetComment)
			authenticated.PUT("/comments/:commentId", commentHandler.UpdateComment)
			authenticated.DELETE("/comments/:commentId", commentHandler.DeleteComment)
			authenticated.GET("/:issueId/comments", commentHandler.ListComments)
			authenticated.POST("/:issueId/comments", commentHandler.CreateComment)
		}
	}

	return r
}
