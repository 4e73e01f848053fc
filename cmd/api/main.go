// @title           Issue Tracker API
// @version         1.0
// @description     Issue and comment tracking API

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /api/issues

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	_ "issue-tracker-api/docs" // Swagger docs import

	"issue-tracker-api/internal/client"
	"issue-tracker-api/internal/config"
	"issue-tracker-api/internal/database"
	"issue-tracker-api/internal/job"
	"issue-tracker-api/internal/metrics"
	"issue-tracker-api/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Issue Tracker API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("auth_service_url", cfg.Auth.ServiceURL),
	)

	// Initialize metrics
	m := metrics.NewWithLogger(logger)
	logger.Info("Metrics initialized")

	// Initialize database; startup proceeds without it so the pod stays
	// alive and /ready reports the real state
	dbConfig := database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	onConnect := func(db *gorm.DB) {
		if err := database.AutoMigrate(db); err != nil {
			logger.Warn("Failed to run database migrations", zap.Error(err))
		} else {
			logger.Info("Database migrations completed")
		}
		database.RegisterMetricsCallbacks(db, m)
	}

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Warn("Failed to connect to database on startup, will retry in background",
			zap.Error(err))
		database.NewAsync(dbConfig, 5*time.Second, onConnect)
	} else {
		logger.Info("Database connected successfully")
		database.SetDB(db)
		onConnect(db)
	}

	// Initialize token validator against the auth service
	var validator *client.AuthServiceValidator
	if cfg.Auth.ServiceURL != "" {
		validator = client.NewAuthServiceValidator(cfg.Auth.ServiceURL, cfg.Auth.JWTSecret, m, logger)
		logger.Info("Auth service validator initialized",
			zap.String("auth_service_url", cfg.Auth.ServiceURL))
	}

	// Schedule periodic stats refresh
	statsJob := job.NewStatsJob(database.GetDB(), m, logger)
	scheduler := cron.New()
	if _, err := scheduler.AddJob(cfg.Stats.Schedule, statsJob); err != nil {
		logger.Warn("Failed to schedule stats job", zap.Error(err))
	} else {
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Setup router with all dependencies
	routerCfg := router.Config{
		DB:             database.GetDB(),
		Logger:         logger,
		Metrics:        m,
		JWTSecret:      cfg.Auth.JWTSecret,
		BasePath:       cfg.Server.BasePath,
		Mode:           cfg.Server.Mode,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}
	if validator != nil {
		routerCfg.TokenValidator = validator
	}
	r := router.Setup(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Issue Tracker API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
