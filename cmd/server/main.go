package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-api/internal/auth"
	"github.com/yukikurage/taskboard-api/internal/config"
	"github.com/yukikurage/taskboard-api/internal/database"
	"github.com/yukikurage/taskboard-api/internal/handlers"
	"github.com/yukikurage/taskboard-api/internal/logging"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"github.com/yukikurage/taskboard-api/internal/router"
	"github.com/yukikurage/taskboard-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}

	// Run migrations
	if err := database.Migrate(db, logger); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiresIn)

	// Initialize AI drafter only when configured; a nil *AIService must not
	// end up inside the interface
	var drafter services.TaskDrafter
	if cfg.OpenAIAPIKey != "" {
		drafter = services.NewAIService(cfg.OpenAIAPIKey)
	} else {
		logger.Info("OPENAI_API_KEY not set, task generation disabled")
	}

	authService := services.NewAuthService(userRepo, tokens, logger)
	userService := services.NewUserService(userRepo, logger)
	taskService := services.NewTaskService(taskRepo, userRepo, drafter, logger)

	r := gin.New()
	router.Register(r, tokens, logger, router.Handlers{
		Auth: handlers.NewAuthHandler(authService, userService, logger),
		Task: handlers.NewTaskHandler(taskService, logger),
		User: handlers.NewUserHandler(userService, logger),
	})

	// Start server
	addr := ":" + cfg.Port
	logger.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
