package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "fin-assistant/docs"
	"fin-assistant/internal/api"
	"fin-assistant/internal/api/handlers"
	"fin-assistant/internal/query"
	"fin-assistant/internal/repository"
	"fin-assistant/internal/service"
	"fin-assistant/pkg/auth"
	"fin-assistant/pkg/config"
	"fin-assistant/pkg/logger"
	"fin-assistant/pkg/postgres"

	"go.uber.org/zap"
)

// @title Fin Assistant API
// @version 1.0
// @description Trợ lý tài chính cá nhân: trả lời câu hỏi về thu nhập, chi tiêu và số dư

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting fin-assistant service")

	ctx := context.Background()
	db, err := postgres.Open(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	walletRepo := repository.NewWalletRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	questionRepo := repository.NewQuestionLogRepository(db, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// The chat fallback is optional; without it non-financial questions fail.
	var chat service.ChatFallback
	llmService, err := service.NewLLMService(ctx, &cfg.GigaChat, logger.Named("llm"))
	if err != nil {
		appLogger.Warn("Chat fallback disabled", zap.Error(err))
	} else {
		defer llmService.Close()
		chat = llmService
	}

	loc, err := cfg.Assistant.Location()
	if err != nil {
		appLogger.Fatal("Invalid assistant timezone", zap.Error(err))
	}
	interpreter := query.NewInterpreter(logger.Named("query"),
		query.WithLocation(loc),
		query.WithParallelism(cfg.Assistant.Workers, cfg.Assistant.ParallelThreshold),
	)

	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	assistant := service.NewAssistantService(userRepo, walletRepo, txRepo, questionRepo, chat, interpreter, appLogger)

	app := api.SetupRouter(api.Handlers{
		Auth:   handlers.NewAuthHandler(authService, appLogger),
		Ask:    handlers.NewAskHandler(assistant, appLogger),
		Wallet: handlers.NewWalletHandler(assistant, appLogger),
	}, jwtManager, cfg.Server, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
