package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"fin-assistant/internal/query"
	"fin-assistant/internal/repository"
	"fin-assistant/internal/service"
	"fin-assistant/internal/shell"
	"fin-assistant/pkg/config"
	"fin-assistant/pkg/logger"
	"fin-assistant/pkg/postgres"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func main() {
	logPath := flag.String("log", "finassist-shell.log", "log file path")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logs go to a file so they do not draw over the terminal UI
	appLogger, err := logger.NewFile(cfg.Logger.Level, *logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = appLogger.Sync() }()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Shell exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Open(ctx, &cfg.Database, appLogger)
	if err != nil {
		return err
	}
	defer db.Close()

	var chat service.ChatFallback
	llmService, err := service.NewLLMService(ctx, &cfg.GigaChat, appLogger.Named("llm"))
	if err != nil {
		appLogger.Warn("Chat fallback disabled", zap.Error(err))
	} else {
		defer llmService.Close()
		chat = llmService
	}

	loc, err := cfg.Assistant.Location()
	if err != nil {
		return err
	}
	interpreter := query.NewInterpreter(appLogger.Named("query"),
		query.WithLocation(loc),
		query.WithParallelism(cfg.Assistant.Workers, cfg.Assistant.ParallelThreshold),
	)
	assistant := service.NewAssistantService(
		repository.NewUserRepository(db, appLogger),
		repository.NewWalletRepository(db, appLogger),
		repository.NewTransactionRepository(db, appLogger),
		repository.NewQuestionLogRepository(db, appLogger),
		chat, interpreter, appLogger,
	)

	_, err = tea.NewProgram(shell.New(ctx, assistant, appLogger.Named("shell")), tea.WithAltScreen()).Run()
	return err
}
