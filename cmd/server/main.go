package main

import (
	"context"
	"fmt"
	"os"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/a2a"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/analyzer"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/config"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/controller"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/logging"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/server"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.ValidateForAnalysis(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// Initialize AI client
	requester, closeClient, err := analyzer.NewFromConfig(context.Background(), cfg)
	if err != nil {
		logger.Fatal("failed to create AI client", zap.String("provider", cfg.Provider), zap.Error(err))
	}
	defer closeClient()

	ctrl := controller.New(requester, logger.Named("controller"))
	a2aHandler := a2a.NewA2AHandler(requester, logger)

	gin.SetMode(cfg.GinMode)
	router := server.NewRouter(ctrl, a2aHandler, logger)

	logger.Info("SMM Content Analyzer starting",
		zap.String("port", cfg.Port),
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
	)
	logger.Info("endpoints available",
		zap.String("agent_card", fmt.Sprintf("http://localhost:%s/.well-known/agent.json", cfg.Port)),
		zap.String("a2a", fmt.Sprintf("http://localhost:%s/a2a/analyzer", cfg.Port)),
		zap.String("form", fmt.Sprintf("http://localhost:%s/api/form", cfg.Port)),
	)

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server failed to start", zap.Error(err))
	}
}
