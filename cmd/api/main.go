package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"webauth/config"
	"webauth/internal/handler"
	"webauth/internal/httpserver"
	"webauth/internal/repository"
	"webauth/internal/service/user"
	"webauth/pkg/db"
	"webauth/pkg/logger"

	pkgconfig "webauth/pkg/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load(pkgconfig.GetConfigPath())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.Server.Mode)

	// Init DB
	dbConn, err := db.NewConnection(ctx, cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	if cfg.DB.ShouldMigrate() {
		if err := db.Migrate(ctx, dbConn, logger); err != nil {
			logger.Fatal("DB migration failed", zap.Error(err))
		}
	}

	// Init Repositories
	userRepo := repository.NewUserRepository(dbConn)

	// Init Services
	userService := user.NewService(userRepo, cfg.Auth.BcryptCost, logger)

	// Init Handlers
	authHandler := handler.NewAuthHandler(userService, logger)

	// Router
	router := httpserver.NewRouter(authHandler, dbConn, cfg.Server.MaxBodyBytes, logger)
	srv := router.Server(cfg.Server.Port)

	go func() {
		logger.Info("Starting auth API", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server start failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down auth API")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
