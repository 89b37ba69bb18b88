package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tasklight.app/tasklight/internal/cache"
	config "tasklight.app/tasklight/internal/configs"
	httpapi "tasklight.app/tasklight/internal/http"
	repository "tasklight.app/tasklight/internal/repositories"
	"tasklight.app/tasklight/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the todo REST API backed by sqlite with a redis list cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Info(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database := config.NewDatabase(cfg.DatabaseDSN)

		redisClient := config.NewRedisClient(cfg.RedisAddr)
		defer redisClient.Close()
		listCache := cache.New(redisClient, time.Duration(cfg.CacheTTLSeconds)*time.Second)

		todoRepo := repository.NewTodoRepository(database)
		categoryRepo := repository.NewCategoryRepository(database)
		todoService := services.NewTodoService(todoRepo, listCache)
		categoryService := services.NewCategoryService(categoryRepo, listCache)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e := echo.New()
		e.HideBanner = true
		handler := httpapi.NewHandler(todoService, categoryService)
		httpapi.Register(e, handler, cfg.RateLimit)

		go func() {
			log.Infof("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Infof("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		log.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
