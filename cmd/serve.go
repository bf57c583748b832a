package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	config "github.com/yohandiaz/worklog-app/internal/configs"
	httpapi "github.com/yohandiaz/worklog-app/internal/http"
	middleware "github.com/yohandiaz/worklog-app/internal/http/middlewares"
	"github.com/yohandiaz/worklog-app/internal/logger"
	repository "github.com/yohandiaz/worklog-app/internal/repositories"
	"github.com/yohandiaz/worklog-app/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the worklog HTTP API and the server-rendered listing page",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		appLog := logger.New(cfg.LogLevel)

		database := config.New(cfg.DatabaseDSN)
		worklogRepo := repository.NewWorkLogRepository(database)
		worklogService := services.NewWorkLogService(worklogRepo)

		var limiterStore middleware.CounterStore = middleware.NewMemoryCounterStore()
		if cfg.RedisAddr != "" {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			limiterStore = middleware.NewRedisCounterStore(redisClient)
		}

		e := echo.New()
		e.HideBanner = true
		e.Renderer = httpapi.NewRenderer()
		e.Use(echomw.CORS())
		e.Use(middleware.RequestLogger(appLog))
		e.Use(middleware.Metrics())
		e.Use(middleware.RateLimiter(limiterStore, cfg.RateLimit, time.Minute))

		httpapi.Register(e, httpapi.NewHandler(worklogService))

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			appLog.Infof("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				appLog.Infof("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		appLog.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
