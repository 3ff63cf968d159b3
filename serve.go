package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"insightiq/cache"
	"insightiq/db"
	_ "insightiq/docs" // Swagger docs
	"insightiq/handlers"
	"insightiq/logger"
	"insightiq/metrics"
	"insightiq/service"
	"insightiq/workspace"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	Long: `Start the dashboard server.

Example:
  insightiq serve --port 9090
  insightiq serve --demo`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (overrides PORT)")
	serveCmd.Flags().Duration("shutdown-timeout", 15*time.Second, "graceful shutdown timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()
	gin.SetMode(cfg.GinMode)

	m := metrics.New()

	database, err := db.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	exports, err := service.NewExportStorage(cfg.ExportsDir)
	if err != nil {
		return err
	}

	client := newBackend(cfg, log, m)
	factory := func(id string) *workspace.Workspace {
		opts := workspaceOptions(cfg, id, client, log.With(zap.String("session", id)))
		opts.Store = database
		opts.Recorder = m
		return workspace.New(opts)
	}
	registry := workspace.NewRegistry(cache.New(cfg.SessionTTL, cfg.SessionTTL), factory, m.SetActiveSessions)

	deps := handlers.Deps{
		Registry:      registry,
		Exports:       exports,
		Logger:        log,
		MaxUploadSize: cfg.MaxUploadSize,
		HistoryLimit:  cfg.HistoryLimit,
	}
	if client != nil {
		deps.Backend = client
	}
	h := handlers.New(deps)

	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadSize
	r.Use(gin.Recovery(), logger.GinMiddleware(log), m.GinMiddleware(), cors.New(corsConfig()))

	r.GET("/metrics", gin.WrapH(m.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	h.Register(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		mode := "backend"
		if client == nil {
			mode = "demo"
		}
		log.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("mode", mode),
			zap.String("backend_url", cfg.BackendURL),
			zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout, _ := cmd.Flags().GetDuration("shutdown-timeout")
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	log.Info("shutting down", zap.Duration("timeout", timeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// corsConfig echoes any origin and allows the session header, so a separately hosted
// frontend can use the JSON API with credentials.
func corsConfig() cors.Config {
	return cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Accept", "Origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
}
