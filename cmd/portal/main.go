package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medischedule-portal/internal/apiclient"
	"github.com/harentsoaR/medischedule-portal/internal/chat"
	"github.com/harentsoaR/medischedule-portal/internal/config"
	"github.com/harentsoaR/medischedule-portal/internal/handlers"
	"github.com/harentsoaR/medischedule-portal/internal/logger"
	"github.com/harentsoaR/medischedule-portal/internal/middleware"
	"github.com/harentsoaR/medischedule-portal/internal/router"
	"github.com/harentsoaR/medischedule-portal/internal/session"
	"github.com/harentsoaR/medischedule-portal/internal/storage"
	"github.com/harentsoaR/medischedule-portal/internal/telemetry"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		ServiceName: "medischedule-portal",
		Pretty:      cfg.GinMode != gin.ReleaseMode,
	})
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup("medischedule-portal", log)

	// --- Storage ---
	kv, closeStore, err := storage.Open(ctx, storage.Options{
		Driver:        cfg.StorageDriver,
		Path:          cfg.StoragePath,
		Profile:       cfg.StorageProfile,
		MongoURI:      cfg.MongoURI,
		MongoDatabase: cfg.MongoDatabase,
	})
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to open storage")
	}

	// --- Session ---
	// The session validates persisted tokens with an explicit bearer, so it
	// uses a client without a token source; pages use the session's token.
	clientOpts := []apiclient.Option{apiclient.WithTimeout(cfg.HTTPTimeout), apiclient.WithLogger(log)}
	sess := session.New(kv, apiclient.New(cfg.BackendURL, clientOpts...), log)
	api := apiclient.New(cfg.BackendURL, append(clientOpts, apiclient.WithTokenSource(sess))...)

	sess.Initialize(ctx)
	snap := sess.Current()
	if role, ok := snap.Role(); ok {
		log.Info().Str("role", role.String()).Msg("session ready")
	} else {
		log.Info().Msg("session ready, logged out")
	}

	// --- Handlers ---
	views := chat.NewViews(ctx, api, cfg.ChatPollInterval, log)
	table := router.DefaultTable(cfg.EnableDepartmentHead)
	h := handlers.NewHandler(sess, api, table, views, kv, log)

	// --- Gin Router ---
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Location", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))
	h.Routes(r)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Str("backend", cfg.BackendURL).
			Bool("department_head", cfg.EnableDepartmentHead).Msg("portal listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	views.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := closeStore(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("storage close")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
}
