// Package main is the entry point for the SmartTrav API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pkordes/smarttrav/internal/auth"
	"github.com/pkordes/smarttrav/internal/config"
	"github.com/pkordes/smarttrav/internal/handler"
	"github.com/pkordes/smarttrav/internal/middleware"
	"github.com/pkordes/smarttrav/internal/repo"
	"github.com/pkordes/smarttrav/internal/service"
	"github.com/pkordes/smarttrav/internal/storage"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	repos := repo.NewRepos(pool)
	store := repo.NewStore(pool)

	// --- Auth -------------------------------------------------------------
	var denylist auth.Denylist
	if cfg.RedisURL != "" {
		rd, err := auth.NewRedisDenylist(context.Background(), cfg.RedisURL)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer rd.Close()
		denylist = rd
		slog.Info("token denylist backed by redis")
	} else {
		denylist = auth.NewMemoryDenylist()
		slog.Warn("REDIS_URL not set; logouts are forgotten on restart")
	}
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	// --- Storage ----------------------------------------------------------
	var bucket storage.Bucket
	if cfg.StorageEnabled() {
		bucket = storage.NewSupabaseBucket(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)
		slog.Info("image storage enabled", "bucket", cfg.SupabaseBucket)
	} else {
		slog.Warn("SUPABASE_URL/SUPABASE_KEY not set; image uploads disabled")
	}

	// --- Services ---------------------------------------------------------
	authSvc := service.NewAuthService(repos.Users, tokens, denylist, logger)
	itinerarySvc := service.NewItineraryService(repos, store, logger)
	srv := handler.NewServer(handler.Services{
		Auth:         authSvc,
		Destinations: service.NewDestinationService(store, repos.Destinations, bucket, logger),
		Itineraries:  itinerarySvc,
		Saved:        service.NewSavedService(repos.Saved, repos.Destinations),
		Dashboard:    service.NewDashboardService(repos.Itineraries, repos.Saved),
		Export:       service.NewExportService(itinerarySvc),
	}, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → MaxBody.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP, which the
	// per-IP auth rate limiter keys on.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	srv.Routes(r, handler.RouteOptions{
		Authenticator: authSvc,
		AuthLimiter:   middleware.NewRateLimiter(cfg.AuthRatePerMinute).Limit,
	})

	// --- HTTP Server ------------------------------------------------------
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
