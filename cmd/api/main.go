package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TARUN062005/MERNNETFLIX/internal/cache"
	"github.com/TARUN062005/MERNNETFLIX/internal/config"
	"github.com/TARUN062005/MERNNETFLIX/internal/db"
	httpx "github.com/TARUN062005/MERNNETFLIX/internal/http"
	"github.com/TARUN062005/MERNNETFLIX/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	if cfg.JWTSecret == "" {
		log.Error("JWT_SECRET_TOKEN is not set")
		os.Exit(1)
	}

	// tracing
	shutdownTracer, err := observability.InitTracer(context.Background(), "netflix-api", cfg.OTLPEndpoint)

	if err != nil {
		log.Warn("tracing disabled", "err", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	// database
	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("could not connect to database", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	initCtx, cancelInit := config.WithTimeout(10 * time.Second)
	defer cancelInit()

	if err := db.EnsureSchema(initCtx, pool); err != nil {
		log.Error("could not ensure schema", "err", err)
		os.Exit(1)
	}

	if err := db.EnsureAdminUser(initCtx, pool, cfg); err != nil {
		log.Error("could not seed admin user", "err", err)
		os.Exit(1)
	}

	// redis is optional; the catalog cache degrades to plain DB reads
	redisClient := cache.New(cache.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancelPing := config.WithTimeout(2 * time.Second)

	if err := redisClient.Ping(pingCtx); err != nil {
		log.Warn("redis unavailable, catalog cache disabled", "err", err)
		_ = redisClient.Close()
		redisClient = nil
	}
	cancelPing()

	reg := prometheus.NewRegistry()

	router := httpx.NewRouter(log, pool, redisClient, cfg, reg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
			return
		}

		if err := shutdownTracer(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}

		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
