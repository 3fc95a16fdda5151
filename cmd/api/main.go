package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/inscricoes/internal/cache"
	"github.com/geocoder89/inscricoes/internal/config"
	"github.com/geocoder89/inscricoes/internal/db"
	httpx "github.com/geocoder89/inscricoes/internal/http"
	"github.com/geocoder89/inscricoes/internal/observability"
	"github.com/geocoder89/inscricoes/internal/repo/cached"
	"github.com/geocoder89/inscricoes/internal/repo/memory"
	"github.com/geocoder89/inscricoes/internal/repo/postgres"
	"github.com/geocoder89/inscricoes/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type gateway interface {
	service.Gateway
	Ping(ctx context.Context) error
}

func main() {
	// .env first so Load sees it
	config.LoadDotEnv()
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("config rejected", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	shutdownTracer, err := observability.InitTracer(ctx, "inscricoes-api", cfg.OTelEnabled, cfg.OTelEndpoint)
	if err != nil {
		log.Error("tracer init failed", "err", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	var gw gateway

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		gw = memory.NewRegistrationsRepo()

	default:
		pool, err := db.NewPool(cfg.DB)
		if err != nil {
			log.Error("db connect failed", "err", err, "host", cfg.DB.Host, "db", cfg.DB.Name)
			os.Exit(1)
		}
		defer pool.Close()

		schemaCtx, cancel := config.WithTimeout(5 * time.Second)
		err = db.EnsureSchema(schemaCtx, pool)
		cancel()
		if err != nil {
			log.Error("schema bootstrap failed", "err", err)
			os.Exit(1)
		}

		gw = postgres.NewRegistrationsRepo(pool, prom)
	}

	var svcGateway service.Gateway = gw

	if cfg.ListCacheTTL > 0 {
		var store cache.Store = cache.New(cfg.ListCacheTTL)

		if cfg.Redis.Addr != "" {
			rs := cache.NewRedisStore(cache.RedisConfig{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer rs.Close()

			pingCtx, cancel := config.WithTimeout(2 * time.Second)
			err := rs.Ping(pingCtx)
			cancel()
			if err != nil {
				log.Warn("redis unreachable, list cache stays in process", "addr", cfg.Redis.Addr, "err", err)
			} else {
				store = rs
			}
		}

		svcGateway = cached.NewRegistrationsRepo(gw, store, cfg.ListCacheTTL, log)
	}

	svc := service.NewRegistrationService(svcGateway, log, service.WithRecorder(prom))

	router := httpx.NewRouter(cfg, httpx.Deps{
		Log:      log,
		Service:  svc,
		Ping:     gw.Ping,
		Prom:     prom,
		Gatherer: reg,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "storage", cfg.StorageDriver)
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
		}

		if err := shutdownTracer(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
