package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-booking/internal/db"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/notify"
	"github.com/BruksfildServices01/barbershop-booking/internal/routes"
	"github.com/BruksfildServices01/barbershop-booking/internal/session"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validators.RegisterBindings(); err != nil {
		log.Fatal("failed to register validators", zap.Error(err))
	}

	// ======================================================
	// INFRA
	// ======================================================
	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	var (
		catalogCache catalog.Cache       = catalog.NoopCache{}
		revocations  session.Revocations = session.NewMemoryRevocations()
	)
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, using in-process fallbacks", zap.Error(err))
		} else {
			defer rdb.Close()
			catalogCache = cache.NewCatalogRedis(rdb, cfg.CatalogCacheTTL, log, m)
			revocations = cache.NewRevocationsRedis(rdb)
			log.Info("redis connected")
		}
	}

	var publisher notify.Publisher = notify.LogPublisher{Log: log}
	if cfg.AMQPURL != "" {
		amqpPub, err := notify.NewAMQPPublisher(cfg.AMQPURL)
		if err != nil {
			log.Warn("amqp unavailable, booking events will only be logged", zap.Error(err))
		} else {
			defer amqpPub.Close()
			publisher = amqpPub
			log.Info("amqp connected")
		}
	}

	var objects storage.ObjectStore = &storage.MemoryStore{BaseURL: "/uploads"}
	if cfg.S3Bucket != "" {
		objects = storage.NewS3Store(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	} else {
		log.Warn("S3_BUCKET not set, avatars are kept in memory")
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)
	notifier := notify.NewDispatcher(publisher, cfg.NotifyDelay, log)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// ======================================================
	// HTTP
	// ======================================================
	r, err := routes.NewEngine(cfg)
	if err != nil {
		log.Fatal("invalid TRUSTED_PROXIES", zap.Error(err))
	}
	routes.RegisterRoutes(r, routes.Deps{
		DB:           db,
		Config:       cfg,
		Log:          log,
		Metrics:      m,
		Gatherer:     reg,
		CatalogCache: catalogCache,
		Revocations:  revocations,
		Audit:        auditDispatcher,
		Notifier:     notifier,
		Objects:      objects,
		Limiter:      limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	// requisições encerradas: esvazia as filas antes de fechar conexões
	limiter.Close()
	notifier.Close()
	auditDispatcher.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
}
