package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/melrosetutorclub/booking/internal/api"
	"github.com/melrosetutorclub/booking/internal/booking"
	"github.com/melrosetutorclub/booking/internal/captcha"
	"github.com/melrosetutorclub/booking/internal/config"
	"github.com/melrosetutorclub/booking/internal/db"
	"github.com/melrosetutorclub/booking/internal/logging"
	"github.com/melrosetutorclub/booking/internal/notify"
	redisclient "github.com/melrosetutorclub/booking/internal/redis"
	"github.com/melrosetutorclub/booking/internal/snapshot"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load error: " + err.Error())
	}

	log := logging.NewLogger(cfg.Env)
	defer func() { _ = log.Sync() }()

	log.Info("api-server starting up",
		zap.String("env", cfg.Env),
		zap.String("http_port", cfg.HTTPPort))

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatal("postgres connection error", zap.Error(err))
	}
	defer pgPool.Close()
	log.Info("connected to Postgres")

	// Apply schema migrations
	migCtx, cancelMig := context.WithTimeout(rootCtx, 30*time.Second)
	err = db.Migrate(migCtx, pgPool)
	cancelMig()
	if err != nil {
		log.Fatal("migration error", zap.Error(err))
	}
	log.Info("migrations applied")

	// Connect Redis
	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatal("redis connection error", zap.Error(err))
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn("error closing redis", zap.Error(err))
		}
	}()
	log.Info("connected to Redis")

	verifier := captcha.NewTurnstileVerifier(cfg.TurnstileSecret, cfg.TurnstileURL)
	mailer := notify.NewResendMailer(cfg.ResendAPIKey)
	dispatcher := notify.NewDispatcher(mailer, cfg.EmailFrom, cfg.NotifyQueueSize, log.Named("notify"))

	repo := booking.NewPgRepository(pgPool)
	locker := redisclient.NewRedisSlotLocker(rdb, cfg.LockTTL)
	svc := booking.NewService(repo, locker, verifier, snapshot.NewStore(), dispatcher, log.Named("booking"))

	router := api.NewRouter(api.RouterConfig{
		Service:  svc,
		Verifier: verifier,
		PgPool:   pgPool,
		Redis:    rdb,
		Logger:   log.Named("http"),
		Env:      cfg.Env,
		Version:  version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-rootCtx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}

	// Drain queued booking confirmations before exiting.
	dispatcher.Close()

	log.Info("api-server stopped")
}
