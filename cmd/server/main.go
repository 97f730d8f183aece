package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"resume_backend/internal/app/di"
	"resume_backend/internal/app/router"
	"resume_backend/internal/feature/resume/adapters/extractor"
	"resume_backend/internal/platform/db"
	platformhandler "resume_backend/internal/platform/http/handler"
	jwtmw "resume_backend/internal/platform/jwt"
	"resume_backend/internal/platform/logger"
	platformredis "resume_backend/internal/platform/redis"
	"resume_backend/internal/platform/validation"
)

const defaultPort = "8002"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}
	debug, _ := strconv.ParseBool(os.Getenv("DEBUG"))
	logger.Init(debug)

	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := validation.RegisterWithGin(); err != nil {
		return err
	}

	jwtCfg, err := jwtmw.LoadConfig()
	if err != nil {
		return err
	}

	// db
	gdb, err := db.OpenDB(db.LoadConfigFromEnv(), di.Models()...)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	ready := map[string]platformhandler.Pinger{"database": sqlDB}

	// Redis
	redisCfg, err := platformredis.LoadConfig()
	if err != nil {
		return err
	}
	var rdb *redisv9.Client
	if redisCfg.Enabled() {
		if rdb, err = platformredis.NewRedisClient(ctx, redisCfg); err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
			rdb = nil
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
			ready["redis"] = platformredis.Pinger{Client: rdb}
		}
	}

	// Features
	authH, err := di.NewAuthHandler(gdb, jwtCfg)
	if err != nil {
		return err
	}
	resume, err := di.NewResume(ctx, di.ResumeDeps{DB: gdb, Redis: rdb, CacheTTL: redisCfg.CacheTTL})
	if err != nil {
		return err
	}
	defer resume.Close()
	if resume.Store != nil {
		ready["object_store"] = resume.Store
	}
	if !extractor.OCREnabled() {
		ready["pdf_tools"] = extractor.PDFTools{}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router.NewRouter(authH, resume.Handler, jwtCfg.Secret, ready),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
