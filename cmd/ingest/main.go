// Command ingest runs the resume pipeline over local PDF files for one user.
//
//	ingest -user 3 resumes/*.pdf
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"resume_backend/internal/app/di"
	"resume_backend/internal/platform/db"
	"resume_backend/internal/platform/logger"
	platformredis "resume_backend/internal/platform/redis"
)

func main() {
	userID := flag.Uint("user", 0, "ID of the user owning the ingested resumes")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall deadline")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}
	debug, _ := strconv.ParseBool(os.Getenv("DEBUG"))
	logger.Init(debug)

	if *userID == 0 || flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: ingest -user ID file.pdf [file.pdf ...]")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if failed, err := run(ctx, uint(*userID), flag.Args()); err != nil {
		slog.Error("ingest failed", "error", err)
		os.Exit(1)
	} else if failed > 0 {
		os.Exit(1)
	}
}

// run ingests every file and returns the number of files that failed.
func run(ctx context.Context, userID uint, paths []string) (int, error) {
	gdb, err := db.OpenDB(db.LoadConfigFromEnv(), di.Models()...)
	if err != nil {
		return 0, err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Writes go through the cache decorator so the server does not serve stale lists.
	redisCfg, err := platformredis.LoadConfig()
	if err != nil {
		return 0, err
	}
	var rdb *redisv9.Client
	if redisCfg.Enabled() {
		if rdb, err = platformredis.NewRedisClient(ctx, redisCfg); err != nil {
			slog.Warn("Redis unavailable. Cached resume lists may be stale until they expire.", "error", err, "ttl", redisCfg.CacheTTL)
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	uc, closeFn, err := di.NewResumeUsecase(ctx, di.ResumeDeps{DB: gdb, Redis: rdb, CacheTTL: redisCfg.CacheTTL})
	if err != nil {
		return 0, err
	}
	defer closeFn()

	failed := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Error("failed to read file", "path", path, "error", err)
			failed++
			continue
		}
		record, err := uc.Ingest(ctx, userID, filepath.Base(path), data)
		if err != nil {
			slog.Error("failed to ingest resume", "path", path, "error", err)
			failed++
			continue
		}
		slog.Info("resume ingested", "path", path, "resume_id", record.ID, "entities", record.Entities.Count())
	}
	return failed, nil
}
