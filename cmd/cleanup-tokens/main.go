// Command cleanup-tokens deletes expired and revoked refresh tokens.
// It is intended to be invoked by an external cron job.
//
// Requires DATABASE_DSN environment variable to be set.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/drugverify-backend/internal/adapter/postgres"
	"github.com/heartmarshall/drugverify-backend/internal/adapter/postgres/token"
	"github.com/heartmarshall/drugverify-backend/internal/app"
	"github.com/heartmarshall/drugverify-backend/internal/config"
)

func main() {
	dbCfg, logCfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(*logCfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, *dbCfg)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	deleted, err := token.New(pool).DeleteExpired(ctx)
	if err != nil {
		logger.Error("cleanup tokens", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("token cleanup completed", slog.Int("deleted", deleted))
}
