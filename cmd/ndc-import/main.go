// Command ndc-import loads the internal NDC product dataset (a JSON array)
// into the ndc_products table. Existing item codes are replaced.
//
// Flags:
//
//	--import-config  path to ndc-import config YAML (optional; falls back to env)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/drugverify-backend/internal/adapter/postgres"
	"github.com/heartmarshall/drugverify-backend/internal/adapter/postgres/ndc"
	"github.com/heartmarshall/drugverify-backend/internal/app"
	"github.com/heartmarshall/drugverify-backend/internal/app/ndcimport"
	"github.com/heartmarshall/drugverify-backend/internal/config"
)

var _ ndcimport.ProductRepo = (*ndc.Repo)(nil)

func main() {
	importConfigPath := flag.String("import-config", "", "path to ndc-import config YAML")
	flag.Parse()

	dbCfg, logCfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(*logCfg)

	importCfg, err := ndcimport.LoadConfig(*importConfigPath)
	if err != nil {
		logger.Error("load import config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if dbCfg.MigrateOnStart {
		if err := postgres.Migrate(ctx, dbCfg.DSN, logger); err != nil {
			logger.Error("migrate", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	pool, err := postgres.NewPool(ctx, *dbCfg)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if importCfg.DryRun {
		logger.Info("dry-run mode: no DB writes")
	}

	products := ndc.New(pool)
	if _, err := ndcimport.Run(ctx, importCfg, products, postgres.NewTxManager(pool), logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	total, err := products.Count(ctx)
	if err != nil {
		logger.Warn("count products", slog.String("error", err.Error()))
		return
	}
	logger.Info("ndc_products rows", slog.Int("total", total))
}
