// Package ndcimport loads the internal NDC product dataset into PostgreSQL.
package ndcimport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

// ProductRepo stores products.
type ProductRepo interface {
	BulkUpsert(ctx context.Context, products []domain.NDCProduct) (int, error)
}

// TxManager runs fn in one transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Result holds import statistics.
type Result struct {
	Records  int
	Upserted int
	Invalid  int
}

// Run imports the dataset file named by cfg.DatasetPath.
func Run(ctx context.Context, cfg *Config, repo ProductRepo, tx TxManager, log *slog.Logger) (Result, error) {
	f, err := os.Open(cfg.DatasetPath)
	if err != nil {
		return Result{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return Import(ctx, f, cfg, repo, tx, log)
}

// Import reads a JSON array of records from r, skips invalid ones and
// upserts the rest in chunks. Either every chunk is stored or none is.
func Import(ctx context.Context, r io.Reader, cfg *Config, repo ProductRepo, tx TxManager, log *slog.Logger) (Result, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return Result{}, fmt.Errorf("decode dataset: %w", err)
	}

	result := Result{Records: len(records)}
	products := make([]domain.NDCProduct, 0, len(records))
	for i, rec := range records {
		if err := Validate(rec); err != nil {
			log.Warn("invalid record", slog.Int("index", i), slog.String("error", err.Error()))
			result.Invalid++
			continue
		}
		products = append(products, Map(rec))
	}

	if cfg.DryRun || len(products) == 0 {
		log.Info("ndc-import complete",
			slog.Int("records", result.Records),
			slog.Int("invalid", result.Invalid),
			slog.Bool("dry_run", cfg.DryRun),
		)
		return result, nil
	}

	chunk := cfg.ChunkSize
	if chunk <= 0 {
		chunk = len(products)
	}

	err := tx.RunInTx(ctx, func(ctx context.Context) error {
		for start := 0; start < len(products); start += chunk {
			end := min(start+chunk, len(products))
			n, err := repo.BulkUpsert(ctx, products[start:end])
			if err != nil {
				return fmt.Errorf("upsert records %d-%d: %w", start, end-1, err)
			}
			result.Upserted += n
		}
		return nil
	})
	if err != nil {
		return Result{Records: result.Records, Invalid: result.Invalid}, err
	}

	log.Info("ndc-import complete",
		slog.Int("records", result.Records),
		slog.Int("upserted", result.Upserted),
		slog.Int("invalid", result.Invalid),
	)
	return result, nil
}
