// Package history keeps the per-user, append-only verification history.
package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

type scanRepo interface {
	Create(ctx context.Context, rec domain.ScanRecord) (*domain.ScanRecord, error)
	List(ctx context.Context, f domain.ScanFilter) ([]domain.ScanRecord, int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements scan history operations.
type Service struct {
	log   *slog.Logger
	scans scanRepo
	tx    txManager
	now   func() time.Time
}

// NewService creates a new history service instance.
func NewService(logger *slog.Logger, scans scanRepo, tx txManager) *Service {
	return &Service{
		log:   logger.With("service", "history"),
		scans: scans,
		tx:    tx,
		now:   time.Now,
	}
}
