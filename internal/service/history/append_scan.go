package history

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

// AppendScan assigns an id and a server-side timestamp to rec and stores it.
func (s *Service) AppendScan(ctx context.Context, rec domain.ScanRecord) (*domain.ScanRecord, error) {
	if rec.UserID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "required")
	}
	if !rec.Status.IsValid() {
		return nil, domain.NewValidationError("status", "must be Verified, Suspect or Unknown")
	}

	rec.ID = uuid.New()
	rec.CreatedAt = s.now().UTC()

	var created *domain.ScanRecord
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.scans.Create(ctx, rec)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("append scan: %w", err)
	}

	s.log.InfoContext(ctx, "scan recorded",
		slog.String("user_id", created.UserID.String()),
		slog.String("scan_id", created.ID.String()),
		slog.String("status", created.Status.String()),
	)

	return created, nil
}

// RecordVerification stores the outcome of a verification for the user.
func (s *Service) RecordVerification(ctx context.Context, userID uuid.UUID, q domain.Query, v domain.Verdict) (*domain.ScanRecord, error) {
	return s.AppendScan(ctx, domain.NewScanRecord(userID, q, v))
}
