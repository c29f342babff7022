package history

import (
	"context"
	"fmt"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
	"github.com/heartmarshall/drugverify-backend/pkg/ctxutil"
)

// ListScans returns records matching f, newest first. A nil f.UserID lists
// every user's records.
func (s *Service) ListScans(ctx context.Context, f domain.ScanFilter) (*ScanPage, error) {
	f.Normalize()

	scans, total, err := s.scans.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}

	return &ScanPage{Scans: scans, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

// ListMyScans returns the calling user's records.
func (s *Service) ListMyScans(ctx context.Context, input ListScansInput) (*ScanPage, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	f := domain.ScanFilter{
		UserID:      &userID,
		FlaggedOnly: input.FlaggedOnly,
		Limit:       input.Limit,
		Offset:      input.Offset,
	}
	if input.Status != "" {
		status := domain.ScanStatus(input.Status)
		f.Status = &status
	}

	return s.ListScans(ctx, f)
}
