// Package scan implements the append-only scan history repository using PostgreSQL.
package scan

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/drugverify-backend/internal/adapter/postgres"
	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

// Repo provides scan record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new scan repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const scanColumns = `id, user_id, query, drug_name, manufacturer, status, reason, is_flagged, source_model, created_at`

const createSQL = `
INSERT INTO scans (id, user_id, query, drug_name, manufacturer, status, reason, is_flagged, source_model, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + scanColumns

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Create appends a scan record. An unknown user yields domain.ErrNotFound
// (foreign key violation); an invalid status yields domain.ErrValidation.
func (r *Repo) Create(ctx context.Context, rec domain.ScanRecord) (*domain.ScanRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		rec.ID,
		rec.UserID,
		rec.Query,
		rec.DrugName,
		rec.Manufacturer,
		string(rec.Status),
		rec.Reason,
		rec.IsFlagged,
		rec.SourceModel,
		rec.CreatedAt.UTC(),
	)

	created, err := scanRecord(row)
	if err != nil {
		return nil, postgres.MapError(err, "scan", rec.ID)
	}

	return created, nil
}

// List returns the records matching f, newest first. Records sharing a
// timestamp are ordered by insertion sequence, latest first.
func (r *Repo) List(ctx context.Context, f domain.ScanFilter) ([]domain.ScanRecord, int, error) {
	f.Normalize()

	where := sq.And{}
	if f.UserID != nil {
		where = append(where, sq.Eq{"user_id": *f.UserID})
	}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": string(*f.Status)})
	}
	if f.FlaggedOnly {
		where = append(where, sq.Eq{"is_flagged": true})
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	countSQL, countArgs, err := psql.Select("count(*)").From("scans").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("scan.List: build count: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "scan", "list")
	}

	listSQL, listArgs, err := psql.Select(scanColumns).
		From("scans").
		Where(where).
		OrderBy("created_at DESC", "seq DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("scan.List: build select: %w", err)
	}

	rows, err := querier.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, postgres.MapError(err, "scan", "list")
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, 0, postgres.MapError(err, "scan", "list")
	}

	return records, total, nil
}

// ---------------------------------------------------------------------------
// Scan helpers
// ---------------------------------------------------------------------------

func scanRecord(row pgx.Row) (*domain.ScanRecord, error) {
	var (
		rec    domain.ScanRecord
		status string
	)
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Query, &rec.DrugName, &rec.Manufacturer,
		&status, &rec.Reason, &rec.IsFlagged, &rec.SourceModel, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Status = domain.ScanStatus(status)
	return &rec, nil
}

func scanRecords(rows pgx.Rows) ([]domain.ScanRecord, error) {
	records := make([]domain.ScanRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}
