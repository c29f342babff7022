// Package ndc implements the internal product dataset repository using PostgreSQL.
package ndc

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/drugverify-backend/internal/adapter/postgres"
	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

// minContainedDigits is the shortest item code allowed to match as a substring
// of a longer scanned code (an NDC embedded in a GTIN-14).
const minContainedDigits = 8

// Repo provides read and bulk-load access to ndc_products.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new NDC product repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const productColumns = `item_code, ndc11, proprietary_name, dosage_form, marketing_category,
	application_number, product_type, marketing_start_date, marketing_end_date`

// $1: normalized code, $2: code as scanned, $3: minimum digits for containment.
const findByCodeSQL = `
SELECT ` + productColumns + `
FROM ndc_products
WHERE item_code_digits = $1
   OR ndc11 = $1
   OR ndc11 = $2
   OR (length(item_code_digits) >= $3 AND strpos($1, item_code_digits) > 0)
ORDER BY (item_code_digits = $1 OR ndc11 = $1 OR ndc11 = $2) DESC,
         length(item_code_digits) DESC
LIMIT 1`

const upsertSQL = `
INSERT INTO ndc_products (item_code, item_code_digits, ndc11, proprietary_name, dosage_form,
    marketing_category, application_number, product_type, marketing_start_date, marketing_end_date, imported_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
ON CONFLICT (item_code) DO UPDATE SET
    item_code_digits     = EXCLUDED.item_code_digits,
    ndc11                = EXCLUDED.ndc11,
    proprietary_name     = EXCLUDED.proprietary_name,
    dosage_form          = EXCLUDED.dosage_form,
    marketing_category   = EXCLUDED.marketing_category,
    application_number   = EXCLUDED.application_number,
    product_type         = EXCLUDED.product_type,
    marketing_start_date = EXCLUDED.marketing_start_date,
    marketing_end_date   = EXCLUDED.marketing_end_date,
    imported_at          = now()`

const countSQL = `SELECT count(*) FROM ndc_products`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// FindByCode returns the product whose item code or NDC11 matches code once
// separators are stripped. Exact matches win over containment.
// Returns domain.ErrNotFound when nothing matches.
func (r *Repo) FindByCode(ctx context.Context, code string) (*domain.NDCProduct, error) {
	raw := strings.TrimSpace(code)
	normalized := domain.NormalizeCode(raw)
	if normalized == "" {
		return nil, fmt.Errorf("ndc_product %q: %w", code, domain.ErrNotFound)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanProduct(querier.QueryRow(ctx, findByCodeSQL, normalized, raw, minContainedDigits))
	if err != nil {
		return nil, postgres.MapError(err, "ndc_product", code)
	}

	return p, nil
}

// Count returns the number of loaded products.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, countSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count ndc_products: %w", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Batch write
// ---------------------------------------------------------------------------

// BulkUpsert inserts or replaces products by item code using pgx.Batch.
// Returns the number of affected rows.
func (r *Repo) BulkUpsert(ctx context.Context, products []domain.NDCProduct) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(upsertSQL,
			p.ItemCode, domain.NormalizeCode(p.ItemCode), p.NDC11, p.ProprietaryName, p.DosageForm,
			p.MarketingCategory, p.ApplicationNumber, p.ProductType, p.MarketingStartDate, p.MarketingEndDate,
		)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var affected int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return affected, fmt.Errorf("batch exec: %w", err)
		}
		affected += int(tag.RowsAffected())
	}

	return affected, nil
}

func scanProduct(row pgx.Row) (*domain.NDCProduct, error) {
	var p domain.NDCProduct
	err := row.Scan(
		&p.ItemCode, &p.NDC11, &p.ProprietaryName, &p.DosageForm, &p.MarketingCategory,
		&p.ApplicationNumber, &p.ProductType, &p.MarketingStartDate, &p.MarketingEndDate,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
