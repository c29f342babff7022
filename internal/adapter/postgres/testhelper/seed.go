package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser inserts a user with a unique email and a placeholder password hash.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	user := domain.User{
		ID:           uuid.New(),
		Fullname:     "Test User " + suffix,
		Email:        "testuser-" + suffix + "@example.com",
		PasswordHash: "$2a$04$placeholderplaceholderplaceholderplaceholderplacehold",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, fullname, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Fullname, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// SeedNDCProduct inserts one row of the internal product dataset.
func SeedNDCProduct(t *testing.T, pool *pgxpool.Pool, p domain.NDCProduct) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO ndc_products (item_code, item_code_digits, ndc11, proprietary_name, dosage_form,
		     marketing_category, application_number, product_type, marketing_start_date, marketing_end_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (item_code) DO NOTHING`,
		p.ItemCode, domain.NormalizeCode(p.ItemCode), p.NDC11, p.ProprietaryName, p.DosageForm,
		p.MarketingCategory, p.ApplicationNumber, p.ProductType, p.MarketingStartDate, p.MarketingEndDate,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedNDCProduct: %v", err)
	}
}
