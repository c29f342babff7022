// Package ndcdataset exposes the imported NDC product table as a lookup source.
package ndcdataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

type productFinder interface {
	FindByCode(ctx context.Context, code string) (*domain.NDCProduct, error)
}

// Provider answers lookups from the internal dataset.
type Provider struct {
	products productFinder
	log      *slog.Logger
	now      func() time.Time
}

// NewProvider creates a Provider over the given product store.
func NewProvider(products productFinder, logger *slog.Logger) *Provider {
	return &Provider{
		products: products,
		log:      logger.With("adapter", "ndcdataset"),
		now:      time.Now,
	}
}

// Name returns the source name.
func (p *Provider) Name() string { return domain.SourceNDCDataset }

// Lookup finds the product matching code in the internal dataset.
func (p *Provider) Lookup(ctx context.Context, code string) domain.LookupResult {
	code = strings.TrimSpace(code)

	product, err := p.products.FindByCode(ctx, code)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFoundResult(domain.SourceNDCDataset,
			fmt.Sprintf("No match found for barcode %q in the internal CUSTECH dataset.", code))
	}
	if err != nil {
		p.log.ErrorContext(ctx, "ndc dataset lookup failed", slog.String("code", code), slog.String("error", err.Error()))
		return domain.UnavailableResult(domain.SourceNDCDataset, "The internal dataset could not be queried.")
	}

	now := p.now()
	return domain.LookupResult{
		Source:       domain.SourceNDCDataset,
		Found:        true,
		BrandName:    product.ProprietaryName,
		Details:      product.Describe(now),
		Discontinued: product.IsDiscontinued(now),
	}
}
