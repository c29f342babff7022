// Package openfda looks drug codes up in the public OpenFDA API.
package openfda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/drugverify-backend/internal/config"
	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

const (
	defaultBaseURL = "https://api.fda.gov"
	maxBodyBytes   = 1 << 20
	retryDelay     = 500 * time.Millisecond
)

var errNoMatch = errors.New("no match")

// Provider fetches product and recall data from OpenFDA.
type Provider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
	now        func() time.Time
}

// NewProvider creates a Provider from lookup configuration.
func NewProvider(cfg config.LookupConfig, logger *slog.Logger) *Provider {
	baseURL := cfg.OpenFDABaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.OpenFDAAPIKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "openfda"),
		now:        time.Now,
	}
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, logger *slog.Logger) *Provider {
	return NewProvider(config.LookupConfig{OpenFDABaseURL: baseURL}, logger)
}

// Name returns the source name of product lookups.
func (p *Provider) Name() string { return domain.SourceOpenFDA }

// Lookup searches the drug/ndc endpoint by product or package NDC.
// It never fails: every problem is reported in the returned result.
func (p *Provider) Lookup(ctx context.Context, code string) domain.LookupResult {
	code = strings.TrimSpace(code)
	search := fmt.Sprintf(`product_ndc:"%s" packaging.package_ndc:"%s"`, code, code)

	raw, err := p.search(ctx, "/drug/ndc.json", search)
	switch {
	case errors.Is(err, errNoMatch):
		return domain.NotFoundResult(domain.SourceOpenFDA, fmt.Sprintf(
			"No drug found for barcode %q in the OpenFDA database. "+
				"This could be a non-US drug, a non-prescription item, or a counterfeit product.", code))
	case err != nil:
		return domain.UnavailableResult(domain.SourceOpenFDA, describeFailure(err))
	}

	var product apiProduct
	if err := json.Unmarshal(raw, &product); err != nil {
		p.log.WarnContext(ctx, "openfda malformed product", slog.String("code", code), slog.String("error", err.Error()))
		return domain.UnavailableResult(domain.SourceOpenFDA, "OpenFDA returned a malformed product record.")
	}

	return p.productResult(product, raw)
}

// Recalls returns the recall (drug/enforcement) lookup sharing this provider's client.
func (p *Provider) Recalls() *RecallSource {
	return &RecallSource{p: p}
}

// RecallSource looks a code up in the OpenFDA enforcement reports.
type RecallSource struct {
	p *Provider
}

// Name returns the source name of recall lookups.
func (r *RecallSource) Name() string { return domain.SourceOpenFDARecall }

// Lookup reports whether an enforcement (recall) record exists for the code.
func (r *RecallSource) Lookup(ctx context.Context, code string) domain.LookupResult {
	code = strings.TrimSpace(code)
	search := fmt.Sprintf(`openfda.product_ndc:"%s" openfda.package_ndc:"%s"`, code, code)

	raw, err := r.p.search(ctx, "/drug/enforcement.json", search)
	switch {
	case errors.Is(err, errNoMatch):
		return domain.NotFoundResult(domain.SourceOpenFDARecall,
			fmt.Sprintf("No recall or enforcement report found for %q in OpenFDA.", code))
	case err != nil:
		return domain.UnavailableResult(domain.SourceOpenFDARecall, describeFailure(err))
	}

	var recall apiRecall
	if err := json.Unmarshal(raw, &recall); err != nil {
		return domain.UnavailableResult(domain.SourceOpenFDARecall, "OpenFDA returned a malformed recall record.")
	}

	details := fmt.Sprintf("RECALL on record (%s, status %s, initiated %s by %s): %s",
		recall.Classification, recall.Status, domain.FormatNDCDate(recall.RecallInitiationDate),
		recall.RecallingFirm, recall.ReasonForRecall)

	return domain.LookupResult{
		Source:       domain.SourceOpenFDARecall,
		Found:        true,
		Recalled:     true,
		Manufacturer: recall.RecallingFirm,
		Details:      details,
		Raw:          raw,
	}
}

func (p *Provider) productResult(product apiProduct, raw json.RawMessage) domain.LookupResult {
	manufacturer := product.LabelerName
	if len(product.OpenFDA.ManufacturerName) > 0 {
		manufacturer = product.OpenFDA.ManufacturerName[0]
	}

	discontinued := false
	if product.MarketingEndDate != "" {
		discontinued = domain.NDCProduct{MarketingEndDate: product.MarketingEndDate}.IsDiscontinued(p.now())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "OpenFDA match: %s (%s) by %s, product NDC %s",
		product.BrandName, product.GenericName, manufacturer, product.ProductNDC)
	if product.DosageForm != "" {
		fmt.Fprintf(&b, "; %s", product.DosageForm)
	}
	if len(product.Route) > 0 {
		fmt.Fprintf(&b, ", route %s", strings.Join(product.Route, "/"))
	}
	if product.MarketingCategory != "" {
		fmt.Fprintf(&b, "; %s %s", product.MarketingCategory, product.ApplicationNumber)
	}
	if product.MarketingStartDate != "" {
		fmt.Fprintf(&b, "; marketed since %s", domain.FormatNDCDate(product.MarketingStartDate))
	}
	if discontinued {
		fmt.Fprintf(&b, ". DISCONTINUED: marketing ended on %s, a high-risk indicator.",
			domain.FormatNDCDate(product.MarketingEndDate))
	}

	return domain.LookupResult{
		Source:       domain.SourceOpenFDA,
		Found:        true,
		BrandName:    product.BrandName,
		GenericName:  product.GenericName,
		Manufacturer: manufacturer,
		Details:      b.String(),
		Discontinued: discontinued,
		Raw:          raw,
	}
}

// search runs one query against endpoint and returns the first result.
// HTTP 404 and an empty result list are both errNoMatch.
func (p *Provider) search(ctx context.Context, endpoint, search string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("search", search)
	q.Set("limit", "1")
	if p.apiKey != "" {
		q.Set("api_key", p.apiKey)
	}
	reqURL := p.baseURL + endpoint + "?" + q.Encode()

	p.log.DebugContext(ctx, "openfda request", slog.String("endpoint", endpoint), slog.String("search", search))

	resp, err := p.doWithRetry(ctx, reqURL, endpoint)
	if err != nil {
		p.log.WarnContext(ctx, "openfda request failed", slog.String("endpoint", endpoint), slog.String("error", err.Error()))
		return nil, &requestError{err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNoMatch
	}
	if resp.StatusCode != http.StatusOK {
		p.log.WarnContext(ctx, "openfda unexpected status", slog.String("endpoint", endpoint), slog.Int("status", resp.StatusCode))
		return nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &requestError{err: fmt.Errorf("read body: %w", err)}
	}

	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("openfda: decode json: %w", err)
	}
	if len(envelope.Results) == 0 {
		return nil, errNoMatch
	}

	return envelope.Results[0], nil
}

// doWithRetry executes a GET with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, reqURL, endpoint string) (*http.Response, error) {
	do := func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		return p.httpClient.Do(req)
	}

	resp, err := do()

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "openfda retry", slog.String("endpoint", endpoint), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(retryDelay):
	}

	return do()
}

type statusError struct{ code int }

func (e *statusError) Error() string { return fmt.Sprintf("unexpected status %d", e.code) }

type requestError struct{ err error }

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

// describeFailure turns a search error into the text shown as evidence.
func describeFailure(err error) string {
	var se *statusError
	if errors.As(err, &se) {
		return fmt.Sprintf("Failed to fetch data from OpenFDA. Status: %d", se.code)
	}
	var re *requestError
	if errors.As(err, &re) {
		return "An error occurred while connecting to the OpenFDA service."
	}
	return "OpenFDA returned a response that could not be read."
}
