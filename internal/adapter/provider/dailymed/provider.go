// Package dailymed looks drug codes up in the NLM DailyMed SPL index.
package dailymed

import (
	"context"
	"encoding/json"
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
	defaultBaseURL = "https://dailymed.nlm.nih.gov/dailymed/services/v2"
	maxBodyBytes   = 1 << 20
)

type splResponse struct {
	Data     []splEntry  `json:"data"`
	Metadata splMetadata `json:"metadata"`
}

type splEntry struct {
	SetID          string           `json:"setid"`
	Title          string           `json:"title"`
	SPLVersion     int              `json:"spl_version"`
	PublishedDate  string           `json:"published_date"`
	Author         string           `json:"author"`
	ProductElement []productElement `json:"spl_product_data_elements"`
}

type productElement struct {
	BrandName string `json:"brand_name"`
}

type splMetadata struct {
	TotalElements int `json:"total_elements"`
}

// Provider queries the DailyMed structured product label index.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider from lookup configuration.
func NewProvider(cfg config.LookupConfig, logger *slog.Logger) *Provider {
	baseURL := cfg.DailyMedBaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "dailymed"),
	}
}

// Client exposes the underlying HTTP client so tests can swap its transport.
func (p *Provider) Client() *http.Client { return p.httpClient }

// Name returns the source name.
func (p *Provider) Name() string { return domain.SourceDailyMed }

// Lookup searches SPLs by NDC. Failures are reported as unavailable results.
func (p *Provider) Lookup(ctx context.Context, code string) domain.LookupResult {
	code = strings.TrimSpace(code)

	q := url.Values{}
	q.Set("ndc", code)
	q.Set("limit", "1")
	q.Set("pagesize", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/spls.json?"+q.Encode(), nil)
	if err != nil {
		return domain.UnavailableResult(domain.SourceDailyMed, "An error occurred while connecting to the DailyMed service.")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.WarnContext(ctx, "dailymed request failed", slog.String("code", code), slog.String("error", err.Error()))
		return domain.UnavailableResult(domain.SourceDailyMed, "An error occurred while connecting to the DailyMed service.")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return notFound(code)
	}
	if resp.StatusCode != http.StatusOK {
		p.log.WarnContext(ctx, "dailymed unexpected status", slog.Int("status", resp.StatusCode))
		return domain.UnavailableResult(domain.SourceDailyMed,
			fmt.Sprintf("Failed to fetch data from DailyMed. Status: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.UnavailableResult(domain.SourceDailyMed, "An error occurred while connecting to the DailyMed service.")
	}

	var parsed splResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		p.log.WarnContext(ctx, "dailymed malformed response", slog.String("error", err.Error()))
		return domain.UnavailableResult(domain.SourceDailyMed, "DailyMed returned a response that could not be read.")
	}
	if len(parsed.Data) == 0 {
		return notFound(code)
	}

	entry := parsed.Data[0]
	name, manufacturer := entry.names()
	raw, _ := json.Marshal(entry)

	label := entry.Title
	if label == "" {
		label = name
	}
	details := fmt.Sprintf("DailyMed label found: %s (set id %s, version %d, published %s)",
		label, entry.SetID, entry.SPLVersion, entry.PublishedDate)

	return domain.LookupResult{
		Source:       domain.SourceDailyMed,
		Found:        true,
		BrandName:    name,
		Manufacturer: manufacturer,
		Details:      details,
		Raw:          raw,
	}
}

func notFound(code string) domain.LookupResult {
	return domain.NotFoundResult(domain.SourceDailyMed,
		fmt.Sprintf("No structured product label found for %q in DailyMed.", code))
}

// names returns the product and labeler names. The product data element and
// author win; the bracketed title form fills whatever they leave empty.
func (e splEntry) names() (name, manufacturer string) {
	name, manufacturer = splitTitle(e.Title)
	if len(e.ProductElement) > 0 {
		if brand := strings.TrimSpace(e.ProductElement[0].BrandName); brand != "" {
			name = brand
		}
	}
	if author := strings.TrimSpace(e.Author); author != "" {
		manufacturer = author
	}
	return name, manufacturer
}

// splitTitle separates a label title such as
// "LIPITOR (ATORVASTATIN) TABLET [PFIZER INC]" into product and labeler.
func splitTitle(title string) (name, manufacturer string) {
	title = strings.TrimSpace(title)
	open := strings.LastIndex(title, "[")
	if open < 0 || !strings.HasSuffix(title, "]") {
		return title, ""
	}
	return strings.TrimSpace(title[:open]), strings.TrimSpace(title[open+1 : len(title)-1])
}
