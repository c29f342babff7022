package ndcimport

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

// Record is one entry of the dataset file.
type Record struct {
	ItemCode           string `json:"ItemCode"`
	NDC11              string `json:"NDC11"`
	ProprietaryName    string `json:"ProprietaryName"`
	DosageForm         string `json:"DosageForm"`
	MarketingCategory  string `json:"MarketingCategory"`
	ApplicationNumber  string `json:"ApplicationNumber"`
	ProductType        string `json:"ProductType"`
	MarketingStartDate string `json:"MarketingStartDate"`
	MarketingEndDate   string `json:"MarketingEndDate,omitempty"`
}

// Validate checks that a record can be stored.
func Validate(r Record) error {
	if strings.TrimSpace(r.ItemCode) == "" {
		return fmt.Errorf("item code is empty")
	}
	if !domain.ValidNDCDate(strings.TrimSpace(r.MarketingStartDate)) {
		return fmt.Errorf("item %q has invalid marketing start date %q", r.ItemCode, r.MarketingStartDate)
	}
	if !domain.ValidNDCDate(strings.TrimSpace(r.MarketingEndDate)) {
		return fmt.Errorf("item %q has invalid marketing end date %q", r.ItemCode, r.MarketingEndDate)
	}
	return nil
}

// Map converts a validated record to a product.
func Map(r Record) domain.NDCProduct {
	return domain.NDCProduct{
		ItemCode:           strings.TrimSpace(r.ItemCode),
		NDC11:              strings.TrimSpace(r.NDC11),
		ProprietaryName:    strings.TrimSpace(r.ProprietaryName),
		DosageForm:         strings.TrimSpace(r.DosageForm),
		MarketingCategory:  strings.TrimSpace(r.MarketingCategory),
		ApplicationNumber:  strings.TrimSpace(r.ApplicationNumber),
		ProductType:        strings.TrimSpace(r.ProductType),
		MarketingStartDate: strings.TrimSpace(r.MarketingStartDate),
		MarketingEndDate:   strings.TrimSpace(r.MarketingEndDate),
	}
}
