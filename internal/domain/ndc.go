package domain

import (
	"fmt"
	"strings"
	"time"
)

const ndcDateLayout = "20060102"

// NDCProduct is one record of the internal product dataset.
// Dates are kept in the compact YYYYMMDD form the dataset ships with.
type NDCProduct struct {
	ItemCode           string
	NDC11              string
	ProprietaryName    string
	DosageForm         string
	MarketingCategory  string
	ApplicationNumber  string
	ProductType        string
	MarketingStartDate string
	MarketingEndDate   string
}

// FormatNDCDate turns an 8-digit YYYYMMDD date into YYYY-MM-DD.
// Anything else is returned unchanged.
func FormatNDCDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) != 8 {
		return s
	}
	t, err := time.Parse(ndcDateLayout, s)
	if err != nil {
		return s
	}
	return t.Format(time.DateOnly)
}

// ValidNDCDate reports whether s is empty or a parseable YYYYMMDD date.
func ValidNDCDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(ndcDateLayout, s)
	return len(s) == 8 && err == nil
}

// IsDiscontinued reports whether the marketing end date lies before now.
func (p NDCProduct) IsDiscontinued(now time.Time) bool {
	if p.MarketingEndDate == "" {
		return false
	}
	end, err := time.Parse(ndcDateLayout, p.MarketingEndDate)
	if err != nil {
		return false
	}
	return end.Before(now)
}

// Describe renders the product as evidence text for a model prompt.
func (p NDCProduct) Describe(now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Match found in internal dataset: %s, App No: %s", p.ProprietaryName, p.ApplicationNumber)
	if p.DosageForm != "" {
		fmt.Fprintf(&b, "; dosage form: %s", p.DosageForm)
	}
	if p.MarketingCategory != "" {
		fmt.Fprintf(&b, "; marketing category: %s", p.MarketingCategory)
	}
	if p.ProductType != "" {
		fmt.Fprintf(&b, "; product type: %s", p.ProductType)
	}
	if p.MarketingStartDate != "" {
		fmt.Fprintf(&b, "; marketed since %s", FormatNDCDate(p.MarketingStartDate))
	}
	if p.IsDiscontinued(now) {
		fmt.Fprintf(&b, ". DISCONTINUED: marketing ended on %s. A discontinued product still in circulation is a high-risk indicator.",
			FormatNDCDate(p.MarketingEndDate))
	} else if p.MarketingEndDate != "" {
		fmt.Fprintf(&b, "; marketing ends %s", FormatNDCDate(p.MarketingEndDate))
	}
	return b.String()
}
