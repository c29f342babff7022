package history

import "github.com/heartmarshall/drugverify-backend/internal/domain"

// ListScansInput holds the parameters for listing the caller's scans.
type ListScansInput struct {
	Status      string
	FlaggedOnly bool
	Limit       int
	Offset      int
}

// Validate checks all fields and collects all errors.
func (i ListScansInput) Validate() error {
	var errs []domain.FieldError
	if i.Status != "" && !domain.ScanStatus(i.Status).IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be Verified, Suspect or Unknown"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > domain.MaxScanLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ScanPage is one page of scan history.
type ScanPage struct {
	Scans  []domain.ScanRecord
	Total  int
	Limit  int
	Offset int
}
