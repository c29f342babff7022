package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScanStatus is the display status of a scan record.
type ScanStatus string

const (
	ScanStatusVerified ScanStatus = "Verified"
	ScanStatusSuspect  ScanStatus = "Suspect"
	ScanStatusUnknown  ScanStatus = "Unknown"
)

// String returns the string representation of the status.
func (s ScanStatus) String() string { return string(s) }

// IsValid reports whether s is one of the known statuses.
func (s ScanStatus) IsValid() bool {
	switch s {
	case ScanStatusVerified, ScanStatusSuspect, ScanStatusUnknown:
		return true
	}
	return false
}

// ScanRecord is one entry of a user's verification history. Records are append-only.
type ScanRecord struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Query        string
	DrugName     string
	Manufacturer string
	Status       ScanStatus
	Reason       string
	IsFlagged    bool
	SourceModel  string
	CreatedAt    time.Time
}

// StatusFromVerdict maps a verdict to a scan status. A fail-safe verdict is
// Unknown, not Suspect, since nothing was actually assessed.
func StatusFromVerdict(v Verdict) ScanStatus {
	switch {
	case v.Fallback:
		return ScanStatusUnknown
	case v.IsSuspect:
		return ScanStatusSuspect
	default:
		return ScanStatusVerified
	}
}

// NewScanRecord builds the history entry for a finished verification.
// ID and CreatedAt are assigned by the history service.
func NewScanRecord(userID uuid.UUID, q Query, v Verdict) ScanRecord {
	status := StatusFromVerdict(v)
	return ScanRecord{
		UserID:       userID,
		Query:        q.Label(),
		DrugName:     v.DrugName,
		Manufacturer: v.Manufacturer,
		Status:       status,
		Reason:       v.Reason,
		IsFlagged:    status != ScanStatusVerified,
		SourceModel:  v.SourceModel,
	}
}

// ScanFilter selects and paginates scan records. Results are always ordered
// newest first.
type ScanFilter struct {
	// UserID restricts the listing to one user. nil lists every user.
	UserID *uuid.UUID

	// Status keeps only records with the given status.
	Status *ScanStatus

	// FlaggedOnly keeps only records with is_flagged = true.
	FlaggedOnly bool

	// Limit is the maximum number of records to return. Default: 50, max: 200.
	Limit int

	// Offset is the number of records to skip.
	Offset int
}

// Scan listing page bounds.
const (
	DefaultScanLimit = 50
	MaxScanLimit     = 200
)

// Normalize applies defaults and clamps values.
func (f *ScanFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultScanLimit
	}
	if f.Limit > MaxScanLimit {
		f.Limit = MaxScanLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
