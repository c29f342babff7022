package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestStatusFromVerdict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    Verdict
		want ScanStatus
	}{
		{"verified", Verdict{IsSuspect: false}, ScanStatusVerified},
		{"suspect", Verdict{IsSuspect: true}, ScanStatusSuspect},
		{"fail-safe", Verdict{IsSuspect: true, Fallback: true}, ScanStatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StatusFromVerdict(tt.v); got != tt.want {
				t.Errorf("StatusFromVerdict() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewScanRecord(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	q := Query{NDC: "0003-4215-91", DrugName: "Lipitor"}
	v := Verdict{
		IsSuspect:    true,
		Reason:       "Manufacturer mismatch",
		DrugName:     "Lipitor",
		Manufacturer: "Pfizer",
		SourceModel:  "anthropic/claude",
	}

	rec := NewScanRecord(userID, q, v)

	if rec.UserID != userID {
		t.Errorf("UserID = %s, want %s", rec.UserID, userID)
	}
	if rec.Query != "0003-4215-91" {
		t.Errorf("Query = %q, want the lookup code", rec.Query)
	}
	if rec.Status != ScanStatusSuspect || !rec.IsFlagged {
		t.Errorf("Status = %s, IsFlagged = %v", rec.Status, rec.IsFlagged)
	}
	if rec.Reason != v.Reason || rec.SourceModel != v.SourceModel {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.ID != uuid.Nil {
		t.Error("ID must be left for the history service")
	}
}

func TestScanStatus_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range []ScanStatus{ScanStatusVerified, ScanStatusSuspect, ScanStatusUnknown} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if ScanStatus("Pending").IsValid() {
		t.Error("Pending should be invalid")
	}
}

func TestScanFilter_Normalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         ScanFilter
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", in: ScanFilter{}, wantLimit: DefaultScanLimit},
		{name: "clamped", in: ScanFilter{Limit: 1000, Offset: -3}, wantLimit: MaxScanLimit},
		{name: "kept", in: ScanFilter{Limit: 10, Offset: 20}, wantLimit: 10, wantOffset: 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := tt.in
			f.Normalize()
			if f.Limit != tt.wantLimit || f.Offset != tt.wantOffset {
				t.Errorf("got limit=%d offset=%d, want %d/%d", f.Limit, f.Offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}
