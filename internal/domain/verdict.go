package domain

import (
	"encoding/json"
	"strings"
)

// NotAvailable fills identifying verdict fields when nothing was identified.
const NotAvailable = "N/A"

// Lookup source names.
const (
	SourceNDCDataset    = "ndc-dataset"
	SourceOpenFDA       = "openfda"
	SourceOpenFDARecall = "openfda-recall"
	SourceDailyMed      = "dailymed"
)

// LookupResult is what one external source reported about a code.
// It is evidence for a model, never an authoritative answer.
type LookupResult struct {
	Source       string
	Found        bool
	BrandName    string
	GenericName  string
	Manufacturer string
	Details      string
	Discontinued bool
	Recalled     bool
	// Unavailable is set when the source could not be consulted at all
	// (network failure, non-2xx, malformed payload).
	Unavailable bool
	Raw         json.RawMessage
}

// NotFoundResult builds the result of a source that answered but has no match.
func NotFoundResult(source, details string) LookupResult {
	return LookupResult{Source: source, Details: details}
}

// UnavailableResult builds the result a source returns when it could not answer.
func UnavailableResult(source, details string) LookupResult {
	return LookupResult{Source: source, Details: details, Unavailable: true}
}

// Evidence is the set of lookup results gathered for one query.
type Evidence struct {
	Code    string
	Results []LookupResult
}

// AnyFound reports whether at least one source recognised the code.
func (e Evidence) AnyFound() bool {
	for _, r := range e.Results {
		if r.Found && r.Source != SourceOpenFDARecall {
			return true
		}
	}
	return false
}

// Recalled reports whether any source reported a recall.
func (e Evidence) Recalled() bool {
	for _, r := range e.Results {
		if r.Recalled {
			return true
		}
	}
	return false
}

// Result returns the result of the named source, if it was consulted.
func (e Evidence) Result(source string) (LookupResult, bool) {
	for _, r := range e.Results {
		if r.Source == source {
			return r, true
		}
	}
	return LookupResult{}, false
}

// Verdict is the normalized outcome of one verification.
type Verdict struct {
	IsSuspect    bool
	Reason       string
	DrugName     string
	Manufacturer string
	ApprovalInfo string
	SourceModel  string
	// Fallback is set when no model produced a usable answer.
	Fallback bool
	Evidence Evidence
}

var unidentifiedNames = map[string]struct{}{
	"":               {},
	"not identified": {},
	"unidentified":   {},
	"unknown":        {},
	"n/a":            {},
	"none":           {},
}

// IsUnidentified reports whether a drug name returned by a model is a
// placeholder rather than an actual product.
func IsUnidentified(name string) bool {
	_, ok := unidentifiedNames[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
