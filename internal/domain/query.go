package domain

import "strings"

// Query is what a user submits for verification. At least one field must be set.
type Query struct {
	DrugName     string
	NDC          string
	GTIN         string
	NAFDACNumber string
	FreeText     string
	Barcode      string
}

// Trimmed returns a copy of q with surrounding whitespace removed from every field.
func (q Query) Trimmed() Query {
	return Query{
		DrugName:     strings.TrimSpace(q.DrugName),
		NDC:          strings.TrimSpace(q.NDC),
		GTIN:         strings.TrimSpace(q.GTIN),
		NAFDACNumber: strings.TrimSpace(q.NAFDACNumber),
		FreeText:     strings.TrimSpace(q.FreeText),
		Barcode:      strings.TrimSpace(q.Barcode),
	}
}

// IsEmpty reports whether no field carries a value.
func (q Query) IsEmpty() bool {
	t := q.Trimmed()
	return t.DrugName == "" && t.NDC == "" && t.GTIN == "" &&
		t.NAFDACNumber == "" && t.FreeText == "" && t.Barcode == ""
}

// LookupCode is the identifier used against the lookup sources:
// the first non-empty of NDC, Barcode, GTIN and NAFDAC number.
func (q Query) LookupCode() string {
	t := q.Trimmed()
	for _, s := range []string{t.NDC, t.Barcode, t.GTIN, t.NAFDACNumber} {
		if s != "" {
			return s
		}
	}
	return ""
}

// Label is the short text stored with a scan record.
func (q Query) Label() string {
	if code := q.LookupCode(); code != "" {
		return code
	}
	t := q.Trimmed()
	if t.DrugName != "" {
		return t.DrugName
	}
	return t.FreeText
}

// NormalizeCode strips the separators that appear in printed NDC and GTIN codes.
func NormalizeCode(code string) string {
	var b strings.Builder
	b.Grow(len(code))
	for _, r := range code {
		switch r {
		case '-', ' ', '.', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
