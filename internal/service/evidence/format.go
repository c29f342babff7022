package evidence

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

// MissingCodeText is shown to a model when the query carried no code to look up.
const MissingCodeText = "No barcode (NDC or GTIN) was provided for database lookup. " +
	"Verification is not possible without a unique identifier."

var sourceTitles = map[string]string{
	domain.SourceNDCDataset:    "Internal NDC dataset",
	domain.SourceOpenFDA:       "OpenFDA product database",
	domain.SourceOpenFDARecall: "OpenFDA recall reports",
	domain.SourceDailyMed:      "DailyMed labels",
}

// Format renders ev as the evidence block of a prompt.
func Format(ev domain.Evidence) string {
	if ev.Code == "" {
		return MissingCodeText
	}
	if len(ev.Results) == 0 {
		return fmt.Sprintf("No lookup sources were consulted for code %q.", ev.Code)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Lookup results for code %q:\n", ev.Code)
	for _, r := range ev.Results {
		title := sourceTitles[r.Source]
		if title == "" {
			title = r.Source
		}
		fmt.Fprintf(&b, "- %s [%s]: %s\n", title, status(r), r.Details)
	}
	if !ev.AnyFound() {
		b.WriteString("No source recognised this code.\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func status(r domain.LookupResult) string {
	switch {
	case r.Unavailable:
		return "NOT AVAILABLE"
	case r.Recalled:
		return "RECALLED"
	case r.Found && r.Discontinued:
		return "FOUND, DISCONTINUED"
	case r.Found:
		return "FOUND"
	default:
		return "NO MATCH"
	}
}
