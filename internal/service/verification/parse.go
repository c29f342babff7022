package verification

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	errNoJSON         = errors.New("no JSON object in response")
	errMissingVerdict = errors.New("response lacks isSuspect")
	errMissingReason  = errors.New("response lacks reason")
)

// modelVerdict is the JSON shape a model is asked to produce.
type modelVerdict struct {
	IsSuspect    *bool  `json:"isSuspect"`
	Reason       string `json:"reason"`
	DrugName     string `json:"drugName"`
	Manufacturer string `json:"manufacturer"`
	ApprovalInfo string `json:"approvalInfo"`
}

// parseVerdict extracts and validates the verdict object from a model reply.
// Markdown code fences and surrounding prose are tolerated.
func parseVerdict(text string) (modelVerdict, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return modelVerdict{}, err
	}

	var v modelVerdict
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return modelVerdict{}, fmt.Errorf("decode verdict: %w", err)
	}
	if v.IsSuspect == nil {
		return modelVerdict{}, errMissingVerdict
	}

	v.Reason = strings.TrimSpace(v.Reason)
	v.DrugName = strings.TrimSpace(v.DrugName)
	v.Manufacturer = strings.TrimSpace(v.Manufacturer)
	v.ApprovalInfo = strings.TrimSpace(v.ApprovalInfo)

	if v.Reason == "" {
		return modelVerdict{}, errMissingReason
	}
	return v, nil
}

// extractJSON finds the outermost JSON object in s.
func extractJSON(s string) (string, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", errNoJSON
	}
	return s[start : end+1], nil
}
