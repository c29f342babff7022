package verification

import (
	"strings"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

// AllowList holds products treated as genuine unless a recall is on record.
// Entries match a normalized lookup code or an exact drug name, case-insensitively.
type AllowList struct {
	codes map[string]struct{}
	names map[string]struct{}
}

// NewAllowList builds an AllowList from raw entries. Every entry is indexed
// both as a code and as a name.
func NewAllowList(entries []string) AllowList {
	a := AllowList{codes: map[string]struct{}{}, names: map[string]struct{}{}}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		a.codes[strings.ToLower(domain.NormalizeCode(e))] = struct{}{}
		a.names[strings.ToLower(e)] = struct{}{}
	}
	return a
}

// Len returns the number of distinct entries.
func (a AllowList) Len() int { return len(a.names) }

// Contains reports whether the code or any of the names is allow-listed.
func (a AllowList) Contains(code string, names ...string) bool {
	if code != "" {
		if _, ok := a.codes[strings.ToLower(domain.NormalizeCode(code))]; ok {
			return true
		}
	}
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if _, ok := a.names[n]; ok {
			return true
		}
	}
	return false
}

const allowListNote = "This product is on the approved product list and no recall was found."

// applyAllowList clears the suspect flag of an accepted verdict for an
// allow-listed product without a recall.
func applyAllowList(v domain.Verdict, q domain.Query, allow AllowList) domain.Verdict {
	if !v.IsSuspect || v.Evidence.Recalled() {
		return v
	}
	if !allow.Contains(q.LookupCode(), q.DrugName, v.DrugName) {
		return v
	}
	v.IsSuspect = false
	v.Reason = allowListNote + " " + v.Reason
	return v
}
