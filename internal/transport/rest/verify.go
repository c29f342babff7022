package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
	"github.com/heartmarshall/drugverify-backend/pkg/ctxutil"
)

type verifier interface {
	Verify(ctx context.Context, q domain.Query) domain.Verdict
}

type scanRecorder interface {
	RecordVerification(ctx context.Context, userID uuid.UUID, q domain.Query, v domain.Verdict) (*domain.ScanRecord, error)
}

// VerifyHandler serves POST /api/verify.
type VerifyHandler struct {
	verifier verifier
	history  scanRecorder
	log      *slog.Logger
}

// NewVerifyHandler creates a VerifyHandler.
func NewVerifyHandler(v verifier, history scanRecorder, logger *slog.Logger) *VerifyHandler {
	return &VerifyHandler{verifier: v, history: history, log: logger.With("handler", "verify")}
}

type verifyRequest struct {
	DrugName      string `json:"drugName"`
	NDC           string `json:"ndc"`
	GTIN          string `json:"gtin"`
	NAFDACNumber  string `json:"nafdacNumber"`
	FreeTextQuery string `json:"freeTextQuery"`
	Barcode       string `json:"barcode"`
}

func (r verifyRequest) query() domain.Query {
	return domain.Query{
		DrugName:     r.DrugName,
		NDC:          r.NDC,
		GTIN:         r.GTIN,
		NAFDACNumber: r.NAFDACNumber,
		FreeText:     r.FreeTextQuery,
		Barcode:      r.Barcode,
	}
}

type verdictResponse struct {
	IsSuspect    bool               `json:"isSuspect"`
	Reason       string             `json:"reason"`
	DrugName     string             `json:"drugName,omitempty"`
	Manufacturer string             `json:"manufacturer,omitempty"`
	ApprovalInfo string             `json:"approvalInfo,omitempty"`
	SourceModel  string             `json:"sourceModel,omitempty"`
	Fallback     bool               `json:"fallback"`
	Evidence     []evidenceResponse `json:"evidence"`
}

type evidenceResponse struct {
	Source       string          `json:"source"`
	Found        bool            `json:"found"`
	Unavailable  bool            `json:"unavailable"`
	BrandName    string          `json:"brandName,omitempty"`
	GenericName  string          `json:"genericName,omitempty"`
	Manufacturer string          `json:"manufacturer,omitempty"`
	Discontinued bool            `json:"discontinued"`
	Recalled     bool            `json:"recalled"`
	Details      string          `json:"details"`
	Raw          json.RawMessage `json:"raw,omitempty"`
}

type scanResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Query        string    `json:"query"`
	DrugName     string    `json:"drugName"`
	Manufacturer string    `json:"manufacturer"`
	Status       string    `json:"status"`
	Reason       string    `json:"reason"`
	IsFlagged    bool      `json:"isFlagged"`
	SourceModel  string    `json:"sourceModel,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

type verifyResponse struct {
	Verdict verdictResponse `json:"verdict"`
	Scan    *scanResponse   `json:"scan,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Verify runs one verification and appends it to the caller's history.
// A history failure is a 500 that still carries the verdict.
func (h *VerifyHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req verifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	q := req.query()

	verdict := h.verifier.Verify(r.Context(), q)
	resp := verifyResponse{Verdict: toVerdictResponse(verdict)}

	scan, err := h.history.RecordVerification(r.Context(), userID, q, verdict)
	if err != nil {
		h.log.ErrorContext(r.Context(), "scan not saved",
			slog.String("user_id", userID.String()), slog.String("error", err.Error()))
		resp.Error = "The verification completed but could not be saved to your history."
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	s := toScanResponse(*scan)
	resp.Scan = &s
	writeJSON(w, http.StatusOK, resp)
}

func toVerdictResponse(v domain.Verdict) verdictResponse {
	resp := verdictResponse{
		IsSuspect:    v.IsSuspect,
		Reason:       v.Reason,
		DrugName:     v.DrugName,
		Manufacturer: v.Manufacturer,
		ApprovalInfo: v.ApprovalInfo,
		SourceModel:  v.SourceModel,
		Fallback:     v.Fallback,
		Evidence:     make([]evidenceResponse, 0, len(v.Evidence.Results)),
	}
	for _, res := range v.Evidence.Results {
		resp.Evidence = append(resp.Evidence, evidenceResponse{
			Source:       res.Source,
			Found:        res.Found,
			Unavailable:  res.Unavailable,
			BrandName:    res.BrandName,
			GenericName:  res.GenericName,
			Manufacturer: res.Manufacturer,
			Discontinued: res.Discontinued,
			Recalled:     res.Recalled,
			Details:      res.Details,
			Raw:          res.Raw,
		})
	}
	return resp
}

func toScanResponse(s domain.ScanRecord) scanResponse {
	return scanResponse{
		ID:           s.ID.String(),
		UserID:       s.UserID.String(),
		Query:        s.Query,
		DrugName:     s.DrugName,
		Manufacturer: s.Manufacturer,
		Status:       s.Status.String(),
		Reason:       s.Reason,
		IsFlagged:    s.IsFlagged,
		SourceModel:  s.SourceModel,
		Timestamp:    s.CreatedAt,
	}
}
