package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
	"github.com/heartmarshall/drugverify-backend/internal/service/history"
)

type scanLister interface {
	ListMyScans(ctx context.Context, input history.ListScansInput) (*history.ScanPage, error)
}

// ScansHandler serves GET /api/scans.
type ScansHandler struct {
	svc scanLister
	log *slog.Logger
}

// NewScansHandler creates a ScansHandler.
func NewScansHandler(svc scanLister, logger *slog.Logger) *ScansHandler {
	return &ScansHandler{svc: svc, log: logger.With("handler", "scans")}
}

type scanPageResponse struct {
	Scans  []scanResponse `json:"scans"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// List returns the caller's scans, newest first.
// Query parameters: status, flagged, limit, offset.
func (h *ScansHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := history.ListScansInput{Status: q.Get("status")}
	var fields []domain.FieldError
	var err error
	if input.Limit, err = intParam(q.Get("limit")); err != nil {
		fields = append(fields, domain.FieldError{Field: "limit", Message: "must be an integer"})
	}
	if input.Offset, err = intParam(q.Get("offset")); err != nil {
		fields = append(fields, domain.FieldError{Field: "offset", Message: "must be an integer"})
	}
	if v := q.Get("flagged"); v != "" {
		if input.FlaggedOnly, err = strconv.ParseBool(v); err != nil {
			fields = append(fields, domain.FieldError{Field: "flagged", Message: "must be true or false"})
		}
	}
	if len(fields) > 0 {
		writeValidation(w, domain.NewValidationErrors(fields))
		return
	}

	page, err := h.svc.ListMyScans(r.Context(), input)
	if err != nil {
		if writeValidation(w, err) {
			return
		}
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		h.log.ErrorContext(r.Context(), "list scans failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := scanPageResponse{
		Scans:  make([]scanResponse, 0, len(page.Scans)),
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	for _, s := range page.Scans {
		resp.Scans = append(resp.Scans, toScanResponse(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
