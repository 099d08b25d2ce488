package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/service"
)

type PayslipHandler struct {
	payslips service.PayslipService
}

func NewPayslipHandler(payslips service.PayslipService) *PayslipHandler {
	return &PayslipHandler{payslips: payslips}
}

func (h *PayslipHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	var artisanID int64
	if v := r.URL.Query().Get("artisan"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, domain.NewValidationError("invalid artisan %q", v))
			return
		}
		artisanID = id
	}
	slips, count, err := h.payslips.List(r.Context(), artisanID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, count, slips)
}

type generatePayslipRequest struct {
	ArtisanID       int64                   `json:"artisan"`
	ServiceCategory *domain.ServiceCategory `json:"service_category,omitempty"`
	PeriodStart     string                  `json:"period_start"`
	PeriodEnd       string                  `json:"period_end"`
}

// Generate creates a payslip covering the artisan's unpaid accepted work in
// the period. Dates come as YYYY-MM-DD; the end date is inclusive.
func (h *PayslipHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var in generatePayslipRequest
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	start, err := time.Parse("2006-01-02", in.PeriodStart)
	if err != nil {
		writeError(w, domain.NewValidationError("invalid period_start %q, expected YYYY-MM-DD", in.PeriodStart))
		return
	}
	end, err := time.Parse("2006-01-02", in.PeriodEnd)
	if err != nil {
		writeError(w, domain.NewValidationError("invalid period_end %q, expected YYYY-MM-DD", in.PeriodEnd))
		return
	}
	slip, err := h.payslips.Generate(r.Context(), service.GeneratePayslipInput{
		ArtisanID:       in.ArtisanID,
		ServiceCategory: in.ServiceCategory,
		PeriodStart:     start,
		PeriodEnd:       end.Add(24*time.Hour - time.Nanosecond),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, slip)
}

func (h *PayslipHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	slip, err := h.payslips.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slip)
}

func (h *PayslipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.payslips.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// Download streams the attached payslip document.
func (h *PayslipHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rc, filename, err := h.payslips.Download(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	io.Copy(w, rc)
}

// AttachDocument stores an externally rendered document for a payslip. The
// body is the raw file; the filename comes from the query string.
func (h *PayslipHandler) AttachDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		writeError(w, domain.NewValidationError("missing filename parameter"))
		return
	}
	if err := h.payslips.AttachDocument(r.Context(), id, filename, r.Body); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
