package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/repository"
	"workshop-backend/internal/service"
)

// JobHandler serves jobs, their items, item ratings, and the delivery ledger.
type JobHandler struct {
	jobs service.JobService
}

func NewJobHandler(jobs service.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	q := r.URL.Query()
	filter := repository.JobFilter{
		Status:          domain.JobStatus(q.Get("status")),
		ServiceCategory: domain.ServiceCategory(q.Get("service_category")),
		Search:          q.Get("search"),
	}
	jobs, count, err := h.jobs.List(r.Context(), filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, count, jobs)
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateJobInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	job, err := h.jobs.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (h *JobHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.jobs.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "job_id")
	if err != nil {
		writeError(w, err)
		return
	}
	job, err := h.jobs.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "job_id")
	if err != nil {
		writeError(w, err)
		return
	}
	var in struct {
		Notes string `json:"notes"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	job, err := h.jobs.Update(r.Context(), id, in.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "job_id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.jobs.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *JobHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, mux.Vars(r), "job_id")
	if err != nil {
		writeError(w, err)
		return
	}
	items, err := h.jobs.ListItems(r.Context(), jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, len(items), items)
}

func (h *JobHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobID, err := pathID(r, vars, "job_id")
	if err != nil {
		writeError(w, err)
		return
	}
	itemID, err := pathID(r, vars, "item_id")
	if err != nil {
		writeError(w, err)
		return
	}
	item, err := h.jobs.GetItem(r.Context(), jobID, itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *JobHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobID, err := pathID(r, vars, "job_id")
	if err != nil {
		writeError(w, err)
		return
	}
	itemID, err := pathID(r, vars, "item_id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.jobs.DeleteItem(r.Context(), jobID, itemID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *JobHandler) RateItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobID, err := pathID(r, vars, "job_id")
	if err != nil {
		writeError(w, err)
		return
	}
	itemID, err := pathID(r, vars, "item_id")
	if err != nil {
		writeError(w, err)
		return
	}
	var in struct {
		Rating decimal.Decimal `json:"rating"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := h.jobs.RateItem(r.Context(), jobID, itemID, in.Rating); err != nil {
		writeError(w, err)
		return
	}
	item, err := h.jobs.GetItem(r.Context(), jobID, itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *JobHandler) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobID, err := pathID(r, vars, "job_id")
	if err != nil {
		writeError(w, err)
		return
	}
	itemID, err := pathID(r, vars, "item_id")
	if err != nil {
		writeError(w, err)
		return
	}
	deliveries, err := h.jobs.ListDeliveries(r.Context(), jobID, itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, len(deliveries), deliveries)
}

// RecordDelivery appends a delivery to an item. A replayed client_key answers
// 200 with the stored state instead of double-counting; a fresh delivery
// answers 201 with the updated item.
func (h *JobHandler) RecordDelivery(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobID, err := pathID(r, vars, "job_id")
	if err != nil {
		writeError(w, err)
		return
	}
	itemID, err := pathID(r, vars, "item_id")
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.DeliveryInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	item, replayed, err := h.jobs.RecordDelivery(r.Context(), jobID, itemID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusCreated
	if replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, item)
}
