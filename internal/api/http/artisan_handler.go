package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/service"
)

type ArtisanHandler struct {
	artisans service.ArtisanService
}

func NewArtisanHandler(artisans service.ArtisanService) *ArtisanHandler {
	return &ArtisanHandler{artisans: artisans}
}

// artisanDetail embeds the server-computed aggregates in the detail view.
type artisanDetail struct {
	domain.Artisan
	Stats *domain.ArtisanStats `json:"stats,omitempty"`
}

func (h *ArtisanHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	artisans, count, err := h.artisans.List(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, count, artisans)
}

func (h *ArtisanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var a domain.Artisan
	if err := decodeBody(r, &a); err != nil {
		writeError(w, err)
		return
	}
	a.ID = 0
	a.IsActive = true
	if err := h.artisans.Create(r.Context(), &a); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *ArtisanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	artisan, stats, err := h.artisans.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artisanDetail{Artisan: *artisan, Stats: stats})
}

func (h *ArtisanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var a domain.Artisan
	if err := decodeBody(r, &a); err != nil {
		writeError(w, err)
		return
	}
	a.ID = id
	if err := h.artisans.Update(r.Context(), &a); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *ArtisanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.artisans.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
