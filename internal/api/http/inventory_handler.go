package http

import (
	"net/http"

	"workshop-backend/internal/service"
)

type InventoryHandler struct {
	inventory service.InventoryService
}

func NewInventoryHandler(inventory service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	records, count, err := h.inventory.ListInventory(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, count, records)
}

func (h *InventoryHandler) ListFinishedStock(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	records, count, err := h.inventory.ListFinishedStock(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, count, records)
}
