package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/service"
)

type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	orders, count, err := h.orders.List(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, count, orders)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateOrderInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	order, err := h.orders.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "order_id")
	if err != nil {
		writeError(w, err)
		return
	}
	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// UpdateStatus moves an order through fulfilment. The first transition into a
// stock-consuming status deducts finished stock; insufficient stock is a 409.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "order_id")
	if err != nil {
		writeError(w, err)
		return
	}
	var in struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	order, err := h.orders.UpdateStatus(r.Context(), id, in.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
