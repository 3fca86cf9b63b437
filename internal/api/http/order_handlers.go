package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"quickbite/internal/domain"
	"quickbite/internal/service"
)

type orderResponse struct {
	domain.Order
	StatusStep *int `json:"status_step,omitempty"`
}

func withStatusStep(order domain.Order) orderResponse {
	resp := orderResponse{Order: order}
	if step, ok := service.StatusStep(order.Status); ok {
		resp.StatusStep = &step
	}
	return resp
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		AddressID string `json:"address_id"`
		PaymentID string `json:"payment_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Orders.Place(r.Context(), mux.Vars(r)["userId"], payload.AddressID, payload.PaymentID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, withStatusStep(*order))
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	responses := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, withStatusStep(order))
	}
	respondJSON(w, http.StatusOK, responses)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	order, err := h.Orders.Get(r.Context(), vars["userId"], vars["orderId"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, withStatusStep(*order))
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	qr, err := h.Orders.QRCode(r.Context(), vars["userId"], vars["orderId"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var payload struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Orders.UpdateStatus(r.Context(), vars["userId"], vars["orderId"], payload.Status)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, withStatusStep(*order))
}
