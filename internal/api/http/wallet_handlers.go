package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"quickbite/internal/domain"
)

func (h *Handler) registerWalletRoutes(r *mux.Router) {
	r.HandleFunc("/api/wallet/{address}/token", h.getTokenInfo).Methods("GET")
	r.HandleFunc("/api/wallet/{address}/history", h.getTransactionHistory).Methods("GET")
	r.HandleFunc("/api/wallet/transfer", h.transferToken).Methods("POST")
}

func (h *Handler) getTokenInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.Wallet.TokenInfo(r.Context(), mux.Vars(r)["address"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (h *Handler) transferToken(w http.ResponseWriter, r *http.Request) {
	var req domain.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	hash, err := h.Wallet.Transfer(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"hash": hash})
}

func (h *Handler) getTransactionHistory(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.Wallet.History(r.Context(), mux.Vars(r)["address"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}
