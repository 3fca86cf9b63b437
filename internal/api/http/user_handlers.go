package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"quickbite/internal/domain"
)

func (h *Handler) registerUserRoutes(r *mux.Router) {
	r.HandleFunc("/api/users/{userId}/profile", h.getProfile).Methods("GET")
	r.HandleFunc("/api/users/{userId}/profile", h.updateProfile).Methods("PUT")

	r.HandleFunc("/api/users/{userId}/addresses", h.addAddress).Methods("POST")
	r.HandleFunc("/api/users/{userId}/addresses/{addressId}", h.updateAddress).Methods("PUT")
	r.HandleFunc("/api/users/{userId}/addresses/{addressId}", h.removeAddress).Methods("DELETE")
	r.HandleFunc("/api/users/{userId}/addresses/{addressId}/default", h.setDefaultAddress).Methods("POST")

	r.HandleFunc("/api/users/{userId}/payment-methods", h.addPaymentMethod).Methods("POST")
	r.HandleFunc("/api/users/{userId}/payment-methods/{methodId}", h.updatePaymentMethod).Methods("PUT")
	r.HandleFunc("/api/users/{userId}/payment-methods/{methodId}", h.removePaymentMethod).Methods("DELETE")
	r.HandleFunc("/api/users/{userId}/payment-methods/{methodId}/default", h.setDefaultPaymentMethod).Methods("POST")
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.Get(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.Users.UpdateProfile(r.Context(), mux.Vars(r)["userId"], payload.Name, payload.Email, payload.Phone)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) addAddress(w http.ResponseWriter, r *http.Request) {
	var address domain.Address
	if err := json.NewDecoder(r.Body).Decode(&address); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.Users.AddAddress(r.Context(), mux.Vars(r)["userId"], address)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (h *Handler) updateAddress(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var address domain.Address
	if err := json.NewDecoder(r.Body).Decode(&address); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.Users.UpdateAddress(r.Context(), vars["userId"], vars["addressId"], address)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) removeAddress(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	user, err := h.Users.RemoveAddress(r.Context(), vars["userId"], vars["addressId"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) setDefaultAddress(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	user, err := h.Users.SetDefaultAddress(r.Context(), vars["userId"], vars["addressId"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) addPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var method domain.PaymentMethod
	if err := json.NewDecoder(r.Body).Decode(&method); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.Users.AddPaymentMethod(r.Context(), mux.Vars(r)["userId"], method)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (h *Handler) updatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var method domain.PaymentMethod
	if err := json.NewDecoder(r.Body).Decode(&method); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.Users.UpdatePaymentMethod(r.Context(), vars["userId"], vars["methodId"], method)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) removePaymentMethod(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	user, err := h.Users.RemovePaymentMethod(r.Context(), vars["userId"], vars["methodId"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) setDefaultPaymentMethod(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	user, err := h.Users.SetDefaultPaymentMethod(r.Context(), vars["userId"], vars["methodId"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
