package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"quickbite/internal/domain"
	"quickbite/internal/service"
)

type Handler struct {
	Catalog service.CatalogServiceInterface
	Cart    service.CartServiceInterface
	Orders  service.OrderServiceInterface
	Users   service.UserServiceInterface
	Wallet  service.WalletServiceInterface
	Weather service.WeatherServiceInterface
}

func NewHandler(
	catalog service.CatalogServiceInterface,
	cart service.CartServiceInterface,
	orders service.OrderServiceInterface,
	users service.UserServiceInterface,
	wallet service.WalletServiceInterface,
	weather service.WeatherServiceInterface,
) *Handler {
	return &Handler{
		Catalog: catalog,
		Cart:    cart,
		Orders:  orders,
		Users:   users,
		Wallet:  wallet,
		Weather: weather,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/restaurants", h.listRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/menu", h.listMenu).Methods("GET")
	r.HandleFunc("/api/menu-items/{id}", h.getMenuItem).Methods("GET")

	r.HandleFunc("/api/users/{userId}/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/users/{userId}/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/users/{userId}/cart/items", h.addToCart).Methods("POST")
	r.HandleFunc("/api/users/{userId}/cart/items/{itemId}", h.updateCartItem).Methods("PUT")
	r.HandleFunc("/api/users/{userId}/cart/items/{itemId}", h.removeCartItem).Methods("DELETE")
	r.HandleFunc("/api/cart/options/toggle", h.toggleOption).Methods("POST")

	r.HandleFunc("/api/users/{userId}/orders", h.placeOrder).Methods("POST")
	r.HandleFunc("/api/users/{userId}/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/api/users/{userId}/orders/{orderId}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/users/{userId}/orders/{orderId}/qrcode", h.getOrderQRCode).Methods("GET")
	r.HandleFunc("/api/users/{userId}/orders/{orderId}/status", h.updateOrderStatus).Methods("PATCH")

	h.registerUserRoutes(r)
	h.registerWalletRoutes(r)
	h.registerWeatherRoutes(r)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "quickbite",
	})
}

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Catalog.ListRestaurants()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.Catalog.GetRestaurant(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Restaurant not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, restaurant)
}

func (h *Handler) listMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.ListMenu(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Catalog.GetMenuItem(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

type cartResponse struct {
	*domain.Cart
	Subtotal float64 `json:"subtotal"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Cart.Get(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, cartResponse{Cart: cart, Subtotal: service.Subtotal(cart)})
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		MenuItemID          string                  `json:"menu_item_id"`
		Quantity            int                     `json:"quantity"`
		SelectedOptions     []domain.SelectedOption `json:"selected_options"`
		SpecialInstructions string                  `json:"special_instructions"`
		ReplaceCart         bool                    `json:"replace_cart"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Quantity < 1 {
		payload.Quantity = 1
	}

	cart, err := h.Cart.AddToCart(r.Context(), mux.Vars(r)["userId"], payload.MenuItemID,
		payload.Quantity, payload.SelectedOptions, payload.SpecialInstructions, payload.ReplaceCart)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cartResponse{Cart: cart, Subtotal: service.Subtotal(cart)})
}

// updateCartItem treats a non-positive quantity as removal, so clients
// can decrement to zero without a separate call.
func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var payload struct {
		Quantity            int                     `json:"quantity"`
		SelectedOptions     []domain.SelectedOption `json:"selected_options"`
		SpecialInstructions *string                 `json:"special_instructions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		cart *domain.Cart
		err  error
	)
	if payload.Quantity < 1 {
		cart, err = h.Cart.RemoveItem(r.Context(), vars["userId"], vars["itemId"])
	} else {
		cart, err = h.Cart.UpdateItem(r.Context(), vars["userId"], vars["itemId"],
			payload.Quantity, payload.SelectedOptions, payload.SpecialInstructions)
	}
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartResponse{Cart: cart, Subtotal: service.Subtotal(cart)})
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cart, err := h.Cart.RemoveItem(r.Context(), vars["userId"], vars["itemId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, cartResponse{Cart: cart, Subtotal: service.Subtotal(cart)})
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.Cart.Clear(r.Context(), mux.Vars(r)["userId"]); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) toggleOption(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		MenuItemID string                  `json:"menu_item_id"`
		OptionID   string                  `json:"option_id"`
		ChoiceID   string                  `json:"choice_id"`
		Selections []domain.SelectedOption `json:"selections"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.Catalog.GetMenuItem(payload.MenuItemID)
	if err != nil {
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}

	selections := payload.Selections
	for _, group := range item.Options {
		if group.ID == payload.OptionID {
			selections = service.ToggleChoice(selections, group, payload.ChoiceID)
			break
		}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"selections": selections})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var missing *service.MissingOptionsError
	switch {
	case errors.As(err, &missing):
		http.Error(w, missing.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrDifferentRestaurant):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrMenuItemNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrAddressNotFound),
		errors.Is(err, service.ErrPaymentNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrHistoryTimeout):
		http.Error(w, err.Error(), http.StatusGatewayTimeout)
	case errors.Is(err, service.ErrMissingAddress),
		errors.Is(err, service.ErrMissingPayment),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInstructionsTooLong),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrUnknownOrderStatus),
		errors.Is(err, service.ErrInvalidRecipient),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrTooManyDecimals),
		errors.Is(err, service.ErrTokenInfoMissing),
		errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrNoGasFunds):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
