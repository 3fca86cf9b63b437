package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

func (h *Handler) registerWeatherRoutes(r *mux.Router) {
	r.HandleFunc("/api/weather", h.getCurrentWeather).Methods("GET")
	r.HandleFunc("/api/weather/forecast", h.getForecast).Methods("GET")
	r.HandleFunc("/api/weather/locations", h.searchLocations).Methods("GET")
}

func coordinates(r *http.Request) (float64, float64, bool) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	return lat, lon, errLat == nil && errLon == nil
}

func (h *Handler) getCurrentWeather(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := coordinates(r)
	if !ok {
		http.Error(w, "lat and lon query parameters are required", http.StatusBadRequest)
		return
	}

	weather, err := h.Weather.Current(r.Context(), lat, lon)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusOK, weather)
}

func (h *Handler) getForecast(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := coordinates(r)
	if !ok {
		http.Error(w, "lat and lon query parameters are required", http.StatusBadRequest)
		return
	}

	forecast, err := h.Weather.Forecast(r.Context(), lat, lon)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusOK, forecast)
}

func (h *Handler) searchLocations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "q query parameter is required", http.StatusBadRequest)
		return
	}

	locations, err := h.Weather.SearchLocations(r.Context(), query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusOK, locations)
}
