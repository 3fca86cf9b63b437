package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"quickbite/internal/service"

	"github.com/stretchr/testify/assert"
)

func newWeatherServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/weather", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		w.Write([]byte(`{
			"name": "London",
			"main": {"temp": 18.5, "feels_like": 17.2, "humidity": 60},
			"weather": [{"main": "Clouds", "description": "overcast clouds", "icon": "04d"}],
			"wind": {"speed": 4.1}
		}`))
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"list": [{"dt": 1756723200, "main": {"temp": 19.0}, "weather": [{"main": "Rain", "icon": "10d"}]}]}`))
	})
	mux.HandleFunc("/direct", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "San Francisco", r.URL.Query().Get("q"))
		w.Write([]byte(`[{"name": "San Francisco", "country": "US", "lat": 37.77, "lon": -122.42}]`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestWeatherService_Current(t *testing.T) {
	server := newWeatherServer(t)
	svc := service.NewWeatherService(server.Client(), server.URL, server.URL, "test-key")

	weather, err := svc.Current(context.Background(), 51.5, -0.12)
	assert.NoError(t, err)
	assert.Equal(t, "London", weather.Name)
	assert.Equal(t, 18.5, weather.Main.Temp)
	assert.Equal(t, 60, weather.Main.Humidity)
	assert.Len(t, weather.Weather, 1)
	assert.Equal(t, "Clouds", weather.Weather[0].Main)
}

func TestWeatherService_Forecast(t *testing.T) {
	server := newWeatherServer(t)
	svc := service.NewWeatherService(server.Client(), server.URL, server.URL, "test-key")

	forecast, err := svc.Forecast(context.Background(), 51.5, -0.12)
	assert.NoError(t, err)
	assert.Len(t, forecast.List, 1)
	assert.Equal(t, 19.0, forecast.List[0].Main.Temp)
}

func TestWeatherService_SearchLocations(t *testing.T) {
	server := newWeatherServer(t)
	svc := service.NewWeatherService(server.Client(), server.URL, server.URL, "test-key")

	locations, err := svc.SearchLocations(context.Background(), "San Francisco")
	assert.NoError(t, err)
	assert.Len(t, locations, 1)
	assert.Equal(t, "San Francisco", locations[0].Name)
	assert.Equal(t, "US", locations[0].Country)
	assert.NotEmpty(t, locations[0].ID)
}

func TestWeatherService_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	svc := service.NewWeatherService(server.Client(), server.URL, server.URL, "test-key")

	weather, err := svc.Current(context.Background(), 51.5, -0.12)
	assert.Error(t, err)
	assert.Nil(t, weather)
}
