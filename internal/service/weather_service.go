package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"quickbite/internal/domain"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WeatherService queries the OpenWeatherMap API. Every request carries
// the caller's context so the configured client timeout applies
// uniformly.
type WeatherService struct {
	client  HTTPClient
	baseURL string
	geoURL  string
	apiKey  string
}

func NewWeatherService(client HTTPClient, baseURL, geoURL, apiKey string) *WeatherService {
	return &WeatherService{
		client:  client,
		baseURL: baseURL,
		geoURL:  geoURL,
		apiKey:  apiKey,
	}
}

func (s *WeatherService) Current(ctx context.Context, lat, lon float64) (*domain.Weather, error) {
	endpoint := fmt.Sprintf("%s/weather?lat=%f&lon=%f&units=metric&appid=%s", s.baseURL, lat, lon, s.apiKey)
	var weather domain.Weather
	if err := s.getJSON(ctx, endpoint, &weather); err != nil {
		return nil, fmt.Errorf("failed to fetch weather data: %w", err)
	}
	return &weather, nil
}

func (s *WeatherService) Forecast(ctx context.Context, lat, lon float64) (*domain.Forecast, error) {
	endpoint := fmt.Sprintf("%s/forecast?lat=%f&lon=%f&units=metric&appid=%s", s.baseURL, lat, lon, s.apiKey)
	var forecast domain.Forecast
	if err := s.getJSON(ctx, endpoint, &forecast); err != nil {
		return nil, fmt.Errorf("failed to fetch forecast data: %w", err)
	}
	return &forecast, nil
}

func (s *WeatherService) SearchLocations(ctx context.Context, query string) ([]domain.Location, error) {
	endpoint := fmt.Sprintf("%s/direct?q=%s&limit=5&appid=%s", s.geoURL, url.QueryEscape(query), s.apiKey)

	var results []struct {
		Name    string  `json:"name"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := s.getJSON(ctx, endpoint, &results); err != nil {
		return nil, fmt.Errorf("failed to search locations: %w", err)
	}

	locations := make([]domain.Location, 0, len(results))
	for _, item := range results {
		locations = append(locations, domain.Location{
			ID:      fmt.Sprintf("%f-%f", item.Lat, item.Lon),
			Name:    item.Name,
			Country: item.Country,
			Lat:     item.Lat,
			Lon:     item.Lon,
		})
	}
	return locations, nil
}

func (s *WeatherService) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ WeatherServiceInterface = (*WeatherService)(nil)
