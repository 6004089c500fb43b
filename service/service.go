package service

import (
	"log"

	"weatherproxy.app/errors"
	"weatherproxy.app/mapper"
	"weatherproxy.app/models"
	"weatherproxy.app/providers"
)

// WeatherService orchestrates the fetch -> map -> persist pipeline for
// current weather and forecast queries. A history entry is written for every
// successful query; a failed history write fails the whole request.
type WeatherService struct {
	client  providers.WeatherClient
	history SearchHistoryRepositoryInterface
}

// NewWeatherService creates a new weather service
func NewWeatherService(client providers.WeatherClient, history SearchHistoryRepositoryInterface) *WeatherService {
	return &WeatherService{
		client:  client,
		history: history,
	}
}

// GetCurrentWeather retrieves current weather by city name or coordinates.
// A non-empty city takes precedence over coordinates; with neither complete
// input the request is rejected before any provider call.
func (s *WeatherService) GetCurrentWeather(city string, lat, lon *float64) (*models.WeatherRecord, error) {
	log.Printf("[DEBUG] WeatherService.GetCurrentWeather called: city=%q\n", city)

	var raw []byte
	var err error
	var searchType string

	switch {
	case city != "":
		raw, err = s.client.FetchCurrentByCity(city)
		searchType = models.SearchTypeCity
	case lat != nil && lon != nil:
		raw, err = s.client.FetchCurrentByCoordinates(*lat, *lon)
		searchType = models.SearchTypeCoordinates
	default:
		return nil, errors.NewValidationError("either 'city' or both 'lat' and 'lon' parameters are required")
	}
	if err != nil {
		log.Printf("[ERROR] Weather provider error: %v\n", err)
		return nil, err
	}

	record, err := mapper.CurrentWeather(raw)
	if err != nil {
		log.Printf("[ERROR] Weather payload mapping error: %v\n", err)
		return nil, err
	}

	entry := &models.SearchHistory{
		SearchType:   searchType,
		City:         record.City,
		Latitude:     &record.Latitude,
		Longitude:    &record.Longitude,
		ResponseData: string(raw),
	}
	// Caller-supplied values win over values resolved from the mapped record
	if city != "" {
		entry.City = &city
	}
	if lat != nil {
		entry.Latitude = lat
	}
	if lon != nil {
		entry.Longitude = lon
	}

	if err := s.history.Create(entry); err != nil {
		return nil, err
	}

	return record, nil
}

// GetForecast retrieves a multi-day forecast for a city
func (s *WeatherService) GetForecast(city string, days int) (*models.ForecastRecord, error) {
	log.Printf("[DEBUG] WeatherService.GetForecast called: city=%q, days=%d\n", city, days)

	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	raw, err := s.client.FetchForecast(city, days)
	if err != nil {
		log.Printf("[ERROR] Weather provider error: %v\n", err)
		return nil, err
	}

	record, err := mapper.Forecast(raw, days)
	if err != nil {
		log.Printf("[ERROR] Forecast payload mapping error: %v\n", err)
		return nil, err
	}

	entry := &models.SearchHistory{
		SearchType:   models.SearchTypeForecast,
		City:         &city,
		Latitude:     &record.Latitude,
		Longitude:    &record.Longitude,
		ForecastDays: &days,
		ResponseData: string(raw),
	}

	if err := s.history.Create(entry); err != nil {
		return nil, err
	}

	return record, nil
}

// HistoryService exposes the stored search history
type HistoryService struct {
	history SearchHistoryRepositoryInterface
}

// NewHistoryService creates a new history service
func NewHistoryService(history SearchHistoryRepositoryInterface) *HistoryService {
	return &HistoryService{history: history}
}

// List returns one page of history entries, most recent first
func (s *HistoryService) List(limit, offset int) (*models.SearchHistoryPage, error) {
	total, items, err := s.history.List(limit, offset)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []models.SearchHistory{}
	}

	return &models.SearchHistoryPage{Total: total, Items: items}, nil
}

// Clear deletes the entire search history
func (s *HistoryService) Clear() (*models.DeleteHistoryResult, error) {
	deleted, err := s.history.Clear()
	if err != nil {
		return nil, err
	}

	return &models.DeleteHistoryResult{
		Message:      "Search history cleared successfully",
		DeletedCount: deleted,
	}, nil
}
