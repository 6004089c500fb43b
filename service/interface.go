package service

import (
	"weatherproxy.app/models"
)

// WeatherServiceInterface defines the interface for weather query operations
type WeatherServiceInterface interface {
	GetCurrentWeather(city string, lat, lon *float64) (*models.WeatherRecord, error)
	GetForecast(city string, days int) (*models.ForecastRecord, error)
}

// HistoryServiceInterface defines the interface for search history operations
type HistoryServiceInterface interface {
	List(limit, offset int) (*models.SearchHistoryPage, error)
	Clear() (*models.DeleteHistoryResult, error)
}

// SearchHistoryRepositoryInterface defines the interface for history data operations
type SearchHistoryRepositoryInterface interface {
	Create(entry *models.SearchHistory) error
	List(limit, offset int) (int64, []models.SearchHistory, error)
	Clear() (int64, error)
}

// Ensure implementations satisfy interfaces
var _ WeatherServiceInterface = (*WeatherService)(nil)
var _ HistoryServiceInterface = (*HistoryService)(nil)
