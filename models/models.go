// Package models defines data structures used throughout the application
package models

import (
	"time"
)

// Search types recorded in the history for each kind of query
const (
	SearchTypeCity        = "city"
	SearchTypeCoordinates = "coordinates"
	SearchTypeForecast    = "forecast"
)

// WeatherRecord represents normalized current weather conditions returned to clients
type WeatherRecord struct {
	City               *string   `json:"city"`
	Country            *string   `json:"country"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	Temperature        float64   `json:"temperature"`
	FeelsLike          float64   `json:"feels_like"`
	TempMin            float64   `json:"temp_min"`
	TempMax            float64   `json:"temp_max"`
	Pressure           int       `json:"pressure"`
	Humidity           int       `json:"humidity"`
	Visibility         *int      `json:"visibility"`
	WindSpeed          float64   `json:"wind_speed"`
	WindDeg            int       `json:"wind_deg"`
	Clouds             int       `json:"clouds"`
	Weather            string    `json:"weather"`
	WeatherDescription string    `json:"weather_description"`
	WeatherIcon        string    `json:"weather_icon"`
	Timestamp          time.Time `json:"timestamp"`
}

// ForecastItem represents a single 3-hour forecast interval
type ForecastItem struct {
	Datetime           time.Time `json:"datetime"`
	Temperature        float64   `json:"temperature"`
	FeelsLike          float64   `json:"feels_like"`
	TempMin            float64   `json:"temp_min"`
	TempMax            float64   `json:"temp_max"`
	Pressure           int       `json:"pressure"`
	Humidity           int       `json:"humidity"`
	Weather            string    `json:"weather"`
	WeatherDescription string    `json:"weather_description"`
	WeatherIcon        string    `json:"weather_icon"`
	WindSpeed          float64   `json:"wind_speed"`
	WindDeg            int       `json:"wind_deg"`
	Clouds             int       `json:"clouds"`
	// Pop is the probability of precipitation, 0.0 when the provider omits it
	Pop float64 `json:"pop"`
}

// ForecastRecord represents a normalized multi-day forecast returned to clients
type ForecastRecord struct {
	City          string         `json:"city"`
	Country       string         `json:"country"`
	Latitude      float64        `json:"latitude"`
	Longitude     float64        `json:"longitude"`
	DaysRequested int            `json:"days_requested"`
	Forecast      []ForecastItem `json:"forecast"`
}

// SearchHistory stores one row per successful weather query.
// Rows are append-only; the only delete path is a bulk clear.
type SearchHistory struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SearchType   string    `json:"search_type" gorm:"not null"`
	City         *string   `json:"city"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	ForecastDays *int      `json:"forecast_days"`
	ResponseData string    `json:"-" gorm:"type:text;not null"`
	Timestamp    time.Time `json:"timestamp" gorm:"index;not null"`
}

// SearchHistoryPage is the paginated history listing returned to clients.
// Total counts all stored rows, not just the returned page.
type SearchHistoryPage struct {
	Total int64           `json:"total"`
	Items []SearchHistory `json:"items"`
}

// DeleteHistoryResult reports the outcome of a bulk history clear
type DeleteHistoryResult struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deleted_count"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
