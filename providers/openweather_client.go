// Package providers implements clients for external weather data providers
package providers

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weatherproxy.app/config"
	"weatherproxy.app/errors"
	"weatherproxy.app/metrics"
)

// OpenWeatherMap returns 3-hour forecast intervals, eight per day
const intervalsPerDay = 8

// OpenWeatherClient issues HTTP calls to the OpenWeatherMap API and
// returns the raw response payloads. Each call is a single attempt.
type OpenWeatherClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenWeatherClient creates a new OpenWeatherMap client
func NewOpenWeatherClient(config *config.WeatherConfig) *OpenWeatherClient {
	return &OpenWeatherClient{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchCurrentByCity retrieves the raw current weather payload for a city name
func (c *OpenWeatherClient) FetchCurrentByCity(city string) ([]byte, error) {
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	params := url.Values{}
	params.Set("q", city)

	return c.get("/weather", "current", params)
}

// FetchCurrentByCoordinates retrieves the raw current weather payload for coordinates
func (c *OpenWeatherClient) FetchCurrentByCoordinates(lat, lon float64) ([]byte, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	return c.get("/weather", "current", params)
}

// FetchForecast retrieves the raw forecast payload for a city.
// days is translated to the provider's interval count (days*8).
func (c *OpenWeatherClient) FetchForecast(city string, days int) ([]byte, error) {
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}
	if days < 1 || days > 5 {
		return nil, errors.NewValidationError("days must be between 1 and 5")
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("cnt", strconv.Itoa(days*intervalsPerDay))

	return c.get("/forecast", "forecast", params)
}

func (c *OpenWeatherClient) get(path, endpoint string, params url.Values) ([]byte, error) {
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	start := time.Now()
	body, err := c.doRequest(requestURL)
	metrics.RecordProviderRequest(endpoint, outcomeForError(err), time.Since(start))

	return body, err
}

func (c *OpenWeatherClient) doRequest(requestURL string) ([]byte, error) {
	resp, err := c.client.Get(requestURL)
	if err != nil {
		return nil, errors.NewExternalAPIError("weather provider request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			// Ignore close error as it's not critical for the main operation
			_ = closeErr
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.NewNotFoundError("location not found")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(
			fmt.Sprintf("weather provider returned status code %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to read weather provider response", err)
	}

	return body, nil
}

func outcomeForError(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case isNotFound(err):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}

func isNotFound(err error) bool {
	appErr, ok := err.(*errors.AppError)
	return ok && appErr.Type == errors.NotFoundError
}
