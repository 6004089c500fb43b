package providers

// WeatherClient defines the interface for fetching raw weather provider payloads
type WeatherClient interface {
	FetchCurrentByCity(city string) ([]byte, error)
	FetchCurrentByCoordinates(lat, lon float64) ([]byte, error)
	FetchForecast(city string, days int) ([]byte, error)
}

var _ WeatherClient = (*OpenWeatherClient)(nil)
