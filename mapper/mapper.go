// Package mapper translates raw OpenWeatherMap payloads into normalized records.
// Extraction is explicit: a required field that is absent or has the wrong
// type produces a PayloadError naming the field, with no implicit coercion.
package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"weatherproxy.app/errors"
	"weatherproxy.app/models"
)

// CurrentWeather maps a raw current-weather payload to a WeatherRecord
func CurrentWeather(raw []byte) (*models.WeatherRecord, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(errors.PayloadError, "failed to decode weather payload", err)
	}

	coord, err := requireObject(data, "coord", "coord")
	if err != nil {
		return nil, err
	}
	main, err := requireObject(data, "main", "main")
	if err != nil {
		return nil, err
	}
	wind, err := requireObject(data, "wind", "wind")
	if err != nil {
		return nil, err
	}
	clouds, err := requireObject(data, "clouds", "clouds")
	if err != nil {
		return nil, err
	}
	condition, err := requireFirstCondition(data)
	if err != nil {
		return nil, err
	}

	record := &models.WeatherRecord{
		City:       optionalString(data, "name"),
		Visibility: optionalInt(data, "visibility"),
	}
	if sys, ok := data["sys"].(map[string]interface{}); ok {
		record.Country = optionalString(sys, "country")
	}

	if record.Latitude, err = requireFloat(coord, "coord.lat", "lat"); err != nil {
		return nil, err
	}
	if record.Longitude, err = requireFloat(coord, "coord.lon", "lon"); err != nil {
		return nil, err
	}
	if record.Temperature, err = requireFloat(main, "main.temp", "temp"); err != nil {
		return nil, err
	}
	if record.FeelsLike, err = requireFloat(main, "main.feels_like", "feels_like"); err != nil {
		return nil, err
	}
	if record.TempMin, err = requireFloat(main, "main.temp_min", "temp_min"); err != nil {
		return nil, err
	}
	if record.TempMax, err = requireFloat(main, "main.temp_max", "temp_max"); err != nil {
		return nil, err
	}
	if record.Pressure, err = requireInt(main, "main.pressure", "pressure"); err != nil {
		return nil, err
	}
	if record.Humidity, err = requireInt(main, "main.humidity", "humidity"); err != nil {
		return nil, err
	}
	if record.WindSpeed, err = requireFloat(wind, "wind.speed", "speed"); err != nil {
		return nil, err
	}
	if record.WindDeg, err = requireInt(wind, "wind.deg", "deg"); err != nil {
		return nil, err
	}
	if record.Clouds, err = requireInt(clouds, "clouds.all", "all"); err != nil {
		return nil, err
	}
	if record.Weather, err = requireString(condition, "weather[0].main", "main"); err != nil {
		return nil, err
	}
	if record.WeatherDescription, err = requireString(condition, "weather[0].description", "description"); err != nil {
		return nil, err
	}
	if record.WeatherIcon, err = requireString(condition, "weather[0].icon", "icon"); err != nil {
		return nil, err
	}

	observedAt, err := requireFloat(data, "dt", "dt")
	if err != nil {
		return nil, err
	}
	record.Timestamp = time.Unix(int64(observedAt), 0).UTC()

	return record, nil
}

// Forecast maps a raw forecast payload to a ForecastRecord. Provider interval
// ordering is preserved and daysRequested is echoed back verbatim.
func Forecast(raw []byte, daysRequested int) (*models.ForecastRecord, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(errors.PayloadError, "failed to decode forecast payload", err)
	}

	city, err := requireObject(data, "city", "city")
	if err != nil {
		return nil, err
	}
	coord, err := requireObject(city, "city.coord", "coord")
	if err != nil {
		return nil, err
	}
	list, ok := data["list"].([]interface{})
	if !ok {
		return nil, errors.NewPayloadError("missing required field: list")
	}

	record := &models.ForecastRecord{
		DaysRequested: daysRequested,
		Forecast:      make([]models.ForecastItem, 0, len(list)),
	}

	if record.City, err = requireString(city, "city.name", "name"); err != nil {
		return nil, err
	}
	if record.Country, err = requireString(city, "city.country", "country"); err != nil {
		return nil, err
	}
	if record.Latitude, err = requireFloat(coord, "city.coord.lat", "lat"); err != nil {
		return nil, err
	}
	if record.Longitude, err = requireFloat(coord, "city.coord.lon", "lon"); err != nil {
		return nil, err
	}

	for i, element := range list {
		interval, ok := element.(map[string]interface{})
		if !ok {
			return nil, errors.NewPayloadError(fmt.Sprintf("list[%d] is not an object", i))
		}

		item, err := forecastItem(interval, i)
		if err != nil {
			return nil, err
		}
		record.Forecast = append(record.Forecast, *item)
	}

	return record, nil
}

func forecastItem(interval map[string]interface{}, index int) (*models.ForecastItem, error) {
	prefix := fmt.Sprintf("list[%d]", index)

	main, err := requireObject(interval, prefix+".main", "main")
	if err != nil {
		return nil, err
	}
	wind, err := requireObject(interval, prefix+".wind", "wind")
	if err != nil {
		return nil, err
	}
	clouds, err := requireObject(interval, prefix+".clouds", "clouds")
	if err != nil {
		return nil, err
	}
	condition, err := requireFirstCondition(interval)
	if err != nil {
		return nil, err
	}

	item := &models.ForecastItem{
		Pop: optionalFloat(interval, "pop"),
	}

	if item.Temperature, err = requireFloat(main, prefix+".main.temp", "temp"); err != nil {
		return nil, err
	}
	if item.FeelsLike, err = requireFloat(main, prefix+".main.feels_like", "feels_like"); err != nil {
		return nil, err
	}
	if item.TempMin, err = requireFloat(main, prefix+".main.temp_min", "temp_min"); err != nil {
		return nil, err
	}
	if item.TempMax, err = requireFloat(main, prefix+".main.temp_max", "temp_max"); err != nil {
		return nil, err
	}
	if item.Pressure, err = requireInt(main, prefix+".main.pressure", "pressure"); err != nil {
		return nil, err
	}
	if item.Humidity, err = requireInt(main, prefix+".main.humidity", "humidity"); err != nil {
		return nil, err
	}
	if item.WindSpeed, err = requireFloat(wind, prefix+".wind.speed", "speed"); err != nil {
		return nil, err
	}
	if item.WindDeg, err = requireInt(wind, prefix+".wind.deg", "deg"); err != nil {
		return nil, err
	}
	if item.Clouds, err = requireInt(clouds, prefix+".clouds.all", "all"); err != nil {
		return nil, err
	}
	if item.Weather, err = requireString(condition, prefix+".weather[0].main", "main"); err != nil {
		return nil, err
	}
	if item.WeatherDescription, err = requireString(condition, prefix+".weather[0].description", "description"); err != nil {
		return nil, err
	}
	if item.WeatherIcon, err = requireString(condition, prefix+".weather[0].icon", "icon"); err != nil {
		return nil, err
	}

	intervalTime, err := requireFloat(interval, prefix+".dt", "dt")
	if err != nil {
		return nil, err
	}
	item.Datetime = time.Unix(int64(intervalTime), 0).UTC()

	return item, nil
}

// requireFirstCondition extracts the first element of the weather condition array
func requireFirstCondition(data map[string]interface{}) (map[string]interface{}, error) {
	weather, ok := data["weather"].([]interface{})
	if !ok || len(weather) == 0 {
		return nil, errors.NewPayloadError("missing required field: weather")
	}

	condition, ok := weather[0].(map[string]interface{})
	if !ok {
		return nil, errors.NewPayloadError("missing required field: weather[0]")
	}
	return condition, nil
}

func requireObject(data map[string]interface{}, path, key string) (map[string]interface{}, error) {
	obj, ok := data[key].(map[string]interface{})
	if !ok {
		return nil, errors.NewPayloadError("missing required field: " + path)
	}
	return obj, nil
}

func requireFloat(data map[string]interface{}, path, key string) (float64, error) {
	value, ok := data[key].(float64)
	if !ok {
		return 0, errors.NewPayloadError("missing required field: " + path)
	}
	return value, nil
}

func requireInt(data map[string]interface{}, path, key string) (int, error) {
	value, err := requireFloat(data, path, key)
	if err != nil {
		return 0, err
	}
	return int(value), nil
}

func requireString(data map[string]interface{}, path, key string) (string, error) {
	value, ok := data[key].(string)
	if !ok {
		return "", errors.NewPayloadError("missing required field: " + path)
	}
	return value, nil
}

func optionalString(data map[string]interface{}, key string) *string {
	if value, ok := data[key].(string); ok {
		return &value
	}
	return nil
}

func optionalInt(data map[string]interface{}, key string) *int {
	if value, ok := data[key].(float64); ok {
		intValue := int(value)
		return &intValue
	}
	return nil
}

func optionalFloat(data map[string]interface{}, key string) float64 {
	if value, ok := data[key].(float64); ok {
		return value
	}
	return 0
}

