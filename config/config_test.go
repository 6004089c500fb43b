package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	// Test case 1: Required fields - should return error when missing
	t.Run("RequiredFieldsMissing", func(t *testing.T) {
		os.Clearenv()

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "required key OPENWEATHER_API_KEY missing")
	})

	// Test case 2: Default values - should use defaults when not provided
	t.Run("DefaultValues", func(t *testing.T) {
		os.Clearenv()

		require.NoError(t, os.Setenv("OPENWEATHER_API_KEY", "test-api-key"))

		config, err := LoadConfig()

		assert.NoError(t, err)
		assert.NotNil(t, config)
		assert.Equal(t, 8080, config.Server.Port)
		assert.Equal(t, "localhost", config.Database.Host)
		assert.Equal(t, 5432, config.Database.Port)
		assert.Equal(t, "postgres", config.Database.User)
		assert.Equal(t, "weatherproxy", config.Database.Name)
		assert.Equal(t, "disable", config.Database.SSLMode)
		assert.Equal(t, "https://api.openweathermap.org/data/2.5", config.Weather.BaseURL)
	})

	// Test case 3: Custom values - should use provided values
	t.Run("CustomValues", func(t *testing.T) {
		os.Clearenv()

		require.NoError(t, os.Setenv("SERVER_PORT", "9090"))
		require.NoError(t, os.Setenv("DB_HOST", "test-db-host"))
		require.NoError(t, os.Setenv("DB_PORT", "5433"))
		require.NoError(t, os.Setenv("DB_USER", "test-user"))
		require.NoError(t, os.Setenv("DB_PASSWORD", "test-db-password"))
		require.NoError(t, os.Setenv("DB_NAME", "test-db"))
		require.NoError(t, os.Setenv("DB_SSL_MODE", "require"))
		require.NoError(t, os.Setenv("OPENWEATHER_API_KEY", "custom-api-key"))
		require.NoError(t, os.Setenv("OPENWEATHER_BASE_URL", "https://api.example.com/data"))

		config, err := LoadConfig()

		assert.NoError(t, err)
		assert.NotNil(t, config)
		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, "test-db-host", config.Database.Host)
		assert.Equal(t, 5433, config.Database.Port)
		assert.Equal(t, "test-user", config.Database.User)
		assert.Equal(t, "test-db", config.Database.Name)
		assert.Equal(t, "require", config.Database.SSLMode)
		assert.Equal(t, "custom-api-key", config.Weather.APIKey)
		assert.Equal(t, "https://api.example.com/data", config.Weather.BaseURL)
	})

	// Test case 4: Validation failures on bad values
	t.Run("InvalidServerPort", func(t *testing.T) {
		os.Clearenv()

		require.NoError(t, os.Setenv("OPENWEATHER_API_KEY", "test-api-key"))
		require.NoError(t, os.Setenv("SERVER_PORT", "70000"))

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "SERVER_PORT must be between 1 and 65535")
	})

	t.Run("InvalidSSLMode", func(t *testing.T) {
		os.Clearenv()

		require.NoError(t, os.Setenv("OPENWEATHER_API_KEY", "test-api-key"))
		require.NoError(t, os.Setenv("DB_SSL_MODE", "invalid-mode"))

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "DB_SSL_MODE must be one of")
	})

	t.Run("InvalidBaseURL", func(t *testing.T) {
		os.Clearenv()

		require.NoError(t, os.Setenv("OPENWEATHER_API_KEY", "test-api-key"))
		require.NoError(t, os.Setenv("OPENWEATHER_BASE_URL", "ftp://api.example.com"))

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "OPENWEATHER_BASE_URL must start with http:// or https://")
	})
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	config := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		Name:     "weatherproxy",
		SSLMode:  "disable",
	}

	dsn := config.GetDSN()
	assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=weatherproxy sslmode=disable", dsn)
}
