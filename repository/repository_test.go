package repository

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	weathererr "weatherproxy.app/errors"
	"weatherproxy.app/models"
)

// Setup test database with in-memory SQLite. A single connection keeps every
// operation on the same in-memory database and serializes writes.
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.SearchHistory{}))

	return db
}

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }

func newCityEntry(city string) *models.SearchHistory {
	return &models.SearchHistory{
		SearchType:   models.SearchTypeCity,
		City:         strPtr(city),
		Latitude:     floatPtr(51.5085),
		Longitude:    floatPtr(-0.1257),
		ResponseData: `{"name": "` + city + `"}`,
	}
}

func TestSearchHistoryRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSearchHistoryRepository(db)

	t.Run("AssignsIDAndTimestamp", func(t *testing.T) {
		entry := newCityEntry("London")

		err := repo.Create(entry)
		assert.NoError(t, err)
		assert.NotZero(t, entry.ID)
		assert.False(t, entry.Timestamp.IsZero())
	})

	t.Run("IDsAreStrictlyIncreasing", func(t *testing.T) {
		first := newCityEntry("Paris")
		second := newCityEntry("Berlin")

		require.NoError(t, repo.Create(first))
		require.NoError(t, repo.Create(second))

		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("PersistedFieldsMatch", func(t *testing.T) {
		days := 3
		entry := &models.SearchHistory{
			SearchType:   models.SearchTypeForecast,
			City:         strPtr("Kyiv"),
			Latitude:     floatPtr(50.4333),
			Longitude:    floatPtr(30.5167),
			ForecastDays: &days,
			ResponseData: `{"city": {"name": "Kyiv"}}`,
		}

		require.NoError(t, repo.Create(entry))

		var stored models.SearchHistory
		require.NoError(t, db.First(&stored, entry.ID).Error)
		assert.Equal(t, models.SearchTypeForecast, stored.SearchType)
		assert.Equal(t, "Kyiv", *stored.City)
		assert.Equal(t, 50.4333, *stored.Latitude)
		assert.Equal(t, 30.5167, *stored.Longitude)
		assert.Equal(t, 3, *stored.ForecastDays)
		assert.Equal(t, `{"city": {"name": "Kyiv"}}`, stored.ResponseData)
	})
}

func TestSearchHistoryRepository_ConcurrentCreates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSearchHistoryRepository(db)

	const workers = 50

	var wg sync.WaitGroup
	ids := make(chan uint, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			entry := newCityEntry("London")
			if err := repo.Create(entry); err == nil {
				ids <- entry.ID
			}
		}()
	}

	wg.Wait()
	close(ids)

	seen := make(map[uint]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d assigned", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
}

func TestSearchHistoryRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSearchHistoryRepository(db)

	base := time.Date(2024, 6, 7, 12, 0, 0, 0, time.UTC)
	cities := []string{"London", "Paris", "Kyiv"}
	for i, city := range cities {
		entry := newCityEntry(city)
		entry.Timestamp = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(entry))
	}

	t.Run("MostRecentFirst", func(t *testing.T) {
		total, items, err := repo.List(1000, 0)
		require.NoError(t, err)

		assert.Equal(t, int64(3), total)
		require.Len(t, items, 3)
		assert.Equal(t, "Kyiv", *items[0].City)
		assert.Equal(t, "Paris", *items[1].City)
		assert.Equal(t, "London", *items[2].City)
	})

	t.Run("TotalIndependentOfWindow", func(t *testing.T) {
		total, items, err := repo.List(1, 1)
		require.NoError(t, err)

		assert.Equal(t, int64(3), total)
		require.Len(t, items, 1)
		assert.Equal(t, "Paris", *items[0].City)
	})

	t.Run("OffsetBeyondEnd", func(t *testing.T) {
		total, items, err := repo.List(100, 10)
		require.NoError(t, err)

		assert.Equal(t, int64(3), total)
		assert.Empty(t, items)
	})
}

func TestSearchHistoryRepository_Clear(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSearchHistoryRepository(db)

	for _, city := range []string{"London", "Paris", "Kyiv"} {
		require.NoError(t, repo.Create(newCityEntry(city)))
	}

	t.Run("DeletesAllAndReturnsCount", func(t *testing.T) {
		deleted, err := repo.Clear()
		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)

		total, items, err := repo.List(1000, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, items)
	})

	t.Run("IdempotentOnEmptyStore", func(t *testing.T) {
		deleted, err := repo.Clear()
		require.NoError(t, err)
		assert.Equal(t, int64(0), deleted)
	})
}

func TestSearchHistoryRepository_StorageFailure(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSearchHistoryRepository(db)

	// Dropping the table makes every operation fail at the storage layer
	require.NoError(t, db.Migrator().DropTable(&models.SearchHistory{}))

	t.Run("CreateSurfacesDatabaseError", func(t *testing.T) {
		err := repo.Create(newCityEntry("London"))
		assert.Error(t, err)

		var appErr *weathererr.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, weathererr.DatabaseError, appErr.Type)
	})

	t.Run("ListSurfacesDatabaseError", func(t *testing.T) {
		_, _, err := repo.List(100, 0)
		assert.Error(t, err)

		var appErr *weathererr.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, weathererr.DatabaseError, appErr.Type)
	})

	t.Run("ClearSurfacesDatabaseError", func(t *testing.T) {
		_, err := repo.Clear()
		assert.Error(t, err)

		var appErr *weathererr.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, weathererr.DatabaseError, appErr.Type)
	})
}
