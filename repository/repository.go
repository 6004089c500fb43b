// Package repository implements data access layer for the application
package repository

import (
	"log"
	"time"

	"gorm.io/gorm"
	"weatherproxy.app/errors"
	"weatherproxy.app/models"
)

// SearchHistoryRepository handles data access operations for the search history.
// Entries are append-only: there is no update path and the only delete is Clear.
type SearchHistoryRepository struct {
	db *gorm.DB
}

// NewSearchHistoryRepository creates a new repository for search history data
func NewSearchHistoryRepository(db *gorm.DB) *SearchHistoryRepository {
	return &SearchHistoryRepository{db: db}
}

// Create persists a new history entry. The database assigns a unique
// ascending ID; the creation timestamp is set here.
func (r *SearchHistoryRepository) Create(entry *models.SearchHistory) error {
	log.Printf("[DEBUG] SearchHistoryRepository.Create: type=%s\n", entry.SearchType)

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	result := r.db.Create(entry)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating history entry: %v\n", result.Error)
		return errors.NewDatabaseError("failed to record search history", result.Error)
	}

	log.Printf("[DEBUG] Created history entry with ID: %d\n", entry.ID)
	return nil
}

// List returns one page of history entries ordered by timestamp descending,
// along with the total count of all stored entries.
func (r *SearchHistoryRepository) List(limit, offset int) (int64, []models.SearchHistory, error) {
	log.Printf("[DEBUG] SearchHistoryRepository.List: limit=%d, offset=%d\n", limit, offset)

	var total int64
	if err := r.db.Model(&models.SearchHistory{}).Count(&total).Error; err != nil {
		log.Printf("[ERROR] Database error when counting history entries: %v\n", err)
		return 0, nil, errors.NewDatabaseError("failed to count search history", err)
	}

	var items []models.SearchHistory
	result := r.db.Order("timestamp DESC, id DESC").Limit(limit).Offset(offset).Find(&items)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing history entries: %v\n", result.Error)
		return 0, nil, errors.NewDatabaseError("failed to list search history", result.Error)
	}

	log.Printf("[DEBUG] Found %d of %d history entries\n", len(items), total)
	return total, items, nil
}

// Clear deletes all history entries and returns the number of rows removed.
// Clearing an empty store returns 0.
func (r *SearchHistoryRepository) Clear() (int64, error) {
	log.Println("[DEBUG] SearchHistoryRepository.Clear called")

	result := r.db.Where("1 = 1").Delete(&models.SearchHistory{})
	if result.Error != nil {
		log.Printf("[ERROR] Database error when clearing history: %v\n", result.Error)
		return 0, errors.NewDatabaseError("failed to clear search history", result.Error)
	}

	log.Printf("[DEBUG] Deleted %d history entries\n", result.RowsAffected)
	return result.RowsAffected, nil
}
