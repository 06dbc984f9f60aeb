package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mehrnazbaharan/diabetes-companion/internal/database"
	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
)

// LogEntryRepository handles log entry rows.
type LogEntryRepository struct {
	db *gorm.DB
}

// NewLogEntryRepository creates a new log entry repository
func NewLogEntryRepository(db *gorm.DB) *LogEntryRepository {
	return &LogEntryRepository{db: db}
}

// Create stores a new entry for the user.
func (r *LogEntryRepository) Create(ctx context.Context, userID string, entry domain.LogEntry) error {
	row, err := database.LogEntryFromDomain(userID, entry)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create log entry: %w", err)
	}
	return nil
}

// Update replaces an entry's fields in place, keeping its id.
func (r *LogEntryRepository) Update(ctx context.Context, userID string, entry domain.LogEntry) error {
	row, err := database.LogEntryFromDomain(userID, entry)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&database.LogEntry{}).
		Where("user_id = ? AND id = ?", userID, entry.ID).
		Updates(map[string]interface{}{
			"timestamp":   row.Timestamp,
			"jalali_date": row.JalaliDate,
			"time_of_day": row.TimeOfDay,
			"kind":        row.Kind,
			"payload":     row.Payload,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update log entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an entry by id.
func (r *LogEntryRepository) Delete(ctx context.Context, userID, entryID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, entryID).
		Delete(&database.LogEntry{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete log entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListSince returns the user's entries at or after the cutoff, oldest first.
func (r *LogEntryRepository) ListSince(ctx context.Context, userID string, since time.Time) ([]domain.LogEntry, error) {
	var rows []database.LogEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND timestamp >= ?", userID, since).
		Order("timestamp ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list log entries: %w", err)
	}

	entries := make([]domain.LogEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := row.ToDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
