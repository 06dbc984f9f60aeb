package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
	"github.com/mehrnazbaharan/diabetes-companion/internal/jalali"
	"github.com/mehrnazbaharan/diabetes-companion/internal/repository"
)

// LogbookService manages a user's log entries. It owns entry identity and
// date keys: callers hand in payloads, the service stamps ids, timestamps,
// the Jalali date key and the time-of-day label.
type LogbookService struct {
	entries *repository.LogEntryRepository
}

func NewLogbookService(entries *repository.LogEntryRepository) *LogbookService {
	return &LogbookService{entries: entries}
}

func stampEntry(entry *domain.LogEntry, at time.Time) {
	entry.Timestamp = at
	entry.JalaliDate = jalali.Today(at).String()
	entry.TimeOfDay = at.Format("15:04")
}

// AddEntry stores a new entry stamped with the current instant.
func (s *LogbookService) AddEntry(ctx context.Context, userID string, entry domain.LogEntry) (*domain.LogEntry, error) {
	entry.ID = uuid.NewString()
	stampEntry(&entry, time.Now())
	if err := s.entries.Create(ctx, userID, entry); err != nil {
		return nil, fmt.Errorf("failed to add log entry: %w", err)
	}
	return &entry, nil
}

// UpdateEntry replaces an entry's fields in place. The id is preserved and
// the timestamp is reset to the edit time, so the entry moves to the day it
// was edited on.
func (s *LogbookService) UpdateEntry(ctx context.Context, userID string, entry domain.LogEntry) error {
	if entry.ID == "" {
		return fmt.Errorf("log entry id is required")
	}
	stampEntry(&entry, time.Now())
	if err := s.entries.Update(ctx, userID, entry); err != nil {
		return fmt.Errorf("failed to update log entry: %w", err)
	}
	return nil
}

// DeleteEntry removes an entry by id.
func (s *LogbookService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	if err := s.entries.Delete(ctx, userID, entryID); err != nil {
		return fmt.Errorf("failed to delete log entry: %w", err)
	}
	return nil
}

// ListEntries returns the user's entries at or after the cutoff, oldest first.
func (s *LogbookService) ListEntries(ctx context.Context, userID string, since time.Time) ([]domain.LogEntry, error) {
	entries, err := s.entries.ListSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list log entries: %w", err)
	}
	return entries, nil
}
