package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
	apperrors "github.com/mehrnazbaharan/diabetes-companion/internal/errors"
)

const backupVersion = "1.0"

// BackupEnvelope is the portable export format. It carries the full user
// aggregates plus the display preferences that travel with them, so a
// restore on a fresh install reproduces the same state.
type BackupEnvelope struct {
	Users            []domain.User `json:"users"`
	SelectedUserID   string        `json:"selectedUserId"`
	DisplayTheme     string        `json:"displayTheme"`
	ColorTheme       string        `json:"colorTheme"`
	SummaryTimeFrame string        `json:"summaryTimeFrame"`
	Language         string        `json:"language"`
	Version          string        `json:"version"`
	BackupDate       string        `json:"backupDate"`
}

// userStore is the slice of the user repository the backup service needs.
type userStore interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
}

// BackupService exports and restores user aggregates as a versioned JSON
// envelope.
type BackupService struct {
	users userStore
}

func NewBackupService(users userStore) *BackupService {
	return &BackupService{users: users}
}

// Export serializes the account's aggregate into a backup envelope.
func (s *BackupService) Export(ctx context.Context, telegramID int64) ([]byte, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for backup: %w", err)
	}

	envelope := BackupEnvelope{
		Users:            []domain.User{*user},
		SelectedUserID:   user.ID,
		DisplayTheme:     "system",
		ColorTheme:       "default",
		SummaryTimeFrame: "daily",
		Language:         "en",
		Version:          backupVersion,
		BackupDate:       time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return data, nil
}

// Restore replaces the account's aggregate with the one in the envelope.
// The selected user is restored; if the envelope does not name one, the
// first user is taken. Missing reminders and goals default to empty so
// older backups stay importable.
func (s *BackupService) Restore(ctx context.Context, telegramID int64, data []byte) error {
	var envelope BackupEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return apperrors.Wrap(err, apperrors.ErrorTypeValidation, "INVALID_BACKUP", "backup file is not valid JSON")
	}
	if len(envelope.Users) == 0 {
		return apperrors.ErrInvalidBackup
	}

	restored := envelope.Users[0]
	for i := range envelope.Users {
		if envelope.Users[i].ID == envelope.SelectedUserID {
			restored = envelope.Users[i]
			break
		}
	}
	if restored.ID == "" {
		return apperrors.ErrInvalidBackup
	}
	if restored.Reminders == nil {
		restored.Reminders = []domain.Reminder{}
	}
	if restored.Goals == nil {
		restored.Goals = []domain.Goal{}
	}

	// The aggregate stays bound to the account restoring it, not the one
	// that exported it.
	restored.TelegramID = telegramID

	if err := s.users.Upsert(ctx, &restored); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	return nil
}
