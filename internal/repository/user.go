package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mehrnazbaharan/diabetes-companion/internal/database"
	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
)

// UserRepository handles user rows and assembles the domain aggregate.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetOrCreate returns the user for a telegram account, creating it with a
// default profile on first contact.
func (r *UserRepository) GetOrCreate(ctx context.Context, telegramID int64, name string) (*domain.User, error) {
	var row database.User
	err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile, marshalErr := json.Marshal(domain.DefaultProfile())
		if marshalErr != nil {
			return nil, fmt.Errorf("failed to encode default profile: %w", marshalErr)
		}
		row = database.User{
			ID:         uuid.NewString(),
			TelegramID: telegramID,
			Name:       name,
			Profile:    profile,
		}
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.loadAggregate(ctx, &row)
}

// GetByTelegramID returns the full aggregate for a telegram account.
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	var row database.User
	if err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.loadAggregate(ctx, &row)
}

// GetByID returns the full aggregate by user id.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	var row database.User
	if err := r.db.WithContext(ctx).First(&row, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.loadAggregate(ctx, &row)
}

// UpdateProfile replaces the profile document.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID string, profile domain.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	result := r.db.WithContext(ctx).
		Model(&database.User{}).
		Where("id = ?", userID).
		Update("profile", data)
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Upsert writes a whole aggregate (used by backup restore): the user row,
// its documents and its log entries replace whatever is stored.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	profile, err := json.Marshal(user.Profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	reminders, err := json.Marshal(user.Reminders)
	if err != nil {
		return fmt.Errorf("failed to encode reminders: %w", err)
	}
	goals, err := json.Marshal(user.Goals)
	if err != nil {
		return fmt.Errorf("failed to encode goals: %w", err)
	}

	row := database.User{
		ID:         user.ID,
		TelegramID: user.TelegramID,
		Name:       user.Name,
		Profile:    profile,
		Reminders:  reminders,
		Goals:      goals,
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&row).Error; err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&database.LogEntry{}).Error; err != nil {
			return fmt.Errorf("failed to clear log entries: %w", err)
		}
		for _, entry := range user.Logs {
			logRow, err := database.LogEntryFromDomain(user.ID, entry)
			if err != nil {
				return err
			}
			if err := tx.Create(logRow).Error; err != nil {
				return fmt.Errorf("failed to save log entry: %w", err)
			}
		}
		return nil
	})
}

func (r *UserRepository) loadAggregate(ctx context.Context, row *database.User) (*domain.User, error) {
	var logs []database.LogEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", row.ID).
		Order("timestamp ASC").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to load log entries: %w", err)
	}
	return row.ToDomain(logs)
}
