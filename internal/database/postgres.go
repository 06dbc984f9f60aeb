package database

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mehrnazbaharan/diabetes-companion/internal/config"
	"github.com/mehrnazbaharan/diabetes-companion/internal/database/migrations"
	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
	"github.com/mehrnazbaharan/diabetes-companion/internal/logger"
)

// User row. Profile, reminders and goals are owned documents stored as
// JSONB; they change rarely and are always read whole.
type User struct {
	ID         string `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	TelegramID int64 `gorm:"uniqueIndex"`
	Name       string
	Profile    []byte `gorm:"type:jsonb"`
	Reminders  []byte `gorm:"type:jsonb"`
	Goals      []byte `gorm:"type:jsonb"`
}

// LogEntry row. The kind-specific payload is stored as JSONB and unmarshals
// into the payload struct matching Kind.
type LogEntry struct {
	ID         string `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	UserID     string `gorm:"index"`
	Timestamp  time.Time
	JalaliDate string
	TimeOfDay  string
	Kind       string
	Payload    []byte `gorm:"type:jsonb"`
}

// NewPostgresDB opens the connection and runs migrations.
func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("failed to get current file path")
	}
	migrationsDir := filepath.Join(filepath.Dir(filename), "migrations")

	if err := migrations.LoadSQLMigrations(db, migrationsDir); err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	if err := migrations.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := db.AutoMigrate(&User{}, &LogEntry{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	logger.Info("Database connection established and migrations completed")
	return db, nil
}

// ToDomain converts a user row plus its log rows into the domain aggregate.
// Missing profile/reminders/goals documents merge against defaults so older
// rows stay readable.
func (u *User) ToDomain(logs []LogEntry) (*domain.User, error) {
	out := &domain.User{
		ID:         u.ID,
		TelegramID: u.TelegramID,
		Name:       u.Name,
		Profile:    domain.DefaultProfile(),
		Reminders:  []domain.Reminder{},
		Goals:      []domain.Goal{},
	}
	if len(u.Profile) > 0 {
		if err := json.Unmarshal(u.Profile, &out.Profile); err != nil {
			return nil, fmt.Errorf("failed to decode profile: %w", err)
		}
	}
	if len(u.Reminders) > 0 {
		if err := json.Unmarshal(u.Reminders, &out.Reminders); err != nil {
			return nil, fmt.Errorf("failed to decode reminders: %w", err)
		}
	}
	if len(u.Goals) > 0 {
		if err := json.Unmarshal(u.Goals, &out.Goals); err != nil {
			return nil, fmt.Errorf("failed to decode goals: %w", err)
		}
	}

	out.Logs = make([]domain.LogEntry, 0, len(logs))
	for _, row := range logs {
		entry, err := row.ToDomain()
		if err != nil {
			return nil, err
		}
		out.Logs = append(out.Logs, entry)
	}
	return out, nil
}

// ToDomain decodes the payload column into the payload struct matching the
// row's kind.
func (r *LogEntry) ToDomain() (domain.LogEntry, error) {
	entry := domain.LogEntry{
		ID:         r.ID,
		Timestamp:  r.Timestamp,
		JalaliDate: r.JalaliDate,
		TimeOfDay:  r.TimeOfDay,
		Kind:       domain.LogKind(r.Kind),
	}

	var target any
	switch entry.Kind {
	case domain.LogBloodSugar:
		entry.BloodSugar = &domain.BloodSugarLog{}
		target = entry.BloodSugar
	case domain.LogMeal:
		entry.Meal = &domain.MealLog{}
		target = entry.Meal
	case domain.LogActivity:
		entry.Activity = &domain.ActivityLog{}
		target = entry.Activity
	case domain.LogSleep:
		entry.Sleep = &domain.SleepLog{}
		target = entry.Sleep
	case domain.LogInsulin:
		entry.Insulin = &domain.InsulinLog{}
		target = entry.Insulin
	case domain.LogMood:
		entry.Mood = &domain.MoodLog{}
		target = entry.Mood
	case domain.LogMedication:
		entry.Medication = &domain.MedicationLog{}
		target = entry.Medication
	case domain.LogCondition:
		entry.Condition = &domain.ConditionLog{}
		target = entry.Condition
	default:
		return domain.LogEntry{}, fmt.Errorf("unknown log kind %q", r.Kind)
	}

	if len(r.Payload) > 0 {
		if err := json.Unmarshal(r.Payload, target); err != nil {
			return domain.LogEntry{}, fmt.Errorf("failed to decode %s payload: %w", r.Kind, err)
		}
	}
	return entry, nil
}

// LogEntryFromDomain converts a domain entry into a row for the given user.
func LogEntryFromDomain(userID string, e domain.LogEntry) (*LogEntry, error) {
	var payload any
	switch e.Kind {
	case domain.LogBloodSugar:
		if e.BloodSugar != nil {
			payload = e.BloodSugar
		}
	case domain.LogMeal:
		if e.Meal != nil {
			payload = e.Meal
		}
	case domain.LogActivity:
		if e.Activity != nil {
			payload = e.Activity
		}
	case domain.LogSleep:
		if e.Sleep != nil {
			payload = e.Sleep
		}
	case domain.LogInsulin:
		if e.Insulin != nil {
			payload = e.Insulin
		}
	case domain.LogMood:
		if e.Mood != nil {
			payload = e.Mood
		}
	case domain.LogMedication:
		if e.Medication != nil {
			payload = e.Medication
		}
	case domain.LogCondition:
		if e.Condition != nil {
			payload = e.Condition
		}
	default:
		return nil, fmt.Errorf("unknown log kind %q", e.Kind)
	}
	if payload == nil {
		return nil, fmt.Errorf("log entry %s has no %s payload", e.ID, e.Kind)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", e.Kind, err)
	}

	return &LogEntry{
		ID:         e.ID,
		UserID:     userID,
		Timestamp:  e.Timestamp,
		JalaliDate: e.JalaliDate,
		TimeOfDay:  e.TimeOfDay,
		Kind:       string(e.Kind),
		Payload:    data,
	}, nil
}
