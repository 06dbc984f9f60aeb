package domain

import (
	"context"
	"time"
)

// UserService handles user registration and profile maintenance.
type UserService interface {
	RegisterUser(ctx context.Context, telegramID int64, name string) (*User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*User, error)
	UpdateProfile(ctx context.Context, userID string, profile Profile) error
}

// LogbookService handles log entry CRUD. Entries are edited in place: the id
// is preserved, the fields are replaced and the timestamp is reset to the
// edit time.
type LogbookService interface {
	AddEntry(ctx context.Context, userID string, entry LogEntry) (*LogEntry, error)
	UpdateEntry(ctx context.Context, userID string, entry LogEntry) error
	DeleteEntry(ctx context.Context, userID, entryID string) error
	ListEntries(ctx context.Context, userID string, since time.Time) ([]LogEntry, error)
}

// MetricsService recomputes the derived metrics for one user at a reference
// instant.
type MetricsService interface {
	Snapshot(ctx context.Context, userID string, now time.Time) (*MetricsSnapshot, error)
	SuggestCorrection(ctx context.Context, userID string, current, target float64, now time.Time) (CorrectionSuggestion, error)
}

// CarbEstimate is the structured result of a food photo analysis.
type CarbEstimate struct {
	FoodItems    []string `json:"food_items"`
	Carbs        float64  `json:"carbs"`
	Confidence   string   `json:"confidence"`
	AnalysisText string   `json:"analysis_text"`
}

// AIService is the opaque remote collaborator. Callers embed the derived
// numeric context into the summary string; responses are free text or
// structured JSON and are never trusted numerically beyond basic range
// checks.
type AIService interface {
	AnalyzeLogs(ctx context.Context, contextSummary string) (string, error)
	EstimateCarbs(ctx context.Context, imageURL string, weight float64) (*CarbEstimate, error)
}

// BotService runs the telegram front end.
type BotService interface {
	Start(ctx context.Context) error
}
