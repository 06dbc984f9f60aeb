package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
	"github.com/mehrnazbaharan/diabetes-companion/internal/metrics"
)

// userLoader is the slice of the user repository the metrics service needs.
type userLoader interface {
	GetByID(ctx context.Context, userID string) (*domain.User, error)
}

// MetricsService recomputes derived metrics from the stored aggregate. The
// calculations themselves live in the metrics package and are pure; this
// service only loads state and hands it over.
type MetricsService struct {
	users userLoader
}

func NewMetricsService(users userLoader) *MetricsService {
	return &MetricsService{users: users}
}

// Snapshot loads the user and recomputes every derived metric at now.
func (s *MetricsService) Snapshot(ctx context.Context, userID string, now time.Time) (*domain.MetricsSnapshot, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for metrics: %w", err)
	}

	basal, bolus := metrics.InsulinEstimates(user, now)
	return &domain.MetricsSnapshot{
		Factors: metrics.CalculateInsulinFactors(user, now),
		IOB:     metrics.CalculateIOB(user, now),
		TIR:     metrics.CalculateRecentTIR(user.Logs, now),
		Basal:   basal,
		Bolus:   bolus,
		A1C:     metrics.EstimatedA1C(user.Logs, now),
		Phase:   metrics.EvaluatePhase(user.Profile, now),
	}, nil
}

// SuggestCorrection loads the user and runs the gated correction-dose
// calculation for the given current and target glucose.
func (s *MetricsService) SuggestCorrection(ctx context.Context, userID string, current, target float64, now time.Time) (domain.CorrectionSuggestion, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.CorrectionSuggestion{}, fmt.Errorf("failed to load user for correction dose: %w", err)
	}
	return metrics.SuggestCorrection(user, current, target, now), nil
}
