package metrics

import (
	"math"
	"time"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
)

// correctionFloor is the glucose level below which no correction dose is
// suggested: between target and this floor the hypoglycemia risk of an extra
// bolus outweighs the elevation.
const correctionFloor = 230

// activityLookback is how far back recent exercise still raises insulin
// sensitivity enough to warrant a caution.
const activityLookback = 3 * time.Hour

// SuggestCorrection computes a gated correction dose at the reference
// instant: (current-target)/ISF rounded to whole units. The gates run in
// order: no derivable ISF, already below target, then the safety floor.
// Caution flags fire on bolus-equivalent doses inside the insulin
// action window and on activity inside the lookback; they annotate the
// suggestion without altering it.
func SuggestCorrection(user *domain.User, current, target float64, now time.Time) domain.CorrectionSuggestion {
	factors := CalculateInsulinFactors(user, now)
	if factors.Source == domain.SourceNone || factors.ISF <= 0 {
		return domain.CorrectionSuggestion{Status: domain.CorrectionUnavailable}
	}
	if current < target {
		return domain.CorrectionSuggestion{Status: domain.CorrectionNotNeeded}
	}
	if current < correctionFloor {
		return domain.CorrectionSuggestion{Status: domain.CorrectionBelowFloor}
	}

	suggestion := domain.CorrectionSuggestion{
		Status: domain.CorrectionSuggested,
		Dose:   math.Round((current - target) / factors.ISF),
	}

	for _, e := range user.Logs {
		elapsed := now.Sub(e.Timestamp)
		if elapsed < 0 {
			continue
		}
		if _, ok := bolusDoseOf(e); ok && elapsed < insulinActionWindow {
			suggestion.RecentBolus = true
		}
		if e.Kind == domain.LogActivity && elapsed < activityLookback {
			suggestion.RecentActivity = true
		}
	}
	return suggestion
}
