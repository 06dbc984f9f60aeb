package metrics

import (
	"math"
	"time"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
)

// insulinActionWindow is the fixed duration over which a bolus is assumed to
// act. The decay over that window is linear. Real pharmacokinetic curves are
// non-linear; the dose-suggestion flow downstream is calibrated against this
// exact model, so the linear shape must be preserved.
const insulinActionWindow = 4 * time.Hour

// bolusDoseOf extracts the bolus-equivalent dose of an entry: any
// meal-attached dose, or an explicit bolus-type insulin entry. Basal doses
// do not contribute to IOB.
func bolusDoseOf(e domain.LogEntry) (string, bool) {
	switch e.Kind {
	case domain.LogMeal:
		if e.Meal != nil && e.Meal.InsulinDose != "" {
			return e.Meal.InsulinDose, true
		}
	case domain.LogInsulin:
		if e.Insulin != nil && e.Insulin.Type == domain.InsulinBolus {
			return e.Insulin.Dose, true
		}
	}
	return "", false
}

// CalculateIOB estimates the insulin still active at the reference instant,
// rounded to one decimal. Each bolus-equivalent dose inside the action
// window contributes dose*(1-elapsed/window); entries with unparseable or
// non-positive doses are skipped silently.
func CalculateIOB(user *domain.User, now time.Time) float64 {
	if user == nil {
		return 0
	}

	var total float64
	for _, e := range user.Logs {
		doseStr, ok := bolusDoseOf(e)
		if !ok {
			continue
		}
		dose := parseDose(doseStr)
		if dose == 0 {
			continue
		}

		elapsed := now.Sub(e.Timestamp)
		if elapsed < 0 || elapsed >= insulinActionWindow {
			continue
		}

		remaining := dose * (1 - float64(elapsed)/float64(insulinActionWindow))
		if remaining > 0 {
			total += remaining
		}
	}

	if total <= 0 {
		return 0
	}
	return math.Round(total*10) / 10
}
