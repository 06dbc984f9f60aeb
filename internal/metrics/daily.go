package metrics

import (
	"time"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
)

// AverageDaily computes a per-day dose average over the trailing window.
// doseOf selects the entries that participate and yields their dose string;
// doses are summed per calendar-date grouping key and averaged across days
// that actually have data, so a day without logs shrinks the denominator
// instead of dragging the average down.
func AverageDaily(logs []domain.LogEntry, doseOf func(domain.LogEntry) (string, bool), windowDays int, now time.Time) domain.DailyAverage {
	cutoff := now.AddDate(0, 0, -windowDays)
	dailyTotals := make(map[string]float64)
	for _, e := range logs {
		if e.Timestamp.Before(cutoff) {
			continue
		}
		doseStr, ok := doseOf(e)
		if !ok {
			continue
		}
		if dose := parseDose(doseStr); dose > 0 {
			dailyTotals[e.JalaliDate] += dose
		}
	}

	if len(dailyTotals) == 0 {
		return domain.DailyAverage{Source: domain.AverageNone}
	}

	var sum float64
	for _, dayTotal := range dailyTotals {
		sum += dayTotal
	}
	avg := sum / float64(len(dailyTotals))
	if avg <= 0 {
		return domain.DailyAverage{Source: domain.AverageNone}
	}
	return domain.DailyAverage{Value: avg, Source: domain.AverageFromLogs}
}

func basalDoseOf(e domain.LogEntry) (string, bool) {
	if e.Kind == domain.LogInsulin && e.Insulin != nil && e.Insulin.Type == domain.InsulinBasal {
		return e.Insulin.Dose, true
	}
	return "", false
}

// InsulinEstimates derives the daily basal and bolus averages over the
// 14-day window. When a side has no log-derived estimate it falls back to
// half the TDD from CalculateInsulinFactors, each side independently. The
// 50/50 split is a placeholder heuristic and is preserved as such.
func InsulinEstimates(user *domain.User, now time.Time) (basal, bolus domain.DailyAverage) {
	basal = domain.DailyAverage{Source: domain.AverageNone}
	bolus = domain.DailyAverage{Source: domain.AverageNone}
	if user == nil {
		return basal, bolus
	}

	basal = AverageDaily(user.Logs, basalDoseOf, insulinWindowDays, now)
	bolus = AverageDaily(user.Logs, bolusDoseOf, insulinWindowDays, now)

	if factors := CalculateInsulinFactors(user, now); factors.TDD > 0 {
		if basal.Value == 0 {
			basal = domain.DailyAverage{Value: factors.TDD * 0.5, Source: domain.AverageFromTDD}
		}
		if bolus.Value == 0 {
			bolus = domain.DailyAverage{Value: factors.TDD * 0.5, Source: domain.AverageFromTDD}
		}
	}
	return basal, bolus
}
