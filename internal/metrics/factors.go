package metrics

import (
	"strconv"
	"time"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
	"github.com/mehrnazbaharan/diabetes-companion/internal/numerals"
)

// insulinWindowDays is the trailing window used for log-derived TDD and the
// basal/bolus daily averages.
const insulinWindowDays = 14

// The 1800/500 rule constants relating total daily dose to sensitivity
// (mg/dL per unit) and carb coverage (grams per unit).
const (
	isfRuleConstant = 1800
	icrRuleConstant = 500
)

// parseDose normalizes and parses a display-locale dose string. Returns 0
// for anything unparseable or non-positive; absent and malformed doses are
// skipped by callers, not counted as zero-dose entries.
func parseDose(s string) float64 {
	if s == "" {
		return 0
	}
	dose, err := strconv.ParseFloat(numerals.Normalize(s), 64)
	if err != nil || dose <= 0 {
		return 0
	}
	return dose
}

// insulinDoseOf extracts the insulin dose carried by an entry, regardless of
// insulin type: meal entries with a recorded dose and explicit insulin
// entries both qualify.
func insulinDoseOf(e domain.LogEntry) (string, bool) {
	switch e.Kind {
	case domain.LogMeal:
		if e.Meal != nil && e.Meal.InsulinDose != "" {
			return e.Meal.InsulinDose, true
		}
	case domain.LogInsulin:
		if e.Insulin != nil {
			return e.Insulin.Dose, true
		}
	}
	return "", false
}

// CalculateInsulinFactors derives TDD, ISF and ICR for one user at the
// reference instant. TDD comes from the trailing 14 days of insulin-bearing
// logs (per-day sums averaged over days that have data), falling back to
// weight/2 units, and finally to an all-zero SourceNone result that callers
// must render as unavailable. ISF and ICR apply the age adjustment; the
// returned TDD deliberately does not.
func CalculateInsulinFactors(user *domain.User, now time.Time) domain.InsulinFactors {
	unavailable := domain.InsulinFactors{Source: domain.SourceNone}
	if user == nil {
		return unavailable
	}

	cutoff := now.AddDate(0, 0, -insulinWindowDays)
	dailyTotals := make(map[string]float64)
	for _, e := range user.Logs {
		if e.Timestamp.Before(cutoff) {
			continue
		}
		doseStr, ok := insulinDoseOf(e)
		if !ok {
			continue
		}
		if dose := parseDose(doseStr); dose > 0 {
			dailyTotals[e.JalaliDate] += dose
		}
	}

	var tdd float64
	source := domain.SourceNone

	if len(dailyTotals) > 0 {
		var sum float64
		for _, dayTotal := range dailyTotals {
			sum += dayTotal
		}
		if avg := sum / float64(len(dailyTotals)); avg > 0 {
			tdd = avg
			source = domain.SourceLogs
		}
	}

	if tdd == 0 {
		if weight := parseDose(user.Profile.Weight); weight > 0 {
			tdd = weight / 2
			source = domain.SourceWeight
		}
	}

	if tdd == 0 {
		return unavailable
	}

	adjustedTDD := tdd * AgeAdjustmentFactor(user.Profile, now)
	return domain.InsulinFactors{
		TDD:    tdd,
		ISF:    isfRuleConstant / adjustedTDD,
		ICR:    icrRuleConstant / adjustedTDD,
		Source: source,
	}
}
