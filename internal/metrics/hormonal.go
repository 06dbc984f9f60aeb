// Package metrics is the derived-metrics engine: deterministic calculations
// that turn a user's log history and profile into insulin-dosing factors, an
// insulin-on-board estimate, time-in-range percentages and hormonal-phase
// risk adjustments. Every function is pure, stateless and total over its
// input: malformed input degrades to a typed "unavailable" result, never a
// panic, because a single bad log entry must not take down an aggregate over
// the whole history.
package metrics

import (
	"strconv"
	"time"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
	"github.com/mehrnazbaharan/diabetes-companion/internal/jalali"
	"github.com/mehrnazbaharan/diabetes-companion/internal/numerals"
)

// IsPubertyWindow reports whether the subject falls in the puberty age
// window: 9-17 for females, 11-19 for males. The bounds are a fixed clinical
// heuristic.
func IsPubertyWindow(age int, gender domain.Gender) bool {
	switch gender {
	case domain.GenderFemale:
		return age >= 9 && age <= 17
	case domain.GenderMale:
		return age >= 11 && age <= 19
	default:
		return false
	}
}

// IsLutealPhase reports whether the reference instant falls in the second
// half of the menstrual cycle. It applies only when the profile is female
// with a well-formed last-period anchor date and a positive cycle length;
// every other case is false, never an error.
func IsLutealPhase(profile domain.Profile, now time.Time) bool {
	if profile.Gender != domain.GenderFemale ||
		profile.LastPeriodStartDate == "" || profile.CycleLength == "" {
		return false
	}

	cycleLength, err := strconv.Atoi(numerals.Normalize(profile.CycleLength))
	if err != nil || cycleLength <= 0 {
		return false
	}

	anchor, ok := jalali.ParseDate(profile.LastPeriodStartDate)
	if !ok {
		return false
	}

	elapsed, ok := jalali.DaysBetween(anchor, jalali.Today(now))
	if !ok {
		return false
	}

	// Luteal is the second half, midpoint excluded.
	dayInCycle := elapsed % cycleLength
	return 2*dayInCycle > cycleLength
}

// EvaluatePhase combines the puberty and luteal checks into the indicator
// surfaced next to the derived factors.
func EvaluatePhase(profile domain.Profile, now time.Time) domain.HormonalPhase {
	phase := domain.HormonalPhase{Luteal: IsLutealPhase(profile, now)}
	if age, ok := jalali.Age(profile.BirthDate, now); ok {
		phase.Puberty = IsPubertyWindow(age, profile.Gender)
	}
	return phase
}

// AgeAdjustmentFactor scales insulin-need estimates for age and puberty:
// 1.25 flat inside the puberty window, a 0.5%-per-year increase after age 40
// capped at 1.4, and 1.0 otherwise. An unknown age or gender yields 1.0.
func AgeAdjustmentFactor(profile domain.Profile, now time.Time) float64 {
	age, ok := jalali.Age(profile.BirthDate, now)
	if !ok || age == 0 || profile.Gender == "" {
		return 1.0
	}

	if IsPubertyWindow(age, profile.Gender) {
		return 1.25
	}

	if age > 40 {
		adjustment := 1.0 + float64(age-40)*0.005
		if adjustment > 1.4 {
			return 1.4
		}
		return adjustment
	}

	return 1.0
}
