package metrics

import (
	"math"
	"strconv"
	"time"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
	"github.com/mehrnazbaharan/diabetes-companion/internal/numerals"
)

// a1cWindowDays is the trailing window the A1C estimate averages over,
// matching the roughly three-month lifespan of a red blood cell.
const a1cWindowDays = 90

// EstimatedA1C converts the 90-day mean glucose into an estimated A1C
// percentage using the ADAG regression (mean = 28.7*A1C - 46.7), rounded to
// one decimal. No readings in the window yields an invalid estimate.
func EstimatedA1C(logs []domain.LogEntry, now time.Time) domain.A1CEstimate {
	cutoff := now.AddDate(0, 0, -a1cWindowDays)

	var sum float64
	var count int
	for _, e := range logs {
		if e.Kind != domain.LogBloodSugar || e.BloodSugar == nil || e.BloodSugar.Glucose == "" {
			continue
		}
		if e.Timestamp.Before(cutoff) {
			continue
		}
		v, err := strconv.ParseFloat(numerals.Normalize(e.BloodSugar.Glucose), 64)
		if err != nil {
			continue
		}
		sum += v
		count++
	}

	if count == 0 {
		return domain.A1CEstimate{}
	}

	avg := sum / float64(count)
	value := (avg + 46.7) / 28.7
	return domain.A1CEstimate{Value: math.Round(value*10) / 10, Valid: true}
}
