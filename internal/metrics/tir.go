package metrics

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
	"github.com/mehrnazbaharan/diabetes-companion/internal/numerals"
)

// Glucose band thresholds in mg/dL. The normal band includes both
// boundaries.
const (
	glucoseLowBound  = 70
	glucoseHighBound = 180
)

// maxBandGap caps the duration attributed to a single reading so one long
// sampling gap cannot dominate the percentages.
const maxBandGap = 4 * time.Hour

// tirWindowDays is the trailing window reports aggregate over.
const tirWindowDays = 30

type glucoseReading struct {
	at    time.Time
	value float64
}

// CalculateTIR converts a sparse glucose log into time-weighted percentages
// in the low/normal/high bands. The interpolation is a step function: each
// reading's band holds until the next reading, capped at four hours, and the
// final reading contributes nothing because no pair follows it. Fewer than
// two parseable readings yields all zeros. Percentages are rounded per band,
// so they can sum to 99-101.
func CalculateTIR(logs []domain.LogEntry) domain.TIRPercentages {
	var readings []glucoseReading
	for _, e := range logs {
		if e.Kind != domain.LogBloodSugar || e.BloodSugar == nil || e.BloodSugar.Glucose == "" {
			continue
		}
		v, err := strconv.ParseFloat(numerals.Normalize(e.BloodSugar.Glucose), 64)
		if err != nil {
			continue
		}
		readings = append(readings, glucoseReading{at: e.Timestamp, value: v})
	}

	if len(readings) < 2 {
		return domain.TIRPercentages{}
	}

	sort.Slice(readings, func(i, j int) bool {
		return readings[i].at.Before(readings[j].at)
	})

	var low, normal, high time.Duration
	for i := 0; i < len(readings)-1; i++ {
		gap := readings[i+1].at.Sub(readings[i].at)
		if gap > maxBandGap {
			gap = maxBandGap
		}
		switch {
		case readings[i].value < glucoseLowBound:
			low += gap
		case readings[i].value > glucoseHighBound:
			high += gap
		default:
			normal += gap
		}
	}

	total := low + normal + high
	if total == 0 {
		return domain.TIRPercentages{}
	}

	pct := func(d time.Duration) int {
		return int(math.Round(float64(d) / float64(total) * 100))
	}
	return domain.TIRPercentages{Low: pct(low), Normal: pct(normal), High: pct(high)}
}

// CalculateRecentTIR restricts the aggregation to the trailing 30 days so
// old history cannot skew the reported distribution.
func CalculateRecentTIR(logs []domain.LogEntry, now time.Time) domain.TIRPercentages {
	cutoff := now.AddDate(0, 0, -tirWindowDays)
	recent := make([]domain.LogEntry, 0, len(logs))
	for _, e := range logs {
		if !e.Timestamp.Before(cutoff) {
			recent = append(recent, e)
		}
	}
	return CalculateTIR(recent)
}
