package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
)

func TestCalculateTIR_InsufficientData(t *testing.T) {
	assert.Equal(t, domain.TIRPercentages{}, CalculateTIR(nil))
	assert.Equal(t, domain.TIRPercentages{},
		CalculateTIR([]domain.LogEntry{bloodSugarEntry(testNow, "120")}))

	// A second reading that does not parse leaves fewer than two usable
	// readings.
	assert.Equal(t, domain.TIRPercentages{}, CalculateTIR([]domain.LogEntry{
		bloodSugarEntry(testNow, "120"),
		bloodSugarEntry(testNow.Add(time.Hour), "high-ish"),
	}))
}

func TestCalculateTIR_StepFunctionUsesEarlierReading(t *testing.T) {
	// The earlier reading of a pair holds its band for the whole gap; the
	// final reading contributes nothing. A high first reading followed by a
	// normal one is therefore 100% high.
	logs := []domain.LogEntry{
		bloodSugarEntry(testNow.Add(-2*time.Hour), "200"),
		bloodSugarEntry(testNow, "120"),
	}
	assert.Equal(t, domain.TIRPercentages{Low: 0, Normal: 0, High: 100}, CalculateTIR(logs))
}

func TestCalculateTIR_Bands(t *testing.T) {
	// One hour in each band; boundary values 70 and 180 are both normal.
	base := testNow.Add(-4 * time.Hour)
	logs := []domain.LogEntry{
		bloodSugarEntry(base, "65"),                    // low for 1h
		bloodSugarEntry(base.Add(1*time.Hour), "70"),   // normal for 1h
		bloodSugarEntry(base.Add(2*time.Hour), "180"),  // normal for 1h
		bloodSugarEntry(base.Add(3*time.Hour), "181"),  // high for 1h
		bloodSugarEntry(base.Add(4*time.Hour), "9999"), // no pair follows
	}
	assert.Equal(t, domain.TIRPercentages{Low: 25, Normal: 50, High: 25}, CalculateTIR(logs))
}

func TestCalculateTIR_GapCappedAtFourHours(t *testing.T) {
	// A 20-hour gap counts as 4 hours, so the long stretch cannot dominate.
	base := testNow.Add(-24 * time.Hour)
	logs := []domain.LogEntry{
		bloodSugarEntry(base, "200"),                  // high, capped to 4h
		bloodSugarEntry(base.Add(20*time.Hour), "120"), // normal for 4h
		bloodSugarEntry(base.Add(24*time.Hour), "120"),
	}
	assert.Equal(t, domain.TIRPercentages{Low: 0, Normal: 50, High: 50}, CalculateTIR(logs))
}

func TestCalculateRecentTIR_ExcludesOldReadings(t *testing.T) {
	// Two-month-old highs must not leak into the trailing 30-day window. The
	// unwindowed aggregation counts them; the windowed one sees only the
	// recent in-range pair.
	logs := []domain.LogEntry{
		bloodSugarEntry(daysAgo(60), "300"),
		bloodSugarEntry(daysAgo(60).Add(2*time.Hour), "300"),
		bloodSugarEntry(testNow.Add(-2*time.Hour), "120"),
		bloodSugarEntry(testNow, "110"),
	}
	assert.Equal(t, domain.TIRPercentages{Low: 0, Normal: 100, High: 0},
		CalculateRecentTIR(logs, testNow))
	assert.Equal(t, 75, CalculateTIR(logs).High)
}

func TestCalculateRecentTIR_InsufficientRecentReadings(t *testing.T) {
	// Plenty of old readings but only one inside the window: not enough to
	// pair, so the result is unavailable rather than built on stale data.
	logs := []domain.LogEntry{
		bloodSugarEntry(daysAgo(45), "200"),
		bloodSugarEntry(daysAgo(44), "200"),
		bloodSugarEntry(testNow, "120"),
	}
	assert.Equal(t, domain.TIRPercentages{}, CalculateRecentTIR(logs, testNow))
}

func TestCalculateRecentTIR_WindowBoundaryInclusive(t *testing.T) {
	logs := []domain.LogEntry{
		bloodSugarEntry(daysAgo(30), "200"),
		bloodSugarEntry(daysAgo(30).Add(time.Hour), "200"),
	}
	assert.Equal(t, domain.TIRPercentages{Low: 0, Normal: 0, High: 100},
		CalculateRecentTIR(logs, testNow))
}

func TestCalculateTIR_UnsortedAndMixedInput(t *testing.T) {
	// Readings arrive unsorted and interleaved with other log kinds and
	// localized digits; the aggregation sorts and filters.
	logs := []domain.LogEntry{
		mealEntry(testNow.Add(-90*time.Minute), "30", "3"),
		bloodSugarEntry(testNow, "120"),
		bloodSugarEntry(testNow.Add(-2*time.Hour), "۲۰۰"),
	}
	assert.Equal(t, domain.TIRPercentages{Low: 0, Normal: 0, High: 100}, CalculateTIR(logs))
}
