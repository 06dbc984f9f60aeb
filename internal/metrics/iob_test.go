package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
)

func hoursAgo(h float64) time.Time {
	return testNow.Add(-time.Duration(h * float64(time.Hour)))
}

func TestCalculateIOB_LinearDecay(t *testing.T) {
	// 10 units two hours into the four-hour window: half remains.
	u := userWithLogs(insulinEntry(hoursAgo(2), domain.InsulinBolus, "10"))
	assert.InDelta(t, 5.0, CalculateIOB(u, testNow), 1e-9)

	// One hour in: three quarters remain.
	u = userWithLogs(insulinEntry(hoursAgo(1), domain.InsulinBolus, "10"))
	assert.InDelta(t, 7.5, CalculateIOB(u, testNow), 1e-9)
}

func TestCalculateIOB_FullyDecayed(t *testing.T) {
	u := userWithLogs(insulinEntry(hoursAgo(5), domain.InsulinBolus, "10"))
	assert.Zero(t, CalculateIOB(u, testNow))

	// Exactly at the window boundary nothing remains either.
	u = userWithLogs(insulinEntry(hoursAgo(4), domain.InsulinBolus, "10"))
	assert.Zero(t, CalculateIOB(u, testNow))
}

func TestCalculateIOB_SumsMealAndBolusDoses(t *testing.T) {
	u := userWithLogs(
		insulinEntry(hoursAgo(2), domain.InsulinBolus, "10"), // 5.0 left
		mealEntry(hoursAgo(1), "40", "4"),                    // 3.0 left
	)
	assert.InDelta(t, 8.0, CalculateIOB(u, testNow), 1e-9)
}

func TestCalculateIOB_IgnoresBasalAndBadDoses(t *testing.T) {
	u := userWithLogs(
		insulinEntry(hoursAgo(1), domain.InsulinBasal, "20"),
		insulinEntry(hoursAgo(1), domain.InsulinBolus, "lots"),
		insulinEntry(hoursAgo(1), domain.InsulinBolus, "-3"),
		bloodSugarEntry(hoursAgo(1), "140"),
	)
	assert.Zero(t, CalculateIOB(u, testNow))
}

func TestCalculateIOB_RoundsToOneDecimal(t *testing.T) {
	// 10 units at 75 minutes: 10 * (1 - 75/240) = 6.875 -> 6.9.
	u := userWithLogs(insulinEntry(testNow.Add(-75*time.Minute), domain.InsulinBolus, "10"))
	assert.InDelta(t, 6.9, CalculateIOB(u, testNow), 1e-9)
}

func TestCalculateIOB_NilUser(t *testing.T) {
	assert.Zero(t, CalculateIOB(nil, testNow))
}
