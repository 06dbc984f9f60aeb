package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
)

func TestCalculateInsulinFactors_FromLogs(t *testing.T) {
	// Three distinct days each summing to 10 units: TDD=10, and with no age
	// adjustment the 1800/500 rule gives ISF=180, ICR=50.
	u := userWithLogs(
		insulinEntry(daysAgo(1), domain.InsulinBolus, "4"),
		insulinEntry(daysAgo(1), domain.InsulinBasal, "6"),
		mealEntry(daysAgo(2), "45", "10"),
		insulinEntry(daysAgo(3), domain.InsulinBolus, "10"),
	)

	got := CalculateInsulinFactors(u, testNow)
	assert.Equal(t, domain.SourceLogs, got.Source)
	assert.InDelta(t, 10.0, got.TDD, 1e-9)
	assert.InDelta(t, 180.0, got.ISF, 1e-9)
	assert.InDelta(t, 50.0, got.ICR, 1e-9)
}

func TestCalculateInsulinFactors_DaysWithoutDataExcluded(t *testing.T) {
	// Two logged days out of fourteen: the denominator is 2, not 14.
	u := userWithLogs(
		insulinEntry(daysAgo(1), domain.InsulinBolus, "12"),
		insulinEntry(daysAgo(8), domain.InsulinBolus, "8"),
	)

	got := CalculateInsulinFactors(u, testNow)
	assert.Equal(t, domain.SourceLogs, got.Source)
	assert.InDelta(t, 10.0, got.TDD, 1e-9)
}

func TestCalculateInsulinFactors_WindowExcludesOldLogs(t *testing.T) {
	u := userWithLogs(
		insulinEntry(daysAgo(20), domain.InsulinBolus, "50"),
	)
	got := CalculateInsulinFactors(u, testNow)
	assert.Equal(t, domain.SourceNone, got.Source)
}

func TestCalculateInsulinFactors_LocalizedDoses(t *testing.T) {
	u := userWithLogs(
		insulinEntry(daysAgo(1), domain.InsulinBolus, "۱۰"),
	)
	got := CalculateInsulinFactors(u, testNow)
	assert.Equal(t, domain.SourceLogs, got.Source)
	assert.InDelta(t, 10.0, got.TDD, 1e-9)
}

func TestCalculateInsulinFactors_WeightFallback(t *testing.T) {
	u := userWithLogs()
	u.Profile.Weight = "70"

	got := CalculateInsulinFactors(u, testNow)
	assert.Equal(t, domain.SourceWeight, got.Source)
	assert.InDelta(t, 35.0, got.TDD, 1e-9)
	assert.InDelta(t, 1800.0/35.0, got.ISF, 1e-9)
	assert.InDelta(t, 500.0/35.0, got.ICR, 1e-9)
}

func TestCalculateInsulinFactors_Unavailable(t *testing.T) {
	tests := []struct {
		name string
		user *domain.User
	}{
		{"nil user", nil},
		{"no logs no weight", userWithLogs()},
		{"malformed weight", func() *domain.User {
			u := userWithLogs()
			u.Profile.Weight = "heavy"
			return u
		}()},
		{"negative weight", func() *domain.User {
			u := userWithLogs()
			u.Profile.Weight = "-70"
			return u
		}()},
		{"only malformed doses", userWithLogs(
			insulinEntry(daysAgo(1), domain.InsulinBolus, "ten"),
			mealEntry(daysAgo(2), "30", "0"),
		)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateInsulinFactors(tt.user, testNow)
			assert.Equal(t, domain.InsulinFactors{Source: domain.SourceNone}, got)
		})
	}
}

func TestCalculateInsulinFactors_AdjustmentAppliesToRatiosOnly(t *testing.T) {
	// Age 50 gives a 1.05 adjustment: the returned TDD stays raw while ISF
	// and ICR divide by the adjusted value.
	u := userWithLogs(
		insulinEntry(daysAgo(1), domain.InsulinBolus, "10"),
	)
	u.Profile.BirthDate = birthDateForAge(50)
	u.Profile.Gender = domain.GenderMale

	got := CalculateInsulinFactors(u, testNow)
	assert.InDelta(t, 10.0, got.TDD, 1e-9)
	assert.InDelta(t, 1800.0/10.5, got.ISF, 1e-9)
	assert.InDelta(t, 500.0/10.5, got.ICR, 1e-9)
}
