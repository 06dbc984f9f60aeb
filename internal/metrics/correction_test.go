package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
)

// userWithISF builds a user whose sensitivity comes from weight alone:
// weight 20 gives TDD 10 and ISF 180.
func userWithISF(logs ...domain.LogEntry) *domain.User {
	u := userWithLogs(logs...)
	u.Profile.Weight = "20"
	return u
}

func TestSuggestCorrection_UnavailableWithoutISF(t *testing.T) {
	// No insulin logs and no weight means no derivable sensitivity factor.
	got := SuggestCorrection(userWithLogs(), 300, 120, testNow)
	assert.Equal(t, domain.CorrectionSuggestion{Status: domain.CorrectionUnavailable}, got)
}

func TestSuggestCorrection_Gates(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		target  float64
		want    domain.CorrectionStatus
	}{
		{"below target", 100, 120, domain.CorrectionNotNeeded},
		{"exactly at target", 120, 120, domain.CorrectionBelowFloor},
		{"elevated but under the floor", 229, 120, domain.CorrectionBelowFloor},
		{"at the floor", 230, 120, domain.CorrectionSuggested},
		{"well above the floor", 300, 120, domain.CorrectionSuggested},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestCorrection(userWithISF(), tt.current, tt.target, testNow)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestSuggestCorrection_DoseRounding(t *testing.T) {
	// 300-120 over ISF 180 is exactly one unit.
	got := SuggestCorrection(userWithISF(), 300, 120, testNow)
	assert.Equal(t, domain.CorrectionSuggested, got.Status)
	assert.Equal(t, 1.0, got.Dose)

	// 250-120 over 180 is 0.72, rounded up to one unit.
	assert.Equal(t, 1.0, SuggestCorrection(userWithISF(), 250, 120, testNow).Dose)

	// 480-120 over 180 is exactly two units.
	assert.Equal(t, 2.0, SuggestCorrection(userWithISF(), 480, 120, testNow).Dose)
}

func TestSuggestCorrection_CautionFlags(t *testing.T) {
	tests := []struct {
		name         string
		logs         []domain.LogEntry
		wantBolus    bool
		wantActivity bool
	}{
		{
			"bolus inside the action window",
			[]domain.LogEntry{insulinEntry(testNow.Add(-2*time.Hour), domain.InsulinBolus, "4")},
			true, false,
		},
		{
			"bolus past the action window",
			[]domain.LogEntry{insulinEntry(testNow.Add(-5*time.Hour), domain.InsulinBolus, "4")},
			false, false,
		},
		{
			"recent basal is not a bolus",
			[]domain.LogEntry{insulinEntry(testNow.Add(-time.Hour), domain.InsulinBasal, "12")},
			false, false,
		},
		{
			"meal-attached dose counts as bolus",
			[]domain.LogEntry{mealEntry(testNow.Add(-time.Hour), "45", "5")},
			true, false,
		},
		{
			"activity inside the lookback",
			[]domain.LogEntry{activityEntry(testNow.Add(-time.Hour), "running", "30")},
			false, true,
		},
		{
			"activity past the lookback",
			[]domain.LogEntry{activityEntry(testNow.Add(-4*time.Hour), "running", "30")},
			false, false,
		},
		{
			"future-dated entries are ignored",
			[]domain.LogEntry{
				insulinEntry(testNow.Add(time.Hour), domain.InsulinBolus, "4"),
				activityEntry(testNow.Add(time.Hour), "running", "30"),
			},
			false, false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestCorrection(userWithISF(tt.logs...), 400, 120, testNow)
			assert.Equal(t, domain.CorrectionSuggested, got.Status)
			assert.Equal(t, tt.wantBolus, got.RecentBolus)
			assert.Equal(t, tt.wantActivity, got.RecentActivity)
		})
	}
}

func TestSuggestCorrection_WarningsDoNotAlterDose(t *testing.T) {
	// A recent bolus raises the caution flag; the suggested dose itself stays
	// the plain (current-target)/ISF rounding.
	u := userWithISF(insulinEntry(testNow.Add(-time.Hour), domain.InsulinBolus, "10"))
	// The logged dose now drives the TDD: 10 units today gives ISF 180 too.
	got := SuggestCorrection(u, 300, 120, testNow)
	assert.Equal(t, domain.CorrectionSuggested, got.Status)
	assert.True(t, got.RecentBolus)
	assert.Equal(t, 1.0, got.Dose)
}
