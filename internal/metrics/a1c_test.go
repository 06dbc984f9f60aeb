package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
)

func TestEstimatedA1C_NoReadings(t *testing.T) {
	assert.Equal(t, domain.A1CEstimate{}, EstimatedA1C(nil, testNow))
	assert.Equal(t, domain.A1CEstimate{}, EstimatedA1C([]domain.LogEntry{
		mealEntry(daysAgo(1), "30", "3"),
	}, testNow))
}

func TestEstimatedA1C_MeanThroughRegression(t *testing.T) {
	// Mean 150 mg/dL maps to (150+46.7)/28.7 = 6.85, rounded to 6.9.
	logs := []domain.LogEntry{
		bloodSugarEntry(daysAgo(10), "120"),
		bloodSugarEntry(daysAgo(5), "180"),
	}
	assert.Equal(t, domain.A1CEstimate{Value: 6.9, Valid: true}, EstimatedA1C(logs, testNow))
}

func TestEstimatedA1C_SingleReading(t *testing.T) {
	logs := []domain.LogEntry{bloodSugarEntry(daysAgo(1), "120")}
	assert.Equal(t, domain.A1CEstimate{Value: 5.8, Valid: true}, EstimatedA1C(logs, testNow))
}

func TestEstimatedA1C_WindowAndFiltering(t *testing.T) {
	// Readings older than 90 days, unparseable values and localized digits.
	logs := []domain.LogEntry{
		bloodSugarEntry(daysAgo(120), "400"),
		bloodSugarEntry(daysAgo(10), "high"),
		bloodSugarEntry(daysAgo(5), "۱۲۰"),
		bloodSugarEntry(daysAgo(2), "180"),
	}
	assert.Equal(t, domain.A1CEstimate{Value: 6.9, Valid: true}, EstimatedA1C(logs, testNow))
}
