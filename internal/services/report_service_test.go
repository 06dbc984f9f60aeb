package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
)

func TestDashboardRendersValues(t *testing.T) {
	svc := NewReportService()
	snapshot := &domain.MetricsSnapshot{
		Factors: domain.InsulinFactors{TDD: 10, ISF: 180, ICR: 50, Source: domain.SourceLogs},
		IOB:     2.5,
		Basal:   domain.DailyAverage{Value: 12, Source: domain.AverageFromLogs},
		Bolus:   domain.DailyAverage{Value: 5, Source: domain.AverageFromTDD},
	}

	text := svc.Dashboard(snapshot)
	assert.Contains(t, text, "TDD: 10.0 u/day")
	assert.Contains(t, text, "1 unit per 180 mg/dL")
	assert.Contains(t, text, "1 unit per 50 g carbs")
	assert.Contains(t, text, "Insulin on board: 2.5 u")
	assert.Contains(t, text, "Basal: 12.0 u/day")
	assert.Contains(t, text, "Bolus: 5.0 u/day (estimated from TDD)")
}

func TestDashboardNeverShowsZeroForUnavailable(t *testing.T) {
	svc := NewReportService()
	snapshot := &domain.MetricsSnapshot{
		Factors: domain.InsulinFactors{Source: domain.SourceNone},
		Basal:   domain.DailyAverage{Source: domain.AverageNone},
		Bolus:   domain.DailyAverage{Source: domain.AverageNone},
	}

	text := svc.Dashboard(snapshot)
	assert.Contains(t, text, "TDD: —")
	assert.Contains(t, text, "ISF: —")
	assert.Contains(t, text, "Basal: —")
	assert.NotContains(t, text, "TDD: 0")
}

func TestDashboardFlagsWeightEstimate(t *testing.T) {
	svc := NewReportService()
	snapshot := &domain.MetricsSnapshot{
		Factors: domain.InsulinFactors{TDD: 35, ISF: 51, ICR: 14, Source: domain.SourceWeight},
	}

	assert.Contains(t, svc.Dashboard(snapshot), "based on body weight")
}

func TestReportTIRSections(t *testing.T) {
	svc := NewReportService()

	withTIR := &domain.MetricsSnapshot{TIR: domain.TIRPercentages{Low: 5, Normal: 80, High: 15}}
	text := svc.Report(withTIR)
	assert.Contains(t, text, "Low (<70): 5%")
	assert.Contains(t, text, "In range (70-180): 80%")
	assert.Contains(t, text, "High (>180): 15%")

	noTIR := &domain.MetricsSnapshot{}
	assert.Contains(t, svc.Report(noTIR), "Not enough glucose readings")
}

func TestDashboardShowsA1CAndPhase(t *testing.T) {
	svc := NewReportService()
	snapshot := &domain.MetricsSnapshot{
		A1C:   domain.A1CEstimate{Value: 6.9, Valid: true},
		Phase: domain.HormonalPhase{Luteal: true},
	}

	text := svc.Dashboard(snapshot)
	assert.Contains(t, text, "Estimated A1C: 6.9%")
	assert.Contains(t, text, "Luteal phase")

	// Puberty takes precedence over the luteal note.
	snapshot.Phase.Puberty = true
	assert.Contains(t, svc.Dashboard(snapshot), "Puberty")

	empty := &domain.MetricsSnapshot{}
	text = svc.Dashboard(empty)
	assert.Contains(t, text, "Estimated A1C: —")
	assert.NotContains(t, text, "⚠️")
}

func TestReportShowsA1CAndPhase(t *testing.T) {
	svc := NewReportService()
	snapshot := &domain.MetricsSnapshot{
		A1C:   domain.A1CEstimate{Value: 7.2, Valid: true},
		Phase: domain.HormonalPhase{Puberty: true},
	}

	text := svc.Report(snapshot)
	assert.Contains(t, text, "Estimated A1C: 7.2%")
	assert.Contains(t, text, "Puberty")
}

func TestCorrectionRendering(t *testing.T) {
	svc := NewReportService()

	tests := []struct {
		name       string
		suggestion domain.CorrectionSuggestion
		contains   []string
		excludes   []string
	}{
		{
			"unavailable",
			domain.CorrectionSuggestion{Status: domain.CorrectionUnavailable},
			[]string{"cannot be derived"},
			[]string{"units"},
		},
		{
			"not needed",
			domain.CorrectionSuggestion{Status: domain.CorrectionNotNeeded},
			[]string{"below the target"},
			[]string{"units"},
		},
		{
			"below floor",
			domain.CorrectionSuggestion{Status: domain.CorrectionBelowFloor},
			[]string{"below 230 mg/dL"},
			[]string{"units"},
		},
		{
			"plain suggestion",
			domain.CorrectionSuggestion{Status: domain.CorrectionSuggested, Dose: 2},
			[]string{"Suggested correction dose: 2 units."},
			[]string{"⚠️"},
		},
		{
			"suggestion with cautions",
			domain.CorrectionSuggestion{Status: domain.CorrectionSuggested, Dose: 1, RecentBolus: true, RecentActivity: true},
			[]string{"1 units", "still active", "physical activity"},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := svc.Correction(tt.suggestion)
			for _, want := range tt.contains {
				assert.Contains(t, text, want)
			}
			for _, not := range tt.excludes {
				assert.NotContains(t, text, not)
			}
			assert.Contains(t, text, "not medical advice")
		})
	}
}

func TestContextSummaryEmbedsDerivedValues(t *testing.T) {
	svc := NewReportService()
	user := testUser()
	snapshot := snapshotOf(user)

	summary := svc.ContextSummary(user, &snapshot)
	assert.Contains(t, summary, "weight: 70 kg")
	assert.Contains(t, summary, "TDD: 10.0 u/day (source: logs)")
	assert.Contains(t, summary, "Time in range: 0% low, 100% in range, 0% high")
	assert.True(t, strings.Contains(summary, "Insulin on board: 0.0 u"))
}
