package services

import (
	"fmt"
	"strings"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
)

const unavailable = "—"

// ReportService renders engine outputs as text. Unavailable values show as a
// dash, never as zero: a user who logged nothing must not read "TDD: 0".
type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

func formatUnits(v float64) string {
	return fmt.Sprintf("%.1f u", v)
}

func (s *ReportService) factorLines(f domain.InsulinFactors) []string {
	if f.Source == domain.SourceNone {
		return []string{
			"TDD: " + unavailable,
			"ISF: " + unavailable,
			"Carb ratio: " + unavailable,
		}
	}
	lines := []string{
		fmt.Sprintf("TDD: %s/day", formatUnits(f.TDD)),
		fmt.Sprintf("ISF: 1 unit per %.0f mg/dL", f.ISF),
		fmt.Sprintf("Carb ratio: 1 unit per %.0f g carbs", f.ICR),
	}
	if f.Source == domain.SourceWeight {
		lines = append(lines, "Estimates based on body weight; log insulin doses for personalized values.")
	}
	return lines
}

func (s *ReportService) averageLine(label string, avg domain.DailyAverage) string {
	if avg.Source == domain.AverageNone {
		return label + ": " + unavailable
	}
	line := fmt.Sprintf("%s: %s/day", label, formatUnits(avg.Value))
	if avg.Source == domain.AverageFromTDD {
		line += " (estimated from TDD)"
	}
	return line
}

func tirAvailable(tir domain.TIRPercentages) bool {
	return tir.Low+tir.Normal+tir.High > 0
}

func a1cLine(a1c domain.A1CEstimate) string {
	if !a1c.Valid {
		return "Estimated A1C: " + unavailable
	}
	return fmt.Sprintf("Estimated A1C: %.1f%%", a1c.Value)
}

func phaseNote(phase domain.HormonalPhase) string {
	switch {
	case phase.Puberty:
		return "⚠️ Puberty: insulin needs are typically higher in this period."
	case phase.Luteal:
		return "⚠️ Luteal phase: insulin sensitivity may be reduced in the second half of the cycle."
	default:
		return ""
	}
}

// Dashboard renders the quick overview shown from the main menu.
func (s *ReportService) Dashboard(snapshot *domain.MetricsSnapshot) string {
	var b strings.Builder
	b.WriteString("📊 Dashboard\n\n")
	for _, line := range s.factorLines(snapshot.Factors) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(fmt.Sprintf("Insulin on board: %.1f u\n", snapshot.IOB))
	b.WriteString(a1cLine(snapshot.A1C))
	b.WriteByte('\n')
	b.WriteString(s.averageLine("Basal", snapshot.Basal))
	b.WriteByte('\n')
	b.WriteString(s.averageLine("Bolus", snapshot.Bolus))
	if note := phaseNote(snapshot.Phase); note != "" {
		b.WriteString("\n\n")
		b.WriteString(note)
	}
	return b.String()
}

// Report renders the full report with time-in-range percentages.
func (s *ReportService) Report(snapshot *domain.MetricsSnapshot) string {
	var b strings.Builder
	b.WriteString("📋 Report\n\n")
	b.WriteString("Time in range (last 30 days):\n")
	if tirAvailable(snapshot.TIR) {
		b.WriteString(fmt.Sprintf("  Low (<70): %d%%\n", snapshot.TIR.Low))
		b.WriteString(fmt.Sprintf("  In range (70-180): %d%%\n", snapshot.TIR.Normal))
		b.WriteString(fmt.Sprintf("  High (>180): %d%%\n", snapshot.TIR.High))
	} else {
		b.WriteString("  Not enough glucose readings yet.\n")
	}
	b.WriteByte('\n')
	for _, line := range s.factorLines(snapshot.Factors) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(a1cLine(snapshot.A1C))
	b.WriteByte('\n')
	b.WriteString(s.averageLine("Basal", snapshot.Basal))
	b.WriteByte('\n')
	b.WriteString(s.averageLine("Bolus", snapshot.Bolus))
	if note := phaseNote(snapshot.Phase); note != "" {
		b.WriteString("\n\n")
		b.WriteString(note)
	}
	return b.String()
}

// Correction renders a correction-dose suggestion with its safety messages.
func (s *ReportService) Correction(suggestion domain.CorrectionSuggestion) string {
	var b strings.Builder
	switch suggestion.Status {
	case domain.CorrectionUnavailable:
		b.WriteString("Your sensitivity factor cannot be derived yet. Log insulin doses or set your weight in the profile first.")
	case domain.CorrectionNotNeeded:
		b.WriteString("Your glucose is below the target. No correction dose is needed.")
	case domain.CorrectionBelowFloor:
		b.WriteString("Your glucose is elevated but below 230 mg/dL. A correction dose may risk hypoglycemia; try water and a short walk instead.")
	case domain.CorrectionSuggested:
		b.WriteString(fmt.Sprintf("Suggested correction dose: %.0f units.", suggestion.Dose))
		if suggestion.RecentBolus {
			b.WriteString("\n⚠️ Insulin injected in the last 4 hours is still active. Use caution.")
		}
		if suggestion.RecentActivity {
			b.WriteString("\n⚠️ Recent physical activity can increase insulin sensitivity.")
		}
	}
	b.WriteString("\n\nThis is reference information, not medical advice.")
	return b.String()
}

// ContextSummary builds the numeric context embedded in AI analysis prompts.
// The model receives the derived values as plain text and is never asked to
// recompute them.
func (s *ReportService) ContextSummary(user *domain.User, snapshot *domain.MetricsSnapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Patient: %s", user.Name)
	if user.Profile.DiabetesType != "" {
		fmt.Fprintf(&b, ", diabetes type: %s", user.Profile.DiabetesType)
	}
	if user.Profile.Weight != "" {
		fmt.Fprintf(&b, ", weight: %s kg", user.Profile.Weight)
	}
	b.WriteByte('\n')

	if snapshot.Factors.Source != domain.SourceNone {
		fmt.Fprintf(&b, "TDD: %.1f u/day (source: %s), ISF: %.0f mg/dL per unit, carb ratio: %.0f g per unit\n",
			snapshot.Factors.TDD, snapshot.Factors.Source, snapshot.Factors.ISF, snapshot.Factors.ICR)
	} else {
		b.WriteString("TDD: " + unavailable + ", ISF: " + unavailable + ", carb ratio: " + unavailable + "\n")
	}

	if tirAvailable(snapshot.TIR) {
		fmt.Fprintf(&b, "Time in range: %d%% low, %d%% in range, %d%% high\n",
			snapshot.TIR.Low, snapshot.TIR.Normal, snapshot.TIR.High)
	} else {
		b.WriteString("Time in range: " + unavailable + "\n")
	}

	fmt.Fprintf(&b, "Insulin on board: %.1f u\n", snapshot.IOB)
	return b.String()
}
