package metrics

import (
	"time"

	"github.com/google/uuid"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
	"github.com/mehrnazbaharan/diabetes-companion/internal/jalali"
)

// Reference instant for all engine tests: 2024-06-21, i.e. 1403/04/01.
var testNow = time.Date(2024, time.June, 21, 14, 0, 0, 0, time.UTC)

func entryAt(ts time.Time, kind domain.LogKind) domain.LogEntry {
	return domain.LogEntry{
		ID:         uuid.NewString(),
		Timestamp:  ts,
		JalaliDate: jalali.Today(ts).String(),
		TimeOfDay:  ts.Format("15:04"),
		Kind:       kind,
	}
}

func bloodSugarEntry(ts time.Time, glucose string) domain.LogEntry {
	e := entryAt(ts, domain.LogBloodSugar)
	e.BloodSugar = &domain.BloodSugarLog{Glucose: glucose}
	return e
}

func insulinEntry(ts time.Time, typ domain.InsulinType, dose string) domain.LogEntry {
	e := entryAt(ts, domain.LogInsulin)
	e.Insulin = &domain.InsulinLog{Dose: dose, Type: typ}
	return e
}

func mealEntry(ts time.Time, carbs, insulinDose string) domain.LogEntry {
	e := entryAt(ts, domain.LogMeal)
	e.Meal = &domain.MealLog{Carbs: carbs, InsulinDose: insulinDose}
	return e
}

func activityEntry(ts time.Time, activityType, duration string) domain.LogEntry {
	e := entryAt(ts, domain.LogActivity)
	e.Activity = &domain.ActivityLog{ActivityType: activityType, Duration: duration}
	return e
}

func userWithLogs(logs ...domain.LogEntry) *domain.User {
	return &domain.User{
		ID:      uuid.NewString(),
		Name:    "test",
		Profile: domain.DefaultProfile(),
		Logs:    logs,
	}
}

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}
