package domain

import (
	"time"
)

// Gender of the profile subject. The empty value means "not provided".
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// DiabetesType as selected in the profile.
type DiabetesType string

const (
	DiabetesType1       DiabetesType = "type1"
	DiabetesType2       DiabetesType = "type2"
	DiabetesGestational DiabetesType = "gestational"
	DiabetesOther       DiabetesType = "other"
)

// InjectionSite for insulin doses.
type InjectionSite string

const (
	SiteAbdomen  InjectionSite = "abdomen"
	SiteArm      InjectionSite = "arm"
	SiteLeg      InjectionSite = "leg"
	SiteButtocks InjectionSite = "buttocks"
)

// InsulinType distinguishes long-acting basal doses from mealtime boluses.
type InsulinType string

const (
	InsulinBasal InsulinType = "basal"
	InsulinBolus InsulinType = "bolus"
)

// LogKind discriminates the log entry variants.
type LogKind string

const (
	LogBloodSugar LogKind = "bloodSugar"
	LogMeal       LogKind = "meal"
	LogActivity   LogKind = "activity"
	LogSleep      LogKind = "sleep"
	LogInsulin    LogKind = "insulin"
	LogMood       LogKind = "mood"
	LogMedication LogKind = "medication"
	LogCondition  LogKind = "physicalCondition"
)

// Per-kind payloads. Numeric fields are kept as the display-locale strings
// the user entered; they are digit-normalized at calculation time. An unset
// field is absent, never a recorded zero.

type BloodSugarLog struct {
	Glucose string `json:"glucose"`
}

type MealLog struct {
	Carbs            string        `json:"carbs,omitempty"`
	MealType         string        `json:"mealType,omitempty"`
	Description      string        `json:"description,omitempty"`
	Fatty            bool          `json:"fatty,omitempty"`
	InsulinDose      string        `json:"insulinDose,omitempty"`
	InjectionSite    InjectionSite `json:"injectionSite,omitempty"`
	PostMealActivity string        `json:"postMealActivity,omitempty"`
}

type ActivityLog struct {
	ActivityType string `json:"activityType,omitempty"`
	Duration     string `json:"duration,omitempty"`
}

type SleepLog struct {
	SleepTime string `json:"sleepTime,omitempty"`
}

type InsulinLog struct {
	Dose          string        `json:"dose"`
	Type          InsulinType   `json:"type"`
	InjectionSite InjectionSite `json:"injectionSite,omitempty"`
}

type MoodLog struct {
	Moods []string `json:"moods,omitempty"`
}

type MedicationLog struct {
	Name string `json:"name"`
	Dose string `json:"dose,omitempty"`
	Unit string `json:"unit,omitempty"`
}

type ConditionLog struct {
	Conditions []string `json:"conditions,omitempty"`
}

// LogEntry is an immutable fact about one moment in the user's life. Exactly
// one payload pointer matching Kind is non-nil. Timestamp is the
// authoritative instant; JalaliDate and TimeOfDay are the locally-entered
// calendar strings and serve as the grouping key for per-day aggregation.
type LogEntry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	JalaliDate string    `json:"jalaliDate"`
	TimeOfDay  string    `json:"time"`
	Kind       LogKind   `json:"type"`

	BloodSugar *BloodSugarLog `json:"bloodSugar,omitempty"`
	Meal       *MealLog       `json:"meal,omitempty"`
	Activity   *ActivityLog   `json:"activity,omitempty"`
	Sleep      *SleepLog      `json:"sleep,omitempty"`
	Insulin    *InsulinLog    `json:"insulin,omitempty"`
	Mood       *MoodLog       `json:"mood,omitempty"`
	Medication *MedicationLog `json:"medication,omitempty"`
	Condition  *ConditionLog  `json:"physicalCondition,omitempty"`
}

// EmergencyContact is shown on the emergency screen and the ID card.
type EmergencyContact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Reminder is a recurring daily prompt.
type Reminder struct {
	ID      string `json:"id"`
	Type    string `json:"type"` // "check_bg" or "take_meds"
	Time    string `json:"time"` // "HH:MM"
	Enabled bool   `json:"enabled"`
}

// Goal is a self-set target tracked against the log history.
type Goal struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"` // "avg_glucose" or "daily_activity"
	TargetValue float64   `json:"targetValue"`
	TimeFrame   string    `json:"timeFrame"` // "weekly" or "monthly"
	Status      string    `json:"status"`    // "active" or "completed"
	StartDate   time.Time `json:"startDate"`
}

// Profile holds the slowly-changing subject attributes. Dates are Jalali
// calendar strings as entered; height, weight and cycle length are
// display-locale numeric strings.
type Profile struct {
	BirthDate           string             `json:"birthDate"`
	Gender              Gender             `json:"gender"`
	Height              string             `json:"height"`
	Weight              string             `json:"weight"`
	DiabetesType        DiabetesType       `json:"diabetesType"`
	BasalInsulin        string             `json:"basalInsulin"`
	BolusInsulin        string             `json:"bolusInsulin"`
	LastPeriodStartDate string             `json:"lastPeriodStartDate,omitempty"`
	CycleLength         string             `json:"cycleLength,omitempty"`
	InjectionSites      []InjectionSite    `json:"injectionSitePriority"`
	EmergencyContacts   []EmergencyContact `json:"emergencyContacts"`
	Photo               string             `json:"photo,omitempty"`
}

// DefaultProfile returns the profile a new user starts with.
func DefaultProfile() Profile {
	return Profile{
		InjectionSites:    []InjectionSite{SiteAbdomen, SiteArm, SiteLeg, SiteButtocks},
		EmergencyContacts: []EmergencyContact{},
	}
}

// User is the aggregate root. A user exclusively owns its profile and logs;
// calculations always operate on a single user's data. Logs carry no order
// guarantee; consumers sort by timestamp when order matters.
type User struct {
	ID         string     `json:"id"`
	TelegramID int64      `json:"telegramId,omitempty"`
	Name       string     `json:"name"`
	Profile    Profile    `json:"profile"`
	Logs       []LogEntry `json:"logs"`
	Reminders  []Reminder `json:"reminders"`
	Goals      []Goal     `json:"goals"`
}

// FactorSource tells consumers where a TDD estimate came from. SourceNone
// means the factors are unavailable and must be rendered as "—", never as a
// computed zero.
type FactorSource string

const (
	SourceLogs   FactorSource = "logs"
	SourceWeight FactorSource = "weight"
	SourceNone   FactorSource = "none"
)

// InsulinFactors are the derived dosing parameters. TDD is the raw
// pre-adjustment average; ISF and ICR are computed from the age-adjusted
// value. That asymmetry is part of the contract: the dashboard shows the raw
// TDD next to adjusted ratios.
type InsulinFactors struct {
	TDD    float64      `json:"tdd"`
	ISF    float64      `json:"isf"`
	ICR    float64      `json:"icr"`
	Source FactorSource `json:"source"`
}

// TIRPercentages is the time-weighted share of glucose readings in each
// band. All-zero means insufficient data.
type TIRPercentages struct {
	Low    int `json:"low"`
	Normal int `json:"normal"`
	High   int `json:"high"`
}

// AverageSource tells consumers where a daily-average estimate came from.
type AverageSource string

const (
	AverageFromLogs AverageSource = "logs"
	AverageFromTDD  AverageSource = "tdd"
	AverageNone     AverageSource = "none"
)

// DailyAverage is a per-day dose average over a trailing window.
type DailyAverage struct {
	Value  float64       `json:"value"`
	Source AverageSource `json:"source"`
}

// A1CEstimate is derived from the trailing 90-day glucose average. Valid is
// false when no readings fall inside the window.
type A1CEstimate struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// HormonalPhase flags conditions under which insulin needs typically rise.
type HormonalPhase struct {
	Puberty bool `json:"puberty"`
	Luteal  bool `json:"luteal"`
}

// Active reports whether any phase applies.
func (p HormonalPhase) Active() bool {
	return p.Puberty || p.Luteal
}

// MetricsSnapshot bundles every derived quantity for one user at one
// reference instant. It is recomputed on demand and never stored.
type MetricsSnapshot struct {
	Factors InsulinFactors `json:"factors"`
	IOB     float64        `json:"iob"`
	TIR     TIRPercentages `json:"tir"`
	Basal   DailyAverage   `json:"basal"`
	Bolus   DailyAverage   `json:"bolus"`
	A1C     A1CEstimate    `json:"a1c"`
	Phase   HormonalPhase  `json:"phase"`
}

// CorrectionStatus classifies the outcome of a correction-dose request.
type CorrectionStatus string

const (
	// CorrectionSuggested carries a rounded dose in units.
	CorrectionSuggested CorrectionStatus = "suggested"
	// CorrectionNotNeeded means current glucose is already at or below target.
	CorrectionNotNeeded CorrectionStatus = "not_needed"
	// CorrectionBelowFloor means glucose is elevated but under the safety
	// floor, where a correction risks hypoglycemia.
	CorrectionBelowFloor CorrectionStatus = "below_floor"
	// CorrectionUnavailable means no ISF could be derived.
	CorrectionUnavailable CorrectionStatus = "unavailable"
)

// CorrectionSuggestion is the gated output of the correction-dose
// calculator. The caution flags are advisory and never change the dose.
type CorrectionSuggestion struct {
	Status         CorrectionStatus `json:"status"`
	Dose           float64          `json:"dose"`
	RecentBolus    bool             `json:"recentBolus"`
	RecentActivity bool             `json:"recentActivity"`
}
