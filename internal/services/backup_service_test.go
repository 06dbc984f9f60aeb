package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
	"github.com/mehrnazbaharan/diabetes-companion/internal/jalali"
	"github.com/mehrnazbaharan/diabetes-companion/internal/metrics"
)

var testNow = time.Date(2024, 6, 21, 14, 0, 0, 0, time.UTC)

type fakeUserStore struct {
	user     *domain.User
	upserted *domain.User
}

func (f *fakeUserStore) GetByTelegramID(_ context.Context, _ int64) (*domain.User, error) {
	return f.user, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, _ string) (*domain.User, error) {
	return f.user, nil
}

func (f *fakeUserStore) Upsert(_ context.Context, user *domain.User) error {
	f.upserted = user
	return nil
}

func testUser() *domain.User {
	entries := []domain.LogEntry{}
	for i := 1; i <= 3; i++ {
		ts := testNow.AddDate(0, 0, -i)
		entries = append(entries, domain.LogEntry{
			ID:         "ins-" + string(rune('0'+i)),
			Timestamp:  ts,
			JalaliDate: jalali.Today(ts).String(),
			TimeOfDay:  "12:00",
			Kind:       domain.LogInsulin,
			Insulin:    &domain.InsulinLog{Dose: "10", Type: domain.InsulinBolus},
		})
	}
	for i, glucose := range []string{"150", "95"} {
		ts := testNow.Add(time.Duration(-6+i) * time.Hour)
		entries = append(entries, domain.LogEntry{
			ID:         "bg-" + string(rune('0'+i)),
			Timestamp:  ts,
			JalaliDate: jalali.Today(ts).String(),
			TimeOfDay:  "08:00",
			Kind:       domain.LogBloodSugar,
			BloodSugar: &domain.BloodSugarLog{Glucose: glucose},
		})
	}

	profile := domain.DefaultProfile()
	profile.Weight = "70"
	profile.Gender = domain.GenderFemale
	profile.BirthDate = "1370/01/01"

	return &domain.User{
		ID:         "user-1",
		TelegramID: 42,
		Name:       "Test",
		Profile:    profile,
		Logs:       entries,
		Reminders:  []domain.Reminder{},
		Goals:      []domain.Goal{},
	}
}

func snapshotOf(user *domain.User) domain.MetricsSnapshot {
	basal, bolus := metrics.InsulinEstimates(user, testNow)
	return domain.MetricsSnapshot{
		Factors: metrics.CalculateInsulinFactors(user, testNow),
		IOB:     metrics.CalculateIOB(user, testNow),
		TIR:     metrics.CalculateRecentTIR(user.Logs, testNow),
		Basal:   basal,
		Bolus:   bolus,
		A1C:     metrics.EstimatedA1C(user.Logs, testNow),
		Phase:   metrics.EvaluatePhase(user.Profile, testNow),
	}
}

func TestBackupRoundTripPreservesMetrics(t *testing.T) {
	original := testUser()
	store := &fakeUserStore{user: original}
	svc := NewBackupService(store)

	data, err := svc.Export(context.Background(), 42)
	require.NoError(t, err)

	require.NoError(t, svc.Restore(context.Background(), 42, data))
	require.NotNil(t, store.upserted)

	assert.Equal(t, snapshotOf(original), snapshotOf(store.upserted))
}

func TestRestoreRebindsTelegramAccount(t *testing.T) {
	store := &fakeUserStore{user: testUser()}
	svc := NewBackupService(store)

	data, err := svc.Export(context.Background(), 42)
	require.NoError(t, err)

	require.NoError(t, svc.Restore(context.Background(), 99, data))
	assert.Equal(t, int64(99), store.upserted.TelegramID)
}

func TestRestoreDefaultsMissingCollections(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewBackupService(store)

	payload := `{"users":[{"id":"u1","name":"Old","profile":{"birthDate":"","gender":"","height":"","weight":"","diabetesType":"","basalInsulin":"","bolusInsulin":"","injectionSitePriority":[],"emergencyContacts":[]},"logs":[]}],"selectedUserId":"u1","version":"1.0"}`
	require.NoError(t, svc.Restore(context.Background(), 42, []byte(payload)))

	assert.NotNil(t, store.upserted.Reminders)
	assert.NotNil(t, store.upserted.Goals)
}

func TestRestoreRejectsGarbage(t *testing.T) {
	svc := NewBackupService(&fakeUserStore{})

	assert.Error(t, svc.Restore(context.Background(), 42, []byte("not json")))
	assert.Error(t, svc.Restore(context.Background(), 42, []byte(`{"users":[]}`)))
	assert.Error(t, svc.Restore(context.Background(), 42, []byte(`{"users":[{"name":"no id"}]}`)))
}
