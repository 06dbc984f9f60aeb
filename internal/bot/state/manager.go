package state

import "sync"

// Conversation states. Each logging flow parks the user in a waiting state
// until the text handler consumes the next message.
const (
	None                 = "none"
	WaitingForBloodSugar = "waiting_for_blood_sugar"
	WaitingForMealCarbs  = "waiting_for_meal_carbs"
	WaitingForMealDose   = "waiting_for_meal_dose"
	WaitingForMealPhoto  = "waiting_for_meal_photo"
	WaitingForInsulin    = "waiting_for_insulin_dose"
	WaitingForActivity   = "waiting_for_activity"
	WaitingForWeight     = "waiting_for_weight"
	WaitingForBirthDate  = "waiting_for_birth_date"
	WaitingForPeriodDate = "waiting_for_period_date"
	WaitingForCycleLen   = "waiting_for_cycle_length"
	WaitingForBackup     = "waiting_for_backup_file"
	WaitingForCorrection = "waiting_for_correction_glucose"
	WaitingForCorrTarget = "waiting_for_correction_target"
)

// Temp data keys shared between handlers within one flow.
const (
	TempMealCarbs    = "meal_carbs"
	TempMealDesc     = "meal_desc"
	TempInsulinType  = "insulin_type"
	TempCorrectionBG = "correction_glucose"
)

// StateManager tracks per-user conversation state and the scratch values a
// multi-step flow accumulates. Implementations must be safe for concurrent
// use.
type StateManager interface {
	SetUserState(userID int64, state string)
	GetUserState(userID int64) string
	ClearUserState(userID int64)
	SetTempData(userID int64, key, value string)
	GetTempData(userID int64, key string) (string, bool)
	ClearTempData(userID int64)
}

// Manager is the in-memory StateManager used when Redis is not configured.
type Manager struct {
	userStates map[int64]string
	tempData   map[int64]map[string]string
	mu         sync.RWMutex
}

// NewManager creates a new in-memory state manager
func NewManager() *Manager {
	return &Manager{
		userStates: make(map[int64]string),
		tempData:   make(map[int64]map[string]string),
	}
}

// SetUserState sets the state for a user
func (m *Manager) SetUserState(userID int64, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userStates[userID] = state
}

// GetUserState gets the state for a user
func (m *Manager) GetUserState(userID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, exists := m.userStates[userID]
	if !exists {
		return None
	}
	return state
}

// ClearUserState clears the state for a user
func (m *Manager) ClearUserState(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.userStates, userID)
}

// SetTempData sets a scratch value for a user
func (m *Manager) SetTempData(userID int64, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tempData[userID] == nil {
		m.tempData[userID] = make(map[string]string)
	}
	m.tempData[userID][key] = value
}

// GetTempData gets a scratch value for a user
func (m *Manager) GetTempData(userID int64, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	userData, exists := m.tempData[userID]
	if !exists {
		return "", false
	}
	value, exists := userData[key]
	return value, exists
}

// ClearTempData clears all scratch values for a user
func (m *Manager) ClearTempData(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tempData, userID)
}
