package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mehrnazbaharan/diabetes-companion/internal/bot/keyboards"
	"github.com/mehrnazbaharan/diabetes-companion/internal/bot/menus"
	"github.com/mehrnazbaharan/diabetes-companion/internal/bot/state"
	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
	"github.com/mehrnazbaharan/diabetes-companion/internal/jalali"
	"github.com/mehrnazbaharan/diabetes-companion/internal/numerals"
)

// TextHandler drives the multi-step logging flows. Numeric input is digit-
// normalized for validation but stored exactly as the user typed it.
type TextHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewTextHandler creates a new text handler
func NewTextHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// parsePositive validates a user-typed number in any supported digit script.
func parsePositive(text string) (float64, bool) {
	v, err := strconv.ParseFloat(numerals.Normalize(strings.TrimSpace(text)), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// Handle processes a plain text message according to the current state
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	switch h.stateManager.GetUserState(user.TelegramID) {
	case state.WaitingForBloodSugar:
		return h.handleBloodSugar(ctx, chatID, user, text)
	case state.WaitingForMealCarbs:
		return h.handleMealCarbs(chatID, user, text)
	case state.WaitingForMealDose:
		return h.handleMealDose(ctx, chatID, user, text)
	case state.WaitingForInsulin:
		return h.handleInsulin(ctx, chatID, user, text)
	case state.WaitingForActivity:
		return h.handleActivity(ctx, chatID, user, text)
	case state.WaitingForWeight:
		return h.handleWeight(ctx, chatID, user, text)
	case state.WaitingForBirthDate:
		return h.handleProfileDate(ctx, chatID, user, text, false)
	case state.WaitingForPeriodDate:
		return h.handleProfileDate(ctx, chatID, user, text, true)
	case state.WaitingForCycleLen:
		return h.handleCycleLength(ctx, chatID, user, text)
	case state.WaitingForCorrection:
		return h.handleCorrectionGlucose(chatID, user, text)
	case state.WaitingForCorrTarget:
		return h.handleCorrectionTarget(ctx, chatID, user, text)
	default:
		msg := tgbotapi.NewMessage(chatID, "Please use the menu to choose an action.")
		msg.ReplyMarkup = keyboards.BackToMainMenu()
		_, err := h.api.Send(msg)
		return err
	}
}

func (h *TextHandler) retry(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.BackToMainMenu()
	_, err := h.api.Send(msg)
	return err
}

func (h *TextHandler) done(user *domain.User, chatID int64, text string) error {
	h.stateManager.SetUserState(user.TelegramID, state.None)
	h.stateManager.ClearTempData(user.TelegramID)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := h.api.Send(msg)
	return err
}

func (h *TextHandler) saveError(user *domain.User, chatID int64) error {
	h.stateManager.SetUserState(user.TelegramID, state.None)
	msg := tgbotapi.NewMessage(chatID, "Something went wrong while saving. Please try again.")
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := h.api.Send(msg)
	return err
}

func (h *TextHandler) handleBloodSugar(ctx context.Context, chatID int64, user *domain.User, text string) error {
	if _, ok := parsePositive(text); !ok {
		return h.retry(chatID, "Please enter a valid glucose value, for example 110 or ۱۱۰.")
	}

	entry := domain.LogEntry{
		Kind:       domain.LogBloodSugar,
		BloodSugar: &domain.BloodSugarLog{Glucose: text},
	}
	if _, err := h.deps.Logbook.AddEntry(ctx, user.ID, entry); err != nil {
		return h.saveError(user, chatID)
	}
	return h.done(user, chatID, fmt.Sprintf("✅ Blood sugar %s mg/dL saved.", text))
}

func (h *TextHandler) handleMealCarbs(chatID int64, user *domain.User, text string) error {
	if _, ok := parsePositive(text); !ok {
		return h.retry(chatID, "Please enter the carbs as a number of grams, for example 45.")
	}

	h.stateManager.SetTempData(user.TelegramID, state.TempMealCarbs, text)
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForMealDose)
	return h.retry(chatID, "Insulin dose for this meal in units (or 0 if none):")
}

func (h *TextHandler) handleMealDose(ctx context.Context, chatID int64, user *domain.User, text string) error {
	dose, err := strconv.ParseFloat(numerals.Normalize(strings.TrimSpace(text)), 64)
	if err != nil || dose < 0 {
		return h.retry(chatID, "Please enter the dose in units, or 0 if you did not inject.")
	}

	carbs, _ := h.stateManager.GetTempData(user.TelegramID, state.TempMealCarbs)
	meal := &domain.MealLog{Carbs: carbs}
	if desc, ok := h.stateManager.GetTempData(user.TelegramID, state.TempMealDesc); ok {
		meal.Description = desc
	}
	if dose > 0 {
		meal.InsulinDose = text
	}

	entry := domain.LogEntry{Kind: domain.LogMeal, Meal: meal}
	if _, err := h.deps.Logbook.AddEntry(ctx, user.ID, entry); err != nil {
		return h.saveError(user, chatID)
	}
	return h.done(user, chatID, fmt.Sprintf("✅ Meal with %s g carbs saved.", carbs))
}

func (h *TextHandler) handleInsulin(ctx context.Context, chatID int64, user *domain.User, text string) error {
	if _, ok := parsePositive(text); !ok {
		return h.retry(chatID, "Please enter the dose as a positive number of units.")
	}

	insulinType := domain.InsulinBolus
	label := "Bolus"
	if typ, ok := h.stateManager.GetTempData(user.TelegramID, state.TempInsulinType); ok && typ == string(domain.InsulinBasal) {
		insulinType = domain.InsulinBasal
		label = "Basal"
	}

	entry := domain.LogEntry{
		Kind:    domain.LogInsulin,
		Insulin: &domain.InsulinLog{Dose: text, Type: insulinType},
	}
	if _, err := h.deps.Logbook.AddEntry(ctx, user.ID, entry); err != nil {
		return h.saveError(user, chatID)
	}
	return h.done(user, chatID, fmt.Sprintf("✅ %s dose of %s units saved.", label, text))
}

func (h *TextHandler) handleActivity(ctx context.Context, chatID int64, user *domain.User, text string) error {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return h.retry(chatID, "Please describe the activity and the minutes, for example \"walking 30\".")
	}

	duration := fields[len(fields)-1]
	if _, ok := parsePositive(duration); !ok {
		return h.retry(chatID, "The last word should be the duration in minutes, for example \"walking 30\".")
	}
	activityType := strings.Join(fields[:len(fields)-1], " ")

	entry := domain.LogEntry{
		Kind:     domain.LogActivity,
		Activity: &domain.ActivityLog{ActivityType: activityType, Duration: duration},
	}
	if _, err := h.deps.Logbook.AddEntry(ctx, user.ID, entry); err != nil {
		return h.saveError(user, chatID)
	}
	return h.done(user, chatID, fmt.Sprintf("✅ %s for %s minutes saved.", activityType, duration))
}

func (h *TextHandler) handleWeight(ctx context.Context, chatID int64, user *domain.User, text string) error {
	if _, ok := parsePositive(text); !ok {
		return h.retry(chatID, "Please enter your weight in kg, for example 70.")
	}

	profile := user.Profile
	profile.Weight = text
	if err := h.deps.Users.UpdateProfile(ctx, user.ID, profile); err != nil {
		return h.saveError(user, chatID)
	}
	user.Profile = profile
	h.stateManager.SetUserState(user.TelegramID, state.None)
	return menus.SendProfileMenu(h.api, chatID, user)
}

func (h *TextHandler) handleProfileDate(ctx context.Context, chatID int64, user *domain.User, text string, period bool) error {
	if _, ok := jalali.ParseDate(text); !ok {
		return h.retry(chatID, "Please enter the date as YYYY/MM/DD in the Jalali calendar, for example 1380/05/12.")
	}

	profile := user.Profile
	if period {
		profile.LastPeriodStartDate = text
	} else {
		profile.BirthDate = text
	}
	if err := h.deps.Users.UpdateProfile(ctx, user.ID, profile); err != nil {
		return h.saveError(user, chatID)
	}
	user.Profile = profile
	h.stateManager.SetUserState(user.TelegramID, state.None)
	return menus.SendProfileMenu(h.api, chatID, user)
}

func (h *TextHandler) handleCorrectionGlucose(chatID int64, user *domain.User, text string) error {
	if _, ok := parsePositive(text); !ok {
		return h.retry(chatID, "Please enter your current glucose in mg/dL, for example 250.")
	}

	h.stateManager.SetTempData(user.TelegramID, state.TempCorrectionBG, text)
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForCorrTarget)
	return h.retry(chatID, "Enter your target glucose in mg/dL (120 is a common target):")
}

func (h *TextHandler) handleCorrectionTarget(ctx context.Context, chatID int64, user *domain.User, text string) error {
	target, ok := parsePositive(text)
	if !ok {
		return h.retry(chatID, "Please enter the target glucose in mg/dL, for example 120.")
	}

	stored, _ := h.stateManager.GetTempData(user.TelegramID, state.TempCorrectionBG)
	current, _ := parsePositive(stored)

	suggestion, err := h.deps.Metrics.SuggestCorrection(ctx, user.ID, current, target, time.Now())
	if err != nil {
		return h.saveError(user, chatID)
	}
	return h.done(user, chatID, h.deps.Reports.Correction(suggestion))
}

func (h *TextHandler) handleCycleLength(ctx context.Context, chatID int64, user *domain.User, text string) error {
	length, ok := parsePositive(text)
	if !ok || length != float64(int(length)) {
		return h.retry(chatID, "Please enter the cycle length as a whole number of days, for example 28.")
	}

	profile := user.Profile
	profile.CycleLength = text
	if err := h.deps.Users.UpdateProfile(ctx, user.ID, profile); err != nil {
		return h.saveError(user, chatID)
	}
	user.Profile = profile
	h.stateManager.SetUserState(user.TelegramID, state.None)
	return menus.SendProfileMenu(h.api, chatID, user)
}
