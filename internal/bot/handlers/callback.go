package handlers

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mehrnazbaharan/diabetes-companion/internal/bot/keyboards"
	"github.com/mehrnazbaharan/diabetes-companion/internal/bot/menus"
	"github.com/mehrnazbaharan/diabetes-companion/internal/bot/state"
	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
	"github.com/mehrnazbaharan/diabetes-companion/internal/logger"
)

// CallbackHandler handles inline keyboard button presses
type CallbackHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *CallbackHandler {
	return &CallbackHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, user *domain.User) error {
	chatID := query.Message.Chat.ID

	switch query.Data {
	case "main_menu":
		h.stateManager.SetUserState(user.TelegramID, state.None)
		h.stateManager.ClearTempData(user.TelegramID)
		return menus.SendMainMenu(h.api, chatID)

	case "log_blood_sugar":
		return h.prompt(user, chatID, state.WaitingForBloodSugar, "Enter your blood glucose in mg/dL:")

	case "log_meal":
		msg := tgbotapi.NewMessage(chatID, "How do you want to log the meal?")
		msg.ReplyMarkup = keyboards.MealEntryMenu()
		_, err := h.api.Send(msg)
		return err

	case "meal_manual":
		return h.prompt(user, chatID, state.WaitingForMealCarbs, "Enter the carbs in grams:")

	case "meal_photo":
		return h.prompt(user, chatID, state.WaitingForMealPhoto,
			"Send a photo of the meal. You can put the portion weight in grams in the caption.")

	case "log_insulin":
		msg := tgbotapi.NewMessage(chatID, "Which kind of insulin?")
		msg.ReplyMarkup = keyboards.InsulinTypeMenu()
		_, err := h.api.Send(msg)
		return err

	case "insulin_basal":
		h.stateManager.SetTempData(user.TelegramID, state.TempInsulinType, string(domain.InsulinBasal))
		return h.prompt(user, chatID, state.WaitingForInsulin, "Enter the basal dose in units:")

	case "insulin_bolus":
		h.stateManager.SetTempData(user.TelegramID, state.TempInsulinType, string(domain.InsulinBolus))
		return h.prompt(user, chatID, state.WaitingForInsulin, "Enter the bolus dose in units:")

	case "log_activity":
		return h.prompt(user, chatID, state.WaitingForActivity,
			"What did you do and for how long? (e.g. \"walking 30\" for 30 minutes)")

	case "dashboard":
		return h.sendSnapshot(ctx, chatID, user, h.deps.Reports.Dashboard)

	case "report":
		return h.sendSnapshot(ctx, chatID, user, h.deps.Reports.Report)

	case "correction_dose":
		return h.prompt(user, chatID, state.WaitingForCorrection, "Enter your current blood glucose in mg/dL:")

	case "ai_analysis":
		return h.handleAnalysis(ctx, chatID, user)

	case "profile":
		h.stateManager.SetUserState(user.TelegramID, state.None)
		return menus.SendProfileMenu(h.api, chatID, user)

	case "profile_weight":
		return h.prompt(user, chatID, state.WaitingForWeight, "Enter your weight in kg:")

	case "profile_birth_date":
		return h.prompt(user, chatID, state.WaitingForBirthDate, "Enter your birth date (YYYY/MM/DD, Jalali):")

	case "profile_gender":
		msg := tgbotapi.NewMessage(chatID, "Select your gender:")
		msg.ReplyMarkup = keyboards.GenderMenu()
		_, err := h.api.Send(msg)
		return err

	case "gender_female", "gender_male":
		return h.setGender(ctx, chatID, user, query.Data)

	case "profile_period_date":
		return h.prompt(user, chatID, state.WaitingForPeriodDate,
			"Enter the start date of your last period (YYYY/MM/DD, Jalali):")

	case "profile_cycle_length":
		return h.prompt(user, chatID, state.WaitingForCycleLen, "Enter your cycle length in days:")
	}

	logger.Warnf("Unknown callback data %q from user %d", query.Data, user.TelegramID)
	return nil
}

func (h *CallbackHandler) prompt(user *domain.User, chatID int64, newState, text string) error {
	h.stateManager.SetUserState(user.TelegramID, newState)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.BackToMainMenu()
	_, err := h.api.Send(msg)
	return err
}

func (h *CallbackHandler) sendSnapshot(ctx context.Context, chatID int64, user *domain.User, render func(*domain.MetricsSnapshot) string) error {
	snapshot, err := h.deps.Metrics.Snapshot(ctx, user.ID, time.Now())
	if err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, render(snapshot))
	msg.ReplyMarkup = keyboards.BackToMainMenu()
	_, err = h.api.Send(msg)
	return err
}

func (h *CallbackHandler) handleAnalysis(ctx context.Context, chatID int64, user *domain.User) error {
	snapshot, err := h.deps.Metrics.Snapshot(ctx, user.ID, time.Now())
	if err != nil {
		return err
	}

	waiting := tgbotapi.NewMessage(chatID, "Analyzing your history...")
	sent, err := h.api.Send(waiting)
	if err != nil {
		return err
	}

	summary := h.deps.Reports.ContextSummary(user, snapshot)
	analysis, err := h.deps.AI.AnalyzeLogs(ctx, summary)

	h.api.Request(tgbotapi.NewDeleteMessage(chatID, sent.MessageID))

	if err != nil {
		logger.Errorf("AI analysis failed for user %d: %v", user.TelegramID, err)
		msg := tgbotapi.NewMessage(chatID, "Sorry, the analysis is unavailable right now. Please try again later.")
		msg.ReplyMarkup = keyboards.BackToMainMenu()
		_, err = h.api.Send(msg)
		return err
	}

	msg := tgbotapi.NewMessage(chatID, analysis)
	msg.ReplyMarkup = keyboards.BackToMainMenu()
	_, err = h.api.Send(msg)
	return err
}

func (h *CallbackHandler) setGender(ctx context.Context, chatID int64, user *domain.User, data string) error {
	profile := user.Profile
	if data == "gender_female" {
		profile.Gender = domain.GenderFemale
	} else {
		profile.Gender = domain.GenderMale
	}
	if err := h.deps.Users.UpdateProfile(ctx, user.ID, profile); err != nil {
		return err
	}
	user.Profile = profile
	return menus.SendProfileMenu(h.api, chatID, user)
}
