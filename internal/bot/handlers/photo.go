package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mehrnazbaharan/diabetes-companion/internal/bot/keyboards"
	"github.com/mehrnazbaharan/diabetes-companion/internal/bot/state"
	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
	"github.com/mehrnazbaharan/diabetes-companion/internal/logger"
	"github.com/mehrnazbaharan/diabetes-companion/internal/numerals"
)

// PhotoHandler analyzes meal photos for carb content
type PhotoHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *PhotoHandler {
	return &PhotoHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a photo message
func (h *PhotoHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	chatID := message.Chat.ID

	if h.stateManager.GetUserState(user.TelegramID) != state.WaitingForMealPhoto {
		msg := tgbotapi.NewMessage(chatID, "To analyze a meal photo, choose 🍽️ Meal then 📷 Photo analysis first.")
		msg.ReplyMarkup = keyboards.BackToMainMenu()
		_, err := h.api.Send(msg)
		return err
	}

	// Largest size is last.
	photo := message.Photo[len(message.Photo)-1]
	file, err := h.api.GetFile(tgbotapi.FileConfig{FileID: photo.FileID})
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}

	weight := 0.0
	if caption := strings.TrimSpace(message.Caption); caption != "" {
		weight, err = strconv.ParseFloat(numerals.Normalize(caption), 64)
		if err != nil || weight <= 0 {
			msg := tgbotapi.NewMessage(chatID, "The caption should be just the weight in grams, for example 150.")
			msg.ReplyMarkup = keyboards.BackToMainMenu()
			_, err := h.api.Send(msg)
			return err
		}
	}

	processing := tgbotapi.NewMessage(chatID, "Analyzing the photo...")
	sent, err := h.api.Send(processing)
	if err != nil {
		return fmt.Errorf("failed to send processing message: %w", err)
	}

	estimate, err := h.deps.AI.EstimateCarbs(ctx, file.Link(h.api.Token), weight)

	h.api.Request(tgbotapi.NewDeleteMessage(chatID, sent.MessageID))

	if err != nil {
		logger.Errorf("Food analysis failed for user %d: %v", user.TelegramID, err)
		msg := tgbotapi.NewMessage(chatID, "Sorry, I could not analyze the photo. Please try again or enter the carbs manually.")
		msg.ReplyMarkup = keyboards.BackToMainMenu()
		_, err := h.api.Send(msg)
		return err
	}

	carbs := strconv.FormatFloat(estimate.Carbs, 'f', -1, 64)
	h.stateManager.SetTempData(user.TelegramID, state.TempMealCarbs, carbs)
	if len(estimate.FoodItems) > 0 {
		h.stateManager.SetTempData(user.TelegramID, state.TempMealDesc, strings.Join(estimate.FoodItems, ", "))
	}
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForMealDose)

	text := fmt.Sprintf("🍽️ Estimated carbs: %.1f g (confidence: %s)\n\n%s\n\nInsulin dose for this meal in units (or 0 if none):",
		estimate.Carbs, estimate.Confidence, estimate.AnalysisText)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.BackToMainMenu()
	_, err = h.api.Send(msg)
	return err
}
