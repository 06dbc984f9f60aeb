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

// CommandHandler handles bot commands
type CommandHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *CommandHandler {
	return &CommandHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	logger.Infof("Handling command %s from user %d", message.Command(), user.TelegramID)

	switch message.Command() {
	case "start":
		h.stateManager.SetUserState(user.TelegramID, state.None)
		h.stateManager.ClearTempData(user.TelegramID)
		return menus.SendMainMenu(h.api, message.Chat.ID)
	case "help":
		return h.handleHelp(message.Chat.ID)
	case "report":
		return h.handleReport(ctx, message.Chat.ID, user)
	case "backup":
		return h.handleBackup(ctx, message.Chat.ID, user)
	default:
		return h.handleUnknownCommand(message.Chat.ID)
	}
}

// handleHelp handles the /help command
func (h *CommandHandler) handleHelp(chatID int64) error {
	text := `Available commands:
/start - Show the main menu
/help - Show this message
/report - Time in range and insulin factors
/backup - Export your data as a file

Use the menu buttons to log blood sugar, meals, insulin doses and
activity. The more you log, the more accurate the derived numbers get.

You can type numbers with Persian, Arabic or Latin digits.`

	msg := tgbotapi.NewMessage(chatID, text)
	_, err := h.api.Send(msg)
	return err
}

// handleReport handles the /report command
func (h *CommandHandler) handleReport(ctx context.Context, chatID int64, user *domain.User) error {
	snapshot, err := h.deps.Metrics.Snapshot(ctx, user.ID, time.Now())
	if err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, h.deps.Reports.Report(snapshot))
	msg.ReplyMarkup = keyboards.BackToMainMenu()
	_, err = h.api.Send(msg)
	return err
}

// handleBackup exports the user's data and arms the restore flow.
func (h *CommandHandler) handleBackup(ctx context.Context, chatID int64, user *domain.User) error {
	data, err := h.deps.Backup.Export(ctx, user.TelegramID)
	if err != nil {
		return err
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  "diabetes-companion-backup.json",
		Bytes: data,
	})
	doc.Caption = "Your backup. Send a backup file back to me to restore it."
	if _, err := h.api.Send(doc); err != nil {
		return err
	}

	h.stateManager.SetUserState(user.TelegramID, state.WaitingForBackup)
	return nil
}

// handleUnknownCommand handles unknown commands
func (h *CommandHandler) handleUnknownCommand(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Unknown command. Use /help to see available commands.")
	_, err := h.api.Send(msg)
	return err
}
