package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mehrnazbaharan/diabetes-companion/internal/bot/keyboards"
	"github.com/mehrnazbaharan/diabetes-companion/internal/bot/state"
	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
	"github.com/mehrnazbaharan/diabetes-companion/internal/logger"
)

// maxBackupSize caps how much we download for a restore.
const maxBackupSize = 10 << 20

// DocumentHandler restores backups sent as files
type DocumentHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *DocumentHandler {
	return &DocumentHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a document message
func (h *DocumentHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	chatID := message.Chat.ID

	if h.stateManager.GetUserState(user.TelegramID) != state.WaitingForBackup {
		msg := tgbotapi.NewMessage(chatID, "To restore a backup, run /backup first, then send the file.")
		msg.ReplyMarkup = keyboards.BackToMainMenu()
		_, err := h.api.Send(msg)
		return err
	}

	file, err := h.api.GetFile(tgbotapi.FileConfig{FileID: message.Document.FileID})
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}

	data, err := h.download(ctx, file.Link(h.api.Token))
	if err != nil {
		return err
	}

	if err := h.deps.Backup.Restore(ctx, user.TelegramID, data); err != nil {
		logger.Errorf("Backup restore failed for user %d: %v", user.TelegramID, err)
		msg := tgbotapi.NewMessage(chatID, "That does not look like a valid backup file. Nothing was changed.")
		msg.ReplyMarkup = keyboards.BackToMainMenu()
		_, err := h.api.Send(msg)
		return err
	}

	h.stateManager.SetUserState(user.TelegramID, state.None)
	msg := tgbotapi.NewMessage(chatID, "✅ Backup restored.")
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err = h.api.Send(msg)
	return err
}

func (h *DocumentHandler) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download backup file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBackupSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read backup file: %w", err)
	}
	return data, nil
}
