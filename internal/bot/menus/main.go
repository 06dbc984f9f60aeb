package menus

import (
	"fmt"
	"sort"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mehrnazbaharan/diabetes-companion/internal/bot/keyboards"
	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
	"github.com/mehrnazbaharan/diabetes-companion/internal/numerals"
	"github.com/mehrnazbaharan/diabetes-companion/internal/utils"
)

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api *tgbotapi.BotAPI, chatID int64) error {
	text := `🤖 *Diabetes Companion*

Log blood sugar, meals, insulin and activity, and I will derive your
personal numbers from the history:
• Total daily dose, sensitivity factor and carb ratio
• Insulin on board
• Time in range

⚠️ *Important:* this is reference information, always consult your doctor!

Choose an action:`

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendProfileMenu sends the profile overview with editing buttons
func SendProfileMenu(api *tgbotapi.BotAPI, chatID int64, user *domain.User) error {
	profile := user.Profile

	field := func(v string) string {
		if v == "" {
			return "not set"
		}
		return numerals.Normalize(v)
	}

	text := "⚙️ Profile\n\n" +
		fmt.Sprintf("Weight: %s kg\n", field(profile.Weight)) +
		fmt.Sprintf("Birth date: %s\n", field(profile.BirthDate)) +
		fmt.Sprintf("Gender: %s\n", field(string(profile.Gender)))

	if profile.Gender == domain.GenderFemale {
		text += fmt.Sprintf("Cycle start: %s\n", field(profile.LastPeriodStartDate))
		text += fmt.Sprintf("Cycle length: %s days\n", field(profile.CycleLength))
	}

	if reminders := enabledReminders(user.Reminders); len(reminders) > 0 {
		text += "\nReminders:\n"
		for _, r := range reminders {
			text += fmt.Sprintf("  🔔 %s %s\n", r.Time, reminderLabel(r.Type))
		}
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.ProfileMenu(profile.Gender == domain.GenderFemale)
	_, err := api.Send(msg)
	return err
}

// enabledReminders filters and orders reminders by time of day.
func enabledReminders(reminders []domain.Reminder) []domain.Reminder {
	out := make([]domain.Reminder, 0, len(reminders))
	for _, r := range reminders {
		if r.Enabled {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return utils.TimeToMinutes(out[i].Time) < utils.TimeToMinutes(out[j].Time)
	})
	return out
}

func reminderLabel(reminderType string) string {
	switch reminderType {
	case "check_bg":
		return "check blood sugar"
	case "take_meds":
		return "take medication"
	default:
		return reminderType
	}
}
