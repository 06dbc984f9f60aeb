package keyboards

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🩸 Blood sugar", "log_blood_sugar"),
			tgbotapi.NewInlineKeyboardButtonData("🍽️ Meal", "log_meal"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💉 Insulin", "log_insulin"),
			tgbotapi.NewInlineKeyboardButtonData("🏃 Activity", "log_activity"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Dashboard", "dashboard"),
			tgbotapi.NewInlineKeyboardButtonData("📋 Report", "report"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧮 Correction dose", "correction_dose"),
			tgbotapi.NewInlineKeyboardButtonData("🤖 AI analysis", "ai_analysis"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Profile", "profile"),
		),
	)
}

// BackToMainMenu creates a single-button keyboard back to the main menu
func BackToMainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
}

// InsulinTypeMenu asks whether a dose is basal or bolus
func InsulinTypeMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌙 Basal (long-acting)", "insulin_basal"),
			tgbotapi.NewInlineKeyboardButtonData("⚡ Bolus (mealtime)", "insulin_bolus"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
}

// MealEntryMenu offers manual carb entry or photo analysis
func MealEntryMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔢 Enter carbs", "meal_manual"),
			tgbotapi.NewInlineKeyboardButtonData("📷 Photo analysis", "meal_photo"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
}

// ProfileMenu creates the profile editing keyboard
func ProfileMenu(female bool) tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚖️ Weight", "profile_weight"),
			tgbotapi.NewInlineKeyboardButtonData("🎂 Birth date", "profile_birth_date"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 Gender", "profile_gender"),
		),
	)

	if female {
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📅 Cycle start", "profile_period_date"),
				tgbotapi.NewInlineKeyboardButtonData("🔄 Cycle length", "profile_cycle_length"),
			),
		)
	}

	keyboard.InlineKeyboard = append(keyboard.InlineKeyboard,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
	return keyboard
}

// GenderMenu creates the gender selection keyboard
func GenderMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Female", "gender_female"),
			tgbotapi.NewInlineKeyboardButtonData("Male", "gender_male"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Back", "profile"),
		),
	)
}
