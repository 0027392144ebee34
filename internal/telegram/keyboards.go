package telegram

import (
	"github.com/go-telegram/bot/models"

	"github.com/suspectuso/send-approval-bot/internal/workflow"
)

// replyMarkup converts a persistent menu keyboard
func replyMarkup(kb *workflow.ReplyKeyboard) *models.ReplyKeyboardMarkup {
	if kb == nil {
		return nil
	}
	rows := make([][]models.KeyboardButton, 0, len(kb.Rows))
	for _, r := range kb.Rows {
		row := make([]models.KeyboardButton, 0, len(r))
		for _, label := range r {
			row = append(row, models.KeyboardButton{Text: label})
		}
		rows = append(rows, row)
	}
	return &models.ReplyKeyboardMarkup{
		Keyboard:        rows,
		ResizeKeyboard:  true,
		OneTimeKeyboard: kb.OneTime,
	}
}

// inlineMarkup converts buttons attached to a single message
func inlineMarkup(kb *workflow.InlineKeyboard) *models.InlineKeyboardMarkup {
	if kb == nil || len(kb.Rows) == 0 {
		return nil
	}
	rows := make([][]models.InlineKeyboardButton, 0, len(kb.Rows))
	for _, r := range kb.Rows {
		row := make([]models.InlineKeyboardButton, 0, len(r))
		for _, b := range r {
			row = append(row, models.InlineKeyboardButton{Text: b.Label, CallbackData: b.Payload})
		}
		rows = append(rows, row)
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}
