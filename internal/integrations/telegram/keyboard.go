package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

const contactButtonText = "📱 Поділитись номером"

// BuildMarkup клавиатура для подсказки, nil если клавиатура не нужна
func BuildMarkup(p domain.Prompt) interface{} {
	switch {
	case p.RequestContact:
		kb := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact(contactButtonText)),
		)
		kb.ResizeKeyboard = true
		kb.OneTimeKeyboard = true
		return kb
	case len(p.Options) > 0 && p.ReplyKeyboard:
		return replyKeyboard(p)
	case len(p.Options) > 0:
		return inlineKeyboard(p)
	case p.RemoveKeyboard:
		return tgbotapi.NewRemoveKeyboard(true)
	}
	return nil
}

func inlineKeyboard(p domain.Prompt) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, chunk := range chunkOptions(p.Options, p.Columns) {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(chunk))
		for _, o := range chunk {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(o.Label, o.Payload))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func replyKeyboard(p domain.Prompt) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for _, chunk := range chunkOptions(p.Options, p.Columns) {
		row := make([]tgbotapi.KeyboardButton, 0, len(chunk))
		for _, o := range chunk {
			row = append(row, tgbotapi.NewKeyboardButton(o.Label))
		}
		rows = append(rows, row)
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

// chunkOptions разбивает варианты на ряды по columns штук
func chunkOptions(options []domain.Option, columns int) [][]domain.Option {
	if columns <= 0 {
		columns = 1
	}
	rows := make([][]domain.Option, 0, (len(options)+columns-1)/columns)
	for i := 0; i < len(options); i += columns {
		end := i + columns
		if end > len(options) {
			end = len(options)
		}
		rows = append(rows, options[i:end])
	}
	return rows
}
