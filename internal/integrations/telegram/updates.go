package telegram

import (
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

// ToInbound конвертирует апдейт Telegram во входящее сообщение
// Возвращает false для апдейтов, которые бот не обрабатывает
func ToInbound(update tgbotapi.Update) (domain.InboundMessage, bool) {
	if cb := update.CallbackQuery; cb != nil {
		if cb.From == nil || cb.Message == nil || cb.Message.Chat == nil {
			return domain.InboundMessage{}, false
		}
		return domain.InboundMessage{
			UserID:    cb.From.ID,
			ChatID:    cb.Message.Chat.ID,
			MessageID: cb.Message.MessageID,
			FullName:  fullName(cb.From),
			Username:  cb.From.UserName,
			Input:     domain.OptionInput(cb.Data),
			Timestamp: time.Now(),
		}, true
	}

	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return domain.InboundMessage{}, false
	}

	inbound := domain.InboundMessage{
		UserID:    msg.From.ID,
		ChatID:    msg.Chat.ID,
		MessageID: msg.MessageID,
		FullName:  fullName(msg.From),
		Username:  msg.From.UserName,
		Timestamp: msg.Time(),
	}

	switch {
	case msg.Contact != nil:
		// Чужой контакт не засчитывается как номер пользователя
		if msg.Contact.UserID != msg.From.ID {
			inbound.Input = domain.TextInput("")
			return inbound, true
		}
		inbound.Input = domain.ContactInput(msg.Contact.PhoneNumber)
	case msg.Text != "":
		inbound.Input = domain.TextInput(msg.Text)
	default:
		return domain.InboundMessage{}, false
	}

	return inbound, true
}

func fullName(u *tgbotapi.User) string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return u.UserName
	}
	return name
}
