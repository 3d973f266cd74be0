package handle_message

import "github.com/m04kA/sto-booking-bot/internal/domain"

const (
	StartCommand    = "/start"
	BeginButtonText = "🛠 Записатися на сервіс"

	menuText           = "Привіт! Я бот автосервісу. Оберіть дію:"
	dispatchFailedText = "⚠️ Не вдалося оформити заявку. Спробуйте ще раз, натиснувши кнопку нижче."
)

// Результаты шага для метрик
const (
	resultOK       = "ok"
	resultInvalid  = "invalid"
	resultComplete = "complete"
)

// Операции для логов и метрик внешних сбоев
const (
	OpSendPrompt = "send_prompt"
	OpRelayPush  = "relay_push"
	OpRecordChat = "record_chat"
	OpDispatch   = "dispatch"
)

// MainMenu стартовое меню с кнопкой записи
func MainMenu() domain.Prompt {
	return domain.Prompt{
		Text:          menuText,
		Options:       []domain.Option{{Label: BeginButtonText, Payload: domain.BeginPayload}},
		Columns:       1,
		ReplyKeyboard: true,
	}
}

// DispatchFailed ответ пользователю, если заявку не удалось отправить
func DispatchFailed() domain.Prompt {
	prompt := MainMenu()
	prompt.Text = dispatchFailedText
	return prompt
}

func isStart(in domain.Input) bool {
	return in.Kind == domain.InputText && in.Text == StartCommand
}

func isBegin(in domain.Input) bool {
	switch in.Kind {
	case domain.InputText:
		return in.Text == BeginButtonText
	case domain.InputOption:
		return in.Payload == domain.BeginPayload
	}
	return false
}
