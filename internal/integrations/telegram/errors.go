package telegram

import "errors"

var (
	// ErrInvalidConfig возвращается при некорректной конфигурации бота
	ErrInvalidConfig = errors.New("telegram: invalid config")

	// ErrSendFailed возвращается, когда Telegram не принял сообщение
	ErrSendFailed = errors.New("telegram: send failed")

	// ErrRateLimited возвращается, если не дождались слота лимитера
	ErrRateLimited = errors.New("telegram: rate limit wait aborted")
)
