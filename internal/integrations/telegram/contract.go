package telegram

import (
	"context"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

// Handler обработчик входящих сообщений
type Handler interface {
	Execute(ctx context.Context, msg domain.InboundMessage) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
