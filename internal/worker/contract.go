package worker

import (
	"context"
	"time"

	sendReminders "github.com/m04kA/sto-booking-bot/internal/usecase/send_reminders"
)

// ReminderUseCase рассылка напоминаний на день со смещением offsetDays
type ReminderUseCase interface {
	Execute(ctx context.Context, offsetDays int) (*sendReminders.Response, error)
}

// SessionStore хранилище незавершённых диалогов
type SessionStore interface {
	Sweep(now time.Time) int
	Len() int
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	ActiveSessions(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
