package handle_message

import (
	"context"
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	"github.com/m04kA/sto-booking-bot/internal/service/session"
	"github.com/m04kA/sto-booking-bot/internal/usecase/create_booking"
)

// SessionStore интерфейс хранилища сессий диалога
type SessionStore interface {
	Get(userID int64) (*session.Session, bool)
	Create(userID, chatID int64, fullName string) *session.Session
	Remove(userID int64)
	RemoveIf(sess *session.Session)
	Len() int
}

// Messenger интерфейс отправки подсказок пользователю
type Messenger interface {
	SendPrompt(ctx context.Context, chatID int64, prompt domain.Prompt) error
}

// ChatRecorder интерфейс журнала чатов
type ChatRecorder interface {
	RecordInbound(ctx context.Context, chatID int64, displayName, text string, ts time.Time, meta *string) error
	RecordOutbound(ctx context.Context, chatID int64, text string, ts time.Time, status domain.MessageStatus) error
}

// RelayClient интерфейс пересылки входящих сообщений в десктоп-компаньон
type RelayClient interface {
	Push(ctx context.Context, msg domain.InboundMessage) error
}

// Dispatcher интерфейс отправки завершённой заявки
type Dispatcher interface {
	Execute(ctx context.Context, booking *domain.FinalizedBooking) (*create_booking.Response, error)
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	SessionStep(step, result string)
	ActiveSessions(n int)
	ExternalFailure(operation string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
