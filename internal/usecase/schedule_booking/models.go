package schedule_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

const (
	OpConflictCheck = "schedule_conflict_check"
	OpCreateEvent   = "schedule_create_event"
	OpConfirm       = "schedule_confirm"

	maxDurationMinutes = 24 * 60
)

// Request ручная запись клиента оператором
type Request struct {
	ChatID          int64
	ServiceType     string
	Start           time.Time
	DurationMinutes int // 0 = длительность по умолчанию
}

// Response созданная запись
type Response struct {
	ChatID             int64
	CalendarID         string
	ExternalEventID    string
	Start              time.Time
	End                time.Time
	Confirmation       string
	ConfirmationStatus domain.MessageStatus
}

func confirmationText(start time.Time, duration int) string {
	return fmt.Sprintf("Запис підтверджено: %s, %d хв", start.Format(domain.DateTimeFormat), duration)
}

func eventSummary(serviceType, displayName string) string {
	return serviceType + " - " + displayName
}

func eventDescription(chatID int64) string {
	return fmt.Sprintf("Chat %d", chatID)
}
