package create_booking

import "time"

// Операции для логов и метрик внешних сбоев
const (
	OpCalendarCreate = "calendar_create"
	OpCalendarRecord = "calendar_record"
	OpManagerNotify  = "manager_notify"
	OpAcknowledge    = "acknowledge"
	OpRecordOutbound = "record_outbound"
)

// Options параметры отправки заявки
type Options struct {
	TimeZone      string        // часовой пояс события в календаре
	EventDuration time.Duration // длительность события
	Timeout       time.Duration // ограничение на каждый внешний вызов
}

// Response результат отправки заявки
// Шаги независимы: сбой одного не отменяет остальные
type Response struct {
	BookingID       string
	CalendarEventID string
	CalendarCreated bool
	ManagerNotified bool
	Acknowledged    bool
}
