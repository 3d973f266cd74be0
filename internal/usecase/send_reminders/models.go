package send_reminders

import (
	"fmt"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

const (
	OffsetSameDay   = 0
	OffsetDayBefore = 1

	KindSameDay   = "same_day"
	KindDayBefore = "day_before"

	OpListEvents   = "reminder_list"
	OpSendReminder = "reminder_send"
)

const (
	textSameDay   = "🔔 Нагадування: сьогодні ваш запис на %s.\n🚗 %s\n🔧 %s"
	textDayBefore = "🔔 Нагадування: завтра у вас запис на %s.\n🚗 %s\n🔧 %s"
)

// Response итог прогона
type Response struct {
	Events  int // всего событий за день
	Sent    int
	Failed  int
	Skipped int // события без chat_id
}

func kindFor(offset int) string {
	if offset == OffsetDayBefore {
		return KindDayBefore
	}
	return KindSameDay
}

func reminderText(offset int, datetime string, event domain.CalendarEvent) string {
	template := textSameDay
	if offset == OffsetDayBefore {
		template = textDayBefore
	}
	return fmt.Sprintf(template, datetime, event.Private[domain.EventPropCar], event.Private[domain.EventPropServiceType])
}
