package domain

import (
	"time"

	"github.com/m04kA/sto-booking-bot/pkg/types"
)

// DaySchedule рабочие часы одного дня, обе границы включительно
type DaySchedule struct {
	IsOpen bool
	Open   types.TimeString
	Close  types.TimeString
}

// WorkingHours рабочие часы сервиса по дням недели
type WorkingHours struct {
	Weekdays DaySchedule // понедельник - пятница
	Saturday DaySchedule
	Sunday   DaySchedule
}

// DefaultWorkingHours пн-пт 09:00-17:30, сб 09:00-13:00, вс выходной
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{
		Weekdays: DaySchedule{IsOpen: true, Open: "09:00", Close: "17:30"},
		Saturday: DaySchedule{IsOpen: true, Open: "09:00", Close: "13:00"},
		Sunday:   DaySchedule{IsOpen: false},
	}
}

// ForDay возвращает расписание для дня недели
func (w WorkingHours) ForDay(day time.Weekday) DaySchedule {
	switch day {
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return w.Weekdays
	}
}
