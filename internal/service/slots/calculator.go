package slots

import (
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	"github.com/m04kA/sto-booking-bot/pkg/types"
)

// Calculator связывает функции расчёта слотов с настройками сервиса
type Calculator struct {
	hours       domain.WorkingHours
	location    *time.Location
	slotMinutes int
	horizonDays int
	cutoffHour  int
}

func NewCalculator(hours domain.WorkingHours, location *time.Location, slotMinutes, horizonDays, cutoffHour int) *Calculator {
	if location == nil {
		location = time.Local
	}
	return &Calculator{
		hours:       hours,
		location:    location,
		slotMinutes: slotMinutes,
		horizonDays: horizonDays,
		cutoffHour:  cutoffHour,
	}
}

// NewDefaultCalculator рабочие часы и лимиты по умолчанию
func NewDefaultCalculator(location *time.Location) *Calculator {
	return NewCalculator(
		domain.DefaultWorkingHours(),
		location,
		domain.DefaultSlotDurationMinutes,
		domain.DefaultHorizonDays,
		domain.DefaultCutoffHour,
	)
}

func (c *Calculator) Location() *time.Location {
	return c.location
}

func (c *Calculator) SlotMinutes() int {
	return c.slotMinutes
}

// Slots свободные слоты на дату
func (c *Calculator) Slots(date, now time.Time, busy []domain.Interval) []types.TimeString {
	return AvailableSlots(date.In(c.location), now.In(c.location), c.hours, busy, c.slotMinutes)
}

// Dates даты, доступные для выбора
func (c *Calculator) Dates(now time.Time) []time.Time {
	return CandidateDates(now.In(c.location), c.horizonDays, c.cutoffHour)
}

// ValidateDate проверяет выбранную дату
func (c *Calculator) ValidateDate(date, now time.Time) error {
	return ValidateDate(date.In(c.location), now.In(c.location), c.horizonDays, c.cutoffHour)
}

// ParseDate разбирает дату в часовом поясе сервиса
func (c *Calculator) ParseDate(value string) (time.Time, error) {
	return ParseDate(value, c.location)
}

// IsAvailable проверяет, что слот есть среди свободных на дату
func (c *Calculator) IsAvailable(date, now time.Time, slot types.TimeString, busy []domain.Interval) bool {
	for _, s := range c.Slots(date, now, busy) {
		if s == slot {
			return true
		}
	}
	return false
}
