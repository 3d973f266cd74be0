package slots

import (
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	"github.com/m04kA/sto-booking-bot/pkg/types"
)

// AvailableSlots возвращает свободные слоты на дату в хронологическом порядке
// Слоты идут с шагом slotMinutes от открытия до закрытия, обе границы включительно
// Если date совпадает с днём now, слоты не позже текущего времени отбрасываются
// Слот [start, start+slotMinutes) пересекающийся с любым интервалом из busy отбрасывается
func AvailableSlots(
	date time.Time,
	now time.Time,
	hours domain.WorkingHours,
	busy []domain.Interval,
	slotMinutes int,
) []types.TimeString {
	if slotMinutes <= 0 {
		slotMinutes = domain.DefaultSlotDurationMinutes
	}

	now = now.In(date.Location())

	// Проверяем, что дата не в прошлом
	if isDateInPast(date, now) {
		return []types.TimeString{}
	}

	schedule := hours.ForDay(date.Weekday())
	if !schedule.IsOpen {
		return []types.TimeString{}
	}

	openMinutes := schedule.Open.Minutes()
	closeMinutes := schedule.Close.Minutes()
	if openMinutes < 0 || closeMinutes < 0 {
		return []types.TimeString{}
	}

	today := isSameDay(date, now)
	slotDuration := time.Duration(slotMinutes) * time.Minute

	result := make([]types.TimeString, 0)
	for m := openMinutes; m <= closeMinutes; m += slotMinutes {
		slot, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			break
		}

		start := slot.OnDate(date)

		// Сегодня: отбрасываем слоты в прошлом и текущий
		if today && !start.After(now) {
			continue
		}

		if overlapsAny(start, start.Add(slotDuration), busy) {
			continue
		}

		result = append(result, slot)
	}

	return result
}

// CandidateDates даты для выбора в ближайшие horizonDays дней, начиная с сегодня
// Сегодня исключается, если now.Hour() >= cutoffHour. Воскресенья исключаются
func CandidateDates(now time.Time, horizonDays, cutoffHour int) []time.Time {
	today := startOfDay(now)

	dates := make([]time.Time, 0, horizonDays)
	for i := 0; i < horizonDays; i++ {
		if i == 0 && now.Hour() >= cutoffHour {
			continue
		}

		day := today.AddDate(0, 0, i)
		if day.Weekday() == time.Sunday {
			continue
		}

		dates = append(dates, day)
	}

	return dates
}

// ValidateDate проверяет выбранную дату по тем же правилам, что и CandidateDates
// Для воскресенья возвращается отдельная ошибка ErrSundayClosed
func ValidateDate(date, now time.Time, horizonDays, cutoffHour int) error {
	now = now.In(date.Location())

	if date.Weekday() == time.Sunday {
		return ErrSundayClosed
	}

	day := startOfDay(date)
	first := startOfDay(now)
	if now.Hour() >= cutoffHour {
		first = first.AddDate(0, 0, 1)
	}
	last := startOfDay(now).AddDate(0, 0, horizonDays-1)

	if day.Before(first) || day.After(last) {
		return ErrDateOutOfRange
	}

	return nil
}

// ParseDate разбирает дату YYYY-MM-DD в часовом поясе loc
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation(domain.DateFormat, value, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

// overlapsAny проверяет пересечение слота с занятыми интервалами
// Касание границ пересечением не считается
func overlapsAny(start, end time.Time, busy []domain.Interval) bool {
	for _, b := range busy {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return startOfDay(date).Before(startOfDay(now))
}
