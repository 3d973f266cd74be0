package domain

import "time"

// CalendarEventRequest параметры создания события
type CalendarEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
	ColorID     string
	Private     map[string]string
}

// CalendarEvent событие календаря
type CalendarEvent struct {
	ID      string
	Summary string
	Start   time.Time
	End     time.Time
	Private map[string]string
}

// Interval занятый промежуток [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps строгая проверка пересечения, касание границ пересечением не считается
func (i Interval) Overlaps(start, end time.Time) bool {
	return start.Before(i.End) && end.After(i.Start)
}

// BusyIntervals интервалы занятости из списка событий
func BusyIntervals(events []CalendarEvent) []Interval {
	busy := make([]Interval, 0, len(events))
	for _, e := range events {
		if e.Start.IsZero() || e.End.IsZero() {
			continue
		}
		busy = append(busy, Interval{Start: e.Start, End: e.End})
	}
	return busy
}
