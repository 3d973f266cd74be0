package calendar

import (
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

const (
	orderByStartTime = "startTime"
	allDayLayout     = "2006-01-02"
)

// toEvent собирает тело запроса Events.Insert
func toEvent(req domain.CalendarEventRequest) *gcal.Event {
	event := &gcal.Event{
		Summary:     req.Summary,
		Description: req.Description,
		ColorId:     req.ColorID,
		Start: &gcal.EventDateTime{
			DateTime: req.Start.Format(time.RFC3339),
			TimeZone: req.TimeZone,
		},
		End: &gcal.EventDateTime{
			DateTime: req.End.Format(time.RFC3339),
			TimeZone: req.TimeZone,
		},
	}
	if len(req.Private) > 0 {
		private := make(map[string]string, len(req.Private))
		for k, v := range req.Private {
			private[k] = v
		}
		event.ExtendedProperties = &gcal.EventExtendedProperties{Private: private}
	}
	return event
}

// fromEvent конвертирует событие Google Calendar в доменную модель
func fromEvent(e *gcal.Event, loc *time.Location) (domain.CalendarEvent, error) {
	start, err := parseEventTime(e.Start, loc)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("event %s start: %v", e.Id, err)
	}
	end, err := parseEventTime(e.End, loc)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("event %s end: %v", e.Id, err)
	}

	result := domain.CalendarEvent{
		ID:      e.Id,
		Summary: e.Summary,
		Start:   start,
		End:     end,
		Private: map[string]string{},
	}
	if e.ExtendedProperties != nil {
		for k, v := range e.ExtendedProperties.Private {
			result.Private[k] = v
		}
	}
	return result, nil
}

// parseEventTime разбирает dateTime, а для событий на весь день поле date
func parseEventTime(dt *gcal.EventDateTime, loc *time.Location) (time.Time, error) {
	if dt == nil {
		return time.Time{}, nil
	}
	if dt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, dt.DateTime)
		if err != nil {
			return time.Time{}, err
		}
		return t.In(loc), nil
	}
	if dt.Date != "" {
		return time.ParseInLocation(allDayLayout, dt.Date, loc)
	}
	return time.Time{}, nil
}
