package list_calendar_events

import (
	"errors"
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

const (
	defaultRangeDays = 7
	maxRangeDays     = 93
)

var errInvalidTime = errors.New("invalid time value")

// EventResponse событие календаря
type EventResponse struct {
	ID          string            `json:"id"`
	Summary     string            `json:"summary"`
	Start       time.Time         `json:"start"`
	End         time.Time         `json:"end"`
	ChatID      string            `json:"chatId,omitempty"`
	ServiceType string            `json:"serviceType,omitempty"`
	Private     map[string]string `json:"private,omitempty"`
}

// FromDomainEvents конвертирует события календаря в HTTP response
func FromDomainEvents(events []domain.CalendarEvent) []EventResponse {
	result := make([]EventResponse, 0, len(events))
	for _, e := range events {
		result = append(result, EventResponse{
			ID:          e.ID,
			Summary:     e.Summary,
			Start:       e.Start,
			End:         e.End,
			ChatID:      e.Private[domain.EventPropChatID],
			ServiceType: e.Private[domain.EventPropServiceType],
			Private:     e.Private,
		})
	}
	return result
}

// parseBound принимает RFC3339 или YYYY-MM-DD (начало дня в локации сервиса)
func parseBound(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(domain.DateFormat, value, loc); err == nil {
		return t, nil
	}
	return time.Time{}, errInvalidTime
}
