package schedule_booking

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	scheduleBooking "github.com/m04kA/sto-booking-bot/internal/usecase/schedule_booking"
)

var errInvalidStart = errors.New("invalid start time")

// ScheduleRequest тело запроса ручной записи
type ScheduleRequest struct {
	ServiceType     string `json:"serviceType"`
	Start           string `json:"start"` // RFC3339 или YYYY-MM-DD HH:MM в часовом поясе сервиса
	DurationMinutes int    `json:"durationMinutes,omitempty"`
}

// ScheduleResponse созданная запись
type ScheduleResponse struct {
	ChatID             int64     `json:"chatId"`
	CalendarID         string    `json:"calendarId"`
	EventID            string    `json:"eventId"`
	Start              time.Time `json:"start"`
	End                time.Time `json:"end"`
	Confirmation       string    `json:"confirmation"`
	ConfirmationStatus string    `json:"confirmationStatus"`
}

// ToUseCaseRequest создает запрос use case из тела запроса
func ToUseCaseRequest(chatID int64, req *ScheduleRequest, loc *time.Location) (*scheduleBooking.Request, error) {
	start, err := parseStart(strings.TrimSpace(req.Start), loc)
	if err != nil {
		return nil, err
	}
	return &scheduleBooking.Request{
		ChatID:          chatID,
		ServiceType:     strings.TrimSpace(req.ServiceType),
		Start:           start,
		DurationMinutes: req.DurationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *scheduleBooking.Response) *ScheduleResponse {
	return &ScheduleResponse{
		ChatID:             resp.ChatID,
		CalendarID:         resp.CalendarID,
		EventID:            resp.ExternalEventID,
		Start:              resp.Start,
		End:                resp.End,
		Confirmation:       resp.Confirmation,
		ConfirmationStatus: string(resp.ConfirmationStatus),
	}
}

func parseStart(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, errInvalidStart
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(domain.DateTimeFormat, value, loc); err == nil {
		return t, nil
	}
	return time.Time{}, errInvalidStart
}
