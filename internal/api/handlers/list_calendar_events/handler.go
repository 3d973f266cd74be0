package list_calendar_events

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/sto-booking-bot/internal/api/handlers"
	"github.com/m04kA/sto-booking-bot/internal/integrations/calendar"
)

const (
	msgMissingCalendarID = "ID календаря обязателен"
	msgInvalidFrom       = "некорректный параметр from, ожидается RFC3339 или YYYY-MM-DD"
	msgInvalidTo         = "некорректный параметр to, ожидается RFC3339 или YYYY-MM-DD"
	msgInvalidRange      = "некорректный диапазон дат"
	msgCalendarNotFound  = "календарь не найден"
	msgCalendarTimeout   = "календарь не ответил вовремя"
)

type Handler struct {
	calendar CalendarClient
	location *time.Location
	now      func() time.Time
	logger   Logger
}

func NewHandler(calendar CalendarClient, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		calendar: calendar,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// Handle GET /api/v1/calendars/{calendarId}/events
// Query params: from, to (optional; по умолчанию неделя с начала текущего дня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	calendarID := strings.TrimSpace(mux.Vars(r)["calendarId"])
	if calendarID == "" {
		h.logger.Warn("GET /calendars/{id}/events - Missing calendar ID")
		handlers.RespondBadRequest(w, msgMissingCalendarID)
		return
	}

	query := r.URL.Query()

	now := h.now().In(h.location)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.location)
	if v := strings.TrimSpace(query.Get("from")); v != "" {
		parsed, err := parseBound(v, h.location)
		if err != nil {
			h.logger.Warn("GET /calendars/{id}/events - Invalid from=%q", v)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		from = parsed
	}

	to := from.AddDate(0, 0, defaultRangeDays)
	if v := strings.TrimSpace(query.Get("to")); v != "" {
		parsed, err := parseBound(v, h.location)
		if err != nil {
			h.logger.Warn("GET /calendars/{id}/events - Invalid to=%q", v)
			handlers.RespondBadRequest(w, msgInvalidTo)
			return
		}
		to = parsed
	}

	if !to.After(from) || to.Sub(from) > maxRangeDays*24*time.Hour {
		h.logger.Warn("GET /calendars/{id}/events - Invalid range: from=%s, to=%s", from, to)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	events, err := h.calendar.ListEvents(r.Context(), calendarID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrCalendarNotFound):
			h.logger.Warn("GET /calendars/{id}/events - Calendar not found: calendar_id=%s", calendarID)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, calendar.ErrTimeout):
			h.logger.Error("GET /calendars/{id}/events - Calendar timeout: calendar_id=%s", calendarID)
			handlers.RespondError(w, http.StatusGatewayTimeout, msgCalendarTimeout)

		default:
			h.logger.Error("GET /calendars/{id}/events - Failed to list events: calendar_id=%s, error=%v", calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendars/{id}/events - Events retrieved: calendar_id=%s, count=%d", calendarID, len(events))
	handlers.RespondJSON(w, http.StatusOK, FromDomainEvents(events))
}
