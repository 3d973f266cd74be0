package list_calendar_events

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	"github.com/m04kA/sto-booking-bot/internal/integrations/calendar"
	"github.com/m04kA/sto-booking-bot/pkg/logger"
)

type fakeCalendar struct {
	calendarID string
	from, to   time.Time
	events     []domain.CalendarEvent
	err        error
}

func (f *fakeCalendar) ListEvents(_ context.Context, calendarID string, from, to time.Time) ([]domain.CalendarEvent, error) {
	f.calendarID, f.from, f.to = calendarID, from, to
	return f.events, f.err
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/calendars/{calendarId}/events", h.Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_DefaultRange(t *testing.T) {
	loc := time.FixedZone("EET", 3*3600)
	start := time.Date(2026, 10, 19, 10, 0, 0, 0, loc)
	cal := &fakeCalendar{events: []domain.CalendarEvent{{
		ID:      "ev1",
		Summary: "ТО — Audi A4",
		Start:   start,
		End:     start.Add(time.Hour),
		Private: map[string]string{domain.EventPropChatID: "42"},
	}}}
	h := NewHandler(cal, loc, logger.NewNop())
	h.now = func() time.Time { return time.Date(2026, 10, 16, 15, 30, 0, 0, loc) }

	rec := serve(h, "/api/v1/calendars/cal-1/events")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cal-1", cal.calendarID)
	assert.True(t, cal.from.Equal(time.Date(2026, 10, 16, 0, 0, 0, 0, loc)))
	assert.True(t, cal.to.Equal(time.Date(2026, 10, 23, 0, 0, 0, 0, loc)))

	var body []EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "ev1", body[0].ID)
	assert.Equal(t, "42", body[0].ChatID)
}

func TestHandle_ExplicitRange(t *testing.T) {
	cal := &fakeCalendar{}
	h := NewHandler(cal, time.UTC, logger.NewNop())

	rec := serve(h, "/api/v1/calendars/cal-1/events?from=2026-10-19&to=2026-10-20T12:00:00Z")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, cal.from.Equal(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)))
	assert.True(t, cal.to.Equal(time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)))
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "invalid from", target: "/api/v1/calendars/c/events?from=yesterday", want: http.StatusBadRequest},
		{name: "invalid to", target: "/api/v1/calendars/c/events?to=x", want: http.StatusBadRequest},
		{name: "reversed range", target: "/api/v1/calendars/c/events?from=2026-10-20&to=2026-10-19", want: http.StatusBadRequest},
		{name: "too wide", target: "/api/v1/calendars/c/events?from=2026-01-01&to=2026-12-31", want: http.StatusBadRequest},
		{name: "not found", target: "/api/v1/calendars/c/events", err: fmt.Errorf("%w: nope", calendar.ErrCalendarNotFound), want: http.StatusNotFound},
		{name: "timeout", target: "/api/v1/calendars/c/events", err: calendar.ErrTimeout, want: http.StatusGatewayTimeout},
		{name: "internal", target: "/api/v1/calendars/c/events", err: calendar.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeCalendar{err: tt.err}, time.UTC, logger.NewNop())
			rec := serve(h, tt.target)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
