package schedule_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	scheduleBooking "github.com/m04kA/sto-booking-bot/internal/usecase/schedule_booking"
	"github.com/m04kA/sto-booking-bot/pkg/logger"
)

type fakeUseCase struct {
	got *scheduleBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *scheduleBooking.Request) (*scheduleBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &scheduleBooking.Response{
		ChatID:             req.ChatID,
		CalendarID:         "cal-1",
		ExternalEventID:    "ev-1",
		Start:              req.Start,
		End:                req.Start.Add(time.Hour),
		Confirmation:       "Запис підтверджено",
		ConfirmationStatus: domain.MessageSent,
	}, nil
}

func serve(h *Handler, target, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/chats/{chatId}/schedule", h.Handle).Methods(http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	loc := time.FixedZone("EET", 3*3600)
	uc := &fakeUseCase{}
	h := NewHandler(uc, loc, logger.NewNop())

	rec := serve(h, "/api/v1/chats/42/schedule", `{"serviceType":"ТО","start":"2026-10-19 10:00","durationMinutes":60}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(42), uc.got.ChatID)
	assert.Equal(t, "ТО", uc.got.ServiceType)
	assert.Equal(t, 60, uc.got.DurationMinutes)
	assert.True(t, uc.got.Start.Equal(time.Date(2026, 10, 19, 10, 0, 0, 0, loc)))

	var body ScheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ev-1", body.EventID)
	assert.Equal(t, "sent", body.ConfirmationStatus)
}

func TestHandle_Errors(t *testing.T) {
	valid := `{"serviceType":"ТО","start":"2026-10-19T10:00:00+03:00"}`

	tests := []struct {
		name   string
		target string
		body   string
		err    error
		want   int
	}{
		{name: "invalid chat id", target: "/api/v1/chats/abc/schedule", body: valid, want: http.StatusBadRequest},
		{name: "invalid json", target: "/api/v1/chats/1/schedule", body: `{`, want: http.StatusBadRequest},
		{name: "invalid start", target: "/api/v1/chats/1/schedule", body: `{"serviceType":"ТО","start":"tomorrow"}`, want: http.StatusBadRequest},
		{name: "busy", target: "/api/v1/chats/1/schedule", body: valid, err: scheduleBooking.ErrSlotBusy, want: http.StatusConflict},
		{name: "chat not found", target: "/api/v1/chats/1/schedule", body: valid, err: scheduleBooking.ErrChatNotFound, want: http.StatusNotFound},
		{name: "unknown service type", target: "/api/v1/chats/1/schedule", body: valid, err: scheduleBooking.ErrUnknownServiceType, want: http.StatusNotFound},
		{name: "invalid input", target: "/api/v1/chats/1/schedule", body: valid, err: scheduleBooking.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "calendar down", target: "/api/v1/chats/1/schedule", body: valid, err: scheduleBooking.ErrCalendarUnavailable, want: http.StatusBadGateway},
		{name: "internal", target: "/api/v1/chats/1/schedule", body: valid, err: scheduleBooking.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, time.UTC, logger.NewNop())
			rec := serve(h, tt.target, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
