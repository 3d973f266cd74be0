package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/sto-booking-bot/internal/usecase/get_available_slots"
	"github.com/m04kA/sto-booking-bot/pkg/logger"
	"github.com/m04kA/sto-booking-bot/pkg/types"
)

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:            time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		ServiceType:     "ТО",
		DurationMinutes: 30,
		Slots:           []types.TimeString{"09:00", "09:30"},
	}}
	h := NewHandler(uc, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/available-slots?serviceType=%D0%A2%D0%9E&date=2026-10-19", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "ТО", uc.got.ServiceType)
	assert.Equal(t, "2026-10-19", uc.got.Date)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-10-19", body.Date)
	assert.Equal(t, []string{"09:00", "09:30"}, body.Slots)
	assert.False(t, body.Degraded)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		err   error
		want  int
	}{
		{name: "missing service type", query: "date=2026-10-19", want: http.StatusBadRequest},
		{name: "missing date", query: "serviceType=x", want: http.StatusBadRequest},
		{name: "unknown service type", query: "serviceType=x&date=2026-10-19", err: getAvailableSlots.ErrUnknownServiceType, want: http.StatusNotFound},
		{name: "sunday", query: "serviceType=x&date=2026-10-18", err: getAvailableSlots.ErrSundayClosed, want: http.StatusBadRequest},
		{name: "invalid date", query: "serviceType=x&date=bad", err: getAvailableSlots.ErrInvalidDate, want: http.StatusBadRequest},
		{name: "out of range", query: "serviceType=x&date=2030-01-01", err: getAvailableSlots.ErrDateOutOfRange, want: http.StatusBadRequest},
		{name: "internal", query: "serviceType=x&date=2026-10-19", err: assert.AnError, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/available-slots?"+tt.query, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
