package schedule_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	"github.com/m04kA/sto-booking-bot/internal/infra/storage/memory"
	"github.com/m04kA/sto-booking-bot/internal/service/chats"
	"github.com/m04kA/sto-booking-bot/pkg/logger"
	"github.com/m04kA/sto-booking-bot/pkg/metrics"
)

var kyiv = time.FixedZone("EEST", 3*60*60)

var now = time.Date(2025, 6, 2, 9, 0, 0, 0, kyiv)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return now }

type fakeCalendar struct {
	busy      []domain.CalendarEvent
	listErr   error
	createErr error
	created   []domain.CalendarEventRequest
}

func (f *fakeCalendar) ListEvents(_ context.Context, _ string, _, _ time.Time) ([]domain.CalendarEvent, error) {
	return f.busy, f.listErr
}

func (f *fakeCalendar) CreateEvent(_ context.Context, req domain.CalendarEventRequest) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, req)
	return "evt-9", nil
}

type fakeMessenger struct {
	err  error
	sent []string
}

func (f *fakeMessenger) SendText(_ context.Context, _ int64, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

type fixture struct {
	uc        *UseCase
	repo      *memory.Repository
	calendar  *fakeCalendar
	messenger *fakeMessenger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := memory.NewRepository()
	require.NoError(t, repo.UpsertChat(context.Background(), 42, "Іван", now.Add(-time.Hour)))

	f := &fixture{repo: repo, calendar: &fakeCalendar{}, messenger: &fakeMessenger{}}
	service := chats.NewService(repo, nil, logger.NewNop())
	serviceTypes := []domain.ServiceType{
		{Name: "СТО", CalendarID: "sto@calendar"},
		{Name: "Консультація"},
	}
	f.uc = NewUseCase(f.calendar, f.messenger, service, metrics.NewRecorder(nil), serviceTypes,
		kyiv, 30, time.Second, logger.NewNop()).WithTimeProvider(fixedClock{})
	return f
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := time.Date(2025, 6, 3, 11, 0, 0, 0, kyiv)

	resp, err := f.uc.Execute(ctx, &Request{ChatID: 42, ServiceType: "СТО", Start: start, DurationMinutes: 45})
	require.NoError(t, err)

	assert.Equal(t, "evt-9", resp.ExternalEventID)
	assert.Equal(t, start.Add(45*time.Minute), resp.End)
	assert.Equal(t, "Запис підтверджено: 2025-06-03 11:00, 45 хв", resp.Confirmation)
	assert.Equal(t, domain.MessageSent, resp.ConfirmationStatus)

	require.Len(t, f.calendar.created, 1)
	assert.Equal(t, "СТО - Іван", f.calendar.created[0].Summary)
	assert.Equal(t, "Chat 42", f.calendar.created[0].Description)
	assert.Equal(t, "11", f.calendar.created[0].ColorID)

	assert.Equal(t, []string{resp.Confirmation}, f.messenger.sent)

	events, err := f.repo.ListCalendarEvents(ctx, 42)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "evt-9", events[0].ExternalEventID)

	messages, err := f.repo.ListMessages(ctx, 42)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, domain.DirectionOut, messages[0].Direction)
	assert.Equal(t, domain.MessageSent, messages[0].Status)
}

func TestExecute_DefaultDuration(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2025, 6, 3, 11, 0, 0, 0, kyiv)

	resp, err := f.uc.Execute(context.Background(), &Request{ChatID: 42, ServiceType: "СТО", Start: start})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, resp.End.Sub(resp.Start))
	assert.Equal(t, "Запис підтверджено: 2025-06-03 11:00, 30 хв", resp.Confirmation)
}

func TestExecute_Conflict(t *testing.T) {
	start := time.Date(2025, 6, 3, 11, 0, 0, 0, kyiv)

	tests := []struct {
		name    string
		busy    domain.CalendarEvent
		wantErr error
	}{
		{
			name:    "overlapping event",
			busy:    domain.CalendarEvent{ID: "x", Start: start.Add(15 * time.Minute), End: start.Add(45 * time.Minute)},
			wantErr: ErrSlotBusy,
		},
		{
			name: "event ending at start",
			busy: domain.CalendarEvent{ID: "x", Start: start.Add(-30 * time.Minute), End: start},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.calendar.busy = []domain.CalendarEvent{tt.busy}

			_, err := f.uc.Execute(context.Background(), &Request{ChatID: 42, ServiceType: "СТО", Start: start})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.calendar.created)
				assert.Empty(t, f.messenger.sent)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestExecute_ConfirmationFailureRecorded(t *testing.T) {
	f := newFixture(t)
	f.messenger.err = errors.New("blocked")
	start := time.Date(2025, 6, 3, 11, 0, 0, 0, kyiv)

	resp, err := f.uc.Execute(context.Background(), &Request{ChatID: 42, ServiceType: "СТО", Start: start})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageFailed, resp.ConfirmationStatus)

	messages, err := f.repo.ListMessages(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, domain.MessageFailed, messages[0].Status)
}

func TestExecute_Errors(t *testing.T) {
	start := time.Date(2025, 6, 3, 11, 0, 0, 0, kyiv)

	tests := []struct {
		name    string
		req     *Request
		setup   func(f *fixture)
		wantErr error
	}{
		{name: "nil request", req: nil, wantErr: ErrInvalidInput},
		{name: "past start", req: &Request{ChatID: 42, ServiceType: "СТО", Start: now.Add(-time.Minute)}, wantErr: ErrInvalidInput},
		{name: "negative duration", req: &Request{ChatID: 42, ServiceType: "СТО", Start: start, DurationMinutes: -5}, wantErr: ErrInvalidInput},
		{name: "unknown service", req: &Request{ChatID: 42, ServiceType: "Мийка", Start: start}, wantErr: ErrUnknownServiceType},
		{name: "no calendar", req: &Request{ChatID: 42, ServiceType: "Консультація", Start: start}, wantErr: ErrNoCalendar},
		{name: "unknown chat", req: &Request{ChatID: 99, ServiceType: "СТО", Start: start}, wantErr: ErrChatNotFound},
		{
			name:    "calendar list failure",
			req:     &Request{ChatID: 42, ServiceType: "СТО", Start: start},
			setup:   func(f *fixture) { f.calendar.listErr = errors.New("timeout") },
			wantErr: ErrCalendarUnavailable,
		},
		{
			name:    "calendar create failure",
			req:     &Request{ChatID: 42, ServiceType: "СТО", Start: start},
			setup:   func(f *fixture) { f.calendar.createErr = errors.New("forbidden") },
			wantErr: ErrCalendarUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.messenger.sent)
		})
	}
}
