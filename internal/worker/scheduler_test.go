package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sendReminders "github.com/m04kA/sto-booking-bot/internal/usecase/send_reminders"
	"github.com/m04kA/sto-booking-bot/pkg/logger"
)

type fakeReminders struct {
	mu      sync.Mutex
	offsets []int
	ctxErr  error
	err     error
}

func (f *fakeReminders) Execute(ctx context.Context, offsetDays int) (*sendReminders.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offsets = append(f.offsets, offsetDays)
	f.ctxErr = ctx.Err()
	if f.err != nil {
		return nil, f.err
	}
	return &sendReminders.Response{Events: 2, Sent: 1, Skipped: 1}, nil
}

type fakeStore struct {
	swept   []time.Time
	removed int
	active  int
}

func (f *fakeStore) Sweep(now time.Time) int {
	f.swept = append(f.swept, now)
	return f.removed
}

func (f *fakeStore) Len() int { return f.active }

type fakeMetrics struct {
	active []int
}

func (f *fakeMetrics) ActiveSessions(n int) { f.active = append(f.active, n) }

func TestAddJobs(t *testing.T) {
	s := NewScheduler(time.UTC, logger.NewNop())

	require.NoError(t, s.AddReminders("0 9 * * *", sendReminders.OffsetSameDay, &fakeReminders{}))
	require.NoError(t, s.AddReminders("0 19 * * *", sendReminders.OffsetDayBefore, &fakeReminders{}))
	require.NoError(t, s.AddSessionSweep(SessionSweepSpec, &fakeStore{}, &fakeMetrics{}))
	assert.Equal(t, 3, s.Len())

	assert.Error(t, s.AddReminders("not a spec", 0, &fakeReminders{}))
	assert.Equal(t, 3, s.Len())
}

func TestRunReminders_ContextSurvivesShutdown(t *testing.T) {
	s := NewScheduler(time.UTC, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	s.ctx = ctx
	cancel()

	uc := &fakeReminders{}
	s.runReminders(uc, sendReminders.OffsetDayBefore)

	assert.Equal(t, []int{1}, uc.offsets)
	assert.NoError(t, uc.ctxErr)
}

func TestRunReminders_ErrorIsLogged(t *testing.T) {
	s := NewScheduler(time.UTC, logger.NewNop())
	uc := &fakeReminders{err: errors.New("calendar down")}

	assert.NotPanics(t, func() { s.runReminders(uc, sendReminders.OffsetSameDay) })
	assert.Equal(t, []int{0}, uc.offsets)
}

func TestSweepSessions_UpdatesGauge(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	s := NewScheduler(time.UTC, logger.NewNop())
	s.now = func() time.Time { return now }

	store := &fakeStore{removed: 2, active: 3}
	m := &fakeMetrics{}
	s.sweepSessions(store, m)

	assert.Equal(t, []time.Time{now}, store.swept)
	assert.Equal(t, []int{3}, m.active)
}

func TestStart_ReturnsAfterCancel(t *testing.T) {
	s := NewScheduler(time.UTC, logger.NewNop())
	require.NoError(t, s.AddSessionSweep(SessionSweepSpec, &fakeStore{}, &fakeMetrics{}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
