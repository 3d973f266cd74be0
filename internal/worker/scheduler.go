package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// SessionSweepSpec расписание очистки просроченных диалогов
const SessionSweepSpec = "@every 1m"

// Scheduler периодические задачи бота в часовом поясе сервиса
type Scheduler struct {
	cron   *cron.Cron
	logger Logger
	now    func() time.Time

	mu  sync.RWMutex
	ctx context.Context
}

// NewScheduler создает планировщик; паника в задаче логируется и не роняет процесс
func NewScheduler(location *time.Location, logger Logger) *Scheduler {
	if location == nil {
		location = time.UTC
	}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithChain(cron.Recover(cronLogger{logger: logger})),
		),
		logger: logger,
		now:    time.Now,
		ctx:    context.Background(),
	}
}

// AddReminders регистрирует рассылку напоминаний
func (s *Scheduler) AddReminders(spec string, offsetDays int, useCase ReminderUseCase) error {
	if _, err := s.cron.AddFunc(spec, func() { s.runReminders(useCase, offsetDays) }); err != nil {
		return fmt.Errorf("invalid reminder spec %q: %w", spec, err)
	}
	s.logger.Info("Scheduler: reminders offset=%d scheduled at %q", offsetDays, spec)
	return nil
}

// AddSessionSweep регистрирует очистку просроченных диалогов
func (s *Scheduler) AddSessionSweep(spec string, store SessionStore, metrics Metrics) error {
	if _, err := s.cron.AddFunc(spec, func() { s.sweepSessions(store, metrics) }); err != nil {
		return fmt.Errorf("invalid session sweep spec %q: %w", spec, err)
	}
	s.logger.Info("Scheduler: session sweep scheduled at %q", spec)
	return nil
}

// Len количество зарегистрированных задач
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start запускает планировщик и блокируется до отмены ctx
// После отмены ждёт завершения выполняющихся задач
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("Scheduler: started with %d jobs", s.Len())

	<-ctx.Done()

	s.logger.Info("Scheduler: stopping")
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler: stopped")
}

func (s *Scheduler) jobContext() context.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return context.WithoutCancel(s.ctx)
}

func (s *Scheduler) runReminders(useCase ReminderUseCase, offsetDays int) {
	start := s.now()

	resp, err := useCase.Execute(s.jobContext(), offsetDays)
	if err != nil {
		s.logger.Error("Scheduler: reminders offset=%d failed: %v", offsetDays, err)
		return
	}

	s.logger.Info("Scheduler: reminders offset=%d done in %s: events=%d, sent=%d, failed=%d, skipped=%d",
		offsetDays, s.now().Sub(start), resp.Events, resp.Sent, resp.Failed, resp.Skipped)
	if resp.Failed > 0 {
		s.logger.Warn("Scheduler: %d reminders failed to send", resp.Failed)
	}
}

func (s *Scheduler) sweepSessions(store SessionStore, metrics Metrics) {
	removed := store.Sweep(s.now())
	active := store.Len()
	metrics.ActiveSessions(active)

	if removed > 0 {
		s.logger.Info("Scheduler: removed %d expired sessions, active=%d", removed, active)
	}
}

// cronLogger адаптер логгера сервиса к cron.Logger
type cronLogger struct {
	logger Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info("cron: %s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: %s: %v %v", msg, err, keysAndValues)
}
