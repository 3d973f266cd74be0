package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	"github.com/m04kA/sto-booking-bot/internal/service/slots"
)

// UseCase use case для получения доступных слотов с учётом занятости календаря
type UseCase struct {
	calendar     CalendarClient
	calculator   SlotCalculator
	metrics      Metrics
	serviceTypes map[string]domain.ServiceType
	timeout      time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// calendar может быть nil, тогда занятость не учитывается
func NewUseCase(
	calendar CalendarClient,
	calculator SlotCalculator,
	metrics Metrics,
	serviceTypes []domain.ServiceType,
	timeout time.Duration,
	logger Logger,
) *UseCase {
	byName := make(map[string]domain.ServiceType, len(serviceTypes))
	for _, st := range serviceTypes {
		byName[st.Name] = st
	}
	return &UseCase{
		calendar:     calendar,
		calculator:   calculator,
		metrics:      metrics,
		serviceTypes: byName,
		timeout:      timeout,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: service=%s, date=%s", req.ServiceType, req.Date)

	// 2. Тип услуги
	st, ok := uc.serviceTypes[strings.TrimSpace(req.ServiceType)]
	if !ok {
		uc.logger.Warn("GetAvailableSlots: unknown service type %q", req.ServiceType)
		return nil, ErrUnknownServiceType
	}
	if !st.RequiresDatetime {
		return nil, ErrNoDatetime
	}

	// 3. Дата
	now := uc.timeProvider.Now()
	date, err := uc.calculator.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if err := uc.calculator.ValidateDate(date, now); err != nil {
		switch {
		case errors.Is(err, slots.ErrSundayClosed):
			return nil, ErrSundayClosed
		case errors.Is(err, slots.ErrDateOutOfRange):
			return nil, ErrDateOutOfRange
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	// 4. Занятость из календаря с graceful degradation
	busy, degraded := uc.busyIntervals(ctx, &st, date)

	// 5. Свободные слоты
	result := uc.calculator.Slots(date, now, busy)

	uc.logger.Info("GetAvailableSlots: found %d slots for %s on %s (busy=%d, degraded=%t)",
		len(result), st.Name, date.Format(domain.DateFormat), len(busy), degraded)

	return &Response{
		Date:            date,
		ServiceType:     st.Name,
		DurationMinutes: uc.calculator.SlotMinutes(),
		Slots:           result,
		Degraded:        degraded,
	}, nil
}

func (uc *UseCase) busyIntervals(ctx context.Context, st *domain.ServiceType, date time.Time) ([]domain.Interval, bool) {
	if uc.calendar == nil || st.CalendarID == "" {
		return nil, false
	}

	loc := uc.calculator.Location()
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 1)

	callCtx, cancel := uc.withTimeout(ctx)
	defer cancel()

	events, err := uc.calendar.ListEvents(callCtx, st.CalendarID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: calendar unavailable, applying graceful degradation for calendar=%s: %v", st.CalendarID, err)
		uc.metrics.ExternalFailure(OpBusyLookup)
		return nil, true
	}
	return domain.BusyIntervals(events), false
}

func (uc *UseCase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, uc.timeout)
}
