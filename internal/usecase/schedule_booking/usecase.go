package schedule_booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	"github.com/m04kA/sto-booking-bot/internal/service/chats"
)

// UseCase ручная запись клиента из десктоп-компаньона
type UseCase struct {
	calendar        CalendarClient
	messenger       Messenger
	chats           ChatService
	metrics         Metrics
	serviceTypes    map[string]domain.ServiceType
	timeZone        string
	defaultDuration int
	location        *time.Location
	timeout         time.Duration
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// messenger может быть nil, тогда подтверждение сохраняется со статусом failed
func NewUseCase(
	calendar CalendarClient,
	messenger Messenger,
	chatService ChatService,
	metrics Metrics,
	serviceTypes []domain.ServiceType,
	location *time.Location,
	defaultDuration int,
	timeout time.Duration,
	logger Logger,
) *UseCase {
	byName := make(map[string]domain.ServiceType, len(serviceTypes))
	for _, st := range serviceTypes {
		byName[st.Name] = st
	}
	if defaultDuration <= 0 {
		defaultDuration = domain.DefaultEventDurationMinutes
	}
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		calendar:        calendar,
		messenger:       messenger,
		chats:           chatService,
		metrics:         metrics,
		serviceTypes:    byName,
		timeZone:        location.String(),
		defaultDuration: defaultDuration,
		location:        location,
		timeout:         timeout,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute проверяет конфликт, создает событие, сохраняет его и отправляет подтверждение
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("ScheduleBooking: validation failed: %v", err)
		return nil, err
	}

	st, ok := uc.serviceTypes[req.ServiceType]
	if !ok {
		uc.logger.Warn("ScheduleBooking: unknown service type %q", req.ServiceType)
		return nil, ErrUnknownServiceType
	}
	if st.CalendarID == "" {
		uc.logger.Warn("ScheduleBooking: no calendar for service type %q", req.ServiceType)
		return nil, ErrNoCalendar
	}

	chat, err := uc.chats.GetChat(ctx, req.ChatID)
	if err != nil {
		if errors.Is(err, chats.ErrChatNotFound) {
			return nil, ErrChatNotFound
		}
		uc.logger.Error("ScheduleBooking: failed to get chat=%d: %v", req.ChatID, err)
		return nil, fmt.Errorf("%w: failed to get chat: %v", ErrInternal, err)
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.defaultDuration
	}
	start := req.Start.In(uc.location)
	end := start.Add(time.Duration(duration) * time.Minute)

	uc.logger.Info("ScheduleBooking: chat=%d service=%s start=%s duration=%d",
		req.ChatID, st.Name, start.Format(domain.DateTimeFormat), duration)

	// 1. Проверка конфликта
	if err := uc.checkConflict(ctx, st.CalendarID, start, end); err != nil {
		return nil, err
	}

	// 2. Создание события
	eventID, err := uc.createEvent(ctx, &st, chat.DisplayName, req.ChatID, start, end)
	if err != nil {
		return nil, err
	}

	// 3. Локальная запись о событии
	record := &domain.CalendarEventRecord{
		ChatID:          req.ChatID,
		CalendarID:      st.CalendarID,
		ExternalEventID: eventID,
		StartTime:       start,
		EndTime:         end,
	}
	if err := uc.chats.RecordCalendarEvent(ctx, record); err != nil {
		uc.logger.Error("ScheduleBooking: failed to record event=%s for chat=%d: %v", eventID, req.ChatID, err)
	}

	// 4. Подтверждение клиенту
	confirmation := confirmationText(start, duration)
	status := uc.confirm(ctx, req.ChatID, confirmation)

	return &Response{
		ChatID:             req.ChatID,
		CalendarID:         st.CalendarID,
		ExternalEventID:    eventID,
		Start:              start,
		End:                end,
		Confirmation:       confirmation,
		ConfirmationStatus: status,
	}, nil
}

func (uc *UseCase) checkConflict(ctx context.Context, calendarID string, start, end time.Time) error {
	callCtx, cancel := uc.withTimeout(ctx)
	defer cancel()

	events, err := uc.calendar.ListEvents(callCtx, calendarID, start, end)
	if err != nil {
		uc.logger.Error("ScheduleBooking: %s failed for calendar=%s: %v", OpConflictCheck, calendarID, err)
		uc.metrics.ExternalFailure(OpConflictCheck)
		return fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}

	for _, busy := range domain.BusyIntervals(events) {
		if busy.Overlaps(start, end) {
			uc.logger.Warn("ScheduleBooking: slot %s busy in calendar=%s", start.Format(domain.DateTimeFormat), calendarID)
			return ErrSlotBusy
		}
	}
	return nil
}

func (uc *UseCase) createEvent(ctx context.Context, st *domain.ServiceType, displayName string, chatID int64, start, end time.Time) (string, error) {
	callCtx, cancel := uc.withTimeout(ctx)
	defer cancel()

	eventID, err := uc.calendar.CreateEvent(callCtx, domain.CalendarEventRequest{
		CalendarID:  st.CalendarID,
		Summary:     eventSummary(st.Name, displayName),
		Description: eventDescription(chatID),
		Start:       start,
		End:         end,
		TimeZone:    uc.timeZone,
		ColorID:     st.EventColorID(),
		Private: map[string]string{
			domain.EventPropChatID:      strconv.FormatInt(chatID, 10),
			domain.EventPropFullName:    displayName,
			domain.EventPropServiceType: st.Name,
		},
	})
	if err != nil {
		uc.logger.Error("ScheduleBooking: %s failed for chat=%d: %v", OpCreateEvent, chatID, err)
		uc.metrics.ExternalFailure(OpCreateEvent)
		return "", fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}
	return eventID, nil
}

func (uc *UseCase) confirm(ctx context.Context, chatID int64, text string) domain.MessageStatus {
	status := domain.MessageSent
	if uc.messenger == nil {
		uc.logger.Warn("ScheduleBooking: messenger is not configured, confirmation for chat=%d not sent", chatID)
		status = domain.MessageFailed
	} else {
		callCtx, cancel := uc.withTimeout(ctx)
		err := uc.messenger.SendText(callCtx, chatID, text)
		cancel()
		if err != nil {
			uc.logger.Error("ScheduleBooking: %s failed for chat=%d: %v", OpConfirm, chatID, err)
			uc.metrics.ExternalFailure(OpConfirm)
			status = domain.MessageFailed
		}
	}

	if err := uc.chats.RecordOutbound(ctx, chatID, text, uc.timeProvider.Now(), status); err != nil {
		uc.logger.Error("ScheduleBooking: failed to record confirmation for chat=%d: %v", chatID, err)
	}
	return status
}

func (uc *UseCase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, uc.timeout)
}
