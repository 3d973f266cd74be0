package create_booking

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

// UseCase use case отправки завершённой заявки: календарь, менеджер, подтверждение клиенту
type UseCase struct {
	calendar     CalendarClient
	messenger    Messenger
	chats        ChatRecorder
	metrics      Metrics
	serviceTypes map[string]domain.ServiceType
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// calendar может быть nil, если календарь не настроен
func NewUseCase(
	calendar CalendarClient,
	messenger Messenger,
	chats ChatRecorder,
	metrics Metrics,
	serviceTypes []domain.ServiceType,
	opts Options,
	logger Logger,
) *UseCase {
	byName := make(map[string]domain.ServiceType, len(serviceTypes))
	for _, st := range serviceTypes {
		byName[st.Name] = st
	}
	if opts.EventDuration <= 0 {
		opts.EventDuration = domain.DefaultEventDurationMinutes * time.Minute
	}
	return &UseCase{
		calendar:     calendar,
		messenger:    messenger,
		chats:        chats,
		metrics:      metrics,
		serviceTypes: byName,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute отправляет заявку
// Ошибка возвращается только для некорректной заявки, сбои внешних вызовов логируются
func (uc *UseCase) Execute(ctx context.Context, booking *domain.FinalizedBooking) (*Response, error) {
	if err := validateBooking(booking); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	serviceType, ok := uc.serviceTypes[booking.ServiceType]
	if !ok {
		uc.logger.Warn("CreateBooking: unknown service type %q for chat_id=%d", booking.ServiceType, booking.ChatID)
		return nil, ErrUnknownServiceType
	}

	resp := &Response{BookingID: uuid.NewString()}
	uc.logger.Info("CreateBooking: booking=%s chat_id=%d user=%d service=%s datetime=%s",
		resp.BookingID, booking.ChatID, booking.UserID, serviceLabel(booking), booking.Datetime)

	// 1. Событие в календаре
	if start, ok := booking.Start(); ok {
		eventID, created := uc.createEvent(ctx, booking, &serviceType, start, resp.BookingID)
		resp.CalendarEventID = eventID
		resp.CalendarCreated = created
	}

	// 2. Уведомление менеджеру
	resp.ManagerNotified = uc.notifyManager(ctx, booking, &serviceType, resp.BookingID)

	// 3. Подтверждение клиенту отправляется всегда
	resp.Acknowledged = uc.acknowledge(ctx, booking, resp.BookingID)

	uc.metrics.BookingCompleted(booking.ServiceType)

	uc.logger.Info("CreateBooking: booking=%s done, calendar=%t manager=%t ack=%t",
		resp.BookingID, resp.CalendarCreated, resp.ManagerNotified, resp.Acknowledged)
	return resp, nil
}

func (uc *UseCase) createEvent(ctx context.Context, b *domain.FinalizedBooking, st *domain.ServiceType, start time.Time, bookingID string) (string, bool) {
	if uc.calendar == nil || st.CalendarID == "" {
		uc.logger.Warn("CreateBooking: booking=%s calendar is not configured for %s, event skipped", bookingID, st.Name)
		return "", false
	}

	end := start.Add(uc.opts.EventDuration)
	callCtx, cancel := uc.withTimeout(ctx)
	defer cancel()

	eventID, err := uc.calendar.CreateEvent(callCtx, domain.CalendarEventRequest{
		CalendarID:  st.CalendarID,
		Summary:     eventSummary(b),
		Description: eventDescription(b),
		Start:       start,
		End:         end,
		TimeZone:    uc.opts.TimeZone,
		ColorID:     st.EventColorID(),
		Private: map[string]string{
			domain.EventPropUserID:      strconv.FormatInt(b.UserID, 10),
			domain.EventPropChatID:      strconv.FormatInt(b.ChatID, 10),
			domain.EventPropFullName:    b.FullName,
			domain.EventPropPhone:       b.Phone,
			domain.EventPropCar:         b.CarLabel,
			domain.EventPropServiceType: serviceLabel(b),
			domain.EventPropBookingID:   bookingID,
		},
	})
	if err != nil {
		uc.failure(OpCalendarCreate, b.ChatID, bookingID, err)
		return "", false
	}

	record := &domain.CalendarEventRecord{
		ChatID:          b.ChatID,
		CalendarID:      st.CalendarID,
		ExternalEventID: eventID,
		StartTime:       start,
		EndTime:         end,
	}
	if err := uc.chats.RecordCalendarEvent(ctx, record); err != nil {
		uc.failure(OpCalendarRecord, b.ChatID, bookingID, err)
	}
	return eventID, true
}

func (uc *UseCase) notifyManager(ctx context.Context, b *domain.FinalizedBooking, st *domain.ServiceType, bookingID string) bool {
	if st.ManagerChatID == 0 {
		uc.logger.Warn("CreateBooking: booking=%s manager chat is not configured for %s", bookingID, st.Name)
		return false
	}

	callCtx, cancel := uc.withTimeout(ctx)
	defer cancel()

	if err := uc.messenger.SendHTML(callCtx, st.ManagerChatID, managerMessage(b)); err != nil {
		uc.failure(OpManagerNotify, b.ChatID, bookingID, err)
		return false
	}
	return true
}

func (uc *UseCase) acknowledge(ctx context.Context, b *domain.FinalizedBooking, bookingID string) bool {
	callCtx, cancel := uc.withTimeout(ctx)
	defer cancel()

	status := domain.MessageSent
	if err := uc.messenger.SendText(callCtx, b.ChatID, acknowledgementText); err != nil {
		uc.failure(OpAcknowledge, b.ChatID, bookingID, err)
		status = domain.MessageFailed
	}

	if err := uc.chats.RecordOutbound(ctx, b.ChatID, acknowledgementText, uc.timeProvider.Now(), status); err != nil {
		uc.failure(OpRecordOutbound, b.ChatID, bookingID, err)
	}
	return status == domain.MessageSent
}

func (uc *UseCase) failure(op string, chatID int64, bookingID string, err error) {
	uc.logger.Error("CreateBooking: %s failed for chat_id=%d booking=%s: %v", op, chatID, bookingID, err)
	uc.metrics.ExternalFailure(op)
}

func (uc *UseCase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, uc.opts.Timeout)
}
