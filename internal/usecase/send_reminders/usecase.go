package send_reminders

import (
	"context"
	"strconv"
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

// UseCase рассылка напоминаний о записях из календарей
type UseCase struct {
	calendar     CalendarClient
	messenger    Messenger
	chats        ChatRecorder
	metrics      Metrics
	calendarIDs  []string
	location     *time.Location
	timeout      time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// Повторяющиеся идентификаторы календарей читаются один раз
func NewUseCase(
	calendar CalendarClient,
	messenger Messenger,
	chats ChatRecorder,
	metrics Metrics,
	calendarIDs []string,
	location *time.Location,
	timeout time.Duration,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		calendar:     calendar,
		messenger:    messenger,
		chats:        chats,
		metrics:      metrics,
		calendarIDs:  dedupe(calendarIDs),
		location:     location,
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

// Execute отправляет напоминания о записях на день today+offset
func (uc *UseCase) Execute(ctx context.Context, offset int) (*Response, error) {
	if offset != OffsetSameDay && offset != OffsetDayBefore {
		return nil, ErrInvalidOffset
	}

	now := uc.timeProvider.Now().In(uc.location)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.location).AddDate(0, 0, offset)
	to := from.AddDate(0, 0, 1)

	uc.logger.Info("SendReminders: offset=%d day=%s calendars=%d", offset, from.Format(domain.DateFormat), len(uc.calendarIDs))

	resp := &Response{}
	seen := make(map[string]struct{})

	for _, calendarID := range uc.calendarIDs {
		events, err := uc.listEvents(ctx, calendarID, from, to)
		if err != nil {
			uc.logger.Error("SendReminders: %s failed for calendar=%s: %v", OpListEvents, calendarID, err)
			uc.metrics.ExternalFailure(OpListEvents)
			continue
		}

		for _, event := range events {
			if event.ID != "" {
				if _, dup := seen[event.ID]; dup {
					continue
				}
				seen[event.ID] = struct{}{}
			}
			resp.Events++

			chatID, ok := eventChatID(event)
			if !ok || event.Start.IsZero() {
				resp.Skipped++
				continue
			}

			if uc.send(ctx, offset, chatID, event) {
				resp.Sent++
			} else {
				resp.Failed++
			}
		}
	}

	uc.logger.Info("SendReminders: offset=%d events=%d sent=%d failed=%d skipped=%d",
		offset, resp.Events, resp.Sent, resp.Failed, resp.Skipped)
	return resp, nil
}

func (uc *UseCase) listEvents(ctx context.Context, calendarID string, from, to time.Time) ([]domain.CalendarEvent, error) {
	callCtx, cancel := uc.withTimeout(ctx)
	defer cancel()
	return uc.calendar.ListEvents(callCtx, calendarID, from, to)
}

func (uc *UseCase) send(ctx context.Context, offset int, chatID int64, event domain.CalendarEvent) bool {
	text := reminderText(offset, event.Start.In(uc.location).Format(domain.DateTimeFormat), event)

	callCtx, cancel := uc.withTimeout(ctx)
	defer cancel()

	status := domain.MessageSent
	if err := uc.messenger.SendText(callCtx, chatID, text); err != nil {
		uc.logger.Error("SendReminders: %s failed for chat_id=%d event=%s: %v", OpSendReminder, chatID, event.ID, err)
		uc.metrics.ExternalFailure(OpSendReminder)
		status = domain.MessageFailed
	} else {
		uc.metrics.ReminderSent(kindFor(offset))
	}

	if err := uc.chats.RecordOutbound(ctx, chatID, text, uc.timeProvider.Now(), status); err != nil {
		uc.logger.Warn("SendReminders: failed to record reminder for chat_id=%d: %v", chatID, err)
	}
	return status == domain.MessageSent
}

func (uc *UseCase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, uc.timeout)
}

// eventChatID chat_id из extended properties, события без user_id или chat_id пропускаются
func eventChatID(event domain.CalendarEvent) (int64, bool) {
	if event.Private[domain.EventPropUserID] == "" {
		return 0, false
	}
	raw := event.Private[domain.EventPropChatID]
	if raw == "" {
		return 0, false
	}
	chatID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || chatID == 0 {
		return 0, false
	}
	return chatID, true
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
