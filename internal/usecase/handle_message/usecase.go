package handle_message

import (
	"context"
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	"github.com/m04kA/sto-booking-bot/internal/service/session"
)

// UseCase обработка входящего сообщения: журнал, релей, диалог записи
type UseCase struct {
	sessions     SessionStore
	messenger    Messenger
	chats        ChatRecorder
	relay        RelayClient
	dispatcher   Dispatcher
	metrics      Metrics
	timeout      time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// relay может быть nil, если десктоп-компаньон не настроен
func NewUseCase(
	sessions SessionStore,
	messenger Messenger,
	chats ChatRecorder,
	relay RelayClient,
	dispatcher Dispatcher,
	metrics Metrics,
	timeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessions:     sessions,
		messenger:    messenger,
		chats:        chats,
		relay:        relay,
		dispatcher:   dispatcher,
		metrics:      metrics,
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

// Execute обрабатывает одно входящее сообщение пользователя
// Сообщения одного пользователя должны приходить последовательно
func (uc *UseCase) Execute(ctx context.Context, msg domain.InboundMessage) error {
	now := uc.timeProvider.Now()

	uc.recordInbound(ctx, msg, now)
	uc.pushToRelay(ctx, msg)

	switch {
	case isStart(msg.Input):
		uc.sessions.Remove(msg.UserID)
		uc.metrics.ActiveSessions(uc.sessions.Len())
		uc.reply(ctx, msg.ChatID, MainMenu())
		return nil

	case isBegin(msg.Input):
		sess := uc.sessions.Create(msg.UserID, msg.ChatID, msg.FullName)
		uc.metrics.ActiveSessions(uc.sessions.Len())
		outcome := sess.Begin(now)
		uc.logger.Info("HandleMessage: session started for user=%d chat_id=%d", msg.UserID, msg.ChatID)
		uc.reply(ctx, msg.ChatID, outcome.Prompt)
		return nil
	}

	sess, ok := uc.sessions.Get(msg.UserID)
	if !ok {
		uc.reply(ctx, msg.ChatID, MainMenu())
		return nil
	}

	return uc.submit(ctx, sess, msg, now)
}

func (uc *UseCase) submit(ctx context.Context, sess *session.Session, msg domain.InboundMessage, now time.Time) error {
	step := sess.Step()
	outcome := sess.Submit(msg.Input, now)

	if outcome.Err != nil {
		uc.metrics.SessionStep(string(step), resultInvalid)
		uc.logger.Info("HandleMessage: user=%d step=%s rejected input: %v", msg.UserID, step, outcome.Err)
		uc.reply(ctx, msg.ChatID, outcome.Prompt)
		return nil
	}

	if !outcome.Completed() {
		uc.metrics.SessionStep(string(step), resultOK)
		uc.reply(ctx, msg.ChatID, outcome.Prompt)
		return nil
	}

	uc.metrics.SessionStep(string(step), resultComplete)
	uc.logger.Info("HandleMessage: user=%d completed booking for %s", msg.UserID, outcome.Booking.ServiceType)

	_, err := uc.dispatcher.Execute(ctx, outcome.Booking)
	if err != nil {
		uc.logger.Error("HandleMessage: %s failed for chat_id=%d: %v", OpDispatch, msg.ChatID, err)
		uc.metrics.ExternalFailure(OpDispatch)
		// подтверждение не ушло, пользователь не должен остаться без ответа
		uc.reply(ctx, msg.ChatID, DispatchFailed())
	}
	// сессию удаляет только этот обработчик и только если её не заменили новой
	uc.sessions.RemoveIf(sess)
	uc.metrics.ActiveSessions(uc.sessions.Len())
	return err
}

// reply отправляет подсказку и записывает её в журнал чата
func (uc *UseCase) reply(ctx context.Context, chatID int64, prompt domain.Prompt) {
	if prompt.Text == "" {
		return
	}

	callCtx, cancel := uc.withTimeout(ctx)
	defer cancel()

	status := domain.MessageSent
	if err := uc.messenger.SendPrompt(callCtx, chatID, prompt); err != nil {
		uc.logger.Error("HandleMessage: %s failed for chat_id=%d: %v", OpSendPrompt, chatID, err)
		uc.metrics.ExternalFailure(OpSendPrompt)
		status = domain.MessageFailed
	}

	if err := uc.chats.RecordOutbound(ctx, chatID, prompt.Text, uc.timeProvider.Now(), status); err != nil {
		uc.logger.Warn("HandleMessage: %s failed for chat_id=%d: %v", OpRecordChat, chatID, err)
		uc.metrics.ExternalFailure(OpRecordChat)
	}
}

func (uc *UseCase) recordInbound(ctx context.Context, msg domain.InboundMessage, now time.Time) {
	ts := msg.Timestamp
	if ts.IsZero() {
		ts = now
	}
	name := msg.FullName
	if name == "" {
		name = msg.Username
	}
	if err := uc.chats.RecordInbound(ctx, msg.ChatID, name, msg.Description(), ts, nil); err != nil {
		uc.logger.Warn("HandleMessage: %s failed for chat_id=%d: %v", OpRecordChat, msg.ChatID, err)
		uc.metrics.ExternalFailure(OpRecordChat)
	}
}

func (uc *UseCase) pushToRelay(ctx context.Context, msg domain.InboundMessage) {
	if uc.relay == nil {
		return
	}

	callCtx, cancel := uc.withTimeout(ctx)
	defer cancel()

	if err := uc.relay.Push(callCtx, msg); err != nil {
		uc.logger.Warn("HandleMessage: %s failed for chat_id=%d: %v", OpRelayPush, msg.ChatID, err)
		uc.metrics.ExternalFailure(OpRelayPush)
	}
}

func (uc *UseCase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, uc.timeout)
}
