package chats

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	chatRepo "github.com/m04kA/sto-booking-bot/internal/infra/storage/chat"
	memoryRepo "github.com/m04kA/sto-booking-bot/internal/infra/storage/memory"
	"github.com/m04kA/sto-booking-bot/internal/service/chats/models"
	"github.com/m04kA/sto-booking-bot/pkg/ptr"
)

// форматы ts во входящих сообщениях релея
var incomingTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Service сервис журнала чатов для оператора
type Service struct {
	repo         ChatRepository
	sender       MessageSender
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса чатов
// sender может быть nil, тогда ответы оператора недоступны
func NewService(repo ChatRepository, sender MessageSender, logger Logger) *Service {
	return &Service{
		repo:         repo,
		sender:       sender,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// RecordInbound сохраняет входящее сообщение и обновляет имя чата
func (s *Service) RecordInbound(ctx context.Context, chatID int64, displayName, text string, ts time.Time, meta *string) error {
	if displayName == "" {
		displayName = strconv.FormatInt(chatID, 10)
	}

	if err := s.repo.UpsertChat(ctx, chatID, displayName, ts); err != nil {
		s.logger.Error("RecordInbound: failed to upsert chat=%d: %v", chatID, err)
		return fmt.Errorf("%w: RecordInbound - upsert chat: %v", ErrInternal, err)
	}

	msg := &domain.Message{
		ChatID:    chatID,
		Direction: domain.DirectionIn,
		Text:      text,
		Timestamp: ts,
		Status:    domain.MessageSent,
		Meta:      meta,
	}
	if err := s.repo.AppendMessage(ctx, msg); err != nil {
		s.logger.Error("RecordInbound: failed to append message to chat=%d: %v", chatID, err)
		return fmt.Errorf("%w: RecordInbound - append message: %v", ErrInternal, err)
	}

	return nil
}

// RecordOutbound сохраняет исходящее сообщение со статусом доставки
func (s *Service) RecordOutbound(ctx context.Context, chatID int64, text string, ts time.Time, status domain.MessageStatus) error {
	msg := &domain.Message{
		ChatID:    chatID,
		Direction: domain.DirectionOut,
		Text:      text,
		Timestamp: ts,
		Status:    status,
	}
	if err := s.repo.AppendMessage(ctx, msg); err != nil {
		s.logger.Error("RecordOutbound: failed to append message to chat=%d: %v", chatID, err)
		return fmt.Errorf("%w: RecordOutbound - append message: %v", ErrInternal, err)
	}
	return nil
}

// Ingest сохраняет сообщение, пришедшее через релей. raw сохраняется как meta
func (s *Service) Ingest(ctx context.Context, req *models.IncomingMessage, raw []byte) error {
	chatID, err := req.ChatID.Int64()
	if err != nil || chatID == 0 {
		s.logger.Warn("Ingest: invalid chat_id=%q", string(req.ChatID))
		return fmt.Errorf("%w: chat_id is required", ErrInvalidInput)
	}

	ts := s.parseIncomingTime(req.Ts)

	var meta *string
	if len(raw) > 0 {
		meta = ptr.Ptr(string(raw))
	}

	s.logger.Info("Ingest: chat=%d message_id=%s", chatID, string(req.MessageID))
	return s.RecordInbound(ctx, chatID, strings.TrimSpace(req.UserName), req.Text, ts, meta)
}

// ListChats чаты, последние по времени сообщения первыми
func (s *Service) ListChats(ctx context.Context) ([]models.ChatResponse, error) {
	chats, err := s.repo.ListChats(ctx)
	if err != nil {
		s.logger.Error("ListChats: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListChats - repository error: %v", ErrInternal, err)
	}

	result := make([]models.ChatResponse, 0, len(chats))
	for _, c := range chats {
		result = append(result, models.FromDomainChat(c))
	}
	return result, nil
}

// GetChat карточка чата
func (s *Service) GetChat(ctx context.Context, chatID int64) (*models.ChatResponse, error) {
	c, err := s.getChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	resp := models.FromDomainChat(c)
	return &resp, nil
}

// ListMessages история чата в порядке времени
func (s *Service) ListMessages(ctx context.Context, chatID int64) ([]models.MessageResponse, error) {
	if _, err := s.getChat(ctx, chatID); err != nil {
		return nil, err
	}

	messages, err := s.repo.ListMessages(ctx, chatID)
	if err != nil {
		s.logger.Error("ListMessages: repository error for chat=%d: %v", chatID, err)
		return nil, fmt.Errorf("%w: ListMessages - repository error: %v", ErrInternal, err)
	}

	result := make([]models.MessageResponse, 0, len(messages))
	for _, m := range messages {
		result = append(result, models.FromDomainMessage(m))
	}
	return result, nil
}

// MarkRead сбрасывает счётчик непрочитанных при открытии чата оператором
func (s *Service) MarkRead(ctx context.Context, chatID int64) error {
	if err := s.repo.ResetUnread(ctx, chatID); err != nil {
		if isNotFound(err) {
			s.logger.Warn("MarkRead: chat=%d not found", chatID)
			return ErrChatNotFound
		}
		s.logger.Error("MarkRead: repository error for chat=%d: %v", chatID, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}
	return nil
}

// ListCalendarEvents события календаря, созданные для чата
func (s *Service) ListCalendarEvents(ctx context.Context, chatID int64) ([]models.CalendarEventResponse, error) {
	events, err := s.repo.ListCalendarEvents(ctx, chatID)
	if err != nil {
		s.logger.Error("ListCalendarEvents: repository error for chat=%d: %v", chatID, err)
		return nil, fmt.Errorf("%w: ListCalendarEvents - repository error: %v", ErrInternal, err)
	}

	result := make([]models.CalendarEventResponse, 0, len(events))
	for _, e := range events {
		result = append(result, models.FromDomainCalendarEvent(e))
	}
	return result, nil
}

// RecordCalendarEvent сохраняет событие календаря, созданное для чата
func (s *Service) RecordCalendarEvent(ctx context.Context, event *domain.CalendarEventRecord) error {
	if err := s.repo.AddCalendarEvent(ctx, event); err != nil {
		s.logger.Error("RecordCalendarEvent: failed for chat=%d event=%s: %v", event.ChatID, event.ExternalEventID, err)
		return fmt.Errorf("%w: RecordCalendarEvent - repository error: %v", ErrInternal, err)
	}
	return nil
}

// SendReply отправляет ответ оператора и сохраняет его со статусом sent или failed
func (s *Service) SendReply(ctx context.Context, req *models.SendReplyRequest) (*models.MessageResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if s.sender == nil {
		s.logger.Warn("SendReply: messenger is not configured, chat=%d", req.ChatID)
		return nil, ErrSenderUnavailable
	}

	if _, err := s.getChat(ctx, req.ChatID); err != nil {
		return nil, err
	}

	status := domain.MessageSent
	sendErr := s.sender.SendText(ctx, req.ChatID, text)
	if sendErr != nil {
		status = domain.MessageFailed
		s.logger.Error("SendReply: failed to send to chat=%d: %v", req.ChatID, sendErr)
	}

	msg := &domain.Message{
		ChatID:    req.ChatID,
		Direction: domain.DirectionOut,
		Text:      text,
		Timestamp: s.timeProvider.Now(),
		Status:    status,
	}
	if err := s.repo.AppendMessage(ctx, msg); err != nil {
		s.logger.Error("SendReply: failed to record message for chat=%d: %v", req.ChatID, err)
		return nil, fmt.Errorf("%w: SendReply - append message: %v", ErrInternal, err)
	}

	resp := models.FromDomainMessage(msg)
	if sendErr != nil {
		return &resp, fmt.Errorf("%w: %v", ErrDeliveryFailed, sendErr)
	}

	s.logger.Info("SendReply: message id=%d sent to chat=%d", msg.ID, req.ChatID)
	return &resp, nil
}

func (s *Service) getChat(ctx context.Context, chatID int64) (*domain.Chat, error) {
	c, err := s.repo.GetChat(ctx, chatID)
	if err != nil {
		if isNotFound(err) {
			s.logger.Warn("GetChat: chat=%d not found", chatID)
			return nil, ErrChatNotFound
		}
		s.logger.Error("GetChat: repository error for chat=%d: %v", chatID, err)
		return nil, fmt.Errorf("%w: GetChat - repository error: %v", ErrInternal, err)
	}
	return c, nil
}

func (s *Service) parseIncomingTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return s.timeProvider.Now()
	}
	for _, layout := range incomingTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	s.logger.Warn("Ingest: unparsable ts=%q, using current time", value)
	return s.timeProvider.Now()
}

func isNotFound(err error) bool {
	return errors.Is(err, chatRepo.ErrChatNotFound) || errors.Is(err, memoryRepo.ErrChatNotFound)
}
