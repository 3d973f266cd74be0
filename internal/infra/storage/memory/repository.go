package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

// Repository хранилище чатов в памяти процесса, используется без базы данных
// Все операции выполняются под одним мьютексом, поэтому счётчики чата не теряют обновлений
type Repository struct {
	mu       sync.RWMutex
	chats    map[int64]*domain.Chat
	messages map[int64][]*domain.Message
	events   map[int64][]*domain.CalendarEventRecord

	lastMessageID int64
	lastEventID   int64
	now           func() time.Time
}

// NewRepository создает пустое хранилище
func NewRepository() *Repository {
	return &Repository{
		chats:    make(map[int64]*domain.Chat),
		messages: make(map[int64][]*domain.Message),
		events:   make(map[int64][]*domain.CalendarEventRecord),
		now:      time.Now,
	}
}

func (r *Repository) UpsertChat(_ context.Context, chatID int64, displayName string, lastMessageAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.chatLocked(chatID, lastMessageAt)
	if displayName != "" {
		c.DisplayName = displayName
	}
	if lastMessageAt.After(c.LastMessageAt) {
		c.LastMessageAt = lastMessageAt
	}

	return nil
}

func (r *Repository) AppendMessage(_ context.Context, msg *domain.Message) error {
	if !msg.Direction.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, msg.Direction)
	}
	if msg.Status == "" {
		msg.Status = domain.MessageSent
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.chatLocked(msg.ChatID, msg.Timestamp)
	if msg.Timestamp.After(c.LastMessageAt) {
		c.LastMessageAt = msg.Timestamp
	}
	if msg.Direction == domain.DirectionIn {
		c.UnreadCount++
	}

	r.lastMessageID++
	msg.ID = r.lastMessageID

	stored := *msg
	r.messages[msg.ChatID] = append(r.messages[msg.ChatID], &stored)

	return nil
}

func (r *Repository) ResetUnread(_ context.Context, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.chats[chatID]
	if !ok {
		return ErrChatNotFound
	}
	c.UnreadCount = 0

	return nil
}

func (r *Repository) GetChat(_ context.Context, chatID int64) (*domain.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.chats[chatID]
	if !ok {
		return nil, ErrChatNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *Repository) ListChats(_ context.Context) ([]*domain.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chats := make([]*domain.Chat, 0, len(r.chats))
	for _, c := range r.chats {
		cp := *c
		chats = append(chats, &cp)
	}

	sort.Slice(chats, func(i, j int) bool {
		if chats[i].LastMessageAt.Equal(chats[j].LastMessageAt) {
			return chats[i].ChatID < chats[j].ChatID
		}
		return chats[i].LastMessageAt.After(chats[j].LastMessageAt)
	})

	return chats, nil
}

func (r *Repository) ListMessages(_ context.Context, chatID int64) ([]*domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.messages[chatID]
	messages := make([]*domain.Message, 0, len(stored))
	for _, m := range stored {
		cp := *m
		messages = append(messages, &cp)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})

	return messages, nil
}

func (r *Repository) AddCalendarEvent(_ context.Context, event *domain.CalendarEventRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastEventID++
	event.ID = r.lastEventID
	if event.CreatedAt.IsZero() {
		event.CreatedAt = r.now()
	}

	stored := *event
	r.events[event.ChatID] = append(r.events[event.ChatID], &stored)

	return nil
}

func (r *Repository) ListCalendarEvents(_ context.Context, chatID int64) ([]*domain.CalendarEventRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.events[chatID]
	events := make([]*domain.CalendarEventRecord, 0, len(stored))
	for _, e := range stored {
		cp := *e
		events = append(events, &cp)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})

	return events, nil
}

// chatLocked возвращает чат, создавая его при первом обращении. Вызывать под r.mu
func (r *Repository) chatLocked(chatID int64, at time.Time) *domain.Chat {
	c, ok := r.chats[chatID]
	if !ok {
		c = &domain.Chat{
			ChatID:        chatID,
			CreatedAt:     at,
			LastMessageAt: at,
		}
		r.chats[chatID] = c
	}
	return c
}
