package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

// Request модели

// IncomingMessage входящее сообщение, пересланное ботом через релей
type IncomingMessage struct {
	ChatID    FlexibleID `json:"chat_id"`
	UserName  string     `json:"user_name"`
	Text      string     `json:"text"`
	Ts        string     `json:"ts"`
	MessageID FlexibleID `json:"message_id"`
}

// SendReplyRequest ответ оператора в чат
type SendReplyRequest struct {
	ChatID int64  `json:"-"`
	Text   string `json:"text"`
}

// FlexibleID идентификатор, приходящий числом или строкой
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexibleID(n.String())
	return nil
}

// Int64 числовое значение идентификатора
func (f FlexibleID) Int64() (int64, error) {
	return strconv.ParseInt(string(f), 10, 64)
}

// Response модели

// ChatResponse карточка чата
type ChatResponse struct {
	ChatID        int64     `json:"chatId"`
	DisplayName   string    `json:"displayName"`
	CreatedAt     time.Time `json:"createdAt"`
	LastMessageAt time.Time `json:"lastMessageAt"`
	UnreadCount   int       `json:"unreadCount"`
}

// MessageResponse сообщение чата
type MessageResponse struct {
	ID        int64   `json:"id"`
	ChatID    int64   `json:"chatId"`
	Direction string  `json:"direction"`
	Text      string  `json:"text"`
	Timestamp string  `json:"ts"`
	Status    string  `json:"status"`
	Meta      *string `json:"meta,omitempty"`
}

// CalendarEventResponse событие календаря, созданное для чата
type CalendarEventResponse struct {
	ID              int64     `json:"id"`
	ChatID          int64     `json:"chatId"`
	CalendarID      string    `json:"calendarId"`
	ExternalEventID string    `json:"externalEventId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Конвертеры

func FromDomainChat(c *domain.Chat) ChatResponse {
	return ChatResponse{
		ChatID:        c.ChatID,
		DisplayName:   c.DisplayName,
		CreatedAt:     c.CreatedAt,
		LastMessageAt: c.LastMessageAt,
		UnreadCount:   c.UnreadCount,
	}
}

func FromDomainMessage(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		ChatID:    m.ChatID,
		Direction: string(m.Direction),
		Text:      m.Text,
		Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
		Status:    string(m.Status),
		Meta:      m.Meta,
	}
}

func FromDomainCalendarEvent(e *domain.CalendarEventRecord) CalendarEventResponse {
	return CalendarEventResponse{
		ID:              e.ID,
		ChatID:          e.ChatID,
		CalendarID:      e.CalendarID,
		ExternalEventID: e.ExternalEventID,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		CreatedAt:       e.CreatedAt,
	}
}
