package domain

import "time"

// Direction направление сообщения
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

func (d Direction) IsValid() bool {
	return d == DirectionIn || d == DirectionOut
}

// MessageStatus статус доставки сообщения
type MessageStatus string

const (
	MessageSent   MessageStatus = "sent"
	MessageFailed MessageStatus = "failed"
)

// Chat карточка чата для оператора
type Chat struct {
	ChatID        int64
	DisplayName   string
	CreatedAt     time.Time
	LastMessageAt time.Time
	UnreadCount   int
}

// Message запись в журнале сообщений чата
type Message struct {
	ID        int64
	ChatID    int64
	Direction Direction
	Text      string
	Timestamp time.Time
	Status    MessageStatus
	Meta      *string
}

// CalendarEventRecord локальная копия созданного события календаря
type CalendarEventRecord struct {
	ID              int64
	ChatID          int64
	CalendarID      string
	ExternalEventID string
	StartTime       time.Time
	EndTime         time.Time
	CreatedAt       time.Time
}
