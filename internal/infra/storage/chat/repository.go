package chat

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/sto-booking-bot/internal/domain"
	"github.com/m04kA/sto-booking-bot/pkg/dbmetrics"
	"github.com/m04kA/sto-booking-bot/pkg/psqlbuilder"
)

// upsertOnMessage обновляет счётчики чата одним выражением, строка чата блокируется до конца транзакции
const upsertOnMessage = "ON CONFLICT (chat_id) DO UPDATE SET " +
	"last_message_at = GREATEST(chats.last_message_at, EXCLUDED.last_message_at), " +
	"unread_count = chats.unread_count + EXCLUDED.unread_count"

const upsertOnChat = "ON CONFLICT (chat_id) DO UPDATE SET " +
	"display_name = CASE WHEN EXCLUDED.display_name <> '' THEN EXCLUDED.display_name ELSE chats.display_name END, " +
	"last_message_at = GREATEST(chats.last_message_at, EXCLUDED.last_message_at)"

var chatColumns = []string{"chat_id", "display_name", "created_at", "last_message_at", "unread_count"}

// Repository хранилище чатов, сообщений и событий календаря в PostgreSQL
type Repository struct {
	db        DBExecutor
	txManager TransactionManager
}

// NewRepository создает новый экземпляр репозитория чатов
func NewRepository(db DBExecutor, txManager TransactionManager) *Repository {
	return &Repository{db: db, txManager: txManager}
}

// UpsertChat создаёт чат или обновляет имя и время последнего сообщения
func (r *Repository) UpsertChat(ctx context.Context, chatID int64, displayName string, lastMessageAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := upsertChatQuery(chatID, displayName, lastMessageAt)
	if err != nil {
		return fmt.Errorf("%w: UpsertChat - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertChat - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// AppendMessage добавляет сообщение и обновляет чат в одной транзакции
// Входящее сообщение увеличивает unread_count на 1, исходящее только двигает last_message_at
func (r *Repository) AppendMessage(ctx context.Context, msg *domain.Message) error {
	if !msg.Direction.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, msg.Direction)
	}
	if msg.Status == "" {
		msg.Status = domain.MessageSent
	}

	unreadInc := 0
	if msg.Direction == domain.DirectionIn {
		unreadInc = 1
	}

	return r.txManager.Do(ctx, func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, r.db)

		chatQuery, chatArgs, err := touchChatQuery(msg.ChatID, msg.Timestamp, unreadInc)
		if err != nil {
			return fmt.Errorf("%w: AppendMessage - build chat upsert: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(txCtx, chatQuery, chatArgs...); err != nil {
			return fmt.Errorf("%w: AppendMessage - execute chat upsert: %v", ErrExecQuery, err)
		}

		msgQuery, msgArgs, err := insertMessageQuery(msg)
		if err != nil {
			return fmt.Errorf("%w: AppendMessage - build message insert: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(txCtx, msgQuery, msgArgs...).Scan(&msg.ID); err != nil {
			return fmt.Errorf("%w: AppendMessage - execute message insert: %v", ErrExecQuery, err)
		}

		return nil
	})
}

// ResetUnread обнуляет счётчик непрочитанных, повторный вызов ничего не меняет
func (r *Repository) ResetUnread(ctx context.Context, chatID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := resetUnreadQuery(chatID)
	if err != nil {
		return fmt.Errorf("%w: ResetUnread - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ResetUnread - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ResetUnread - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrChatNotFound
	}

	return nil
}

// GetChat получает чат по ID
func (r *Repository) GetChat(ctx context.Context, chatID int64) (*domain.Chat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(chatColumns...).
		From("chats").
		Where(squirrel.Eq{"chat_id": chatID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetChat - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Chat
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ChatID,
		&c.DisplayName,
		&c.CreatedAt,
		&c.LastMessageAt,
		&c.UnreadCount,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("%w: GetChat - scan: %v", ErrScanRow, err)
	}

	return &c, nil
}

// ListChats возвращает чаты, последние по времени сообщения первыми
func (r *Repository) ListChats(ctx context.Context) ([]*domain.Chat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(chatColumns...).
		From("chats").
		OrderBy("last_message_at DESC", "chat_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListChats - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListChats - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	chats := make([]*domain.Chat, 0)
	for rows.Next() {
		var c domain.Chat
		if err := rows.Scan(&c.ChatID, &c.DisplayName, &c.CreatedAt, &c.LastMessageAt, &c.UnreadCount); err != nil {
			return nil, fmt.Errorf("%w: ListChats - scan: %v", ErrScanRow, err)
		}
		chats = append(chats, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListChats - rows iteration: %v", ErrScanRow, err)
	}

	return chats, nil
}

// ListMessages возвращает историю чата в порядке времени
func (r *Repository) ListMessages(ctx context.Context, chatID int64) ([]*domain.Message, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listMessagesQuery(chatID)
	if err != nil {
		return nil, fmt.Errorf("%w: ListMessages - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListMessages - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	messages := make([]*domain.Message, 0)
	for rows.Next() {
		var (
			m    domain.Message
			meta sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.ChatID, &m.Direction, &m.Text, &m.Timestamp, &m.Status, &meta); err != nil {
			return nil, fmt.Errorf("%w: ListMessages - scan: %v", ErrScanRow, err)
		}
		if meta.Valid {
			m.Meta = &meta.String
		}
		messages = append(messages, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListMessages - rows iteration: %v", ErrScanRow, err)
	}

	return messages, nil
}

// AddCalendarEvent сохраняет созданное событие календаря
func (r *Repository) AddCalendarEvent(ctx context.Context, event *domain.CalendarEventRecord) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("calendar_events").
		Columns("chat_id", "calendar_id", "external_event_id", "start_time", "end_time").
		Values(event.ChatID, event.CalendarID, event.ExternalEventID, event.StartTime, event.EndTime).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddCalendarEvent - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&event.ID, &event.CreatedAt); err != nil {
		return fmt.Errorf("%w: AddCalendarEvent - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListCalendarEvents события календаря, созданные для чата
func (r *Repository) ListCalendarEvents(ctx context.Context, chatID int64) ([]*domain.CalendarEventRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "chat_id", "calendar_id", "external_event_id", "start_time", "end_time", "created_at").
		From("calendar_events").
		Where(squirrel.Eq{"chat_id": chatID}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCalendarEvents - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCalendarEvents - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.CalendarEventRecord, 0)
	for rows.Next() {
		var e domain.CalendarEventRecord
		if err := rows.Scan(&e.ID, &e.ChatID, &e.CalendarID, &e.ExternalEventID, &e.StartTime, &e.EndTime, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListCalendarEvents - scan: %v", ErrScanRow, err)
		}
		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCalendarEvents - rows iteration: %v", ErrScanRow, err)
	}

	return events, nil
}

func upsertChatQuery(chatID int64, displayName string, lastMessageAt time.Time) (string, []interface{}, error) {
	return psqlbuilder.Insert("chats").
		Columns(chatColumns...).
		Values(chatID, displayName, lastMessageAt, lastMessageAt, 0).
		Suffix(upsertOnChat).
		ToSql()
}

// touchChatQuery создаёт чат при первом сообщении, иначе двигает last_message_at и unread_count
func touchChatQuery(chatID int64, ts time.Time, unreadInc int) (string, []interface{}, error) {
	return psqlbuilder.Insert("chats").
		Columns(chatColumns...).
		Values(chatID, "", ts, ts, unreadInc).
		Suffix(upsertOnMessage).
		ToSql()
}

func insertMessageQuery(msg *domain.Message) (string, []interface{}, error) {
	return psqlbuilder.Insert("messages").
		Columns("chat_id", "direction", "text", "ts", "status", "meta").
		Values(msg.ChatID, msg.Direction, msg.Text, msg.Timestamp, msg.Status, msg.Meta).
		Suffix("RETURNING id").
		ToSql()
}

func resetUnreadQuery(chatID int64) (string, []interface{}, error) {
	return psqlbuilder.Update("chats").
		Set("unread_count", 0).
		Where(squirrel.Eq{"chat_id": chatID}).
		ToSql()
}

func listMessagesQuery(chatID int64) (string, []interface{}, error) {
	return psqlbuilder.Select("id", "chat_id", "direction", "text", "ts", "status", "meta").
		From("messages").
		Where(squirrel.Eq{"chat_id": chatID}).
		OrderBy("ts ASC", "id ASC").
		ToSql()
}
