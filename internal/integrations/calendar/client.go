package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

// Client клиент Google Calendar от имени сервисного аккаунта
type Client struct {
	svc     *gcal.Service
	timeout time.Duration
	loc     *time.Location
	log     Logger
}

// NewClient создает клиент по файлу ключа сервисного аккаунта
func NewClient(ctx context.Context, credentialsFile string, timeout time.Duration, loc *time.Location, log Logger) (*Client, error) {
	if credentialsFile == "" {
		return nil, fmt.Errorf("%w: credentials file is empty", ErrInvalidRequest)
	}
	return NewClientWithOptions(ctx, timeout, loc, log, option.WithCredentialsFile(credentialsFile))
}

// NewClientWithOptions создает клиент с произвольными опциями (endpoint, http-клиент)
func NewClientWithOptions(ctx context.Context, timeout time.Duration, loc *time.Location, log Logger, opts ...option.ClientOption) (*Client, error) {
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: NewService: %v", ErrInternal, err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Client{
		svc:     svc,
		timeout: timeout,
		loc:     loc,
		log:     log,
	}, nil
}

// Location часовой пояс, в котором клиент возвращает время событий
func (c *Client) Location() *time.Location {
	return c.loc
}

// CreateEvent создает событие и возвращает его идентификатор
func (c *Client) CreateEvent(ctx context.Context, req domain.CalendarEventRequest) (string, error) {
	if req.CalendarID == "" {
		return "", fmt.Errorf("%w: calendar id is empty", ErrInvalidRequest)
	}
	if !req.End.After(req.Start) {
		return "", fmt.Errorf("%w: end %s is not after start %s", ErrInvalidRequest, req.End, req.Start)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	created, err := c.svc.Events.Insert(req.CalendarID, toEvent(req)).Context(ctx).Do()
	if err != nil {
		return "", c.mapError("CreateEvent", req.CalendarID, err)
	}
	if created == nil || created.Id == "" {
		return "", fmt.Errorf("%w: CreateEvent - empty event id", ErrInvalidResponse)
	}

	c.log.Info("CreateEvent: calendar=%s event=%s start=%s", req.CalendarID, created.Id, req.Start.Format(time.RFC3339))
	return created.Id, nil
}

// ListEvents возвращает события календаря в промежутке [from, to), развернутые по повторениям
func (c *Client) ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]domain.CalendarEvent, error) {
	if calendarID == "" {
		return nil, fmt.Errorf("%w: calendar id is empty", ErrInvalidRequest)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var events []domain.CalendarEvent
	err := c.svc.Events.List(calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy(orderByStartTime).
		Context(ctx).
		Pages(ctx, func(page *gcal.Events) error {
			for _, item := range page.Items {
				if item.Status == "cancelled" {
					continue
				}
				event, err := fromEvent(item, c.loc)
				if err != nil {
					return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
				}
				events = append(events, event)
			}
			return nil
		})
	if err != nil {
		if errors.Is(err, ErrInvalidResponse) {
			return nil, err
		}
		return nil, c.mapError("ListEvents", calendarID, err)
	}

	return events, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) mapError(op, calendarID string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s - calendar=%s: %v", ErrTimeout, op, calendarID, err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusNotFound, http.StatusForbidden:
			return fmt.Errorf("%w: %s - calendar=%s: %v", ErrCalendarNotFound, op, calendarID, err)
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s - calendar=%s: %v", ErrInvalidRequest, op, calendarID, err)
		}
		return fmt.Errorf("%w: %s - calendar=%s status=%d: %v", ErrInvalidResponse, op, calendarID, apiErr.Code, err)
	}

	return fmt.Errorf("%w: %s - calendar=%s: %v", ErrInternal, op, calendarID, err)
}
