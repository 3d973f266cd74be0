package telegram

import (
	"context"
	"sync"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

const queueSize = 64

// pool обрабатывает сообщения одного пользователя строго по порядку,
// разных пользователей параллельно
type pool struct {
	queues []chan domain.InboundMessage
	wg     sync.WaitGroup
}

func newPool(workers int, handle func(domain.InboundMessage)) *pool {
	if workers <= 0 {
		workers = 1
	}
	p := &pool{queues: make([]chan domain.InboundMessage, workers)}
	for i := range p.queues {
		q := make(chan domain.InboundMessage, queueSize)
		p.queues[i] = q
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for msg := range q {
				handle(msg)
			}
		}()
	}
	return p
}

// submit ставит сообщение в очередь воркера пользователя
func (p *pool) submit(ctx context.Context, msg domain.InboundMessage) bool {
	select {
	case p.queues[p.index(msg.UserID)] <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}

// close закрывает очереди и ждет обработки оставшихся сообщений
func (p *pool) close() {
	for _, q := range p.queues {
		close(q)
	}
	p.wg.Wait()
}

func (p *pool) index(userID int64) int {
	n := uint64(len(p.queues))
	return int(uint64(userID) % n)
}
