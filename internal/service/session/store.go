package session

import (
	"sync"
	"time"
)

// Store реестр активных сессий по userID
// Создаётся один раз на процесс и передаётся в обработчики
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session

	deps         Dependencies
	ttl          time.Duration // 0 = сессии не истекают
	timeProvider TimeProvider
}

// NewStore создает реестр сессий
func NewStore(deps Dependencies, ttl time.Duration) *Store {
	return &Store{
		sessions:     make(map[int64]*Session),
		deps:         deps,
		ttl:          ttl,
		timeProvider: &RealTimeProvider{},
	}
}

// WithTimeProvider подменяет источник времени
func (s *Store) WithTimeProvider(tp TimeProvider) *Store {
	s.timeProvider = tp
	return s
}

// Get возвращает сессию пользователя, истёкшие сессии не возвращаются
func (s *Store) Get(userID int64) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[userID]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if s.expired(sess, s.timeProvider.Now()) {
		return nil, false
	}
	return sess, true
}

// Create создаёт новую сессию, незавершённая сессия пользователя отбрасывается
func (s *Store) Create(userID, chatID int64, fullName string) *Session {
	sess := newSession(userID, chatID, fullName, s.deps, s.timeProvider.Now())

	s.mu.Lock()
	s.sessions[userID] = sess
	s.mu.Unlock()

	return sess
}

// Remove удаляет сессию пользователя
func (s *Store) Remove(userID int64) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

// RemoveIf удаляет сессию, только если она всё ещё текущая для пользователя
func (s *Store) RemoveIf(sess *Session) {
	s.mu.Lock()
	if current, ok := s.sessions[sess.userID]; ok && current == sess {
		delete(s.sessions, sess.userID)
	}
	s.mu.Unlock()
}

// Len количество сессий в реестре
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep удаляет истёкшие сессии и возвращает их количество
func (s *Store) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for userID, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, userID)
			removed++
		}
	}
	return removed
}

// TTL время жизни сессии без активности
func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	if s.ttl <= 0 {
		return false
	}
	return now.Sub(sess.LastActivity()) > s.ttl
}
