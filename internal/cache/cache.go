package cache

import (
	"sync"
	"time"
)

// entry хранимое значение с абсолютным сроком годности
type entry struct {
	value     any
	expiresAt time.Time
}

// Store процессный keyed-кэш с абсолютным истечением на запись.
// Вытеснение только по времени; ограничения размера нет. Экземпляр
// создается процессом и передается по ссылке сервисам, которым он нужен.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// New создает новый пустой Store
func New() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get возвращает живое значение по ключу. Просроченная запись
// неотличима от отсутствующей.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || s.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set сохраняет значение с заданным TTL
func (s *Store) Set(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
}

// Delete удаляет запись по ключу
func (s *Store) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Len возвращает число записей, включая просроченные, но еще не перезаписанные
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
