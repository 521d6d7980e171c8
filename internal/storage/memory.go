package storage

import (
	"context"
	"sync"
)

// MemoryStore хранит значения в памяти процесса. Используется в тестах и при
// запуске без адреса БД: состояние живёт только в пределах текущей сессии,
// как и локальное хранилище исходной демо-витрины.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore создаёт пустое хранилище в памяти.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
	}
}

// Get возвращает значение по ключу.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

// Set сохраняет значение по ключу.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	s.values[key] = cp
	return nil
}

// SetMany сохраняет все пары под одной блокировкой.
func (s *MemoryStore) SetMany(_ context.Context, values map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range values {
		cp := make([]byte, len(value))
		copy(cp, value)
		s.values[key] = cp
	}
	return nil
}

// Delete удаляет значение по ключу.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// Close ничего не освобождает.
func (s *MemoryStore) Close() error {
	return nil
}
