// Package storage содержит хранилище ключ-значение витрины и адаптер
// безопасного чтения и записи JSON-значений.
package storage

import (
	"context"
	"errors"
)

// Ключи, под которыми компоненты витрины сохраняют своё состояние.
// Значения не связаны транзакционно, кроме записей через SetMany.
const (
	KeyCart         = "cart"
	KeyOrders       = "orders"
	KeyUsers        = "users"
	KeyCurrentUser  = "currentUser"
	KeyNotifyNumber = "notifyNumber"
)

// ErrKeyNotFound возвращается, если ключ отсутствует в хранилище.
var ErrKeyNotFound = errors.New("key not found")

// Store описывает низкоуровневое хранилище ключ-значение с JSON-значениями.
// SetMany записывает все пары атомарно: либо сохраняются все, либо ни одной.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
