package storage

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Adapter оборачивает Store безопасными операциями чтения и записи JSON.
// Read никогда не возвращает ошибку: при отсутствии ключа или повреждённом
// значении получатель остаётся со своим значением по умолчанию. Write и
// родственные операции возвращают false при сбое: вызывающий код продолжает
// работу, но изменения переживут только текущую сессию.
type Adapter struct {
	store  Store
	logger *zap.Logger
}

// NewAdapter создаёт адаптер над указанным хранилищем.
func NewAdapter(store Store, logger *zap.Logger) *Adapter {
	return &Adapter{
		store:  store,
		logger: logger,
	}
}

// Read декодирует значение по ключу в out. Возвращает true, если значение
// было найдено и разобрано; при любом сбое out не изменяется.
func (a *Adapter) Read(ctx context.Context, key string, out any) bool {
	raw, err := a.store.Get(ctx, key)
	if err != nil {
		if err != ErrKeyNotFound {
			a.logger.Warn("storage read error", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		a.logger.Warn("storage decode error", zap.String("key", key), zap.Error(err))
		return false
	}

	return true
}

// Write кодирует значение в JSON и сохраняет его по ключу.
func (a *Adapter) Write(ctx context.Context, key string, value any) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		a.logger.Error("storage encode error", zap.String("key", key), zap.Error(err))
		return false
	}

	if err := a.store.Set(ctx, key, raw); err != nil {
		a.logger.Error("storage write error", zap.String("key", key), zap.Error(err))
		return false
	}

	return true
}

// WriteMany сохраняет несколько значений одной атомарной записью. Зависимые
// изменения (заказ плюс очищенная корзина) фиксируются либо все, либо ни одно.
func (a *Adapter) WriteMany(ctx context.Context, values map[string]any) bool {
	encoded := make(map[string][]byte, len(values))
	for key, value := range values {
		raw, err := json.Marshal(value)
		if err != nil {
			a.logger.Error("storage encode error", zap.String("key", key), zap.Error(err))
			return false
		}
		encoded[key] = raw
	}

	if err := a.store.SetMany(ctx, encoded); err != nil {
		a.logger.Error("storage write error", zap.Strings("keys", keysOf(encoded)), zap.Error(err))
		return false
	}

	return true
}

// Remove удаляет значение по ключу.
func (a *Adapter) Remove(ctx context.Context, key string) bool {
	if err := a.store.Delete(ctx, key); err != nil {
		a.logger.Error("storage delete error", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func keysOf(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
