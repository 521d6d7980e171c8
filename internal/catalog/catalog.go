// Package catalog содержит каталог товаров витрины и операции поиска по нему.
package catalog

import (
	"errors"
	"strings"
	"sync"

	"github.com/mmeshcher/wholemart-system/internal/model"
)

// Предел количества подсказок и минимальная длина запроса для их показа.
const (
	maxSuggestions  = 8
	minSuggestQuery = 2
)

var (
	// ErrProductNotFound возвращается при обращении к неизвестному товару.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock возвращается, если запрошенное количество превышает остаток.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Catalog хранит упорядоченный список товаров. Список фиксируется при создании;
// единственное изменяемое поле — остаток на складе, который списывает движок заказов.
type Catalog struct {
	mu       sync.RWMutex
	products []model.Product
}

// New создаёт каталог с указанным списком товаров, сохраняя порядок.
func New(products []model.Product) *Catalog {
	cp := make([]model.Product, len(products))
	copy(cp, products)
	return &Catalog{products: cp}
}

// Products возвращает снимок каталога в исходном порядке.
func (c *Catalog) Products() []model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cp := make([]model.Product, len(c.products))
	copy(cp, c.products)
	return cp
}

// Get возвращает товар по идентификатору.
func (c *Catalog) Get(id int64) (model.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, ErrProductNotFound
}

// Decrement списывает qty единиц товара со склада. Остаток не проверяется
// на отрицательность задним числом: списание либо проходит целиком, либо
// не меняет каталог.
func (c *Catalog) Decrement(id, qty int64) error {
	if qty <= 0 {
		return ErrInsufficientStock
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.products {
		if c.products[i].ID != id {
			continue
		}
		if qty > c.products[i].Stock {
			return ErrInsufficientStock
		}
		c.products[i].Stock -= qty
		return nil
	}
	return ErrProductNotFound
}

// DecrementAll списывает остатки по всем позициям атомарно: если хотя бы для
// одной позиции остатка не хватает, каталог не меняется.
func (c *Catalog) DecrementAll(lines map[int64]int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	index := make(map[int64]int, len(c.products))
	for i, p := range c.products {
		index[p.ID] = i
	}

	for id, qty := range lines {
		i, ok := index[id]
		if !ok {
			return ErrProductNotFound
		}
		if qty <= 0 || qty > c.products[i].Stock {
			return ErrInsufficientStock
		}
	}

	for id, qty := range lines {
		c.products[index[id]].Stock -= qty
	}
	return nil
}

// Filter возвращает товары, у которых имя или категория содержат запрос без
// учёта регистра. Пустой запрос возвращает весь каталог. Порядок каталога
// сохраняется.
func (c *Catalog) Filter(query string) []model.Product {
	q := strings.ToLower(query)

	c.mu.RLock()
	defer c.mu.RUnlock()

	if q == "" {
		cp := make([]model.Product, len(c.products))
		copy(cp, c.products)
		return cp
	}

	var res []model.Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			res = append(res, p)
		}
	}
	return res
}

// Suggest возвращает подсказки по имени товара: не более восьми совпадений,
// для запросов короче двух символов подсказки не показываются.
func (c *Catalog) Suggest(query string) []model.Product {
	q := strings.ToLower(query)
	if len(q) < minSuggestQuery {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var res []model.Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			res = append(res, p)
			if len(res) == maxSuggestions {
				break
			}
		}
	}
	return res
}
