// Package model содержит доменные сущности витрины WholeMart.
package model

import "time"

// Product описывает товар каталога. Цена хранится в пайсах (сотых долях рупии).
type Product struct {
	ID          int64
	Name        string
	Category    string
	PriceCents  int64
	Stock       int64
	MinOrderQty int64
	Image       string
}

// CartItem представляет строку корзины: снимок товара на момент добавления
// плюс количество. Изменение цены в каталоге не влияет на уже добавленные строки.
type CartItem struct {
	ProductID  int64  `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	PriceCents int64  `json:"price"`
	Quantity   int64  `json:"quantity"`
}

// OrderStatus описывает статус оформленного заказа.
type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusBuyNow    OrderStatus = "Confirmed (Buy Now)"
)

// OrderItem описывает позицию заказа.
type OrderItem struct {
	ProductID  int64  `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price"`
	Quantity   int64  `json:"quantity"`
}

// Order описывает оформленный заказ. Заказ неизменяем после создания,
// история заказов — только для добавления.
type Order struct {
	ID         string      `json:"id"`
	Items      []OrderItem `json:"items"`
	TotalCents int64       `json:"total"`
	Date       string      `json:"date"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

// User представляет запись каталога пользователей. Email хранится в нижнем
// регистре и служит уникальным ключом. PasswordHash содержит соль и необратимый
// дайджест, пароль в открытом виде нигде не сохраняется.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"pass"`
}

// SessionUser — публичная часть пользователя, сохраняемая как текущая сессия.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
