// Package service реализует бизнес-логику витрины WholeMart.
package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mmeshcher/wholemart-system/internal/catalog"
	"github.com/mmeshcher/wholemart-system/internal/model"
	"github.com/mmeshcher/wholemart-system/internal/notifier"
	"github.com/mmeshcher/wholemart-system/internal/search"
	"github.com/mmeshcher/wholemart-system/internal/storage"
	"github.com/mmeshcher/wholemart-system/internal/validation"
)

// Ошибки валидации операций витрины.
var (
	ErrOutOfStock         = errors.New("product out of stock")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrBelowMinOrder      = errors.New("quantity below minimum order")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrInvalidName        = errors.New("name must be at least 2 characters")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrShortPassword      = errors.New("password must be at least 6 characters")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPhone       = errors.New("invalid phone number")
)

// Store описывает контракт персистентности, используемый сервисом. Чтение
// никогда не завершается ошибкой, запись сообщает об успехе булевым флагом:
// сбой записи не прерывает операцию, изменения остаются в памяти сессии.
type Store interface {
	Read(ctx context.Context, key string, out any) bool
	Write(ctx context.Context, key string, value any) bool
	WriteMany(ctx context.Context, values map[string]any) bool
	Remove(ctx context.Context, key string) bool
}

// Service владеет состоянием витрины: корзиной, историей заказов, каталогом
// пользователей и текущей поисковой выдачей. Все мутации проходят через него,
// состояние сохраняется через Store по отдельным ключам.
type Service struct {
	store    Store
	catalog  *catalog.Catalog
	notifier *notifier.Client
	logger   *zap.Logger

	mu           sync.RWMutex
	cart         []model.CartItem
	orders       []model.Order
	users        []model.User
	currentUser  *model.SessionUser
	notifyNumber string

	viewMu    sync.RWMutex
	view      []model.Product
	debouncer *search.Debouncer
}

// NewService создаёт сервис и восстанавливает сохранённое состояние из хранилища.
// Отсутствующие или повреждённые значения заменяются пустыми по контракту Store.
func NewService(store Store, cat *catalog.Catalog, notif *notifier.Client, logger *zap.Logger) *Service {
	s := &Service{
		store:     store,
		catalog:   cat,
		notifier:  notif,
		logger:    logger,
		debouncer: search.NewDebouncer(search.DefaultDelay),
	}

	ctx := context.Background()
	store.Read(ctx, storage.KeyCart, &s.cart)
	store.Read(ctx, storage.KeyOrders, &s.orders)
	store.Read(ctx, storage.KeyUsers, &s.users)
	store.Read(ctx, storage.KeyCurrentUser, &s.currentUser)
	store.Read(ctx, storage.KeyNotifyNumber, &s.notifyNumber)

	s.view = cat.Products()

	return s
}

// Close останавливает отложенные пересчёты поисковой выдачи.
func (s *Service) Close() error {
	s.debouncer.Stop()
	return nil
}

/* ---------- Поиск ---------- */

// SetQuery планирует пересчёт поисковой выдачи после периода тишины.
// Новый запрос отменяет ещё не выполненный пересчёт, поэтому выдача всегда
// отражает последний введённый запрос.
func (s *Service) SetQuery(query string) {
	q := strings.ToLower(validation.Sanitize(query))

	s.debouncer.Trigger(func() {
		filtered := s.catalog.Filter(q)

		s.viewMu.Lock()
		s.view = filtered
		s.viewMu.Unlock()
	})
}

// View возвращает текущую поисковую выдачу. Пустой запрос соответствует
// полному каталогу в исходном порядке.
func (s *Service) View() []model.Product {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()

	cp := make([]model.Product, len(s.view))
	copy(cp, s.view)
	return cp
}

// Suggest возвращает подсказки по имени товара для указанного запроса.
func (s *Service) Suggest(query string) []model.Product {
	q := strings.ToLower(validation.Sanitize(query))
	return s.catalog.Suggest(q)
}

// Select сворачивает выдачу до одного выбранного товара. Выбор подсказки
// также очищает список подсказок на стороне клиента.
func (s *Service) Select(productID int64) error {
	p, err := s.catalog.Get(productID)
	if err != nil {
		return err
	}

	s.viewMu.Lock()
	s.view = []model.Product{p}
	s.viewMu.Unlock()

	return nil
}

/* ---------- Корзина ---------- */

// AddToCart добавляет qty единиц товара в корзину, объединяя количество с уже
// существующей строкой того же товара. Возвращает суммарное число единиц в
// корзине. Строка хранит снимок имени и цены на момент добавления.
func (s *Service) AddToCart(ctx context.Context, productID, qty int64) (int64, error) {
	p, err := s.catalog.Get(productID)
	if err != nil {
		return 0, err
	}

	if p.Stock <= 0 {
		return 0, ErrOutOfStock
	}
	if qty <= 0 {
		return 0, ErrInvalidQuantity
	}
	if qty > p.Stock {
		return 0, catalog.ErrInsufficientStock
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.cart {
		if s.cart[i].ProductID != productID {
			continue
		}
		if s.cart[i].Quantity+qty > p.Stock {
			return 0, catalog.ErrInsufficientStock
		}
		s.cart[i].Quantity += qty
		merged = true
		break
	}

	if !merged {
		s.cart = append(s.cart, model.CartItem{
			ProductID:  p.ID,
			Name:       p.Name,
			Category:   p.Category,
			PriceCents: p.PriceCents,
			Quantity:   qty,
		})
	}

	s.store.Write(ctx, storage.KeyCart, s.cart)

	return s.cartCountLocked(), nil
}

// RemoveFromCart удаляет строку корзины по индексу. Индекс вне диапазона —
// не ошибка, операция просто ничего не делает.
func (s *Service) RemoveFromCart(ctx context.Context, index int) (*model.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.cart) {
		return nil, false
	}

	removed := s.cart[index]
	s.cart = append(s.cart[:index], s.cart[index+1:]...)

	s.store.Write(ctx, storage.KeyCart, s.cart)

	return &removed, true
}

// Cart возвращает копию строк корзины.
func (s *Service) Cart() []model.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := make([]model.CartItem, len(s.cart))
	copy(cp, s.cart)
	return cp
}

// CartCount возвращает суммарное число единиц по всем строкам корзины.
func (s *Service) CartCount() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cartCountLocked()
}

func (s *Service) cartCountLocked() int64 {
	var count int64
	for _, item := range s.cart {
		count += item.Quantity
	}
	return count
}

// CartTotal возвращает стоимость корзины в пайсах. Сумма всегда вычисляется
// по строкам заново и нигде не кэшируется.
func (s *Service) CartTotal() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cartTotal(s.cart)
}

func cartTotal(items []model.CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.PriceCents * item.Quantity
	}
	return total
}

/* ---------- Заказы ---------- */

// Checkout оформляет заказ из всей корзины. Перед оформлением остатки всех
// позиций сверяются с каталогом и списываются атомарно: при нехватке хотя бы
// одной позиции ни корзина, ни каталог, ни история заказов не меняются.
// Добавление заказа и очистка корзины сохраняются одной записью.
func (s *Service) Checkout(ctx context.Context) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cart) == 0 {
		return nil, ErrCartEmpty
	}

	lines := make(map[int64]int64, len(s.cart))
	for _, item := range s.cart {
		lines[item.ProductID] += item.Quantity
	}

	if err := s.catalog.DecrementAll(lines); err != nil {
		return nil, err
	}

	items := make([]model.OrderItem, 0, len(s.cart))
	for _, item := range s.cart {
		items = append(items, model.OrderItem{
			ProductID:  item.ProductID,
			Name:       item.Name,
			PriceCents: item.PriceCents,
			Quantity:   item.Quantity,
		})
	}

	order := newOrder(items, cartTotal(s.cart), model.OrderStatusConfirmed)

	s.orders = append(s.orders, order)
	s.cart = nil

	s.store.WriteMany(ctx, map[string]any{
		storage.KeyOrders: s.orders,
		storage.KeyCart:   s.cart,
	})

	s.notifyOrder(order, s.notifyNumber)

	return &order, nil
}

// BuyNow оформляет заказ на один товар, минуя корзину. Количество должно быть
// не меньше минимальной партии товара и не больше остатка на складе.
func (s *Service) BuyNow(ctx context.Context, productID, qty int64) (*model.Order, error) {
	p, err := s.catalog.Get(productID)
	if err != nil {
		return nil, err
	}

	if p.Stock <= 0 {
		return nil, ErrOutOfStock
	}
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	if qty < p.MinOrderQty {
		return nil, ErrBelowMinOrder
	}
	if qty > p.Stock {
		return nil, catalog.ErrInsufficientStock
	}

	if err := s.catalog.Decrement(productID, qty); err != nil {
		return nil, err
	}

	items := []model.OrderItem{{
		ProductID:  p.ID,
		Name:       p.Name,
		PriceCents: p.PriceCents,
		Quantity:   qty,
	}}

	order := newOrder(items, p.PriceCents*qty, model.OrderStatusBuyNow)

	s.mu.Lock()
	s.orders = append(s.orders, order)
	s.store.Write(ctx, storage.KeyOrders, s.orders)
	number := s.notifyNumber
	s.mu.Unlock()

	s.notifyOrder(order, number)

	return &order, nil
}

// Orders возвращает копию истории заказов в порядке оформления.
func (s *Service) Orders() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := make([]model.Order, len(s.orders))
	copy(cp, s.orders)
	return cp
}

func newOrder(items []model.OrderItem, totalCents int64, status model.OrderStatus) model.Order {
	now := time.Now()
	return model.Order{
		ID:         uuid.NewString(),
		Items:      items,
		TotalCents: totalCents,
		Date:       now.Format("02.01.2006 15:04:05"),
		Status:     status,
		CreatedAt:  now,
	}
}

// notifyOrder запускает единственную попытку уведомления о заказе. Вызов
// не ожидается: подтверждение заказа не зависит от результата доставки,
// повторов нет, сбой остаётся только в журнале.
func (s *Service) notifyOrder(order model.Order, number string) {
	if number == "" {
		s.logger.Info("no notification number configured", zap.String("order", order.ID))
		return
	}

	message := fmt.Sprintf("Order %s confirmed. Total: ₹%.2f. Date: %s",
		order.ID, float64(order.TotalCents)/100, order.Date)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.notifier.Send(ctx, number, message)
	}()
}

/* ---------- Уведомления ---------- */

// SetNotifyNumber сохраняет номер для SMS-уведомлений. Номер нормализуется
// до цифр и должен содержать не менее десяти знаков.
func (s *Service) SetNotifyNumber(ctx context.Context, raw string) (string, error) {
	digits := validation.NormalizePhone(raw)
	if len(digits) < 10 {
		return "", ErrInvalidPhone
	}

	s.mu.Lock()
	s.notifyNumber = digits
	s.store.Write(ctx, storage.KeyNotifyNumber, digits)
	s.mu.Unlock()

	return digits, nil
}

// NotifyNumber возвращает сохранённый номер уведомлений или пустую строку.
func (s *Service) NotifyNumber() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notifyNumber
}

/* ---------- Пользователи ---------- */

// Register регистрирует нового пользователя и делает его текущей сессией.
// Email приводится к нижнему регистру и должен быть уникален в каталоге
// пользователей. Пароль сохраняется как соль и необратимый дайджест.
func (s *Service) Register(ctx context.Context, name, email, password string) (*model.SessionUser, error) {
	name = validation.Sanitize(name)
	email = strings.ToLower(validation.Sanitize(email))

	if len([]rune(name)) < 2 {
		return nil, ErrInvalidName
	}
	if !validation.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, ErrShortPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return nil, ErrUserExists
		}
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	s.users = append(s.users, user)

	session := model.SessionUser{ID: user.ID, Name: user.Name, Email: user.Email}
	s.currentUser = &session

	s.store.WriteMany(ctx, map[string]any{
		storage.KeyUsers:       s.users,
		storage.KeyCurrentUser: session,
	})

	return &session, nil
}

// Login проверяет учётные данные и делает пользователя текущей сессией.
func (s *Service) Login(ctx context.Context, email, password string) (*model.SessionUser, error) {
	email = strings.ToLower(validation.Sanitize(email))

	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	if !validation.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email != email {
			continue
		}
		if !verifyPassword(u.PasswordHash, password) {
			return nil, ErrInvalidCredentials
		}

		session := model.SessionUser{ID: u.ID, Name: u.Name, Email: u.Email}
		s.currentUser = &session
		s.store.Write(ctx, storage.KeyCurrentUser, session)

		return &session, nil
	}

	return nil, ErrInvalidCredentials
}

// Logout безусловно завершает текущую сессию и удаляет её из хранилища.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	s.currentUser = nil
	s.store.Remove(ctx, storage.KeyCurrentUser)
	s.mu.Unlock()
}

// CurrentUser возвращает пользователя текущей сессии или nil.
func (s *Service) CurrentUser() *model.SessionUser {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentUser == nil {
		return nil
	}
	cp := *s.currentUser
	return &cp
}

const saltLen = 16

func hashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	sum := sha256.Sum256(append(salt, []byte(password)...))
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(sum[:]), nil
}

func verifyPassword(stored, password string) bool {
	parts := strings.SplitN(stored, "$", 2)
	if len(parts) != 2 {
		return false
	}

	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}

	sum := sha256.Sum256(append(salt, []byte(password)...))
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(parts[1])) == 1
}
