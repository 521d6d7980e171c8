// Package handler содержит HTTP-обработчики API витрины WholeMart.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/wholemart-system/internal/catalog"
	"github.com/mmeshcher/wholemart-system/internal/middleware"
	"github.com/mmeshcher/wholemart-system/internal/model"
	"github.com/mmeshcher/wholemart-system/internal/service"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	View() []model.Product
	SetQuery(query string)
	Suggest(query string) []model.Product
	Select(productID int64) error

	AddToCart(ctx context.Context, productID, qty int64) (int64, error)
	RemoveFromCart(ctx context.Context, index int) (*model.CartItem, bool)
	Cart() []model.CartItem
	CartTotal() int64

	Checkout(ctx context.Context) (*model.Order, error)
	BuyNow(ctx context.Context, productID, qty int64) (*model.Order, error)
	Orders() []model.Order

	SetNotifyNumber(ctx context.Context, raw string) (string, error)

	Register(ctx context.Context, name, email, password string) (*model.SessionUser, error)
	Login(ctx context.Context, email, password string) (*model.SessionUser, error)
	Logout(ctx context.Context)
	CurrentUser() *model.SessionUser
}

// Handler реализует HTTP-обработчики API витрины.
type Handler struct {
	service        Service
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{
		service:        s,
		logger:         logger,
		authMiddleware: auth,
	}
}

type productResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int64   `json:"stock"`
	MinOrderQty int64   `json:"min_order_qty"`
	Image       string  `json:"image"`
}

func toProductResponses(products []model.Product) []productResponse {
	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, productResponse{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.Category,
			Price:       float64(p.PriceCents) / 100,
			Stock:       p.Stock,
			MinOrderQty: p.MinOrderQty,
			Image:       p.Image,
		})
	}
	return resp
}

// GetProducts возвращает текущую поисковую выдачу каталога.
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toProductResponses(h.service.View()))
}

type searchRequest struct {
	Query string `json:"query"`
}

// Search принимает поисковый запрос. Пересчёт выдачи откладывается на период
// тишины, поэтому обработчик отвечает 202 Accepted, не дожидаясь результата.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	h.service.SetQuery(req.Query)
	w.WriteHeader(http.StatusAccepted)
}

type suggestionResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Suggest возвращает подсказки по имени товара для запроса из параметра q.
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	matches := h.service.Suggest(r.URL.Query().Get("q"))

	resp := make([]suggestionResponse, 0, len(matches))
	for _, p := range matches {
		resp = append(resp, suggestionResponse{ID: p.ID, Name: p.Name})
	}

	writeJSON(w, http.StatusOK, resp)
}

type selectRequest struct {
	ID int64 `json:"id"`
}

// Select сворачивает поисковую выдачу до одного выбранного товара.
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.Select(req.ID); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("select product error", zap.Error(err), zap.Int64("productID", req.ID))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

type addToCartRequest struct {
	ID       int64 `json:"id"`
	Quantity int64 `json:"quantity"`
}

type cartCountResponse struct {
	Count int64 `json:"count"`
}

// AddToCart добавляет товар в корзину и возвращает новое число единиц в ней.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	count, err := h.service.AddToCart(r.Context(), req.ID, req.Quantity)
	if err != nil {
		h.writeOrderError(w, err, req.ID)
		return
	}

	writeJSON(w, http.StatusOK, cartCountResponse{Count: count})
}

type cartItemResponse struct {
	ProductID int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

type cartResponse struct {
	Items []cartItemResponse `json:"items"`
	Total float64            `json:"total"`
}

// GetCart возвращает строки корзины и её суммарную стоимость.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	items := h.service.Cart()

	resp := cartResponse{Items: make([]cartItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, cartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     float64(item.PriceCents) / 100,
			Quantity:  item.Quantity,
			LineTotal: float64(item.PriceCents*item.Quantity) / 100,
		})
	}
	resp.Total = float64(h.service.CartTotal()) / 100

	writeJSON(w, http.StatusOK, resp)
}

// RemoveFromCart удаляет строку корзины по индексу. Индекс вне диапазона
// не считается ошибкой.
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	h.service.RemoveFromCart(r.Context(), index)
	w.WriteHeader(http.StatusNoContent)
}

type orderItemResponse struct {
	ProductID int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
}

type orderResponse struct {
	ID     string              `json:"id"`
	Items  []orderItemResponse `json:"items"`
	Total  float64             `json:"total"`
	Date   string              `json:"date"`
	Status string              `json:"status"`
}

func toOrderResponse(o *model.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     float64(item.PriceCents) / 100,
			Quantity:  item.Quantity,
		})
	}

	return orderResponse{
		ID:     o.ID,
		Items:  items,
		Total:  float64(o.TotalCents) / 100,
		Date:   o.Date,
		Status: string(o.Status),
	}
}

// Checkout оформляет заказ из всей корзины.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Checkout(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrCartEmpty) {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if errors.Is(err, catalog.ErrInsufficientStock) || errors.Is(err, catalog.ErrProductNotFound) {
			http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
			return
		}
		h.logger.Error("checkout error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

type buyNowRequest struct {
	Quantity int64 `json:"quantity"`
}

// BuyNow оформляет заказ на один товар, минуя корзину.
func (h *Handler) BuyNow(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var req buyNowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	order, err := h.service.BuyNow(r.Context(), productID, req.Quantity)
	if err != nil {
		h.writeOrderError(w, err, productID)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// writeOrderError переводит ошибки операций с товаром в HTTP-статусы.
func (h *Handler) writeOrderError(w http.ResponseWriter, err error, productID int64) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	case errors.Is(err, service.ErrOutOfStock), errors.Is(err, catalog.ErrInsufficientStock):
		http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
	case errors.Is(err, service.ErrInvalidQuantity), errors.Is(err, service.ErrBelowMinOrder):
		http.Error(w, http.StatusText(http.StatusUnprocessableEntity), http.StatusUnprocessableEntity)
	default:
		h.logger.Error("order operation error", zap.Error(err), zap.Int64("productID", productID))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// GetOrders возвращает историю заказов в порядке оформления.
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.service.Orders()
	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}

	writeJSON(w, http.StatusOK, resp)
}

type notifyRequest struct {
	Phone string `json:"phone"`
}

type notifyResponse struct {
	Number string `json:"number"`
}

// SetNotifyNumber сохраняет номер для SMS-уведомлений о заказах.
func (h *Handler) SetNotifyNumber(w http.ResponseWriter, r *http.Request) {
	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	number, err := h.service.SetNotifyNumber(r.Context(), req.Phone)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPhone) {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		h.logger.Error("set notify number error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, notifyResponse{Number: number})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register обрабатывает регистрацию нового пользователя. Успешная регистрация
// сразу открывает сессию.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	session, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
		case errors.Is(err, service.ErrInvalidName),
			errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrShortPassword):
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		default:
			h.logger.Error("register user error", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	h.authMiddleware.SetAuthCookie(w, session.ID)
	writeJSON(w, http.StatusOK, session)
}

// Login выполняет аутентификацию пользователя и установку cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		case errors.Is(err, service.ErrInvalidCredentials):
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		default:
			h.logger.Error("login user error", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	h.authMiddleware.SetAuthCookie(w, session.ID)
	writeJSON(w, http.StatusOK, session)
}

// Logout завершает текущую сессию и сбрасывает cookie авторизации.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout(r.Context())
	h.authMiddleware.ClearAuthCookie(w)
	w.WriteHeader(http.StatusOK)
}

// GetCurrentUser возвращает пользователя текущей сессии.
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	session := h.service.CurrentUser()
	if session == nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
