package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/wholemart-system/internal/catalog"
	"github.com/mmeshcher/wholemart-system/internal/model"
	"github.com/mmeshcher/wholemart-system/internal/notifier"
	"github.com/mmeshcher/wholemart-system/internal/storage"
)

func testProducts() []model.Product {
	return []model.Product{
		{ID: 1, Name: "Sugar 50Kg", Category: "Sugar", PriceCents: 1000, Stock: 10, MinOrderQty: 1},
		{ID: 2, Name: "Masala 500g", Category: "Spices", PriceCents: 500, Stock: 8, MinOrderQty: 1},
		{ID: 3, Name: "Oil 15L", Category: "Oils", PriceCents: 2000, Stock: 5, MinOrderQty: 3},
		{ID: 4, Name: "Rice 25Kg", Category: "Grains", PriceCents: 1500, Stock: 0, MinOrderQty: 1},
	}
}

func newTestService(t *testing.T) (*Service, *storage.Adapter) {
	t.Helper()

	adapter := storage.NewAdapter(storage.NewMemoryStore(), zap.NewNop())
	svc := NewService(adapter, catalog.New(testProducts()), notifier.NewClient("", "", zap.NewNop()), zap.NewNop())
	t.Cleanup(func() { _ = svc.Close() })

	return svc, adapter
}

func TestAddToCart_MergesQuantities(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	count, err := svc.AddToCart(ctx, 1, 2)
	if err != nil {
		t.Fatalf("AddToCart error: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	count, err = svc.AddToCart(ctx, 1, 3)
	if err != nil {
		t.Fatalf("AddToCart error: %v", err)
	}
	if count != 5 {
		t.Fatalf("count = %d, want 5", count)
	}

	cart := svc.Cart()
	if len(cart) != 1 {
		t.Fatalf("cart must hold one merged line per product, got %d", len(cart))
	}
	if cart[0].Quantity != 5 {
		t.Fatalf("merged quantity = %d, want 5", cart[0].Quantity)
	}
}

func TestAddToCart_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		id      int64
		qty     int64
		wantErr error
	}{
		{name: "unknown product", id: 999, qty: 1, wantErr: catalog.ErrProductNotFound},
		{name: "out of stock", id: 4, qty: 1, wantErr: ErrOutOfStock},
		{name: "zero quantity", id: 1, qty: 0, wantErr: ErrInvalidQuantity},
		{name: "negative quantity", id: 1, qty: -2, wantErr: ErrInvalidQuantity},
		{name: "over stock", id: 1, qty: 11, wantErr: catalog.ErrInsufficientStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddToCart(ctx, tt.id, tt.qty)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddToCart = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if len(svc.Cart()) != 0 {
		t.Fatalf("failed additions must leave the cart unchanged")
	}
}

func TestAddToCart_MergeOverStock(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, 2, 6); err != nil {
		t.Fatalf("AddToCart error: %v", err)
	}
	if _, err := svc.AddToCart(ctx, 2, 3); !errors.Is(err, catalog.ErrInsufficientStock) {
		t.Fatalf("merge over stock = %v, want ErrInsufficientStock", err)
	}

	cart := svc.Cart()
	if len(cart) != 1 || cart[0].Quantity != 6 {
		t.Fatalf("failed merge must leave quantity at 6, got %+v", cart)
	}
}

func TestRemoveFromCart_OutOfRangeIsNoop(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, 1, 1); err != nil {
		t.Fatalf("AddToCart error: %v", err)
	}

	if _, ok := svc.RemoveFromCart(ctx, 0); !ok {
		t.Fatalf("valid remove must succeed")
	}
	if _, ok := svc.RemoveFromCart(ctx, 0); ok {
		t.Fatalf("remove of now-invalid index must be a no-op")
	}
	if _, ok := svc.RemoveFromCart(ctx, -1); ok {
		t.Fatalf("negative index must be a no-op")
	}
	if len(svc.Cart()) != 0 {
		t.Fatalf("cart must be empty")
	}
}

func TestCheckout(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, 1, 2); err != nil { // 10.00 x 2
		t.Fatalf("AddToCart error: %v", err)
	}
	if _, err := svc.AddToCart(ctx, 2, 3); err != nil { // 5.00 x 3
		t.Fatalf("AddToCart error: %v", err)
	}

	order, err := svc.Checkout(ctx)
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}

	if order.TotalCents != 3500 {
		t.Fatalf("total = %d, want 3500", order.TotalCents)
	}
	if order.Status != model.OrderStatusConfirmed {
		t.Fatalf("status = %q, want %q", order.Status, model.OrderStatusConfirmed)
	}
	if order.ID == "" {
		t.Fatalf("order must get an id")
	}
	if len(svc.Cart()) != 0 {
		t.Fatalf("checkout must empty the cart")
	}
	if got := svc.Orders(); len(got) != 1 {
		t.Fatalf("history must hold exactly one order, got %d", len(got))
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Checkout(context.Background()); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("Checkout = %v, want ErrCartEmpty", err)
	}
	if len(svc.Orders()) != 0 {
		t.Fatalf("empty checkout must not create an order")
	}
}

func TestCheckout_DecrementsStockAtomically(t *testing.T) {
	cat := catalog.New(testProducts())
	adapter := storage.NewAdapter(storage.NewMemoryStore(), zap.NewNop())
	svc := NewService(adapter, cat, notifier.NewClient("", "", zap.NewNop()), zap.NewNop())
	defer svc.Close()
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, 2, 5); err != nil {
		t.Fatalf("AddToCart error: %v", err)
	}

	// Конкурирующий Buy Now съедает остаток до оформления корзины.
	if _, err := svc.BuyNow(ctx, 2, 6); err != nil {
		t.Fatalf("BuyNow error: %v", err)
	}

	if _, err := svc.Checkout(ctx); !errors.Is(err, catalog.ErrInsufficientStock) {
		t.Fatalf("Checkout = %v, want ErrInsufficientStock", err)
	}

	// Корзина и история не тронуты, повторное списание не произошло.
	if len(svc.Cart()) != 1 {
		t.Fatalf("failed checkout must keep the cart")
	}
	if len(svc.Orders()) != 1 {
		t.Fatalf("failed checkout must not append an order")
	}
	p, _ := cat.Get(2)
	if p.Stock != 2 {
		t.Fatalf("stock = %d, want 2", p.Stock)
	}
}

func TestBuyNow(t *testing.T) {
	cat := catalog.New(testProducts())
	adapter := storage.NewAdapter(storage.NewMemoryStore(), zap.NewNop())
	svc := NewService(adapter, cat, notifier.NewClient("", "", zap.NewNop()), zap.NewNop())
	defer svc.Close()
	ctx := context.Background()

	order, err := svc.BuyNow(ctx, 3, 4) // min 3, stock 5
	if err != nil {
		t.Fatalf("BuyNow error: %v", err)
	}

	if order.Status != model.OrderStatusBuyNow {
		t.Fatalf("status = %q, want %q", order.Status, model.OrderStatusBuyNow)
	}
	if order.TotalCents != 8000 {
		t.Fatalf("total = %d, want 8000", order.TotalCents)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 4 {
		t.Fatalf("unexpected order items: %+v", order.Items)
	}

	p, _ := cat.Get(3)
	if p.Stock != 1 {
		t.Fatalf("stock = %d, want 1", p.Stock)
	}
	if len(svc.Cart()) != 0 {
		t.Fatalf("BuyNow must not touch the cart")
	}
}

func TestBuyNow_Validation(t *testing.T) {
	cat := catalog.New(testProducts())
	adapter := storage.NewAdapter(storage.NewMemoryStore(), zap.NewNop())
	svc := NewService(adapter, cat, notifier.NewClient("", "", zap.NewNop()), zap.NewNop())
	defer svc.Close()
	ctx := context.Background()

	tests := []struct {
		name    string
		id      int64
		qty     int64
		wantErr error
	}{
		{name: "unknown product", id: 999, qty: 1, wantErr: catalog.ErrProductNotFound},
		{name: "out of stock", id: 4, qty: 1, wantErr: ErrOutOfStock},
		{name: "below min order", id: 3, qty: 2, wantErr: ErrBelowMinOrder},
		{name: "over stock", id: 3, qty: 6, wantErr: catalog.ErrInsufficientStock},
		{name: "zero quantity", id: 1, qty: 0, wantErr: ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.BuyNow(ctx, tt.id, tt.qty)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("BuyNow = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// Ни одна неудачная попытка не списала остаток и не создала заказ.
	p, _ := cat.Get(3)
	if p.Stock != 5 {
		t.Fatalf("stock = %d, want 5", p.Stock)
	}
	if len(svc.Orders()) != 0 {
		t.Fatalf("failed BuyNow must not create orders")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ravi", "ravi@example.com", "secret1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if _, err := svc.Register(ctx, "Other", "RAVI@Example.COM", "secret2"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("duplicate register = %v, want ErrUserExists", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{name: "short name", userName: "A", email: "a@b.co", password: "secret1", wantErr: ErrInvalidName},
		{name: "sanitized name too short", userName: `<b>`, email: "a@b.co", password: "secret1", wantErr: ErrInvalidName},
		{name: "bad email", userName: "Ravi", email: "not-an-email", password: "secret1", wantErr: ErrInvalidEmail},
		{name: "short password", userName: "Ravi", email: "a@b.co", password: "12345", wantErr: ErrShortPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.userName, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if svc.CurrentUser() != nil {
		t.Fatalf("failed register must not start a session")
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ravi", "ravi@example.com", "secret1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	svc.Logout(ctx)

	if _, err := svc.Login(ctx, "ravi@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password = %v, want ErrInvalidCredentials", err)
	}
	if svc.CurrentUser() != nil {
		t.Fatalf("failed login must leave session unset")
	}

	session, err := svc.Login(ctx, "Ravi@Example.com", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if session.Email != "ravi@example.com" {
		t.Fatalf("session email = %q", session.Email)
	}
	if got := svc.CurrentUser(); got == nil || got.ID != session.ID {
		t.Fatalf("session must be set after login")
	}
}

func TestLogout_Unconditional(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Logout(ctx) // без сессии — тоже не ошибка
	if svc.CurrentUser() != nil {
		t.Fatalf("no session expected")
	}
}

func TestSetNotifyNumber(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.SetNotifyNumber(ctx, "12345"); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("short number = %v, want ErrInvalidPhone", err)
	}

	got, err := svc.SetNotifyNumber(ctx, "+91 (706) 173-20-85")
	if err != nil {
		t.Fatalf("SetNotifyNumber error: %v", err)
	}
	if got != "917061732085" {
		t.Fatalf("normalized = %q", got)
	}
	if svc.NotifyNumber() != "917061732085" {
		t.Fatalf("number must be kept in state")
	}
}

func TestStatePersistsAcrossRestarts(t *testing.T) {
	store := storage.NewMemoryStore()
	adapter := storage.NewAdapter(store, zap.NewNop())
	ctx := context.Background()

	svc := NewService(adapter, catalog.New(testProducts()), notifier.NewClient("", "", zap.NewNop()), zap.NewNop())
	if _, err := svc.AddToCart(ctx, 1, 2); err != nil {
		t.Fatalf("AddToCart error: %v", err)
	}
	if _, err := svc.Register(ctx, "Ravi", "ravi@example.com", "secret1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	_ = svc.Close()

	// Новый сервис над тем же хранилищем видит корзину, каталог пользователей и сессию.
	revived := NewService(adapter, catalog.New(testProducts()), notifier.NewClient("", "", zap.NewNop()), zap.NewNop())
	defer revived.Close()

	if got := revived.CartCount(); got != 2 {
		t.Fatalf("restored cart count = %d, want 2", got)
	}
	if got := revived.CurrentUser(); got == nil || got.Email != "ravi@example.com" {
		t.Fatalf("session must be restored, got %+v", got)
	}
	if _, err := revived.Register(ctx, "Other", "ravi@example.com", "secret2"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("restored directory must keep registered users")
	}
}

func TestSetQuery_DebouncedView(t *testing.T) {
	svc, _ := newTestService(t)

	svc.SetQuery("oil")
	if got := svc.View(); len(got) != len(testProducts()) {
		t.Fatalf("view must not change before the quiet period, got %d products", len(got))
	}

	time.Sleep(500 * time.Millisecond)
	got := svc.View()
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("debounced view = %+v, want only Oil 15L", got)
	}

	// Пустой запрос возвращает полный каталог в исходном порядке.
	svc.SetQuery("")
	time.Sleep(500 * time.Millisecond)
	got = svc.View()
	if len(got) != len(testProducts()) {
		t.Fatalf("empty query must restore the full catalog, got %d", len(got))
	}
	for i, p := range got {
		if p.ID != testProducts()[i].ID {
			t.Fatalf("catalog order must be preserved")
		}
	}
}

func TestSetQuery_LastQueryWins(t *testing.T) {
	svc, _ := newTestService(t)

	svc.SetQuery("sugar")
	svc.SetQuery("masala")
	svc.SetQuery("rice")

	time.Sleep(500 * time.Millisecond)
	got := svc.View()
	if len(got) != 1 || got[0].ID != 4 {
		t.Fatalf("view must reflect the most recent query, got %+v", got)
	}
}

func TestSelect_CollapsesView(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.Select(2); err != nil {
		t.Fatalf("Select error: %v", err)
	}
	got := svc.View()
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("view = %+v, want single selected product", got)
	}

	if err := svc.Select(999); !errors.Is(err, catalog.ErrProductNotFound) {
		t.Fatalf("Select unknown = %v, want ErrProductNotFound", err)
	}
}

func TestSuggest_SanitizesQuery(t *testing.T) {
	svc, _ := newTestService(t)

	got := svc.Suggest(`"Oil"`)
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("Suggest = %+v, want Oil 15L", got)
	}
}

func TestHashPassword(t *testing.T) {
	h1, err := hashPassword("secret1")
	if err != nil {
		t.Fatalf("hashPassword error: %v", err)
	}
	h2, err := hashPassword("secret1")
	if err != nil {
		t.Fatalf("hashPassword error: %v", err)
	}

	if h1 == h2 {
		t.Fatalf("salted hashes of the same password must differ")
	}
	if !verifyPassword(h1, "secret1") || !verifyPassword(h2, "secret1") {
		t.Fatalf("verification must succeed for the original password")
	}
	if verifyPassword(h1, "secret2") {
		t.Fatalf("verification must fail for a wrong password")
	}
	if verifyPassword("garbage", "secret1") {
		t.Fatalf("malformed stored hash must not verify")
	}
}
