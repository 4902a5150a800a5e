package controllers_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Kariqs/bookstore-api/initializers"
	"github.com/Kariqs/bookstore-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type orderItemResponse struct {
	ID       uint            `json:"id"`
	BookID   uint            `json:"bookId"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type orderResponse struct {
	ID          uint                `json:"ID"`
	UserID      uint                `json:"userId"`
	TotalAmount decimal.Decimal     `json:"totalAmount"`
	Status      string              `json:"status"`
	OrderItems  []orderItemResponse `json:"orderItems"`
}

type checkoutResponse struct {
	Order orderResponse `json:"order"`
}

type ordersResponse struct {
	Orders []orderResponse `json:"orders"`
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	router := setupRouter(t)
	user := createUser(t, "alice", "user")
	token := authToken(t, user)
	category := createCategory(t, "Fiction")
	emma := createBook(t, "Emma", "10.00", category.ID, nil)
	mobyDick := createBook(t, "Moby-Dick", "5.50", category.ID, nil)

	doRequest(t, router, http.MethodPost, "/cart", token, map[string]any{"book": emma.ID, "quantity": 2})
	doRequest(t, router, http.MethodPost, "/cart", token, map[string]any{"book": mobyDick.ID, "quantity": 1})

	recorder := doRequest(t, router, http.MethodPost, "/checkout", token, nil)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var resp checkoutResponse
	decodeBody(t, recorder, &resp)

	if !resp.Order.TotalAmount.Equal(decimal.RequireFromString("25.50")) {
		t.Errorf("expected total 25.50, got %s", resp.Order.TotalAmount)
	}
	if resp.Order.Status != "Pending" {
		t.Errorf("expected status Pending, got %q", resp.Order.Status)
	}
	if len(resp.Order.OrderItems) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(resp.Order.OrderItems))
	}

	prices := map[string]decimal.Decimal{}
	for _, item := range resp.Order.OrderItems {
		prices[item.Title] = item.Price
	}
	if !prices["Emma"].Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("expected frozen price 10.00 for Emma, got %s", prices["Emma"])
	}
	if !prices["Moby-Dick"].Equal(decimal.RequireFromString("5.50")) {
		t.Errorf("expected frozen price 5.50 for Moby-Dick, got %s", prices["Moby-Dick"])
	}

	// Cart is empty after a successful checkout.
	if count := countRows(t, &models.CartItem{}); count != 0 {
		t.Errorf("expected cart to be cleared, %d rows remain", count)
	}

	var listed cartResponse
	recorder = doRequest(t, router, http.MethodGet, "/cart", token, nil)
	decodeBody(t, recorder, &listed)
	if len(listed.Cart) != 0 {
		t.Errorf("expected empty cart listing after checkout, got %d items", len(listed.Cart))
	}
}

func TestCheckoutSnapshotsPriceAtCheckoutTime(t *testing.T) {
	router := setupRouter(t)
	user := createUser(t, "alice", "user")
	token := authToken(t, user)
	category := createCategory(t, "Fiction")
	book := createBook(t, "Emma", "10.00", category.ID, nil)

	doRequest(t, router, http.MethodPost, "/cart", token, map[string]any{"book": book.ID, "quantity": 2})

	// Catalog price changes after the book was added to the cart.
	err := initializers.DB.Model(&models.Book{}).Where("id = ?", book.ID).
		Update("price", decimal.RequireFromString("12.25")).Error
	if err != nil {
		t.Fatalf("failed to update price: %v", err)
	}

	recorder := doRequest(t, router, http.MethodPost, "/checkout", token, nil)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var resp checkoutResponse
	decodeBody(t, recorder, &resp)
	if !resp.Order.TotalAmount.Equal(decimal.RequireFromString("24.50")) {
		t.Errorf("expected total from checkout-time price 24.50, got %s", resp.Order.TotalAmount)
	}
	if !resp.Order.OrderItems[0].Price.Equal(decimal.RequireFromString("12.25")) {
		t.Errorf("expected snapshot price 12.25, got %s", resp.Order.OrderItems[0].Price)
	}

	// A later price change must not alter the stored snapshot.
	err = initializers.DB.Model(&models.Book{}).Where("id = ?", book.ID).
		Update("price", decimal.RequireFromString("99.99")).Error
	if err != nil {
		t.Fatalf("failed to update price: %v", err)
	}

	var stored models.OrderItem
	if err := initializers.DB.First(&stored).Error; err != nil {
		t.Fatalf("failed to load order item: %v", err)
	}
	if !stored.Price.Equal(decimal.RequireFromString("12.25")) {
		t.Errorf("stored snapshot changed with the catalog, got %s", stored.Price)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	router := setupRouter(t)
	user := createUser(t, "alice", "user")
	token := authToken(t, user)

	recorder := doRequest(t, router, http.MethodPost, "/checkout", token, nil)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", recorder.Code, recorder.Body.String())
	}

	if count := countRows(t, &models.Order{}); count != 0 {
		t.Errorf("expected no orders after empty-cart checkout, got %d", count)
	}
	if count := countRows(t, &models.OrderItem{}); count != 0 {
		t.Errorf("expected no order items after empty-cart checkout, got %d", count)
	}
}

func TestCheckoutRollsBackWhenCartClearFails(t *testing.T) {
	router := setupRouter(t)
	user := createUser(t, "alice", "user")
	token := authToken(t, user)
	category := createCategory(t, "Fiction")
	emma := createBook(t, "Emma", "10.00", category.ID, nil)
	mobyDick := createBook(t, "Moby-Dick", "5.50", category.ID, nil)

	doRequest(t, router, http.MethodPost, "/cart", token, map[string]any{"book": emma.ID, "quantity": 2})
	doRequest(t, router, http.MethodPost, "/cart", token, map[string]any{"book": mobyDick.ID})

	// Inject a storage fault on the cart-clear step, after the order and its
	// items have already been written inside the transaction.
	injected := errors.New("injected storage fault")
	err := initializers.DB.Callback().Delete().Before("gorm:delete").Register("test:fail_cart_delete", func(tx *gorm.DB) {
		if tx.Statement.Table == "cart_items" {
			tx.AddError(injected)
		}
	})
	if err != nil {
		t.Fatalf("failed to register fault callback: %v", err)
	}
	t.Cleanup(func() {
		initializers.DB.Callback().Delete().Remove("test:fail_cart_delete")
	})

	recorder := doRequest(t, router, http.MethodPost, "/checkout", token, nil)
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", recorder.Code, recorder.Body.String())
	}

	// The whole transaction rolled back: no order, no items, cart untouched.
	if count := countRows(t, &models.Order{}); count != 0 {
		t.Errorf("expected no orders after rollback, got %d", count)
	}
	if count := countRows(t, &models.OrderItem{}); count != 0 {
		t.Errorf("expected no order items after rollback, got %d", count)
	}
	if count := countRows(t, &models.CartItem{}); count != 2 {
		t.Errorf("expected cart to be untouched after rollback, got %d rows", count)
	}
}

func TestOrderHistoryOwnershipIsolation(t *testing.T) {
	router := setupRouter(t)
	alice := createUser(t, "alice", "user")
	bob := createUser(t, "bob", "user")
	category := createCategory(t, "Fiction")
	book := createBook(t, "Emma", "10.00", category.ID, nil)

	aliceToken := authToken(t, alice)
	doRequest(t, router, http.MethodPost, "/cart", aliceToken, map[string]any{"book": book.ID})
	recorder := doRequest(t, router, http.MethodPost, "/checkout", aliceToken, nil)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", recorder.Code)
	}
	var created checkoutResponse
	decodeBody(t, recorder, &created)

	// Alice sees her order.
	recorder = doRequest(t, router, http.MethodGet, "/orders", aliceToken, nil)
	var aliceOrders ordersResponse
	decodeBody(t, recorder, &aliceOrders)
	if len(aliceOrders.Orders) != 1 {
		t.Fatalf("expected 1 order for alice, got %d", len(aliceOrders.Orders))
	}
	if len(aliceOrders.Orders[0].OrderItems) != 1 {
		t.Errorf("expected order items to be expanded, got %d", len(aliceOrders.Orders[0].OrderItems))
	}

	// Bob sees none of it.
	bobToken := authToken(t, bob)
	recorder = doRequest(t, router, http.MethodGet, "/orders", bobToken, nil)
	var bobOrders ordersResponse
	decodeBody(t, recorder, &bobOrders)
	if len(bobOrders.Orders) != 0 {
		t.Errorf("expected no orders for bob, got %d", len(bobOrders.Orders))
	}

	recorder = doRequest(t, router, http.MethodGet, fmt.Sprintf("/orders/%d", created.Order.ID), bobToken, nil)
	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected 404 fetching another user's order, got %d", recorder.Code)
	}

	recorder = doRequest(t, router, http.MethodGet, fmt.Sprintf("/orders/%d", created.Order.ID), aliceToken, nil)
	if recorder.Code != http.StatusOK {
		t.Errorf("expected 200 fetching own order, got %d", recorder.Code)
	}
}
