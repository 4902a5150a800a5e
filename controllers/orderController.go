package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Kariqs/bookstore-api/initializers"
	"github.com/Kariqs/bookstore-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// orderTotal sums current price times quantity over the cart snapshot.
func orderTotal(cartItems []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range cartItems {
		line := item.Book.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total
}

// Checkout converts the caller's whole cart into one order. Order creation,
// order item creation and cart clearing commit as a single transaction: a
// failure anywhere leaves the cart and order tables untouched.
func Checkout(ctx *gin.Context) {
	userId := currentUserId(ctx)

	tx := initializers.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var cartItems []models.CartItem
	if err := tx.Preload("Book").Where("user_id = ?", userId).Find(&cartItems).Error; err != nil {
		tx.Rollback()
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	if len(cartItems) == 0 {
		tx.Rollback()
		sendErrorResponse(ctx, http.StatusBadRequest, "Cart is empty")
		return
	}

	for _, item := range cartItems {
		if item.Book == nil {
			tx.Rollback()
			log.Printf("Cart item %d references missing book %d", item.ID, item.BookID)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
			return
		}
	}

	order := models.Order{
		UserID:      userId,
		TotalAmount: orderTotal(cartItems),
		Status:      "Pending",
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		log.Println("Order creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
		return
	}

	for _, item := range cartItems {
		orderItem := models.OrderItem{
			OrderID:  order.ID,
			BookID:   item.BookID,
			Title:    item.Book.Title,
			Price:    item.Book.Price,
			Quantity: item.Quantity,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			log.Println("Order item creation error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order items")
			return
		}
		order.OrderItems = append(order.OrderItems, orderItem)
	}

	// Hard delete so the (user, book) unique index is actually freed.
	result := tx.Unscoped().Where("user_id = ?", userId).Delete(&models.CartItem{})
	if result.Error != nil {
		tx.Rollback()
		log.Println("Cart clearing error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	// A concurrent checkout consumed some of these rows first; abort rather
	// than materialize the same cart twice.
	if result.RowsAffected != int64(len(cartItems)) {
		tx.Rollback()
		sendErrorResponse(ctx, http.StatusInternalServerError, "Checkout conflict, please retry")
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Println("Checkout commit error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save order")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"order": order})
}

// GetOrders lists the caller's past orders, newest first, with their items.
func GetOrders(ctx *gin.Context) {
	userId := currentUserId(ctx)

	var orders []models.Order
	result := initializers.DB.Preload("OrderItems").
		Where("user_id = ?", userId).
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

func GetOrderById(ctx *gin.Context) {
	userId := currentUserId(ctx)

	orderId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var order models.Order
	result := initializers.DB.Preload("OrderItems").
		Where("id = ? AND user_id = ?", orderId, userId).
		First(&order)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}
