package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Kariqs/bookstore-api/initializers"
	"github.com/Kariqs/bookstore-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Quantities accumulate on repeat adds, so cap them well below integer range.
const maxCartQuantity = 1_000_000

func currentUserId(ctx *gin.Context) uint {
	return ctx.MustGet("userId").(uint)
}

func cartItemResponse(item models.CartItem, book models.Book) gin.H {
	return gin.H{
		"id":        item.ID,
		"book":      book.ID,
		"bookTitle": book.Title,
		"price":     book.Price,
		"quantity":  item.Quantity,
		"addedAt":   item.CreatedAt,
	}
}

// AddToCart merges a book into the caller's cart. Re-adding a book the cart
// already holds increments the quantity of the existing row instead of
// creating a duplicate.
func AddToCart(ctx *gin.Context) {
	userId := currentUserId(ctx)

	var input models.AddToCartInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Quantity must be a positive integer")
		return
	}

	var book models.Book
	if err := initializers.DB.First(&book, input.BookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Book not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch book")
		}
		return
	}

	var cartItem models.CartItem
	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND book_id = ?", userId, book.ID).First(&cartItem).Error
		if err == nil {
			if cartItem.Quantity+input.Quantity > maxCartQuantity {
				return errQuantityTooLarge
			}
			cartItem.Quantity += input.Quantity
			return tx.Save(&cartItem).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		cartItem = models.CartItem{UserID: userId, BookID: book.ID, Quantity: input.Quantity}
		err = tx.Create(&cartItem).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent add won the race for the (user, book) row between
			// our read and write; merge into it instead.
			if err := tx.Where("user_id = ? AND book_id = ?", userId, book.ID).First(&cartItem).Error; err != nil {
				return err
			}
			if cartItem.Quantity+input.Quantity > maxCartQuantity {
				return errQuantityTooLarge
			}
			cartItem.Quantity += input.Quantity
			return tx.Save(&cartItem).Error
		}
		return err
	})
	if err != nil {
		if errors.Is(err, errQuantityTooLarge) {
			sendErrorResponse(ctx, http.StatusBadRequest, "Quantity limit exceeded")
			return
		}
		log.Println("Cart update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, cartItemResponse(cartItem, book))
}

var errQuantityTooLarge = errors.New("cart quantity limit exceeded")

func GetCart(ctx *gin.Context) {
	userId := currentUserId(ctx)

	var cartItems []models.CartItem
	result := initializers.DB.Preload("Book").Where("user_id = ?", userId).Find(&cartItems)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	items := make([]gin.H, 0, len(cartItems))
	for _, item := range cartItems {
		if item.Book == nil {
			continue
		}
		items = append(items, cartItemResponse(item, *item.Book))
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": items})
}

// RemoveFromCart deletes a cart item only when the caller owns it. The 404
// message is identical whether the item is missing or owned by someone else.
func RemoveFromCart(ctx *gin.Context) {
	userId := currentUserId(ctx)

	itemId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid cart item ID")
		return
	}

	// Hard delete: a soft-deleted row would keep occupying the (user, book)
	// unique index and block re-adding the same book later.
	result := initializers.DB.Unscoped().Where("id = ? AND user_id = ?", itemId, userId).Delete(&models.CartItem{})
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove cart item")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Item not found in cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item removed"})
}
